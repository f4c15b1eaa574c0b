package audio

import (
	"fmt"

	"github.com/lixenwraith/petdeck/parameter"
)

// Config controls the sound manager
type Config struct {
	Enabled      bool               `yaml:"enabled"`
	MasterVolume float64            `yaml:"master_volume"`
	SampleRate   int                `yaml:"sample_rate"`
	CueVolumes   map[string]float64 `yaml:"cue_volumes"`
}

// DefaultConfig returns audio enabled at parameter defaults
func DefaultConfig() Config {
	vols := make(map[string]float64, cueCount)
	for c := Cue(0); c < cueCount; c++ {
		vols[c.String()] = parameter.AudioCueVolume
	}
	return Config{
		Enabled:      true,
		MasterVolume: parameter.AudioMasterVolume,
		SampleRate:   parameter.AudioSampleRate,
		CueVolumes:   vols,
	}
}

// Validate clamps volumes to [0,1] and rejects unknown cue keys
func (c *Config) Validate() error {
	c.MasterVolume = clamp01(c.MasterVolume)
	if c.SampleRate <= 0 {
		c.SampleRate = parameter.AudioSampleRate
	}
	for k, v := range c.CueVolumes {
		if _, ok := ParseCue(k); !ok {
			return fmt.Errorf("cue_volumes %q: %w", k, ErrUnknownCue)
		}
		c.CueVolumes[k] = clamp01(v)
	}
	return nil
}

// Volume is the effective gain of a cue, master included
func (c *Config) Volume(cue Cue) float64 {
	v, ok := c.CueVolumes[cue.String()]
	if !ok {
		v = parameter.AudioCueVolume
	}
	return v * c.MasterVolume
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
