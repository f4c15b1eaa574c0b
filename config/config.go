// Package config loads the host configuration: engine tuning, audio and the candidate pool
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/petdeck/audio"
	"github.com/lixenwraith/petdeck/card"
	"github.com/lixenwraith/petdeck/parameter"
)

// Environment overrides, applied after the file
const (
	EnvSwipeThreshold = "PETDECK_SWIPE_THRESHOLD"
	EnvHintDelay      = "PETDECK_HINT_DELAY"
	EnvAudioEnabled   = "PETDECK_AUDIO_ENABLED"
	EnvFrameRate      = "PETDECK_FPS"
)

var (
	ErrNoCandidates     = errors.New("no candidates configured")
	ErrInvalidCandidate = errors.New("invalid candidate")
)

// Engine tunes the interaction engine
type Engine struct {
	SwipeThreshold float64       `yaml:"swipe_threshold"`
	HintDelay      time.Duration `yaml:"hint_delay"`
	FrameRate      int           `yaml:"frame_rate"`
	StartIndex     int           `yaml:"start_index"`
}

type Config struct {
	Engine     Engine           `yaml:"engine"`
	Audio      audio.Config     `yaml:"audio"`
	Candidates []card.Candidate `yaml:"candidates"`
}

// Default returns parameter defaults with the sample pool
func Default() *Config {
	return &Config{
		Engine: Engine{
			SwipeThreshold: parameter.SwipeThreshold,
			HintDelay:      parameter.HintQuietPeriod,
			FrameRate:      parameter.FrameRate,
		},
		Audio:      audio.DefaultConfig(),
		Candidates: SampleCandidates(),
	}
}

// Load reads path over the defaults, applies environment overrides and validates
// An empty path skips the file
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := cfg.Decode(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Decode merges YAML from r into cfg, unknown keys are an error
func (c *Config) Decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyEnv applies PETDECK_* overrides read through lookup
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvSwipeThreshold); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSwipeThreshold, err)
		}
		c.Engine.SwipeThreshold = f
	}
	if v, ok := lookup(EnvHintDelay); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvHintDelay, err)
		}
		c.Engine.HintDelay = d
	}
	if v, ok := lookup(EnvAudioEnabled); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvAudioEnabled, err)
		}
		c.Audio.Enabled = b
	}
	if v, ok := lookup(EnvFrameRate); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvFrameRate, err)
		}
		c.Engine.FrameRate = n
	}
	return nil
}

// Validate clamps tuning to usable ranges and checks the pool
// An empty pool returns ErrNoCandidates with the rest of cfg still usable
func (c *Config) Validate() error {
	e := &c.Engine
	if e.SwipeThreshold <= 0 {
		e.SwipeThreshold = parameter.SwipeThreshold
	}
	if e.HintDelay <= 0 {
		e.HintDelay = parameter.HintQuietPeriod
	}
	switch {
	case e.FrameRate <= 0:
		e.FrameRate = parameter.FrameRate
	case e.FrameRate < parameter.MinFrameRate:
		e.FrameRate = parameter.MinFrameRate
	case e.FrameRate > parameter.MaxFrameRate:
		e.FrameRate = parameter.MaxFrameRate
	}
	if e.StartIndex < 0 {
		e.StartIndex = 0
	}
	if err := c.Audio.Validate(); err != nil {
		return fmt.Errorf("audio: %w", err)
	}

	if len(c.Candidates) == 0 {
		return ErrNoCandidates
	}
	seen := make(map[string]bool, len(c.Candidates))
	for i, cand := range c.Candidates {
		if cand.ID == "" {
			return fmt.Errorf("candidate %d: empty id: %w", i, ErrInvalidCandidate)
		}
		if seen[cand.ID] {
			return fmt.Errorf("candidate %d: duplicate id %q: %w", i, cand.ID, ErrInvalidCandidate)
		}
		seen[cand.ID] = true
	}
	return nil
}
