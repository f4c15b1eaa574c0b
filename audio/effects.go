package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/petdeck/parameter"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
	WaveBell // fundamental plus octave overtone
)

// oscillator is a finite waveform whose frequency glides linearly from freq to endFreq
type oscillator struct {
	freq     float64
	endFreq  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a fixed-pitch tone
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates a tone gliding from start to end Hz
func NewSweep(start, end float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     start,
		endFreq:  end,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	if o.position >= o.duration {
		return 0, false
	}
	for i := range samples {
		if o.position >= o.duration {
			return i, true
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		case WaveBell:
			val = 0.7*math.Sin(2*math.Pi*o.phase) + 0.3*math.Sin(4*math.Pi*o.phase)
		}
		samples[i][0] = val
		samples[i][1] = val

		progress := float64(o.position) / float64(o.duration)
		freq := o.freq + (o.endFreq-o.freq)*progress
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack/release shaping
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope wraps s with an attack/release envelope over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	releaseStart := e.totalSamples - e.releaseSamples

	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.releaseSamples > 0 && e.position >= releaseStart {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; zero is silent since log2(0) is -Inf
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func tone(freq, end float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewSweep(freq, end, d, wave, rate), d, parameter.AudioCueAttack, parameter.AudioCueRelease, rate)
}

// Synthesize builds the streamer for cue at gain vol
func Synthesize(cue Cue, vol float64, rate beep.SampleRate) beep.Streamer {
	var s beep.Streamer
	switch cue {
	case CueLike:
		s = beep.Seq(
			tone(659.25, 659.25, parameter.LikeNote1Duration, WaveSine, rate),
			tone(987.77, 987.77, parameter.LikeNote2Duration, WaveSine, rate),
		)
	case CueIgnore:
		s = tone(420, 180, parameter.IgnoreSweepDuration, WaveSaw, rate)
	case CueDetails:
		s = tone(880, 880, parameter.DetailsBellDuration, WaveBell, rate)
	case CueClose:
		s = tone(160, 60, parameter.CloseThumpDuration, WaveSine, rate)
	case CueSnap:
		s = tone(0, 0, parameter.SnapTickDuration, WaveNoise, rate)
	default:
		return nil
	}
	return newVolume(s, vol)
}

// Length is the cue duration in samples
func Length(cue Cue, rate beep.SampleRate) int {
	switch cue {
	case CueLike:
		return rate.N(parameter.LikeNote1Duration) + rate.N(parameter.LikeNote2Duration)
	case CueIgnore:
		return rate.N(parameter.IgnoreSweepDuration)
	case CueDetails:
		return rate.N(parameter.DetailsBellDuration)
	case CueClose:
		return rate.N(parameter.CloseThumpDuration)
	case CueSnap:
		return rate.N(parameter.SnapTickDuration)
	default:
		return 0
	}
}
