package audio

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/petdeck/clock"
	"github.com/lixenwraith/petdeck/parameter"
)

// Output is the device cues are mixed into
type Output interface {
	Init(sr beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Lock()
	Unlock()
}

// Speaker is the beep speaker as an Output
type Speaker struct{}

func (Speaker) Init(sr beep.SampleRate, bufferSize int) error { return speaker.Init(sr, bufferSize) }
func (Speaker) Play(s beep.Streamer)                          { speaker.Play(s) }
func (Speaker) Lock()                                         { speaker.Lock() }
func (Speaker) Unlock()                                       { speaker.Unlock() }

// Option configures a SoundManager
type Option func(*SoundManager)

func WithOutput(o Output) Option {
	return func(sm *SoundManager) { sm.out = o }
}

func WithLogger(l *slog.Logger) Option {
	return func(sm *SoundManager) { sm.logger = l }
}

func WithTimeProvider(tp clock.TimeProvider) Option {
	return func(sm *SoundManager) { sm.time = tp }
}

// SoundManager mixes feedback cues into one output
// Every method is safe to call before Initialize or after a failed Initialize, it degrades to silence
type SoundManager struct {
	mu          sync.Mutex
	cfg         Config
	rate        beep.SampleRate
	mixer       *beep.Mixer
	out         Output
	time        clock.TimeProvider
	logger      *slog.Logger
	initialized bool
	muted       bool
	last        [cueCount]time.Time
}

// NewSoundManager creates a manager, call Initialize to open the device
func NewSoundManager(cfg Config, opts ...Option) *SoundManager {
	sm := &SoundManager{
		cfg:   cfg,
		rate:  beep.SampleRate(cfg.SampleRate),
		mixer: &beep.Mixer{},
		out:   Speaker{},
		time:  clock.SystemTime{},
		muted: !cfg.Enabled,
	}
	for _, opt := range opts {
		opt(sm)
	}
	if sm.logger == nil {
		sm.logger = slog.Default()
	}
	if sm.rate <= 0 {
		sm.rate = beep.SampleRate(parameter.AudioSampleRate)
	}
	return sm
}

// Initialize opens the output, a no-op when disabled or already open
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.cfg.Enabled {
		return nil
	}
	if err := sm.out.Init(sm.rate, sm.rate.N(parameter.AudioBufferDuration)); err != nil {
		return fmt.Errorf("audio init: %w", err)
	}
	sm.out.Play(sm.mixer)
	sm.initialized = true
	sm.logger.Debug("audio initialized", "sample_rate", int(sm.rate))
	return nil
}

// Play queues cue, returning false when silent, muted or throttled
func (sm *SoundManager) Play(cue Cue) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted || cue < 0 || cue >= cueCount {
		return false
	}
	now := sm.time.Now()
	if now.Sub(sm.last[cue]) < parameter.MinSoundGap {
		return false
	}
	s := Synthesize(cue, sm.cfg.Volume(cue), sm.rate)
	if s == nil {
		return false
	}
	sm.last[cue] = now

	sm.out.Lock()
	sm.mixer.Add(s)
	sm.out.Unlock()
	return true
}

// SetMuted toggles output without closing the device
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = muted
	if muted && sm.initialized {
		sm.out.Lock()
		sm.mixer.Clear()
		sm.out.Unlock()
	}
}

func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// Active returns the number of cues still playing
func (sm *SoundManager) Active() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if !sm.initialized {
		return 0
	}
	sm.out.Lock()
	defer sm.out.Unlock()
	return sm.mixer.Len()
}

// Cleanup drops queued cues; beep has no speaker close so the device stays open but silent
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	sm.out.Lock()
	sm.mixer.Clear()
	sm.out.Unlock()
	sm.initialized = false
}
