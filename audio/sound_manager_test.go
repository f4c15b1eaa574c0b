package audio

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/petdeck/clock"
	"github.com/lixenwraith/petdeck/parameter"
)

type fakeOutput struct {
	initErr error
	inits   int
	played  []beep.Streamer
	locked  bool
}

func (f *fakeOutput) Init(beep.SampleRate, int) error {
	f.inits++
	return f.initErr
}
func (f *fakeOutput) Play(s beep.Streamer) { f.played = append(f.played, s) }
func (f *fakeOutput) Lock()                { f.locked = true }
func (f *fakeOutput) Unlock()              { f.locked = false }

func newTestManager(t *testing.T, cfg Config) (*SoundManager, *fakeOutput, *clock.MockTimeProvider) {
	t.Helper()
	out := &fakeOutput{}
	tp := clock.NewMockTimeProvider(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	return NewSoundManager(cfg, WithOutput(out), WithTimeProvider(tp)), out, tp
}

// TestSoundManagerGracefulDegradation verifies operations don't panic when not initialized
func TestSoundManagerGracefulDegradation(t *testing.T) {
	sm, _, _ := newTestManager(t, DefaultConfig())
	for c := Cue(0); c < cueCount; c++ {
		if sm.Play(c) {
			t.Errorf("Play(%v) succeeded before Initialize", c)
		}
	}
	sm.SetMuted(true)
	sm.Cleanup()
	if sm.Active() != 0 {
		t.Error("Active() non-zero without device")
	}
}

// TestSoundManagerInitFailure verifies a missing device leaves the manager silent
func TestSoundManagerInitFailure(t *testing.T) {
	sm, out, _ := newTestManager(t, DefaultConfig())
	out.initErr = errors.New("no device")

	if err := sm.Initialize(); err == nil || !errors.Is(err, out.initErr) {
		t.Fatalf("Initialize() = %v, want wrapped device error", err)
	}
	if sm.Play(CueLike) {
		t.Error("Play succeeded after failed init")
	}
}

func TestSoundManagerDoubleInitialization(t *testing.T) {
	sm, out, _ := newTestManager(t, DefaultConfig())
	if err := sm.Initialize(); err != nil {
		t.Fatal(err)
	}
	if err := sm.Initialize(); err != nil {
		t.Fatal(err)
	}
	if out.inits != 1 || len(out.played) != 1 {
		t.Errorf("inits=%d played=%d, want one mixer attached once", out.inits, len(out.played))
	}
}

func TestDisabledNeverOpensDevice(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false
	sm, out, _ := newTestManager(t, cfg)
	if err := sm.Initialize(); err != nil {
		t.Fatal(err)
	}
	if out.inits != 0 || !sm.Muted() {
		t.Errorf("disabled audio opened device (inits=%d) or not muted", out.inits)
	}
}

// TestPlayThrottle verifies the same cue is rate limited but different cues are not
func TestPlayThrottle(t *testing.T) {
	sm, out, tp := newTestManager(t, DefaultConfig())
	if err := sm.Initialize(); err != nil {
		t.Fatal(err)
	}

	if !sm.Play(CueLike) {
		t.Fatal("first play rejected")
	}
	if sm.Play(CueLike) {
		t.Error("immediate repeat not throttled")
	}
	if !sm.Play(CueIgnore) {
		t.Error("different cue throttled")
	}
	tp.Advance(parameter.MinSoundGap)
	if !sm.Play(CueLike) {
		t.Error("repeat after gap rejected")
	}
	if sm.Active() != 3 {
		t.Errorf("Active() = %d, want 3", sm.Active())
	}
	if out.locked {
		t.Error("output left locked")
	}

	sm.SetMuted(true)
	tp.Advance(time.Second)
	if sm.Play(CueDetails) || sm.Active() != 0 {
		t.Error("muted manager still playing")
	}
}

// TestSynthesizedCues verifies every cue is finite, bounded and the advertised length
func TestSynthesizedCues(t *testing.T) {
	rate := beep.SampleRate(parameter.AudioSampleRate)
	for c := Cue(0); c < cueCount; c++ {
		t.Run(c.String(), func(t *testing.T) {
			s := Synthesize(c, 1, rate)
			if s == nil {
				t.Fatal("nil streamer")
			}
			buf := make([][2]float64, 512)
			total := 0
			for {
				n, ok := s.Stream(buf)
				for i := 0; i < n; i++ {
					if math.Abs(buf[i][0]) > 1.0001 || math.IsNaN(buf[i][0]) {
						t.Fatalf("sample %d out of range: %v", total+i, buf[i][0])
					}
				}
				total += n
				if !ok || total > 10*rate.N(time.Second) {
					break
				}
			}
			if want := Length(c, rate); total != want {
				t.Errorf("length = %d samples, want %d", total, want)
			}
		})
	}
	if Synthesize(cueCount, 1, rate) != nil {
		t.Error("unknown cue produced a streamer")
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MasterVolume = 3
	cfg.CueVolumes["like"] = -1
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.MasterVolume != 1 || cfg.Volume(CueLike) != 0 {
		t.Errorf("volumes not clamped: master=%v like=%v", cfg.MasterVolume, cfg.Volume(CueLike))
	}

	cfg.CueVolumes["purr"] = 0.5
	if err := cfg.Validate(); !errors.Is(err, ErrUnknownCue) {
		t.Errorf("Validate() = %v, want ErrUnknownCue", err)
	}

	for c := Cue(0); c < cueCount; c++ {
		if got, ok := ParseCue(c.String()); !ok || got != c {
			t.Errorf("ParseCue(%q) = %v, %v", c.String(), got, ok)
		}
	}
}
