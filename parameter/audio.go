package parameter

import "time"

// Audio device
const (
	AudioSampleRate     = 44100
	AudioBufferDuration = 50 * time.Millisecond
	AudioMasterVolume   = 0.6
	AudioCueVolume      = 0.8

	// MinSoundGap between two plays of the same cue
	MinSoundGap = 50 * time.Millisecond
)

// Cue shaping
const (
	AudioCueAttack  = 5 * time.Millisecond
	AudioCueRelease = 40 * time.Millisecond

	LikeNote1Duration   = 80 * time.Millisecond
	LikeNote2Duration   = 220 * time.Millisecond
	IgnoreSweepDuration = 160 * time.Millisecond
	DetailsBellDuration = 400 * time.Millisecond
	CloseThumpDuration  = 120 * time.Millisecond
	SnapTickDuration    = 45 * time.Millisecond
)
