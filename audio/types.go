// Package audio plays short synthesized feedback cues for card and sheet gestures through beep
package audio

import "errors"

// Cue is a feedback sound
type Cue int

const (
	CueLike    Cue = iota // rising two-note chime
	CueIgnore             // falling sweep
	CueDetails            // bell
	CueClose              // low thump
	CueSnap               // short tick on spring-back
	cueCount
)

var cueNames = [cueCount]string{"like", "ignore", "details", "close", "snap"}

// String returns the config key of the cue
func (c Cue) String() string {
	if c < 0 || c >= cueCount {
		return "unknown"
	}
	return cueNames[c]
}

// ParseCue maps a config key back to a cue
func ParseCue(s string) (Cue, bool) {
	for i, name := range cueNames {
		if name == s {
			return Cue(i), true
		}
	}
	return 0, false
}

var ErrUnknownCue = errors.New("unknown audio cue")
