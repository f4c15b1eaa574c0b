// Package status is a registry of atomic counters, rates and flags readable from any goroutine
package status

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
)

// Metric keys written by the engine
const (
	CardLike     = "card.like"
	CardIgnore   = "card.ignore"
	CardDetails  = "card.details"
	CardCancel   = "card.cancel"
	SheetOpen    = "sheet.open"
	SheetClose   = "sheet.close"
	EngineFrames = "engine.frames"
	EngineFPS    = "engine.fps"
	AudioMuted   = "audio.muted"
)

// Registry is the metrics facade
// Writers cache pointers at wiring time; the frame loop writes atomics directly
type Registry struct {
	Counters *Family[atomic.Int64]
	Rates    *Family[Rate]
	Flags    *Family[atomic.Bool]
}

func NewRegistry() *Registry {
	return &Registry{
		Counters: NewFamily[atomic.Int64](),
		Rates:    NewFamily[Rate](),
		Flags:    NewFamily[atomic.Bool](),
	}
}

// Inc bumps a counter by one
func (r *Registry) Inc(key string) int64 {
	return r.Counters.Metric(key).Add(1)
}

// Count reads a counter, zero when never written
func (r *Registry) Count(key string) int64 {
	c, ok := r.Counters.Lookup(key)
	if !ok {
		return 0
	}
	return c.Load()
}

// Entry is one metric rendered for display
type Entry struct {
	Key   string
	Value string
}

// Snapshot returns every metric in registration order: counters, then rates, then flags
func (r *Registry) Snapshot() []Entry {
	out := make([]Entry, 0, r.TotalCount())
	r.Counters.Each(func(k string, v *atomic.Int64) {
		out = append(out, Entry{Key: k, Value: strconv.FormatInt(v.Load(), 10)})
	})
	r.Rates.Each(func(k string, v *Rate) {
		out = append(out, Entry{Key: k, Value: strconv.FormatFloat(v.Value(), 'f', 1, 64)})
	})
	r.Flags.Each(func(k string, v *atomic.Bool) {
		out = append(out, Entry{Key: k, Value: strconv.FormatBool(v.Load())})
	})
	return out
}

// Line formats the given keys as "key=value" pairs for the status bar, unknown keys are skipped
func (r *Registry) Line(keys ...string) string {
	byKey := make(map[string]string)
	for _, e := range r.Snapshot() {
		byKey[e.Key] = e.Value
	}
	var b strings.Builder
	for _, k := range keys {
		v, ok := byKey[k]
		if !ok {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("  ")
		}
		fmt.Fprintf(&b, "%s=%s", k[strings.LastIndexByte(k, '.')+1:], v)
	}
	return b.String()
}

func (r *Registry) TotalCount() int {
	return r.Counters.Len() + r.Rates.Len() + r.Flags.Len()
}
