package clock

import (
	"sort"
	"time"
)

// TimerID identifies a scheduled callback, zero is never issued
type TimerID uint64

type timerEntry struct {
	id       TimerID
	deadline time.Time
	seq      uint64 // insertion order, breaks deadline ties
	fn       func()
}

// Scheduler runs one-shot callbacks once their deadline passes on its TimeProvider
// Not safe for concurrent use: it belongs to the loop goroutine that calls Fire
type Scheduler struct {
	time    TimeProvider
	entries []timerEntry
	nextID  TimerID
	seq     uint64
}

// NewScheduler creates an empty scheduler reading time from tp
func NewScheduler(tp TimeProvider) *Scheduler {
	return &Scheduler{time: tp}
}

// Now returns the scheduler's current time
func (s *Scheduler) Now() time.Time {
	return s.time.Now()
}

// After schedules fn to run d from now
func (s *Scheduler) After(d time.Duration, fn func()) TimerID {
	s.nextID++
	s.seq++
	s.entries = append(s.entries, timerEntry{
		id:       s.nextID,
		deadline: s.time.Now().Add(d),
		seq:      s.seq,
		fn:       fn,
	})
	return s.nextID
}

// Cancel removes a pending timer, returns false when it already fired or never existed
func (s *Scheduler) Cancel(id TimerID) bool {
	if id == 0 {
		return false
	}
	for i := range s.entries {
		if s.entries[i].id == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Pending reports whether id is still scheduled
func (s *Scheduler) Pending(id TimerID) bool {
	if id == 0 {
		return false
	}
	for i := range s.entries {
		if s.entries[i].id == id {
			return true
		}
	}
	return false
}

// Len returns the number of pending timers
func (s *Scheduler) Len() int {
	return len(s.entries)
}

// Fire runs every due timer in deadline order and returns how many ran
// Callbacks may schedule or cancel timers; newly scheduled timers that are already due run in the same call
func (s *Scheduler) Fire() int {
	fired := 0
	for {
		now := s.time.Now()
		idx := -1
		for i := range s.entries {
			if s.entries[i].deadline.After(now) {
				continue
			}
			if idx < 0 || earlier(s.entries[i], s.entries[idx]) {
				idx = i
			}
		}
		if idx < 0 {
			return fired
		}

		entry := s.entries[idx]
		s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
		entry.fn()
		fired++
	}
}

// Clear drops every pending timer without running it
func (s *Scheduler) Clear() {
	s.entries = s.entries[:0]
}

// Deadlines returns pending deadlines sorted ascending, used by tests and the debug overlay
func (s *Scheduler) Deadlines() []time.Time {
	out := make([]time.Time, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.deadline)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

func earlier(a, b timerEntry) bool {
	if a.deadline.Equal(b.deadline) {
		return a.seq < b.seq
	}
	return a.deadline.Before(b.deadline)
}
