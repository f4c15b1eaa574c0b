package status

import (
	"math"
	"sync"
	"testing"
	"time"
)

// TestFamilyCachesPointer verifies repeated lookups return the same metric and Lookup never registers
func TestFamilyCachesPointer(t *testing.T) {
	f := NewFamily[Rate]()
	if _, ok := f.Lookup("x"); ok {
		t.Fatal("Lookup found an unregistered key")
	}
	a := f.Metric("x")
	a.Set(2.5)
	if b := f.Metric("x"); b != a || b.Value() != 2.5 {
		t.Fatalf("Metric returned a different metric")
	}
	if b, ok := f.Lookup("x"); !ok || b != a || f.Len() != 1 {
		t.Errorf("Lookup/Len inconsistent: len=%d", f.Len())
	}
}

// TestConcurrentIncrements verifies counters and rates are safe across goroutines
func TestConcurrentIncrements(t *testing.T) {
	r := NewRegistry()
	fps := r.Rates.Metric(EngineFPS)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				r.Inc(CardLike)
				fps.Observe(time.Second / 50)
			}
		}()
	}
	wg.Wait()
	if got := r.Count(CardLike); got != 8000 {
		t.Errorf("Count = %d, want 8000", got)
	}
	if got := fps.Value(); math.Abs(got-50) > 1e-9 {
		t.Errorf("rate = %v, want 50", got)
	}
}

func TestRateSmoothing(t *testing.T) {
	var r Rate
	if got := r.Observe(time.Second / 60); math.Abs(got-60) > 1e-9 {
		t.Fatalf("first sample = %v, want 60", got)
	}
	got := r.Observe(time.Second / 30)
	if want := 60 + (30-60)*RateSmoothing; math.Abs(got-want) > 1e-9 {
		t.Errorf("smoothed = %v, want %v", got, want)
	}
	if r.Observe(0) != got || r.Observe(-time.Second) != got {
		t.Error("non-positive interval changed the rate")
	}
}

// TestSnapshotOrder verifies entries follow registration order within each family
func TestSnapshotOrder(t *testing.T) {
	r := NewRegistry()
	r.Flags.Metric(AudioMuted).Store(true)
	r.Inc(SheetOpen)
	r.Inc(CardLike)
	r.Inc(CardLike)
	r.Rates.Metric(EngineFPS).Set(59.94)

	want := []Entry{
		{SheetOpen, "1"},
		{CardLike, "2"},
		{EngineFPS, "59.9"},
		{AudioMuted, "true"},
	}
	got := r.Snapshot()
	if len(got) != len(want) {
		t.Fatalf("Snapshot() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLine(t *testing.T) {
	r := NewRegistry()
	r.Inc(CardLike)
	r.Rates.Metric(EngineFPS).Set(60)

	if got, want := r.Line(CardLike, CardIgnore, EngineFPS), "like=1  fps=60.0"; got != want {
		t.Errorf("Line() = %q, want %q", got, want)
	}
	if _, ok := r.Counters.Lookup(CardIgnore); r.Count(CardIgnore) != 0 || ok {
		t.Error("reading an unknown counter registered it")
	}
}
