package spring

// Result is how an animation ended
type Result uint8

const (
	Pending    Result = iota
	Completed         // reached target and came to rest
	Superseded        // replaced by a newer AnimateTo or Set on the same value
)

// String returns human-readable result name
func (r Result) String() string {
	switch r {
	case Completed:
		return "Completed"
	case Superseded:
		return "Superseded"
	default:
		return "Pending"
	}
}

// Future resolves once when its animation completes or is superseded
// Then callbacks run synchronously on the goroutine that steps the value
type Future struct {
	done   chan struct{}
	result Result
	thens  []func(Result)
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// Resolved returns a future already completed, for no-op animations
func Resolved() *Future {
	f := newFuture()
	f.resolve(Completed)
	return f
}

// Done is closed on resolution
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Settled reports whether the future resolved
func (f *Future) Settled() bool {
	return f.result != Pending
}

// Result returns the outcome, Pending until settled
func (f *Future) Result() Result {
	return f.result
}

// Then registers fn to run at resolution, or runs it now if already settled
func (f *Future) Then(fn func(Result)) *Future {
	if f.Settled() {
		fn(f.result)
		return f
	}
	f.thens = append(f.thens, fn)
	return f
}

func (f *Future) resolve(r Result) {
	if f.Settled() {
		return
	}
	f.result = r
	close(f.done)
	thens := f.thens
	f.thens = nil
	for _, fn := range thens {
		fn(r)
	}
}

// All resolves Completed when every input completes, Superseded as soon as any input is superseded
func All(fs ...*Future) *Future {
	joined := newFuture()
	remaining := len(fs)
	if remaining == 0 {
		joined.resolve(Completed)
		return joined
	}
	for _, f := range fs {
		f.Then(func(r Result) {
			if r == Superseded {
				joined.resolve(Superseded)
				return
			}
			remaining--
			if remaining == 0 {
				joined.resolve(Completed)
			}
		})
	}
	return joined
}
