package spring

import "time"

// Vec2 animates a 2D point as two independent values sharing a config
type Vec2 struct {
	X, Y *Value
}

// NewVec2 creates a vector at rest at (x, y)
func NewVec2(x, y float64) *Vec2 {
	return &Vec2{X: NewValue(x), Y: NewValue(y)}
}

// Set moves both axes immediately
func (p *Vec2) Set(x, y float64) {
	p.X.Set(x)
	p.Y.Set(y)
}

// SetVelocity seeds both axes
func (p *Vec2) SetVelocity(vx, vy float64) {
	p.X.SetVelocity(vx)
	p.Y.SetVelocity(vy)
}

// AnimateTo springs both axes, the returned future completes when both settle
func (p *Vec2) AnimateTo(x, y float64, cfg Config) *Future {
	return All(p.X.AnimateTo(x, cfg), p.Y.AnimateTo(y, cfg))
}

// Step advances both axes, returns true while either is animating
func (p *Vec2) Step(dt time.Duration) bool {
	ax := p.X.Step(dt)
	ay := p.Y.Step(dt)
	return ax || ay
}

// Current returns the current point
func (p *Vec2) Current() (x, y float64) {
	return p.X.Current(), p.Y.Current()
}

// Animating reports whether either axis is in motion
func (p *Vec2) Animating() bool {
	return p.X.Animating() || p.Y.Animating()
}
