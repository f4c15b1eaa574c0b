package gesture

import "time"

// Drag is the positional record of one pointer press, shared by sheet sessions and card drags
type Drag struct {
	StartX, StartY float64
	X, Y           float64
	StartTime      time.Time
	LastTime       time.Time

	velocity VelocityTracker
}

// BeginDrag starts a drag record at (x, y)
func BeginDrag(x, y float64, now time.Time) Drag {
	d := Drag{
		StartX:    x,
		StartY:    y,
		X:         x,
		Y:         y,
		StartTime: now,
		LastTime:  now,
		velocity:  NewVelocityTracker(),
	}
	d.velocity.Add(now, x, y)
	return d
}

// Move records a new pointer position
func (d *Drag) Move(x, y float64, now time.Time) {
	d.X, d.Y = x, y
	d.LastTime = now
	d.velocity.Add(now, x, y)
}

// Delta returns displacement from the press point
func (d *Drag) Delta() (dx, dy float64) {
	return d.X - d.StartX, d.Y - d.StartY
}

// Velocity returns release velocity in px/s
func (d *Drag) Velocity() (vx, vy float64) {
	return d.velocity.Velocity()
}

// Duration returns time since press
func (d *Drag) Duration() time.Duration {
	return d.LastTime.Sub(d.StartTime)
}
