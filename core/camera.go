package core

import (
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// FrameSeconds is the length of one scene frame
	FrameSeconds = 1.0 / 60.0

	focusDuration = 1.5 // Seconds
)

// Camera is a perspective camera that can fly to and then follow a body
type Camera struct {
	Position mgl64.Vec3 `json:"position"`
	Target   mgl64.Vec3 `json:"target"`
	Fov      float64    `json:"fov"`
	Near     float64    `json:"near"`
	Far      float64    `json:"far"`

	flight    *flight
	follow    *Body
	lastFocus mgl64.Vec3
}

// flight is an in-progress transition toward a body
type flight struct {
	from     mgl64.Vec3
	offset   mgl64.Vec3
	elapsed  float64
	duration float64
}

// NewCamera returns the overview camera looking at the origin
func NewCamera() *Camera {
	return &Camera{
		Position: mgl64.Vec3{0, 50, 100},
		Target:   mgl64.Vec3{0, 0, 0},
		Fov:      60,
		Near:     0.1,
		Far:      2000,
	}
}

// easeOut is quadratic ease-out
func easeOut(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// FlyTo starts a transition toward b. The destination sits above and behind
// the body at b.FocusOffset and is recomputed from the body's current position
// every frame, so the camera lands on the body rather than on the point it
// occupied when the flight began.
func (c *Camera) FlyTo(b *Body) {
	off := b.FocusOffset
	c.flight = &flight{
		from:     c.Position,
		offset:   mgl64.Vec3{0, off * 0.5, off},
		duration: focusDuration,
	}
	c.follow = b
	c.lastFocus = b.Position
}

// Flying reports whether a transition is still running
func (c *Camera) Flying() bool {
	return c.flight != nil
}

// Following returns the focused body, or nil
func (c *Camera) Following() *Body {
	return c.follow
}

// Update advances the camera by dt seconds. Once the flight ends the camera
// translates by the focused body's displacement every frame.
func (c *Camera) Update(dt float64) {
	if c.follow == nil {
		return
	}
	pos := c.follow.Position

	if f := c.flight; f != nil {
		f.elapsed += dt
		t := f.elapsed / f.duration
		if t >= 1 {
			t = 1
			c.flight = nil
		}
		dest := pos.Add(f.offset)
		c.Position = f.from.Add(dest.Sub(f.from).Mul(easeOut(t)))
	} else {
		c.Position = c.Position.Add(pos.Sub(c.lastFocus))
	}

	c.Target = pos
	c.lastFocus = pos
}
