package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"solarsystem/texture"
)

// Per-frame motion constants
const (
	orbitStep     = 0.005 // Radians per frame per unit of speed
	spinStep      = 0.01  // Radians per frame
	orbitSegments = 128
)

// Body is a catalog entry placed in the scene with its generated texture
type Body struct {
	BodyDef
	Angle    float64 // Orbital angle in radians
	Spin     float64 // Rotation about the body's Y axis
	Position mgl64.Vec3
	Surface  texture.SurfaceSpec
	Texture  *texture.Texture
}

// OrbitPosition places a body on the XZ plane at angle around the origin
func OrbitPosition(angle, distance float64) mgl64.Vec3 {
	return mgl64.Vec3{math.Cos(angle) * distance, 0, math.Sin(angle) * distance}
}

// Update advances the body by one frame
func (b *Body) Update() {
	if b.Distance > 0 {
		b.Angle += b.Speed * orbitStep
		b.Position = OrbitPosition(b.Angle, b.Distance)
	}
	b.Spin += spinStep
}

// OrbitPath returns the closed orbit polyline; the last point repeats the first.
// Bodies at the origin have no orbit.
func (b *Body) OrbitPath() []mgl64.Vec3 {
	if b.Distance <= 0 {
		return nil
	}
	points := make([]mgl64.Vec3, 0, orbitSegments+1)
	for i := 0; i <= orbitSegments; i++ {
		theta := float64(i) / orbitSegments * math.Pi * 2
		points = append(points, OrbitPosition(theta, b.Distance))
	}
	return points
}
