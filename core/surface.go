package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Geographic is a direction on a body in its own rotating frame
type Geographic struct {
	Lat float64 // Radians [-π/2, π/2], positive = north (+Y)
	Lon float64 // Radians (-π, π], zero at local -X, increasing toward +Z
}

// ToGeographic converts a body-local point to latitude and longitude. The
// longitude origin matches the seam of an equirectangular texture wrapped the
// way renderers build UV spheres.
func ToGeographic(local mgl64.Vec3) Geographic {
	r := local.Len()

	// Handle special case of origin
	if r < 1e-10 {
		return Geographic{}
	}
	g := Geographic{Lat: math.Asin(mgl64.Clamp(local.Y()/r, -1, 1))}

	// Longitude is undefined on the axis; pin it to the seam
	if math.Hypot(local.X(), local.Z()) > 1e-10*r {
		g.Lon = math.Atan2(local.Z(), -local.X())
	}
	return g
}

// UV returns texture coordinates in [0, 1) with v = 0 at the north pole
func (g Geographic) UV() (u, v float64) {
	lon := g.Lon
	if lon < 0 {
		lon += 2 * math.Pi
	}
	return lon / (2 * math.Pi), 0.5 - g.Lat/math.Pi
}

// Local moves a world point into the body's rotating frame
func (b *Body) Local(world mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Rotate3DY(-b.Spin).Mul3x1(world.Sub(b.Position))
}

// SurfacePixel returns the texture pixel under a world point on the body
func (b *Body) SurfacePixel(world mgl64.Vec3, width, height int) (x, y int) {
	u, v := ToGeographic(b.Local(world)).UV()
	x = clampIndex(int(math.Floor(u*float64(width))), width)
	y = clampIndex(int(math.Floor(v*float64(height))), height)
	return x, y
}

// SurfaceColor samples the body's texture under a world point
func (b *Body) SurfaceColor(world mgl64.Vec3) (r, g, bl uint8, ok bool) {
	if b.Texture == nil {
		return 0, 0, 0, false
	}
	x, y := b.SurfacePixel(world, b.Texture.Width(), b.Texture.Height())
	i := (y*b.Texture.Width() + x) * 4
	pix := b.Texture.Pixels()
	return pix[i], pix[i+1], pix[i+2], true
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
