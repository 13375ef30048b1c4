package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Ray is a half-line in world space; Dir is unit length
type Ray struct {
	Origin mgl64.Vec3
	Dir    mgl64.Vec3
}

// Up is the world up axis used by every view matrix
var Up = mgl64.Vec3{0, 1, 0}

// ViewProjection returns projection * view for the camera at the given aspect
func (c *Camera) ViewProjection(aspect float64) mgl64.Mat4 {
	proj := mgl64.Perspective(mgl64.DegToRad(c.Fov), aspect, c.Near, c.Far)
	view := mgl64.LookAtV(c.Position, c.Target, Up)
	return proj.Mul4(view)
}

// ScreenRay casts a ray through pixel (x, y) of a width x height viewport
func (c *Camera) ScreenRay(x, y float64, width, height int) Ray {
	// Convert screen coordinates to NDC
	nx := 2*x/float64(width) - 1
	ny := 1 - 2*y/float64(height) // Flip Y

	inv := c.ViewProjection(float64(width) / float64(height)).Inv()
	near := inv.Mul4x1(mgl64.Vec4{nx, ny, -1, 1})
	far := inv.Mul4x1(mgl64.Vec4{nx, ny, 1, 1})
	near = near.Mul(1 / near[3])
	far = far.Mul(1 / far[3])

	return Ray{
		Origin: near.Vec3(),
		Dir:    far.Vec3().Sub(near.Vec3()).Normalize(),
	}
}

// intersectSphere returns the distance along r to the nearest hit in front of
// the origin.
func (r Ray) intersectSphere(center mgl64.Vec3, radius float64) (float64, bool) {
	oc := r.Origin.Sub(center)
	a := r.Dir.Dot(r.Dir)
	b := 2 * oc.Dot(r.Dir)
	c := oc.Dot(oc) - radius*radius
	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return 0, false
	}

	sqrtD := math.Sqrt(discriminant)
	t := (-b - sqrtD) / (2 * a)
	if t < 0 {
		t = (-b + sqrtD) / (2 * a)
		if t < 0 {
			return 0, false
		}
	}
	return t, true
}

// Pick returns the nearest body hit by r and the hit point, or nil
func (s *SolarSystem) Pick(r Ray) (*Body, mgl64.Vec3) {
	var hit *Body
	best := math.Inf(1)
	for _, b := range s.Bodies {
		if t, ok := r.intersectSphere(b.Position, b.Radius); ok && t < best {
			best, hit = t, b
		}
	}
	if hit == nil {
		return nil, mgl64.Vec3{}
	}
	return hit, r.Origin.Add(r.Dir.Mul(best))
}
