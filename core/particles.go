package core

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"solarsystem/texture"
)

const (
	DefaultParticleCount  = 2000
	DefaultParticleRadius = 300.0

	particleSpin = 0.0002 // Radians per frame about Y
)

var particlePalette = []string{"#a855f7", "#6366f1", "#ffffff"}

// Particle is one backdrop point
type Particle struct {
	Position mgl64.Vec3    `json:"p"`
	Color    texture.Color `json:"c"`
	Size     float64       `json:"s"`
}

// ParticleField is the slowly rotating star cloud around the system
type ParticleField struct {
	Particles []Particle `json:"particles"`
	Rotation  float64    `json:"rotation"`
}

// NewParticleField scatters count points uniformly through a ball of radius.
// Twenty percent are white; the rest split evenly between violet and indigo.
func NewParticleField(rng *rand.Rand, count int, radius float64) *ParticleField {
	colors := make([]texture.Color, len(particlePalette))
	for i, hex := range particlePalette {
		c, err := ParseColor(hex)
		if err != nil {
			panic(err) // palette is constant
		}
		colors[i] = c
	}
	violet, indigo, white := colors[0], colors[1], colors[2]

	field := &ParticleField{Particles: make([]Particle, count)}
	for i := range field.Particles {
		// Cube root keeps the density uniform in volume
		r := radius * math.Cbrt(rng.Float64())
		theta := rng.Float64() * 2 * math.Pi
		phi := math.Acos(2*rng.Float64() - 1)

		p := &field.Particles[i]
		p.Position = mgl64.Vec3{
			r * math.Sin(phi) * math.Cos(theta),
			r * math.Sin(phi) * math.Sin(theta),
			r * math.Cos(phi),
		}
		p.Size = rng.Float64() * 2

		switch {
		case rng.Float64() > 0.8:
			p.Color = white
		case rng.Float64() > 0.5:
			p.Color = violet
		default:
			p.Color = indigo
		}
	}
	return field
}

// Update turns the field by one frame
func (f *ParticleField) Update() {
	f.Rotation += particleSpin
}
