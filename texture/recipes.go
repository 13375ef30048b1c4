package texture

import (
	"math"

	"solarsystem/noise"
)

const (
	rockyOctaves = 5
	rockyScale   = 5.0
	sunScale     = 8.0
)

// recipe maps a normalized pixel coordinate to a blend factor
type recipe func(n *noise.Perlin, nx, ny float64) float64

var recipes = map[BodyType]recipe{
	Gas:   gasSurface,
	Rocky: rockySurface,
	Sun:   sunSurface,
	Ice:   iceSurface,
}

// gasSurface draws horizontal bands bent by low-frequency noise, plus turbulence.
// The result can leave [0, 1] slightly at the extremes.
func gasSurface(n *noise.Perlin, nx, ny float64) float64 {
	value := math.Sin(ny*20 + n.Noise(nx*5, ny*5, 0)*2)
	value += n.Noise(nx*10, ny*20, 1) * 0.5
	return (value + 1) / 2
}

// rockySurface is a five octave fractal sum normalized by total amplitude
func rockySurface(n *noise.Perlin, nx, ny float64) float64 {
	scale := rockyScale
	amplitude := 1.0
	total := 0.0
	maxVal := 0.0

	for oct := 0; oct < rockyOctaves; oct++ {
		total += n.Noise(nx*scale, ny*scale, 0) * amplitude
		maxVal += amplitude
		scale *= 2
		amplitude *= 0.5
	}
	return (total/maxVal + 1) / 2
}

// sunSurface is ridged noise sharpened with a cube
func sunSurface(n *noise.Perlin, nx, ny float64) float64 {
	v := n.Noise(nx*sunScale, ny*sunScale, 0)
	v = 1 - math.Abs(v)
	return v * v * v
}

// iceSurface stretches a single octave along y for soft bands
func iceSurface(n *noise.Perlin, nx, ny float64) float64 {
	return (n.Noise(nx*2, ny*10, 0) + 1) / 2
}

// flatSurface is the lenient fallback for unknown types: pure low color
func flatSurface(*noise.Perlin, float64, float64) float64 {
	return 0
}
