package texture

import (
	"math"
	"math/rand"
)

const (
	craterMinRadius  = 5.0
	craterRadiusSpan = 30.0
	craterStrength   = 0.2 // Opacity of the black multiply fill
)

// Crater is one darkened disc, in pixel units
type Crater struct {
	X, Y   float64
	Radius float64
}

// ApplyCraters stamps count random craters onto buf. Each covered pixel is
// multiplied toward black by craterStrength; overlaps compound. Alpha is kept.
func ApplyCraters(buf *PixelBuffer, count int, rng *rand.Rand) []Crater {
	craters := make([]Crater, 0, count)
	for k := 0; k < count; k++ {
		c := Crater{
			X:      rng.Float64() * float64(buf.Width),
			Y:      rng.Float64() * float64(buf.Height),
			Radius: rng.Float64()*craterRadiusSpan + craterMinRadius,
		}
		darken(buf, c)
		craters = append(craters, c)
	}
	return craters
}

// darken applies one multiply-composite disc. Pixels count as covered when
// their centre lies inside the radius.
func darken(buf *PixelBuffer, c Crater) {
	x0 := max(0, int(math.Floor(c.X-c.Radius)))
	x1 := min(buf.Width-1, int(math.Ceil(c.X+c.Radius)))
	y0 := max(0, int(math.Floor(c.Y-c.Radius)))
	y1 := min(buf.Height-1, int(math.Ceil(c.Y+c.Radius)))

	r2 := c.Radius * c.Radius
	keep := 1 - craterStrength // base*(1-a) + base*black*a

	for y := y0; y <= y1; y++ {
		dy := float64(y) + 0.5 - c.Y
		for x := x0; x <= x1; x++ {
			dx := float64(x) + 0.5 - c.X
			if dx*dx+dy*dy > r2 {
				continue
			}
			i := buf.Offset(x, y)
			buf.Pix[i] = channel(float64(buf.Pix[i]) * keep / 255)
			buf.Pix[i+1] = channel(float64(buf.Pix[i+1]) * keep / 255)
			buf.Pix[i+2] = channel(float64(buf.Pix[i+2]) * keep / 255)
		}
	}
}
