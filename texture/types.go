package texture

import (
	"math"
	"strings"

	"github.com/pkg/errors"
)

// BodyType selects the shading recipe for a surface
type BodyType uint8

const (
	Gas BodyType = iota + 1
	Rocky
	Sun
	Ice
)

var bodyTypeNames = map[BodyType]string{
	Gas:   "gas",
	Rocky: "rocky",
	Sun:   "sun",
	Ice:   "ice",
}

func (t BodyType) String() string {
	if name, ok := bodyTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether t names one of the known recipes
func (t BodyType) Valid() bool {
	_, ok := bodyTypeNames[t]
	return ok
}

// ParseBodyType maps "gas", "rocky", "sun" or "ice" (case-insensitive) to a BodyType.
func ParseBodyType(name string) (BodyType, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for t, n := range bodyTypeNames {
		if n == key {
			return t, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownSurfaceType, "%q", name)
}

// MarshalText lets BodyType travel as its name in JSON
func (t BodyType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, errors.Wrapf(ErrUnknownSurfaceType, "value %d", uint8(t))
	}
	return []byte(t.String()), nil
}

func (t *BodyType) UnmarshalText(text []byte) error {
	parsed, err := ParseBodyType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Color is a linear blend endpoint with channels in [0, 1]
type Color struct {
	R, G, B float64
}

// Lerp blends c toward other by n. n is not clamped.
func (c Color) Lerp(other Color, n float64) Color {
	return Color{
		R: c.R*(1-n) + other.R*n,
		G: c.G*(1-n) + other.G*n,
		B: c.B*(1-n) + other.B*n,
	}
}

// RGB255 converts c to 8-bit channels
func (c Color) RGB255() (r, g, b uint8) {
	return channel(c.R), channel(c.G), channel(c.B)
}

// SurfaceSpec describes one texture request
type SurfaceSpec struct {
	Type BodyType
	Low  Color
	High Color
}

// PixelBuffer is an RGBA8 image, row-major with the origin at the top left
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []byte // len == Width*Height*4
}

// NewPixelBuffer allocates an opaque black buffer
func NewPixelBuffer(width, height int) (*PixelBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "%dx%d", width, height)
	}
	buf := &PixelBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*4),
	}
	for i := 3; i < len(buf.Pix); i += 4 {
		buf.Pix[i] = 255
	}
	return buf, nil
}

// Offset returns the index of the R channel of pixel (x, y)
func (p *PixelBuffer) Offset(x, y int) int {
	return (y*p.Width + x) * 4
}

// At returns the RGBA bytes of pixel (x, y)
func (p *PixelBuffer) At(x, y int) (r, g, b, a uint8) {
	i := p.Offset(x, y)
	return p.Pix[i], p.Pix[i+1], p.Pix[i+2], p.Pix[i+3]
}

// setColor writes c as 8-bit channels with alpha 255
func (p *PixelBuffer) setColor(i int, c Color) {
	p.Pix[i] = channel(c.R)
	p.Pix[i+1] = channel(c.G)
	p.Pix[i+2] = channel(c.B)
	p.Pix[i+3] = 255
}

// channel converts [0,1] to a byte the way an 8-bit clamped canvas store does:
// round half to even, then saturate.
func channel(v float64) uint8 {
	s := math.RoundToEven(v * 255)
	if s <= 0 || math.IsNaN(s) {
		return 0
	}
	if s >= 255 {
		return 255
	}
	return uint8(s)
}
