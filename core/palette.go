package core

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"solarsystem/texture"
)

// Lightness shifts applied to the base color to get the second surface color
const (
	gasLightnessShift   = 0.1
	solidLightnessShift = -0.2
)

// ParseColor reads a #rrggbb string
func ParseColor(hex string) (texture.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return texture.Color{}, errors.Wrapf(err, "color %q", hex)
	}
	return texture.Color{R: c.R, G: c.G, B: c.B}, nil
}

// SurfaceSpec builds the texture request for a body: the base color and the
// same hue with lightness moved up for gas giants and down for everything else.
func (d BodyDef) SurfaceSpec() (texture.SurfaceSpec, error) {
	base, err := colorful.Hex(d.Color)
	if err != nil {
		return texture.SurfaceSpec{}, errors.Wrapf(err, "%s color %q", d.Name, d.Color)
	}

	shift := solidLightnessShift
	if d.Type == texture.Gas {
		shift = gasLightnessShift
	}

	h, s, l := base.Hsl()
	l = math.Max(0, math.Min(1, l+shift))
	second := colorful.Hsl(h, s, l).Clamped()

	return texture.SurfaceSpec{
		Type: d.Type,
		Low:  texture.Color{R: base.R, G: base.G, B: base.B},
		High: texture.Color{R: second.R, G: second.G, B: second.B},
	}, nil
}
