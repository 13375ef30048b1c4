package texture

import (
	"math/rand"

	"github.com/dgravesa/go-parallel/parallel"
	"github.com/pkg/errors"

	"solarsystem/noise"
)

// DefaultCraterCount is the number of craters stamped on rocky surfaces
const DefaultCraterCount = 20

// Options tune a Synthesizer
type Options struct {
	CraterCount int  // Craters per rocky surface; negative means DefaultCraterCount
	Strict      bool // Fail on unknown body types instead of painting the low color
}

// Synthesizer turns SurfaceSpecs into pixel buffers. Noise sampling is
// read-only and runs rows in parallel; crater placement consumes rng on the
// calling goroutine, so a Synthesizer must not be shared between goroutines.
type Synthesizer struct {
	noise       *noise.Perlin
	rng         *rand.Rand
	craterCount int
	strict      bool
}

// NewSynthesizer builds a synthesizer over an existing noise table. rng drives
// crater placement.
func NewSynthesizer(n *noise.Perlin, rng *rand.Rand, opts Options) *Synthesizer {
	craters := opts.CraterCount
	if craters < 0 {
		craters = DefaultCraterCount
	}
	return &Synthesizer{
		noise:       n,
		rng:         rng,
		craterCount: craters,
		strict:      opts.Strict,
	}
}

// NewSeededSynthesizer creates the noise table and the synthesizer from one
// seed, so permutation and craters reproduce together.
func NewSeededSynthesizer(seed int64, opts Options) *Synthesizer {
	rng := rand.New(rand.NewSource(seed))
	return NewSynthesizer(noise.NewPerlin(rng), rng, opts)
}

// Noise exposes the underlying noise table
func (s *Synthesizer) Noise() *noise.Perlin {
	return s.noise
}

// Synthesize renders spec into a width x height RGBA buffer.
func (s *Synthesizer) Synthesize(spec SurfaceSpec, width, height int) (*PixelBuffer, error) {
	buf, err := NewPixelBuffer(width, height)
	if err != nil {
		return nil, err
	}

	shade, ok := recipes[spec.Type]
	if !ok {
		if s.strict {
			return nil, errors.Wrapf(ErrUnknownSurfaceType, "value %d", uint8(spec.Type))
		}
		shade = flatSurface
	}

	fw, fh := float64(width), float64(height)
	parallel.For(height, func(y, _ int) {
		ny := float64(y) / fh
		row := y * width * 4
		for x := 0; x < width; x++ {
			n := shade(s.noise, float64(x)/fw, ny)
			buf.setColor(row+x*4, spec.Low.Lerp(spec.High, n))
		}
	})

	if spec.Type == Rocky && s.craterCount > 0 {
		ApplyCraters(buf, s.craterCount, s.rng)
	}

	return buf, nil
}
