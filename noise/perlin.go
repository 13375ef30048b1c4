package noise

import (
	"math"
	"math/rand"
)

// Perlin is a classic 3D gradient noise generator. The permutation table is
// built once in NewPerlin and only read afterwards, so a single instance can be
// sampled from many goroutines.
type Perlin struct {
	perm [512]uint8 // Permutation table, doubled to skip the modulo on corner hashes
}

// NewPerlin shuffles 0..255 with rng (Fisher-Yates) and builds the lookup table.
func NewPerlin(rng *rand.Rand) *Perlin {
	var p [256]uint8
	for i := range p {
		p[i] = uint8(i)
	}
	for i := 255; i > 0; i-- {
		j := rng.Intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}

	n := &Perlin{}
	for i := 0; i < 512; i++ {
		n.perm[i] = p[i&255]
	}
	return n
}

// Permutation returns a copy of the first 256 table entries.
func (n *Perlin) Permutation() [256]uint8 {
	var p [256]uint8
	copy(p[:], n.perm[:256])
	return p
}

// Noise samples the field at (x, y, z). Results lie roughly in [-1, 1].
// Lattice coordinates wrap with period 256 on every axis.
func (n *Perlin) Noise(x, y, z float64) float64 {
	fx, fy, fz := math.Floor(x), math.Floor(y), math.Floor(z)

	// Unit cube containing the point
	X := int(fx) & 255
	Y := int(fy) & 255
	Z := int(fz) & 255

	// Relative position inside the cube
	x -= fx
	y -= fy
	z -= fz

	u := fade(x)
	v := fade(y)
	w := fade(z)

	p := &n.perm
	A := int(p[X]) + Y
	AA := int(p[A]) + Z
	AB := int(p[A+1]) + Z
	B := int(p[X+1]) + Y
	BA := int(p[B]) + Z
	BB := int(p[B+1]) + Z

	return lerp(w,
		lerp(v,
			lerp(u, grad(p[AA], x, y, z), grad(p[BA], x-1, y, z)),
			lerp(u, grad(p[AB], x, y-1, z), grad(p[BB], x-1, y-1, z))),
		lerp(v,
			lerp(u, grad(p[AA+1], x, y, z-1), grad(p[BA+1], x-1, y, z-1)),
			lerp(u, grad(p[AB+1], x, y-1, z-1), grad(p[BB+1], x-1, y-1, z-1))))
}

// fade is the quintic 6t^5 - 15t^4 + 10t^3
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

// grad picks one of the 12 cube-edge directions from the low 4 bits of hash
// and dots it with (x, y, z).
func grad(hash uint8, x, y, z float64) float64 {
	h := hash & 15

	u := y
	if h < 8 {
		u = x
	}

	var v float64
	switch {
	case h < 4:
		v = y
	case h == 12 || h == 14:
		v = x
	default:
		v = z
	}

	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}
