package core

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"solarsystem/texture"
)

// ErrUnknownBody is returned when focusing a name that is not in the scene
var ErrUnknownBody = errors.New("unknown body")

// SolarSystem owns the bodies, the backdrop and the camera. It is not safe for
// concurrent use; callers serialize Step and FocusOn.
type SolarSystem struct {
	Bodies    []*Body
	Particles *ParticleField
	Camera    *Camera

	byName map[string]*Body
	frame  uint64
}

// NewSolarSystem places every catalog body and synthesizes its texture. This
// blocks until all textures exist; nothing is generated after setup.
func NewSolarSystem(defs []BodyDef, synth *texture.Synthesizer, resolution int, rng *rand.Rand) (*SolarSystem, error) {
	sys := &SolarSystem{
		Camera: NewCamera(),
		byName: make(map[string]*Body, len(defs)),
	}

	for _, def := range defs {
		if _, dup := sys.byName[def.Name]; dup {
			return nil, errors.Errorf("duplicate body %q", def.Name)
		}

		spec, err := def.SurfaceSpec()
		if err != nil {
			return nil, err
		}

		start := time.Now()
		buf, err := synth.Synthesize(spec, resolution, resolution)
		if err != nil {
			return nil, errors.Wrapf(err, "synthesizing %s", def.Name)
		}
		fmt.Printf("Generated %s texture (%s, %dx%d) in %.2fs\n",
			def.Name, def.Type, resolution, resolution, time.Since(start).Seconds())

		body := &Body{
			BodyDef: def,
			Angle:   rng.Float64() * math.Pi * 2,
			Surface: spec,
			Texture: texture.NewTexture(def.Name, buf),
		}
		if def.Distance > 0 {
			body.Position = OrbitPosition(body.Angle, def.Distance)
		}

		sys.Bodies = append(sys.Bodies, body)
		sys.byName[def.Name] = body
	}

	sys.Particles = NewParticleField(rng, DefaultParticleCount, DefaultParticleRadius)
	return sys, nil
}

// Body looks up a body by name
func (s *SolarSystem) Body(name string) (*Body, bool) {
	b, ok := s.byName[name]
	return b, ok
}

// Frame is the number of steps taken so far
func (s *SolarSystem) Frame() uint64 {
	return s.frame
}

// Step advances the scene by one frame: bodies first, then the camera so it
// tracks where the focused body is now.
func (s *SolarSystem) Step() {
	for _, b := range s.Bodies {
		b.Update()
	}
	s.Particles.Update()
	s.Camera.Update(FrameSeconds)
	s.frame++
}

// FocusOn flies the camera to the named body
func (s *SolarSystem) FocusOn(name string) (*Body, error) {
	b, ok := s.byName[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownBody, "%q", name)
	}
	s.Camera.FlyTo(b)
	return b, nil
}

// Focused returns the name of the followed body, or ""
func (s *SolarSystem) Focused() string {
	if b := s.Camera.Following(); b != nil {
		return b.Name
	}
	return ""
}

// BodyState is the per-frame pose of one body
type BodyState struct {
	Name     string     `json:"name"`
	Position mgl64.Vec3 `json:"position"`
	Spin     float64    `json:"spin"`
}

// Snapshot is everything a renderer needs to draw one frame
type Snapshot struct {
	Frame            uint64      `json:"frame"`
	Bodies           []BodyState `json:"bodies"`
	ParticleRotation float64     `json:"particleRotation"`
	CameraPosition   mgl64.Vec3  `json:"cameraPosition"`
	CameraTarget     mgl64.Vec3  `json:"cameraTarget"`
	Focus            string      `json:"focus,omitempty"`
}

// Snapshot copies the current pose of the scene
func (s *SolarSystem) Snapshot() Snapshot {
	states := make([]BodyState, len(s.Bodies))
	for i, b := range s.Bodies {
		states[i] = BodyState{Name: b.Name, Position: b.Position, Spin: b.Spin}
	}
	return Snapshot{
		Frame:            s.frame,
		Bodies:           states,
		ParticleRotation: s.Particles.Rotation,
		CameraPosition:   s.Camera.Position,
		CameraTarget:     s.Camera.Target,
		Focus:            s.Focused(),
	}
}
