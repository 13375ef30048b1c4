package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"
)

const (
	chimeDuration = 400 * time.Millisecond
	baseFrequency = 880.0 // Hz for a body at the origin
	lowFrequency  = 220.0 // Hz for the outermost orbit
)

// Chime plays a short decaying tone when the camera focuses a body. Nearer
// bodies ring higher.
type Chime struct {
	sampleRate  beep.SampleRate
	maxDistance float64
	ready       bool
}

// NewChime prepares a chime for orbits up to maxDistance. The speaker is not
// touched until Init.
func NewChime(sampleRate int, maxDistance float64) *Chime {
	return &Chime{
		sampleRate:  beep.SampleRate(sampleRate),
		maxDistance: maxDistance,
	}
}

// Init opens the audio device
func (c *Chime) Init() error {
	if err := speaker.Init(c.sampleRate, c.sampleRate.N(time.Second/10)); err != nil {
		return errors.Wrap(err, "audio init")
	}
	c.ready = true
	return nil
}

// Frequency maps an orbital distance onto a pitch, log-spaced between
// baseFrequency and lowFrequency.
func (c *Chime) Frequency(distance float64) float64 {
	if c.maxDistance <= 0 || distance <= 0 {
		return baseFrequency
	}
	t := math.Min(distance/c.maxDistance, 1)
	return baseFrequency * math.Pow(lowFrequency/baseFrequency, t)
}

// Tone builds the streamer for one chime
func (c *Chime) Tone(distance float64) (beep.Streamer, error) {
	sine, err := generators.SineTone(c.sampleRate, c.Frequency(distance))
	if err != nil {
		return nil, errors.Wrap(err, "sine tone")
	}
	total := c.sampleRate.N(chimeDuration)
	return decay(beep.Take(total, sine), total), nil
}

// Play queues a chime for distance. Without Init it does nothing.
func (c *Chime) Play(distance float64) error {
	if !c.ready {
		return nil
	}
	tone, err := c.Tone(distance)
	if err != nil {
		return err
	}
	speaker.Play(tone)
	return nil
}

// Close releases the audio device
func (c *Chime) Close() {
	if c.ready {
		speaker.Close()
		c.ready = false
	}
}

// decay fades s linearly to silence over total samples
func decay(s beep.Streamer, total int) beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n, ok := s.Stream(samples)
		for i := 0; i < n; i++ {
			gain := 1 - float64(pos)/float64(total)
			if gain < 0 {
				gain = 0
			}
			samples[i][0] *= gain * 0.3
			samples[i][1] *= gain * 0.3
			pos++
		}
		return n, ok
	})
}
