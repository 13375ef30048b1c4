package core

import "time"

// FrameStepper converts wall-clock time into whole scene frames. Leftover time
// carries into the next call; a long stall runs at most MaxFrames frames and
// drops the rest so the loop catches up instead of spiralling.
type FrameStepper struct {
	Frame     time.Duration
	MaxFrames int

	pending time.Duration
}

// NewFrameStepper creates a stepper for fps frames per second
func NewFrameStepper(fps, maxFrames int) *FrameStepper {
	return &FrameStepper{
		Frame:     time.Second / time.Duration(fps),
		MaxFrames: maxFrames,
	}
}

// Advance adds elapsed time and returns how many frames should run now
func (fs *FrameStepper) Advance(elapsed time.Duration) int {
	fs.pending += elapsed
	frames := int(fs.pending / fs.Frame)
	fs.pending -= time.Duration(frames) * fs.Frame

	if frames > fs.MaxFrames {
		frames = fs.MaxFrames
		fs.pending = 0
	}
	return frames
}
