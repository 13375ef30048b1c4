package texture

import "github.com/pkg/errors"

var (
	// ErrUnknownSurfaceType is returned for body types with no recipe
	ErrUnknownSurfaceType = errors.New("unknown surface type")

	// ErrInvalidDimensions is returned when a requested width or height is not positive
	ErrInvalidDimensions = errors.New("invalid texture dimensions")
)
