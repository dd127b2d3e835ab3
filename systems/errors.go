package systems

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/ecoscript/components"
)

// ErrConfiguration is wrapped by every error caused by a malformed
// legend, map or organism specification.
var ErrConfiguration = errors.New("configuration error")

// OutOfBoundsError reports a grid access outside the world. Grid accessors
// panic with it: it always indicates broken geometry in a caller.
type OutOfBoundsError struct {
	Pos           components.Vector
	Width, Height int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("position (%d, %d) out of bounds for %dx%d world", e.Pos.X, e.Pos.Y, e.Width, e.Height)
}

func configErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}
