// Package: pointskel/builder
//
// errors.go - sentinel errors for the builder package.
//
// Error policy:
//   - Only sentinel variables are exposed; callers branch with errors.Is.
//   - Constructors attach context with %w via builderErrorf.
//   - Constructors never panic at runtime; validation panics are confined
//     to option constructors (WithX...).

package builder

import (
	"errors"
	"fmt"
)

// ErrTooFewPoints indicates that a count parameter (points, rings, samples
// per ring) is smaller than the constructor's minimum.
var ErrTooFewPoints = errors.New("builder: parameter too small")

// ErrBadGeometry indicates a degenerate shape: a zero-length axis, a
// negative radius or an inverted bounding box.
var ErrBadGeometry = errors.New("builder: degenerate geometry")

// builderErrorf wraps sentinel with the constructor name and a detail message.
func builderErrorf(method string, sentinel error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w: %s", method, sentinel, fmt.Sprintf(format, args...))
}
