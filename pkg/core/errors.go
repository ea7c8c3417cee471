package core

import "github.com/pkg/errors"

// ErrDegenerateBounds is returned when a primitive reports a bounding box
// that is not finite (NaN or infinite extent), which would otherwise poison
// every ancestor's bounding box in the tree.
var ErrDegenerateBounds = errors.New("core: primitive bounding box is not finite")

// WrapConstruction wraps an error encountered while constructing a shape or
// accelerator with the given context, e.g. which mesh or which face.
func WrapConstruction(err error, context string) error {
	return errors.Wrap(err, context)
}

// WrapConstructionf wraps an error encountered while constructing a shape or
// accelerator with a formatted context message.
func WrapConstructionf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}
