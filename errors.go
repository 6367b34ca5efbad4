package truemapper

import "errors"

// Usage errors are the only errors a mapping call can return. Everything
// value-level (parse failures, overflow, unreadable members) degrades to the
// destination's zero value instead of surfacing.
var (
	// ErrCollectionToScalar reports an iterable source mapped into a
	// destination shape that is not a recognized container.
	ErrCollectionToScalar = errors.New("truemapper: cannot map collection source into scalar destination shape")

	// ErrScalarToCollection reports a non-iterable source mapped into a
	// container destination shape.
	ErrScalarToCollection = errors.New("truemapper: cannot map scalar source into collection destination shape")

	// ErrUnsupportedShape reports a destination container shape with no
	// viable construction strategy.
	ErrUnsupportedShape = errors.New("truemapper: unsupported destination container shape")

	// ErrNotPointer reports a destination argument that is not a non-nil
	// pointer.
	ErrNotPointer = errors.New("truemapper: destination must be a non-nil pointer")
)
