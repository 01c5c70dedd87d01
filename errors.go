package statej

import "errors"

// Sentinel errors for instance and global-state operations.
var (
	ErrInvalidKey        = errors.New("statej: invalid state key")
	ErrContainerNotFound = errors.New("statej: container not found")
	ErrRenderFailed      = errors.New("statej: render failed")
)

// IsInvalidArgument checks if err is an invalid-argument error.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidKey)
}

// IsNotFound checks if err is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrContainerNotFound)
}

// IsRenderFailure checks if err came from a failed render step.
func IsRenderFailure(err error) bool {
	return errors.Is(err, ErrRenderFailed)
}
