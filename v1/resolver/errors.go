package resolver

import "errors"

// ErrInvalidReference indicates an operation was given a reference kind it
// cannot work with. Registration is the main case: the registry subject is
// derived from name and fingerprint, so an ID reference cannot be
// registered.
var ErrInvalidReference = errors.New("invalid schema reference for operation")

// IsInvalidReference checks if the error reports an unusable reference
// kind.
func IsInvalidReference(err error) bool {
	return errors.Is(err, ErrInvalidReference)
}
