package serde

import "errors"

// ErrTrailingBytes indicates a payload decoded cleanly but left unread
// bytes behind. An Avro payload carries exactly one value, so a remainder
// means the payload was built against a different schema or corrupted.
var ErrTrailingBytes = errors.New("trailing bytes after avro value")

// IsTrailingBytes checks if the error reports an incompletely consumed
// payload.
func IsTrailingBytes(err error) bool {
	return errors.Is(err, ErrTrailingBytes)
}
