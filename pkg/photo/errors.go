package photo

import "errors"

var (
	// ErrNoFile is returned when no file was selected; callers treat it as a
	// no-op.
	ErrNoFile = errors.New("photo: no file selected")
	// ErrTooLarge is returned when the file exceeds the configured limit.
	ErrTooLarge = errors.New("photo: file exceeds size limit")
)
