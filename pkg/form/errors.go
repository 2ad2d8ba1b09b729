package form

import "errors"

var (
	// ErrUnknownField is returned when a setter receives a field the form
	// does not define.
	ErrUnknownField = errors.New("form: unknown field")
	// ErrPhotoNotSettable is returned when the photo is set as free text; it
	// may only be assigned from the photo encoder output.
	ErrPhotoNotSettable = errors.New("form: profile photo is only set from an encoded file")
)
