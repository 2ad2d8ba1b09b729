package validation

import "errors"

var (
	// ErrRequired is reported when a required field is empty.
	ErrRequired = errors.New("required")
	// ErrEmail is reported when the value is not an email address.
	ErrEmail = errors.New("must be a valid email address")
	// ErrPhone is reported when the phone is not 9 or 10 digits.
	ErrPhone = errors.New("must be 9 or 10 digits")
	// ErrSex is reported for values outside Male/Female.
	ErrSex = errors.New("must be Male or Female")
	// ErrUnknownField is returned for fields the form does not define.
	ErrUnknownField = errors.New("validation: unknown field")
)
