package submission

import "errors"

var (
	// ErrSubmitting is returned when Save or Clear is called while a
	// submission is in flight.
	ErrSubmitting  = errors.New("submission: a save is already in progress")
	errNoSubmitter = errors.New("submission: submitter is nil")
)
