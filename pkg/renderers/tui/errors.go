package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoOptions is returned by Select when there is nothing to choose.
	ErrNoOptions = errors.New("tui: no options to select")
	errNoApp     = errors.New("tui: app is nil")

	errInvalidDate = errors.New("must be a date like YYYY-MM-DD or DD/MM/YYYY")
)
