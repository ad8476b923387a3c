package config

import "errors"

var (
	// ErrFragmentNotFound indicates that a fragment name passed to the
	// composer is not present in the fragment registry. Composition fails
	// and the process must not start.
	ErrFragmentNotFound = errors.New("settings fragment not found")

	// ErrInvalidLoginConfigs indicates invalid session settings
	// (for example, a negative session duration).
	ErrInvalidLoginConfigs = errors.New("invalid login configuration")
)
