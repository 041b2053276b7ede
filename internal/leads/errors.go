package leads

import "errors"

var (
	// ErrMissingName is returned when a candidate has no name.
	ErrMissingName = errors.New("name is required")

	// ErrMissingEmail is returned when a candidate has no email.
	ErrMissingEmail = errors.New("email is required")

	// ErrMissingPhone is returned when a candidate has no phone.
	ErrMissingPhone = errors.New("phone is required")
)
