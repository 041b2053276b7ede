package chat

import "errors"

var (
	// ErrNoMessages is returned when a request carries an empty message list.
	ErrNoMessages = errors.New("at least one message is required")

	// ErrCompletion is returned when the completion API call fails or
	// returns no choices. Fatal to the turn; no retry.
	ErrCompletion = errors.New("completion request failed")

	// ErrBadToolPayload is returned when the model's extraction payload is
	// not valid JSON or is missing a required field. Fatal to the turn; a
	// partial lead is never persisted.
	ErrBadToolPayload = errors.New("malformed extraction payload")
)
