package homework

import "errors"

// Payload and record errors. Callers match them with errors.Is; the wrapped
// message carries the offending key or value.
var (
	ErrShape         = errors.New("homework API response has unexpected shape")
	ErrMissingKey    = errors.New("homework API response is missing a required key")
	ErrMissingField  = errors.New("homework record is missing a required field")
	ErrUnknownStatus = errors.New("homework record has unknown review status")
)
