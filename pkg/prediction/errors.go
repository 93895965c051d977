package prediction

import "errors"

// Pipeline-level failures. Provider errors never surface here: every
// external-lookup component swallows its own failures and returns a safe
// default. Only missing required inputs and total team-resolution failure
// abort a prediction.
var (
	// ErrInvalidInput marks missing or malformed required fields
	ErrInvalidInput = errors.New("invalid input")

	// ErrTeamsUnresolved means neither team could be mapped to a provider id
	ErrTeamsUnresolved = errors.New("could not resolve either team")
)
