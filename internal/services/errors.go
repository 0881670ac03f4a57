package services

import "errors"

// Error taxonomy surfaced to the HTTP layer. Handlers map these to status
// codes with errors.Is.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	// ErrCapability wraps failures of the external capabilities (language
	// model, speech, vector store), including timeouts.
	ErrCapability = errors.New("capability failure")
)
