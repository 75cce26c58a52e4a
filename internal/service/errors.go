package service

import "errors"

// Domain error taxonomy. Services return these (usually wrapped with context);
// the API layer classifies with errors.Is and owns the status-code mapping.
var (
	ErrNotFound     = errors.New("not found")                 // Referenced entity absent -> 404
	ErrValidation   = errors.New("invalid input")             // Malformed or inconsistent input -> 400
	ErrInvalidState = errors.New("operation not permitted")   // Entity state forbids the operation -> 400
	ErrUnauthorized = errors.New("invalid credentials")       // Credential failure -> 401
)
