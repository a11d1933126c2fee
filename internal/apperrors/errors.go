package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrConfiguration indicates an unrecognized target kind, bucket type or
// no-model name. It is terminal: callers must not retry.
var ErrConfiguration = errors.New("configuration error")
