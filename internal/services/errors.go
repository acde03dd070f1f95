package services

import "errors"

// Handlers map these onto HTTP status codes; wrap them with fmt.Errorf("...: %w").
var (
	ErrValidation         = errors.New("validation error")
	ErrNotFound           = errors.New("not found")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrUpstream           = errors.New("upstream failure")
)
