package services

import "errors"

var (
	// ErrValidation marks a request rejected before any work started.
	ErrValidation = errors.New("validation failed")
	// ErrAgentFailed marks a remote agent that answered with success=false.
	ErrAgentFailed = errors.New("agent reported failure")
)
