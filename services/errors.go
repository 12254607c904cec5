// File: /services/errors.go
package services

import "errors"

// Sentinel errors returned by the workflow services. Controllers map these to
// HTTP statuses in one place; anything else is treated as an upstream failure.
var (
	ErrEventNotFound     = errors.New("event not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrAlreadyRegistered = errors.New("already registered for this event")
	ErrCapacityFull      = errors.New("event is at capacity")
	ErrNotRegistered     = errors.New("not registered for this event")
	ErrPaymentRequired   = errors.New("this event requires a registration payment")
	ErrForbidden         = errors.New("you do not have permission to perform this action")
	ErrEventInPast       = errors.New("event has already taken place")
	ErrAlreadyPromoted   = errors.New("event already has an active promotion")

	// ErrValidation wraps user-correctable input problems
	ErrValidation = errors.New("validation failed")
)
