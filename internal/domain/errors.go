package domain

import "errors"

var (
	ErrNotFound = errors.New("not found")

	ErrInvalidQuantity = errors.New("quantity out of range")
	ErrInvalidClass    = errors.New("unknown travel class")
	ErrInvalidFare     = errors.New("base price must be positive")

	ErrInsufficientCapacity  = errors.New("not enough seats in class")
	ErrFlightCancelled       = errors.New("flight is cancelled")
	ErrBookingNotCancellable = errors.New("booking is not in a cancellable state")
	ErrLocatorExhausted      = errors.New("could not allocate a unique locator")

	ErrForbidden = errors.New("booking belongs to another customer")
)
