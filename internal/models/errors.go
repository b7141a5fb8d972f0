package models

import "errors"

// Domain errors shared by repositories, services and handlers. Handlers
// map these to HTTP statuses with errors.Is.
var (
	ErrCountyNotFound     = errors.New("county not found")
	ErrTownNotFound       = errors.New("town not found")
	ErrHouseNotFound      = errors.New("house not found")
	ErrHouseAlreadyBooked = errors.New("house is already booked")
	ErrHouseUnavailable   = errors.New("house is no longer available")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrBookingExpired     = errors.New("booking hold has expired")
	ErrNotBookingOwner    = errors.New("booking belongs to another user")
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrAlreadyPaid        = errors.New("booking is already paid")
	ErrAmountMismatch     = errors.New("payment amount does not match the deposit fee")
	ErrInvalidMethod      = errors.New("invalid payment method")
	ErrDuplicateEmail     = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)
