package models

import "time"

// HoldDays is the length of the booking hold: a house stays reserved for
// 30 days from the booking date unless the deposit is paid first
const HoldDays = 30

type Booking struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	HouseID     int       `json:"house_id"`
	BookingDate time.Time `json:"booking_date"`
	ExpiryDate  time.Time `json:"expiry_date"`
	IsPaid      bool      `json:"is_paid"`
	CreatedAt   time.Time `json:"created_at"`
}

// Expired reports whether the hold has lapsed at the given instant.
// Expiry is lazy: nothing sweeps bookings in the background, callers
// check at decision time.
func (b *Booking) Expired(now time.Time) bool {
	return now.After(b.ExpiryDate)
}

// CreateBookingRequest represents the request body for booking a house
type CreateBookingRequest struct {
	HouseID int `json:"house_id"`
}

// BookingWithHouse is a booking joined with the house it reserves,
// used by the "my bookings" view
type BookingWithHouse struct {
	Booking
	HouseType    string `json:"house_type"`
	HouseAddress string `json:"house_address"`
}
