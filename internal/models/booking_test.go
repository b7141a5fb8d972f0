package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingExpired(t *testing.T) {
	expiry := time.Date(2026, 4, 13, 10, 0, 0, 0, time.UTC)
	b := &Booking{
		BookingDate: expiry.AddDate(0, 0, -HoldDays),
		ExpiryDate:  expiry,
	}

	assert.False(t, b.Expired(expiry.Add(-time.Second)))
	// The expiry instant itself is still inside the hold
	assert.False(t, b.Expired(expiry))
	assert.True(t, b.Expired(expiry.Add(time.Second)))
}

func TestValidPaymentMethod(t *testing.T) {
	assert.True(t, ValidPaymentMethod(PaymentMethodMpesa))
	assert.True(t, ValidPaymentMethod(PaymentMethodBank))
	assert.False(t, ValidPaymentMethod("Cash"))
	assert.False(t, ValidPaymentMethod(""))
	assert.False(t, ValidPaymentMethod("m-pesa"))
}
