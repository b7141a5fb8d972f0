package models

import "time"

// Accepted payment methods. The flows are simulated confirmations; there
// is no gateway integration.
const (
	PaymentMethodMpesa = "M-Pesa"
	PaymentMethodBank  = "Bank Transfer"
)

func ValidPaymentMethod(method string) bool {
	return method == PaymentMethodMpesa || method == PaymentMethodBank
}

type Payment struct {
	ID            int       `json:"id"`
	BookingID     int       `json:"booking_id"`
	Amount        float64   `json:"amount"`
	PaymentDate   time.Time `json:"payment_date"`
	Method        string    `json:"method"`
	ReceiptNumber string    `json:"receipt_number"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreatePaymentRequest represents the request body for settling a booking
type CreatePaymentRequest struct {
	BookingID int     `json:"booking_id"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"method"`
}
