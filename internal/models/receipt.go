package models

import "time"

// Receipt is the rendered proof of a settled deposit. The authoritative
// record is the payments row; this struct only feeds the text and PDF
// artifacts handed to the tenant.
type Receipt struct {
	Number       string    `json:"receipt_number"`
	Date         time.Time `json:"date"`
	CustomerName string    `json:"customer_name"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	HouseType    string    `json:"house_type"`
	HouseAddress string    `json:"house_address"`
	Amount       float64   `json:"amount"`
	Method       string    `json:"method"`
}
