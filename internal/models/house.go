package models

import "time"

type House struct {
	ID          int        `json:"id"`
	Type        string     `json:"type"`
	TownID      int        `json:"town_id"`
	Address     string     `json:"address"`
	MapLink     string     `json:"map_link"`
	DepositFee  float64    `json:"deposit_fee"`
	MonthlyRent float64    `json:"monthly_rent"`
	IsAvailable bool       `json:"is_available"`
	IsBooked    bool       `json:"is_booked"`
	BookedUntil *time.Time `json:"booked_until,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// HouseSearchFilter holds the optional search predicates; zero values mean
// "no constraint" (AND semantics across the supplied ones)
type HouseSearchFilter struct {
	Type    string  `json:"type"`
	MinRent float64 `json:"min_rent"`
	MaxRent float64 `json:"max_rent"`
	TownID  int     `json:"town_id"`
}

// PaymentDetails holds the per-house payment instructions shown to a
// customer before they settle a deposit
type PaymentDetails struct {
	HouseID       int    `json:"house_id"`
	BankAccount   string `json:"bank_account"`
	MpesaTill     string `json:"mpesa_till"`
	OwnerContacts string `json:"owner_contacts"`
}
