package model

import "time"

// Expense amounts are fixed-point decimals carried as 2-scale strings
// ("12.50") so values round-trip to clients without float drift.
type Expense struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Amount      string    `json:"amount"`
	Currency    string    `json:"currency"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
}
