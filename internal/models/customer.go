package models

import "time"

// Customer - Cari hesap
type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone"`
	Address   *string   `json:"address"`
	TaxNumber *string   `json:"tax_number"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}
