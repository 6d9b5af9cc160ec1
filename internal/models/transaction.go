package models

import "time"

type TransactionType string

const (
	TransactionIncome  TransactionType = "gelir"
	TransactionExpense TransactionType = "gider"
)

func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "nakit"
	PaymentMethodPOS  PaymentMethod = "pos"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCash || m == PaymentMethodPOS
}

// Transaction - Kasa hareketi (nakit / pos)
type Transaction struct {
	ID              string          `json:"id"`
	Type            TransactionType `json:"type"`
	PaymentMethod   PaymentMethod   `json:"payment_method"`
	Amount          float64         `json:"amount"`
	Description     string          `json:"description"`
	TransactionDate time.Time       `json:"transaction_date"`
	CreatedAt       time.Time       `json:"created_at"`
}
