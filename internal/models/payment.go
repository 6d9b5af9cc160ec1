package models

import "time"

// PaymentType - Ödeme tipi
type PaymentType string

const (
	PaymentTypeReceivable PaymentType = "alacak" // bize borçlu olunan
	PaymentTypePayable    PaymentType = "borc"   // bizim borcumuz
)

func (t PaymentType) Valid() bool {
	return t == PaymentTypeReceivable || t == PaymentTypePayable
}

// Payment - Cariye bağlı alacak/borç kaydı.
// CustomerID zorunlu bir ilişki değildir, CustomerName kayıt anındaki kopyadır.
type Payment struct {
	ID           string      `json:"id"`
	CustomerID   string      `json:"customer_id"`
	CustomerName string      `json:"customer_name"`
	Amount       float64     `json:"amount"`
	PaymentType  PaymentType `json:"payment_type"`
	IsPaid       bool        `json:"is_paid"`
	PaymentDate  *time.Time  `json:"payment_date"`
	DueDate      time.Time   `json:"due_date"`
	Description  *string     `json:"description"`
	CreatedAt    time.Time   `json:"created_at"`
}
