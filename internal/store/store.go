package store

import (
	"context"
	"errors"

	"cari-takip-backend/internal/models"
)

// ErrNotFound id veya kullanıcı adıyla aranan kayıt yok.
var ErrNotFound = errors.New("kayıt bulunamadı")

// ErrDuplicate benzersiz alan (id, kullanıcı adı) zaten mevcut.
var ErrDuplicate = errors.New("kayıt zaten mevcut")

// CreatedRange created_at üzerinde metin sınırları. İki sınır da dolu
// değilse filtre uygulanmaz.
type CreatedRange struct {
	From string
	To   string
}

func (r CreatedRange) Active() bool {
	return r.From != "" && r.To != ""
}

func (r CreatedRange) contains(createdAt string) bool {
	return createdAt >= r.From && createdAt <= r.To
}

type PaymentFilter struct {
	CustomerID string
	UnpaidOnly bool
	Created    CreatedRange
	Limit      int
}

type TransactionFilter struct {
	Created CreatedRange
	Limit   int
}

type AuditFilter struct {
	EntityType string
	EntityID   string
	Limit      int
}

// Store dört koleksiyona (+ audit log) tipli erişim sağlar. Listeler
// ekleme sırasıyla döner. Limit <= 0 sınırsız demektir.
type Store interface {
	ListUsers(ctx context.Context, limit int) ([]models.User, error)
	GetUserByID(ctx context.Context, id string) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
	CreateUser(ctx context.Context, u *models.User) error
	UpdateUserPassword(ctx context.Context, username, passwordHash string) error
	DeleteUser(ctx context.Context, id string) error

	ListCustomers(ctx context.Context, limit int) ([]models.Customer, error)
	GetCustomer(ctx context.Context, id string) (models.Customer, error)
	CreateCustomer(ctx context.Context, c *models.Customer) error
	// UpdateCustomer id ve created_at dışındaki alanları değiştirir.
	UpdateCustomer(ctx context.Context, c *models.Customer) error
	DeleteCustomer(ctx context.Context, id string) error
	CountCustomers(ctx context.Context) (int64, error)

	ListPayments(ctx context.Context, f PaymentFilter) ([]models.Payment, error)
	GetPayment(ctx context.Context, id string) (models.Payment, error)
	CreatePayment(ctx context.Context, p *models.Payment) error
	UpdatePayment(ctx context.Context, p *models.Payment) error
	DeletePayment(ctx context.Context, id string) error

	ListTransactions(ctx context.Context, f TransactionFilter) ([]models.Transaction, error)
	CreateTransaction(ctx context.Context, t *models.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error

	WriteAuditLog(ctx context.Context, l *models.AuditLog) error
	ListAuditLogs(ctx context.Context, f AuditFilter) ([]models.AuditLog, error)

	Ping(ctx context.Context) error
}
