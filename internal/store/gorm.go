package store

import (
	"context"
	"errors"
	"fmt"

	"cari-takip-backend/internal/models"

	"gorm.io/gorm"
)

// GormStore Postgres üzerinde çalışan Store.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) AutoMigrate() error {
	if err := s.db.AutoMigrate(Records()...); err != nil {
		return fmt.Errorf("AutoMigrate hatası: %w", err)
	}
	return nil
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// ordered ekleme sırası + limit uygular.
func (s *GormStore) ordered(ctx context.Context, limit int) *gorm.DB {
	q := s.db.WithContext(ctx).Order("seq ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	return q
}

func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}

// deleteByID silinen satır yoksa ErrNotFound döner.
func (s *GormStore) deleteByID(ctx context.Context, model any, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// -------------------------
// Users
// -------------------------

func (s *GormStore) ListUsers(ctx context.Context, limit int) ([]models.User, error) {
	var recs []UserRecord
	if err := s.ordered(ctx, limit).Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("kullanıcılar listelenemedi: %w", err)
	}
	return mapAll(recs, userFromRecord)
}

func (s *GormStore) GetUserByID(ctx context.Context, id string) (models.User, error) {
	var rec UserRecord
	if err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return models.User{}, translate(err)
	}
	return userFromRecord(rec)
}

func (s *GormStore) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	var rec UserRecord
	if err := s.db.WithContext(ctx).First(&rec, "username = ?", username).Error; err != nil {
		return models.User{}, translate(err)
	}
	return userFromRecord(rec)
}

func (s *GormStore) CreateUser(ctx context.Context, u *models.User) error {
	stamp(&u.ID, &u.CreatedAt)
	rec := userToRecord(*u)
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (s *GormStore) UpdateUserPassword(ctx context.Context, username, passwordHash string) error {
	res := s.db.WithContext(ctx).Model(&UserRecord{}).
		Where("username = ?", username).
		Update("password_hash", passwordHash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) DeleteUser(ctx context.Context, id string) error {
	return s.deleteByID(ctx, &UserRecord{}, id)
}

// -------------------------
// Customers
// -------------------------

func (s *GormStore) ListCustomers(ctx context.Context, limit int) ([]models.Customer, error) {
	var recs []CustomerRecord
	if err := s.ordered(ctx, limit).Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("cariler listelenemedi: %w", err)
	}
	return mapAll(recs, customerFromRecord)
}

func (s *GormStore) GetCustomer(ctx context.Context, id string) (models.Customer, error) {
	var rec CustomerRecord
	if err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return models.Customer{}, translate(err)
	}
	return customerFromRecord(rec)
}

func (s *GormStore) CreateCustomer(ctx context.Context, c *models.Customer) error {
	stamp(&c.ID, &c.CreatedAt)
	rec := customerToRecord(*c)
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (s *GormStore) UpdateCustomer(ctx context.Context, c *models.Customer) error {
	res := s.db.WithContext(ctx).Model(&CustomerRecord{}).Where("id = ?", c.ID).
		Updates(map[string]any{
			"name":       c.Name,
			"phone":      c.Phone,
			"address":    c.Address,
			"tax_number": c.TaxNumber,
			"notes":      c.Notes,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	updated, err := s.GetCustomer(ctx, c.ID)
	if err != nil {
		return err
	}
	*c = updated
	return nil
}

func (s *GormStore) DeleteCustomer(ctx context.Context, id string) error {
	return s.deleteByID(ctx, &CustomerRecord{}, id)
}

func (s *GormStore) CountCustomers(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&CustomerRecord{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("cari sayısı alınamadı: %w", err)
	}
	return n, nil
}

// -------------------------
// Payments
// -------------------------

func (s *GormStore) ListPayments(ctx context.Context, f PaymentFilter) ([]models.Payment, error) {
	q := s.ordered(ctx, f.Limit)
	if f.CustomerID != "" {
		q = q.Where("customer_id = ?", f.CustomerID)
	}
	if f.UnpaidOnly {
		q = q.Where("is_paid = ?", false)
	}
	if f.Created.Active() {
		q = q.Where("created_at >= ? AND created_at <= ?", f.Created.From, f.Created.To)
	}

	var recs []PaymentRecord
	if err := q.Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("ödemeler listelenemedi: %w", err)
	}
	return mapAll(recs, paymentFromRecord)
}

func (s *GormStore) GetPayment(ctx context.Context, id string) (models.Payment, error) {
	var rec PaymentRecord
	if err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return models.Payment{}, translate(err)
	}
	return paymentFromRecord(rec)
}

func (s *GormStore) CreatePayment(ctx context.Context, p *models.Payment) error {
	stamp(&p.ID, &p.CreatedAt)
	rec := paymentToRecord(*p)
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (s *GormStore) UpdatePayment(ctx context.Context, p *models.Payment) error {
	rec := paymentToRecord(*p)
	res := s.db.WithContext(ctx).Model(&PaymentRecord{}).Where("id = ?", p.ID).
		Updates(map[string]any{
			"customer_id":   rec.CustomerID,
			"customer_name": rec.CustomerName,
			"amount":        rec.Amount,
			"payment_type":  rec.PaymentType,
			"is_paid":       rec.IsPaid,
			"payment_date":  rec.PaymentDate,
			"due_date":      rec.DueDate,
			"description":   rec.Description,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	updated, err := s.GetPayment(ctx, p.ID)
	if err != nil {
		return err
	}
	*p = updated
	return nil
}

func (s *GormStore) DeletePayment(ctx context.Context, id string) error {
	return s.deleteByID(ctx, &PaymentRecord{}, id)
}

// -------------------------
// Transactions
// -------------------------

func (s *GormStore) ListTransactions(ctx context.Context, f TransactionFilter) ([]models.Transaction, error) {
	q := s.ordered(ctx, f.Limit)
	if f.Created.Active() {
		q = q.Where("created_at >= ? AND created_at <= ?", f.Created.From, f.Created.To)
	}

	var recs []TransactionRecord
	if err := q.Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("işlemler listelenemedi: %w", err)
	}
	return mapAll(recs, transactionFromRecord)
}

func (s *GormStore) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	stamp(&t.ID, &t.CreatedAt)
	if t.TransactionDate.IsZero() {
		t.TransactionDate = t.CreatedAt
	}
	rec := transactionToRecord(*t)
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (s *GormStore) DeleteTransaction(ctx context.Context, id string) error {
	return s.deleteByID(ctx, &TransactionRecord{}, id)
}

// -------------------------
// Audit logs
// -------------------------

func (s *GormStore) WriteAuditLog(ctx context.Context, l *models.AuditLog) error {
	stamp(&l.ID, &l.CreatedAt)
	rec := auditToRecord(*l)
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("audit log kaydedilemedi: %w", err)
	}
	return nil
}

func (s *GormStore) ListAuditLogs(ctx context.Context, f AuditFilter) ([]models.AuditLog, error) {
	q := s.db.WithContext(ctx).Order("seq DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.EntityType != "" {
		q = q.Where("entity_type = ?", f.EntityType)
	}
	if f.EntityID != "" {
		q = q.Where("entity_id = ?", f.EntityID)
	}

	var recs []AuditLogRecord
	if err := q.Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("loglar listelenemedi: %w", err)
	}
	return mapAll(recs, auditFromRecord)
}
