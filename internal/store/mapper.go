package store

import (
	"fmt"
	"strings"
	"time"

	"cari-takip-backend/internal/models"

	"github.com/google/uuid"
)

// TimeLayout saklanan tarih formatı. Sabit genişlikte ve her zaman UTC
// olduğu için metin karşılaştırması kronolojik sırayla aynıdır.
const TimeLayout = "2006-01-02T15:04:05.000000-07:00"

var parseLayouts = []string{
	TimeLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func NewID() string {
	return uuid.NewString()
}

func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime metin veya zaten çözümlenmiş tarih kabul eder.
// Bölge bilgisi olmayan değerler UTC kabul edilir.
func ParseTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), nil
	case *time.Time:
		if t == nil {
			return time.Time{}, fmt.Errorf("tarih boş")
		}
		return t.UTC(), nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, fmt.Errorf("tarih boş")
		}
		for _, layout := range parseLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed.UTC(), nil
			}
		}
		return time.Time{}, fmt.Errorf("tarih formatı tanınmadı: %q", s)
	default:
		return time.Time{}, fmt.Errorf("desteklenmeyen tarih tipi: %T", v)
	}
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatTime(*t)
	return &s
}

func parseTimePtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := ParseTime(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// stamp yeni kayıtlar için id ve created_at atar; dolu id'ye dokunmaz.
// created_at saklanan hassasiyete (mikrosaniye) indirilir ki Create'in
// döndüğü değer sonraki okumalarla aynı olsun.
func stamp(id *string, createdAt *time.Time) {
	if *id == "" {
		*id = NewID()
	}
	if createdAt.IsZero() {
		*createdAt = time.Now()
	}
	*createdAt = createdAt.UTC().Truncate(time.Microsecond)
}

// -------------------------
// User
// -------------------------

func userToRecord(u models.User) UserRecord {
	return UserRecord{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		CreatedAt:    FormatTime(u.CreatedAt),
	}
}

func userFromRecord(r UserRecord) (models.User, error) {
	created, err := ParseTime(r.CreatedAt)
	if err != nil {
		return models.User{}, fmt.Errorf("kullanıcı %s created_at: %w", r.ID, err)
	}
	return models.User{
		ID:           r.ID,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		Role:         models.UserRole(r.Role),
		CreatedAt:    created,
	}, nil
}

// -------------------------
// Customer
// -------------------------

func customerToRecord(c models.Customer) CustomerRecord {
	return CustomerRecord{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Address:   c.Address,
		TaxNumber: c.TaxNumber,
		Notes:     c.Notes,
		CreatedAt: FormatTime(c.CreatedAt),
	}
}

func customerFromRecord(r CustomerRecord) (models.Customer, error) {
	created, err := ParseTime(r.CreatedAt)
	if err != nil {
		return models.Customer{}, fmt.Errorf("cari %s created_at: %w", r.ID, err)
	}
	return models.Customer{
		ID:        r.ID,
		Name:      r.Name,
		Phone:     r.Phone,
		Address:   r.Address,
		TaxNumber: r.TaxNumber,
		Notes:     r.Notes,
		CreatedAt: created,
	}, nil
}

// -------------------------
// Payment
// -------------------------

func paymentToRecord(p models.Payment) PaymentRecord {
	return PaymentRecord{
		ID:           p.ID,
		CustomerID:   p.CustomerID,
		CustomerName: p.CustomerName,
		Amount:       p.Amount,
		PaymentType:  string(p.PaymentType),
		IsPaid:       p.IsPaid,
		PaymentDate:  formatTimePtr(p.PaymentDate),
		DueDate:      FormatTime(p.DueDate),
		Description:  p.Description,
		CreatedAt:    FormatTime(p.CreatedAt),
	}
}

func paymentFromRecord(r PaymentRecord) (models.Payment, error) {
	created, err := ParseTime(r.CreatedAt)
	if err != nil {
		return models.Payment{}, fmt.Errorf("ödeme %s created_at: %w", r.ID, err)
	}
	due, err := ParseTime(r.DueDate)
	if err != nil {
		return models.Payment{}, fmt.Errorf("ödeme %s due_date: %w", r.ID, err)
	}
	paid, err := parseTimePtr(r.PaymentDate)
	if err != nil {
		return models.Payment{}, fmt.Errorf("ödeme %s payment_date: %w", r.ID, err)
	}
	return models.Payment{
		ID:           r.ID,
		CustomerID:   r.CustomerID,
		CustomerName: r.CustomerName,
		Amount:       r.Amount,
		PaymentType:  models.PaymentType(r.PaymentType),
		IsPaid:       r.IsPaid,
		PaymentDate:  paid,
		DueDate:      due,
		Description:  r.Description,
		CreatedAt:    created,
	}, nil
}

// -------------------------
// Transaction
// -------------------------

func transactionToRecord(t models.Transaction) TransactionRecord {
	return TransactionRecord{
		ID:              t.ID,
		Type:            string(t.Type),
		PaymentMethod:   string(t.PaymentMethod),
		Amount:          t.Amount,
		Description:     t.Description,
		TransactionDate: FormatTime(t.TransactionDate),
		CreatedAt:       FormatTime(t.CreatedAt),
	}
}

func transactionFromRecord(r TransactionRecord) (models.Transaction, error) {
	created, err := ParseTime(r.CreatedAt)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("işlem %s created_at: %w", r.ID, err)
	}
	date, err := ParseTime(r.TransactionDate)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("işlem %s transaction_date: %w", r.ID, err)
	}
	return models.Transaction{
		ID:              r.ID,
		Type:            models.TransactionType(r.Type),
		PaymentMethod:   models.PaymentMethod(r.PaymentMethod),
		Amount:          r.Amount,
		Description:     r.Description,
		TransactionDate: date,
		CreatedAt:       created,
	}, nil
}

// -------------------------
// AuditLog
// -------------------------

func auditToRecord(a models.AuditLog) AuditLogRecord {
	return AuditLogRecord{
		ID:          a.ID,
		Username:    a.Username,
		EntityType:  a.EntityType,
		EntityID:    a.EntityID,
		Action:      string(a.Action),
		Description: a.Description,
		CreatedAt:   FormatTime(a.CreatedAt),
	}
}

func auditFromRecord(r AuditLogRecord) (models.AuditLog, error) {
	created, err := ParseTime(r.CreatedAt)
	if err != nil {
		return models.AuditLog{}, fmt.Errorf("log %s created_at: %w", r.ID, err)
	}
	return models.AuditLog{
		ID:          r.ID,
		CreatedAt:   created,
		Username:    r.Username,
		EntityType:  r.EntityType,
		EntityID:    r.EntityID,
		Action:      models.AuditAction(r.Action),
		Description: r.Description,
	}, nil
}

// mapAll kayıt listesini modele çevirir, ilk hatada durur.
func mapAll[R any, M any](recs []R, fn func(R) (M, error)) ([]M, error) {
	out := make([]M, 0, len(recs))
	for _, r := range recs {
		m, err := fn(r)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
