package store

import (
	"context"
	"sync"

	"cari-takip-backend/internal/models"
)

// MemoryStore süreç içi Store. Kayıtları veritabanıyla aynı metin
// biçiminde tutar, böylece filtre davranışı GormStore ile aynıdır.
type MemoryStore struct {
	mu           sync.RWMutex
	users        []UserRecord
	customers    []CustomerRecord
	payments     []PaymentRecord
	transactions []TransactionRecord
	auditLogs    []AuditLogRecord
	seq          uint // son verilen Seq, tüm koleksiyonlarda ortak
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

// nextSeq kilit altında çağrılır.
func (s *MemoryStore) nextSeq() uint {
	s.seq++
	return s.seq
}

func limited[T any](in []T, limit int) []T {
	if limit > 0 && len(in) > limit {
		return in[:limit]
	}
	return in
}

func indexOf[T any](recs []T, match func(T) bool) int {
	for i, r := range recs {
		if match(r) {
			return i
		}
	}
	return -1
}

func removeAt[T any](recs []T, i int) []T {
	return append(recs[:i:i], recs[i+1:]...)
}

// -------------------------
// Users
// -------------------------

func (s *MemoryStore) ListUsers(_ context.Context, limit int) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return mapAll(limited(s.users, limit), userFromRecord)
}

func (s *MemoryStore) GetUserByID(_ context.Context, id string) (models.User, error) {
	return s.findUser(func(r UserRecord) bool { return r.ID == id })
}

func (s *MemoryStore) GetUserByUsername(_ context.Context, username string) (models.User, error) {
	return s.findUser(func(r UserRecord) bool { return r.Username == username })
}

func (s *MemoryStore) findUser(match func(UserRecord) bool) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := indexOf(s.users, match)
	if i < 0 {
		return models.User{}, ErrNotFound
	}
	return userFromRecord(s.users[i])
}

func (s *MemoryStore) CreateUser(_ context.Context, u *models.User) error {
	stamp(&u.ID, &u.CreatedAt)
	s.mu.Lock()
	defer s.mu.Unlock()
	if indexOf(s.users, func(r UserRecord) bool { return r.ID == u.ID || r.Username == u.Username }) >= 0 {
		return ErrDuplicate
	}
	rec := userToRecord(*u)
	rec.Seq = s.nextSeq()
	s.users = append(s.users, rec)
	return nil
}

func (s *MemoryStore) UpdateUserPassword(_ context.Context, username, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.users, func(r UserRecord) bool { return r.Username == username })
	if i < 0 {
		return ErrNotFound
	}
	s.users[i].PasswordHash = passwordHash
	return nil
}

func (s *MemoryStore) DeleteUser(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.users, func(r UserRecord) bool { return r.ID == id })
	if i < 0 {
		return ErrNotFound
	}
	s.users = removeAt(s.users, i)
	return nil
}

// -------------------------
// Customers
// -------------------------

func (s *MemoryStore) ListCustomers(_ context.Context, limit int) ([]models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return mapAll(limited(s.customers, limit), customerFromRecord)
}

func (s *MemoryStore) GetCustomer(_ context.Context, id string) (models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := indexOf(s.customers, func(r CustomerRecord) bool { return r.ID == id })
	if i < 0 {
		return models.Customer{}, ErrNotFound
	}
	return customerFromRecord(s.customers[i])
}

func (s *MemoryStore) CreateCustomer(_ context.Context, c *models.Customer) error {
	stamp(&c.ID, &c.CreatedAt)
	s.mu.Lock()
	defer s.mu.Unlock()
	if indexOf(s.customers, func(r CustomerRecord) bool { return r.ID == c.ID }) >= 0 {
		return ErrDuplicate
	}
	rec := customerToRecord(*c)
	rec.Seq = s.nextSeq()
	s.customers = append(s.customers, rec)
	return nil
}

func (s *MemoryStore) UpdateCustomer(_ context.Context, c *models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.customers, func(r CustomerRecord) bool { return r.ID == c.ID })
	if i < 0 {
		return ErrNotFound
	}
	rec := customerToRecord(*c)
	rec.Seq = s.customers[i].Seq
	rec.CreatedAt = s.customers[i].CreatedAt
	s.customers[i] = rec

	updated, err := customerFromRecord(rec)
	if err != nil {
		return err
	}
	*c = updated
	return nil
}

func (s *MemoryStore) DeleteCustomer(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.customers, func(r CustomerRecord) bool { return r.ID == id })
	if i < 0 {
		return ErrNotFound
	}
	s.customers = removeAt(s.customers, i)
	return nil
}

func (s *MemoryStore) CountCustomers(context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.customers)), nil
}

// -------------------------
// Payments
// -------------------------

func (s *MemoryStore) ListPayments(_ context.Context, f PaymentFilter) ([]models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]PaymentRecord, 0, len(s.payments))
	for _, r := range s.payments {
		if f.CustomerID != "" && r.CustomerID != f.CustomerID {
			continue
		}
		if f.UnpaidOnly && r.IsPaid {
			continue
		}
		if f.Created.Active() && !f.Created.contains(r.CreatedAt) {
			continue
		}
		matched = append(matched, r)
	}
	return mapAll(limited(matched, f.Limit), paymentFromRecord)
}

func (s *MemoryStore) GetPayment(_ context.Context, id string) (models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := indexOf(s.payments, func(r PaymentRecord) bool { return r.ID == id })
	if i < 0 {
		return models.Payment{}, ErrNotFound
	}
	return paymentFromRecord(s.payments[i])
}

func (s *MemoryStore) CreatePayment(_ context.Context, p *models.Payment) error {
	stamp(&p.ID, &p.CreatedAt)
	s.mu.Lock()
	defer s.mu.Unlock()
	if indexOf(s.payments, func(r PaymentRecord) bool { return r.ID == p.ID }) >= 0 {
		return ErrDuplicate
	}
	rec := paymentToRecord(*p)
	rec.Seq = s.nextSeq()
	s.payments = append(s.payments, rec)
	return nil
}

func (s *MemoryStore) UpdatePayment(_ context.Context, p *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.payments, func(r PaymentRecord) bool { return r.ID == p.ID })
	if i < 0 {
		return ErrNotFound
	}
	rec := paymentToRecord(*p)
	rec.Seq = s.payments[i].Seq
	rec.CreatedAt = s.payments[i].CreatedAt
	s.payments[i] = rec

	updated, err := paymentFromRecord(rec)
	if err != nil {
		return err
	}
	*p = updated
	return nil
}

func (s *MemoryStore) DeletePayment(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.payments, func(r PaymentRecord) bool { return r.ID == id })
	if i < 0 {
		return ErrNotFound
	}
	s.payments = removeAt(s.payments, i)
	return nil
}

// -------------------------
// Transactions
// -------------------------

func (s *MemoryStore) ListTransactions(_ context.Context, f TransactionFilter) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]TransactionRecord, 0, len(s.transactions))
	for _, r := range s.transactions {
		if f.Created.Active() && !f.Created.contains(r.CreatedAt) {
			continue
		}
		matched = append(matched, r)
	}
	return mapAll(limited(matched, f.Limit), transactionFromRecord)
}

func (s *MemoryStore) CreateTransaction(_ context.Context, t *models.Transaction) error {
	stamp(&t.ID, &t.CreatedAt)
	if t.TransactionDate.IsZero() {
		t.TransactionDate = t.CreatedAt
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if indexOf(s.transactions, func(r TransactionRecord) bool { return r.ID == t.ID }) >= 0 {
		return ErrDuplicate
	}
	rec := transactionToRecord(*t)
	rec.Seq = s.nextSeq()
	s.transactions = append(s.transactions, rec)
	return nil
}

func (s *MemoryStore) DeleteTransaction(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.transactions, func(r TransactionRecord) bool { return r.ID == id })
	if i < 0 {
		return ErrNotFound
	}
	s.transactions = removeAt(s.transactions, i)
	return nil
}

// -------------------------
// Audit logs
// -------------------------

func (s *MemoryStore) WriteAuditLog(_ context.Context, l *models.AuditLog) error {
	stamp(&l.ID, &l.CreatedAt)
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := auditToRecord(*l)
	rec.Seq = s.nextSeq()
	s.auditLogs = append(s.auditLogs, rec)
	return nil
}

func (s *MemoryStore) ListAuditLogs(_ context.Context, f AuditFilter) ([]models.AuditLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// en yeni kayıt önce
	matched := make([]AuditLogRecord, 0, len(s.auditLogs))
	for i := len(s.auditLogs) - 1; i >= 0; i-- {
		r := s.auditLogs[i]
		if f.EntityType != "" && r.EntityType != f.EntityType {
			continue
		}
		if f.EntityID != "" && r.EntityID != f.EntityID {
			continue
		}
		matched = append(matched, r)
	}
	return mapAll(limited(matched, f.Limit), auditFromRecord)
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*GormStore)(nil)
)
