package report

import (
	"context"
	"fmt"
	"time"

	"cari-takip-backend/internal/models"
	"cari-takip-backend/internal/store"

	"golang.org/x/sync/errgroup"
)

// DefaultUpcomingDays vade yaklaşan ödemeler için varsayılan pencere.
const DefaultUpcomingDays = 7

// DateRange rapor filtresinin ham metin sınırları (created_at).
type DateRange struct {
	Start string
	End   string
}

// Service kayıtları okuyup özet ve rapor üretir. Okumalar arasında kilit
// yoktur; eşzamanlı bir yazma sonuca yansıyabilir ya da yansımayabilir.
type Service struct {
	store      store.Store
	fetchLimit int
}

func NewService(st store.Store, fetchLimit int) *Service {
	return &Service{store: st, fetchLimit: fetchLimit}
}

func (s *Service) DashboardStats(ctx context.Context) (DashboardStats, error) {
	var (
		payments     []models.Payment
		transactions []models.Transaction
		customers    int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		payments, err = s.store.ListPayments(gctx, store.PaymentFilter{Limit: s.fetchLimit})
		return err
	})
	g.Go(func() error {
		var err error
		transactions, err = s.store.ListTransactions(gctx, store.TransactionFilter{Limit: s.fetchLimit})
		return err
	})
	g.Go(func() error {
		var err error
		customers, err = s.store.CountCustomers(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return DashboardStats{}, fmt.Errorf("dashboard verileri okunamadı: %w", err)
	}

	return ComputeDashboardStats(payments, transactions, customers), nil
}

// CustomerSummary cari yoksa store.ErrNotFound döner.
func (s *Service) CustomerSummary(ctx context.Context, customerID string) (CustomerSummary, error) {
	c, err := s.store.GetCustomer(ctx, customerID)
	if err != nil {
		return CustomerSummary{}, err
	}
	payments, err := s.store.ListPayments(ctx, store.PaymentFilter{CustomerID: customerID, Limit: s.fetchLimit})
	if err != nil {
		return CustomerSummary{}, err
	}
	return SummarizeCustomer(c, payments), nil
}

func (s *Service) UpcomingPayments(ctx context.Context, windowDays int, now time.Time) ([]models.Payment, error) {
	payments, err := s.store.ListPayments(ctx, store.PaymentFilter{UnpaidOnly: true, Limit: s.fetchLimit})
	if err != nil {
		return nil, err
	}
	return UpcomingPayments(payments, windowDays, now), nil
}

// BuildReport rapor tipine göre tabloyu hazırlar. Tarih aralığı sadece
// payments ve transactions raporlarına uygulanır.
func (s *Service) BuildReport(ctx context.Context, reportType string, r DateRange) (Type, Table, error) {
	t, err := ParseType(reportType)
	if err != nil {
		return "", Table{}, err
	}
	created := store.CreatedRange{From: r.Start, To: r.End}

	switch t {
	case TypeCustomers:
		customers, err := s.store.ListCustomers(ctx, s.fetchLimit)
		if err != nil {
			return t, Table{}, err
		}
		return t, CustomersTable(customers), nil

	case TypePayments:
		payments, err := s.store.ListPayments(ctx, store.PaymentFilter{Created: created, Limit: s.fetchLimit})
		if err != nil {
			return t, Table{}, err
		}
		return t, PaymentsTable(payments), nil

	case TypeTransactions:
		transactions, err := s.store.ListTransactions(ctx, store.TransactionFilter{Created: created, Limit: s.fetchLimit})
		if err != nil {
			return t, Table{}, err
		}
		return t, TransactionsTable(transactions), nil

	default: // TypeSummary
		customers, err := s.store.ListCustomers(ctx, s.fetchLimit)
		if err != nil {
			return t, Table{}, err
		}
		payments, err := s.store.ListPayments(ctx, store.PaymentFilter{Limit: s.fetchLimit})
		if err != nil {
			return t, Table{}, err
		}
		transactions, err := s.store.ListTransactions(ctx, store.TransactionFilter{Limit: s.fetchLimit})
		if err != nil {
			return t, Table{}, err
		}
		return t, SummaryTable(len(customers), payments, transactions), nil
	}
}
