package report

import (
	"time"

	"cari-takip-backend/internal/models"

	"github.com/shopspring/decimal"
)

type DashboardStats struct {
	TotalReceivable float64 `json:"total_receivable"` // ödenmemiş alacaklar
	TotalPayable    float64 `json:"total_payable"`    // ödenmemiş borçlar
	TotalCustomers  int64   `json:"total_customers"`
	CashBalance     float64 `json:"cash_balance"` // nakit gelir - gider
	PosBalance      float64 `json:"pos_balance"`  // pos gelir - gider
	TotalBalance    float64 `json:"total_balance"`
}

type CustomerSummary struct {
	Customer      models.Customer `json:"customer"`
	TotalDebt     float64         `json:"total_debt"`
	TotalPaid     float64         `json:"total_paid"`
	TotalPayments int             `json:"total_payments"`
}

func amountOf(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

// signedAmount gelir için +, gider için - tutar.
func signedAmount(t models.Transaction) decimal.Decimal {
	a := amountOf(t.Amount)
	if t.Type == models.TransactionExpense {
		return a.Neg()
	}
	return a
}

// openTotals ödenmemiş alacak ve borç toplamları.
func openTotals(payments []models.Payment) (receivable, payable decimal.Decimal) {
	for _, p := range payments {
		if p.IsPaid {
			continue
		}
		switch p.PaymentType {
		case models.PaymentTypeReceivable:
			receivable = receivable.Add(amountOf(p.Amount))
		case models.PaymentTypePayable:
			payable = payable.Add(amountOf(p.Amount))
		}
	}
	return receivable, payable
}

func ComputeDashboardStats(payments []models.Payment, transactions []models.Transaction, customerCount int64) DashboardStats {
	receivable, payable := openTotals(payments)

	var cash, pos decimal.Decimal
	for _, t := range transactions {
		switch t.PaymentMethod {
		case models.PaymentMethodCash:
			cash = cash.Add(signedAmount(t))
		case models.PaymentMethodPOS:
			pos = pos.Add(signedAmount(t))
		}
	}

	return DashboardStats{
		TotalReceivable: receivable.InexactFloat64(),
		TotalPayable:    payable.InexactFloat64(),
		TotalCustomers:  customerCount,
		CashBalance:     cash.InexactFloat64(),
		PosBalance:      pos.InexactFloat64(),
		TotalBalance:    cash.Add(pos).InexactFloat64(),
	}
}

// SummarizeCustomer sadece "borc" tipindeki ödemeleri toplar; alacaklar
// total_debt/total_paid'e girmez ama total_payments'a sayılır.
// TODO: alacakların özete dahil edilmesi ürün tarafıyla netleştirilince güncellenecek.
func SummarizeCustomer(c models.Customer, payments []models.Payment) CustomerSummary {
	var debt, paid decimal.Decimal
	for _, p := range payments {
		if p.PaymentType != models.PaymentTypePayable {
			continue
		}
		if p.IsPaid {
			paid = paid.Add(amountOf(p.Amount))
		} else {
			debt = debt.Add(amountOf(p.Amount))
		}
	}
	return CustomerSummary{
		Customer:      c,
		TotalDebt:     debt.InexactFloat64(),
		TotalPaid:     paid.InexactFloat64(),
		TotalPayments: len(payments),
	}
}

// UpcomingPayments vadesi [now, now+windowDays] aralığında olan ödenmemiş
// kayıtlar; sıra korunur.
func UpcomingPayments(payments []models.Payment, windowDays int, now time.Time) []models.Payment {
	end := now.AddDate(0, 0, windowDays)
	out := make([]models.Payment, 0)
	for _, p := range payments {
		if p.IsPaid {
			continue
		}
		if p.DueDate.Before(now) || p.DueDate.After(end) {
			continue
		}
		out = append(out, p)
	}
	return out
}
