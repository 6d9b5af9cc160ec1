package report

import (
	"errors"
	"fmt"

	"cari-takip-backend/internal/models"
	"cari-takip-backend/internal/store"

	"github.com/shopspring/decimal"
)

type Type string

const (
	TypeCustomers    Type = "customers"
	TypePayments     Type = "payments"
	TypeTransactions Type = "transactions"
	TypeSummary      Type = "summary"
)

var ErrInvalidReportType = errors.New("geçersiz rapor tipi")

func ParseType(s string) (Type, error) {
	switch t := Type(s); t {
	case TypeCustomers, TypePayments, TypeTransactions, TypeSummary:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidReportType, s)
	}
}

// Table başlık sırası korunarak yazılan tek sayfalık rapor.
type Table struct {
	Headers []string
	Rows    [][]any
}

var (
	customerHeaders    = []string{"Cari Adı", "Telefon", "Adres", "Vergi No", "Notlar"}
	paymentHeaders     = []string{"Cari", "Tutar", "Tür", "Ödendi", "Vade Tarihi", "Açıklama"}
	transactionHeaders = []string{"Tür", "Ödeme Yöntemi", "Tutar", "Açıklama", "Tarih"}
	summaryHeaders     = []string{"Kategori", "Tutar"}
)

func newTable(headers []string, capacity int) Table {
	return Table{
		Headers: append([]string(nil), headers...),
		Rows:    make([][]any, 0, capacity),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func CustomersTable(customers []models.Customer) Table {
	t := newTable(customerHeaders, len(customers))
	for _, c := range customers {
		t.Rows = append(t.Rows, []any{c.Name, deref(c.Phone), deref(c.Address), deref(c.TaxNumber), deref(c.Notes)})
	}
	return t
}

func PaymentsTable(payments []models.Payment) Table {
	t := newTable(paymentHeaders, len(payments))
	for _, p := range payments {
		t.Rows = append(t.Rows, []any{
			p.CustomerName,
			p.Amount,
			string(p.PaymentType),
			p.IsPaid,
			store.FormatTime(p.DueDate),
			deref(p.Description),
		})
	}
	return t
}

func TransactionsTable(transactions []models.Transaction) Table {
	t := newTable(transactionHeaders, len(transactions))
	for _, tx := range transactions {
		t.Rows = append(t.Rows, []any{
			string(tx.Type),
			string(tx.PaymentMethod),
			tx.Amount,
			tx.Description,
			store.FormatTime(tx.TransactionDate),
		})
	}
	return t
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2) + " ₺"
}

// SummaryTable genel mali durum. Kasadaki Para ödeme yönteminden bağımsız
// tüm gelir - gider farkıdır.
func SummaryTable(customerCount int, payments []models.Payment, transactions []models.Transaction) Table {
	receivable, payable := openTotals(payments)

	var income, expense decimal.Decimal
	for _, tx := range transactions {
		switch tx.Type {
		case models.TransactionIncome:
			income = income.Add(amountOf(tx.Amount))
		case models.TransactionExpense:
			expense = expense.Add(amountOf(tx.Amount))
		}
	}
	cash := income.Sub(expense)

	t := newTable(summaryHeaders, 8)
	t.Rows = append(t.Rows,
		[]any{"Toplam Cari Sayısı", fmt.Sprintf("%d Adet", customerCount)},
		[]any{"Toplam Alacak", money(receivable)},
		[]any{"Toplam Borç", money(payable)},
		[]any{"Net Alacak/Borç", money(receivable.Sub(payable))},
		[]any{"Toplam Gelir", money(income)},
		[]any{"Toplam Gider", money(expense)},
		[]any{"Kasadaki Para", money(cash)},
		[]any{"Net Mali Durum", money(cash.Add(receivable).Sub(payable))},
	)
	return t
}
