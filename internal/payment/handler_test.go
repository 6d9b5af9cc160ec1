package payment

import (
	"context"
	"testing"
	"time"

	"cari-takip-backend/internal/models"
	"cari-takip-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestPaymentRequestToModel(t *testing.T) {
	req := PaymentRequest{
		CustomerID:   " c1 ",
		CustomerName: "Ahmet",
		Amount:       99.9,
		PaymentType:  "borc",
		PaymentDate:  strPtr("2025-01-02T10:00:00+03:00"),
		DueDate:      "2025-01-05",
	}

	p, err := req.toModel("p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, "c1", p.CustomerID)
	assert.Equal(t, models.PaymentTypePayable, p.PaymentType)
	assert.Equal(t, time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), p.DueDate)
	require.NotNil(t, p.PaymentDate)
	assert.Equal(t, time.Date(2025, 1, 2, 7, 0, 0, 0, time.UTC), *p.PaymentDate)
}

func TestPaymentRequestEmptyPaymentDate(t *testing.T) {
	req := PaymentRequest{CustomerID: "c1", PaymentType: "alacak", DueDate: "2025-01-05", PaymentDate: strPtr("")}
	p, err := req.toModel("")
	require.NoError(t, err)
	assert.Nil(t, p.PaymentDate)
}

func TestPaymentRequestRejects(t *testing.T) {
	valid := PaymentRequest{CustomerID: "c1", PaymentType: "alacak", DueDate: "2025-01-05"}

	cases := map[string]func(r *PaymentRequest){
		"tip":   func(r *PaymentRequest) { r.PaymentType = "ALACAK" },
		"tutar": func(r *PaymentRequest) { r.Amount = -0.01 },
		"vade":  func(r *PaymentRequest) { r.DueDate = "" },
		"cari":  func(r *PaymentRequest) { r.CustomerID = " " },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			r := valid
			mutate(&r)
			_, err := r.toModel("")
			var fe *fiber.Error
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, fiber.StatusBadRequest, fe.Code)
		})
	}
}

func TestFillCustomerName(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	c := models.Customer{Name: "Ahmet"}
	require.NoError(t, st.CreateCustomer(ctx, &c))

	p := models.Payment{CustomerID: c.ID}
	require.NoError(t, fillCustomerName(ctx, st, &p))
	assert.Equal(t, "Ahmet", p.CustomerName)

	// gönderilen isim korunur
	p = models.Payment{CustomerID: c.ID, CustomerName: "Eski Ad"}
	require.NoError(t, fillCustomerName(ctx, st, &p))
	assert.Equal(t, "Eski Ad", p.CustomerName)

	// cari yoksa hata yok, isim boş kalır
	p = models.Payment{CustomerID: "yok"}
	require.NoError(t, fillCustomerName(ctx, st, &p))
	assert.Empty(t, p.CustomerName)
}
