package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cari-takip-backend/internal/audit"
	"cari-takip-backend/internal/auth"
	"cari-takip-backend/internal/httpx"
	"cari-takip-backend/internal/models"
	"cari-takip-backend/internal/report"
	"cari-takip-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

// -------------------------
// Request Types
// -------------------------

type PaymentRequest struct {
	CustomerID   string  `json:"customer_id"`
	CustomerName string  `json:"customer_name"` // boşsa cari kaydından kopyalanır
	Amount       float64 `json:"amount"`
	PaymentType  string  `json:"payment_type"` // "alacak" veya "borc"
	IsPaid       bool    `json:"is_paid"`
	PaymentDate  *string `json:"payment_date"`
	DueDate      string  `json:"due_date"`
	Description  *string `json:"description"`
}

func (r PaymentRequest) toModel(id string) (models.Payment, error) {
	if strings.TrimSpace(r.CustomerID) == "" {
		return models.Payment{}, fiber.NewError(fiber.StatusBadRequest, "customer_id zorunlu")
	}
	if r.Amount < 0 {
		return models.Payment{}, fiber.NewError(fiber.StatusBadRequest, "amount negatif olamaz")
	}
	pt := models.PaymentType(r.PaymentType)
	if !pt.Valid() {
		return models.Payment{}, fiber.NewError(fiber.StatusBadRequest, "payment_type 'alacak' veya 'borc' olmalı")
	}

	due, err := store.ParseTime(r.DueDate)
	if err != nil {
		return models.Payment{}, fiber.NewError(fiber.StatusBadRequest, "Vade tarihi geçersiz")
	}

	var paidAt *time.Time
	if r.PaymentDate != nil && strings.TrimSpace(*r.PaymentDate) != "" {
		t, err := store.ParseTime(*r.PaymentDate)
		if err != nil {
			return models.Payment{}, fiber.NewError(fiber.StatusBadRequest, "Ödeme tarihi geçersiz")
		}
		paidAt = &t
	}

	return models.Payment{
		ID:           id,
		CustomerID:   strings.TrimSpace(r.CustomerID),
		CustomerName: strings.TrimSpace(r.CustomerName),
		Amount:       r.Amount,
		PaymentType:  pt,
		IsPaid:       r.IsPaid,
		PaymentDate:  paidAt,
		DueDate:      due,
		Description:  r.Description,
	}, nil
}

// fillCustomerName isim gönderilmediyse carinin o anki adını kopyalar.
// Cari yoksa isim boş kalır; ilişki zorunlu değildir.
func fillCustomerName(ctx context.Context, st store.Store, p *models.Payment) error {
	if p.CustomerName != "" {
		return nil
	}
	c, err := st.GetCustomer(ctx, p.CustomerID)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	p.CustomerName = c.Name
	return nil
}

func typeLabel(t models.PaymentType) string {
	if t == models.PaymentTypePayable {
		return "Borç"
	}
	return "Alacak"
}

// -------------------------
// Payment CRUD
// -------------------------

// GET /api/payments?customer_id=...
func ListPaymentsHandler(st store.Store, limit int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payments, err := st.ListPayments(c.UserContext(), store.PaymentFilter{
			CustomerID: c.Query("customer_id"),
			Limit:      limit,
		})
		if err != nil {
			return httpx.Internal("Ödemeler listelenemedi", err)
		}
		return c.JSON(payments)
	}
}

// GET /api/payments/upcoming?days=7
func UpcomingPaymentsHandler(svc *report.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		days := c.QueryInt("days", report.DefaultUpcomingDays)
		if days < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "days negatif olamaz")
		}

		payments, err := svc.UpcomingPayments(c.UserContext(), days, time.Now().UTC())
		if err != nil {
			return httpx.Internal("Yaklaşan ödemeler listelenemedi", err)
		}
		return c.JSON(payments)
	}
}

// POST /api/payments
func CreatePaymentHandler(st store.Store, rec *audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body PaymentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		p, err := body.toModel("")
		if err != nil {
			return err
		}
		if err := fillCustomerName(c.UserContext(), st, &p); err != nil {
			return httpx.Internal("Cari okunamadı", err)
		}
		if err := st.CreatePayment(c.UserContext(), &p); err != nil {
			return httpx.Internal("Ödeme kaydedilemedi", err)
		}

		rec.Write(c.UserContext(), audit.LogOptions{
			Username:    auth.Username(c),
			EntityType:  audit.EntityPayment,
			EntityID:    p.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("%s eklendi: %s - %.2f TL", typeLabel(p.PaymentType), p.CustomerName, p.Amount),
		})

		return c.Status(fiber.StatusCreated).JSON(p)
	}
}

// PUT /api/payments/:id
func UpdatePaymentHandler(st store.Store, rec *audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body PaymentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		p, err := body.toModel(id)
		if err != nil {
			return err
		}
		if err := fillCustomerName(c.UserContext(), st, &p); err != nil {
			return httpx.Internal("Cari okunamadı", err)
		}
		if err := st.UpdatePayment(c.UserContext(), &p); err != nil {
			return httpx.StoreError(err, "Ödeme bulunamadı", "Ödeme güncellenemedi")
		}

		rec.Write(c.UserContext(), audit.LogOptions{
			Username:    auth.Username(c),
			EntityType:  audit.EntityPayment,
			EntityID:    id,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("%s güncellendi: %s - %.2f TL", typeLabel(p.PaymentType), p.CustomerName, p.Amount),
		})

		return c.JSON(p)
	}
}

// DELETE /api/payments/:id
func DeletePaymentHandler(st store.Store, rec *audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		if err := st.DeletePayment(c.UserContext(), id); err != nil {
			return httpx.StoreError(err, "Ödeme bulunamadı", "Ödeme silinemedi")
		}

		rec.Write(c.UserContext(), audit.LogOptions{
			Username:    auth.Username(c),
			EntityType:  audit.EntityPayment,
			EntityID:    id,
			Action:      models.AuditActionDelete,
			Description: "Ödeme silindi",
		})

		return httpx.Message(c, "Ödeme silindi")
	}
}
