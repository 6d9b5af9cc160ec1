package transaction

import (
	"fmt"
	"strings"
	"time"

	"cari-takip-backend/internal/audit"
	"cari-takip-backend/internal/auth"
	"cari-takip-backend/internal/httpx"
	"cari-takip-backend/internal/models"
	"cari-takip-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

type TransactionRequest struct {
	Type            string  `json:"type"`           // "gelir" veya "gider"
	PaymentMethod   string  `json:"payment_method"` // "nakit" veya "pos"
	Amount          float64 `json:"amount"`
	Description     string  `json:"description"`
	TransactionDate *string `json:"transaction_date"` // boşsa şimdi
}

func (r TransactionRequest) toModel() (models.Transaction, error) {
	tt := models.TransactionType(r.Type)
	if !tt.Valid() {
		return models.Transaction{}, fiber.NewError(fiber.StatusBadRequest, "type 'gelir' veya 'gider' olmalı")
	}
	method := models.PaymentMethod(r.PaymentMethod)
	if !method.Valid() {
		return models.Transaction{}, fiber.NewError(fiber.StatusBadRequest, "payment_method 'nakit' veya 'pos' olmalı")
	}
	if r.Amount < 0 {
		return models.Transaction{}, fiber.NewError(fiber.StatusBadRequest, "amount negatif olamaz")
	}
	desc := strings.TrimSpace(r.Description)
	if desc == "" {
		return models.Transaction{}, fiber.NewError(fiber.StatusBadRequest, "description boş olamaz")
	}

	var date time.Time
	if r.TransactionDate != nil && strings.TrimSpace(*r.TransactionDate) != "" {
		d, err := store.ParseTime(*r.TransactionDate)
		if err != nil {
			return models.Transaction{}, fiber.NewError(fiber.StatusBadRequest, "İşlem tarihi geçersiz")
		}
		date = d
	}

	return models.Transaction{
		Type:            tt,
		PaymentMethod:   method,
		Amount:          r.Amount,
		Description:     desc,
		TransactionDate: date,
	}, nil
}

// GET /api/transactions
func ListTransactionsHandler(st store.Store, limit int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		transactions, err := st.ListTransactions(c.UserContext(), store.TransactionFilter{Limit: limit})
		if err != nil {
			return httpx.Internal("İşlemler listelenemedi", err)
		}
		return c.JSON(transactions)
	}
}

// POST /api/transactions
func CreateTransactionHandler(st store.Store, rec *audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body TransactionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		tx, err := body.toModel()
		if err != nil {
			return err
		}
		if err := st.CreateTransaction(c.UserContext(), &tx); err != nil {
			return httpx.Internal("İşlem kaydedilemedi", err)
		}

		label := "Gelir"
		if tx.Type == models.TransactionExpense {
			label = "Gider"
		}
		rec.Write(c.UserContext(), audit.LogOptions{
			Username:    auth.Username(c),
			EntityType:  audit.EntityTransaction,
			EntityID:    tx.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("%s (%s) eklendi: %.2f TL", label, tx.PaymentMethod, tx.Amount),
		})

		return c.Status(fiber.StatusCreated).JSON(tx)
	}
}

// DELETE /api/transactions/:id
func DeleteTransactionHandler(st store.Store, rec *audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		if err := st.DeleteTransaction(c.UserContext(), id); err != nil {
			return httpx.StoreError(err, "İşlem bulunamadı", "İşlem silinemedi")
		}

		rec.Write(c.UserContext(), audit.LogOptions{
			Username:    auth.Username(c),
			EntityType:  audit.EntityTransaction,
			EntityID:    id,
			Action:      models.AuditActionDelete,
			Description: "İşlem silindi",
		})

		return httpx.Message(c, "İşlem silindi")
	}
}
