package customer

import (
	"fmt"
	"strings"

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

type CustomerRequest struct {
	Name      string  `json:"name"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
	TaxNumber *string `json:"tax_number"`
	Notes     *string `json:"notes"`
}

func (r CustomerRequest) toModel(id string) (models.Customer, error) {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return models.Customer{}, fiber.NewError(fiber.StatusBadRequest, "Cari adı boş olamaz")
	}
	return models.Customer{
		ID:        id,
		Name:      name,
		Phone:     r.Phone,
		Address:   r.Address,
		TaxNumber: r.TaxNumber,
		Notes:     r.Notes,
	}, nil
}

// -------------------------
// Customer CRUD
// -------------------------

// GET /api/customers
func ListCustomersHandler(st store.Store, limit int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		customers, err := st.ListCustomers(c.UserContext(), limit)
		if err != nil {
			return httpx.Internal("Cariler listelenemedi", err)
		}
		return c.JSON(customers)
	}
}

// GET /api/customers/:id
func GetCustomerHandler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		customer, err := st.GetCustomer(c.UserContext(), c.Params("id"))
		if err != nil {
			return httpx.StoreError(err, "Cari bulunamadı", "Cari okunamadı")
		}
		return c.JSON(customer)
	}
}

// POST /api/customers
func CreateCustomerHandler(st store.Store, rec *audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CustomerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri gönderildi")
		}

		customer, err := body.toModel("")
		if err != nil {
			return err
		}
		if err := st.CreateCustomer(c.UserContext(), &customer); err != nil {
			return httpx.Internal("Cari oluşturulamadı", err)
		}

		rec.Write(c.UserContext(), audit.LogOptions{
			Username:    auth.Username(c),
			EntityType:  audit.EntityCustomer,
			EntityID:    customer.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Cari eklendi: %s", customer.Name),
		})

		return c.Status(fiber.StatusCreated).JSON(customer)
	}
}

// PUT /api/customers/:id
func UpdateCustomerHandler(st store.Store, rec *audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body CustomerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri gönderildi")
		}

		customer, err := body.toModel(id)
		if err != nil {
			return err
		}
		if err := st.UpdateCustomer(c.UserContext(), &customer); err != nil {
			return httpx.StoreError(err, "Cari bulunamadı", "Cari güncellenemedi")
		}

		rec.Write(c.UserContext(), audit.LogOptions{
			Username:    auth.Username(c),
			EntityType:  audit.EntityCustomer,
			EntityID:    id,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Cari güncellendi: %s", customer.Name),
		})

		return c.JSON(customer)
	}
}

// DELETE /api/customers/:id
// Cariye bağlı ödemeler silinmez.
func DeleteCustomerHandler(st store.Store, rec *audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		if err := st.DeleteCustomer(c.UserContext(), id); err != nil {
			return httpx.StoreError(err, "Cari bulunamadı", "Cari silinemedi")
		}

		rec.Write(c.UserContext(), audit.LogOptions{
			Username:    auth.Username(c),
			EntityType:  audit.EntityCustomer,
			EntityID:    id,
			Action:      models.AuditActionDelete,
			Description: "Cari silindi",
		})

		return httpx.Message(c, "Cari silindi")
	}
}

// GET /api/customers/:id/summary
func CustomerSummaryHandler(svc *report.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		summary, err := svc.CustomerSummary(c.UserContext(), c.Params("id"))
		if err != nil {
			return httpx.StoreError(err, "Cari bulunamadı", "Cari özeti hesaplanamadı")
		}
		return c.JSON(summary)
	}
}
