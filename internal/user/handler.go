package user

import (
	"fmt"

	"cari-takip-backend/internal/audit"
	"cari-takip-backend/internal/auth"
	"cari-takip-backend/internal/httpx"
	"cari-takip-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateUserRequest struct {
	Username string          `json:"username"`
	Password string          `json:"password"`
	Role     models.UserRole `json:"role"` // boşsa "user"
}

// GET /api/users
func ListUsersHandler(svc *auth.Service, limit int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := svc.ListUsers(c.UserContext(), limit)
		if err != nil {
			return httpx.Internal("Kullanıcılar listelenemedi", err)
		}
		return c.JSON(users)
	}
}

// POST /api/users
func CreateUserHandler(svc *auth.Service, rec *audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Role == "" {
			body.Role = models.RoleUser
		}

		u, err := svc.CreateUser(c.UserContext(), body.Username, body.Password, body.Role)
		if err != nil {
			return auth.HTTPError(err)
		}

		rec.Write(c.UserContext(), audit.LogOptions{
			Username:    auth.Username(c),
			EntityType:  audit.EntityUser,
			EntityID:    u.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Kullanıcı eklendi: %s (%s)", u.Username, u.Role),
		})

		return c.Status(fiber.StatusCreated).JSON(u)
	}
}

// DELETE /api/users/:id
func DeleteUserHandler(svc *auth.Service, rec *audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		if err := svc.DeleteUser(c.UserContext(), id); err != nil {
			return auth.HTTPError(err)
		}

		rec.Write(c.UserContext(), audit.LogOptions{
			Username:    auth.Username(c),
			EntityType:  audit.EntityUser,
			EntityID:    id,
			Action:      models.AuditActionDelete,
			Description: "Kullanıcı silindi",
		})

		return httpx.Message(c, "Kullanıcı silindi")
	}
}
