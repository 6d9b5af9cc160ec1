package auth

import (
	"errors"
	"fmt"

	"cari-takip-backend/internal/httpx"

	"github.com/gofiber/fiber/v2"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	Username    string `json:"username"`
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// HTTPError servis hatalarını HTTP durumlarına çevirir.
func HTTPError(err error) error {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return fiber.NewError(fiber.StatusUnauthorized, "Kullanıcı adı veya şifre hatalı")
	case errors.Is(err, ErrWrongPassword):
		return fiber.NewError(fiber.StatusUnauthorized, "Mevcut şifre hatalı")
	case errors.Is(err, ErrUserNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
	case errors.Is(err, ErrUsernameTaken):
		return fiber.NewError(fiber.StatusConflict, "Bu kullanıcı adı zaten mevcut")
	case errors.Is(err, ErrProtectedUser):
		return fiber.NewError(fiber.StatusBadRequest, "Admin kullanıcısı silinemez")
	case errors.Is(err, ErrInvalidInput):
		return fiber.NewError(fiber.StatusBadRequest, "Kullanıcı adı ve şifre zorunlu, rol 'admin' veya 'user' olmalı")
	default:
		return httpx.Internal("İşlem tamamlanamadı", err)
	}
}

// POST /api/auth/login
func LoginHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		res, err := svc.Login(c.UserContext(), body.Username, body.Password)
		if err != nil {
			return HTTPError(err)
		}
		return c.JSON(res)
	}
}

// POST /api/auth/change-password
func ChangePasswordHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ChangePasswordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if err := svc.ChangePassword(c.UserContext(), body.Username, body.OldPassword, body.NewPassword); err != nil {
			if errors.Is(err, ErrInvalidInput) {
				return fiber.NewError(fiber.StatusBadRequest, "Yeni şifre boş olamaz")
			}
			return HTTPError(err)
		}
		return httpx.Message(c, "Şifre başarıyla değiştirildi")
	}
}

// GET /api/auth/me
func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":  c.Locals(CtxUserIDKey),
			"username": c.Locals(CtxUsernameKey),
			"role":     fmt.Sprint(c.Locals(CtxUserRoleKey)),
		})
	}
}
