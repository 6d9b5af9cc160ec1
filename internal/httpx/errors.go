package httpx

import (
	"errors"

	"cari-takip-backend/internal/logger"
	"cari-takip-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

// InternalError kullanıcıya Message gösterilir, Err sadece loglanır.
type InternalError struct {
	Message string
	Err     error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *InternalError) Unwrap() error { return e.Err }

func Internal(message string, err error) error {
	return &InternalError{Message: message, Err: err}
}

// StoreError store.ErrNotFound -> 404, diğerleri -> 500.
func StoreError(err error, notFound, failed string) error {
	if errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, notFound)
	}
	return Internal(failed, err)
}

// ErrorHandler tüm hataları {"detail": "..."} gövdesiyle döner.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"detail": fe.Message})
		}

		var ie *InternalError
		if errors.As(err, &ie) {
			log.Error(ie.Message, "method", c.Method(), "path", c.Path(), "error", ie.Err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": ie.Message})
		}

		log.Error("beklenmeyen hata", "method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": "Beklenmeyen sunucu hatası",
		})
	}
}

// Message {"message": "..."} yanıtı.
func Message(c *fiber.Ctx, msg string) error {
	return c.JSON(fiber.Map{"message": msg})
}
