package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	CtxUserIDKey   = "user_id"
	CtxUsernameKey = "username"
	CtxUserRoleKey = "user_role"
)

func bearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Authorization header eksik")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Authorization formatı 'Bearer <token>' olmalı")
	}
	return parts[1], nil
}

func setLocals(c *fiber.Ctx, claims *JWTCustomClaims) {
	c.Locals(CtxUserIDKey, claims.UserID)
	c.Locals(CtxUsernameKey, claims.Username)
	c.Locals(CtxUserRoleKey, claims.Role)
}

func JWTMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr, err := bearerToken(c)
		if err != nil {
			return err
		}

		claims, err := ParseToken(secret, tokenStr)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Geçersiz veya süresi dolmuş token")
		}

		setLocals(c, claims)
		return c.Next()
	}
}

// OptionalJWT geçerli bir token varsa kullanıcıyı context'e yazar, yoksa
// isteği reddetmeden devam eder.
func OptionalJWT(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tokenStr, err := bearerToken(c); err == nil {
			if claims, err := ParseToken(secret, tokenStr); err == nil {
				setLocals(c, claims)
			}
		}
		return c.Next()
	}
}

// Username context'teki kullanıcı adı, token yoksa boş.
func Username(c *fiber.Ctx) string {
	name, _ := c.Locals(CtxUsernameKey).(string)
	return name
}
