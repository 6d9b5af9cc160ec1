package dashboard

import (
	"cari-takip-backend/internal/httpx"
	"cari-takip-backend/internal/report"

	"github.com/gofiber/fiber/v2"
)

// GET /api/dashboard/stats
func StatsHandler(svc *report.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := svc.DashboardStats(c.UserContext())
		if err != nil {
			return httpx.Internal("İstatistikler hesaplanamadı", err)
		}
		return c.JSON(stats)
	}
}
