package audit

import (
	"cari-takip-backend/internal/httpx"
	"cari-takip-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

// GET /api/audit-logs?entity_type=payment&entity_id=...
func ListAuditLogsHandler(st store.Store, limit int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		logs, err := st.ListAuditLogs(c.UserContext(), store.AuditFilter{
			EntityType: c.Query("entity_type"),
			EntityID:   c.Query("entity_id"),
			Limit:      limit,
		})
		if err != nil {
			return httpx.Internal("Loglar listelenemedi", err)
		}
		return c.JSON(logs)
	}
}
