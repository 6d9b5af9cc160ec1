package report

import (
	"errors"
	"fmt"
	"time"

	"cari-takip-backend/internal/httpx"

	"github.com/gofiber/fiber/v2"
)

// GET /api/reports/export?report_type=payments&start_date=...&end_date=...
func ExportHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		t, table, err := svc.BuildReport(c.UserContext(), c.Query("report_type"), DateRange{
			Start: c.Query("start_date"),
			End:   c.Query("end_date"),
		})
		if errors.Is(err, ErrInvalidReportType) {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz rapor tipi")
		}
		if err != nil {
			return httpx.Internal("Rapor verileri okunamadı", err)
		}

		data, err := Render(table)
		if err != nil {
			return httpx.Internal("Rapor oluşturulamadı", err)
		}

		c.Set(fiber.HeaderContentType, ContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", FileName(t, time.Now())))
		return c.Send(data)
	}
}
