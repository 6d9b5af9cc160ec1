package server

import (
	"strings"

	"cari-takip-backend/internal/audit"
	"cari-takip-backend/internal/auth"
	"cari-takip-backend/internal/config"
	"cari-takip-backend/internal/customer"
	"cari-takip-backend/internal/dashboard"
	"cari-takip-backend/internal/httpx"
	"cari-takip-backend/internal/logger"
	"cari-takip-backend/internal/payment"
	"cari-takip-backend/internal/report"
	"cari-takip-backend/internal/store"
	"cari-takip-backend/internal/transaction"
	"cari-takip-backend/internal/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Deps struct {
	Config *config.Config
	Store  store.Store
	Log    *logger.Logger
}

// New tüm /api route'larını bağlar.
func New(d Deps) *fiber.App {
	cfg := d.Config
	log := d.Log.WithComponent("http")

	app := fiber.New(fiber.Config{
		AppName:      "cari-takip",
		ErrorHandler: httpx.ErrorHandler(log),
	})

	app.Use(recover.New())
	if cfg.LogLevel == "debug" {
		app.Use(fiberlogger.New())
	}

	// CORS origins'i virgülle ayrılmış string'den temizle
	origins := strings.Split(cfg.CORSOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:  strings.Join(origins, ","),
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS",
		ExposeHeaders: "Content-Disposition",
	}))

	authSvc := auth.NewService(d.Store, cfg.JWTSecret, d.Log.WithComponent("auth"))
	reports := report.NewService(d.Store, cfg.FetchLimit)
	rec := audit.NewRecorder(d.Store, d.Log.WithComponent("audit"))

	api := app.Group("/api")

	api.Get("/", func(c *fiber.Ctx) error {
		return httpx.Message(c, "Cari Takip API")
	})
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy", "service": "cari-takip"})
	})

	// Public auth
	api.Post("/auth/login", auth.LoginHandler(authSvc))

	// Token zorunlu route'lar; middleware route bazında bağlanır.
	jwt := auth.JWTMiddleware(cfg.JWTSecret)
	api.Post("/auth/change-password", jwt, auth.ChangePasswordHandler(authSvc))
	api.Get("/auth/me", jwt, auth.MeHandler())

	api.Get("/users", jwt, user.ListUsersHandler(authSvc, cfg.ListLimit))
	api.Post("/users", jwt, user.CreateUserHandler(authSvc, rec))
	api.Delete("/users/:id", jwt, user.DeleteUserHandler(authSvc, rec))

	// İş verisi token istemez; token varsa audit log'a kullanıcı yazılır.
	open := api.Group("", auth.OptionalJWT(cfg.JWTSecret))

	// Cariler
	open.Get("/customers", customer.ListCustomersHandler(d.Store, cfg.ListLimit))
	open.Post("/customers", customer.CreateCustomerHandler(d.Store, rec))
	open.Get("/customers/:id", customer.GetCustomerHandler(d.Store))
	open.Put("/customers/:id", customer.UpdateCustomerHandler(d.Store, rec))
	open.Delete("/customers/:id", customer.DeleteCustomerHandler(d.Store, rec))
	open.Get("/customers/:id/summary", customer.CustomerSummaryHandler(reports))

	// Ödemeler
	open.Get("/payments", payment.ListPaymentsHandler(d.Store, cfg.ListLimit))
	open.Get("/payments/upcoming", payment.UpcomingPaymentsHandler(reports))
	open.Post("/payments", payment.CreatePaymentHandler(d.Store, rec))
	open.Put("/payments/:id", payment.UpdatePaymentHandler(d.Store, rec))
	open.Delete("/payments/:id", payment.DeletePaymentHandler(d.Store, rec))

	// Kasa işlemleri
	open.Get("/transactions", transaction.ListTransactionsHandler(d.Store, cfg.ListLimit))
	open.Post("/transactions", transaction.CreateTransactionHandler(d.Store, rec))
	open.Delete("/transactions/:id", transaction.DeleteTransactionHandler(d.Store, rec))

	open.Get("/dashboard/stats", dashboard.StatsHandler(reports))
	open.Get("/reports/export", report.ExportHandler(reports))
	open.Get("/audit-logs", audit.ListAuditLogsHandler(d.Store, cfg.ListLimit))

	return app
}
