package main

import (
	"context"
	"os"
	"time"

	"cari-takip-backend/internal/auth"
	"cari-takip-backend/internal/config"
	"cari-takip-backend/internal/database"
	"cari-takip-backend/internal/logger"
	"cari-takip-backend/internal/server"
	"cari-takip-backend/internal/store"

	"github.com/joho/godotenv"
)

func main() {
	// .env yoksa ortam değişkenleri kullanılır
	_ = godotenv.Load()

	cfg := config.Load()

	log := logger.New(logger.Config{
		Level:     cfg.SlogLevel(),
		Component: "server",
		Output:    os.Stdout,
	})
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("Konfigürasyon geçersiz", "error", err)
		os.Exit(1)
	}
	for _, w := range cfg.Warnings() {
		log.Warn(w)
	}

	var st store.Store
	switch cfg.DataBackend {
	case config.BackendMemory:
		log.Warn("Bellek içi depo kullanılıyor, veriler yeniden başlatmada kaybolur")
		st = store.NewMemoryStore()
	default:
		db, err := database.Init(cfg, log.WithComponent("database"))
		if err != nil {
			log.Error("Veritabanı yapılandırılamadı", "error", err)
			os.Exit(1)
		}
		st = store.NewGormStore(db)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	seeder := auth.NewService(st, cfg.JWTSecret, log.WithComponent("auth"))
	if err := seeder.SeedAdmin(ctx, cfg.AdminPassword); err != nil {
		log.Error("Admin kullanıcısı oluşturulamadı", "error", err)
	}
	cancel()

	app := server.New(server.Deps{Config: cfg, Store: st, Log: log})

	log.Info("Sunucu başlatılıyor", "port", cfg.HTTPPort, "backend", cfg.DataBackend)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Error("Sunucu durdu", "error", err)
		os.Exit(1)
	}
}
