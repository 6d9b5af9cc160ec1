package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"

	defaultDSN       = "host=localhost user=postgres password=postgres dbname=cari_takip port=5432 sslmode=disable"
	defaultJWTSecret = "cari-takip-dev-secret-key-degistirin-lutfen"
)

type Config struct {
	HTTPPort      string
	DatabaseDSN   string
	DataBackend   string // postgres / memory
	JWTSecret     string
	AdminPassword string // ilk açılışta oluşturulan admin kullanıcısının şifresi
	CORSOrigins   string
	LogLevel      string
	ListLimit     int // liste endpoint'lerinin döndüğü maksimum kayıt
	FetchLimit    int // dashboard ve rapor hesaplamalarında okunan maksimum kayıt
}

func Load() *Config {
	return &Config{
		HTTPPort:      getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:   getEnv("DATABASE_DSN", defaultDSN),
		DataBackend:   strings.ToLower(getEnv("DATA_BACKEND", BackendPostgres)),
		JWTSecret:     getEnv("JWT_SECRET", defaultJWTSecret),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
		CORSOrigins:   getEnv("CORS_ALLOWED_ORIGINS", "*"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		ListLimit:     getEnvInt("LIST_LIMIT", 1000),
		FetchLimit:    getEnvInt("FETCH_LIMIT", 10000),
	}
}

// Validate tüm hataları tek seferde döner.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.HTTPPort); err != nil {
		errs = append(errs, fmt.Sprintf("HTTP_PORT geçersiz '%s': sayı olmalı", c.HTTPPort))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("HTTP_PORT %d: 1 ile 65535 arasında olmalı", port))
	}

	switch c.DataBackend {
	case BackendPostgres:
		if strings.TrimSpace(c.DatabaseDSN) == "" {
			errs = append(errs, "DATABASE_DSN postgres için zorunlu")
		}
	case BackendMemory:
	default:
		errs = append(errs, fmt.Sprintf("DATA_BACKEND geçersiz '%s': postgres veya memory olmalı", c.DataBackend))
	}

	if len(c.JWTSecret) < 32 {
		errs = append(errs, "JWT_SECRET en az 32 karakter olmalı")
	}
	if c.AdminPassword == "" {
		errs = append(errs, "ADMIN_PASSWORD boş olamaz")
	}
	if c.ListLimit <= 0 {
		errs = append(errs, "LIST_LIMIT 0'dan büyük olmalı")
	}
	if c.FetchLimit <= 0 {
		errs = append(errs, "FETCH_LIMIT 0'dan büyük olmalı")
	}

	if len(errs) > 0 {
		return fmt.Errorf("konfigürasyon hatası:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// Warnings production için riskli varsayılanları listeler.
func (c *Config) Warnings() []string {
	var warns []string
	if c.JWTSecret == defaultJWTSecret {
		warns = append(warns, "JWT_SECRET varsayılan değer kullanılıyor, production için mutlaka değiştir.")
	}
	if c.DataBackend == BackendPostgres && c.DatabaseDSN == defaultDSN {
		warns = append(warns, "DATABASE_DSN varsayılan değer kullanılıyor, production için kendi Postgres bağlantı bilgini tanımla.")
	}
	if c.CORSOrigins == "*" {
		warns = append(warns, "CORS_ALLOWED_ORIGINS tüm origin'lere açık.")
	}
	return warns
}

func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
