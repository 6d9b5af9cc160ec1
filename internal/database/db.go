package database

import (
	"context"
	"time"

	"cari-takip-backend/internal/config"
	"cari-takip-backend/internal/logger"
	"cari-takip-backend/internal/store"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Init bağlantıyı açar ve tabloları migrate eder. Veritabanı o an
// erişilemiyorsa süreç durmaz; hata loglanır ve istekler ilk erişimde
// hata alır.
func Init(cfg *config.Config, log *logger.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		DisableAutomaticPing: true,
		TranslateError:       true,
		Logger:               gormlogger.Default.LogMode(gormLogLevel(cfg)),
	})
	if err != nil {
		return nil, err
	}

	st := store.NewGormStore(db)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := st.Ping(ctx); err != nil {
		log.Error("Veritabanına bağlanılamadı, sunucu yine de başlatılıyor", "error", err)
		return db, nil
	}

	if err := st.AutoMigrate(); err != nil {
		log.Error("Migration tamamlanamadı", "error", err)
		return db, nil
	}

	log.Info("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
	return db, nil
}

func gormLogLevel(cfg *config.Config) gormlogger.LogLevel {
	if cfg.LogLevel == "debug" {
		return gormlogger.Info
	}
	return gormlogger.Warn
}
