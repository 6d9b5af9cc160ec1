package audit

import (
	"context"

	"cari-takip-backend/internal/logger"
	"cari-takip-backend/internal/models"
	"cari-takip-backend/internal/store"
)

const (
	EntityCustomer    = "customer"
	EntityPayment     = "payment"
	EntityTransaction = "transaction"
	EntityUser        = "user"
)

type LogOptions struct {
	Username    string
	EntityType  string
	EntityID    string
	Action      models.AuditAction
	Description string
}

// Recorder mutasyonları audit log'a yazar. Yazma hatası isteği bozmaz,
// sadece loglanır.
type Recorder struct {
	store store.Store
	log   *logger.Logger
}

func NewRecorder(st store.Store, log *logger.Logger) *Recorder {
	return &Recorder{store: st, log: log}
}

func (r *Recorder) Write(ctx context.Context, opts LogOptions) {
	entry := models.AuditLog{
		Username:    opts.Username,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
	}
	if err := r.store.WriteAuditLog(ctx, &entry); err != nil {
		r.log.Warn("audit log yazılamadı",
			"entity_type", opts.EntityType,
			"entity_id", opts.EntityID,
			"error", err)
	}
}
