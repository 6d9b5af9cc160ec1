package models

import "time"

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
)

type AuditLog struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// Hangi kullanıcı? (token yoksa boş)
	Username string `json:"username"`

	// Hangi entity? (ör: "customer", "payment", "transaction", "user")
	EntityType string      `json:"entity_type"`
	EntityID   string      `json:"entity_id"`
	Action     AuditAction `json:"action"`

	Description string `json:"description"`
}
