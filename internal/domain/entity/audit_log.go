package entity

import (
	"encoding/json"
	"time"
)

// AuditLog registra quién hizo qué sobre qué entidad. Se escribe fuera de la
// transacción principal y su fallo nunca aborta la mutación auditada.
type AuditLog struct {
	ID         string
	UserID     *string
	Action     string // ORDER_CREATED, ORDER_CANCELLED, ORDER_DELIVERED, MOVEMENT_CREATED...
	EntityType string
	EntityID   string
	Details    json.RawMessage
	CreatedAt  time.Time
}
