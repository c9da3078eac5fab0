// Package audit notifica hechos auditables (quién hizo qué) de forma
// best-effort: la auditoría corre después del Commit de la mutación principal
// y su fallo se registra en el log pero nunca se propaga al caller.
package audit

import (
	"encoding/json"
	"time"

	"github.com/jhoicas/panaderia-api/internal/domain/entity"
	"github.com/jhoicas/panaderia-api/internal/domain/repository"
	"github.com/jhoicas/panaderia-api/pkg/logger"
)

// Acciones auditadas.
const (
	ActionOrderCreated    = "ORDER_CREATED"
	ActionOrderCancelled  = "ORDER_CANCELLED"
	ActionOrderDelivered  = "ORDER_DELIVERED"
	ActionMovementCreated = "MOVEMENT_CREATED"
)

// Notifier escribe registros de auditoría sin bloquear ni abortar la operación auditada.
type Notifier struct {
	repo repository.AuditRepository
	log  *logger.Logger
}

// NewNotifier construye el notificador.
func NewNotifier(repo repository.AuditRepository, log *logger.Logger) *Notifier {
	return &Notifier{repo: repo, log: log}
}

// Notify registra el hecho. Los detalles se serializan a JSON; cualquier error
// (serialización o inserción) se loggea y se descarta.
func (n *Notifier) Notify(userID *string, action, entityType, entityID string, details any) {
	payload, err := json.Marshal(details)
	if err != nil {
		n.log.Warn().Err(err).Str("action", action).Msg("auditoría: detalles no serializables")
		payload = nil
	}
	entry := &entity.AuditLog{
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    payload,
		CreatedAt:  time.Now(),
	}
	if err := n.repo.Create(entry); err != nil {
		n.log.Warn().Err(err).
			Str("action", action).
			Str("entity_type", entityType).
			Str("entity_id", entityID).
			Msg("auditoría: no se pudo registrar (se continúa)")
	}
}
