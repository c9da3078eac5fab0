package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/panaderia-api/internal/domain/entity"
	"github.com/jhoicas/panaderia-api/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo persistencia de registros de auditoría sobre PostgreSQL.
// Siempre se usa con el pool, nunca dentro de la transacción de negocio.
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador de auditoría.
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Create inserta un registro de auditoría.
func (r *AuditRepo) Create(log *entity.AuditLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	query := `
		INSERT INTO audit_logs (id, user_id, action, entity_type, entity_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		log.ID, log.UserID, log.Action, log.EntityType, log.EntityID, log.Details, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}
	return nil
}
