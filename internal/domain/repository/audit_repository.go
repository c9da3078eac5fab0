package repository

import "github.com/jhoicas/panaderia-api/internal/domain/entity"

// AuditRepository persiste registros de auditoría. Se invoca fuera de la
// transacción principal (best-effort).
type AuditRepository interface {
	Create(log *entity.AuditLog) error
}
