package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/panaderia-api/internal/domain/entity"
	"github.com/jhoicas/panaderia-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del libro de movimientos sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create inserta un movimiento. El libro es append-only: no hay Update ni Delete.
func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, type, quantity, product_id, from_branch_id, to_branch_id, user_id, reference_id, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Type, m.Quantity, m.ProductID, m.FromBranchID, m.ToBranchID,
		m.UserID, m.ReferenceID, m.Note, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// List devuelve movimientos filtrados, más recientes primero, y el total sin paginar.
// El filtro por sucursal coincide contra origen o destino.
func (r *StockMovementRepo) List(f repository.MovementFilter) ([]*entity.StockMovement, int64, error) {
	where := " WHERE 1=1"
	args := []any{}
	pos := 1
	add := func(cond string, val any) {
		where += fmt.Sprintf(cond, pos)
		args = append(args, val)
		pos++
	}
	if f.ProductID != nil {
		add(" AND product_id = $%d", *f.ProductID)
	}
	if f.BranchID != nil {
		where += fmt.Sprintf(" AND (from_branch_id = $%d OR to_branch_id = $%d)", pos, pos)
		args = append(args, *f.BranchID)
		pos++
	}
	if f.Type != nil {
		add(" AND type = $%d", *f.Type)
	}
	if f.From != nil {
		add(" AND created_at >= $%d", *f.From)
	}
	if f.To != nil {
		add(" AND created_at <= $%d", *f.To)
	}

	var total int64
	countQuery := "SELECT count(*) FROM stock_movements" + where
	if err := r.q.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count stock movements: %w", err)
	}

	query := `
		SELECT id, type, quantity, product_id, from_branch_id, to_branch_id, user_id, reference_id, note, created_at
		FROM stock_movements` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.Type, &m.Quantity, &m.ProductID, &m.FromBranchID,
			&m.ToBranchID, &m.UserID, &m.ReferenceID, &m.Note, &m.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, total, rows.Err()
}
