package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/panaderia-api/internal/domain"
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
	"github.com/jhoicas/panaderia-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL (usable con pool o tx).
// Todas las mutaciones son UPDATE/INSERT condicionales de una sola sentencia:
// el recuento de filas afectadas decide éxito o ErrInsufficientStock, de modo
// que dos reservas concurrentes sobre la misma fila nunca sobrevenden.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de inventario. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Get obtiene la fila de inventario; si no existe devuelve una fila en cero.
func (r *InventoryRepo) Get(productID, branchID string) (*entity.Inventory, error) {
	query := `
		SELECT product_id, branch_id, quantity, reserved, updated_at
		FROM inventory WHERE product_id = $1 AND branch_id = $2`
	var inv entity.Inventory
	err := r.q.QueryRow(context.Background(), query, productID, branchID).Scan(
		&inv.ProductID, &inv.BranchID, &inv.Quantity, &inv.Reserved, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Inventory{ProductID: productID, BranchID: branchID}, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &inv, nil
}

// ListByBranch devuelve todas las filas de inventario de una sucursal, por producto.
func (r *InventoryRepo) ListByBranch(branchID string) ([]*entity.Inventory, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT product_id, branch_id, quantity, reserved, updated_at
		FROM inventory WHERE branch_id = $1 ORDER BY product_id`, branchID)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	var list []*entity.Inventory
	for rows.Next() {
		var inv entity.Inventory
		if err := rows.Scan(&inv.ProductID, &inv.BranchID, &inv.Quantity, &inv.Reserved, &inv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

// GetForUpdate obtiene la fila y la bloquea (SELECT FOR UPDATE) dentro de la tx del caller.
func (r *InventoryRepo) GetForUpdate(productID, branchID string) (*entity.Inventory, error) {
	query := `
		SELECT product_id, branch_id, quantity, reserved, updated_at
		FROM inventory WHERE product_id = $1 AND branch_id = $2
		FOR UPDATE`
	var inv entity.Inventory
	err := r.q.QueryRow(context.Background(), query, productID, branchID).Scan(
		&inv.ProductID, &inv.BranchID, &inv.Quantity, &inv.Reserved, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Inventory{ProductID: productID, BranchID: branchID}, nil
		}
		return nil, fmt.Errorf("get inventory for update: %w", err)
	}
	return &inv, nil
}

// AdjustQuantity suma delta a la existencia física.
//   - delta >= 0: upsert (crea la fila con quantity=delta si no existe).
//   - delta < 0: UPDATE condicional; exige quantity+delta >= reserved para no
//     dejar reservas por encima de la existencia. Cero filas afectadas (fila
//     ausente o resultado inválido) -> ErrInsufficientStock.
func (r *InventoryRepo) AdjustQuantity(productID, branchID string, delta int64) error {
	if delta >= 0 {
		query := `
			INSERT INTO inventory (product_id, branch_id, quantity, reserved, updated_at)
			VALUES ($1, $2, $3, 0, now())
			ON CONFLICT (product_id, branch_id)
			DO UPDATE SET quantity = inventory.quantity + EXCLUDED.quantity, updated_at = now()`
		if _, err := r.q.Exec(context.Background(), query, productID, branchID, delta); err != nil {
			return fmt.Errorf("adjust quantity: %w", err)
		}
		return nil
	}

	query := `
		UPDATE inventory
		SET quantity = quantity + $3, updated_at = now()
		WHERE product_id = $1 AND branch_id = $2
		  AND quantity + $3 >= reserved`
	tag, err := r.q.Exec(context.Background(), query, productID, branchID, delta)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("adjust quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

// Reserve incrementa reserved solo si cabe dentro de quantity. La fila ausente
// equivale a quantity=0, así que cualquier reserva positiva sobre ella falla.
func (r *InventoryRepo) Reserve(productID, branchID string, qty int64) error {
	query := `
		UPDATE inventory
		SET reserved = reserved + $3, updated_at = now()
		WHERE product_id = $1 AND branch_id = $2
		  AND reserved + $3 <= quantity`
	tag, err := r.q.Exec(context.Background(), query, productID, branchID, qty)
	if err != nil {
		return fmt.Errorf("reserve inventory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

// Release decrementa reserved solo cuando reserved >= qty; si no alcanza, omite
// en silencio (la cancelación repetida no debe dejar reservas negativas).
func (r *InventoryRepo) Release(productID, branchID string, qty int64) error {
	_, err := r.release(productID, branchID, qty)
	return err
}

// ReleaseStrict como Release pero exige que la reserva alcance; si no, ErrConflict.
func (r *InventoryRepo) ReleaseStrict(productID, branchID string, qty int64) error {
	n, err := r.release(productID, branchID, qty)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrConflict
	}
	return nil
}

func (r *InventoryRepo) release(productID, branchID string, qty int64) (int64, error) {
	query := `
		UPDATE inventory
		SET reserved = reserved - $3, updated_at = now()
		WHERE product_id = $1 AND branch_id = $2
		  AND reserved >= $3`
	tag, err := r.q.Exec(context.Background(), query, productID, branchID, qty)
	if err != nil {
		return 0, fmt.Errorf("release inventory: %w", err)
	}
	return tag.RowsAffected(), nil
}
