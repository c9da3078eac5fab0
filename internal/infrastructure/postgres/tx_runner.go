package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/panaderia-api/internal/application/inventory"
	"github.com/jhoicas/panaderia-api/internal/application/orders"
	"github.com/jhoicas/panaderia-api/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner and orders.OrdersTxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ orders.OrdersTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. La transacción
// es la unidad de atomicidad de todo el core: reservar todas las líneas de un
// pedido o ajustar ambos lados de una transferencia es todo-o-nada.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Usado por el motor de movimientos manuales.
func (r *TxRunner) Run(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewInventoryRepository(tx), NewStockMovementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunOrders inicia una transacción con los repos del motor de reservas
// (crear/cancelar/entregar pedidos).
func (r *TxRunner) RunOrders(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	movRepo repository.StockMovementRepository,
	orderRepo repository.OrderRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewInventoryRepository(tx), NewStockMovementRepository(tx), NewOrderRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
