package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-api/internal/domain/entity"
	"github.com/jhoicas/panaderia-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de pedidos. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create inserta el pedido placeholder (número y totales se completan después
// con SetNumberAndTotals) y asigna Order.ID desde el bigserial.
func (r *OrderRepo) Create(o *entity.Order) error {
	query := `
		INSERT INTO orders (order_number, branch_id, status, subtotal, total, payment_method, user_id, created_at, updated_at)
		VALUES ('', $1, $2, 0, 0, $3, $4, $5, $5)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		o.BranchID, o.Status, o.PaymentMethod, o.UserID, o.CreatedAt,
	).Scan(&o.ID)
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

// SetNumberAndTotals segunda fase de la numeración: fija ORD-###### y los totales.
func (r *OrderRepo) SetNumberAndTotals(orderID int64, orderNumber string, subtotal, total decimal.Decimal) error {
	query := `
		UPDATE orders SET order_number = $2, subtotal = $3, total = $4, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, orderID, orderNumber, subtotal, total)
	if err != nil {
		return fmt.Errorf("set order number: %w", err)
	}
	return nil
}

// CreateItem inserta una línea del pedido con su precio unitario congelado.
func (r *OrderRepo) CreateItem(item *entity.OrderItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO order_items (id, order_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.OrderID, item.ProductID, item.Quantity, item.UnitPrice,
	)
	if err != nil {
		return fmt.Errorf("create order item: %w", err)
	}
	return nil
}

// GetWithItems carga el pedido con sus líneas; nil si no existe.
func (r *OrderRepo) GetWithItems(orderID int64) (*entity.Order, error) {
	query := `
		SELECT id, order_number, branch_id, status, subtotal, total, payment_method, user_id, created_at, updated_at
		FROM orders WHERE id = $1`
	var o entity.Order
	err := r.q.QueryRow(context.Background(), query, orderID).Scan(
		&o.ID, &o.OrderNumber, &o.BranchID, &o.Status, &o.Subtotal, &o.Total,
		&o.PaymentMethod, &o.UserID, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	itemsQuery := `
		SELECT id, order_id, product_id, quantity, unit_price
		FROM order_items WHERE order_id = $1`
	rows, err := r.q.Query(context.Background(), itemsQuery, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		o.Items = append(o.Items, it)
	}
	return &o, rows.Err()
}

// UpdateStatus cambia el estado del pedido y estampa al actor si se conoce.
func (r *OrderRepo) UpdateStatus(orderID int64, status string, userID *string) error {
	query := `
		UPDATE orders SET status = $2, user_id = COALESCE($3, user_id), updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, orderID, status, userID)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

// List devuelve pedidos filtrados (sin líneas), más recientes primero, y el total.
func (r *OrderRepo) List(f repository.OrderFilter) ([]*entity.Order, int64, error) {
	where := " WHERE 1=1"
	args := []any{}
	pos := 1
	add := func(cond string, val any) {
		where += fmt.Sprintf(cond, pos)
		args = append(args, val)
		pos++
	}
	if f.BranchID != nil {
		add(" AND branch_id = $%d", *f.BranchID)
	}
	if f.Status != nil {
		add(" AND status = $%d", *f.Status)
	}
	if f.From != nil {
		add(" AND created_at >= $%d", *f.From)
	}
	if f.To != nil {
		add(" AND created_at <= $%d", *f.To)
	}

	var total int64
	if err := r.q.QueryRow(context.Background(), "SELECT count(*) FROM orders"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	query := `
		SELECT id, order_number, branch_id, status, subtotal, total, payment_method, user_id, created_at, updated_at
		FROM orders` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.BranchID, &o.Status, &o.Subtotal,
			&o.Total, &o.PaymentMethod, &o.UserID, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
	}
	return list, total, rows.Err()
}
