package orders

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-api/internal/application/audit"
	"github.com/jhoicas/panaderia-api/internal/application/dto"
	"github.com/jhoicas/panaderia-api/internal/domain"
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
	"github.com/jhoicas/panaderia-api/internal/domain/repository"
)

// OrderUseCase es la máquina de estados de pedidos: reservar (PENDING),
// cancelar (PENDING -> CANCELLED) y entregar (PENDING -> DELIVERED).
// La reserva retiene stock lógicamente (reserved); solo la entrega lo
// descuenta físicamente y escribe en el libro de movimientos.
type OrderUseCase struct {
	txRunner    OrdersTxRunner
	sales       SaleRecorder
	productRepo repository.ProductRepository
	branchRepo  repository.BranchRepository
	invRepo     repository.InventoryRepository
	orderRepo   repository.OrderRepository
	auditor     AuditNotifier
}

// NewOrderUseCase construye el caso de uso. invRepo y orderRepo van atados al
// pool (lecturas y pre-chequeos); las mutaciones pasan por txRunner.
func NewOrderUseCase(
	txRunner OrdersTxRunner,
	sales SaleRecorder,
	productRepo repository.ProductRepository,
	branchRepo repository.BranchRepository,
	invRepo repository.InventoryRepository,
	orderRepo repository.OrderRepository,
	auditor AuditNotifier,
) *OrderUseCase {
	return &OrderUseCase{
		txRunner:    txRunner,
		sales:       sales,
		productRepo: productRepo,
		branchRepo:  branchRepo,
		invRepo:     invRepo,
		orderRepo:   orderRepo,
		auditor:     auditor,
	}
}

// Reserve crea un pedido PENDING reservando inventario por cada línea.
// El chequeo de disponibilidad previo es solo para fallar rápido: la garantía
// real contra sobreventa es el incremento condicional de reserved dentro de la
// transacción (cero filas afectadas = stock insuficiente = rollback total).
func (uc *OrderUseCase) Reserve(ctx context.Context, in dto.CreateOrderRequest, userID *string) (*entity.Order, error) {
	branch, err := uc.branchRepo.GetBySlug(in.BranchSlug)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.NotFoundf("sucursal", in.BranchSlug)
	}
	if len(in.Items) == 0 {
		return nil, domain.Invalid("items: se requiere al menos un producto")
	}

	type line struct {
		product *entity.Product
		slug    string
		qty     int64
	}
	lines := make([]line, 0, len(in.Items))
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return nil, domain.Invalid("quantity: debe ser mayor que cero")
		}
		product, err := uc.productRepo.GetBySlug(item.ProductSlug)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.NotFoundf("producto", item.ProductSlug)
		}
		lines = append(lines, line{product: product, slug: item.ProductSlug, qty: item.Quantity})
	}

	// Pre-chequeo consultivo fuera de la tx (fail fast con mensaje por producto).
	for _, l := range lines {
		inv, err := uc.invRepo.Get(l.product.ID, branch.ID)
		if err != nil {
			return nil, err
		}
		if inv == nil || inv.Available() < l.qty {
			return nil, domain.InsufficientStockf(l.slug)
		}
	}

	now := time.Now()
	order := &entity.Order{
		BranchID:      branch.ID,
		Status:        entity.OrderStatusPending,
		PaymentMethod: in.PaymentMethod,
		UserID:        userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = uc.txRunner.RunOrders(ctx, func(
		invRepo repository.InventoryRepository,
		movRepo repository.StockMovementRepository,
		orderRepo repository.OrderRepository,
	) error {
		// Fase 1: placeholder para obtener el ID secuencial.
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		subtotal := decimal.Zero
		for _, l := range lines {
			if err := invRepo.Reserve(l.product.ID, branch.ID, l.qty); err != nil {
				if errors.Is(err, domain.ErrInsufficientStock) {
					return domain.InsufficientStockf(l.slug)
				}
				return err
			}
			item := entity.OrderItem{
				OrderID:   order.ID,
				ProductID: l.product.ID,
				Quantity:  l.qty,
				UnitPrice: l.product.Price, // precio congelado al reservar
			}
			if err := orderRepo.CreateItem(&item); err != nil {
				return err
			}
			order.Items = append(order.Items, item)
			subtotal = subtotal.Add(l.product.Price.Mul(decimal.NewFromInt(l.qty)))
		}
		// Fase 2: número definitivo y totales (sin envío ni descuento: total == subtotal).
		order.OrderNumber = entity.FormatOrderNumber(order.ID)
		order.Subtotal = subtotal
		order.Total = subtotal
		return orderRepo.SetNumberAndTotals(order.ID, order.OrderNumber, subtotal, subtotal)
	})
	if err != nil {
		return nil, err
	}

	uc.auditor.Notify(userID, audit.ActionOrderCreated, "order", order.OrderNumber, map[string]any{
		"branch": in.BranchSlug,
		"items":  len(order.Items),
		"total":  order.Total,
	})
	return order, nil
}

// Cancel libera las reservas del pedido y lo marca CANCELLED. La liberación
// decrementa reserved solo cuando alcanza (omisión silenciosa si no), así una
// doble cancelación no deja reservas negativas. No toca quantity ni el libro:
// el stock nunca salió físicamente.
func (uc *OrderUseCase) Cancel(ctx context.Context, orderID int64, userID *string) error {
	order, err := uc.loadOrder(orderID)
	if err != nil {
		return err
	}
	// CANCELLED y DELIVERED son terminales. Repetir la cancelación es un no-op;
	// cancelar un pedido ya entregado reabriría stock que ya salió.
	if order.Status == entity.OrderStatusCancelled {
		return nil
	}
	if order.Status != entity.OrderStatusPending {
		return domain.Conflict("el pedido ya fue entregado")
	}

	err = uc.txRunner.RunOrders(ctx, func(
		invRepo repository.InventoryRepository,
		_ repository.StockMovementRepository,
		orderRepo repository.OrderRepository,
	) error {
		for _, item := range order.Items {
			if err := invRepo.Release(item.ProductID, order.BranchID, item.Quantity); err != nil {
				return err
			}
		}
		return orderRepo.UpdateStatus(order.ID, entity.OrderStatusCancelled, userID)
	})
	if err != nil {
		return err
	}

	uc.auditor.Notify(userID, audit.ActionOrderCancelled, "order", order.OrderNumber, nil)
	return nil
}

// Pickup entrega el pedido: única transición que convierte la reserva en
// salida física. Por cada línea libera reserved (estricto), descuenta quantity
// y agrega un movimiento VENTA; luego marca DELIVERED.
func (uc *OrderUseCase) Pickup(ctx context.Context, orderID int64, userID *string) error {
	order, err := uc.loadOrder(orderID)
	if err != nil {
		return err
	}
	// Solo un pedido PENDING puede entregarse: repetir el pickup descontaría la
	// existencia dos veces y robaría reservas de otros pedidos sobre la misma fila.
	if order.Status != entity.OrderStatusPending {
		return domain.Conflict("el pedido no está pendiente (" + order.Status + ")")
	}

	now := time.Now()
	err = uc.txRunner.RunOrders(ctx, func(
		invRepo repository.InventoryRepository,
		movRepo repository.StockMovementRepository,
		orderRepo repository.OrderRepository,
	) error {
		for _, item := range order.Items {
			if err := invRepo.ReleaseStrict(item.ProductID, order.BranchID, item.Quantity); err != nil {
				if errors.Is(err, domain.ErrConflict) {
					return domain.Invalid("reservado insuficiente")
				}
				return err
			}
			if err := uc.sales.RegisterSaleInTx(invRepo, movRepo,
				item.ProductID, order.BranchID, item.Quantity,
				userID, order.OrderNumber, now); err != nil {
				if errors.Is(err, domain.ErrInsufficientStock) {
					return domain.Invalid("stock insuficiente para entregar")
				}
				return err
			}
			// Relectura defensiva bajo lock: inalcanzable si el invariante de
			// reserva se sostuvo, pero protege contra mutación externa concurrente.
			inv, err := invRepo.GetForUpdate(item.ProductID, order.BranchID)
			if err != nil {
				return err
			}
			if inv.Quantity < 0 {
				return domain.Invalid("inventario negativo")
			}
		}
		return orderRepo.UpdateStatus(order.ID, entity.OrderStatusDelivered, userID)
	})
	if err != nil {
		return err
	}

	uc.auditor.Notify(userID, audit.ActionOrderDelivered, "order", order.OrderNumber, map[string]any{
		"items": len(order.Items),
	})
	return nil
}

// Get carga un pedido con sus líneas (para detalle y ticket).
func (uc *OrderUseCase) Get(ctx context.Context, orderID int64) (*entity.Order, error) {
	return uc.loadOrder(orderID)
}

// List lista pedidos con filtros y paginación clamped.
func (uc *OrderUseCase) List(ctx context.Context, q dto.ListOrdersQuery) ([]*entity.Order, dto.PageMeta, error) {
	q.Clamp()

	filter := repository.OrderFilter{Limit: q.PageSize, Offset: q.Offset()}
	if q.BranchSlug != "" {
		branch, err := uc.branchRepo.GetBySlug(q.BranchSlug)
		if err != nil {
			return nil, dto.PageMeta{}, err
		}
		if branch == nil {
			return nil, dto.PageMeta{}, domain.NotFoundf("sucursal", q.BranchSlug)
		}
		filter.BranchID = &branch.ID
	}
	if q.Status != "" {
		filter.Status = &q.Status
	}
	var err error
	if filter.From, filter.To, err = dto.ParseDateRange(q.From, q.To); err != nil {
		return nil, dto.PageMeta{}, err
	}

	list, total, err := uc.orderRepo.List(filter)
	if err != nil {
		return nil, dto.PageMeta{}, err
	}
	return list, dto.NewPageMeta(total, q.PageRequest), nil
}

func (uc *OrderUseCase) loadOrder(orderID int64) (*entity.Order, error) {
	order, err := uc.orderRepo.GetWithItems(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.BranchID == "" {
		return nil, domain.Invalid("pedido sin sucursal")
	}
	return order, nil
}
