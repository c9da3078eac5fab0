package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/panaderia-api/internal/application/audit"
	"github.com/jhoicas/panaderia-api/internal/application/dto"
	"github.com/jhoicas/panaderia-api/internal/domain"
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
	domaininv "github.com/jhoicas/panaderia-api/internal/domain/inventory"
	"github.com/jhoicas/panaderia-api/internal/domain/repository"
)

// MovementUseCase valida y aplica movimientos manuales de stock (producción,
// compra, venta, transferencia, merma, pérdida, sobrante) de forma transaccional,
// y expone las lecturas del libro y del inventario.
type MovementUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	branchRepo  repository.BranchRepository
	invRepo     repository.InventoryRepository
	movRepo     repository.StockMovementRepository
	auditor     AuditNotifier
}

// NewMovementUseCase construye el caso de uso. invRepo y movRepo van atados al
// pool (solo lecturas); las escrituras pasan por txRunner.
func NewMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	branchRepo repository.BranchRepository,
	invRepo repository.InventoryRepository,
	movRepo repository.StockMovementRepository,
	auditor AuditNotifier,
) *MovementUseCase {
	return &MovementUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		branchRepo:  branchRepo,
		invRepo:     invRepo,
		movRepo:     movRepo,
		auditor:     auditor,
	}
}

// CreateMovement valida el tipo y sus sucursales según la tabla de reglas,
// aplica los deltas dentro de una transacción (rollback total si algún lado
// falla) y agrega exactamente un registro al libro.
func (uc *MovementUseCase) CreateMovement(ctx context.Context, in dto.CreateMovementRequest, userID *string) (*entity.StockMovement, error) {
	rule, ok := domaininv.RuleFor(in.Type)
	if !ok {
		return nil, domain.Invalid("type: tipo de movimiento desconocido")
	}
	if in.Quantity <= 0 {
		return nil, domain.Invalid("quantity: debe ser mayor que cero")
	}
	if rule.RequiresFrom && in.FromBranchSlug == "" {
		return nil, domain.Invalid("from_branch_slug: requerido para " + in.Type)
	}
	if rule.RequiresTo && in.ToBranchSlug == "" {
		return nil, domain.Invalid("to_branch_slug: requerido para " + in.Type)
	}
	if in.Type == entity.MovementTransferencia && in.FromBranchSlug == in.ToBranchSlug {
		return nil, domain.Invalid("transferencia entre la misma sucursal")
	}

	product, err := uc.productRepo.GetBySlug(in.ProductSlug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFoundf("producto", in.ProductSlug)
	}

	// Slug ausente -> lado nulo; slug presente pero desconocido -> NotFound.
	var fromBranch, toBranch *entity.Branch
	if in.FromBranchSlug != "" {
		if fromBranch, err = uc.resolveBranch(in.FromBranchSlug); err != nil {
			return nil, err
		}
	}
	if in.ToBranchSlug != "" {
		if toBranch, err = uc.resolveBranch(in.ToBranchSlug); err != nil {
			return nil, err
		}
	}

	mov := &entity.StockMovement{
		Type:        in.Type,
		Quantity:    in.Quantity,
		ProductID:   product.ID,
		UserID:      userID,
		ReferenceID: in.ReferenceID,
		Note:        in.Note,
		CreatedAt:   time.Now(),
	}
	if fromBranch != nil {
		mov.FromBranchID = &fromBranch.ID
	}
	if toBranch != nil {
		mov.ToBranchID = &toBranch.ID
	}

	err = uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		movRepo repository.StockMovementRepository,
	) error {
		// Lado origen primero: si la salida no alcanza, ni siquiera se toca el destino.
		if rule.FromDelta != 0 {
			if err := invRepo.AdjustQuantity(product.ID, fromBranch.ID, rule.FromDelta*in.Quantity); err != nil {
				if errors.Is(err, domain.ErrInsufficientStock) {
					return domain.InsufficientStockf(in.ProductSlug)
				}
				return err
			}
		}
		if rule.ToDelta != 0 {
			if err := invRepo.AdjustQuantity(product.ID, toBranch.ID, rule.ToDelta*in.Quantity); err != nil {
				if errors.Is(err, domain.ErrInsufficientStock) {
					return domain.InsufficientStockf(in.ProductSlug)
				}
				return err
			}
		}
		return movRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}

	uc.auditor.Notify(userID, audit.ActionMovementCreated, "stock_movement", mov.ID, map[string]any{
		"type":     mov.Type,
		"quantity": mov.Quantity,
		"product":  in.ProductSlug,
		"from":     in.FromBranchSlug,
		"to":       in.ToBranchSlug,
	})
	return mov, nil
}

// RegisterSaleInTx aplica la salida física de una venta usando los repositorios
// del caller (misma transacción): descuenta quantity y agrega el movimiento
// VENTA. Lo usa el motor de pedidos en la entrega (pickup).
func (uc *MovementUseCase) RegisterSaleInTx(
	invRepo repository.InventoryRepository,
	movRepo repository.StockMovementRepository,
	productID, branchID string,
	qty int64,
	userID *string,
	referenceID string,
	now time.Time,
) error {
	if err := invRepo.AdjustQuantity(productID, branchID, -qty); err != nil {
		return err
	}
	return movRepo.Create(&entity.StockMovement{
		Type:         entity.MovementVenta,
		Quantity:     qty,
		ProductID:    productID,
		FromBranchID: &branchID,
		UserID:       userID,
		ReferenceID:  referenceID,
		CreatedAt:    now,
	})
}

// ListMovements lista el libro con filtros y paginación clamped.
func (uc *MovementUseCase) ListMovements(ctx context.Context, q dto.ListMovementsQuery) ([]*entity.StockMovement, dto.PageMeta, error) {
	q.Clamp()

	filter := repository.MovementFilter{Limit: q.PageSize, Offset: q.Offset()}
	if q.ProductSlug != "" {
		product, err := uc.productRepo.GetBySlug(q.ProductSlug)
		if err != nil {
			return nil, dto.PageMeta{}, err
		}
		if product == nil {
			return nil, dto.PageMeta{}, domain.NotFoundf("producto", q.ProductSlug)
		}
		filter.ProductID = &product.ID
	}
	if q.BranchSlug != "" {
		branch, err := uc.resolveBranch(q.BranchSlug)
		if err != nil {
			return nil, dto.PageMeta{}, err
		}
		filter.BranchID = &branch.ID
	}
	if q.Type != "" {
		if _, ok := domaininv.RuleFor(q.Type); !ok {
			return nil, dto.PageMeta{}, domain.Invalid("type: tipo de movimiento desconocido")
		}
		filter.Type = &q.Type
	}
	var err error
	if filter.From, filter.To, err = dto.ParseDateRange(q.From, q.To); err != nil {
		return nil, dto.PageMeta{}, err
	}

	list, total, err := uc.movRepo.List(filter)
	if err != nil {
		return nil, dto.PageMeta{}, err
	}
	return list, dto.NewPageMeta(total, q.PageRequest), nil
}

// GetStock devuelve las filas de inventario de una sucursal, opcionalmente
// restringidas a un producto.
func (uc *MovementUseCase) GetStock(ctx context.Context, branchSlug, productSlug string) ([]*entity.Inventory, error) {
	branch, err := uc.resolveBranch(branchSlug)
	if err != nil {
		return nil, err
	}
	if productSlug != "" {
		product, err := uc.productRepo.GetBySlug(productSlug)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.NotFoundf("producto", productSlug)
		}
		inv, err := uc.invRepo.Get(product.ID, branch.ID)
		if err != nil {
			return nil, err
		}
		if inv == nil {
			// Sin fila de inventario: el stock se lee como cero.
			inv = &entity.Inventory{ProductID: product.ID, BranchID: branch.ID}
		}
		return []*entity.Inventory{inv}, nil
	}
	return uc.invRepo.ListByBranch(branch.ID)
}

func (uc *MovementUseCase) resolveBranch(slug string) (*entity.Branch, error) {
	branch, err := uc.branchRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.NotFoundf("sucursal", slug)
	}
	return branch, nil
}
