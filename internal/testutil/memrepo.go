// Package testutil provee repositorios en memoria para los tests de casos de
// uso. Las mutaciones de inventario replican la semántica de las sentencias
// condicionales de PostgreSQL (cero filas afectadas = fallo), y el TxRunner
// simula Commit/Rollback trabajando sobre una copia del estado.
package testutil

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-api/internal/domain"
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
	"github.com/jhoicas/panaderia-api/internal/domain/repository"
)

// MemStore estado compartido de los repositorios en memoria.
type MemStore struct {
	Products   map[string]*entity.Product  // por ID
	Branches   map[string]*entity.Branch   // por ID
	Categories map[string]*entity.Category // por ID
	Inventory  map[string]*entity.Inventory
	Movements []*entity.StockMovement
	Orders    map[int64]*entity.Order
	Items     map[int64][]entity.OrderItem
	NextOrder int64
}

// NewMemStore construye un estado vacío.
func NewMemStore() *MemStore {
	return &MemStore{
		Products:   map[string]*entity.Product{},
		Branches:   map[string]*entity.Branch{},
		Categories: map[string]*entity.Category{},
		Inventory:  map[string]*entity.Inventory{},
		Orders:     map[int64]*entity.Order{},
		Items:      map[int64][]entity.OrderItem{},
	}
}

func invKey(productID, branchID string) string { return productID + "|" + branchID }

// SeedProduct agrega un producto al catálogo.
func (s *MemStore) SeedProduct(slug, name string, price decimal.Decimal) *entity.Product {
	p := &entity.Product{ID: uuid.New().String(), Slug: slug, Name: name, Price: price, Active: true}
	s.Products[p.ID] = p
	return p
}

// SeedBranch agrega una sucursal.
func (s *MemStore) SeedBranch(slug, name string) *entity.Branch {
	b := &entity.Branch{ID: uuid.New().String(), Slug: slug, Name: name}
	s.Branches[b.ID] = b
	return b
}

// SeedInventory fija la fila de inventario (producto, sucursal).
func (s *MemStore) SeedInventory(productID, branchID string, quantity, reserved int64) {
	s.Inventory[invKey(productID, branchID)] = &entity.Inventory{
		ProductID: productID, BranchID: branchID, Quantity: quantity, Reserved: reserved,
	}
}

// GetInventory lee la fila (cero si ausente), para asserts.
func (s *MemStore) GetInventory(productID, branchID string) entity.Inventory {
	if inv, ok := s.Inventory[invKey(productID, branchID)]; ok {
		return *inv
	}
	return entity.Inventory{ProductID: productID, BranchID: branchID}
}

// GetInventoryRef devuelve la fila viva para que un test simule mutación
// externa; nil si no existe.
func (s *MemStore) GetInventoryRef(productID, branchID string) *entity.Inventory {
	return s.Inventory[invKey(productID, branchID)]
}

func (s *MemStore) clone() *MemStore {
	c := NewMemStore()
	c.NextOrder = s.NextOrder
	for k, v := range s.Products {
		p := *v
		c.Products[k] = &p
	}
	for k, v := range s.Branches {
		b := *v
		c.Branches[k] = &b
	}
	for k, v := range s.Categories {
		cat := *v
		c.Categories[k] = &cat
	}
	for k, v := range s.Inventory {
		inv := *v
		c.Inventory[k] = &inv
	}
	for _, m := range s.Movements {
		mm := *m
		c.Movements = append(c.Movements, &mm)
	}
	for k, v := range s.Orders {
		o := *v
		c.Orders[k] = &o
	}
	for k, v := range s.Items {
		c.Items[k] = append([]entity.OrderItem(nil), v...)
	}
	return c
}

// ── Repos ────────────────────────────────────────────────────────────────────

// InvRepo repositorio de inventario en memoria.
type InvRepo struct{ S *MemStore }

var _ repository.InventoryRepository = (*InvRepo)(nil)

func (r *InvRepo) Get(productID, branchID string) (*entity.Inventory, error) {
	inv := r.S.GetInventory(productID, branchID)
	return &inv, nil
}

func (r *InvRepo) GetForUpdate(productID, branchID string) (*entity.Inventory, error) {
	return r.Get(productID, branchID)
}

func (r *InvRepo) ListByBranch(branchID string) ([]*entity.Inventory, error) {
	var list []*entity.Inventory
	for _, inv := range r.S.Inventory {
		if inv.BranchID == branchID {
			cp := *inv
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *InvRepo) AdjustQuantity(productID, branchID string, delta int64) error {
	key := invKey(productID, branchID)
	inv, ok := r.S.Inventory[key]
	if delta >= 0 {
		if !ok {
			inv = &entity.Inventory{ProductID: productID, BranchID: branchID}
			r.S.Inventory[key] = inv
		}
		inv.Quantity += delta
		return nil
	}
	// Como el UPDATE condicional: fila ausente o resultado por debajo de
	// reserved (o de cero) no afecta filas.
	if !ok || inv.Quantity+delta < inv.Reserved || inv.Quantity+delta < 0 {
		return domain.ErrInsufficientStock
	}
	inv.Quantity += delta
	return nil
}

func (r *InvRepo) Reserve(productID, branchID string, qty int64) error {
	inv, ok := r.S.Inventory[invKey(productID, branchID)]
	if !ok || inv.Reserved+qty > inv.Quantity {
		return domain.ErrInsufficientStock
	}
	inv.Reserved += qty
	return nil
}

func (r *InvRepo) Release(productID, branchID string, qty int64) error {
	if inv, ok := r.S.Inventory[invKey(productID, branchID)]; ok && inv.Reserved >= qty {
		inv.Reserved -= qty
	}
	return nil
}

func (r *InvRepo) ReleaseStrict(productID, branchID string, qty int64) error {
	inv, ok := r.S.Inventory[invKey(productID, branchID)]
	if !ok || inv.Reserved < qty {
		return domain.ErrConflict
	}
	inv.Reserved -= qty
	return nil
}

// MovRepo libro de movimientos en memoria (append-only).
type MovRepo struct{ S *MemStore }

var _ repository.StockMovementRepository = (*MovRepo)(nil)

func (r *MovRepo) Create(m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	cp := *m
	r.S.Movements = append(r.S.Movements, &cp)
	return nil
}

func (r *MovRepo) List(f repository.MovementFilter) ([]*entity.StockMovement, int64, error) {
	var all []*entity.StockMovement
	for _, m := range r.S.Movements {
		if f.ProductID != nil && m.ProductID != *f.ProductID {
			continue
		}
		if f.Type != nil && m.Type != *f.Type {
			continue
		}
		if f.BranchID != nil {
			fromMatch := m.FromBranchID != nil && *m.FromBranchID == *f.BranchID
			toMatch := m.ToBranchID != nil && *m.ToBranchID == *f.BranchID
			if !fromMatch && !toMatch {
				continue
			}
		}
		cp := *m
		all = append(all, &cp)
	}
	total := int64(len(all))
	if f.Offset >= len(all) {
		return nil, total, nil
	}
	all = all[f.Offset:]
	if f.Limit > 0 && f.Limit < len(all) {
		all = all[:f.Limit]
	}
	return all, total, nil
}

// OrderRepo repositorio de pedidos en memoria.
type OrderRepo struct{ S *MemStore }

var _ repository.OrderRepository = (*OrderRepo)(nil)

func (r *OrderRepo) Create(o *entity.Order) error {
	r.S.NextOrder++
	o.ID = r.S.NextOrder
	cp := *o
	r.S.Orders[o.ID] = &cp
	return nil
}

func (r *OrderRepo) SetNumberAndTotals(orderID int64, orderNumber string, subtotal, total decimal.Decimal) error {
	o, ok := r.S.Orders[orderID]
	if !ok {
		return fmt.Errorf("pedido %d inexistente", orderID)
	}
	o.OrderNumber = orderNumber
	o.Subtotal = subtotal
	o.Total = total
	return nil
}

func (r *OrderRepo) CreateItem(item *entity.OrderItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	r.S.Items[item.OrderID] = append(r.S.Items[item.OrderID], *item)
	return nil
}

func (r *OrderRepo) GetWithItems(orderID int64) (*entity.Order, error) {
	o, ok := r.S.Orders[orderID]
	if !ok {
		return nil, nil
	}
	cp := *o
	cp.Items = append([]entity.OrderItem(nil), r.S.Items[orderID]...)
	return &cp, nil
}

func (r *OrderRepo) UpdateStatus(orderID int64, status string, userID *string) error {
	o, ok := r.S.Orders[orderID]
	if !ok {
		return fmt.Errorf("pedido %d inexistente", orderID)
	}
	o.Status = status
	if userID != nil {
		o.UserID = userID
	}
	return nil
}

func (r *OrderRepo) List(f repository.OrderFilter) ([]*entity.Order, int64, error) {
	var all []*entity.Order
	for _, o := range r.S.Orders {
		if f.BranchID != nil && o.BranchID != *f.BranchID {
			continue
		}
		if f.Status != nil && o.Status != *f.Status {
			continue
		}
		if f.From != nil && o.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && o.CreatedAt.After(*f.To) {
			continue
		}
		cp := *o
		all = append(all, &cp)
	}
	return all, int64(len(all)), nil
}

// ProductRepo catálogo de productos en memoria.
type ProductRepo struct{ S *MemStore }

var _ repository.ProductRepository = (*ProductRepo)(nil)

func (r *ProductRepo) Create(p *entity.Product) error {
	for _, existing := range r.S.Products {
		if existing.Slug == p.Slug {
			return domain.ErrDuplicate
		}
	}
	cp := *p
	r.S.Products[p.ID] = &cp
	return nil
}

func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := r.S.Products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *ProductRepo) GetBySlug(slug string) (*entity.Product, error) {
	for _, p := range r.S.Products {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, int64, error) {
	var all []*entity.Product
	for _, p := range r.S.Products {
		cp := *p
		all = append(all, &cp)
	}
	return all, int64(len(all)), nil
}

// BranchRepo sucursales en memoria.
type BranchRepo struct{ S *MemStore }

var _ repository.BranchRepository = (*BranchRepo)(nil)

func (r *BranchRepo) Create(b *entity.Branch) error {
	for _, existing := range r.S.Branches {
		if existing.Slug == b.Slug {
			return domain.ErrDuplicate
		}
	}
	cp := *b
	r.S.Branches[b.ID] = &cp
	return nil
}

func (r *BranchRepo) GetByID(id string) (*entity.Branch, error) {
	if b, ok := r.S.Branches[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}

func (r *BranchRepo) GetBySlug(slug string) (*entity.Branch, error) {
	for _, b := range r.S.Branches {
		if b.Slug == slug {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *BranchRepo) List(limit, offset int) ([]*entity.Branch, int64, error) {
	var all []*entity.Branch
	for _, b := range r.S.Branches {
		cp := *b
		all = append(all, &cp)
	}
	return all, int64(len(all)), nil
}

// CategoryRepo categorías en memoria.
type CategoryRepo struct{ S *MemStore }

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

func (r *CategoryRepo) Create(c *entity.Category) error {
	for _, existing := range r.S.Categories {
		if existing.Slug == c.Slug {
			return domain.ErrDuplicate
		}
	}
	cp := *c
	r.S.Categories[c.ID] = &cp
	return nil
}

func (r *CategoryRepo) GetBySlug(slug string) (*entity.Category, error) {
	for _, c := range r.S.Categories {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *CategoryRepo) List() ([]*entity.Category, error) {
	var all []*entity.Category
	for _, c := range r.S.Categories {
		cp := *c
		all = append(all, &cp)
	}
	return all, nil
}

// ── TxRunner ─────────────────────────────────────────────────────────────────

// TxRunner simula la transacción: ejecuta fn sobre una copia del estado y solo
// si no hay error la promueve al estado real (Commit); el error descarta la
// copia (Rollback), así los tests verifican que no quedan efectos parciales.
type TxRunner struct{ S *MemStore }

// Run ejecuta fn con repos de inventario y movimientos atados a la "tx".
func (r *TxRunner) Run(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	snap := r.S.clone()
	if err := fn(&InvRepo{S: snap}, &MovRepo{S: snap}); err != nil {
		return err
	}
	*r.S = *snap
	return nil
}

// RunOrders ejecuta fn con los repos del motor de pedidos atados a la "tx".
func (r *TxRunner) RunOrders(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	movRepo repository.StockMovementRepository,
	orderRepo repository.OrderRepository,
) error) error {
	snap := r.S.clone()
	if err := fn(&InvRepo{S: snap}, &MovRepo{S: snap}, &OrderRepo{S: snap}); err != nil {
		return err
	}
	*r.S = *snap
	return nil
}

// NopAuditor descarta las notificaciones de auditoría.
type NopAuditor struct{}

// Notify no hace nada.
func (NopAuditor) Notify(userID *string, action, entityType, entityID string, details any) {}
