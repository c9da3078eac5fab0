// Package catalog gestiona el alta y consulta de productos, categorías y
// sucursales: el andamiaje contra el que resuelven los slugs del motor de
// inventario y pedidos.
package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-api/internal/application/dto"
	"github.com/jhoicas/panaderia-api/internal/domain"
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
	"github.com/jhoicas/panaderia-api/internal/domain/repository"
	"github.com/jhoicas/panaderia-api/pkg/slug"
)

// UseCase casos de uso del catálogo.
type UseCase struct {
	productRepo  repository.ProductRepository
	branchRepo   repository.BranchRepository
	categoryRepo repository.CategoryRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	productRepo repository.ProductRepository,
	branchRepo repository.BranchRepository,
	categoryRepo repository.CategoryRepository,
) *UseCase {
	return &UseCase{productRepo: productRepo, branchRepo: branchRepo, categoryRepo: categoryRepo}
}

// CreateProduct da de alta un producto; el slug se deriva del nombre si no viene.
func (uc *UseCase) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*entity.Product, error) {
	if in.Name == "" {
		return nil, domain.Invalid("name: requerido")
	}
	if in.Price.LessThan(decimal.Zero) {
		return nil, domain.Invalid("price: no puede ser negativo")
	}
	s := in.Slug
	if s == "" {
		s = slug.Make(in.Name)
	}
	if s == "" {
		return nil, domain.Invalid("slug: no derivable del nombre")
	}

	var categoryID string
	if in.CategorySlug != "" {
		cat, err := uc.categoryRepo.GetBySlug(in.CategorySlug)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			return nil, domain.NotFoundf("categoría", in.CategorySlug)
		}
		categoryID = cat.ID
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Slug:        s,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		CategoryID:  categoryID,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct devuelve un producto por slug.
func (uc *UseCase) GetProduct(ctx context.Context, productSlug string) (*entity.Product, error) {
	product, err := uc.productRepo.GetBySlug(productSlug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFoundf("producto", productSlug)
	}
	return product, nil
}

// ListProducts lista el catálogo activo, paginado.
func (uc *UseCase) ListProducts(ctx context.Context, page dto.PageRequest) ([]*entity.Product, dto.PageMeta, error) {
	page.Clamp()
	list, total, err := uc.productRepo.List(page.PageSize, page.Offset())
	if err != nil {
		return nil, dto.PageMeta{}, err
	}
	return list, dto.NewPageMeta(total, page), nil
}

// CreateBranch da de alta una sucursal; el slug se deriva del nombre si no viene.
func (uc *UseCase) CreateBranch(ctx context.Context, in dto.CreateBranchRequest) (*entity.Branch, error) {
	if in.Name == "" {
		return nil, domain.Invalid("name: requerido")
	}
	s := in.Slug
	if s == "" {
		s = slug.Make(in.Name)
	}
	if s == "" {
		return nil, domain.Invalid("slug: no derivable del nombre")
	}

	now := time.Now()
	branch := &entity.Branch{
		ID:        uuid.New().String(),
		Slug:      s,
		Name:      in.Name,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.branchRepo.Create(branch); err != nil {
		return nil, err
	}
	return branch, nil
}

// CreateCategory da de alta una categoría; el slug se deriva del nombre si no viene.
func (uc *UseCase) CreateCategory(ctx context.Context, in dto.CreateCategoryRequest) (*entity.Category, error) {
	if in.Name == "" {
		return nil, domain.Invalid("name: requerido")
	}
	s := in.Slug
	if s == "" {
		s = slug.Make(in.Name)
	}
	if s == "" {
		return nil, domain.Invalid("slug: no derivable del nombre")
	}

	category := &entity.Category{
		ID:        uuid.New().String(),
		Slug:      s,
		Name:      in.Name,
		CreatedAt: time.Now(),
	}
	if err := uc.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories lista todas las categorías del catálogo.
func (uc *UseCase) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	return uc.categoryRepo.List()
}

// ListBranches lista las sucursales, paginado.
func (uc *UseCase) ListBranches(ctx context.Context, page dto.PageRequest) ([]*entity.Branch, dto.PageMeta, error) {
	page.Clamp()
	list, total, err := uc.branchRepo.List(page.PageSize, page.Offset())
	if err != nil {
		return nil, dto.PageMeta{}, err
	}
	return list, dto.NewPageMeta(total, page), nil
}
