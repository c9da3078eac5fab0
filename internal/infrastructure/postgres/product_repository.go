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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del catálogo de productos sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// category_id es NULLable en la tabla; en la entidad viaja como string vacío.
const productColumns = "id, slug, name, description, price, COALESCE(category_id::text, ''), active, created_at, updated_at"

// Create persiste un producto nuevo; slug duplicado -> ErrDuplicate.
func (r *ProductRepo) Create(p *entity.Product) error {
	query := `
		INSERT INTO products (id, slug, name, description, price, category_id, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, '')::uuid, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Slug, p.Name, p.Description, p.Price, p.CategoryID, p.Active, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID; nil si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.getBy("id", id)
}

// GetBySlug obtiene un producto por slug; nil si no existe.
func (r *ProductRepo) GetBySlug(slug string) (*entity.Product, error) {
	return r.getBy("slug", slug)
}

func (r *ProductRepo) getBy(column, value string) (*entity.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE %s = $1", productColumns, column)
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, value).Scan(
		&p.ID, &p.Slug, &p.Name, &p.Description, &p.Price, &p.CategoryID,
		&p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// List devuelve productos activos ordenados por nombre, más el total.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, int64, error) {
	var total int64
	if err := r.q.QueryRow(context.Background(), "SELECT count(*) FROM products WHERE active").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := fmt.Sprintf("SELECT %s FROM products WHERE active ORDER BY name LIMIT $1 OFFSET $2", productColumns)
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Slug, &p.Name, &p.Description, &p.Price,
			&p.CategoryID, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, total, rows.Err()
}
