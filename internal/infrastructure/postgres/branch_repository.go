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

var _ repository.BranchRepository = (*BranchRepo)(nil)

// BranchRepo implementación de BranchRepository sobre PostgreSQL (usable con pool o tx).
type BranchRepo struct {
	q Querier
}

// NewBranchRepository construye el adaptador de sucursales. Pasar pool o tx (Querier).
func NewBranchRepository(q Querier) *BranchRepo {
	return &BranchRepo{q: q}
}

// Create persiste una sucursal nueva; slug duplicado -> ErrDuplicate.
func (r *BranchRepo) Create(b *entity.Branch) error {
	query := `
		INSERT INTO branches (id, slug, name, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		b.ID, b.Slug, b.Name, b.Address, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert branch: %w", err)
	}
	return nil
}

// GetByID obtiene una sucursal por ID; nil si no existe.
func (r *BranchRepo) GetByID(id string) (*entity.Branch, error) {
	return r.getBy("id", id)
}

// GetBySlug obtiene una sucursal por slug; nil si no existe.
func (r *BranchRepo) GetBySlug(slug string) (*entity.Branch, error) {
	return r.getBy("slug", slug)
}

func (r *BranchRepo) getBy(column, value string) (*entity.Branch, error) {
	query := fmt.Sprintf(`
		SELECT id, slug, name, address, created_at, updated_at
		FROM branches WHERE %s = $1`, column)
	var b entity.Branch
	err := r.q.QueryRow(context.Background(), query, value).Scan(
		&b.ID, &b.Slug, &b.Name, &b.Address, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get branch: %w", err)
	}
	return &b, nil
}

// List devuelve sucursales ordenadas por nombre, más el total.
func (r *BranchRepo) List(limit, offset int) ([]*entity.Branch, int64, error) {
	var total int64
	if err := r.q.QueryRow(context.Background(), "SELECT count(*) FROM branches").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count branches: %w", err)
	}

	rows, err := r.q.Query(context.Background(), `
		SELECT id, slug, name, address, created_at, updated_at
		FROM branches ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list branches: %w", err)
	}
	defer rows.Close()

	var list []*entity.Branch
	for rows.Next() {
		var b entity.Branch
		if err := rows.Scan(&b.ID, &b.Slug, &b.Name, &b.Address, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan branch: %w", err)
		}
		list = append(list, &b)
	}
	return list, total, rows.Err()
}
