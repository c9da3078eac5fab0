package repository

import "github.com/jhoicas/panaderia-api/internal/domain/entity"

// BranchRepository define el puerto de persistencia de sucursales.
type BranchRepository interface {
	Create(branch *entity.Branch) error
	GetByID(id string) (*entity.Branch, error)
	GetBySlug(slug string) (*entity.Branch, error)
	List(limit, offset int) ([]*entity.Branch, int64, error)
}
