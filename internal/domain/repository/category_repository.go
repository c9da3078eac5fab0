package repository

import "github.com/jhoicas/panaderia-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia de categorías del catálogo.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetBySlug(slug string) (*entity.Category, error)
	List() ([]*entity.Category, error)
}
