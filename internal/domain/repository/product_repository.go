package repository

import "github.com/jhoicas/panaderia-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia del catálogo de productos.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySlug(slug string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, int64, error)
}
