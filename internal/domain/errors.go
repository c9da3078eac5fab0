package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// Invalid envuelve ErrInvalidInput con el detalle del campo o regla violada,
// para que el handler HTTP pueda mostrar el motivo sin perder errors.Is.
func Invalid(detail string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, detail)
}

// Conflict envuelve ErrConflict con el detalle del estado que impide la operación.
func Conflict(detail string) error {
	return fmt.Errorf("%w: %s", ErrConflict, detail)
}

// NotFoundf envuelve ErrNotFound nombrando el recurso faltante.
func NotFoundf(resource, key string) error {
	return fmt.Errorf("%w: %s %q", ErrNotFound, resource, key)
}

// InsufficientStockf envuelve ErrInsufficientStock nombrando el producto afectado.
func InsufficientStockf(productSlug string) error {
	return fmt.Errorf("%w: producto %q", ErrInsufficientStock, productSlug)
}
