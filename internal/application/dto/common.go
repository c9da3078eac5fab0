package dto

import (
	"time"

	"github.com/jhoicas/panaderia-api/internal/domain"
)

// Límites de paginación: page >= 1, 1 <= pageSize <= 100.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageRequest paginación para listados (query params page y page_size).
type PageRequest struct {
	Page     int `query:"page"`
	PageSize int `query:"page_size"`
}

// Clamp normaliza los valores: page 0/negativo -> 1; page_size 0/negativo ->
// DefaultPageSize; por encima de MaxPageSize -> MaxPageSize.
func (p *PageRequest) Clamp() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
}

// Offset devuelve el offset SQL para la página ya normalizada.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// PageMeta metadatos de página en respuestas de listado.
type PageMeta struct {
	Total     int64 `json:"total"`
	PageCount int64 `json:"pageCount"`
	Page      int   `json:"page"`
	PageSize  int   `json:"pageSize"`
}

// NewPageMeta calcula los metadatos a partir del total y la página solicitada.
func NewPageMeta(total int64, page PageRequest) PageMeta {
	pageCount := total / int64(page.PageSize)
	if total%int64(page.PageSize) != 0 {
		pageCount++
	}
	return PageMeta{Total: total, PageCount: pageCount, Page: page.Page, PageSize: page.PageSize}
}

// PagedResponse envoltura estándar {data, meta} de los listados.
type PagedResponse[T any] struct {
	Data []T      `json:"data"`
	Meta PageMeta `json:"meta"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ParseDateRange interpreta los filtros from/to de los listados: acepta
// RFC 3339 o fecha simple 2006-01-02; vacío significa sin límite.
func ParseDateRange(from, to string) (*time.Time, *time.Time, error) {
	parse := func(s, field string) (*time.Time, error) {
		if s == "" {
			return nil, nil
		}
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if t, err := time.Parse(layout, s); err == nil {
				return &t, nil
			}
		}
		return nil, domain.Invalid(field + ": fecha inválida")
	}
	f, err := parse(from, "from")
	if err != nil {
		return nil, nil, err
	}
	t, err := parse(to, "to")
	if err != nil {
		return nil, nil, err
	}
	return f, t, nil
}
