package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/panaderia-api/internal/domain"
)

// page_size 0 o negativo cae al valor por defecto; por encima de 100 se recorta a 100.
func TestPageRequest_Clamp(t *testing.T) {
	casos := []struct {
		nombre       string
		entrada      PageRequest
		wantPage     int
		wantPageSize int
	}{
		{"ceros usan defaults", PageRequest{Page: 0, PageSize: 0}, 1, DefaultPageSize},
		{"negativos usan defaults", PageRequest{Page: -3, PageSize: -10}, 1, DefaultPageSize},
		{"page_size excesivo se recorta", PageRequest{Page: 2, PageSize: 500}, 2, MaxPageSize},
		{"límite exacto pasa", PageRequest{Page: 1, PageSize: 100}, 1, 100},
		{"valores normales intactos", PageRequest{Page: 3, PageSize: 25}, 3, 25},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			c.entrada.Clamp()
			assert.Equal(t, c.wantPage, c.entrada.Page)
			assert.Equal(t, c.wantPageSize, c.entrada.PageSize)
		})
	}
}

func TestPageRequest_Offset(t *testing.T) {
	p := PageRequest{Page: 3, PageSize: 25}
	assert.Equal(t, 50, p.Offset())
}

// Los filtros de fecha aceptan RFC 3339 o fecha simple; vacío es sin límite.
func TestParseDateRange(t *testing.T) {
	from, to, err := ParseDateRange("2026-08-01", "2026-08-28T15:04:05Z")
	require.NoError(t, err)
	require.NotNil(t, from)
	require.NotNil(t, to)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), from.UTC())
	assert.Equal(t, 28, to.UTC().Day())

	from, to, err = ParseDateRange("", "")
	require.NoError(t, err)
	assert.Nil(t, from)
	assert.Nil(t, to)

	_, _, err = ParseDateRange("ayer", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = ParseDateRange("", "28/08/2026")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// pageCount redondea hacia arriba cuando la última página queda incompleta.
func TestNewPageMeta(t *testing.T) {
	meta := NewPageMeta(101, PageRequest{Page: 2, PageSize: 25})
	assert.Equal(t, int64(101), meta.Total)
	assert.Equal(t, int64(5), meta.PageCount)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 25, meta.PageSize)

	exacto := NewPageMeta(100, PageRequest{Page: 1, PageSize: 25})
	assert.Equal(t, int64(4), exacto.PageCount)
}
