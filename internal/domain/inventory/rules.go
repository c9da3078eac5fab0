// Package inventory contiene la lógica pura del motor de inventario:
// la tabla de reglas por tipo de movimiento (lados requeridos y signo del efecto).
package inventory

import "github.com/jhoicas/panaderia-api/internal/domain/entity"

// Rule describe qué sucursales exige un tipo de movimiento y el delta (por unidad
// de cantidad) que aplica en cada lado. FromDelta/ToDelta valen -1, 0 o +1.
type Rule struct {
	RequiresFrom bool
	RequiresTo   bool
	FromDelta    int64
	ToDelta      int64
}

// Inbound indica si el tipo solo suma existencia (entrada pura).
func (r Rule) Inbound() bool { return !r.RequiresFrom && r.RequiresTo }

// Outbound indica si el tipo solo resta existencia (salida pura).
func (r Rule) Outbound() bool { return r.RequiresFrom && !r.RequiresTo }

var rules = map[string]Rule{
	entity.MovementProduccion:    {RequiresTo: true, ToDelta: +1},
	entity.MovementCompra:        {RequiresTo: true, ToDelta: +1},
	entity.MovementSobrante:      {RequiresTo: true, ToDelta: +1},
	entity.MovementVenta:         {RequiresFrom: true, FromDelta: -1},
	entity.MovementMerma:         {RequiresFrom: true, FromDelta: -1},
	entity.MovementPerdidaRobo:   {RequiresFrom: true, FromDelta: -1},
	entity.MovementTransferencia: {RequiresFrom: true, RequiresTo: true, FromDelta: -1, ToDelta: +1},
}

// RuleFor devuelve la regla del tipo dado; ok=false si el tipo no existe.
func RuleFor(movementType string) (Rule, bool) {
	r, ok := rules[movementType]
	return r, ok
}

// Types devuelve los tipos de movimiento conocidos (para validación y docs).
func Types() []string {
	out := make([]string, 0, len(rules))
	for t := range rules {
		out = append(out, t)
	}
	return out
}
