package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	casos := map[string]string{
		"Concha de Vainilla":   "concha-de-vainilla",
		"Pan Dulce  Tradición": "pan-dulce-tradicion",
		"Niño Envuelto":        "nino-envuelto",
		"  Bolillo ":           "bolillo",
		"Café & Pan":           "cafe-pan",
		"ROSCA-DE-REYES":       "rosca-de-reyes",
	}
	for entrada, esperado := range casos {
		assert.Equal(t, esperado, Make(entrada), "slug de %q", entrada)
	}
}
