// Package slug normaliza nombres en español a slugs URL-safe:
// "Concha de Vainilla" -> "concha-de-vainilla", "Bolillo Integral ½" -> "bolillo-integral".
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Make convierte un nombre a slug: minúsculas, sin acentos ni ñ diacrítica,
// separadores colapsados a guiones.
func Make(name string) string {
	s, _, err := transform.String(stripAccents, name)
	if err != nil {
		s = name
	}
	s = strings.ToLower(s)

	var b strings.Builder
	lastDash := true // evita guion inicial
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
