// Package codes normaliza los códigos de negocio (artículos, bodegas, cajas, mesas).
package codes

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var upper = cases.Upper(language.Und)

// Normalize quita espacios externos, tildes y pasa a mayúsculas: " café-01 " -> "CAFE-01".
func Normalize(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, code)
	if err != nil {
		plain = code
	}
	return upper.String(plain)
}

// NormalizeAll aplica Normalize a cada código y descarta los vacíos.
func NormalizeAll(list []string) []string {
	out := make([]string, 0, len(list))
	for _, c := range list {
		if n := Normalize(c); n != "" {
			out = append(out, n)
		}
	}
	return out
}
