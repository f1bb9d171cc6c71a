package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Normalizar remove acentos e baixa a caixa, para a coluna de busca do
// catálogo ("LÂMPADA LED" -> "lampada led"). Em erro de transformação,
// devolve a string original em minúsculas.
func Normalizar(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}
