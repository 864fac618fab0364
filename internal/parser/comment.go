package parser

import (
	"regexp"
	"strings"
)

// reDocumento etiqueta opcional "doc"/"documento" seguida de un código
// alfanumérico de factura (hasta 5 letras, guión o espacio opcional, 3+
// dígitos).
var reDocumento = regexp.MustCompile(`(?i)(doc(?:umento)?[:\s-]*)?([A-Z]{0,5}[-\s]?\d{3,})`)

// ParseComment separa de una anotación libre el número de documento y la
// observación restante. Sin patrón de documento devuelve ("", texto).
func ParseComment(text string) (factura, observacion string) {
	clean := strings.ReplaceAll(text, "\n", " ")
	m := reDocumento.FindString(clean)
	if m == "" {
		obs := strings.Trim(clean, " -:")
		return "", obs
	}
	sub := reDocumento.FindStringSubmatch(clean)
	factura = strings.ToUpper(strings.ReplaceAll(sub[2], " ", ""))
	observacion = strings.Replace(clean, m, "", 1)
	observacion = strings.Trim(observacion, " -:")
	return factura, observacion
}
