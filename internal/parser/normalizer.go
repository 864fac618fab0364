package parser

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	reEspacios    = regexp.MustCompile(`\s+`)
	reNoAlfanum   = regexp.MustCompile(`[^0-9a-z]+`)
	reFechaLibro  = regexp.MustCompile(`(20\d{6})`)
	reListaPrecio = regexp.MustCompile(`lista\s*(\d+)`)
)

// StripText recorta y colapsa espacios internos a uno solo.
func StripText(value string) string {
	text := strings.TrimSpace(value)
	if text == "" {
		return ""
	}
	return reEspacios.ReplaceAllString(text, " ")
}

// NormalizeKey normaliza un valor de celda como clave comparable: minúsculas,
// sin tildes, y cualquier corrida de caracteres no alfanuméricos reducida a
// un espacio. Los encabezados y las claves de producto se comparan con esto.
func NormalizeKey(value string) string {
	text := strings.ToLower(StripText(value))
	if text == "" {
		return ""
	}
	text = quitarDiacriticos(text)
	text = reNoAlfanum.ReplaceAllString(text, " ")
	return strings.TrimSpace(reEspacios.ReplaceAllString(text, " "))
}

// quitarDiacriticos descompone a NFKD y descarta las marcas combinantes.
func quitarDiacriticos(text string) string {
	decomposed := norm.NFKD.String(text)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ToFloat coerción tolerante de celda a float64: admite sufijo %, separadores
// de miles con coma, y devuelve 0 ante cualquier valor no numérico.
func ToFloat(value string) float64 {
	text := strings.TrimSpace(value)
	if text == "" {
		return 0
	}
	text = strings.ReplaceAll(text, "%", "")
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return f
	}
	text = strings.ReplaceAll(text, ",", "")
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0
	}
	return f
}

// FechaDeNombre extrae la fecha 20YYMMDD embebida en un nombre de archivo.
func FechaDeNombre(name string) (string, bool) {
	m := reFechaLibro.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ListaDeEncabezado extrae el identificador de lista de un encabezado
// normalizado tipo "lista 12". Devuelve la cadena de dígitos capturada.
func ListaDeEncabezado(header string) (string, bool) {
	m := reListaPrecio.FindStringSubmatch(header)
	if m == nil {
		return "", false
	}
	return m[1], true
}
