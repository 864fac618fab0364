package parser

import (
	"strings"

	"github.com/JuannJ22/Rent-sub000/internal/model"
)

// Paleta indexada heredada: los archivos viejos traen rellenos con índices de
// la paleta clásica de Excel en lugar de RGB. Solo se conocen dos índices con
// equivalencia confiable; el resto no es resoluble.
var coloresIndexados = map[string]string{
	"22": "FCD5B4", // naranja claro
	"6":  "FFFF00", // amarillo
}

// Variantes de naranja vistas en archivos históricos resaltados a mano.
var variantesNaranja = map[string]bool{
	"FFCEB4": true,
	"FFCCCC": true,
	"FFCC99": true,
	"FFD8B1": true,
	"FFCCB4": true,
	"FFCCB3": true,
}

// ResolveColor convierte un valor de relleno crudo (RGB/ARGB hex, índice de
// paleta heredada) a su forma canónica de 6 dígitos hex en mayúsculas.
// Devuelve cadena vacía cuando el valor no es resoluble.
func ResolveColor(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}
	text = strings.TrimPrefix(text, "#")
	if strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X") {
		text = text[2:]
	}
	text = strings.ToUpper(text)
	if len(text) == 8 && esHex(text) {
		return text[2:]
	}
	if len(text) == 6 && esHex(text) {
		return text
	}
	if esDigitos(text) {
		return coloresIndexados[text]
	}
	return ""
}

func esHex(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return s != ""
}

func esDigitos(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// CoincideCategoria decide si un color canónico cuenta como marca de la
// categoría dada: igualdad exacta o la heurística difusa documentada.
// La heurística amarilla es deliberadamente laxa (puede sobre-coincidir con
// rellenos casi blancos); reproduce el comportamiento histórico.
func CoincideCategoria(color string, cat model.Categoria) bool {
	if color == "" {
		return false
	}
	if color == cat.ColorCanonico() {
		return true
	}
	switch cat {
	case model.CategoriaCodigos:
		if strings.HasPrefix(color, "FC") && strings.Contains(color, "D5") {
			return true
		}
		return variantesNaranja[color]
	case model.CategoriaCobros:
		return strings.HasPrefix(color, "FF") && len(color) == 6 &&
			strings.Contains(color[2:], "F")
	}
	return false
}
