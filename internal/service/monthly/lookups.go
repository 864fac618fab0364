package monthly

import (
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/JuannJ22/Rent-sub000/internal/parser"
)

// Hojas auxiliares opcionales dentro de cada informe diario.
const (
	hojaPrecios  = "PRECIOS"
	hojaTerceros = "TERCEROS"
)

// tercero datos mínimos del tercero: la lista de precios asignada.
type tercero struct {
	Lista string
}

// cargarPrecios arma el índice producto → {lista: precio} desde la hoja
// PRECIOS. Sin hoja, o sin columnas reconocibles, devuelve un mapa vacío:
// la ausencia de contexto de precios no es un error.
func cargarPrecios(wb *excelize.File) map[string]map[string]float64 {
	vacio := map[string]map[string]float64{}
	rows, err := wb.GetRows(hojaPrecios)
	if err != nil || len(rows) == 0 {
		return vacio
	}

	colProducto := 0
	colListas := map[string]int{}
	for idx, crudo := range rows[0] {
		header := parser.NormalizeKey(crudo)
		if header == "" {
			continue
		}
		if colProducto == 0 && (strings.Contains(header, "producto") || strings.Contains(header, "descripcion")) {
			colProducto = idx + 1
			continue
		}
		if id, ok := parser.ListaDeEncabezado(header); ok {
			colListas[id] = idx + 1
		}
	}
	if colProducto == 0 || len(colListas) == 0 {
		return vacio
	}

	lookup := map[string]map[string]float64{}
	for _, row := range rows[1:] {
		producto := parser.NormalizeKey(celda(row, colProducto))
		if producto == "" {
			continue
		}
		for id, col := range colListas {
			precio, ok := parsearPrecio(celda(row, col))
			if !ok {
				continue
			}
			if lookup[producto] == nil {
				lookup[producto] = map[string]float64{}
			}
			lookup[producto][id] = precio
		}
	}
	return lookup
}

// cargarTerceros arma el índice nit → tercero desde la hoja TERCEROS.
// Sin hoja, o sin columna de nit, devuelve un mapa vacío.
func cargarTerceros(wb *excelize.File) map[string]tercero {
	vacio := map[string]tercero{}
	rows, err := wb.GetRows(hojaTerceros)
	if err != nil || len(rows) == 0 {
		return vacio
	}

	colNit := 0
	colLista := 0
	for idx, crudo := range rows[0] {
		header := parser.NormalizeKey(crudo)
		if strings.Contains(header, "nit") {
			colNit = idx + 1
		}
		if colLista == 0 && strings.Contains(header, "lista") {
			colLista = idx + 1
		}
	}
	if colNit == 0 {
		return vacio
	}

	lookup := map[string]tercero{}
	for _, row := range rows[1:] {
		nit := parser.StripText(celda(row, colNit))
		if nit == "" {
			continue
		}
		t := tercero{}
		if colLista > 0 {
			t.Lista = parser.StripText(celda(row, colLista))
		}
		lookup[nit] = t
	}
	return lookup
}

// precioDeLista resuelve el precio de la lista asignada al cliente, probando
// la clave tal cual y, si la lista es numérica, la variante de dos dígitos
// con cero a la izquierda ("5" → "05").
func precioDeLista(precios map[string]float64, lista string) (float64, bool) {
	if lista == "" || len(precios) == 0 {
		return 0, false
	}
	if p, ok := precios[lista]; ok {
		return p, true
	}
	if n, err := strconv.ParseFloat(lista, 64); err == nil {
		clave := padDosDigitos(int(n))
		if p, ok := precios[clave]; ok {
			return p, true
		}
	}
	return 0, false
}

func padDosDigitos(n int) string {
	s := strconv.Itoa(n)
	if n >= 0 && n < 10 {
		return "0" + s
	}
	return s
}

func parsearPrecio(crudo string) (float64, bool) {
	text := strings.TrimSpace(crudo)
	if text == "" {
		return 0, false
	}
	text = strings.ReplaceAll(text, "%", "")
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return f, true
	}
	text = strings.ReplaceAll(text, ",", "")
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func celda(row []string, col int) string {
	if col <= 0 || col > len(row) {
		return ""
	}
	return row[col-1]
}
