// Package exporter escribe los consolidados mensuales sobre las plantillas
// pre-existentes, rellenando solo la zona de datos y respetando la fila
// TOTAL, las celdas combinadas y las fórmulas de la plantilla.
package exporter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/JuannJ22/Rent-sub000/internal/model"
	"github.com/JuannJ22/Rent-sub000/internal/parser"
)

// colorZebra gris claro de las filas alternas.
const colorZebra = "F2F2F2"

// abrirPlantilla abre el libro de plantilla desde disco.
func abrirPlantilla(ruta string) (*excelize.File, error) {
	if ruta == "" {
		return nil, errors.New("la ruta de la plantilla está vacía")
	}
	if _, err := os.Stat(ruta); err != nil {
		return nil, fmt.Errorf("no se encontró la plantilla: %w", err)
	}
	return excelize.OpenFile(ruta)
}

// hojaActiva nombre de la hoja activa de la plantilla.
func hojaActiva(f *excelize.File) string {
	if nombre := f.GetSheetName(f.GetActiveSheetIndex()); nombre != "" {
		return nombre
	}
	hojas := f.GetSheetList()
	if len(hojas) > 0 {
		return hojas[0]
	}
	return ""
}

// dimensiones filas y columnas pobladas de la hoja.
func dimensiones(f *excelize.File, hoja string) (maxFila, maxCol int) {
	rows, err := f.GetRows(hoja)
	if err != nil {
		return 0, 1
	}
	maxFila = len(rows)
	maxCol = 1
	for _, row := range rows {
		if len(row) > maxCol {
			maxCol = len(row)
		}
	}
	return maxFila, maxCol
}

// buscarFilaDatos primera fila de datos: la siguiente a la primera fila cuyo
// texto normalizado contenga alguna de las claves. Sin coincidencia se asume
// encabezado en la fila 1.
func buscarFilaDatos(f *excelize.File, hoja string, claves []string) int {
	rows, err := f.GetRows(hoja)
	if err != nil {
		return 2
	}
	for idx, row := range rows {
		for _, celda := range row {
			normalizada := parser.NormalizeKey(celda)
			for _, clave := range claves {
				if normalizada == clave {
					return idx + 2
				}
			}
		}
	}
	return 2
}

// buscarFilaTotal fila ancla cuyo texto normalizado es "total", 0 si no hay.
func buscarFilaTotal(f *excelize.File, hoja string) int {
	rows, err := f.GetRows(hoja)
	if err != nil {
		return 0
	}
	for idx, row := range rows {
		for _, celda := range row {
			if parser.NormalizeKey(celda) == "total" {
				return idx + 1
			}
		}
	}
	return 0
}

// celdasCombinadas celdas cubiertas por un rango combinado que no son el
// ancla superior-izquierda; esas posiciones no se escriben ni se pintan.
func celdasCombinadas(f *excelize.File, hoja string) map[string]bool {
	cubiertas := map[string]bool{}
	rangos, err := f.GetMergeCells(hoja)
	if err != nil {
		return cubiertas
	}
	for _, rango := range rangos {
		c1, f1, err1 := excelize.CellNameToCoordinates(rango.GetStartAxis())
		c2, f2, err2 := excelize.CellNameToCoordinates(rango.GetEndAxis())
		if err1 != nil || err2 != nil {
			continue
		}
		for fila := f1; fila <= f2; fila++ {
			for col := c1; col <= c2; col++ {
				if fila == f1 && col == c1 {
					continue
				}
				if nombre, err := excelize.CoordinatesToCellName(col, fila); err == nil {
					cubiertas[nombre] = true
				}
			}
		}
	}
	return cubiertas
}

// limpiarRango borra valores y comentarios del rango de datos, saltando las
// posiciones combinadas no ancla.
func limpiarRango(f *excelize.File, hoja string, desde, hasta, maxCol int, combinadas map[string]bool) error {
	if hasta < desde {
		return nil
	}
	for fila := desde; fila <= hasta; fila++ {
		for col := 1; col <= maxCol; col++ {
			nombre, err := excelize.CoordinatesToCellName(col, fila)
			if err != nil {
				continue
			}
			if combinadas[nombre] {
				continue
			}
			if err := f.SetCellValue(hoja, nombre, nil); err != nil {
				return err
			}
			_ = f.DeleteComment(hoja, nombre)
		}
	}
	return nil
}

// aplicarZebra sombreado alterno del bloque escrito: desplazamiento impar en
// gris claro, par sin relleno.
func aplicarZebra(f *excelize.File, hoja string, inicio, cantidad, maxCol int, combinadas map[string]bool) error {
	if cantidad <= 0 {
		return nil
	}
	gris, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{colorZebra}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	base, err := f.NewStyle(&excelize.Style{})
	if err != nil {
		return err
	}
	for offset := 0; offset < cantidad; offset++ {
		estilo := base
		if offset%2 == 1 {
			estilo = gris
		}
		fila := inicio + offset
		for col := 1; col <= maxCol; col++ {
			nombre, err := excelize.CoordinatesToCellName(col, fila)
			if err != nil {
				continue
			}
			if combinadas[nombre] {
				continue
			}
			if err := f.SetCellStyle(hoja, nombre, nombre, estilo); err != nil {
				return err
			}
		}
	}
	return nil
}

// formatearFecha valor de fecha para el informe: el valor crudo de la fila
// si lo trae, o la fecha del libro en ISO. Vacío cuando no hay ninguna.
func formatearFecha(fila model.FilaResaltada) string {
	if crudo := fila.Campo("fecha"); crudo != "" {
		return crudo
	}
	if fila.TieneFecha {
		return fila.Fecha.Format(time.DateOnly)
	}
	return ""
}

// escribirCelda escribe texto; las celdas vacías se dejan en blanco.
func escribirCelda(f *excelize.File, hoja string, col, fila int, valor string) error {
	nombre, err := excelize.CoordinatesToCellName(col, fila)
	if err != nil {
		return err
	}
	if valor == "" {
		return f.SetCellValue(hoja, nombre, nil)
	}
	return f.SetCellValue(hoja, nombre, valor)
}

// numeroDeCelda coerción del valor crudo a float64 (coma de miles tolerada).
// ok=false indica que el valor debe quedar como texto.
func numeroDeCelda(valor string) (float64, bool) {
	text := strings.TrimSpace(valor)
	if text == "" {
		return 0, false
	}
	if v, err := strconv.ParseFloat(text, 64); err == nil {
		return v, true
	}
	text = strings.ReplaceAll(text, ",", "")
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// escribirNumero escribe un valor numérico.
func escribirNumero(f *excelize.File, hoja string, col, fila int, valor float64) error {
	nombre, err := excelize.CoordinatesToCellName(col, fila)
	if err != nil {
		return err
	}
	return f.SetCellValue(hoja, nombre, valor)
}

// guardar crea la carpeta destino y persiste el libro.
func guardar(f *excelize.File, destino string) error {
	if dir := filepath.Dir(destino); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("no se pudo crear la carpeta de salida: %w", err)
		}
	}
	if err := f.SaveAs(destino); err != nil {
		return fmt.Errorf("no se pudo guardar %s: %w", destino, err)
	}
	return nil
}
