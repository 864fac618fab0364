package parser

import (
	"github.com/xuri/excelize/v2"

	"github.com/JuannJ22/Rent-sub000/internal/model"
)

// aliasCampo lista ordenada de alias de encabezado para un campo lógico.
// El orden importa: gana el primer alias presente en la fila de títulos.
type aliasCampo struct {
	Campo string
	Alias []string
}

// camposInforme campos lógicos del informe diario y sus alias, normalizados.
var camposInforme = []aliasCampo{
	{"nit", []string{"nit"}},
	{"cliente", []string{"nit sucursal cliente", "cliente"}},
	{"descripcion", []string{"descripcion", "producto"}},
	{"vendedor", []string{"vendedor", "cod vendedor"}},
	{"cantidad", []string{"cantidad"}},
	{"ventas", []string{"ventas"}},
	{"costos", []string{"costos", "costo"}},
	{"renta", []string{"renta", "rentabilidad"}},
	{"utilidad", []string{"util", "utilidad", "utili"}},
	{"precio", []string{"precio"}},
	{"descuento", []string{"descuento"}},
	{"razon", []string{"razon", "observacion", "detalle", "comentario"}},
	{"fecha", []string{"fecha"}},
}

// camposObligatorios sin estos tres la hoja no es candidata.
var camposObligatorios = []string{"nit", "descripcion", "ventas"}

// LocalizarEsquema recorre las hojas del libro de arriba hacia abajo buscando
// la primera fila que contenga alguno de los campos obligatorios; sobre esa
// fila arma el mapeo campo → columna. Devuelve ok=false si ninguna hoja del
// libro tiene los tres campos obligatorios.
func LocalizarEsquema(wb *excelize.File) (model.EsquemaHoja, bool) {
	for _, hoja := range wb.GetSheetList() {
		rows, err := wb.GetRows(hoja)
		if err != nil {
			continue
		}
		for idx, row := range rows {
			normalizados := make([]string, len(row))
			for i, celda := range row {
				normalizados[i] = NormalizeKey(celda)
			}
			if !contieneAlguno(normalizados, camposObligatorios) {
				continue
			}
			columnas := mapearColumnas(normalizados)
			if !tieneObligatorios(columnas) {
				continue
			}
			return model.EsquemaHoja{
				Hoja:        hoja,
				FilaTitulos: idx + 1,
				Columnas:    columnas,
			}, true
		}
	}
	return model.EsquemaHoja{}, false
}

func contieneAlguno(celdas []string, claves []string) bool {
	for _, clave := range claves {
		for _, celda := range celdas {
			if celda == clave {
				return true
			}
		}
	}
	return false
}

func mapearColumnas(celdas []string) map[string]int {
	columnas := make(map[string]int)
	for _, campo := range camposInforme {
		for _, alias := range campo.Alias {
			col := indiceDe(celdas, alias)
			if col > 0 {
				columnas[campo.Campo] = col
				break
			}
		}
	}
	return columnas
}

func indiceDe(celdas []string, valor string) int {
	for i, celda := range celdas {
		if celda == valor {
			return i + 1
		}
	}
	return 0
}

func tieneObligatorios(columnas map[string]int) bool {
	for _, campo := range camposObligatorios {
		if columnas[campo] == 0 {
			return false
		}
	}
	return true
}
