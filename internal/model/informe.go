package model

import "time"

// Categoria clasifica una fila resaltada según el color con que fue marcada
// en el informe diario.
type Categoria string

const (
	// CategoriaCodigos filas marcadas en naranja: registros creados con un
	// código de producto/cliente incorrecto.
	CategoriaCodigos Categoria = "codigos"
	// CategoriaCobros filas marcadas en amarillo: ventas facturadas con un
	// descuento que no corresponde a la lista autorizada del cliente.
	CategoriaCobros Categoria = "cobros"
)

// ColorCanonico color RGB canónico de cada categoría (6 dígitos hex).
func (c Categoria) ColorCanonico() string {
	switch c {
	case CategoriaCodigos:
		return "FCD5B4"
	case CategoriaCobros:
		return "FFFF00"
	}
	return ""
}

// EsquemaHoja mapeo de campo lógico a índice de columna (base 1), resuelto
// una vez por hoja a partir de los alias de encabezado.
type EsquemaHoja struct {
	Hoja        string
	FilaTitulos int
	Columnas    map[string]int
}

// Columna índice de columna para un campo, 0 si el campo no fue mapeado.
func (e EsquemaHoja) Columna(campo string) int {
	return e.Columnas[campo]
}

// FilaResaltada una fila de datos marcada en un informe diario, ya cruzada
// con las tablas PRECIOS y TERCEROS.
type FilaResaltada struct {
	// Valores campo lógico → valor crudo de celda (vista de valores).
	Valores map[string]string
	// Todas la tupla completa de la fila, para diagnóstico.
	Todas []string
	// Categoria categoría de color que disparó la extracción.
	Categoria Categoria
	// Comentario anotación libre de la columna razón, vacía si no hay.
	Comentario string
	// Fecha fecha del libro de origen (del nombre de archivo o mtime).
	Fecha time.Time
	// TieneFecha false cuando ni el nombre ni el mtime dieron fecha.
	TieneFecha bool
	// Lista12 precio de la lista 12 (referencia), 0 si no se resolvió.
	Lista12 float64
	// ListaCliente precio de la lista asignada al cliente, 0 si no se resolvió.
	ListaCliente float64
}

// Campo valor crudo de un campo lógico, cadena vacía si no existe.
func (f FilaResaltada) Campo(nombre string) string {
	if f.Valores == nil {
		return ""
	}
	return f.Valores[nombre]
}
