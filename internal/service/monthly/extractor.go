package monthly

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/JuannJ22/Rent-sub000/internal/model"
	"github.com/JuannJ22/Rent-sub000/internal/parser"
)

// prefijo de los archivos de bloqueo que deja Excel abierto.
const prefijoBloqueo = "~$"

// errEsquemaNoEncontrado ninguna hoja del libro tiene los campos mínimos.
var errEsquemaNoEncontrado = errors.New("no se encontró la fila de títulos del informe")

// extraerMes recorre los libros del mes (ordenados por nombre) y acumula las
// filas resaltadas de la categoría pedida. Un libro ilegible o sin esquema se
// reporta por el bus y se omite; nunca aborta el resto del mes.
func (s *Service) extraerMes(dirMes string, cat model.Categoria) ([]model.FilaResaltada, error) {
	entradas, err := os.ReadDir(dirMes)
	if err != nil {
		return nil, fmt.Errorf("no se pudo leer la carpeta del mes: %w", err)
	}

	var libros []string
	for _, e := range entradas {
		nombre := e.Name()
		if e.IsDir() || !strings.EqualFold(filepath.Ext(nombre), ".xlsx") {
			continue
		}
		if strings.HasPrefix(nombre, prefijoBloqueo) {
			continue
		}
		libros = append(libros, nombre)
	}
	sort.Strings(libros)

	var filas []model.FilaResaltada
	for _, nombre := range libros {
		ruta := filepath.Join(dirMes, nombre)
		fecha, tieneFecha := fechaDeLibro(ruta)
		extraidas, err := extraerDeLibro(ruta, cat, fecha, tieneFecha)
		if err != nil {
			s.publicar("log", fmt.Sprintf("Se omite %s: %v", nombre, err))
			continue
		}
		filas = append(filas, extraidas...)
	}
	return filas, nil
}

// fechaDeLibro fecha de referencia del libro: patrón 20YYMMDD del nombre de
// archivo, o la fecha de modificación como respaldo.
func fechaDeLibro(ruta string) (time.Time, bool) {
	base := strings.TrimSuffix(filepath.Base(ruta), filepath.Ext(ruta))
	if digitos, ok := parser.FechaDeNombre(base); ok {
		if f, err := time.Parse("20060102", digitos); err == nil {
			return f, true
		}
	}
	if info, err := os.Stat(ruta); err == nil {
		return info.ModTime(), true
	}
	return time.Time{}, false
}

// extraerDeLibro abre un libro y devuelve sus filas marcadas con la
// categoría pedida, ya enriquecidas con el contexto de precios y terceros.
// El mismo manejador sirve la vista de valores calculados (GetRows) y la de
// estilos y comentarios (GetStyle/GetComments).
func extraerDeLibro(ruta string, cat model.Categoria, fecha time.Time, tieneFecha bool) (_ []model.FilaResaltada, err error) {
	wb, err := excelize.OpenFile(ruta)
	if err != nil {
		return nil, fmt.Errorf("no se pudo abrir el libro: %w", err)
	}
	defer func() {
		if cerr := wb.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	esquema, ok := parser.LocalizarEsquema(wb)
	if !ok {
		return nil, errEsquemaNoEncontrado
	}

	rows, err := wb.GetRows(esquema.Hoja)
	if err != nil {
		return nil, fmt.Errorf("no se pudo leer la hoja %s: %w", esquema.Hoja, err)
	}

	precios := cargarPrecios(wb)
	terceros := cargarTerceros(wb)
	comentarios := comentariosDeHoja(wb, esquema.Hoja)

	ancho := anchoDeHoja(wb, esquema.Hoja, rows)

	lector := lectorDeColores{wb: wb, hoja: esquema.Hoja, estilos: map[int][]string{}}

	var filas []model.FilaResaltada
	for idx := esquema.FilaTitulos; idx < len(rows); idx++ {
		numFila := idx + 1
		row := rows[idx]

		valores, conDatos := recolectarValores(row, esquema)
		if !conDatos {
			continue
		}

		detectada, ok := categoriaDeFila(lector.coloresDeFila(numFila, ancho))
		if !ok || detectada != cat {
			continue
		}

		enriquecer(&valores, precios, terceros)
		fila := model.FilaResaltada{
			Valores:      valores.campos,
			Todas:        append([]string(nil), row...),
			Categoria:    cat,
			Fecha:        fecha,
			TieneFecha:   tieneFecha,
			Lista12:      valores.lista12,
			ListaCliente: valores.listaCliente,
		}

		colRazon := esquema.Columna("razon")
		if colRazon == 0 {
			colRazon = 12
		}
		if nombre, err := excelize.CoordinatesToCellName(colRazon, numFila); err == nil {
			fila.Comentario = comentarios[nombre]
		}

		filas = append(filas, fila)
	}
	return filas, nil
}

// anchoDeHoja ancho a escanear por colores: el máximo entre las celdas con
// valor y la dimensión declarada de la hoja, porque una marca puede estar
// pintada en una columna sin datos.
func anchoDeHoja(wb *excelize.File, hoja string, rows [][]string) int {
	ancho := 0
	for _, row := range rows {
		if len(row) > ancho {
			ancho = len(row)
		}
	}
	if dim, err := wb.GetSheetDimension(hoja); err == nil && dim != "" {
		partes := strings.Split(dim, ":")
		if col, _, err := excelize.CellNameToCoordinates(partes[len(partes)-1]); err == nil && col > ancho {
			ancho = col
		}
	}
	return ancho
}

// categoriasEnOrden prioridad de clasificación cuando una fila trae marcas
// de más de un color: códigos antes que cobros.
var categoriasEnOrden = []model.Categoria{model.CategoriaCodigos, model.CategoriaCobros}

// categoriaDeFila clasifica la fila por prioridad de categoría: todos los
// colores de la fila se prueban contra códigos y solo después contra cobros;
// cada fila pertenece a una sola categoría.
func categoriaDeFila(colores []string) (model.Categoria, bool) {
	for _, cat := range categoriasEnOrden {
		for _, color := range colores {
			if parser.CoincideCategoria(color, cat) {
				return cat, true
			}
		}
	}
	return "", false
}

// filaValores valores mapeados de una fila más el contexto resuelto.
type filaValores struct {
	campos       map[string]string
	lista12      float64
	listaCliente float64
}

// recolectarValores junta los campos mapeados; descarta la fila si todos los
// campos están vacíos o si ninguno de nit/descripcion/ventas/cantidad trae
// dato.
func recolectarValores(row []string, esquema model.EsquemaHoja) (filaValores, bool) {
	campos := make(map[string]string, len(esquema.Columnas))
	vacia := true
	for campo, col := range esquema.Columnas {
		v := celda(row, col)
		if strings.TrimSpace(v) != "" {
			vacia = false
		}
		campos[campo] = v
	}
	if vacia {
		return filaValores{}, false
	}
	conDatos := false
	for _, campo := range []string{"nit", "descripcion", "ventas", "cantidad"} {
		if strings.TrimSpace(campos[campo]) != "" {
			conDatos = true
			break
		}
	}
	if !conDatos {
		return filaValores{}, false
	}
	return filaValores{campos: campos}, true
}

// enriquecer cruza la fila con TERCEROS y PRECIOS: lista del cliente, lista
// 12 de referencia, y relleno del precio cuando el exportador lo omitió.
func enriquecer(valores *filaValores, precios map[string]map[string]float64, terceros map[string]tercero) {
	nit := parser.StripText(valores.campos["nit"])
	claveProducto := parser.NormalizeKey(valores.campos["descripcion"])
	preciosProducto := precios[claveProducto]

	if lista12, ok := preciosProducto["12"]; ok {
		valores.lista12 = lista12
		if strings.TrimSpace(valores.campos["precio"]) == "" && lista12 != 0 {
			valores.campos["precio"] = strconv.FormatFloat(lista12, 'f', -1, 64)
		}
	}
	if t, ok := terceros[nit]; ok {
		if p, ok := precioDeLista(preciosProducto, t.Lista); ok {
			valores.listaCliente = p
		}
	}
}

// lectorDeColores lee los rellenos sólidos de una fila, con caché de estilos
// porque los IDs se repiten mucho dentro de un libro.
type lectorDeColores struct {
	wb      *excelize.File
	hoja    string
	estilos map[int][]string
}

// coloresDeFila colores canónicos de los rellenos sólidos de la fila, sin
// duplicados y en orden de aparición.
func (l *lectorDeColores) coloresDeFila(fila, ancho int) []string {
	var colores []string
	vistos := map[string]bool{}
	for col := 1; col <= ancho; col++ {
		nombre, err := excelize.CoordinatesToCellName(col, fila)
		if err != nil {
			continue
		}
		idEstilo, err := l.wb.GetCellStyle(l.hoja, nombre)
		if err != nil {
			continue
		}
		for _, color := range l.coloresDeEstilo(idEstilo) {
			if !vistos[color] {
				vistos[color] = true
				colores = append(colores, color)
			}
		}
	}
	return colores
}

func (l *lectorDeColores) coloresDeEstilo(id int) []string {
	if cacheados, ok := l.estilos[id]; ok {
		return cacheados
	}
	var colores []string
	estilo, err := l.wb.GetStyle(id)
	if err == nil && estilo != nil && esRellenoSolido(estilo.Fill) {
		for _, crudo := range estilo.Fill.Color {
			if c := parser.ResolveColor(crudo); c != "" {
				colores = append(colores, c)
			}
		}
	}
	l.estilos[id] = colores
	return colores
}

func esRellenoSolido(fill excelize.Fill) bool {
	return fill.Type == "pattern" && fill.Pattern == 1
}

// comentariosDeHoja indexa los comentarios de la hoja por celda.
func comentariosDeHoja(wb *excelize.File, hoja string) map[string]string {
	resultado := map[string]string{}
	comentarios, err := wb.GetComments(hoja)
	if err != nil {
		return resultado
	}
	for _, c := range comentarios {
		texto := c.Text
		if texto == "" {
			var b strings.Builder
			for _, run := range c.Paragraph {
				b.WriteString(run.Text)
			}
			texto = b.String()
		}
		if texto != "" {
			resultado[c.Cell] = texto
		}
	}
	return resultado
}
