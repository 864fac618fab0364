package exporter_test

import (
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/JuannJ22/Rent-sub000/internal/exporter"
	"github.com/JuannJ22/Rent-sub000/internal/model"
	"github.com/JuannJ22/Rent-sub000/internal/parser"
)

var titulosCodigos = []string{
	"FECHA", "NIT", "CLIENTE", "DESCRIPCION", "VENDEDOR", "CANTIDAD",
	"VENTAS", "COSTOS", "% RENTA.", "% UTILI.", "PRECIO", "DESCUENTO", "RAZON",
}

// plantillaCodigos arma una plantilla de códigos en disco, opcionalmente con
// fila TOTAL y datos viejos a limpiar.
func plantillaCodigos(t *testing.T, conTotal bool) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	hoja := f.GetSheetName(f.GetActiveSheetIndex())

	fila := make([]interface{}, len(titulosCodigos))
	for i, titulo := range titulosCodigos {
		fila[i] = titulo
	}
	if err := f.SetSheetRow(hoja, "A1", &fila); err != nil {
		t.Fatalf("SetSheetRow: %v", err)
	}
	vieja := []interface{}{"2022-01-01", "999", "CLIENTE VIEJO"}
	if err := f.SetSheetRow(hoja, "A2", &vieja); err != nil {
		t.Fatalf("SetSheetRow: %v", err)
	}
	if conTotal {
		if err := f.SetCellValue(hoja, "A3", "TOTAL"); err != nil {
			t.Fatalf("SetCellValue: %v", err)
		}
		if err := f.SetCellFormula(hoja, "F3", "SUM(F2:F2)"); err != nil {
			t.Fatalf("SetCellFormula: %v", err)
		}
	}

	ruta := filepath.Join(t.TempDir(), "PLANTILLACODIGOS.xlsx")
	if err := f.SaveAs(ruta); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	return ruta
}

func filaCodigos(nit string) model.FilaResaltada {
	return model.FilaResaltada{
		Valores: map[string]string{
			"nit":         nit,
			"cliente":     "000" + nit + "-000-CLIENTE",
			"descripcion": "Producto A",
			"vendedor":    "Vendedor Uno",
			"cantidad":    "2",
			"ventas":      "2400",
			"costos":      "1500",
			"renta":       "0.25",
			"utilidad":    "0.35",
			"precio":      "1200",
			"descuento":   "0.2",
			"razon":       "Precio diferente",
		},
		Categoria:  model.CategoriaCodigos,
		Fecha:      time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC),
		TieneFecha: true,
	}
}

func TestEscribirCodigosCorreTotal(t *testing.T) {
	plantilla := plantillaCodigos(t, true)
	destino := filepath.Join(t.TempDir(), "Marzo.xlsx")

	filas := []model.FilaResaltada{filaCodigos("123"), filaCodigos("789")}
	filas[0].Comentario = "Doc: FV-555 cliente especial"

	if err := exporter.EscribirCodigos(plantilla, filas, destino, nil); err != nil {
		t.Fatalf("EscribirCodigos: %v", err)
	}

	f, err := excelize.OpenFile(destino)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer f.Close()
	hoja := f.GetSheetName(f.GetActiveSheetIndex())

	celda := func(nombre string) string {
		v, err := f.GetCellValue(hoja, nombre)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", nombre, err)
		}
		return v
	}

	// Dos filas de datos donde solo cabía una: el TOTAL baja de la 3 a la 4.
	if celda("A4") != "TOTAL" {
		t.Fatalf("A4=%q, el ancla de total debió desplazarse", celda("A4"))
	}
	if celda("B2") != "123" || celda("B3") != "789" {
		t.Fatalf("nit: B2=%q B3=%q", celda("B2"), celda("B3"))
	}
	if celda("A2") != "2023-03-01" {
		t.Fatalf("fecha A2=%q", celda("A2"))
	}
	if celda("M2") != "Precio diferente - cliente especial" {
		t.Fatalf("razón combinada M2=%q", celda("M2"))
	}
	if celda("M3") != "Precio diferente" {
		t.Fatalf("razón sin comentario M3=%q", celda("M3"))
	}
	// El dato viejo de la plantilla no puede sobrevivir en la columna C.
	if celda("C2") == "CLIENTE VIEJO" {
		t.Fatalf("la zona de datos no fue limpiada")
	}

	// Zebra: el desplazamiento impar (fila 3) queda en gris claro.
	idEstilo, err := f.GetCellStyle(hoja, "B3")
	if err != nil {
		t.Fatalf("GetCellStyle: %v", err)
	}
	estilo, err := f.GetStyle(idEstilo)
	if err != nil {
		t.Fatalf("GetStyle: %v", err)
	}
	if len(estilo.Fill.Color) == 0 || parser.ResolveColor(estilo.Fill.Color[0]) != "F2F2F2" {
		t.Fatalf("relleno zebra=%v", estilo.Fill.Color)
	}
}

func TestEscribirCodigosSinAnclaTotal(t *testing.T) {
	plantilla := plantillaCodigos(t, false)
	destino := filepath.Join(t.TempDir(), "Abril.xlsx")

	if err := exporter.EscribirCodigos(plantilla, []model.FilaResaltada{filaCodigos("321")}, destino, nil); err != nil {
		t.Fatalf("EscribirCodigos: %v", err)
	}

	f, err := excelize.OpenFile(destino)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer f.Close()
	hoja := f.GetSheetName(f.GetActiveSheetIndex())
	if v, _ := f.GetCellValue(hoja, "B2"); v != "321" {
		t.Fatalf("B2=%q", v)
	}
}

// TestEscribirCodigosIdaYVuelta escribe una fila y la vuelve a leer: cada
// campo debe regresar con su valor normalizado intacto.
func TestEscribirCodigosIdaYVuelta(t *testing.T) {
	plantilla := plantillaCodigos(t, true)
	destino := filepath.Join(t.TempDir(), "Mayo.xlsx")

	fila := filaCodigos("456")
	if err := exporter.EscribirCodigos(plantilla, []model.FilaResaltada{fila}, destino, nil); err != nil {
		t.Fatalf("EscribirCodigos: %v", err)
	}

	f, err := excelize.OpenFile(destino)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer f.Close()
	hoja := f.GetSheetName(f.GetActiveSheetIndex())

	campos := []string{
		"nit", "cliente", "descripcion", "vendedor", "cantidad",
		"ventas", "costos", "renta", "utilidad", "precio", "descuento",
	}
	for i, campo := range campos {
		nombre, _ := excelize.CoordinatesToCellName(i+2, 2)
		leido, err := f.GetCellValue(hoja, nombre)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", nombre, err)
		}
		quiero := fila.Campo(campo)
		if parser.StripText(leido) != quiero {
			// Los numéricos pueden volver re-formateados; se comparan por valor.
			a, errA := strconv.ParseFloat(leido, 64)
			b, errB := strconv.ParseFloat(quiero, 64)
			if errA != nil || errB != nil || a != b {
				t.Fatalf("campo %s: leído %q, escrito %q", campo, leido, quiero)
			}
		}
	}
}

// TestEscribirCodigosCeldasNumericas los campos de cifras deben quedar como
// número para que las fórmulas de la fila TOTAL los sumen; los
// identificadores y los valores no coercionables quedan como texto.
func TestEscribirCodigosCeldasNumericas(t *testing.T) {
	plantilla := plantillaCodigos(t, true)
	destino := filepath.Join(t.TempDir(), "Julio.xlsx")

	fila := filaCodigos("654")
	fila.Valores["descuento"] = "n/d"
	if err := exporter.EscribirCodigos(plantilla, []model.FilaResaltada{fila}, destino, nil); err != nil {
		t.Fatalf("EscribirCodigos: %v", err)
	}

	f, err := excelize.OpenFile(destino)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer f.Close()
	hoja := f.GetSheetName(f.GetActiveSheetIndex())

	esTexto := func(nombre string) bool {
		tipo, err := f.GetCellType(hoja, nombre)
		if err != nil {
			t.Fatalf("GetCellType(%s): %v", nombre, err)
		}
		return tipo == excelize.CellTypeSharedString || tipo == excelize.CellTypeInlineString
	}

	// cantidad, ventas, costos, renta, utilidad y precio (columnas F a K).
	for _, nombre := range []string{"F2", "G2", "H2", "I2", "J2", "K2"} {
		if esTexto(nombre) {
			t.Fatalf("la celda %s quedó como texto", nombre)
		}
	}
	// El nit conserva sus ceros a la izquierda: siempre texto.
	if !esTexto("B2") {
		t.Fatalf("el nit B2 no debería escribirse como número")
	}
	// Un valor no coercionable se respeta tal cual.
	if !esTexto("L2") {
		t.Fatalf("el descuento no numérico L2 debería quedar como texto")
	}
	if v, _ := f.GetCellValue(hoja, "L2"); v != "n/d" {
		t.Fatalf("L2=%q", v)
	}
}

func TestEscribirCodigosPlantillaInexistente(t *testing.T) {
	destino := filepath.Join(t.TempDir(), "salida.xlsx")
	err := exporter.EscribirCodigos(filepath.Join(t.TempDir(), "no-existe.xlsx"), nil, destino, nil)
	if err == nil {
		t.Fatalf("se esperaba error por plantilla inexistente")
	}
}
