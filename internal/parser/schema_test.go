package parser_test

import (
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/JuannJ22/Rent-sub000/internal/parser"
)

func libroConTitulos(t *testing.T, hoja string, fila int, titulos []string) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", hoja); err != nil {
		t.Fatalf("SetSheetName: %v", err)
	}
	celda, err := excelize.CoordinatesToCellName(1, fila)
	if err != nil {
		t.Fatalf("CoordinatesToCellName: %v", err)
	}
	valores := make([]interface{}, len(titulos))
	for i, titulo := range titulos {
		valores[i] = titulo
	}
	if err := f.SetSheetRow(hoja, celda, &valores); err != nil {
		t.Fatalf("SetSheetRow: %v", err)
	}
	return f
}

func TestLocalizarEsquema(t *testing.T) {
	titulos := []string{
		"NIT", "NIT - SUCURSAL - CLIENTE", "DESCRIPCION", "COD. VENDEDOR",
		"CANTIDAD", "VENTAS", "COSTOS", "% RENTA.", "% UTILI.", "PRECIO",
		"DESCUENTO", "RAZON", "FECHA",
	}
	f := libroConTitulos(t, "MARZO 00", 6, titulos)
	defer f.Close()

	esquema, ok := parser.LocalizarEsquema(f)
	if !ok {
		t.Fatalf("no se localizó el esquema")
	}
	if esquema.Hoja != "MARZO 00" {
		t.Fatalf("hoja=%q", esquema.Hoja)
	}
	if esquema.FilaTitulos != 6 {
		t.Fatalf("fila de títulos=%d, want 6", esquema.FilaTitulos)
	}
	esperadas := map[string]int{
		"nit": 1, "cliente": 2, "descripcion": 3, "vendedor": 4,
		"cantidad": 5, "ventas": 6, "costos": 7, "renta": 8,
		"utilidad": 9, "precio": 10, "descuento": 11, "razon": 12,
		"fecha": 13,
	}
	for campo, col := range esperadas {
		if esquema.Columnas[campo] != col {
			t.Fatalf("columna de %s=%d, want %d", campo, esquema.Columnas[campo], col)
		}
	}
}

func TestLocalizarEsquemaAliasEnOrden(t *testing.T) {
	// Con PRODUCTO y DESCRIPCION presentes gana el alias declarado primero.
	f := libroConTitulos(t, "VENTAS", 1, []string{"NIT", "PRODUCTO", "DESCRIPCION", "VENTAS"})
	defer f.Close()

	esquema, ok := parser.LocalizarEsquema(f)
	if !ok {
		t.Fatalf("no se localizó el esquema")
	}
	if esquema.Columnas["descripcion"] != 3 {
		t.Fatalf("descripcion=%d, want 3 (alias directo antes que producto)", esquema.Columnas["descripcion"])
	}
}

func TestLocalizarEsquemaSinVentas(t *testing.T) {
	f := libroConTitulos(t, "RESUMEN", 1, []string{"NIT", "DESCRIPCION", "TOTAL"})
	defer f.Close()

	if _, ok := parser.LocalizarEsquema(f); ok {
		t.Fatalf("una hoja sin columna de ventas no debería ser candidata")
	}
}

func TestLocalizarEsquemaSegundaHoja(t *testing.T) {
	f := libroConTitulos(t, "PORTADA", 1, []string{"RESUMEN MENSUAL"})
	defer f.Close()
	if _, err := f.NewSheet("DETALLE"); err != nil {
		t.Fatalf("NewSheet: %v", err)
	}
	valores := []interface{}{"NIT", "DESCRIPCION", "VENTAS"}
	if err := f.SetSheetRow("DETALLE", "A2", &valores); err != nil {
		t.Fatalf("SetSheetRow: %v", err)
	}

	esquema, ok := parser.LocalizarEsquema(f)
	if !ok {
		t.Fatalf("no se localizó el esquema")
	}
	if esquema.Hoja != "DETALLE" || esquema.FilaTitulos != 2 {
		t.Fatalf("hoja=%q fila=%d", esquema.Hoja, esquema.FilaTitulos)
	}
}
