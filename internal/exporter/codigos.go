package exporter

import (
	"fmt"

	"github.com/JuannJ22/Rent-sub000/internal/model"
	"github.com/JuannJ22/Rent-sub000/internal/parser"
)

// columnasCodigos campos escritos a partir de la columna B; la columna A es
// la fecha y la 13 la razón combinada.
var columnasCodigos = []string{
	"nit",
	"cliente",
	"descripcion",
	"vendedor",
	"cantidad",
	"ventas",
	"costos",
	"renta",
	"utilidad",
	"precio",
	"descuento",
}

// camposNumericosCodigos campos que se escriben como número cuando el valor
// crudo coerciona, para que las fórmulas de la fila TOTAL los sumen. Los
// identificadores (nit) quedan como texto para no perder ceros a la
// izquierda.
var camposNumericosCodigos = map[string]bool{
	"cantidad":  true,
	"ventas":    true,
	"costos":    true,
	"renta":     true,
	"utilidad":  true,
	"precio":    true,
	"descuento": true,
}

// EscribirCodigos vuelca las filas de códigos incorrectos sobre la plantilla
// y guarda el resultado en destino. Si los datos alcanzan la fila TOTAL se
// insertan filas delante del ancla para conservar sus fórmulas.
func EscribirCodigos(plantilla string, filas []model.FilaResaltada, destino string, progreso func(ProgressEvent)) (err error) {
	f, err := abrirPlantilla(plantilla)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	hoja := hojaActiva(f)
	reportarProgreso(progreso, 10, "preparando plantilla de códigos")

	inicio := buscarFilaDatos(f, hoja, []string{"nit"})
	total := buscarFilaTotal(f, hoja)
	if len(filas) > 0 && total > 0 {
		ultima := inicio + len(filas) - 1
		if ultima >= total {
			insertar := ultima - total + 1
			if err := f.InsertRows(hoja, total, insertar); err != nil {
				return fmt.Errorf("no se pudieron insertar filas antes del total: %w", err)
			}
			total += insertar
		}
	}
	if total == 0 {
		total = inicio + len(filas) + 1
	}

	_, maxCol := dimensiones(f, hoja)
	if maxCol < 13 {
		maxCol = 13
	}
	combinadas := celdasCombinadas(f, hoja)
	if err := limpiarRango(f, hoja, inicio, total-1, maxCol, combinadas); err != nil {
		return err
	}

	reportarProgreso(progreso, 40, "escribiendo filas")
	for offset, fila := range filas {
		filaDestino := inicio + offset
		if err := escribirCelda(f, hoja, 1, filaDestino, formatearFecha(fila)); err != nil {
			return err
		}
		for i, campo := range columnasCodigos {
			valor := fila.Campo(campo)
			if camposNumericosCodigos[campo] {
				if v, ok := numeroDeCelda(valor); ok {
					if err := escribirNumero(f, hoja, i+2, filaDestino, v); err != nil {
						return err
					}
					continue
				}
			}
			if err := escribirCelda(f, hoja, i+2, filaDestino, valor); err != nil {
				return err
			}
		}
		if err := escribirCelda(f, hoja, 13, filaDestino, razonCombinada(fila)); err != nil {
			return err
		}
	}

	reportarProgreso(progreso, 80, "aplicando formato")
	if err := aplicarZebra(f, hoja, inicio, len(filas), maxCol, combinadas); err != nil {
		return err
	}
	if err := guardar(f, destino); err != nil {
		return err
	}
	reportarProgreso(progreso, 100, "informe de códigos listo")
	return nil
}

// razonCombinada concatena la razón propia de la fila con la observación del
// comentario, separadas por " - " cuando ambas existen.
func razonCombinada(fila model.FilaResaltada) string {
	razon := parser.StripText(fila.Campo("razon"))
	comentario := ""
	if fila.Comentario != "" {
		_, observacion := parser.ParseComment(fila.Comentario)
		if observacion == "" {
			observacion = fila.Comentario
		}
		comentario = parser.StripText(observacion)
	}
	switch {
	case razon != "" && comentario != "":
		return razon + " - " + comentario
	case comentario != "":
		return comentario
	default:
		return razon
	}
}
