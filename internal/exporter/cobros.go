package exporter

import (
	"github.com/JuannJ22/Rent-sub000/internal/calculator"
	"github.com/JuannJ22/Rent-sub000/internal/model"
	"github.com/JuannJ22/Rent-sub000/internal/parser"
)

// EscribirCobros vuelca las filas de malos cobros sobre la plantilla, con
// los descuentos autorizado/facturado y el valor del error ya calculados.
// Las filas se escriben contiguas desde el inicio de datos; no hay ancla de
// total en esta plantilla.
func EscribirCobros(plantilla string, filas []model.FilaResaltada, destino string, progreso func(ProgressEvent)) (err error) {
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
	reportarProgreso(progreso, 10, "preparando plantilla de cobros")

	inicio := buscarFilaDatos(f, hoja, []string{"fecha", "vendedor"})
	maxFila, maxCol := dimensiones(f, hoja)
	if maxCol < 11 {
		maxCol = 11
	}
	combinadas := celdasCombinadas(f, hoja)
	if err := limpiarRango(f, hoja, inicio, maxFila, maxCol, combinadas); err != nil {
		return err
	}

	reportarProgreso(progreso, 40, "escribiendo filas")
	for offset, fila := range filas {
		filaDestino := inicio + offset

		factura, observacion := "", ""
		if fila.Comentario != "" {
			factura, observacion = parser.ParseComment(fila.Comentario)
		}
		autorizado := calculator.DescuentoAutorizado(fila.ListaCliente, fila.Lista12)
		facturado := calculator.DescuentoFacturado(fila.Valores, fila.Lista12)
		cantidad := parser.ToFloat(fila.Campo("cantidad"))
		valorError := calculator.ValorError(facturado, autorizado, fila.Lista12, cantidad)

		vendedor := fila.Campo("vendedor")
		if vendedor == "" {
			vendedor = fila.Campo("cliente")
		}

		if err := escribirCelda(f, hoja, 1, filaDestino, formatearFecha(fila)); err != nil {
			return err
		}
		if err := escribirCelda(f, hoja, 2, filaDestino, vendedor); err != nil {
			return err
		}
		if err := escribirCelda(f, hoja, 3, filaDestino, factura); err != nil {
			return err
		}
		if err := escribirNumero(f, hoja, 4, filaDestino, cantidad); err != nil {
			return err
		}
		if err := escribirCelda(f, hoja, 5, filaDestino, fila.Campo("descripcion")); err != nil {
			return err
		}
		if err := escribirNumero(f, hoja, 6, filaDestino, autorizado); err != nil {
			return err
		}
		if err := escribirNumero(f, hoja, 7, filaDestino, facturado); err != nil {
			return err
		}
		if err := escribirCelda(f, hoja, 8, filaDestino, observacion); err != nil {
			return err
		}
		// La columna 9 (solución) y la 11 (valor cobrado) quedan en blanco
		// para diligenciar a mano.
		if err := escribirNumero(f, hoja, 10, filaDestino, valorError); err != nil {
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
	reportarProgreso(progreso, 100, "consolidado de cobros listo")
	return nil
}
