// Package calculator métricas de descuento y error monetario para el
// consolidado de malos cobros. Funciones puras y totales: cualquier entrada
// faltante, cero o no finita degrada a 0.0, nunca a un error.
package calculator

import (
	"math"
	"strings"

	"github.com/JuannJ22/Rent-sub000/internal/parser"
)

// IVA multiplicador fijo aplicado al precio unitario facturado.
const IVA = 1.19

// DescuentoAutorizado proporción de descuento pactada: 1 - (lista del
// cliente / lista 12), acotada a [-1, 1]. Devuelve 0 si falta cualquiera de
// los dos precios.
func DescuentoAutorizado(listaCliente, lista12 float64) float64 {
	if listaCliente == 0 || lista12 == 0 {
		return 0
	}
	if !esFinito(listaCliente) || !esFinito(lista12) {
		return 0
	}
	return acotar(1 - listaCliente/lista12)
}

// DescuentoFacturado proporción de descuento efectivamente facturada. Si la
// fila trae descuento explícito se acota y devuelve tal cual (sin IVA). Si
// no, se deriva el precio unitario (campo precio, o ventas/cantidad), se le
// aplica IVA y se compara contra la lista 12.
func DescuentoFacturado(valores map[string]string, lista12 float64) float64 {
	if lista12 == 0 || !esFinito(lista12) {
		return 0
	}
	if crudo := strings.TrimSpace(valores["descuento"]); crudo != "" {
		return acotar(parser.ToFloat(crudo))
	}
	unitario := parser.ToFloat(valores["precio"])
	if unitario == 0 || !esFinito(unitario) {
		cantidad := parser.ToFloat(valores["cantidad"])
		if cantidad == 0 {
			return 0
		}
		unitario = parser.ToFloat(valores["ventas"]) / cantidad
	}
	if unitario == 0 || !esFinito(unitario) {
		return 0
	}
	conIVA := unitario * IVA
	return acotar(1 - conIVA/lista12)
}

// ValorError estimación monetaria del error de cobro para una fila.
func ValorError(facturado, autorizado, lista12, cantidad float64) float64 {
	if lista12 == 0 || cantidad == 0 {
		return 0
	}
	if !esFinito(lista12) || !esFinito(cantidad) {
		return 0
	}
	return (facturado - autorizado) * lista12 * cantidad
}

func acotar(v float64) float64 {
	if !esFinito(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

func esFinito(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
