package calculator_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JuannJ22/Rent-sub000/internal/calculator"
)

func TestDescuentoAutorizado(t *testing.T) {
	assert.InDelta(t, 0.1667, calculator.DescuentoAutorizado(1000, 1200), 0.0001)
	assert.Equal(t, 0.0, calculator.DescuentoAutorizado(0, 1200))
	assert.Equal(t, 0.0, calculator.DescuentoAutorizado(1000, 0))
	assert.Equal(t, 0.0, calculator.DescuentoAutorizado(math.NaN(), 1200))
	assert.Equal(t, 0.0, calculator.DescuentoAutorizado(1000, math.Inf(1)))
	// Lista del cliente muy por encima de la referencia: se acota en -1.
	assert.Equal(t, -1.0, calculator.DescuentoAutorizado(5000, 1000))
}

func TestDescuentoFacturadoExplicito(t *testing.T) {
	valores := map[string]string{"descuento": "0.2", "precio": "999"}
	// El descuento explícito se devuelve tal cual, sin IVA.
	assert.Equal(t, 0.2, calculator.DescuentoFacturado(valores, 1200))

	valores = map[string]string{"descuento": "350%"}
	assert.Equal(t, 1.0, calculator.DescuentoFacturado(valores, 1200))
}

func TestDescuentoFacturadoDerivado(t *testing.T) {
	// Con precio unitario: 1 - (800*1.19)/1200.
	valores := map[string]string{"precio": "800"}
	assert.InDelta(t, 1-(800*calculator.IVA)/1200, calculator.DescuentoFacturado(valores, 1200), 1e-9)

	// Sin precio se deriva de ventas/cantidad: unitario 400, con IVA 476.
	valores = map[string]string{"ventas": "2000", "cantidad": "5"}
	assert.InDelta(t, 0.6033, calculator.DescuentoFacturado(valores, 1200), 0.0001)

	// Sin lista 12 no hay contra qué comparar.
	assert.Equal(t, 0.0, calculator.DescuentoFacturado(valores, 0))

	// Sin cantidad ni precio no hay unitario derivable.
	valores = map[string]string{"ventas": "2000"}
	assert.Equal(t, 0.0, calculator.DescuentoFacturado(valores, 1200))
}

func TestValorError(t *testing.T) {
	assert.InDelta(t, 2620.0, calculator.ValorError(0.603333, 0.166667, 1200, 5), 0.01)
	assert.Equal(t, 0.0, calculator.ValorError(0.5, 0.1, 0, 5))
	assert.Equal(t, 0.0, calculator.ValorError(0.5, 0.1, 1200, 0))
	assert.Equal(t, 0.0, calculator.ValorError(0.5, 0.1, math.NaN(), 5))
}
