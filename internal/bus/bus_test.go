package bus_test

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/JuannJ22/Rent-sub000/internal/bus"
)

func TestPublishEntregaEnOrden(t *testing.T) {
	b := bus.New(zerolog.Nop())

	var recibidos []string
	b.Subscribe(bus.TopicoLog, func(m string) { recibidos = append(recibidos, "a:"+m) })
	b.Subscribe(bus.TopicoLog, func(m string) { recibidos = append(recibidos, "b:"+m) })
	b.Subscribe(bus.TopicoError, func(m string) { recibidos = append(recibidos, "err:"+m) })

	b.Publish(bus.TopicoLog, "uno")
	b.Publish(bus.TopicoLog, "dos")
	b.Publish(bus.TopicoDone, "ignorado")

	want := []string{"a:uno", "b:uno", "a:dos", "b:dos"}
	if len(recibidos) != len(want) {
		t.Fatalf("recibidos=%v", recibidos)
	}
	for i := range want {
		if recibidos[i] != want[i] {
			t.Fatalf("recibidos[%d]=%q, want %q", i, recibidos[i], want[i])
		}
	}
}

func TestPublishSobreviveSuscriptorEnPanico(t *testing.T) {
	b := bus.New(zerolog.Nop())

	b.Subscribe(bus.TopicoProgreso, func(string) { panic("suscriptor roto") })
	var ultimo string
	b.Subscribe(bus.TopicoProgreso, func(m string) { ultimo = m })

	b.Publish(bus.TopicoProgreso, "50")
	if ultimo != "50" {
		t.Fatalf("el segundo suscriptor no recibió el mensaje: %q", ultimo)
	}
}

func TestBusNilEsInofensivo(t *testing.T) {
	var b *bus.Bus
	b.Subscribe(bus.TopicoLog, func(string) {})
	b.Publish(bus.TopicoLog, "sin receptores")
}
