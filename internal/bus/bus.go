// Package bus fan-out de eventos de avance y bitácora hacia los
// suscriptores (CLI, API, logs). La entrega es best-effort: un suscriptor
// que falle nunca interrumpe el cálculo que publicó el evento.
package bus

import (
	"sync"

	"github.com/rs/zerolog"
)

// Tópicos publicados por los servicios.
const (
	TopicoLog      = "log"
	TopicoError    = "error"
	TopicoDone     = "done"
	TopicoProgreso = "progreso"
)

// Bus bus de eventos por tópico.
type Bus struct {
	mu   sync.RWMutex
	subs map[string][]func(string)
	log  zerolog.Logger
}

// New crea un bus que además refleja cada publicación en el logger.
func New(log zerolog.Logger) *Bus {
	return &Bus{
		subs: make(map[string][]func(string)),
		log:  log,
	}
}

// Subscribe registra un receptor para un tópico.
func (b *Bus) Subscribe(topico string, fn func(string)) {
	if b == nil || fn == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[topico] = append(b.subs[topico], fn)
}

// Publish entrega el mensaje a cada suscriptor del tópico. Un suscriptor en
// pánico se descarta sin afectar al resto ni al publicador.
func (b *Bus) Publish(topico, mensaje string) {
	if b == nil {
		return
	}
	switch topico {
	case TopicoError:
		b.log.Error().Str("topico", topico).Msg(mensaje)
	default:
		b.log.Info().Str("topico", topico).Msg(mensaje)
	}
	b.mu.RLock()
	receptores := make([]func(string), len(b.subs[topico]))
	copy(receptores, b.subs[topico])
	b.mu.RUnlock()
	for _, fn := range receptores {
		entregar(fn, mensaje)
	}
}

func entregar(fn func(string), mensaje string) {
	defer func() {
		_ = recover()
	}()
	fn(mensaje)
}
