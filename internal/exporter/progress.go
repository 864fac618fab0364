package exporter

// ProgressEvent evento de avance de una exportación (para CLI/UI).
type ProgressEvent struct {
	Porcentaje int
	Etapa      string
}

func reportarProgreso(progreso func(ProgressEvent), porcentaje int, etapa string) {
	if progreso == nil {
		return
	}
	if porcentaje < 0 {
		porcentaje = 0
	}
	if porcentaje > 100 {
		porcentaje = 100
	}
	progreso(ProgressEvent{
		Porcentaje: porcentaje,
		Etapa:      etapa,
	})
}
