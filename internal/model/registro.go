package model

import "time"

// RegistroGeneracion historial de una corrida de consolidación mensual.
type RegistroGeneracion struct {
	ID         string    `json:"id"`
	Tipo       string    `json:"tipo"`
	Mes        string    `json:"mes"`
	RutaSalida string    `json:"rutaSalida"`
	Filas      int       `json:"filas"`
	DuracionMs int64     `json:"duracionMs"`
	Estado     string    `json:"estado"`
	Mensaje    string    `json:"mensaje"`
	CreadoEn   time.Time `json:"creadoEn"`
}

// Estados de un registro de generación.
const (
	EstadoProcesando = "procesando"
	EstadoCompletado = "completado"
	EstadoError      = "error"
)
