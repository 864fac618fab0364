package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JuannJ22/Rent-sub000/internal/model"
	"github.com/JuannJ22/Rent-sub000/internal/service/monthly"
)

// generarRequest cuerpo de las peticiones de generación.
type generarRequest struct {
	Mes string `json:"mes"`
}

// generarResponse respuesta de una generación, al estilo de los casos de uso
// históricos: ok, mensaje y ruta de salida.
type generarResponse struct {
	OK         bool   `json:"ok"`
	Mensaje    string `json:"mensaje"`
	RutaSalida string `json:"rutaSalida,omitempty"`
	Filas      int    `json:"filas,omitempty"`
}

// ListarMeses meses disponibles bajo la carpeta de informes.
// GET /api/meses
func (h *Handler) ListarMeses(c *gin.Context) {
	meses, err := h.svc.ListarMeses()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"meses": meses})
}

// GenerarCodigos genera el informe de códigos incorrectos del mes.
// POST /api/informes/codigos
func (h *Handler) GenerarCodigos(c *gin.Context) {
	h.generar(c, "codigos", h.svc.GenerarCodigosIncorrectos)
}

// GenerarCobros genera el consolidado de malos cobros del mes.
// POST /api/informes/cobros
func (h *Handler) GenerarCobros(c *gin.Context) {
	h.generar(c, "cobros", h.svc.GenerarMalosCobros)
}

func (h *Handler) generar(c *gin.Context, tipo string, fn func(string) (string, int, error)) {
	var req generarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, generarResponse{OK: false, Mensaje: "petición inválida"})
		return
	}

	registroID, err := h.store.CrearRegistro(tipo, req.Mes)
	if err != nil {
		h.log.Error().Err(err).Msg("no se pudo crear el registro de generación")
	}

	inicio := time.Now()
	ruta, filas, err := fn(req.Mes)
	duracion := time.Since(inicio).Milliseconds()

	if err != nil {
		h.completar(registroID, "", 0, duracion, model.EstadoError, err.Error())
		c.JSON(codigoDeError(err), generarResponse{OK: false, Mensaje: err.Error()})
		return
	}

	h.completar(registroID, ruta, filas, duracion, model.EstadoCompletado, "OK")
	c.JSON(http.StatusOK, generarResponse{
		OK:         true,
		Mensaje:    "OK",
		RutaSalida: ruta,
		Filas:      filas,
	})
}

func (h *Handler) completar(id, ruta string, filas int, duracionMs int64, estado, mensaje string) {
	if id == "" {
		return
	}
	if err := h.store.CompletarRegistro(id, ruta, filas, duracionMs, estado, mensaje); err != nil {
		h.log.Error().Err(err).Str("registro", id).Msg("no se pudo completar el registro")
	}
}

// codigoDeError traduce la taxonomía de errores del servicio a HTTP.
func codigoDeError(err error) int {
	switch {
	case errors.Is(err, monthly.ErrMesInvalido):
		return http.StatusBadRequest
	case errors.Is(err, monthly.ErrMesNoEncontrado):
		return http.StatusNotFound
	case errors.Is(err, monthly.ErrSinResaltados):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// ListarHistorial historial de generaciones, más recientes primero.
// GET /api/historial?limite=50
func (h *Handler) ListarHistorial(c *gin.Context) {
	limite := 50
	if crudo := c.Query("limite"); crudo != "" {
		if n, err := strconv.Atoi(crudo); err == nil && n > 0 {
			limite = n
		}
	}
	registros, err := h.store.ListarRegistros(limite)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if registros == nil {
		registros = []model.RegistroGeneracion{}
	}
	c.JSON(http.StatusOK, gin.H{"registros": registros})
}
