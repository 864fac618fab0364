// Package api manejadores HTTP del consolidado mensual.
package api

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/JuannJ22/Rent-sub000/internal/service/monthly"
	"github.com/JuannJ22/Rent-sub000/internal/store"
)

// Handler agrupa las dependencias de los endpoints.
type Handler struct {
	svc   *monthly.Service
	store *store.Store
	log   zerolog.Logger
}

// NewHandler crea el manejador.
func NewHandler(svc *monthly.Service, st *store.Store, log zerolog.Logger) *Handler {
	return &Handler{svc: svc, store: st, log: log}
}

// RegisterRoutes registra las rutas bajo el grupo dado.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/meses", h.ListarMeses)
	rg.POST("/informes/codigos", h.GenerarCodigos)
	rg.POST("/informes/cobros", h.GenerarCobros)
	rg.GET("/historial", h.ListarHistorial)
}
