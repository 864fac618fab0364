// Package server servidor HTTP local que expone el consolidado mensual.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/JuannJ22/Rent-sub000/internal/api"
	"github.com/JuannJ22/Rent-sub000/internal/config"
	"github.com/JuannJ22/Rent-sub000/internal/service/monthly"
	"github.com/JuannJ22/Rent-sub000/internal/store"
)

// Server servidor HTTP.
type Server struct {
	router *gin.Engine
	store  *store.Store
}

// NewServer arma el router con el manejador de la API.
func NewServer(cfg *config.AppConfig, svc *monthly.Service, st *store.Store, log zerolog.Logger) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		router: gin.Default(),
		store:  st,
	}

	// CORS para el panel local.
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	grupo := s.router.Group("/api")
	api.NewHandler(svc, st, log).RegisterRoutes(grupo)

	s.router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"servicio": "rentabilidad", "estado": "ok"})
	})

	return s
}

// Handler expone el router como http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run inicia el servidor.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close libera los recursos del servidor.
func (s *Server) Close() error {
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}
