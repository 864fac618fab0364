package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/JuannJ22/Rent-sub000/internal/bus"
	"github.com/JuannJ22/Rent-sub000/internal/config"
	"github.com/JuannJ22/Rent-sub000/internal/model"
	"github.com/JuannJ22/Rent-sub000/internal/server"
	"github.com/JuannJ22/Rent-sub000/internal/service/monthly"
	"github.com/JuannJ22/Rent-sub000/internal/store"
)

func main() {
	if err := raiz().Execute(); err != nil {
		os.Exit(1)
	}
}

// entorno dependencias compartidas por los subcomandos.
type entorno struct {
	cfg *config.AppConfig
	svc *monthly.Service
	bus *bus.Bus
	log zerolog.Logger
}

func raiz() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "rentabilidad",
		Short:         "Consolidación mensual de informes de rentabilidad",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.AddCommand(cmdMeses(), cmdCodigos(), cmdCobros(), cmdServe())
	return cmd
}

// preparar carga entorno, configuración y servicio mensual.
func preparar() (*entorno, error) {
	// .env opcional junto al proceso; las variables ya presentes mandan.
	_ = godotenv.Load()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("no se pudo cargar la configuración: %w", err)
	}

	b := bus.New(log)
	svc, err := monthly.New(monthly.Config{
		InformesDir:            cfg.Rutas.InformesDir,
		PlantillaCodigos:       cfg.Rutas.PlantillaCodigos,
		PlantillaCobros:        cfg.Rutas.PlantillaCobros,
		ConsolidadosCodigosDir: cfg.Rutas.ConsolidadosCodigosDir,
		ConsolidadosCobrosDir:  cfg.Rutas.ConsolidadosCobrosDir,
	}, b)
	if err != nil {
		return nil, err
	}

	return &entorno{cfg: cfg, svc: svc, bus: b, log: log}, nil
}

func cmdMeses() *cobra.Command {
	return &cobra.Command{
		Use:   "meses",
		Short: "Lista los meses con informes diarios disponibles",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := preparar()
			if err != nil {
				return err
			}
			meses, err := env.svc.ListarMeses()
			if err != nil {
				return err
			}
			if len(meses) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No hay meses con informes.")
				return nil
			}
			for _, mes := range meses {
				fmt.Fprintln(cmd.OutOrStdout(), mes)
			}
			return nil
		},
	}
}

func cmdCodigos() *cobra.Command {
	var mes string
	cmd := &cobra.Command{
		Use:   "codigos",
		Short: "Genera el informe mensual de códigos incorrectos",
		RunE: func(cmd *cobra.Command, args []string) error {
			return generar(cmd, mes, "codigos", func(env *entorno) (string, int, error) {
				return env.svc.GenerarCodigosIncorrectos(mes)
			})
		},
	}
	cmd.Flags().StringVar(&mes, "mes", "", "nombre de la carpeta del mes (p. ej. Marzo)")
	_ = cmd.MarkFlagRequired("mes")
	return cmd
}

func cmdCobros() *cobra.Command {
	var mes string
	cmd := &cobra.Command{
		Use:   "cobros",
		Short: "Genera el consolidado mensual de malos cobros",
		RunE: func(cmd *cobra.Command, args []string) error {
			return generar(cmd, mes, "cobros", func(env *entorno) (string, int, error) {
				return env.svc.GenerarMalosCobros(mes)
			})
		},
	}
	cmd.Flags().StringVar(&mes, "mes", "", "nombre de la carpeta del mes (p. ej. Marzo)")
	_ = cmd.MarkFlagRequired("mes")
	return cmd
}

func generar(cmd *cobra.Command, mes, tipo string, fn func(*entorno) (string, int, error)) error {
	env, err := preparar()
	if err != nil {
		return err
	}

	st, err := abrirStore(env.cfg)
	if err != nil {
		env.log.Warn().Err(err).Msg("historial deshabilitado")
	} else {
		defer st.Close()
	}

	var registroID string
	if st != nil {
		registroID, _ = st.CrearRegistro(tipo, mes)
	}

	inicio := time.Now()
	ruta, filas, err := fn(env)
	duracion := time.Since(inicio).Milliseconds()

	if err != nil {
		if st != nil && registroID != "" {
			_ = st.CompletarRegistro(registroID, "", 0, duracion, model.EstadoError, err.Error())
		}
		return err
	}
	if st != nil && registroID != "" {
		_ = st.CompletarRegistro(registroID, ruta, filas, duracion, model.EstadoCompletado, "OK")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Informe generado (%d filas): %s\n", filas, ruta)
	return nil
}

func cmdServe() *cobra.Command {
	var puerto int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Levanta el servidor HTTP local",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := preparar()
			if err != nil {
				return err
			}
			if puerto > 0 {
				env.cfg.Server.Port = puerto
			}

			st, err := abrirStore(env.cfg)
			if err != nil {
				return err
			}

			srv := server.NewServer(env.cfg, env.svc, st, env.log)
			defer srv.Close()

			addr := fmt.Sprintf(":%d", env.cfg.Server.Port)
			env.log.Info().Str("addr", addr).Msg("servidor iniciado")
			return srv.Run(addr)
		},
	}
	cmd.Flags().IntVar(&puerto, "puerto", 0, "puerto del servidor (sobrescribe config.toml)")
	return cmd
}

func abrirStore(cfg *config.AppConfig) (*store.Store, error) {
	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		return nil, err
	}
	return store.New(filepath.Join(dataDir, "rentabilidad.db"))
}
