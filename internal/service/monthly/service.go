// Package monthly consolida las filas resaltadas de los informes diarios de
// un mes en los dos informes mensuales: códigos incorrectos (naranja) y
// malos cobros (amarillo).
package monthly

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/JuannJ22/Rent-sub000/internal/bus"
	"github.com/JuannJ22/Rent-sub000/internal/exporter"
	"github.com/JuannJ22/Rent-sub000/internal/model"
)

// Errores que distinguen cada condición de parada para el llamador.
var (
	// ErrMesInvalido no se indicó un mes.
	ErrMesInvalido = errors.New("debes seleccionar un mes válido")
	// ErrMesNoEncontrado la carpeta del mes no existe bajo informes.
	ErrMesNoEncontrado = errors.New("no se encontró la carpeta para el mes")
	// ErrSinResaltados el mes existe pero ningún libro trae filas marcadas.
	ErrSinResaltados = errors.New("no se encontraron líneas resaltadas para el mes seleccionado")
)

// Config rutas de trabajo del servicio mensual. Todo llega explícito: el
// servicio no lee estado ambiente.
type Config struct {
	InformesDir            string
	PlantillaCodigos       string
	PlantillaCobros        string
	ConsolidadosCodigosDir string
	ConsolidadosCobrosDir  string
}

// Service fachada del consolidado mensual.
type Service struct {
	cfg Config
	bus *bus.Bus
}

// New crea el servicio y garantiza las carpetas de trabajo.
func New(cfg Config, b *bus.Bus) (*Service, error) {
	for _, dir := range []string{cfg.InformesDir, cfg.ConsolidadosCodigosDir, cfg.ConsolidadosCobrosDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("no se pudo crear la carpeta %s: %w", dir, err)
		}
	}
	return &Service{cfg: cfg, bus: b}, nil
}

// ListarMeses nombres (ordenados) de las carpetas de mes bajo informes.
func (s *Service) ListarMeses() ([]string, error) {
	entradas, err := os.ReadDir(s.cfg.InformesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("no se pudo listar informes: %w", err)
	}
	meses := []string{}
	for _, e := range entradas {
		if e.IsDir() {
			meses = append(meses, e.Name())
		}
	}
	sort.Strings(meses)
	return meses, nil
}

// GenerarCodigosIncorrectos consolida las filas naranjas del mes en
// InformeCodigosIncorrectos<Mes>.xlsx. Devuelve la ruta de salida y la
// cantidad de filas escritas.
func (s *Service) GenerarCodigosIncorrectos(mes string) (string, int, error) {
	filas, err := s.filasDelMes(mes, model.CategoriaCodigos)
	if err != nil {
		return "", 0, err
	}
	destino := filepath.Join(s.cfg.ConsolidadosCodigosDir, fmt.Sprintf("InformeCodigosIncorrectos%s.xlsx", mes))
	if err := exporter.EscribirCodigos(s.cfg.PlantillaCodigos, filas, destino, s.progreso); err != nil {
		return "", 0, err
	}
	s.publicar(bus.TopicoLog, fmt.Sprintf("Informe generado: %s", destino))
	return destino, len(filas), nil
}

// GenerarMalosCobros consolida las filas amarillas del mes en
// ConsolidadoMalosCobros<Mes>.xlsx, con los descuentos y el valor del error
// calculados.
func (s *Service) GenerarMalosCobros(mes string) (string, int, error) {
	filas, err := s.filasDelMes(mes, model.CategoriaCobros)
	if err != nil {
		return "", 0, err
	}
	destino := filepath.Join(s.cfg.ConsolidadosCobrosDir, fmt.Sprintf("ConsolidadoMalosCobros%s.xlsx", mes))
	if err := exporter.EscribirCobros(s.cfg.PlantillaCobros, filas, destino, s.progreso); err != nil {
		return "", 0, err
	}
	s.publicar(bus.TopicoLog, fmt.Sprintf("Informe generado: %s", destino))
	return destino, len(filas), nil
}

func (s *Service) filasDelMes(mes string, cat model.Categoria) ([]model.FilaResaltada, error) {
	dirMes, err := s.resolverMes(mes)
	if err != nil {
		return nil, err
	}
	filas, err := s.extraerMes(dirMes, cat)
	if err != nil {
		return nil, err
	}
	if len(filas) == 0 {
		s.publicar(bus.TopicoLog, ErrSinResaltados.Error())
		return nil, ErrSinResaltados
	}
	return filas, nil
}

func (s *Service) resolverMes(mes string) (string, error) {
	if mes == "" {
		return "", ErrMesInvalido
	}
	dirMes := filepath.Join(s.cfg.InformesDir, mes)
	info, err := os.Stat(dirMes)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrMesNoEncontrado, mes)
	}
	return dirMes, nil
}

func (s *Service) publicar(topico, mensaje string) {
	s.bus.Publish(topico, mensaje)
}

func (s *Service) progreso(e exporter.ProgressEvent) {
	s.publicar(bus.TopicoProgreso, fmt.Sprintf("%d%% %s", e.Porcentaje, e.Etapa))
}
