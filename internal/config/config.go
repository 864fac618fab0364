// Package config configuración de la aplicación: config.toml junto al
// ejecutable, con variables de entorno por encima (la herramienta histórica
// se manejaba por entorno).
package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig configuración de la aplicación.
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Rutas  RutasConfig  `toml:"rutas"`
}

// ServerConfig servidor HTTP local.
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// RutasConfig rutas de trabajo del consolidado mensual.
type RutasConfig struct {
	InformesDir            string `toml:"informes_dir"`
	PlantillaCodigos       string `toml:"plantilla_codigos"`
	PlantillaCobros        string `toml:"plantilla_cobros"`
	ConsolidadosCodigosDir string `toml:"consolidados_codigos_dir"`
	ConsolidadosCobrosDir  string `toml:"consolidados_cobros_dir"`
	DataDir                string `toml:"data_dir"`
}

// DefaultConfig valores por defecto.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20815,
			DevMode: false,
		},
		Rutas: RutasConfig{
			InformesDir:            "Informes",
			PlantillaCodigos:       filepath.Join("Plantillas", "PLANTILLACODIGOS.xlsx"),
			PlantillaCobros:        filepath.Join("Plantillas", "PLANTILLAMALCOBRO.xlsx"),
			ConsolidadosCodigosDir: filepath.Join("Consolidados", "Codigos"),
			ConsolidadosCobrosDir:  filepath.Join("Consolidados", "Cobros"),
			DataDir:                "data",
		},
	}
}

// GetExeDir carpeta del ejecutable; las rutas relativas cuelgan de ahí.
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfig carga config.toml desde la carpeta del ejecutable y aplica las
// variables de entorno por encima. Sin archivo devuelve los defaults.
func LoadConfig() (*AppConfig, error) {
	cfg := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			aplicarEntorno(cfg)
			return cfg, nil
		}
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	aplicarEntorno(cfg)
	return cfg, nil
}

// aplicarEntorno variables de entorno que pisan al TOML.
func aplicarEntorno(cfg *AppConfig) {
	sobre := map[string]*string{
		"INFORMES_DIR":             &cfg.Rutas.InformesDir,
		"PLANTILLA_CODIGOS":        &cfg.Rutas.PlantillaCodigos,
		"PLANTILLA_MALCOBRO":       &cfg.Rutas.PlantillaCobros,
		"CONSOLIDADOS_CODIGOS_DIR": &cfg.Rutas.ConsolidadosCodigosDir,
		"CONSOLIDADOS_COBROS_DIR":  &cfg.Rutas.ConsolidadosCobrosDir,
		"RENTA_DATA_DIR":           &cfg.Rutas.DataDir,
	}
	for clave, destino := range sobre {
		if v := os.Getenv(clave); v != "" {
			*destino = v
		}
	}
}

// SaveConfig guarda la configuración en config.toml junto al ejecutable.
func SaveConfig(cfg *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(exeDir, "config.toml"), data, 0o644)
}

// EnsureDataDir garantiza la carpeta de datos (base SQLite) y la devuelve.
func EnsureDataDir(cfg *AppConfig) (string, error) {
	dataDir := cfg.Rutas.DataDir
	if !filepath.IsAbs(dataDir) {
		exeDir, err := GetExeDir()
		if err != nil {
			exeDir = "."
		}
		dataDir = filepath.Join(exeDir, dataDir)
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", err
	}
	return dataDir, nil
}
