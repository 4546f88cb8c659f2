package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig is the application configuration loaded from config.toml
// next to the executable.
type AppConfig struct {
	Server   ServerConfig   `toml:"server"`
	Data     DataConfig     `toml:"data"`
	Business BusinessConfig `toml:"business"`
}

type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// BusinessConfig carries the receiving-schedule defaults. The lead
// time is HH:MM:SS; it seeds the database setting on first start and
// the stored value wins afterwards.
type BusinessConfig struct {
	DefaultLeadTime string `toml:"default_lead_time"`
}

func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20280,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Business: BusinessConfig{
			DefaultLeadTime: "12:00:00",
		},
	}
}

// GetExeDir returns the directory holding the executable.
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfig loads config.toml from the executable's directory. A
// missing file yields the defaults; environment variables override
// individual settings afterwards.
func LoadConfig() (*AppConfig, error) {
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(config)
			return config, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	applyEnv(config)
	return config, nil
}

func applyEnv(config *AppConfig) {
	if v := os.Getenv("IMPORTDESK_DATA_DIR"); v != "" {
		config.Data.DataDir = v
	}
	if v := os.Getenv("IMPORTDESK_LEAD_TIME"); v != "" {
		config.Business.DefaultLeadTime = v
	}
}

// SaveConfig writes the configuration back to config.toml.
func SaveConfig(config *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// EnsureDataDir creates the data directory (and the uploads subdir for
// kept spreadsheets) next to the executable.
func EnsureDataDir(config *AppConfig) (string, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	dataDir := filepath.Join(exeDir, config.Data.DataDir)

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Join(dataDir, "uploads"), 0755); err != nil {
		return "", err
	}

	return dataDir, nil
}
