package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// FileName is the config file looked up next to the executable.
const FileName = "config.toml"

// Source kinds.
const (
	SourceHTTP     = "http"
	SourceWorkbook = "workbook"
)

// Cache backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// AppConfig is the application configuration.
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
	Source SourceConfig `toml:"source"`
	Cache  CacheConfig  `toml:"cache"`
	Log    LogConfig    `toml:"log"`
}

// ServerConfig is the HTTP server section.
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig is where local state lives. A relative data_dir is resolved
// against the config directory.
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// SourceConfig selects the row source.
type SourceConfig struct {
	Kind           string `toml:"kind"`
	BaseURL        string `toml:"base_url"`
	SheetParam     string `toml:"sheet_param"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	WorkbookPath   string `toml:"workbook_path"`
}

// CacheConfig selects the snapshot store.
type CacheConfig struct {
	Backend       string `toml:"backend"`
	FileName      string `toml:"file_name"`
	MaxAgeSeconds int    `toml:"max_age_seconds"`
}

// LogConfig sets the log level.
type LogConfig struct {
	Level string `toml:"level"`
}

// LoadConfigInfo describes where the config came from.
type LoadConfigInfo struct {
	Dir           string
	Path          string
	Found         bool
	PortSpecified bool
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20262,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Source: SourceConfig{
			Kind:           SourceHTTP,
			SheetParam:     "sheet",
			TimeoutSeconds: 30,
		},
		Cache: CacheConfig{
			Backend:       BackendFile,
			FileName:      "hr-data-store.json",
			MaxAgeSeconds: 0,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks the settings that cannot be defaulted.
func (c *AppConfig) Validate() error {
	switch c.Source.Kind {
	case SourceHTTP:
		if c.Source.BaseURL == "" {
			return errors.New("source.base_url is required for the http source")
		}
	case SourceWorkbook:
		if c.Source.WorkbookPath == "" {
			return errors.New("source.workbook_path is required for the workbook source")
		}
	default:
		return fmt.Errorf("unknown source.kind %q", c.Source.Kind)
	}
	switch c.Cache.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("unknown cache.backend %q", c.Cache.Backend)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	return nil
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}
	serverMap, ok := raw["server"].(map[string]any)
	if !ok {
		return false
	}
	_, ok = serverMap["port"]
	return ok
}

// GetExeDir returns the directory of the running executable.
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfigWithInfo loads config.toml and .env from the executable's directory.
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return LoadConfigFrom(exeDir)
}

// LoadConfigFrom loads dir/config.toml over the defaults, then applies
// environment overrides. Variables from dir/.env are used when the process
// environment does not set them. A missing config file is not an error.
func LoadConfigFrom(dir string) (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{Dir: dir, Path: filepath.Join(dir, FileName)}
	cfg := DefaultConfig()

	data, err := os.ReadFile(info.Path)
	switch {
	case err == nil:
		info.Found = true
		info.PortSpecified = isPortSpecifiedInToml(data)
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, info, fmt.Errorf("parse %s: %w", info.Path, err)
		}
	case !os.IsNotExist(err):
		return nil, info, err
	}

	dotenv, err := readDotenv(filepath.Join(dir, ".env"))
	if err != nil {
		return nil, info, err
	}
	ApplyEnv(cfg, func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	})

	return cfg, info, nil
}

func readDotenv(path string) (map[string]string, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return env, nil
}

// ApplyEnv overrides settings from environment variables.
func ApplyEnv(cfg *AppConfig, getenv func(string) string) {
	if v := getenv("HRCONSOLE_SOURCE_URL"); v != "" {
		cfg.Source.BaseURL = v
		cfg.Source.Kind = SourceHTTP
	}
	if v := getenv("HRCONSOLE_WORKBOOK"); v != "" {
		cfg.Source.WorkbookPath = v
		cfg.Source.Kind = SourceWorkbook
	}
	if v := getenv("HRCONSOLE_DATA_DIR"); v != "" {
		cfg.Data.DataDir = v
	}
	if v := getenv("HRCONSOLE_CACHE_BACKEND"); v != "" {
		cfg.Cache.Backend = strings.ToLower(v)
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// ResolveDataDir returns the absolute data directory for a config loaded from baseDir.
func ResolveDataDir(cfg *AppConfig, baseDir string) string {
	if filepath.IsAbs(cfg.Data.DataDir) {
		return cfg.Data.DataDir
	}
	return filepath.Join(baseDir, cfg.Data.DataDir)
}

// EnsureDataDir creates the data directory and its exports subdirectory.
func EnsureDataDir(cfg *AppConfig, baseDir string) (string, error) {
	dataDir := ResolveDataDir(cfg, baseDir)
	if err := os.MkdirAll(filepath.Join(dataDir, "exports"), 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}

// Marshal renders the config as TOML.
func Marshal(cfg *AppConfig) ([]byte, error) {
	return toml.Marshal(cfg)
}
