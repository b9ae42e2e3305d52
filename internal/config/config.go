package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable that overrides the config
// file location.
const EnvConfigPath = "BOUNCECURE_CONFIG"

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverMongoDB  = "mongodb"
	DriverFile     = "file"
	DriverMemory   = "memory"
)

// Config is the editor configuration.
type Config struct {
	DataDir  string         `yaml:"data_dir"`
	Storage  StorageConfig  `yaml:"storage"`
	Editor   EditorConfig   `yaml:"editor"`
	Autosave AutosaveConfig `yaml:"autosave"`
	MCP      MCPConfig      `yaml:"mcp"`
}

// StorageConfig selects the Template Store backend.
type StorageConfig struct {
	Driver     string `yaml:"driver"`               // sqlite, postgres, mysql, mongodb, file, memory
	Path       string `yaml:"path,omitempty"`       // sqlite file or file-store directory
	DSN        string `yaml:"dsn,omitempty"`        // postgres/mysql DSN or mongodb URI (env vars expanded)
	DSNSecret  string `yaml:"dsn_secret,omitempty"` // keychain account holding the DSN when dsn is empty
	Database   string `yaml:"database,omitempty"`   // mongodb database
	Collection string `yaml:"collection,omitempty"` // mongodb collection
	Watch      bool   `yaml:"watch,omitempty"`      // file driver: reload on external changes
}

// EditorConfig holds canvas and history settings.
type EditorConfig struct {
	HistoryLimit    int     `yaml:"history_limit"`
	CanvasWidth     float64 `yaml:"canvas_width"`
	CanvasHeight    float64 `yaml:"canvas_height"`
	BackgroundColor string  `yaml:"background_color"`
	PersistHistory  bool    `yaml:"persist_history"`
}

// AutosaveConfig schedules background saves. Schedule uses cron syntax,
// including descriptors such as "@every 30s". Empty disables autosave.
type AutosaveConfig struct {
	Schedule string `yaml:"schedule"`
}

// MCPConfig names the MCP server. Listen, when set, also serves MCP over
// streamable HTTP from the desktop app, e.g. "127.0.0.1:7331".
type MCPConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Listen  string `yaml:"listen,omitempty"`
}

// DefaultDataDir returns ~/.local/share/bouncecure.
func DefaultDataDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".local", "share", "bouncecure")
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		DataDir: DefaultDataDir(),
		Storage: StorageConfig{Driver: DriverSQLite},
		Editor: EditorConfig{
			HistoryLimit:    20,
			CanvasWidth:     600,
			CanvasHeight:    800,
			BackgroundColor: "#ffffff",
			PersistHistory:  true,
		},
		Autosave: AutosaveConfig{Schedule: "@every 30s"},
		MCP:      MCPConfig{Name: "bouncecure-editor", Version: "1.0.0"},
	}
}

// Path returns the config file location: $BOUNCECURE_CONFIG, or
// config.yaml in the default data directory.
func Path() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return filepath.Join(DefaultDataDir(), "config.yaml")
}

// Load reads the config file at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults fills fields a partial file left empty.
func (c *Config) applyDefaults() {
	def := Default()
	if c.DataDir == "" {
		c.DataDir = def.DataDir
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = def.Storage.Driver
	}
	if c.Editor.HistoryLimit <= 0 {
		c.Editor.HistoryLimit = def.Editor.HistoryLimit
	}
	if c.Editor.CanvasWidth <= 0 {
		c.Editor.CanvasWidth = def.Editor.CanvasWidth
	}
	if c.Editor.CanvasHeight <= 0 {
		c.Editor.CanvasHeight = def.Editor.CanvasHeight
	}
	if c.Editor.BackgroundColor == "" {
		c.Editor.BackgroundColor = def.Editor.BackgroundColor
	}
	if c.MCP.Name == "" {
		c.MCP.Name = def.MCP.Name
	}
	if c.MCP.Version == "" {
		c.MCP.Version = def.MCP.Version
	}
	c.Storage.DSN = os.ExpandEnv(c.Storage.DSN)
}

// Validate checks the storage selection is usable.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverSQLite, DriverFile, DriverMemory:
	case DriverPostgres, DriverMySQL, DriverMongoDB:
		if c.Storage.DSN == "" && c.Storage.DSNSecret == "" {
			return fmt.Errorf("storage driver %s requires a dsn or dsn_secret", c.Storage.Driver)
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	return nil
}

// StoragePath returns the sqlite file or file-store directory, resolved
// against the data directory.
func (c *Config) StoragePath() string {
	p := c.Storage.Path
	switch {
	case p != "" && filepath.IsAbs(p):
		return p
	case p != "":
		return filepath.Join(c.DataDir, p)
	case c.Storage.Driver == DriverFile:
		return filepath.Join(c.DataDir, "templates")
	}
	return filepath.Join(c.DataDir, "editor.db")
}
