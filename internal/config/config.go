package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	BackendREST     = "rest"
	BackendPostgres = "postgres"
)

type Config struct {
	// Backend selects the row-store transport: "rest" (default) or
	// "postgres" for operators holding the database DSN.
	Backend     string        `yaml:"backend"`
	BackendURL  string        `yaml:"backend_url"`
	APIKey      string        `yaml:"api_key"`
	DatabaseURL string        `yaml:"database_url"`
	HTTPTimeout time.Duration `yaml:"-"`
	TimeoutSecs int           `yaml:"timeout_seconds"`

	// BaseAddress is the shareable address invite links are built on.
	BaseAddress string `yaml:"base_address"`

	// TicketCode is the locally persisted slot holding the last
	// resolved code. Rewritten on successful resolution, cleared when a
	// stale code fails to resolve.
	TicketCode string `yaml:"ticket_code"`

	path string
}

// Load reads the config file (if present) and then applies environment
// overrides. A missing file is not an error; the zero config with env
// values is returned.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := &Config{path: path}
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.Backend = readString("PLANTSEL_BACKEND", cfg.Backend)
	cfg.BackendURL = readString("PLANTSEL_BACKEND_URL", cfg.BackendURL)
	cfg.APIKey = readString("PLANTSEL_API_KEY", cfg.APIKey)
	cfg.DatabaseURL = readString("DB_DSN", cfg.DatabaseURL)
	cfg.BaseAddress = readString("PLANTSEL_BASE_ADDRESS", cfg.BaseAddress)
	cfg.TimeoutSecs = readInt("PLANTSEL_TIMEOUT_SECONDS", cfg.TimeoutSecs)

	if cfg.Backend == "" {
		cfg.Backend = BackendREST
	}
	if cfg.TimeoutSecs <= 0 {
		cfg.TimeoutSecs = 15
	}
	cfg.HTTPTimeout = time.Duration(cfg.TimeoutSecs) * time.Second

	return cfg, nil
}

// DefaultPath is ~/.config/plantsel/config.yaml, or a relative fallback
// when the home directory cannot be determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "plantsel.yaml"
	}
	return filepath.Join(home, ".config", "plantsel", "config.yaml")
}

// SaveTicketCode persists the resolved code for future sessions.
func (c *Config) SaveTicketCode(code string) error {
	c.TicketCode = code
	return c.write()
}

// ClearTicketCode drops a stale persisted code.
func (c *Config) ClearTicketCode() error {
	c.TicketCode = ""
	return c.write()
}

func (c *Config) Path() string {
	return c.path
}

func (c *Config) write() error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func readString(key, fallback string) string {
	if raw := os.Getenv(key); raw != "" {
		return raw
	}
	return fallback
}

func readInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
