package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/sieve/pkg/sieve/filter"
	"github.com/cognicore/sieve/pkg/sieve/internalerr"
	"github.com/cognicore/sieve/pkg/sieve/store"
	"github.com/cognicore/sieve/pkg/sieve/store/postgres"
	"github.com/cognicore/sieve/pkg/sieve/store/sqlite"
)

// Store drivers
const (
	DriverNone     = ""
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// PasswordEnv overrides store.password when set.
const PasswordEnv = "SIEVE_DB_PASSWORD"

// Config represents the sieve configuration file
type Config struct {
	Filter Filter `yaml:"filter"`
	Output Output `yaml:"output"`
	Store  Store  `yaml:"store"`
}

// Filter configures the sentence filter chain.
// MinChars is a pointer so a missing value can be told apart from 0.
type Filter struct {
	MinChars      *int `yaml:"min_chars"`
	ASCIIOnly     bool `yaml:"ascii_only"`
	ExcludeParens bool `yaml:"exclude_parens"`
}

// Output configures the sentence file export
type Output struct {
	Dir string `yaml:"dir"`
}

// Store configures the relational sink
type Store struct {
	Driver   string `yaml:"driver"`
	Path     string `yaml:"path"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
	Table    string `yaml:"table"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML configuration and applies environment overrides
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}
	if pw := os.Getenv(PasswordEnv); pw != "" {
		cfg.Store.Password = pw
	}
	return &cfg, nil
}

// Validate checks the configuration for missing or inconsistent values
func (c *Config) Validate() error {
	if _, err := c.Filter.Chain(); err != nil {
		return err
	}
	return c.Store.Validate()
}

// Chain returns the filter configuration. min_chars is required.
func (f Filter) Chain() (filter.Config, error) {
	if f.MinChars == nil {
		return filter.Config{}, fmt.Errorf("%w: filter.min_chars is required", internalerr.ErrInvalidConfig)
	}
	cfg := filter.Config{
		MinChars:      *f.MinChars,
		ASCIIOnly:     f.ASCIIOnly,
		ExcludeParens: f.ExcludeParens,
	}
	return cfg, cfg.Validate()
}

// SetMinChars sets min_chars, typically from a command-line flag
func (f *Filter) SetMinChars(n int) {
	f.MinChars = &n
}

// Enabled reports whether a store is configured
func (s Store) Enabled() bool {
	return s.Driver != DriverNone
}

// TableName returns the configured table or store.DefaultTable
func (s Store) TableName() string {
	if s.Table == "" {
		return store.DefaultTable
	}
	return s.Table
}

// Validate checks the store section
func (s Store) Validate() error {
	switch strings.ToLower(s.Driver) {
	case DriverNone:
		return nil
	case DriverSQLite:
		if s.Path == "" {
			return fmt.Errorf("%w: store.path is required for sqlite", internalerr.ErrInvalidConfig)
		}
	case DriverPostgres:
		if err := s.postgres().Validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: unknown store driver %q", internalerr.ErrInvalidConfig, s.Driver)
	}
	if err := store.ValidateTable(s.TableName()); err != nil {
		return fmt.Errorf("%w: %w", internalerr.ErrInvalidConfig, err)
	}
	return nil
}

func (s Store) postgres() postgres.Config {
	return postgres.Config{
		Host:     s.Host,
		Port:     s.Port,
		User:     s.User,
		Password: s.Password,
		DBName:   s.DBName,
		SSLMode:  s.SSLMode,
	}
}

// Open connects to the configured store. It returns nil without error when
// no driver is configured.
func (s Store) Open(ctx context.Context) (store.Store, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	switch strings.ToLower(s.Driver) {
	case DriverSQLite:
		return sqlite.OpenSQLite(ctx, s.Path)
	case DriverPostgres:
		return postgres.Open(ctx, s.postgres())
	default:
		return nil, nil
	}
}
