// Package config provides configuration loading and validation for the
// hexastore core.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/c360/hexastore/errors"
)

// Defaults applied by DefaultConfig and by Validate for zero fields.
const (
	DefaultPageSize  = 25
	DefaultMaxPage   = 1000
	DefaultMaxDepth  = 16
	DefaultDirectory = "./hexastore-data"
)

// Config represents the complete store configuration.
type Config struct {
	// Storage holds the ordered KV engine settings.
	Storage StorageConfig `yaml:"storage"`

	// Query holds executor limits.
	Query QueryConfig `yaml:"query"`
}

// StorageConfig configures the embedded KV engine.
type StorageConfig struct {
	// Dir is the database directory. Ignored when InMemory is set.
	Dir string `yaml:"dir"`

	// InMemory keeps all data in memory. Intended for tests.
	InMemory bool `yaml:"in_memory"`

	// SyncWrites forces fsync on every write batch.
	SyncWrites bool `yaml:"sync_writes"`
}

// QueryConfig configures the query executor.
type QueryConfig struct {
	// DefaultPageSize is used when a query asks for page size 0.
	DefaultPageSize int `yaml:"default_page_size"`

	// MaxPageSize caps the page size a query may request.
	MaxPageSize int `yaml:"max_page_size"`

	// MaxTraversalDepth caps the level of link traversals.
	MaxTraversalDepth int `yaml:"max_traversal_depth"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Dir: DefaultDirectory,
		},
		Query: QueryConfig{
			DefaultPageSize:   DefaultPageSize,
			MaxPageSize:       DefaultMaxPage,
			MaxTraversalDepth: DefaultMaxDepth,
		},
	}
}

// Load reads a YAML configuration file, filling unset fields with
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapInvalid(err, "config", "Load", "reading config file")
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.WrapInvalid(err, "config", "Load", "parsing config file")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks invariants and fills zero fields with defaults.
func (c *Config) Validate() error {
	if c.Storage.Dir == "" && !c.Storage.InMemory {
		return fmt.Errorf("%w: storage.dir is required unless in_memory is set",
			errors.ErrInvalidConfig)
	}

	if c.Query.DefaultPageSize == 0 {
		c.Query.DefaultPageSize = DefaultPageSize
	}
	if c.Query.MaxPageSize == 0 {
		c.Query.MaxPageSize = DefaultMaxPage
	}
	if c.Query.MaxTraversalDepth == 0 {
		c.Query.MaxTraversalDepth = DefaultMaxDepth
	}

	if c.Query.DefaultPageSize < 0 || c.Query.MaxPageSize < 0 || c.Query.MaxTraversalDepth < 0 {
		return fmt.Errorf("%w: query limits must be positive", errors.ErrInvalidConfig)
	}
	if c.Query.DefaultPageSize > c.Query.MaxPageSize {
		return fmt.Errorf("%w: default_page_size %d exceeds max_page_size %d",
			errors.ErrInvalidConfig, c.Query.DefaultPageSize, c.Query.MaxPageSize)
	}
	return nil
}
