package config

import (
	"sync"

	"github.com/spf13/viper"

	"github.com/kochabx/keysort/core/validator"
)

// Config loads settings into a target struct
type Config struct {
	mu       sync.Mutex
	viper    *viper.Viper
	validate validator.Validator
	target   any
	loader   Loader
	name     string
	paths    []string
	prefix   string
	optional bool
}

// New creates a Config for target.
// Without a WithLoader option a FileLoader is created reading "keysort.yaml"
// from the current directory, with env overrides under the KEYSORT_ prefix.
func New(target any, opts ...Option) *Config {
	c := &Config{
		viper:    viper.New(),
		validate: validator.Validate,
		target:   target,
		name:     "keysort.yaml",
		paths:    []string{"."},
		prefix:   "keysort",
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.loader == nil {
		c.loader = NewFileLoader(c.name, c.paths, c.viper, c.validate,
			WithEnvPrefix(c.prefix), WithOptional(c.optional))
	}

	return c
}

// Load reads the configuration using the configured loader
func (c *Config) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.loader.Load(c.target)
}

// Viper returns the underlying viper instance, for binding command flags
func (c *Config) Viper() *viper.Viper {
	return c.viper
}
