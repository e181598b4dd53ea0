package config

import (
	"github.com/spf13/viper"

	"github.com/kochabx/keysort/core/validator"
)

// Option is a function that configures a Config
type Option func(*Config)

// WithViper sets a custom viper instance
func WithViper(v *viper.Viper) Option {
	return func(c *Config) {
		c.viper = v
	}
}

// WithValidator sets a custom validator; nil disables validation
func WithValidator(v validator.Validator) Option {
	return func(c *Config) {
		c.validate = v
	}
}

// WithLoader sets the configuration loader
func WithLoader(loader Loader) Option {
	return func(c *Config) {
		c.loader = loader
	}
}

// WithFile sets the config file name and search paths of the default loader.
// An empty paths keeps the current directory.
func WithFile(name string, paths ...string) Option {
	return func(c *Config) {
		if name != "" {
			c.name = name
		}
		if len(paths) > 0 {
			c.paths = paths
		}
	}
}

// WithOptionalFile makes a missing config file a no-op instead of an error
func WithOptionalFile() Option {
	return func(c *Config) {
		c.optional = true
	}
}
