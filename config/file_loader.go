package config

import (
	"io/fs"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/kochabx/keysort/core/tag"
	"github.com/kochabx/keysort/core/validator"
	"github.com/kochabx/keysort/errors"
)

// FileLoader loads configuration from a file, environment and bound flags
type FileLoader struct {
	viper    *viper.Viper
	validate validator.Validator
	name     string
	paths    []string
	optional bool
}

// FileLoaderOption configures a FileLoader
type FileLoaderOption func(*FileLoader)

// WithEnvPrefix sets the environment variable prefix
func WithEnvPrefix(prefix string) FileLoaderOption {
	return func(l *FileLoader) {
		l.viper.SetEnvPrefix(prefix)
	}
}

// WithOptional makes a missing file acceptable
func WithOptional(optional bool) FileLoaderOption {
	return func(l *FileLoader) {
		l.optional = optional
	}
}

// NewFileLoader creates a new file loader.
// A name containing a path separator is used as an explicit file path.
func NewFileLoader(name string, paths []string, v *viper.Viper, validate validator.Validator, opts ...FileLoaderOption) *FileLoader {
	l := &FileLoader{
		viper:    v,
		validate: validate,
		name:     name,
		paths:    paths,
	}

	if strings.ContainsRune(name, filepath.Separator) {
		v.SetConfigFile(name)
	} else {
		ext := filepath.Ext(name)
		for _, p := range paths {
			v.AddConfigPath(p)
		}
		v.SetConfigName(strings.TrimSuffix(name, ext))
		v.SetConfigType(strings.TrimPrefix(ext, "."))
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Load implements Loader interface
func (l *FileLoader) Load(target any) error {
	// Defaults go in first so fields absent from every source keep them
	if err := tag.ApplyDefaults(target); err != nil {
		return errors.Wrap(err, errors.CodeInvalidConfig, "failed to apply defaults")
	}

	if err := l.viper.ReadInConfig(); err != nil && !l.missingOK(err) {
		return errors.Wrap(err, errors.CodeInvalidConfig, "failed to read config %s", l.name)
	}

	if err := bindEnv(l.viper, reflect.TypeOf(target), ""); err != nil {
		return errors.Wrap(err, errors.CodeInvalidConfig, "failed to bind environment")
	}

	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToWeakSliceHookFunc(","),
	))
	if err := l.viper.Unmarshal(target, hook); err != nil {
		return errors.Wrap(err, errors.CodeInvalidConfig, "config parse error")
	}

	if l.validate != nil {
		if err := l.validate.Struct(target); err != nil {
			return errors.Wrap(err, errors.CodeInvalidConfig, "config validation failed")
		}
	}

	return nil
}

func (l *FileLoader) missingOK(err error) bool {
	if !l.optional {
		return false
	}
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return true
	}
	// An explicit path that does not exist surfaces as an fs error
	return errors.Is(err, fs.ErrNotExist)
}
