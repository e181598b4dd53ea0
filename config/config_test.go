package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kochabx/keysort/errors"
	"github.com/kochabx/keysort/log/writer"
)

type checkSettings struct {
	Size    int `mapstructure:"size" default:"100" validate:"gte=0"`
	Workers int `mapstructure:"workers" default:"1" validate:"gte=1"`
}

type mock struct {
	Seed   uint64            `mapstructure:"seed"`
	Sizes  []int             `mapstructure:"sizes" default:"10,1000,100000" validate:"min=1,dive,gte=0"`
	Rotate writer.RotateMode `mapstructure:"rotate"`
	Check  checkSettings     `mapstructure:"check"`
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keysort.yaml"), []byte(content), 0o644))
	return dir
}

func TestLoadFile(t *testing.T) {
	dir := writeFile(t, "seed: 9\nsizes: [5, 50]\nrotate: size\ncheck:\n  workers: 3\n")

	cfg := new(mock)
	require.NoError(t, New(cfg, WithFile("keysort.yaml", dir)).Load())

	assert.Equal(t, uint64(9), cfg.Seed)
	assert.Equal(t, []int{5, 50}, cfg.Sizes)
	assert.Equal(t, writer.RotateModeSize, cfg.Rotate)
	assert.Equal(t, 3, cfg.Check.Workers)
	assert.Equal(t, 100, cfg.Check.Size, "default kept for absent key")
}

func TestLoadExplicitPath(t *testing.T) {
	dir := writeFile(t, "seed: 4\n")

	cfg := new(mock)
	require.NoError(t, New(cfg, WithFile(filepath.Join(dir, "keysort.yaml"))).Load())
	assert.Equal(t, uint64(4), cfg.Seed)
}

func TestMissingFile(t *testing.T) {
	cfg := new(mock)
	err := New(cfg, WithFile("keysort.yaml", t.TempDir())).Load()
	assert.True(t, errors.IsCode(err, errors.CodeInvalidConfig))

	cfg = new(mock)
	require.NoError(t, New(cfg, WithFile("keysort.yaml", t.TempDir()), WithOptionalFile()).Load())
	assert.Equal(t, []int{10, 1000, 100000}, cfg.Sizes)
	assert.Equal(t, 1, cfg.Check.Workers)

	cfg = new(mock)
	missing := filepath.Join(t.TempDir(), "nope.yaml")
	require.NoError(t, New(cfg, WithFile(missing), WithOptionalFile()).Load())
}

func TestEnvOverride(t *testing.T) {
	dir := writeFile(t, "check:\n  workers: 2\n")
	t.Setenv("KEYSORT_CHECK_WORKERS", "6")

	cfg := new(mock)
	require.NoError(t, New(cfg, WithFile("keysort.yaml", dir)).Load())
	assert.Equal(t, 6, cfg.Check.Workers)
}

func TestEnvWithoutFile(t *testing.T) {
	t.Setenv("KEYSORT_SIZES", "3,4")
	t.Setenv("KEYSORT_CHECK_SIZE", "7")

	cfg := new(mock)
	require.NoError(t, New(cfg, WithFile("keysort.yaml", t.TempDir()), WithOptionalFile()).Load())
	assert.Equal(t, []int{3, 4}, cfg.Sizes)
	assert.Equal(t, 7, cfg.Check.Size)
	assert.Equal(t, 1, cfg.Check.Workers)
}

func TestViperOverride(t *testing.T) {
	cfg := new(mock)
	c := New(cfg, WithFile("keysort.yaml", t.TempDir()), WithOptionalFile())
	c.Viper().Set("sizes", "1,2,3")

	require.NoError(t, c.Load())
	assert.Equal(t, []int{1, 2, 3}, cfg.Sizes)
}

func TestValidation(t *testing.T) {
	dir := writeFile(t, "check:\n  workers: 0\n")

	err := New(new(mock), WithFile("keysort.yaml", dir)).Load()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidConfig))
	assert.Contains(t, err.Error(), "Workers")

	assert.NoError(t, New(new(mock), WithFile("keysort.yaml", dir), WithValidator(nil)).Load())
}
