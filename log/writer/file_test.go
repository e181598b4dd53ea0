package writer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotateModeText(t *testing.T) {
	var m RotateMode
	require.NoError(t, m.UnmarshalText([]byte("SIZE")))
	assert.Equal(t, RotateModeSize, m)
	require.NoError(t, m.UnmarshalText([]byte("time")))
	assert.Equal(t, RotateModeTime, m)
	assert.Error(t, m.UnmarshalText([]byte("hourly")))
	assert.Equal(t, "unknown", RotateMode(9).String())
}

func TestPath(t *testing.T) {
	c := RotateConfig{Filepath: "log", Filename: "keysort", FileExt: "log"}
	assert.Equal(t, filepath.Join("log", "keysort.log"), c.path(""))
	assert.Equal(t, filepath.Join("log", "keysort.%Y%m%d.log"), c.path("%Y%m%d"))
}

func TestFileUnsupportedMode(t *testing.T) {
	_, err := File(RotateConfig{Mode: RotateMode(7)})
	assert.Error(t, err)
}
