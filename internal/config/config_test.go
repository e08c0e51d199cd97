package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoadAppliesDefaultsToUnsetFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("compress: false\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.False(t, c.Compress)
	assert.Equal(t, Default().ArchivePath, c.ArchivePath)
	assert.Equal(t, Default().LogLevel, c.LogLevel)
}

func TestLoadHonorsExplicitValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("archivePath: custom.foz\nlogLevel: debug\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "custom.foz", c.ArchivePath)
	assert.Equal(t, "debug", c.LogLevel)
}
