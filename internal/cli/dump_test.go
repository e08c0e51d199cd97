package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gpucache/pipecache/internal/archive"
	"github.com/gpucache/pipecache/internal/resource"
)

func TestDumpCommandListsStoredHashes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.foz")

	a := archive.New(path, archive.OverWrite)
	require.NoError(t, a.Prepare())
	require.NoError(t, a.WriteEntry(resource.KindSampler, resource.Hash(42), []byte("payload"), 0))
	require.NoError(t, a.Close())

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"dump", "--archive", path, "--kind", "sampler"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "42")
}

// TestDumpCommandDefaultsArchiveFromConfig confirms that omitting --archive
// falls back to the config's archivePath.
func TestDumpCommandDefaultsArchiveFromConfig(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "configured.foz")

	a := archive.New(archivePath, archive.OverWrite)
	require.NoError(t, a.Prepare())
	require.NoError(t, a.WriteEntry(resource.KindSampler, resource.Hash(7), []byte("payload"), 0))
	require.NoError(t, a.Close())

	configPath := filepath.Join(dir, "pipecache.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("archivePath: "+archivePath+"\n"), 0o644))

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", configPath, "dump", "--kind", "sampler"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "7")
}

func TestDumpCommandUnknownKind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.foz")
	a := archive.New(path, archive.OverWrite)
	require.NoError(t, a.Prepare())
	require.NoError(t, a.Close())

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"dump", "--archive", path, "--kind", "nonsense"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
