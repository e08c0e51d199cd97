package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gpucache/pipecache/internal/recorder"
	"github.com/gpucache/pipecache/internal/resource"
)

func TestReplayCommandReportsAcceptance(t *testing.T) {
	r := recorder.New()
	require.NoError(t, r.RecordSampler(1, resource.Sampler{MinLod: 1}))
	data, err := r.Serialize()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "capture.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"replay", "--input", path})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "accepted")
	assert.Contains(t, out.String(), "1 accepted, 0 rejected")
}
