package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordDemoCommandWritesSerializedDocument(t *testing.T) {
	out := filepath.Join(t.TempDir(), "demo.json")

	cmd := NewRootCommand()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"record-demo", "--output", out})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, stdout.String(), "recorded")

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.NotEmpty(t, doc["samplers"])
	assert.NotEmpty(t, doc["shaderModules"])
	assert.NotEmpty(t, doc["descriptorSetLayouts"])
}
