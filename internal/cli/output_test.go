package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetExitCodeFromExitError(t *testing.T) {
	err := WrapExitError(ExitCommandError, "archive not found", errors.New("stat: no such file"))
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "archive not found")
	assert.Contains(t, err.Error(), "no such file")
}

func TestGetExitCodeDefaultsToFailure(t *testing.T) {
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain error")))
}

func TestOutputFormatterSuccessText(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "text", Writer: &buf}
	require := assert.New(t)
	require.NoError(f.Success("merged ok"))
	require.Contains(buf.String(), "merged ok")
}

func TestOutputFormatterSuccessJSON(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &buf}
	assert.NoError(t, f.Success(map[string]string{"dest": "out.foz"}))
	assert.Contains(t, buf.String(), `"status": "ok"`)
	assert.Contains(t, buf.String(), `"dest": "out.foz"`)
}
