package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"drive-uploader/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunConfigShowWithDependencies(t *testing.T) {
	cfg := config.Default()
	cfg.Google.FolderName = "Reports"
	cfg.AuthCode = "4/secret-code"
	var out bytes.Buffer

	err := RunConfigShowWithDependencies(cfg, filepath.Join(t.TempDir(), "missing.yaml"), &out)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "not found, using defaults")
	assert.Regexp(t, `google\.folder_name\s+Reports`, text)
	assert.Regexp(t, `google\.token_file\s+token\.json`, text)
	assert.Regexp(t, `GOOGLE_AUTH_CODE\s+\(set\)`, text)
	assert.NotContains(t, text, "4/secret-code")
}

func TestRunConfigShowWithDependencies_NoAuthCode(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, RunConfigShowWithDependencies(config.Default(), "config.yaml", &out))
	assert.Regexp(t, `GOOGLE_AUTH_CODE\s+\(not set\)`, out.String())
}
