package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadWithEnv_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadWithEnv(filepath.Join(t.TempDir(), "nope.yaml"), map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "Uploaded Via Git Actions", cfg.Google.FolderName)
}

func TestLoadWithEnv_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
paths:
  artifact_file: out/report.txt
google:
  credentials_file: secrets/client.json
  folder_name: Nightly Builds
logging:
  level: debug
`)

	cfg, err := LoadWithEnv(path, map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "out/report.txt", cfg.Paths.ArtifactFile)
	assert.Equal(t, "secrets/client.json", cfg.Google.CredentialsFile)
	assert.Equal(t, "token.json", cfg.Google.TokenFile, "unset keys keep their default")
	assert.Equal(t, "Nightly Builds", cfg.Google.FolderName)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadWithEnv_EnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "google:\n  token_file: from-file.json\n")

	cfg, err := LoadWithEnv(path, map[string]string{
		"DRIVE_UPLOADER_TOKEN_FILE":  "/tmp/from-env.json",
		"DRIVE_UPLOADER_FOLDER_NAME": "CI Output",
		"GOOGLE_AUTH_CODE":           "  AUTHCODE123\n",
	})
	require.NoError(t, err)

	assert.Equal(t, "/tmp/from-env.json", cfg.Google.TokenFile)
	assert.Equal(t, "CI Output", cfg.Google.FolderName)
	assert.Equal(t, "AUTHCODE123", cfg.AuthCode)
}

func TestLoadWithEnv_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "google: [unterminated")

	_, err := LoadWithEnv(path, map[string]string{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadWithEnv_EmptyFolderNameRejected(t *testing.T) {
	path := writeConfig(t, "google:\n  folder_name: \"\"\n")

	_, err := LoadWithEnv(path, map[string]string{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "google.folder_name")
}

func TestSave_DoesNotPersistAuthCode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := Default()
	cfg.AuthCode = "secret-code"

	require.NoError(t, Save(cfg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret-code")

	loaded, err := LoadWithEnv(path, map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, cfg.Google, loaded.Google)
	assert.Empty(t, loaded.AuthCode)
}
