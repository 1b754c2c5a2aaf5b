package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v9"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the configuration file is looked up when --config is not given
const DefaultPath = "config/config.yaml"

// DefaultFolderName is the destination folder used when none is configured
const DefaultFolderName = "Uploaded Via Git Actions"

// Config represents the complete application configuration
type Config struct {
	Paths   PathsConfig   `yaml:"paths"`
	Google  GoogleConfig  `yaml:"google"`
	Logging LoggingConfig `yaml:"logging"`

	// AuthCode is the out-of-band authorization code. It is only ever read
	// from the environment and never written to the config file.
	AuthCode string `yaml:"-" env:"GOOGLE_AUTH_CODE"`
}

// PathsConfig contains local file paths
type PathsConfig struct {
	ArtifactFile string `yaml:"artifact_file" env:"DRIVE_UPLOADER_ARTIFACT_FILE"`
}

// GoogleConfig contains Google API settings
type GoogleConfig struct {
	CredentialsFile string `yaml:"credentials_file" env:"DRIVE_UPLOADER_CREDENTIALS_FILE"`
	TokenFile       string `yaml:"token_file" env:"DRIVE_UPLOADER_TOKEN_FILE"`
	FolderName      string `yaml:"folder_name" env:"DRIVE_UPLOADER_FOLDER_NAME"`
}

// LoggingConfig contains structured logging settings
type LoggingConfig struct {
	Level      string `yaml:"level" env:"DRIVE_UPLOADER_LOG_LEVEL"`
	Format     string `yaml:"format" env:"DRIVE_UPLOADER_LOG_FORMAT"`
	File       string `yaml:"file" env:"DRIVE_UPLOADER_LOG_FILE"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			ArtifactFile: "generated-file.txt",
		},
		Google: GoogleConfig{
			CredentialsFile: "credentials.json",
			TokenFile:       "token.json",
			FolderName:      DefaultFolderName,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Load reads the configuration from the specified YAML file and applies
// environment overrides from the process environment. A missing file is not
// an error; defaults are used instead.
func Load(path string) (*Config, error) {
	return LoadWithEnv(path, nil)
}

// LoadWithEnv is Load with an explicit environment. A nil environ means the process environment.
func LoadWithEnv(path string, environ map[string]string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// defaults only
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := applyEnv(cfg, environ); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, environ map[string]string) error {
	var err error
	if environ == nil {
		err = env.Parse(cfg)
	} else {
		err = env.ParseWithOptions(cfg, env.Options{Environment: environ})
	}
	if err != nil {
		return fmt.Errorf("failed to read environment overrides: %w", err)
	}
	cfg.AuthCode = strings.TrimSpace(cfg.AuthCode)
	return nil
}

// Validate checks that all required settings have values
func (c *Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.Paths.ArtifactFile) == "" {
		missing = append(missing, "paths.artifact_file")
	}
	if strings.TrimSpace(c.Google.CredentialsFile) == "" {
		missing = append(missing, "google.credentials_file")
	}
	if strings.TrimSpace(c.Google.TokenFile) == "" {
		missing = append(missing, "google.token_file")
	}
	if strings.TrimSpace(c.Google.FolderName) == "" {
		missing = append(missing, "google.folder_name")
	}
	if len(missing) > 0 {
		return fmt.Errorf("invalid configuration: missing %s", strings.Join(missing, ", "))
	}
	return nil
}

// Save writes the configuration to the specified YAML file
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
