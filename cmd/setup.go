package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"drive-uploader/infrastructure/config"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

// Prompter interface for interactive prompts (allows mocking in tests)
type Prompter interface {
	Input(message string, defaultValue string) (string, error)
	Confirm(message string, defaultValue bool) (bool, error)
}

// SurveyPrompter implements Prompter using the survey library
type SurveyPrompter struct{}

func (p *SurveyPrompter) Input(message string, defaultValue string) (string, error) {
	result := ""
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

func (p *SurveyPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	result := defaultValue
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}
	return result, nil
}

// DefaultPrompter is the prompter used in production
var DefaultPrompter Prompter = &SurveyPrompter{}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create configuration file interactively",
	Long: `Prompts for configuration values and creates config.yaml.

This command guides you through setting the generated file path, the
Google credentials and token files, the destination folder name and
logging options. Press enter to accept the default shown for each value.`,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath
	}
	return RunSetupWithPrompter(DefaultPrompter, path, os.Stdout)
}

// RunSetupWithPrompter runs the setup with a given prompter (for testing)
func RunSetupWithPrompter(prompter Prompter, configPath string, out io.Writer) error {
	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		overwrite, err := prompter.Confirm("config.yaml already exists. Overwrite?", false)
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		if !overwrite {
			fmt.Fprintln(out, "Setup cancelled.")
			return nil
		}
	}

	fmt.Fprintln(out, "Welcome to drive-uploader setup!")
	fmt.Fprintln(out)

	cfg := config.Default()

	if err := promptPaths(prompter, cfg); err != nil {
		return err
	}

	if err := promptGoogle(prompter, cfg); err != nil {
		return err
	}

	if err := promptLogging(prompter, cfg); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := config.Save(cfg, configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Configuration saved to %s\n", configPath)
	return nil
}

func promptPaths(prompter Prompter, cfg *config.Config) error {
	artifact, err := prompter.Input("Path of the generated file:", cfg.Paths.ArtifactFile)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Paths.ArtifactFile = strings.TrimSpace(artifact)
	return nil
}

func promptGoogle(prompter Prompter, cfg *config.Config) error {
	creds, err := prompter.Input("Google OAuth client credentials file:", cfg.Google.CredentialsFile)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Google.CredentialsFile = strings.TrimSpace(creds)

	token, err := prompter.Input("Token file (written after the first authorization):", cfg.Google.TokenFile)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Google.TokenFile = strings.TrimSpace(token)

	folder, err := prompter.Input("Google Drive folder name:", cfg.Google.FolderName)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Google.FolderName = strings.TrimSpace(folder)
	return nil
}

func promptLogging(prompter Prompter, cfg *config.Config) error {
	level, err := prompter.Input("Log level (debug, info, warn, error):", cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Logging.Level = strings.TrimSpace(level)

	useFile, err := prompter.Confirm("Also write logs to a rotated file?", false)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if !useFile {
		return nil
	}

	file, err := prompter.Input("Log file path:", "logs/drive-uploader.log")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Logging.File = strings.TrimSpace(file)
	return nil
}
