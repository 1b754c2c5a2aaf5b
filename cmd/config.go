package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"drive-uploader/infrastructure/config"

	"github.com/spf13/cobra"
)

// OutputWriter is where command output goes
type OutputWriter = io.Writer

// DefaultOutput is the default output writer for config commands
var DefaultOutput OutputWriter = os.Stdout

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the configuration",
	Long: `Inspect the effective configuration after defaults, the config file and
environment overrides have been applied.

Examples:
  drive-uploader config show
  DRIVE_UPLOADER_FOLDER_NAME=Reports drive-uploader config show`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}

	return RunConfigShowWithDependencies(cfg, cfgFile, DefaultOutput)
}

// RunConfigShowWithDependencies prints the configuration with injected dependencies
func RunConfigShowWithDependencies(cfg *config.Config, configPath string, out OutputWriter) error {
	source := configPath
	if _, err := os.Stat(configPath); err != nil {
		source = configPath + " (not found, using defaults)"
	}

	authCode := "(not set)"
	if cfg.AuthCode != "" {
		authCode = "(set)"
	}

	fmt.Fprintf(out, "Config file: %s\n\n", source)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tVALUE")
	fmt.Fprintf(w, "paths.artifact_file\t%s\n", cfg.Paths.ArtifactFile)
	fmt.Fprintf(w, "google.credentials_file\t%s\n", cfg.Google.CredentialsFile)
	fmt.Fprintf(w, "google.token_file\t%s\n", cfg.Google.TokenFile)
	fmt.Fprintf(w, "google.folder_name\t%s\n", cfg.Google.FolderName)
	fmt.Fprintf(w, "logging.level\t%s\n", cfg.Logging.Level)
	fmt.Fprintf(w, "logging.format\t%s\n", cfg.Logging.Format)
	fmt.Fprintf(w, "logging.file\t%s\n", cfg.Logging.File)
	fmt.Fprintf(w, "GOOGLE_AUTH_CODE\t%s\n", authCode)

	return w.Flush()
}
