package cmd

import (
	"fmt"
	"os"

	"drive-uploader/application/workflow"
	"drive-uploader/infrastructure/config"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
	cfg     *config.Config
	cfgErr  error
)

var rootCmd = &cobra.Command{
	Use:   "drive-uploader",
	Short: "Generate a timestamped file and upload it to Google Drive",
	Long: `drive-uploader generates a small text file with a timestamp, authorizes
against Google Drive with OAuth 2.0 and uploads the file into a named folder,
creating the folder on first use.

On the first run there is no stored token. Obtain an authorization code with
"drive-uploader auth url" and pass it in the GOOGLE_AUTH_CODE environment
variable; the exchanged token is written to the token file and reused later.

Exit codes identify the failure kind:
  2 credentials file   3 corrupt token     4 missing auth code
  5 code exchange      6 token not stored  7 folder lookup
  8 folder creation    9 upload           10 local file
 11 drive connection    1 anything else

Example:
  GOOGLE_AUTH_CODE=4/0Ab... drive-uploader run`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(workflow.ExitCode(err))
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./"+config.DefaultPath+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func initConfig() {
	if cfgFile == "" {
		cfgFile = config.DefaultPath
	}

	// A missing file yields defaults; only unreadable or invalid config is an error
	cfg, cfgErr = config.Load(cfgFile)
}

// GetConfig returns the loaded configuration
func GetConfig() (*config.Config, error) {
	if cfgErr != nil {
		return nil, fmt.Errorf("configuration not loaded from %s: %w", cfgFile, cfgErr)
	}
	return cfg, nil
}
