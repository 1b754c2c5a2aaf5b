package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Only write the timestamped text file",
	Long: `Write the text file with a greeting and the current UTC timestamp to the
configured artifact path, replacing any existing file.

Example:
  drive-uploader generate`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}

	deps, err := newDependencies(cfg, os.Stdout)
	if err != nil {
		return err
	}

	_, err = deps.producer().Generate()
	return err
}
