package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"drive-uploader/application/workflow"
	"drive-uploader/infrastructure/drive"
	"drive-uploader/infrastructure/memory"

	"github.com/spf13/cobra"
)

var runDryRun bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate the file and upload it to the Drive folder",
	Long: `Run the complete workflow:
1. Generate the timestamped text file
2. Authenticate (stored token, or exchange GOOGLE_AUTH_CODE)
3. Connect to Google Drive
4. Find or create the destination folder and upload the file

Every step must succeed before the next one starts.

With --dry-run the file is generated and "uploaded" to an in-memory store;
no credentials are read and nothing is sent to Google.

Example:
  drive-uploader run
  GOOGLE_AUTH_CODE=4/0Ab... drive-uploader run --config ci/config.yaml`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "upload to an in-memory store instead of Google Drive")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}

	deps, err := newDependencies(cfg, os.Stdout)
	if err != nil {
		return err
	}

	var service *workflow.Service
	if runDryRun {
		fmt.Fprintln(deps.output, "Dry run: nothing will be sent to Google Drive")
		service = workflow.NewService(deps.producer(), nil, &memory.Connector{Storage: memory.NewStorage()},
			deps.uploaderFactory(), deps.log, deps.output)
	} else {
		service = workflow.NewService(deps.producer(), deps.manager(), drive.NewConnector(),
			deps.uploaderFactory(), deps.log, deps.output)
	}

	return RunWorkflowWithService(cmd.Context(), service, workflow.Input{AuthCode: cfg.AuthCode}, deps.output)
}

// RunWorkflowWithService runs the workflow with an injected service (for testing)
func RunWorkflowWithService(ctx context.Context, service *workflow.Service, input workflow.Input, output io.Writer) error {
	result, err := service.Run(ctx, input)
	if err != nil {
		return err
	}

	if result.Upload.FolderCreated {
		fmt.Fprintf(output, "Created folder %s\n", result.Upload.FolderID)
	}
	fmt.Fprintf(output, "Upload complete!\n")
	return nil
}
