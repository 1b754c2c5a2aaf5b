package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	appdist "drive-uploader/application/distribution"
	"drive-uploader/domain/distribution"
	"drive-uploader/infrastructure/drive"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	uploadFilePath string
	uploadMimeType string
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload an existing file to the Google Drive folder",
	Long: `Upload an existing local file into the configured Google Drive folder
without generating a new one. The folder is created if it does not exist.

By default the configured generated file is uploaded. Use --file to upload
any other file; its MIME type is detected from the content unless
--mime-type is given.

Example:
  drive-uploader upload
  drive-uploader upload --file reports/summary.pdf
  drive-uploader upload --file notes.md --mime-type text/markdown`,
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
	uploadCmd.Flags().StringVar(&uploadFilePath, "file", "", "Path to the file to upload (defaults to the configured generated file)")
	uploadCmd.Flags().StringVar(&uploadMimeType, "mime-type", "", "MIME type of the file (detected when empty)")
}

func runUpload(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}

	deps, err := newDependencies(cfg, os.Stdout)
	if err != nil {
		return err
	}

	path := uploadFilePath
	if path == "" {
		path = cfg.Paths.ArtifactFile
	}

	session, err := deps.manager().Authenticate(cmd.Context(), cfg.AuthCode)
	if err != nil {
		return err
	}

	client, err := drive.NewConnector().Connect(cmd.Context(), session)
	if err != nil {
		return fmt.Errorf("%w: %v", distribution.ErrConnect, err)
	}

	return RunUploadWithDependencies(cmd.Context(), client, deps.fs, cfg.Google.FolderName,
		path, uploadMimeType, deps.log, deps.output)
}

// RunUploadWithDependencies uploads a single file with injected dependencies (for testing)
func RunUploadWithDependencies(
	ctx context.Context,
	storage distribution.RemoteStorage,
	fs afero.Fs,
	folderName string,
	path string,
	mimeType string,
	log *logrus.Entry,
	output io.Writer,
) error {
	svc := appdist.NewUploadService(storage, fs, folderName, log, output)

	result, err := svc.Upload(ctx, distribution.Artifact{
		Name:      filepath.Base(path),
		MimeType:  mimeType,
		LocalPath: path,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(output)
	fmt.Fprintln(output, "Upload complete!")
	fmt.Fprintf(output, "  File:   %s (%s)\n", result.FileName, result.MimeType)
	fmt.Fprintf(output, "  ID:     %s\n", result.FileID)
	fmt.Fprintf(output, "  Folder: %s\n", result.FolderID)
	if result.WebViewLink != "" {
		fmt.Fprintf(output, "  Link:   %s\n", result.WebViewLink)
	}
	return nil
}
