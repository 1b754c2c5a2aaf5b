package cmd

import (
	"io"
	"os"

	appartifact "drive-uploader/application/artifact"
	appauth "drive-uploader/application/auth"
	appdist "drive-uploader/application/distribution"
	"drive-uploader/application/workflow"
	"drive-uploader/domain/distribution"
	"drive-uploader/infrastructure/config"
	"drive-uploader/infrastructure/drive"
	"drive-uploader/infrastructure/filesystem"
	"drive-uploader/infrastructure/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// dependencies are the production collaborators shared by the commands
type dependencies struct {
	cfg    *config.Config
	fs     afero.Fs
	log    *logrus.Entry
	output io.Writer
}

func newDependencies(cfg *config.Config, output io.Writer) (*dependencies, error) {
	logger, err := logging.New(cfg.Logging, os.Stderr, verbose)
	if err != nil {
		return nil, err
	}
	return &dependencies{
		cfg:    cfg,
		fs:     filesystem.New(),
		log:    logging.WithRun(logger),
		output: output,
	}, nil
}

func (d *dependencies) producer() *appartifact.Producer {
	return appartifact.NewProducer(d.fs, d.cfg.Paths.ArtifactFile, d.output)
}

func (d *dependencies) manager() *appauth.Manager {
	return appauth.NewManager(d.fs, drive.NewOAuthExchanger(nil), appauth.Paths{
		CredentialsFile: d.cfg.Google.CredentialsFile,
		TokenFile:       d.cfg.Google.TokenFile,
	}, d.log, d.output)
}

func (d *dependencies) uploaderFactory() workflow.UploaderFactory {
	return func(storage distribution.RemoteStorage) workflow.Uploader {
		return appdist.NewUploadService(storage, d.fs, d.cfg.Google.FolderName, d.log, d.output)
	}
}
