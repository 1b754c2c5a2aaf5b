package cmd

import (
	"bytes"
	"context"
	"testing"

	appartifact "drive-uploader/application/artifact"
	appdist "drive-uploader/application/distribution"
	"drive-uploader/application/workflow"
	"drive-uploader/domain/distribution"
	"drive-uploader/infrastructure/logging"
	"drive-uploader/infrastructure/memory"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWorkflowWithService_DryRun(t *testing.T) {
	fs := afero.NewMemMapFs()
	remote := memory.NewStorage()
	var out bytes.Buffer
	log := logging.Discard()

	service := workflow.NewService(
		appartifact.NewProducer(fs, "generated-file.txt", &out),
		nil,
		&memory.Connector{Storage: remote},
		func(storage distribution.RemoteStorage) workflow.Uploader {
			return appdist.NewUploadService(storage, fs, "Uploaded Via Git Actions", log, &out)
		},
		log,
		&out,
	)

	err := RunWorkflowWithService(context.Background(), service, workflow.Input{}, &out)
	require.NoError(t, err)

	files := remote.Files()
	require.Len(t, files, 1)
	assert.Equal(t, "generated-file.txt", files[0].Name)
	assert.Contains(t, out.String(), "Created folder "+files[0].ParentID)
	assert.Contains(t, out.String(), "Upload complete!")
}
