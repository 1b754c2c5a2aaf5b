package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"drive-uploader/domain/distribution"
	"drive-uploader/infrastructure/logging"
	"drive-uploader/infrastructure/memory"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunUploadWithDependencies(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		content  string
		mimeType string
		wantMime string
	}{
		{
			name:     "detected text",
			path:     "generated-file.txt",
			content:  "Hello\nFile created at: 2024-10-03T12:34:56.789Z",
			wantMime: "text/plain",
		},
		{
			name:     "explicit mime type",
			path:     "notes.md",
			content:  "# Notes",
			mimeType: "text/markdown",
			wantMime: "text/markdown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, tt.path, []byte(tt.content), 0644))
			remote := memory.NewStorage()
			var out bytes.Buffer

			err := RunUploadWithDependencies(context.Background(), remote, fs, "Uploaded Via Git Actions",
				tt.path, tt.mimeType, logging.Discard(), &out)
			require.NoError(t, err)

			files := remote.Files()
			require.Len(t, files, 1)
			assert.Equal(t, tt.path, files[0].Name)
			assert.Equal(t, tt.wantMime, files[0].MimeType)
			assert.Equal(t, tt.content, string(files[0].Content))

			folders := remote.Folders()
			require.Len(t, folders, 1)
			assert.Equal(t, folders[0].ID, files[0].ParentID)
			assert.Contains(t, out.String(), "Upload complete!")
			assert.Contains(t, out.String(), files[0].ID)
		})
	}
}

func TestRunUploadWithDependencies_MissingFile(t *testing.T) {
	remote := memory.NewStorage()

	err := RunUploadWithDependencies(context.Background(), remote, afero.NewMemMapFs(), "Uploaded Via Git Actions",
		"missing.txt", "", logging.Discard(), &bytes.Buffer{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, distribution.ErrArtifactMissing))
	assert.Empty(t, remote.Folders())
}
