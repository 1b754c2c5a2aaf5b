package artifact

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"drive-uploader/domain/artifact"
	"drive-uploader/domain/distribution"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2024, 10, 3, 12, 34, 56, 789000000, time.UTC)

func fixedClock() time.Time { return fixedTime }

func TestGenerate_WritesContent(t *testing.T) {
	fs := afero.NewMemMapFs()
	var out bytes.Buffer
	p := NewProducer(fs, "out/generated-file.txt", &out, WithClock(fixedClock))

	a, err := p.Generate()
	require.NoError(t, err)

	assert.Equal(t, "generated-file.txt", a.Name)
	assert.Equal(t, distribution.MimeTypeText, a.MimeType)
	assert.Equal(t, "out/generated-file.txt", a.LocalPath)

	data, err := afero.ReadFile(fs, "out/generated-file.txt")
	require.NoError(t, err)
	assert.Equal(t, artifact.Content(fixedTime), string(data))
	assert.Contains(t, out.String(), "2024-10-03T12:34:56.789Z")
}

func TestGenerate_Overwrites(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "generated-file.txt", []byte("an older and much longer body than the new one will be, surely"), 0644))

	_, err := NewProducer(fs, "generated-file.txt", nil, WithClock(fixedClock)).Generate()
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, "generated-file.txt")
	require.NoError(t, err)
	assert.Equal(t, artifact.Content(fixedTime), string(data))
}

func TestGenerate_UnwritablePath(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())

	a, err := NewProducer(fs, "generated-file.txt", nil).Generate()

	require.Error(t, err)
	assert.Nil(t, a)
	assert.True(t, errors.Is(err, distribution.ErrArtifactWrite))
}
