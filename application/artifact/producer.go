package artifact

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"drive-uploader/domain/artifact"
	"drive-uploader/domain/distribution"
	"drive-uploader/infrastructure/filesystem"

	"github.com/spf13/afero"
)

// Producer writes the timestamped text artifact
type Producer struct {
	fs     afero.Fs
	path   string
	now    func() time.Time
	output io.Writer
}

// ProducerOption is a functional option for configuring Producer
type ProducerOption func(*Producer)

// WithClock sets the time source (for testing)
func WithClock(now func() time.Time) ProducerOption {
	return func(p *Producer) {
		p.now = now
	}
}

// NewProducer creates a producer that writes to path
func NewProducer(fs afero.Fs, path string, output io.Writer, opts ...ProducerOption) *Producer {
	if output == nil {
		output = io.Discard
	}
	p := &Producer{
		fs:     fs,
		path:   path,
		now:    time.Now,
		output: output,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Generate writes the artifact, replacing any previous one, and describes it for upload
func (p *Producer) Generate() (*distribution.Artifact, error) {
	createdAt := p.now()
	content := artifact.Content(createdAt)

	if err := filesystem.WriteFile(p.fs, p.path, []byte(content), 0644); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", distribution.ErrArtifactWrite, p.path, err)
	}

	fmt.Fprintf(p.output, "      Created %s, timestamp %s\n", p.path, artifact.FormatTimestamp(createdAt))

	return &distribution.Artifact{
		Name:      filepath.Base(p.path),
		MimeType:  distribution.MimeTypeText,
		LocalPath: p.path,
	}, nil
}
