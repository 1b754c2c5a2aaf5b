package workflow

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"drive-uploader/domain/auth"
	"drive-uploader/domain/distribution"

	"github.com/sirupsen/logrus"
)

// Producer generates the artifact to upload
type Producer interface {
	Generate() (*distribution.Artifact, error)
}

// Authenticator produces an authorized session
type Authenticator interface {
	Authenticate(ctx context.Context, authCode string) (*auth.Session, error)
}

// Connector turns a session into a remote storage client
type Connector interface {
	Connect(ctx context.Context, session *auth.Session) (distribution.RemoteStorage, error)
}

// Uploader places an artifact in the destination folder
type Uploader interface {
	Upload(ctx context.Context, a distribution.Artifact) (*distribution.UploadResult, error)
}

// UploaderFactory builds an Uploader on top of a connected storage
type UploaderFactory func(storage distribution.RemoteStorage) Uploader

// Service runs generate, authenticate, connect and upload in order,
// stopping at the first failure
type Service struct {
	producer      Producer
	authenticator Authenticator
	connector     Connector
	newUploader   UploaderFactory
	log           *logrus.Entry
	output        io.Writer
}

// NewService creates a new workflow service. A nil authenticator skips the
// authentication step and connects with a nil session (used for dry runs).
func NewService(
	producer Producer,
	authenticator Authenticator,
	connector Connector,
	newUploader UploaderFactory,
	log *logrus.Entry,
	output io.Writer,
) *Service {
	if output == nil {
		output = io.Discard
	}
	return &Service{
		producer:      producer,
		authenticator: authenticator,
		connector:     connector,
		newUploader:   newUploader,
		log:           log,
		output:        output,
	}
}

// Input contains the parameters of one run
type Input struct {
	AuthCode     string // Out-of-band authorization code, used only without a stored token
	SkipGenerate bool   // Upload ArtifactPath instead of generating a new artifact
	ArtifactPath string // File to upload when SkipGenerate is set
	MimeType     string // Optional MIME type for ArtifactPath; detected when empty
}

// Result contains the results of a successful run
type Result struct {
	Artifact    distribution.Artifact
	TokenOrigin auth.TokenOrigin
	Upload      *distribution.UploadResult
	Duration    time.Duration
}

// state is threaded through the steps of a run
type state struct {
	input    Input
	artifact *distribution.Artifact
	session  *auth.Session
	storage  distribution.RemoteStorage
	upload   *distribution.UploadResult
}

type step struct {
	name  string
	title string
	run   func(ctx context.Context, st *state) error
}

// Run executes the workflow
func (s *Service) Run(ctx context.Context, input Input) (*Result, error) {
	start := time.Now()
	st := &state{input: input}

	steps := s.steps(input)
	for i, stp := range steps {
		fmt.Fprintf(s.output, "[%d/%d] %s...\n", i+1, len(steps), stp.title)
		log := s.log.WithField("step", stp.name)
		log.Debug("step started")

		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%s: %w", stp.name, err)
		}
		if err := stp.run(ctx, st); err != nil {
			log.WithError(err).Error("step failed")
			return nil, fmt.Errorf("%s: %w", stp.name, err)
		}
		log.Debug("step finished")
	}

	result := &Result{
		Artifact: *st.artifact,
		Upload:   st.upload,
		Duration: time.Since(start),
	}
	if st.session != nil {
		result.TokenOrigin = st.session.Origin
	}

	fmt.Fprintf(s.output, "\nUploaded %s (file ID %s) in %s\n",
		result.Upload.FileName, result.Upload.FileID, result.Duration.Round(time.Millisecond))
	s.log.WithFields(logrus.Fields{
		"file_id":   result.Upload.FileID,
		"folder_id": result.Upload.FolderID,
		"duration":  result.Duration,
	}).Info("upload complete")

	return result, nil
}

func (s *Service) steps(input Input) []step {
	var steps []step
	if input.SkipGenerate {
		steps = append(steps, step{name: "select", title: "Selecting file", run: s.selectArtifact})
	} else {
		steps = append(steps, step{name: "generate", title: "Generating file", run: s.generate})
	}
	if s.authenticator != nil {
		steps = append(steps, step{name: "authenticate", title: "Authenticating", run: s.authenticate})
	}
	return append(steps,
		step{name: "connect", title: "Connecting to Google Drive", run: s.connect},
		step{name: "upload", title: "Uploading", run: s.upload},
	)
}

func (s *Service) generate(ctx context.Context, st *state) error {
	a, err := s.producer.Generate()
	if err != nil {
		return err
	}
	st.artifact = a
	return nil
}

func (s *Service) selectArtifact(ctx context.Context, st *state) error {
	if st.input.ArtifactPath == "" {
		return fmt.Errorf("%w: no file given", distribution.ErrArtifactMissing)
	}
	st.artifact = &distribution.Artifact{
		Name:      filepath.Base(st.input.ArtifactPath),
		MimeType:  st.input.MimeType,
		LocalPath: st.input.ArtifactPath,
	}
	fmt.Fprintf(s.output, "      Using %s\n", st.input.ArtifactPath)
	return nil
}

func (s *Service) authenticate(ctx context.Context, st *state) error {
	session, err := s.authenticator.Authenticate(ctx, st.input.AuthCode)
	if err != nil {
		return err
	}
	st.session = session
	fmt.Fprintf(s.output, "      Authorized (token from %s)\n", session.Origin)
	return nil
}

func (s *Service) connect(ctx context.Context, st *state) error {
	storage, err := s.connector.Connect(ctx, st.session)
	if err != nil {
		return fmt.Errorf("%w: %v", distribution.ErrConnect, err)
	}
	st.storage = storage
	return nil
}

func (s *Service) upload(ctx context.Context, st *state) error {
	result, err := s.newUploader(st.storage).Upload(ctx, *st.artifact)
	if err != nil {
		return err
	}
	st.upload = result
	fmt.Fprintf(s.output, "      File ID: %s\n", result.FileID)
	if result.WebViewLink != "" {
		fmt.Fprintf(s.output, "      Link: %s\n", result.WebViewLink)
	}
	return nil
}
