package distribution

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"drive-uploader/domain/distribution"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// UploadService places artifacts into a single named remote folder
type UploadService struct {
	storage    distribution.RemoteStorage
	fs         afero.Fs
	folderName string
	log        *logrus.Entry
	output     io.Writer

	// resolved folder, cached for the lifetime of the service
	folder        *distribution.Folder
	folderCreated bool
}

// NewUploadService creates a new upload service
func NewUploadService(storage distribution.RemoteStorage, fs afero.Fs, folderName string, log *logrus.Entry, output io.Writer) *UploadService {
	if output == nil {
		output = io.Discard
	}
	return &UploadService{
		storage:    storage,
		fs:         fs,
		folderName: folderName,
		log:        log,
		output:     output,
	}
}

// ResolveFolder finds the destination folder by name, creating it if none exists.
// When several folders share the name, the first one returned by the service is used.
func (s *UploadService) ResolveFolder(ctx context.Context) (*distribution.Folder, error) {
	if s.folder != nil {
		return s.folder, nil
	}

	folders, err := s.storage.ListFolders(ctx, s.folderName)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", distribution.ErrFolderLookup, s.folderName, err)
	}

	if len(folders) > 0 {
		if len(folders) > 1 {
			s.log.WithFields(logrus.Fields{
				"folder":  s.folderName,
				"matches": len(folders),
				"chosen":  folders[0].ID,
			}).Warn("multiple folders share the destination name; using the first returned")
		}
		folder := folders[0]
		s.folder = &folder
		fmt.Fprintf(s.output, "      Using folder %q (%s)\n", folder.Name, folder.ID)
		return s.folder, nil
	}

	created, err := s.storage.CreateFolder(ctx, s.folderName)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", distribution.ErrFolderCreate, s.folderName, err)
	}
	s.folder = created
	s.folderCreated = true
	fmt.Fprintf(s.output, "      Created folder %q (%s)\n", created.Name, created.ID)
	s.log.WithField("folder_id", created.ID).Info("created destination folder")

	return s.folder, nil
}

// UploadArtifact uploads the file at localPath under its base name
func (s *UploadService) UploadArtifact(ctx context.Context, localPath string) (*distribution.UploadResult, error) {
	return s.Upload(ctx, distribution.Artifact{
		Name:      filepath.Base(localPath),
		LocalPath: localPath,
	})
}

// Upload uploads a into the destination folder and returns the remote file ID
func (s *UploadService) Upload(ctx context.Context, a distribution.Artifact) (*distribution.UploadResult, error) {
	f, err := s.fs.Open(a.LocalPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", distribution.ErrArtifactMissing, a.LocalPath, err)
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil && info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", distribution.ErrArtifactMissing, a.LocalPath)
	}

	mimeType := a.MimeType
	if mimeType == "" {
		mimeType, err = detectMimeType(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", distribution.ErrArtifactMissing, a.LocalPath, err)
		}
	}

	name := a.Name
	if name == "" {
		name = filepath.Base(a.LocalPath)
	}

	folder, err := s.ResolveFolder(ctx)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"file":      name,
		"mime_type": mimeType,
		"folder_id": folder.ID,
	}).Debug("uploading artifact")

	remote, err := s.storage.CreateFile(ctx,
		distribution.FileMetadata{Name: name, ParentID: folder.ID, MimeType: mimeType},
		distribution.Media{MimeType: mimeType, Content: f},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", distribution.ErrUpload, name, err)
	}

	return &distribution.UploadResult{
		FileID:        remote.ID,
		FileName:      name,
		FolderID:      folder.ID,
		FolderCreated: s.folderCreated,
		MimeType:      mimeType,
		WebViewLink:   remote.WebViewLink,
	}, nil
}

// detectMimeType sniffs the content type and rewinds f
func detectMimeType(f afero.File) (string, error) {
	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return "", err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return strings.TrimSpace(strings.SplitN(mtype.String(), ";", 2)[0]), nil
}
