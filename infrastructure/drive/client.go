package drive

import (
	"context"
	"fmt"
	"io"
	"strings"

	"drive-uploader/domain/auth"
	"drive-uploader/domain/distribution"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
)

// DriveService defines the interface for Google Drive API operations
// This allows mocking the Google Drive API in tests
type DriveService interface {
	ListFiles(ctx context.Context, query string, fields string, orderBy string) ([]*drive.File, error)
	CreateFile(ctx context.Context, file *drive.File, media io.Reader, mimeType string, fields string) (*drive.File, error)
}

// GoogleDriveService is the production implementation using the Google Drive API
type GoogleDriveService struct {
	service *drive.Service
}

// NewGoogleDriveService wraps an existing Drive API service
func NewGoogleDriveService(srv *drive.Service) *GoogleDriveService {
	return &GoogleDriveService{service: srv}
}

// ListFiles lists files matching the query
func (s *GoogleDriveService) ListFiles(ctx context.Context, query string, fields string, orderBy string) ([]*drive.File, error) {
	call := s.service.Files.List().
		Q(query).
		Spaces("drive").
		Fields(googleapi.Field("files(" + fields + ")")).
		Context(ctx)
	if orderBy != "" {
		call = call.OrderBy(orderBy)
	}
	r, err := call.Do()
	if err != nil {
		return nil, err
	}
	return r.Files, nil
}

// CreateFile creates a file, uploading media in a single request when given
func (s *GoogleDriveService) CreateFile(ctx context.Context, file *drive.File, media io.Reader, mimeType string, fields string) (*drive.File, error) {
	call := s.service.Files.Create(file).
		Fields(googleapi.Field(fields)).
		Context(ctx)
	if media != nil {
		call = call.Media(media, googleapi.ContentType(mimeType), googleapi.ChunkSize(0))
	}
	return call.Do()
}

// Client implements distribution.RemoteStorage using Google Drive API
type Client struct {
	driveService DriveService
}

// ClientOption is a functional option for configuring Client
type ClientOption func(*Client)

// WithDriveService sets a custom drive service (for testing)
func WithDriveService(svc DriveService) ClientOption {
	return func(c *Client) {
		c.driveService = svc
	}
}

// NewClient creates a new Google Drive client authorized by session.
// If no drive service option is provided, a real one is built from the session's token.
func NewClient(ctx context.Context, session *auth.Session, opts ...ClientOption) (*Client, error) {
	c := &Client{}

	for _, opt := range opts {
		opt(c)
	}

	if c.driveService == nil {
		if session == nil {
			return nil, fmt.Errorf("an authorized session is required")
		}
		svc, err := newOAuthDriveService(ctx, session)
		if err != nil {
			return nil, err
		}
		c.driveService = svc
	}

	return c, nil
}

const fileFields = "id, name, mimeType, size, webViewLink"

// ListFolders implements distribution.RemoteStorage
func (c *Client) ListFolders(ctx context.Context, name string) ([]distribution.Folder, error) {
	files, err := c.driveService.ListFiles(ctx, folderQuery(name), "id, name", "")
	if err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}

	result := make([]distribution.Folder, 0, len(files))
	for _, f := range files {
		result = append(result, distribution.Folder{ID: f.Id, Name: f.Name})
	}
	return result, nil
}

// CreateFolder implements distribution.RemoteStorage
func (c *Client) CreateFolder(ctx context.Context, name string) (*distribution.Folder, error) {
	f, err := c.driveService.CreateFile(ctx, &drive.File{
		Name:     name,
		MimeType: distribution.MimeTypeFolder,
	}, nil, "", "id, name")
	if err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}
	return &distribution.Folder{ID: f.Id, Name: f.Name}, nil
}

// CreateFile implements distribution.RemoteStorage
func (c *Client) CreateFile(ctx context.Context, meta distribution.FileMetadata, media distribution.Media) (*distribution.RemoteFile, error) {
	file := &drive.File{Name: meta.Name, MimeType: meta.MimeType}
	if meta.ParentID != "" {
		file.Parents = []string{meta.ParentID}
	}

	f, err := c.driveService.CreateFile(ctx, file, media.Content, media.MimeType, fileFields)
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	return &distribution.RemoteFile{
		ID:          f.Id,
		Name:        f.Name,
		MimeType:    f.MimeType,
		Size:        f.Size,
		WebViewLink: f.WebViewLink,
	}, nil
}

var queryEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// folderQuery builds a Drive search query for non-trashed folders named name
func folderQuery(name string) string {
	return fmt.Sprintf("mimeType = '%s' and name = '%s' and trashed = false",
		distribution.MimeTypeFolder, queryEscaper.Replace(name))
}

// Ensure Client implements distribution.RemoteStorage
var _ distribution.RemoteStorage = (*Client)(nil)
