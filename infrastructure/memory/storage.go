package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"drive-uploader/domain/auth"
	"drive-uploader/domain/distribution"
)

// Ensure Storage implements the interface.
var _ distribution.RemoteStorage = (*Storage)(nil)

// Storage is an in-memory implementation of distribution.RemoteStorage.
// It backs --dry-run and tests.
type Storage struct {
	mu      sync.RWMutex
	folders []distribution.Folder
	files   []StoredFile
	nextID  int
}

// StoredFile is a file uploaded to Storage, including its content
type StoredFile struct {
	distribution.RemoteFile
	ParentID string
	Content  []byte
}

// NewStorage creates an empty in-memory storage
func NewStorage() *Storage {
	return &Storage{nextID: 1}
}

func (s *Storage) newID(prefix string) string {
	id := fmt.Sprintf("%s-%d", prefix, s.nextID)
	s.nextID++
	return id
}

// ListFolders returns folders named name in creation order
func (s *Storage) ListFolders(ctx context.Context, name string) ([]distribution.Folder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []distribution.Folder
	for _, f := range s.folders {
		if f.Name == name {
			result = append(result, f)
		}
	}
	return result, nil
}

// CreateFolder adds a folder. Duplicate names are allowed, as in Drive.
func (s *Storage) CreateFolder(ctx context.Context, name string) (*distribution.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	folder := distribution.Folder{ID: s.newID("folder"), Name: name}
	s.folders = append(s.folders, folder)
	return &folder, nil
}

// CreateFile stores the uploaded content
func (s *Storage) CreateFile(ctx context.Context, meta distribution.FileMetadata, media distribution.Media) (*distribution.RemoteFile, error) {
	var buf bytes.Buffer
	if media.Content != nil {
		if _, err := io.Copy(&buf, media.Content); err != nil {
			return nil, fmt.Errorf("read media: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if meta.ParentID != "" && !s.hasFolder(meta.ParentID) {
		return nil, fmt.Errorf("parent folder %s not found", meta.ParentID)
	}

	id := s.newID("file")
	file := StoredFile{
		RemoteFile: distribution.RemoteFile{
			ID:          id,
			Name:        meta.Name,
			MimeType:    media.MimeType,
			Size:        int64(buf.Len()),
			WebViewLink: "memory://" + id,
		},
		ParentID: meta.ParentID,
		Content:  buf.Bytes(),
	}
	s.files = append(s.files, file)

	remote := file.RemoteFile
	return &remote, nil
}

func (s *Storage) hasFolder(id string) bool {
	for _, f := range s.folders {
		if f.ID == id {
			return true
		}
	}
	return false
}

// Folders returns all folders
func (s *Storage) Folders() []distribution.Folder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]distribution.Folder(nil), s.folders...)
}

// Files returns all uploaded files
func (s *Storage) Files() []StoredFile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]StoredFile(nil), s.files...)
}

// Connector hands out the same Storage regardless of session
type Connector struct {
	Storage *Storage
}

// Connect returns the wrapped storage
func (c *Connector) Connect(ctx context.Context, session *auth.Session) (distribution.RemoteStorage, error) {
	return c.Storage, nil
}
