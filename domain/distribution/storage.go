package distribution

import (
	"context"
	"io"
)

// RemoteStorage defines the remote operations needed to place a file in a named folder.
// This is a port that can be implemented by different infrastructure adapters.
type RemoteStorage interface {
	// ListFolders returns non-trashed folders whose name equals name, in service order
	ListFolders(ctx context.Context, name string) ([]Folder, error)

	// CreateFolder creates a folder and returns it with its assigned ID
	CreateFolder(ctx context.Context, name string) (*Folder, error)

	// CreateFile uploads media as a new file described by meta
	CreateFile(ctx context.Context, meta FileMetadata, media Media) (*RemoteFile, error)
}

// Folder is a remote folder reference
type Folder struct {
	ID   string
	Name string
}

// FileMetadata describes a file to be created remotely
type FileMetadata struct {
	Name     string
	ParentID string
	MimeType string
}

// Media is the content of an upload
type Media struct {
	MimeType string
	Content  io.Reader
}

// RemoteFile is a file as returned by the remote service after creation
type RemoteFile struct {
	ID          string
	Name        string
	MimeType    string
	Size        int64
	WebViewLink string
}
