package drive

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"drive-uploader/domain/distribution"

	"google.golang.org/api/drive/v3"
)

// mockDriveService is a mock implementation for testing
type mockDriveService struct {
	files      []*drive.File
	shouldFail bool
	failError  error

	lastQuery   string
	lastFields  string
	created     []*drive.File
	uploaded    []string
	uploadTypes []string
	nextID      int
}

func (m *mockDriveService) ListFiles(ctx context.Context, query string, fields string, orderBy string) ([]*drive.File, error) {
	m.lastQuery = query
	m.lastFields = fields
	if m.shouldFail {
		return nil, m.failError
	}
	return m.files, nil
}

func (m *mockDriveService) CreateFile(ctx context.Context, file *drive.File, media io.Reader, mimeType string, fields string) (*drive.File, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	m.nextID++
	created := *file
	created.Id = fmt.Sprintf("created-%d", m.nextID)
	m.created = append(m.created, &created)
	if media != nil {
		data, err := io.ReadAll(media)
		if err != nil {
			return nil, err
		}
		created.Size = int64(len(data))
		m.uploaded = append(m.uploaded, string(data))
		m.uploadTypes = append(m.uploadTypes, mimeType)
	}
	return &created, nil
}

func newTestClient(t *testing.T, mock *mockDriveService) *Client {
	t.Helper()
	client, err := NewClient(context.Background(), nil, WithDriveService(mock))
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

func TestNewClient_RequiresSessionWithoutService(t *testing.T) {
	if _, err := NewClient(context.Background(), nil); err == nil {
		t.Error("expected error but got none")
	}
}

func TestClient_ListFolders(t *testing.T) {
	tests := []struct {
		name      string
		mock      *mockDriveService
		wantCount int
		wantErr   bool
		errMsg    string
	}{
		{
			name: "returns matches in service order",
			mock: &mockDriveService{
				files: []*drive.File{
					{Id: "folder-b", Name: "Uploaded Via Git Actions"},
					{Id: "folder-a", Name: "Uploaded Via Git Actions"},
				},
			},
			wantCount: 2,
		},
		{
			name:      "returns empty list when nothing matches",
			mock:      &mockDriveService{files: []*drive.File{}},
			wantCount: 0,
		},
		{
			name: "handles API error",
			mock: &mockDriveService{
				shouldFail: true,
				failError:  fmt.Errorf("googleapi: Error 401: Invalid Credentials"),
			},
			wantErr: true,
			errMsg:  "failed to list folders",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.mock)

			folders, err := client.ListFolders(context.Background(), "Uploaded Via Git Actions")

			if tt.wantErr {
				if err == nil {
					t.Error("expected error but got none")
				} else if tt.errMsg != "" && !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(folders) != tt.wantCount {
				t.Errorf("expected %d folders, got %d", tt.wantCount, len(folders))
			}
			if tt.wantCount > 0 && folders[0].ID != tt.mock.files[0].Id {
				t.Errorf("expected first folder %q, got %q", tt.mock.files[0].Id, folders[0].ID)
			}
		})
	}
}

func TestClient_ListFolders_Query(t *testing.T) {
	mock := &mockDriveService{}
	client := newTestClient(t, mock)

	if _, err := client.ListFolders(context.Background(), "Uploaded Via Git Actions"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "mimeType = 'application/vnd.google-apps.folder' and name = 'Uploaded Via Git Actions' and trashed = false"
	if mock.lastQuery != want {
		t.Errorf("expected query %q, got %q", want, mock.lastQuery)
	}
	if mock.lastFields != "id, name" {
		t.Errorf("expected fields %q, got %q", "id, name", mock.lastFields)
	}
}

func TestFolderQuery_EscapesName(t *testing.T) {
	got := folderQuery(`Bob's \ builds`)
	if !strings.Contains(got, `name = 'Bob\'s \\ builds'`) {
		t.Errorf("name not escaped: %s", got)
	}
}

func TestClient_CreateFolder(t *testing.T) {
	mock := &mockDriveService{}
	client := newTestClient(t, mock)

	folder, err := client.CreateFolder(context.Background(), "Uploaded Via Git Actions")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if folder.ID != "created-1" || folder.Name != "Uploaded Via Git Actions" {
		t.Errorf("unexpected folder: %+v", folder)
	}
	if len(mock.created) != 1 || mock.created[0].MimeType != distribution.MimeTypeFolder {
		t.Fatalf("expected one folder to be created, got %+v", mock.created)
	}
	if len(mock.uploaded) != 0 {
		t.Error("folder creation should not upload media")
	}
}

func TestClient_CreateFolder_Error(t *testing.T) {
	client := newTestClient(t, &mockDriveService{shouldFail: true, failError: fmt.Errorf("quota exceeded")})

	_, err := client.CreateFolder(context.Background(), "x")
	if err == nil || !strings.Contains(err.Error(), "failed to create folder") {
		t.Errorf("expected create folder error, got %v", err)
	}
}

func TestClient_CreateFile(t *testing.T) {
	mock := &mockDriveService{}
	client := newTestClient(t, mock)

	file, err := client.CreateFile(context.Background(),
		distribution.FileMetadata{Name: "generated-file.txt", ParentID: "folder-1", MimeType: "text/plain"},
		distribution.Media{MimeType: "text/plain", Content: strings.NewReader("hello")},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if file.ID != "created-1" {
		t.Errorf("expected ID created-1, got %q", file.ID)
	}
	if file.Size != 5 {
		t.Errorf("expected size 5, got %d", file.Size)
	}
	created := mock.created[0]
	if len(created.Parents) != 1 || created.Parents[0] != "folder-1" {
		t.Errorf("expected parent folder-1, got %v", created.Parents)
	}
	if mock.uploaded[0] != "hello" || mock.uploadTypes[0] != "text/plain" {
		t.Errorf("unexpected upload %q (%s)", mock.uploaded[0], mock.uploadTypes[0])
	}
}

func TestClient_CreateFile_Error(t *testing.T) {
	client := newTestClient(t, &mockDriveService{shouldFail: true, failError: fmt.Errorf("googleapi: Error 500")})

	_, err := client.CreateFile(context.Background(),
		distribution.FileMetadata{Name: "a.txt"},
		distribution.Media{Content: strings.NewReader("x")},
	)
	if err == nil || !strings.Contains(err.Error(), "failed to upload file") {
		t.Errorf("expected upload error, got %v", err)
	}
}
