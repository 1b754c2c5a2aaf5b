package distribution

// Artifact is a local file that is to be uploaded
type Artifact struct {
	Name      string // Target filename in the remote folder
	MimeType  string // Empty means detect from content
	LocalPath string // Path to the local file
}

// UploadResult contains the result of a successful upload
type UploadResult struct {
	FileID        string // Remote file ID
	FileName      string // Name of the uploaded file
	FolderID      string // Parent folder ID
	FolderCreated bool   // True if the folder was created by this run
	MimeType      string // MIME type sent with the upload
	WebViewLink   string // Browser link, when the service returns one
}

// MIME type constants
const (
	MimeTypeText   = "text/plain"
	MimeTypeFolder = "application/vnd.google-apps.folder"
)
