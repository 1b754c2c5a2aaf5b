package distribution

import "errors"

var (
	// ErrFolderLookup is returned when the folder query itself fails
	ErrFolderLookup = errors.New("folder lookup failed")

	// ErrFolderCreate is returned when the destination folder could not be created
	ErrFolderCreate = errors.New("folder creation failed")

	// ErrUpload is returned when the file upload call fails
	ErrUpload = errors.New("upload failed")

	// ErrArtifactWrite is returned when the local artifact could not be written
	ErrArtifactWrite = errors.New("failed to write artifact")

	// ErrArtifactMissing is returned when the file to upload cannot be opened
	ErrArtifactMissing = errors.New("artifact not found")

	// ErrConnect is returned when a storage client cannot be built from a session
	ErrConnect = errors.New("failed to connect to remote storage")
)
