package filesystem

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// New returns the filesystem used in production
func New() afero.Fs {
	return afero.NewOsFs()
}

// WriteFile writes data to path, creating missing parent directories and
// replacing any existing content
func WriteFile(fs afero.Fs, path string, data []byte, perm os.FileMode) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return afero.WriteFile(fs, path, data, perm)
}

// Exists returns true if a regular file or directory exists at path
func Exists(fs afero.Fs, path string) (bool, error) {
	return afero.Exists(fs, path)
}
