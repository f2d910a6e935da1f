package logging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/isseis/go-pam-env/internal/safefileio"
)

// ErrEmptyLogPath is returned when OpenLogFile is given an empty path.
var ErrEmptyLogPath = errors.New("log file path cannot be empty")

const (
	logDirPerm  os.FileMode = 0o750
	logFilePerm os.FileMode = 0o600
)

// OpenLogFile opens path for appending JSON log records, creating the file
// and its directory if needed. Symlinked paths are refused.
func OpenLogFile(path string) (*os.File, error) {
	if path == "" {
		return nil, ErrEmptyLogPath
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, logDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	file, err := safefileio.OpenAppend(path, logFilePerm)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s safely: %w", path, err)
	}
	return file, nil
}
