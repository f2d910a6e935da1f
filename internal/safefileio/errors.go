package safefileio

import "errors"

// Error definitions
var (
	// ErrInvalidFilePath is returned when the path cannot be resolved or is not a regular file
	ErrInvalidFilePath = errors.New("invalid file path")

	// ErrIsSymlink is returned when the file or one of its parent directories is a symbolic link
	ErrIsSymlink = errors.New("path is a symbolic link")

	// ErrFileTooLarge is returned when the file exceeds the size limit
	ErrFileTooLarge = errors.New("file too large")

	// ErrInvalidFilePermissions is returned when the file is writable by group or others
	ErrInvalidFilePermissions = errors.New("invalid file permissions")
)
