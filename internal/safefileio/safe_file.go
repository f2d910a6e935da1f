// Package safefileio reads operator-supplied files without following
// symbolic links, so a configuration file cannot be swapped for another file
// through a link.
package safefileio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"
)

// MaxFileSize is the maximum allowed file size for ReadFile (1 MiB)
const MaxFileSize = 1 << 20

// unsafePermBits are permission bits that let other users rewrite the file.
const unsafePermBits = 0o022

// ReadFile reads a regular file that is not a symlink, does not sit under a
// symlinked directory, is not group/world-writable, and is at most
// MaxFileSize bytes.
func ReadFile(filePath string) (content []byte, err error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFilePath, err)
	}

	// #nosec G304 - absPath is opened with O_NOFOLLOW and checked after opening
	file, err := os.OpenFile(absPath, os.O_RDONLY|syscall.O_NOFOLLOW, 0)
	if err != nil {
		if isNoFollowError(err) {
			return nil, fmt.Errorf("%w: %s", ErrIsSymlink, absPath)
		}
		return nil, err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", closeErr)
		}
	}()

	// Checked after opening so a component swapped in between is still caught.
	if err := verifyPathComponents(absPath); err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: not a regular file: %s", ErrInvalidFilePath, absPath)
	}
	if info.Mode().Perm()&unsafePermBits != 0 {
		return nil, fmt.Errorf("%w: %s has mode %04o", ErrInvalidFilePermissions, absPath, info.Mode().Perm())
	}
	if info.Size() > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	content, err = io.ReadAll(io.LimitReader(file, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(content) > MaxFileSize {
		return nil, ErrFileTooLarge
	}
	return content, nil
}

// verifyPathComponents checks that no parent directory of absPath is a symlink.
func verifyPathComponents(absPath string) error {
	current := filepath.Dir(absPath)
	for {
		parent := filepath.Dir(current)
		if parent == current {
			return nil
		}

		fi, err := os.Lstat(current)
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", current, err)
		}
		if fi.Mode()&os.ModeSymlink != 0 {
			return fmt.Errorf("%w: %s", ErrIsSymlink, current)
		}

		current = parent
	}
}

// OpenAppend opens filePath for appending, creating it with perm if needed.
// Like ReadFile it refuses symlinks at the final component or any parent
// directory, and it refuses anything that is not a regular file.
func OpenAppend(filePath string, perm os.FileMode) (*os.File, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFilePath, err)
	}

	// #nosec G304 - absPath is opened with O_NOFOLLOW and checked after opening
	file, err := os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND|syscall.O_NOFOLLOW, perm)
	if err != nil {
		if isNoFollowError(err) {
			return nil, fmt.Errorf("%w: %s", ErrIsSymlink, absPath)
		}
		return nil, err
	}

	if err := verifyPathComponents(absPath); err != nil {
		_ = file.Close()
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}
	if !info.Mode().IsRegular() {
		_ = file.Close()
		return nil, fmt.Errorf("%w: not a regular file: %s", ErrInvalidFilePath, absPath)
	}
	return file, nil
}
