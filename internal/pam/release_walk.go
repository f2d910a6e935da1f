//go:build !cgo || !linux

package pam

import "github.com/isseis/go-pam-env/internal/pamenv"

// DefaultReleaser returns the release strategy for this platform.
func DefaultReleaser() pamenv.Releaser {
	return pamenv.WalkReleaser{}
}
