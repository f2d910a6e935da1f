//go:build !cgo

package pam

import (
	"unsafe"

	"github.com/isseis/go-pam-env/internal/pamenv"
)

// Handle is a borrowed pam_handle_t. Without cgo it never has an environment.
type Handle struct{}

// FromHandle wraps a pam_handle_t*.
func FromHandle(_ unsafe.Pointer) *Handle {
	return &Handle{}
}

// EnvList implements pamenv.Session.
func (h *Handle) EnvList() pamenv.NativeList {
	return nil
}

// Environment always reports no environment without cgo.
func (h *Handle) Environment(opts ...pamenv.Option) (*pamenv.EnvList, bool) {
	return pamenv.NewFetcher(DefaultReleaser(), opts...).Fetch(h)
}

// Transaction is a PAM transaction. Without cgo none can be started.
type Transaction struct{}

// Start always fails with ErrUnsupported.
func Start(_, _ string) (*Transaction, error) {
	return nil, ErrUnsupported
}

// End is a no-op.
func (t *Transaction) End() error { return nil }

// PutEnv always fails with ErrUnsupported.
func (t *Transaction) PutEnv(_, _ string) error { return ErrUnsupported }

// GetEnv always reports false.
func (t *Transaction) GetEnv(_ string) (string, bool) { return "", false }

// SetCred always fails with ErrUnsupported.
func (t *Transaction) SetCred(_ CredFlag) error { return ErrUnsupported }

// OpenSession always fails with ErrUnsupported.
func (t *Transaction) OpenSession() error { return ErrUnsupported }

// CloseSession always fails with ErrUnsupported.
func (t *Transaction) CloseSession() error { return ErrUnsupported }

// EnvList implements pamenv.Session.
func (t *Transaction) EnvList() pamenv.NativeList { return nil }

// Environment always reports no environment without cgo.
func (t *Transaction) Environment(opts ...pamenv.Option) (*pamenv.EnvList, bool) {
	return pamenv.NewFetcher(DefaultReleaser(), opts...).Fetch(t)
}
