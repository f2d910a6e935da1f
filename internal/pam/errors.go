// Package pam binds the parts of libpam needed to open a PAM transaction and
// read its environment list. All native memory stays inside this package.
package pam

import (
	"errors"
	"fmt"
)

// Error definitions
var (
	// ErrUnsupported is returned when the binary was built without cgo.
	ErrUnsupported = errors.New("PAM support requires cgo")
	// ErrTransactionEnded is returned by operations on an ended transaction.
	ErrTransactionEnded = errors.New("PAM transaction already ended")
	// ErrInvalidName is returned by PutEnv for empty names or names containing '='.
	ErrInvalidName = errors.New("invalid environment variable name")
	// ErrEmptyService is returned by Start when no service name is given.
	ErrEmptyService = errors.New("PAM service name cannot be empty")
)

// Error is a failed libpam call.
type Error struct {
	Op   string
	Code int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (code %d)", e.Op, e.Msg, e.Code)
}

// CredFlag selects the pam_setcred operation.
type CredFlag int

// Credential operations accepted by SetCred.
const (
	EstablishCred CredFlag = iota
	DeleteCred
	ReinitializeCred
	RefreshCred
)

func (f CredFlag) String() string {
	switch f {
	case EstablishCred:
		return "establish"
	case DeleteCred:
		return "delete"
	case ReinitializeCred:
		return "reinitialize"
	case RefreshCred:
		return "refresh"
	default:
		return fmt.Sprintf("CredFlag(%d)", int(f))
	}
}
