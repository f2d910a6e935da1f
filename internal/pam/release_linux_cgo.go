//go:build cgo && linux

package pam

/*
#cgo LDFLAGS: -lpam_misc
#include <security/pam_appl.h>
#include <security/pam_misc.h>
*/
import "C"

import "github.com/isseis/go-pam-env/internal/pamenv"

// FreeAll releases the array and its strings with pam_misc_drop_env, which
// also scrubs each string before freeing it.
func (a *envArray) FreeAll() {
	if a.base == nil {
		return
	}
	C.pam_misc_drop_env(a.base)
	a.base = nil
}

// DefaultReleaser returns the release strategy for this platform.
func DefaultReleaser() pamenv.Releaser {
	return pamenv.BulkReleaser{}
}
