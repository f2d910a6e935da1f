//go:build cgo

package pam

/*
#include <stdlib.h>
#include <string.h>
*/
import "C"

import (
	"unsafe"

	"github.com/isseis/go-pam-env/internal/pamenv"
)

// envArray is a NULL-terminated char** returned by pam_getenvlist.
type envArray struct {
	base **C.char
}

// newEnvArray returns nil for a NULL array so callers see an untyped nil
// pamenv.NativeList.
func newEnvArray(base **C.char) pamenv.NativeList {
	if base == nil {
		return nil
	}
	return &envArray{base: base}
}

func (a *envArray) Cursor() pamenv.Cursor {
	return &envCursor{base: a.base, idx: -1}
}

func (a *envArray) FreeArray() {
	if a.base == nil {
		return
	}
	C.free(unsafe.Pointer(a.base))
	a.base = nil
}

func (a *envArray) slot(i int) **C.char {
	return (**C.char)(unsafe.Add(unsafe.Pointer(a.base), i*int(unsafe.Sizeof(*a.base))))
}

// envCursor walks an envArray. Once it has seen the terminator it stays there.
type envCursor struct {
	base **C.char
	idx  int
	done bool
}

func (c *envCursor) slot(i int) **C.char {
	return (&envArray{base: c.base}).slot(i)
}

func (c *envCursor) Next() bool {
	if c.done || c.base == nil {
		return false
	}
	if *c.slot(c.idx + 1) == nil {
		c.done = true
		return false
	}
	c.idx++
	return true
}

func (c *envCursor) Bytes() []byte {
	p := *c.slot(c.idx)
	return C.GoBytes(unsafe.Pointer(p), C.int(C.strlen(p)))
}

func (c *envCursor) Free() {
	slot := c.slot(c.idx)
	C.free(unsafe.Pointer(*slot))
}
