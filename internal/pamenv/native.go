package pamenv

// Session is the capability an authentication session exposes to the adapter.
// The adapter borrows the session and never takes ownership of it.
type Session interface {
	// EnvList requests the session's current environment list. It returns nil
	// when the library reports that no list is available. Ownership of a
	// non-nil list passes to the caller.
	EnvList() NativeList
}

// NativeList is a NULL-terminated array of NUL-terminated strings owned by the
// caller. Implementations keep the native addresses to themselves.
type NativeList interface {
	// Cursor returns a new cursor positioned before the first element.
	Cursor() Cursor
	// FreeArray releases the array itself, not its elements.
	FreeArray()
}

// Cursor walks the elements of a NativeList up to its terminator.
type Cursor interface {
	// Next advances to the next element and reports false once the
	// terminating NULL is reached. It never moves past the terminator.
	Next() bool
	// Bytes returns a copy of the current element without its terminator.
	Bytes() []byte
	// Free releases the current element.
	Free()
}

// BulkFreer is implemented by lists that the platform can release, array and
// elements together, in a single call.
type BulkFreer interface {
	FreeAll()
}
