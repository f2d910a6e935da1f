// Package pamenv converts the environment list returned by a PAM session into an
// owned, ordered list of name/value pairs and releases the native memory that
// backed it.
package pamenv

import "bytes"

// envSeparator separates a variable name from its value.
const envSeparator = '='

// Pair is a single environment entry. Name and Value hold raw bytes; no text
// encoding is assumed.
type Pair struct {
	Name  []byte
	Value []byte
}

// TextPair is a Pair whose name and value have been validated as UTF-8.
type TextPair struct {
	Name  string
	Value string
}

// ParseLine splits one raw "NAME=VALUE" entry on its first '=' byte.
// It reports false for an empty line or a line without a separator.
//
// The name may be empty: as in glibc, a variable name is allowed to start with
// '=', so "=x" yields an empty name and the value "x". Subsequent '=' bytes are
// kept in the value.
func ParseLine(line []byte) (Pair, bool) {
	if len(line) == 0 {
		return Pair{}, false
	}
	name, value, found := bytes.Cut(line, []byte{envSeparator})
	if !found {
		return Pair{}, false
	}
	return Pair{
		Name:  bytes.Clone(name),
		Value: bytes.Clone(value),
	}, true
}
