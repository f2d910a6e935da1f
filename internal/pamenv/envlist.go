package pamenv

import (
	"bytes"
	"log/slog"
	"unicode/utf8"
)

// EnvList is an ordered snapshot of a session's environment. Entries keep the
// order of the native list and duplicate names are preserved as separate
// entries. An EnvList never references native memory.
type EnvList struct {
	entries []Pair
}

// NewEnvList builds a list from the given pairs. The pairs are copied.
func NewEnvList(pairs ...Pair) *EnvList {
	l := &EnvList{entries: make([]Pair, 0, len(pairs))}
	for _, p := range pairs {
		l.entries = append(l.entries, Pair{Name: bytes.Clone(p.Name), Value: bytes.Clone(p.Value)})
	}
	return l
}

// ParseEnviron builds a list from raw "NAME=VALUE" lines, dropping malformed ones.
func ParseEnviron(lines [][]byte) *EnvList {
	l := &EnvList{entries: make([]Pair, 0, len(lines))}
	for _, line := range lines {
		l.add(line)
	}
	return l
}

func (l *EnvList) add(line []byte) {
	if p, ok := ParseLine(line); ok {
		l.entries = append(l.entries, p)
	}
}

// Len returns the number of entries.
func (l *EnvList) Len() int {
	return len(l.entries)
}

// Pairs returns a copy of the raw entries.
func (l *EnvList) Pairs() []Pair {
	out := make([]Pair, len(l.entries))
	for i, p := range l.entries {
		out[i] = Pair{Name: bytes.Clone(p.Name), Value: bytes.Clone(p.Value)}
	}
	return out
}

// TextPairs returns the entries as strings. It fails on the first name or
// value that is not valid UTF-8 rather than substituting replacement characters.
func (l *EnvList) TextPairs() ([]TextPair, error) {
	out := make([]TextPair, 0, len(l.entries))
	for i, p := range l.entries {
		if !utf8.Valid(p.Name) {
			return nil, &DecodeError{Index: i, Field: FieldName}
		}
		if !utf8.Valid(p.Value) {
			return nil, &DecodeError{Index: i, Field: FieldValue}
		}
		out = append(out, TextPair{Name: string(p.Name), Value: string(p.Value)})
	}
	return out, nil
}

// Lookup returns the value of the first entry named name.
func (l *EnvList) Lookup(name string) ([]byte, bool) {
	for _, p := range l.entries {
		if string(p.Name) == name {
			return bytes.Clone(p.Value), true
		}
	}
	return nil, false
}

// Environ serializes the list as "NAME=VALUE" strings in list order, in the
// form expected by exec.Cmd.Env.
func (l *EnvList) Environ() []string {
	out := make([]string, 0, len(l.entries))
	for _, p := range l.entries {
		out = append(out, string(p.Name)+string(envSeparator)+string(p.Value))
	}
	return out
}

// Names returns the entry names in order.
func (l *EnvList) Names() []string {
	out := make([]string, 0, len(l.entries))
	for _, p := range l.entries {
		out = append(out, string(p.Name))
	}
	return out
}

// LogValue implements slog.LogValuer. Only the entry count and names are
// emitted; values may carry credentials and are never logged.
func (l *EnvList) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("count", l.Len()),
		slog.Any("names", l.Names()),
	)
}
