package pamenv

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvList_TextPairs(t *testing.T) {
	t.Run("valid text", func(t *testing.T) {
		l := ParseEnviron([][]byte{[]byte("FOO=bar"), []byte("BAZ="), []byte("=weird")})

		pairs, err := l.TextPairs()
		require.NoError(t, err)
		assert.Equal(t, []TextPair{
			{Name: "FOO", Value: "bar"},
			{Name: "BAZ", Value: ""},
			{Name: "", Value: "weird"},
		}, pairs)
	})

	t.Run("invalid value fails the call", func(t *testing.T) {
		l := NewEnvList(
			Pair{Name: []byte("OK"), Value: []byte("1")},
			Pair{Name: []byte("BIN"), Value: []byte{0xff, 0xfe}},
		)

		pairs, err := l.TextPairs()
		assert.Nil(t, pairs)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidText))

		var decodeErr *DecodeError
		require.True(t, errors.As(err, &decodeErr))
		assert.Equal(t, 1, decodeErr.Index)
		assert.Equal(t, FieldValue, decodeErr.Field)
	})

	t.Run("invalid name", func(t *testing.T) {
		l := NewEnvList(Pair{Name: []byte{0xc3}, Value: []byte("v")})

		_, err := l.TextPairs()
		var decodeErr *DecodeError
		require.True(t, errors.As(err, &decodeErr))
		assert.Equal(t, 0, decodeErr.Index)
		assert.Equal(t, FieldName, decodeErr.Field)
		assert.Contains(t, err.Error(), "name")
	})

	t.Run("raw view still available after decode failure", func(t *testing.T) {
		l := NewEnvList(Pair{Name: []byte("BIN"), Value: []byte{0xff}})

		_, err := l.TextPairs()
		require.Error(t, err)

		raw := l.Pairs()
		require.Len(t, raw, 1)
		assert.Equal(t, []byte{0xff}, raw[0].Value)
	})
}

func TestEnvList_DuplicatesPreserved(t *testing.T) {
	l := ParseEnviron([][]byte{[]byte("A=1"), []byte("A=2")})

	assert.Equal(t, 2, l.Len())
	assert.Equal(t, []string{"A=1", "A=2"}, l.Environ())

	v, ok := l.Lookup("A")
	assert.True(t, ok)
	assert.Equal(t, "1", string(v))

	_, ok = l.Lookup("MISSING")
	assert.False(t, ok)
}

func TestEnvList_PairsReturnsCopy(t *testing.T) {
	l := NewEnvList(Pair{Name: []byte("K"), Value: []byte("v")})

	raw := l.Pairs()
	raw[0].Value[0] = 'x'

	v, ok := l.Lookup("K")
	require.True(t, ok)
	assert.Equal(t, "v", string(v))
}

func TestEnvList_RoundTrip(t *testing.T) {
	original := []Pair{
		{Name: []byte("PATH"), Value: []byte("/usr/bin:/bin")},
		{Name: []byte("EMPTY"), Value: []byte("")},
		{Name: []byte("EQ"), Value: []byte("a=b=c")},
		{Name: []byte("BIN"), Value: []byte{0x00, 0xff}},
		{Name: []byte("PATH"), Value: []byte("dup")},
	}

	lines := NewEnvList(original...).Environ()
	raw := make([][]byte, 0, len(lines))
	for _, line := range lines {
		raw = append(raw, []byte(line))
	}

	got := ParseEnviron(raw).Pairs()
	require.Len(t, got, len(original))
	for i := range original {
		assert.True(t, bytes.Equal(original[i].Name, got[i].Name), "name %d", i)
		assert.True(t, bytes.Equal(original[i].Value, got[i].Value), "value %d", i)
	}
}

func TestEnvList_LogValueOmitsValues(t *testing.T) {
	l := ParseEnviron([][]byte{[]byte("PAM_TOKEN=hunter2"), []byte("LANG=C")})

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	logger.Info("snapshot", "env", l)

	out := buf.String()
	assert.Contains(t, out, "env.count=2")
	assert.Contains(t, out, "PAM_TOKEN")
	assert.False(t, strings.Contains(out, "hunter2"))
}
