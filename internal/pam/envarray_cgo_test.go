//go:build cgo && test

package pam

import (
	"testing"

	"github.com/isseis/go-pam-env/internal/pamenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingArray records release calls while still freeing the real memory.
type countingArray struct {
	*envArray
	elementFrees int
	arrayFrees   int
	freesAtArray int
}

func (a *countingArray) Cursor() pamenv.Cursor {
	return &countingCursor{Cursor: a.envArray.Cursor(), owner: a}
}

func (a *countingArray) FreeArray() {
	a.arrayFrees++
	a.freesAtArray = a.elementFrees
	a.envArray.FreeArray()
}

type countingCursor struct {
	pamenv.Cursor
	owner *countingArray
}

func (c *countingCursor) Free() {
	c.owner.elementFrees++
	c.Cursor.Free()
}

type arraySession struct {
	list pamenv.NativeList
}

func (s arraySession) EnvList() pamenv.NativeList { return s.list }

func TestEnvArray_CursorStopsAtTerminator(t *testing.T) {
	arr := newTestEnvArray([]string{"A=1", "B=2"})
	defer pamenv.WalkReleaser{}.Release(arr)

	c := arr.Cursor()
	var got []string
	for c.Next() {
		got = append(got, string(c.Bytes()))
	}
	assert.Equal(t, []string{"A=1", "B=2"}, got)

	assert.False(t, c.Next(), "cursor must stay at the terminator")
	assert.False(t, c.Next())
}

func TestEnvArray_EmptyArray(t *testing.T) {
	arr := newTestEnvArray(nil)
	defer pamenv.WalkReleaser{}.Release(arr)

	assert.False(t, arr.Cursor().Next())
}

func TestEnvArray_NullIsAbsent(t *testing.T) {
	assert.Nil(t, newEnvArray(nil))
}

func TestFetch_FromNativeArray(t *testing.T) {
	arr := &countingArray{envArray: newTestEnvArray([]string{"FOO=bar", "BADENTRY", "BAZ=", "=weird"})}

	list, ok := pamenv.NewFetcher(pamenv.WalkReleaser{}).Fetch(arraySession{list: arr})
	require.True(t, ok)

	pairs, err := list.TextPairs()
	require.NoError(t, err)
	assert.Equal(t, []pamenv.TextPair{
		{Name: "FOO", Value: "bar"},
		{Name: "BAZ", Value: ""},
		{Name: "", Value: "weird"},
	}, pairs)

	assert.Equal(t, 4, arr.elementFrees)
	assert.Equal(t, 1, arr.arrayFrees)
	assert.Equal(t, 4, arr.freesAtArray, "array released after every element")
	assert.Nil(t, arr.base)
}

func TestDefaultReleaser_ReleasesNativeArray(t *testing.T) {
	arr := newTestEnvArray([]string{"PAM_USER=alice", "LANG=C"})

	list, ok := pamenv.NewFetcher(DefaultReleaser()).Fetch(arraySession{list: arr})

	require.True(t, ok)
	assert.Equal(t, []string{"PAM_USER=alice", "LANG=C"}, list.Environ())
	assert.Nil(t, arr.base)
}
