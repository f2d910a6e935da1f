package pamenv

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_NullList(t *testing.T) {
	s := &fakeSession{}

	list, ok := Fetch(s)

	assert.False(t, ok)
	assert.Nil(t, list)
	assert.Equal(t, 1, s.calls)
}

func TestFetch_ParsesAndDropsMalformed(t *testing.T) {
	native := newFakeList("FOO=bar", "BADENTRY", "BAZ=", "=weird")
	s := &fakeSession{list: native}

	list, ok := Fetch(s)
	require.True(t, ok)

	pairs, err := list.TextPairs()
	require.NoError(t, err)
	assert.Equal(t, []TextPair{
		{Name: "FOO", Value: "bar"},
		{Name: "BAZ", Value: ""},
		{Name: "", Value: "weird"},
	}, pairs)
	assert.True(t, native.released)
	assert.Equal(t, 4, native.elementFrees())
}

func TestFetch_EmptyListIsPresent(t *testing.T) {
	native := newFakeList()

	list, ok := Fetch(&fakeSession{list: native})

	require.True(t, ok)
	assert.Equal(t, 0, list.Len())
	assert.Equal(t, []string{"array"}, native.events)
}

func TestFetch_AllMalformedStillReleases(t *testing.T) {
	native := newFakeList("", "NOPE", "ALSO_NOPE")

	list, ok := Fetch(&fakeSession{list: native})

	require.True(t, ok)
	assert.Equal(t, 0, list.Len())
	assert.True(t, native.released)
	assert.Equal(t, 3, native.elementFrees())
}

func TestFetcher_UsesReleaser(t *testing.T) {
	native := fakeBulkList{newFakeList("A=1")}

	list, ok := NewFetcher(BulkReleaser{}).Fetch(&fakeSession{list: native})

	require.True(t, ok)
	assert.Equal(t, 1, list.Len())
	assert.Equal(t, []string{"bulk"}, native.events)
}

func TestFetcher_ReleasesOnPanic(t *testing.T) {
	native := newFakeList("A=1", "B=2")
	native.panicOn = 1

	assert.Panics(t, func() {
		NewFetcher(WalkReleaser{}).Fetch(&fakeSession{list: native})
	})
	assert.True(t, native.released)
	assert.Equal(t, []string{"element 0", "element 1", "array"}, native.events)
}

func TestFetcher_DebugLogOmitsValues(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	native := newFakeList("SECRET=s3cr3t", "MALFORMED")

	_, ok := NewFetcher(nil, WithLogger(logger)).Fetch(&fakeSession{list: native})

	require.True(t, ok)
	assert.Contains(t, buf.String(), "entries=1")
	assert.NotContains(t, buf.String(), "s3cr3t")
	assert.NotContains(t, buf.String(), "MALFORMED")
}
