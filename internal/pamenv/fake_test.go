package pamenv

import "fmt"

// fakeList simulates a native string array and records every release call.
type fakeList struct {
	entries  [][]byte
	events   []string
	panicOn  int
	released bool
}

func newFakeList(entries ...string) *fakeList {
	l := &fakeList{panicOn: -1}
	for _, e := range entries {
		l.entries = append(l.entries, []byte(e))
	}
	return l
}

func (l *fakeList) Cursor() Cursor {
	return &fakeCursor{list: l, idx: -1}
}

func (l *fakeList) FreeArray() {
	l.events = append(l.events, "array")
	l.released = true
}

func (l *fakeList) elementFrees() int {
	n := 0
	for _, e := range l.events {
		if e != "array" && e != "bulk" {
			n++
		}
	}
	return n
}

type fakeCursor struct {
	list *fakeList
	idx  int
}

func (c *fakeCursor) Next() bool {
	if c.idx+1 >= len(c.list.entries) {
		c.idx = len(c.list.entries)
		return false
	}
	c.idx++
	return true
}

func (c *fakeCursor) Bytes() []byte {
	if c.idx == c.list.panicOn {
		panic("corrupt element")
	}
	return append([]byte(nil), c.list.entries[c.idx]...)
}

func (c *fakeCursor) Free() {
	c.list.events = append(c.list.events, fmt.Sprintf("element %d", c.idx))
}

// fakeBulkList adds a platform bulk free to fakeList.
type fakeBulkList struct {
	*fakeList
}

func (l fakeBulkList) FreeAll() {
	l.events = append(l.events, "bulk")
	l.released = true
}

type fakeSession struct {
	list  NativeList
	calls int
}

func (s *fakeSession) EnvList() NativeList {
	s.calls++
	return s.list
}
