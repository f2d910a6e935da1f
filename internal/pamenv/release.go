package pamenv

// Releaser releases a NativeList and every string it points to. A list must
// not be used after it has been released.
type Releaser interface {
	Release(list NativeList)
}

// WalkReleaser frees each element in order and then frees the array exactly
// once, after the walk has completed.
type WalkReleaser struct{}

// Release implements Releaser.
func (WalkReleaser) Release(list NativeList) {
	if list == nil {
		return
	}
	c := list.Cursor()
	for c.Next() {
		c.Free()
	}
	list.FreeArray()
}

// BulkReleaser delegates to the platform bulk free routine. Lists that do not
// implement BulkFreer are released with WalkReleaser.
type BulkReleaser struct{}

// Release implements Releaser.
func (BulkReleaser) Release(list NativeList) {
	if list == nil {
		return
	}
	if bf, ok := list.(BulkFreer); ok {
		bf.FreeAll()
		return
	}
	WalkReleaser{}.Release(list)
}
