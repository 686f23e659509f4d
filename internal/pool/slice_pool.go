package pool

import "sync"

// stringSlicePool recycles the []string that LoadPersistentMap reads a
// snapshot's symbol names into.
var stringSlicePool = sync.Pool{
	New: func() any { return &[]string{} },
}

// GetStringSlice retrieves a []string of length size from the pool. The
// caller must call the returned cleanup function (typically via defer) to
// return the slice.
func GetStringSlice(size int) ([]string, func()) {
	ptr, _ := stringSlicePool.Get().(*[]string)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]string, size)
	} else {
		slice = slice[:size]
	}

	*ptr = slice

	return slice, func() { stringSlicePool.Put(ptr) }
}
