package codec

import "github.com/khonsulabs/pot/poterr"

// budget is a decode-time allocation counter: every byte about to be
// allocated (payload copies, owned strings, container reservations) is
// charged before the allocation happens, so a hostile length claim fails
// before the memory is touched.
type budget struct {
	remaining uint64
}

func newBudget(n uint64) *budget { return &budget{remaining: n} }

// charge deducts n bytes, failing with ErrTooManyBytesRead if that would
// take the counter negative.
func (b *budget) charge(n uint64) error {
	if n > b.remaining {
		return poterr.ErrTooManyBytesRead
	}

	b.remaining -= n

	return nil
}
