// Package pool provides a pooled, growable byte buffer and a pooled string
// slice, used to assemble and load persistent symbol table snapshots.
package pool

import "sync"

// Default sizing for a pooled buffer. DefaultSize avoids a reallocation for
// small payloads, while MaxThreshold keeps one oversized payload from
// permanently bloating the pool.
const (
	DefaultSize  = 1024 * 4   // 4KiB
	MaxThreshold = 1024 * 512 // 512KiB
)

// Buffer is a growable byte slice wrapper with amortized-growth semantics,
// reused via Pool. It implements potio.Sink.
type Buffer struct {
	B []byte
}

// NewBuffer allocates a Buffer with the given starting capacity.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{B: make([]byte, 0, capacity)}
}

// Bytes returns the buffer's current contents.
func (b *Buffer) Bytes() []byte { return b.B }

// Reset empties the buffer without releasing its backing array.
func (b *Buffer) Reset() { b.B = b.B[:0] }

// Len reports the buffer's current length.
func (b *Buffer) Len() int { return len(b.B) }

// Cap reports the buffer's current capacity.
func (b *Buffer) Cap() int { return cap(b.B) }

// Write appends data to the buffer, growing it as needed. It satisfies
// io.Writer.
func (b *Buffer) Write(data []byte) (int, error) {
	b.Grow(len(data))
	b.B = append(b.B, data...)

	return len(data), nil
}

// WriteByte appends a single byte, growing the buffer as needed. It
// satisfies io.ByteWriter, completing potio.Sink.
func (b *Buffer) WriteByte(c byte) error {
	b.Grow(1)
	b.B = append(b.B, c)

	return nil
}

// Extend grows the buffer's length by n without reallocating, returning
// false if there isn't enough spare capacity.
func (b *Buffer) Extend(n int) bool {
	curLen := len(b.B)
	if cap(b.B)-curLen < n {
		return false
	}

	b.B = b.B[:curLen+n]

	return true
}

// ExtendOrGrow extends the buffer's length by n, reallocating first if
// needed.
func (b *Buffer) ExtendOrGrow(n int) {
	if b.Extend(n) {
		return
	}

	start := len(b.B)
	b.Grow(n)
	b.B = b.B[:start+n]
}

// Grow ensures the buffer can accept requiredBytes more bytes without a
// further reallocation. Small buffers grow by DefaultSize increments to
// minimize reallocation count; larger buffers grow by 25% of their current
// capacity to bound amortized copy cost.
func (b *Buffer) Grow(requiredBytes int) {
	available := cap(b.B) - len(b.B)
	if available >= requiredBytes {
		return
	}

	growBy := DefaultSize
	if cap(b.B) > 4*DefaultSize {
		growBy = cap(b.B) / 4
	}

	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(b.B), len(b.B)+growBy)
	copy(newBuf, b.B)
	b.B = newBuf
}

// Pool recycles Buffers via sync.Pool.
type Pool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewPool creates a Pool whose buffers start at defaultSize and are
// discarded, rather than recycled, once grown past maxThreshold.
func NewPool(defaultSize, maxThreshold int) *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any { return NewBuffer(defaultSize) },
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a Buffer from the pool.
func (p *Pool) Get() *Buffer {
	buf, _ := p.pool.Get().(*Buffer)
	return buf
}

// Put returns buf to the pool, discarding it instead if it grew beyond the
// pool's maxThreshold.
func (p *Pool) Put(buf *Buffer) {
	if buf == nil {
		return
	}

	if p.maxThreshold > 0 && cap(buf.B) > p.maxThreshold {
		return
	}

	buf.Reset()
	p.pool.Put(buf)
}

var defaultPool = NewPool(DefaultSize, MaxThreshold)

// Get retrieves a Buffer from the package-level default pool.
func Get() *Buffer { return defaultPool.Get() }

// Put returns a Buffer to the package-level default pool.
func Put(buf *Buffer) { defaultPool.Put(buf) }
