package bertlv

// Buffer is the destination an Encoder writes into: a mutable byte region
// with a capacity and a growth policy. The two implementations are
// FixedBuffer, which refuses to grow past a caller-supplied region, and
// DynamicBuffer, which grows on the heap. The grammar code is identical over
// either; picking one is the caller's concern.
//
// Only the implementations in this package satisfy Buffer.
type Buffer interface {
	// Bytes returns the bytes written so far. The slice aliases the
	// buffer's storage and is only valid until the next write.
	Bytes() []byte

	// Len returns the number of bytes written so far.
	Len() int

	// grow extends the written region by n bytes and returns it. The
	// caller must overwrite every byte of the returned slice.
	grow(n int) ([]byte, error)

	// truncate shrinks the written region to n bytes.
	truncate(n int)
}

// FixedBuffer writes into a caller-supplied byte slice and never grows
// beyond it. A write that would not fit fails with ErrBufferFull before any
// of its bytes land.
type FixedBuffer struct {
	buf []byte
	n   int
}

// NewFixedBuffer returns a FixedBuffer writing into b. The buffer's capacity
// is len(b).
func NewFixedBuffer(b []byte) *FixedBuffer {
	return &FixedBuffer{buf: b}
}

func (b *FixedBuffer) Bytes() []byte {
	return b.buf[:b.n]
}

func (b *FixedBuffer) Len() int {
	return b.n
}

func (b *FixedBuffer) grow(n int) ([]byte, error) {
	if n > len(b.buf)-b.n {
		return nil, ErrBufferFull
	}
	s := b.buf[b.n : b.n+n]
	b.n += n
	return s, nil
}

func (b *FixedBuffer) truncate(n int) {
	if n >= 0 && n < b.n {
		b.n = n
	}
}

// DynamicBuffer accumulates encoded bytes on the heap, growing as needed.
// The zero value is ready to use.
type DynamicBuffer struct {
	buf []byte
}

// NewDynamicBuffer returns an empty DynamicBuffer with capacity for at least
// sizeHint bytes.
func NewDynamicBuffer(sizeHint int) *DynamicBuffer {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &DynamicBuffer{buf: make([]byte, 0, sizeHint)}
}

func (b *DynamicBuffer) Bytes() []byte {
	return b.buf
}

func (b *DynamicBuffer) Len() int {
	return len(b.buf)
}

func (b *DynamicBuffer) grow(n int) ([]byte, error) {
	m := len(b.buf)
	if n <= cap(b.buf)-m {
		b.buf = b.buf[:m+n]
	} else {
		grown := make([]byte, m+n, 2*(m+n))
		copy(grown, b.buf)
		b.buf = grown
	}
	return b.buf[m : m+n], nil
}

func (b *DynamicBuffer) truncate(n int) {
	if n >= 0 && n < len(b.buf) {
		b.buf = b.buf[:n]
	}
}
