package bertlv

// Encoder writes BER-TLV data objects into a Buffer. Like the Decoder it is
// poisoned by its first failure: every later call returns the original
// error, and the buffer contents after a failure are unspecified.
//
// Primitive writes emit a complete data object in one step, since the length
// is known up front. Constructed writes come in two forms. EncodeCollection
// sizes its fields first, writes the final header once, and checks the
// fields against their declared sizes. Nested reserves a worst-case header,
// lets an arbitrary callback write the content, then backfills the real
// header and closes the gap, for callers that cannot know the content size
// in advance.
//
// An Encoder is not safe for concurrent use, and only one Encoder may write
// to a given destination region at a time.
type Encoder struct {
	buf Buffer
	err error
}

// NewEncoder returns an Encoder writing into buf.
func NewEncoder(buf Buffer) *Encoder {
	return &Encoder{buf: buf}
}

// Len returns the number of bytes written so far.
func (e *Encoder) Len() int {
	return e.buf.Len()
}

// Err returns the error that killed the encoder, or nil.
func (e *Encoder) Err() error {
	return e.err
}

func (e *Encoder) fail(tag Tag, kind error) error {
	err := &EncodeError{Tag: tag, Err: kind}
	if e.err == nil {
		e.err = err
	}
	return err
}

func (e *Encoder) poison(err error) error {
	if e.err == nil {
		e.err = err
	}
	return err
}

// writeHeader emits h. Content must follow in exactly h.Length bytes.
func (e *Encoder) writeHeader(h Header) error {
	if e.err != nil {
		return e.err
	}
	if h.Tag.Class > ClassPrivate {
		return e.fail(h.Tag, ErrMalformedTag)
	}
	b, err := e.buf.grow(h.EncodedLen())
	if err != nil {
		return e.fail(h.Tag, err)
	}
	putHeader(b, h)
	return nil
}

// reserve emits h and returns the value region for the caller to fill.
func (e *Encoder) reserve(h Header) ([]byte, error) {
	if err := e.writeHeader(h); err != nil {
		return nil, err
	}
	b, err := e.buf.grow(int(h.Length))
	if err != nil {
		return nil, e.fail(h.Tag, err)
	}
	return b, nil
}

// EncodeBool writes a one-byte boolean data object under tag, 0xFF for true
// and 0x00 for false.
func (e *Encoder) EncodeBool(tag Tag, v bool) error {
	b, err := e.reserve(Header{Tag: tag, Length: 1})
	if err != nil {
		return err
	}
	b[0] = 0x00
	if v {
		b[0] = 0xFF
	}
	return nil
}

// EncodeUint writes v under tag as a minimal-width big-endian unsigned
// integer.
func (e *Encoder) EncodeUint(tag Tag, v uint64) error {
	n := uintLen(v)
	b, err := e.reserve(Header{Tag: tag, Length: Length(n)})
	if err != nil {
		return err
	}
	for i := n - 1; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
	return nil
}

// EncodeInt writes v under tag as a minimal-width big-endian two's
// complement integer.
func (e *Encoder) EncodeInt(tag Tag, v int64) error {
	n := intLen(v)
	b, err := e.reserve(Header{Tag: tag, Length: Length(n)})
	if err != nil {
		return err
	}
	for i := n - 1; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
	return nil
}

// EncodeBytes writes v under tag.
func (e *Encoder) EncodeBytes(tag Tag, v []byte) error {
	if len(v) > int(MaxLength) {
		return e.fail(tag, ErrLengthOverflow)
	}
	b, err := e.reserve(Header{Tag: tag, Length: Length(len(v))})
	if err != nil {
		return err
	}
	copy(b, v)
	return nil
}

// EncodeNull writes an empty data object under tag.
func (e *Encoder) EncodeNull(tag Tag) error {
	_, err := e.reserve(Header{Tag: tag, Length: 0})
	return err
}

// EncodeCollection writes fields in order as the content of one constructed
// data object under tag. The content length comes from summing the fields'
// EncodedLen results before anything is written; a field whose encoding then
// disagrees with its declared size fails with ErrInvalidLen. The constructed
// flag on tag is implied.
func (e *Encoder) EncodeCollection(tag Tag, fields ...Encodable) error {
	tag = tag.WithConstructed(true)
	if e.err != nil {
		return e.err
	}
	total := 0
	for _, f := range fields {
		n, err := f.EncodedLen()
		if err != nil {
			return e.fail(tag, err)
		}
		if n < 0 || n > int(MaxLength)-total {
			return e.fail(tag, ErrLengthOverflow)
		}
		total += n
	}
	if err := e.writeHeader(Header{Tag: tag, Length: Length(total)}); err != nil {
		return err
	}
	mark := e.buf.Len()
	for _, f := range fields {
		if err := f.EncodeTLV(e); err != nil {
			return e.poison(err)
		}
	}
	if e.buf.Len()-mark != total {
		return e.fail(tag, ErrInvalidLen)
	}
	return nil
}

// maxLengthLen is the widest encoded Length: a lead byte plus
// maxLengthBytes.
const maxLengthLen = 1 + maxLengthBytes

// Nested writes one constructed data object under tag with whatever content
// f produces. It reserves space for the widest possible header, runs f, then
// writes the real header and shifts the content back over the unused
// padding, so the emitted length is still canonical. The constructed flag on
// tag is implied.
//
// Because of the worst-case reservation, Nested can fail with ErrBufferFull
// on a fixed buffer that the finished encoding would in fact fit;
// EncodeCollection has no such slack.
func (e *Encoder) Nested(tag Tag, f func(*Encoder) error) error {
	tag = tag.WithConstructed(true)
	if e.err != nil {
		return e.err
	}
	if tag.Class > ClassPrivate {
		return e.fail(tag, ErrMalformedTag)
	}
	reserved := tag.EncodedLen() + maxLengthLen
	mark := e.buf.Len()
	if _, err := e.buf.grow(reserved); err != nil {
		return e.fail(tag, err)
	}
	if err := f(e); err != nil {
		return e.poison(err)
	}
	if e.err != nil {
		return e.err
	}
	n := e.buf.Len() - mark - reserved
	if n > int(MaxLength) {
		return e.fail(tag, ErrLengthOverflow)
	}
	h := Header{Tag: tag, Length: Length(n)}
	hl := h.EncodedLen()
	b := e.buf.Bytes()
	putHeader(b[mark:mark+hl], h)
	if hl < reserved {
		copy(b[mark+hl:mark+hl+n], b[mark+reserved:mark+reserved+n])
		e.buf.truncate(mark + hl + n)
	}
	return nil
}

func uintLen(v uint64) int {
	n := 1
	for v > 0xFF {
		v >>= 8
		n++
	}
	return n
}

func intLen(v int64) int {
	n := 1
	for v > 0x7F || v < -0x80 {
		v >>= 8
		n++
	}
	return n
}

// EncodedLenBool returns the encoded size of a boolean data object under
// tag.
func EncodedLenBool(tag Tag) int {
	return Header{Tag: tag, Length: 1}.EncodedLen() + 1
}

// EncodedLenUint returns the encoded size of v as an unsigned integer data
// object under tag.
func EncodedLenUint(tag Tag, v uint64) int {
	n := uintLen(v)
	return Header{Tag: tag, Length: Length(n)}.EncodedLen() + n
}

// EncodedLenInt returns the encoded size of v as a signed integer data
// object under tag.
func EncodedLenInt(tag Tag, v int64) int {
	n := intLen(v)
	return Header{Tag: tag, Length: Length(n)}.EncodedLen() + n
}

// EncodedLenBytes returns the encoded size of an n-byte data object under
// tag.
func EncodedLenBytes(tag Tag, n int) (int, error) {
	if n < 0 || n > int(MaxLength) {
		return 0, ErrLengthOverflow
	}
	return Header{Tag: tag, Length: Length(n)}.EncodedLen() + n, nil
}

// EncodedLenNull returns the encoded size of an empty data object under tag.
func EncodedLenNull(tag Tag) int {
	return Header{Tag: tag, Length: 0}.EncodedLen()
}

// EncodedLenCollection returns the encoded size of a constructed data object
// under tag whose content is fields encoded in order.
func EncodedLenCollection(tag Tag, fields ...Encodable) (int, error) {
	total := 0
	for _, f := range fields {
		n, err := f.EncodedLen()
		if err != nil {
			return 0, err
		}
		if n < 0 || n > int(MaxLength)-total {
			return 0, ErrLengthOverflow
		}
		total += n
	}
	h := Header{Tag: tag.WithConstructed(true), Length: Length(total)}
	return h.EncodedLen() + total, nil
}
