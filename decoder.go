package bertlv

// Decoder reads BER-TLV data objects from a byte slice. It is a cursor: each
// read advances it, nested reads narrow it to the enclosing value region, and
// Finish asserts every byte was consumed.
//
// The decoder never reads outside the slice it was given, and a nested read
// never reaches outside its enclosing value region. Decoded byte strings are
// subslices of the input, valid as long as the input is. After the first
// failure the decoder is dead: every subsequent call returns the original
// error.
//
// A Decoder is not safe for concurrent use. Any number of Decoders may read
// the same slice at once, since none of them writes to it.
type Decoder struct {
	buf []byte
	pos int
	end int
	err error
}

// NewDecoder returns a Decoder reading from b.
func NewDecoder(b []byte) *Decoder {
	return &Decoder{buf: b, end: len(b)}
}

// Offset returns the position of the read cursor, in bytes from the start of
// the input.
func (d *Decoder) Offset() int {
	return d.pos
}

// Remaining returns the number of unread bytes in the current scope.
func (d *Decoder) Remaining() int {
	return d.end - d.pos
}

// More reports whether unread bytes remain in the current scope and no
// failure has occurred.
func (d *Decoder) More() bool {
	return d.err == nil && d.pos < d.end
}

// Err returns the error that killed the decoder, or nil.
func (d *Decoder) Err() error {
	return d.err
}

func (d *Decoder) rest() []byte {
	return d.buf[d.pos:d.end]
}

func (d *Decoder) failAt(off int, kind error) error {
	err := &DecodeError{Offset: off, Err: kind}
	if d.err == nil {
		d.err = err
	}
	return err
}

func (d *Decoder) failTagged(off int, tag Tag, kind error) error {
	err := &DecodeError{Offset: off, Tag: tag, Err: kind}
	if d.err == nil {
		d.err = err
	}
	return err
}

// PeekTag reads the tag of the next data object without advancing.
func (d *Decoder) PeekTag() (Tag, error) {
	if d.err != nil {
		return Tag{}, d.err
	}
	t, _, err := parseTag(d.rest())
	if err != nil {
		return Tag{}, d.failAt(d.pos, err)
	}
	return t, nil
}

// ReadHeader reads a tag and length, leaving the cursor at the first value
// byte. A length that claims more bytes than remain in the current scope
// fails with ErrIncomplete; no later read can cross the scope's end.
func (d *Decoder) ReadHeader() (Header, error) {
	if d.err != nil {
		return Header{}, d.err
	}
	h, n, err := parseHeader(d.rest())
	if err != nil {
		return Header{}, d.failAt(d.pos+n, err)
	}
	if int(h.Length) > d.end-d.pos-n {
		return Header{}, d.failTagged(d.pos, h.Tag, ErrIncomplete)
	}
	d.pos += n
	return h, nil
}

// ReadValue consumes the next n bytes and returns them as a subslice of the
// input.
func (d *Decoder) ReadValue(n int) ([]byte, error) {
	if d.err != nil {
		return nil, d.err
	}
	if n < 0 {
		return nil, d.failAt(d.pos, ErrInvalidLen)
	}
	if n > d.end-d.pos {
		return nil, d.failAt(d.pos, ErrIncomplete)
	}
	v := d.buf[d.pos : d.pos+n]
	d.pos += n
	return v, nil
}

// Finish fails with ErrTrailingData unless every byte of the decoder's scope
// has been consumed. Top-level callers use it to reject input with an
// unparsed suffix.
func (d *Decoder) Finish() error {
	if d.err != nil {
		return d.err
	}
	if d.pos != d.end {
		return d.failAt(d.pos, ErrTrailingData)
	}
	return nil
}

// expectHeader reads a header and verifies its tag is want. A constructed
// tag arriving where its primitive form was expected is the segmented
// encoding, which is recognized but not supported.
func (d *Decoder) expectHeader(want Tag) (Header, error) {
	if d.err != nil {
		return Header{}, d.err
	}
	start := d.pos
	h, err := d.ReadHeader()
	if err != nil {
		return Header{}, err
	}
	if h.Tag != want {
		if h.Tag.Constructed && !want.Constructed && h.Tag.WithConstructed(false) == want {
			return Header{}, d.failTagged(start, h.Tag, ErrUnimplemented)
		}
		err := &TagMismatchError{Offset: start, Expected: want, Actual: h.Tag}
		if d.err == nil {
			d.err = err
		}
		return Header{}, err
	}
	return h, nil
}

// DecodeBool reads a data object carrying tag whose one-byte value is a
// boolean. Any value byte other than 0x00 is true.
func (d *Decoder) DecodeBool(tag Tag) (bool, error) {
	h, err := d.expectHeader(tag)
	if err != nil {
		return false, err
	}
	if h.Length != 1 {
		return false, d.failTagged(d.pos, tag, ErrInvalidLen)
	}
	v, err := d.ReadValue(1)
	if err != nil {
		return false, err
	}
	return v[0] != 0, nil
}

// DecodeUint reads a data object carrying tag whose value is a big-endian
// unsigned integer of one to eight bytes. The encoding must be minimal: a
// leading zero byte in a multi-byte value fails with ErrInvalidLen, and a
// value wider than eight bytes fails with ErrOverflow.
func (d *Decoder) DecodeUint(tag Tag) (uint64, error) {
	h, err := d.expectHeader(tag)
	if err != nil {
		return 0, err
	}
	n := int(h.Length)
	if n == 0 {
		return 0, d.failTagged(d.pos, tag, ErrInvalidLen)
	}
	if n > 8 {
		return 0, d.failTagged(d.pos, tag, ErrOverflow)
	}
	b, err := d.ReadValue(n)
	if err != nil {
		return 0, err
	}
	if n > 1 && b[0] == 0 {
		return 0, d.failTagged(d.pos-n, tag, ErrInvalidLen)
	}
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v, nil
}

// DecodeInt reads a data object carrying tag whose value is a big-endian
// two's complement integer of one to eight bytes, minimally encoded.
func (d *Decoder) DecodeInt(tag Tag) (int64, error) {
	h, err := d.expectHeader(tag)
	if err != nil {
		return 0, err
	}
	n := int(h.Length)
	if n == 0 {
		return 0, d.failTagged(d.pos, tag, ErrInvalidLen)
	}
	if n > 8 {
		return 0, d.failTagged(d.pos, tag, ErrOverflow)
	}
	b, err := d.ReadValue(n)
	if err != nil {
		return 0, err
	}
	if n > 1 && (b[0] == 0x00 && b[1]&0x80 == 0 || b[0] == 0xFF && b[1]&0x80 != 0) {
		return 0, d.failTagged(d.pos-n, tag, ErrInvalidLen)
	}
	var v int64
	if b[0]&0x80 != 0 {
		v = -1
	}
	for _, c := range b {
		v = v<<8 | int64(c)
	}
	return v, nil
}

// DecodeBytes reads a data object carrying tag and returns its value as a
// subslice of the input.
func (d *Decoder) DecodeBytes(tag Tag) ([]byte, error) {
	h, err := d.expectHeader(tag)
	if err != nil {
		return nil, err
	}
	return d.ReadValue(int(h.Length))
}

// DecodeNull reads a data object carrying tag with an empty value.
func (d *Decoder) DecodeNull(tag Tag) error {
	h, err := d.expectHeader(tag)
	if err != nil {
		return err
	}
	if h.Length != 0 {
		return d.failTagged(d.pos, tag, ErrInvalidLen)
	}
	return nil
}

// DecodeNested reads the header of a constructed data object carrying tag,
// then invokes f with the decoder narrowed to the object's value region. f
// must consume the region exactly: leftover bytes fail with ErrTrailingData.
// The constructed flag on tag is implied.
func (d *Decoder) DecodeNested(tag Tag, f func(*Decoder) error) error {
	tag = tag.WithConstructed(true)
	h, err := d.expectHeader(tag)
	if err != nil {
		return err
	}
	prevEnd := d.end
	d.end = d.pos + int(h.Length)
	if err := f(d); err != nil {
		if d.err == nil {
			d.err = err
		}
		return err
	}
	if d.err != nil {
		return d.err
	}
	if d.pos != d.end {
		return d.failTagged(d.pos, tag, ErrTrailingData)
	}
	d.end = prevEnd
	return nil
}

// DecodeOptional invokes f when the next data object carries tag, and
// reports whether it did. Absence, because the scope is exhausted or because
// a different tag comes next, is not an error.
func (d *Decoder) DecodeOptional(tag Tag, f func(*Decoder) error) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	if !d.More() {
		return false, nil
	}
	t, err := d.PeekTag()
	if err != nil {
		return false, err
	}
	if t != tag {
		return false, nil
	}
	if err := f(d); err != nil {
		if d.err == nil {
			d.err = err
		}
		return false, err
	}
	return true, nil
}

// Decode reads the next data object into v.
func (d *Decoder) Decode(v Decodable) error {
	if d.err != nil {
		return d.err
	}
	if err := v.DecodeTLV(d); err != nil {
		if d.err == nil {
			d.err = err
		}
		return err
	}
	return nil
}

// ChoiceOption pairs a variant's tag with the function that decodes it.
type ChoiceOption struct {
	Tag    Tag
	Decode func(*Decoder) error
}

// DecodeChoice reads the next data object as the first option whose tag
// matches, trying options in order. No match fails with ErrUnexpectedTag.
func (d *Decoder) DecodeChoice(options ...ChoiceOption) error {
	if d.err != nil {
		return d.err
	}
	start := d.pos
	t, err := d.PeekTag()
	if err != nil {
		return err
	}
	for _, opt := range options {
		if opt.Tag == t {
			if err := opt.Decode(d); err != nil {
				if d.err == nil {
					d.err = err
				}
				return err
			}
			return nil
		}
	}
	err = &TagMismatchError{Offset: start, Actual: t}
	if d.err == nil {
		d.err = err
	}
	return err
}
