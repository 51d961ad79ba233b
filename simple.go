package bertlv

import "fmt"

// SimpleTag is a SIMPLE-TLV tag: a single byte carrying a tag number from 1
// to 254. The values 0x00 and 0xFF are invalid. There is no class or
// constructed flag, and numbers above 30 still occupy one byte.
//
// PIV data objects are the motivating case: they are BER-TLV overall but,
// for historical reasons, label their entries with simple tags. Lengths
// under a simple tag keep the canonical BER forms.
type SimpleTag uint8

// NewSimpleTag returns the simple tag with the given number, or
// ErrMalformedTag for the invalid values 0x00 and 0xFF.
func NewSimpleTag(number uint8) (SimpleTag, error) {
	t := SimpleTag(number)
	if !t.valid() {
		return 0, ErrMalformedTag
	}
	return t, nil
}

func (t SimpleTag) valid() bool {
	return t != 0x00 && t != 0xFF
}

// Embed maps t into the BER tag space as a universal primitive tag with the
// same number. The embedded form is what appears in errors and anywhere else
// the two tag flavors meet.
func (t SimpleTag) Embed() Tag {
	return Tag{Class: ClassUniversal, Number: uint32(t)}
}

func (t SimpleTag) String() string {
	return fmt.Sprintf("%02X", uint8(t))
}

// PeekSimpleTag reads the simple tag of the next data object without
// advancing.
func (d *Decoder) PeekSimpleTag() (SimpleTag, error) {
	if d.err != nil {
		return 0, d.err
	}
	b := d.rest()
	if len(b) == 0 {
		return 0, d.failAt(d.pos, ErrIncomplete)
	}
	t := SimpleTag(b[0])
	if !t.valid() {
		return 0, d.failAt(d.pos, ErrMalformedTag)
	}
	return t, nil
}

// ReadSimpleHeader reads a simple tag and a length, leaving the cursor at
// the first value byte. The same scope bound as ReadHeader applies.
func (d *Decoder) ReadSimpleHeader() (SimpleTag, Length, error) {
	if d.err != nil {
		return 0, 0, d.err
	}
	b := d.rest()
	if len(b) == 0 {
		return 0, 0, d.failAt(d.pos, ErrIncomplete)
	}
	t := SimpleTag(b[0])
	if !t.valid() {
		return 0, 0, d.failAt(d.pos, ErrMalformedTag)
	}
	l, n, err := parseLength(b[1:])
	if err != nil {
		return 0, 0, d.failAt(d.pos+1, err)
	}
	if int(l) > d.end-d.pos-1-n {
		return 0, 0, d.failTagged(d.pos, t.Embed(), ErrIncomplete)
	}
	d.pos += 1 + n
	return t, l, nil
}

// DecodeSimple reads a data object carrying the given simple tag and returns
// its value as a subslice of the input.
func (d *Decoder) DecodeSimple(tag SimpleTag) ([]byte, error) {
	if d.err != nil {
		return nil, d.err
	}
	start := d.pos
	t, l, err := d.ReadSimpleHeader()
	if err != nil {
		return nil, err
	}
	if t != tag {
		err := &TagMismatchError{Offset: start, Expected: tag.Embed(), Actual: t.Embed()}
		if d.err == nil {
			d.err = err
		}
		return nil, err
	}
	return d.ReadValue(int(l))
}

// EncodeSimple writes v under the given simple tag.
func (e *Encoder) EncodeSimple(tag SimpleTag, v []byte) error {
	if e.err != nil {
		return e.err
	}
	if !tag.valid() {
		return e.fail(tag.Embed(), ErrMalformedTag)
	}
	if len(v) > int(MaxLength) {
		return e.fail(tag.Embed(), ErrLengthOverflow)
	}
	l := Length(len(v))
	ll := l.EncodedLen()
	b, err := e.buf.grow(1 + ll + len(v))
	if err != nil {
		return e.fail(tag.Embed(), err)
	}
	b[0] = byte(tag)
	putLength(b[1:1+ll], l)
	copy(b[1+ll:], v)
	return nil
}

// EncodedLenSimple returns the encoded size of an n-byte data object under a
// simple tag.
func EncodedLenSimple(tag SimpleTag, n int) (int, error) {
	if n < 0 || n > int(MaxLength) {
		return 0, ErrLengthOverflow
	}
	return 1 + Length(n).EncodedLen() + n, nil
}

// SimpleDataObject is a raw SIMPLE-TLV data object. It is DataObject's
// counterpart for simple tags and implements the same capabilities.
type SimpleDataObject struct {
	Tag   SimpleTag
	Value []byte
}

// Len returns the size of the value region in bytes.
func (o SimpleDataObject) Len() int {
	return len(o.Value)
}

func (o SimpleDataObject) String() string {
	return fmt.Sprintf("%s[%d]", o.Tag, len(o.Value))
}

// EncodedLen implements Encodable.
func (o SimpleDataObject) EncodedLen() (int, error) {
	return EncodedLenSimple(o.Tag, len(o.Value))
}

// EncodeTLV implements Encodable.
func (o SimpleDataObject) EncodeTLV(e *Encoder) error {
	return e.EncodeSimple(o.Tag, o.Value)
}

// DecodeTLV implements Decodable. It accepts whatever simple tag the input
// carries.
func (o *SimpleDataObject) DecodeTLV(d *Decoder) error {
	t, l, err := d.ReadSimpleHeader()
	if err != nil {
		return err
	}
	v, err := d.ReadValue(int(l))
	if err != nil {
		return err
	}
	o.Tag, o.Value = t, v
	return nil
}
