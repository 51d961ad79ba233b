package bertlv

import "fmt"

// DataObject is a raw data object: a tag and its undecoded value bytes. It
// is the escape hatch for objects whose structure the caller does not know
// or does not want decoded. Decoding does not copy: Value aliases the input
// slice.
type DataObject struct {
	Tag   Tag
	Value []byte
}

// NewDataObject returns a DataObject pairing tag with value. It fails with
// ErrLengthOverflow when value is longer than a Length can declare.
func NewDataObject(tag Tag, value []byte) (DataObject, error) {
	if len(value) > int(MaxLength) {
		return DataObject{}, &EncodeError{Tag: tag, Err: ErrLengthOverflow}
	}
	return DataObject{Tag: tag, Value: value}, nil
}

// Len returns the size of the value region in bytes.
func (o DataObject) Len() int {
	return len(o.Value)
}

func (o DataObject) String() string {
	return fmt.Sprintf("%s[%d]", o.Tag, len(o.Value))
}

// EncodedLen implements Encodable.
func (o DataObject) EncodedLen() (int, error) {
	return EncodedLenBytes(o.Tag, len(o.Value))
}

// EncodeTLV implements Encodable.
func (o DataObject) EncodeTLV(e *Encoder) error {
	return e.EncodeBytes(o.Tag, o.Value)
}

// DecodeTLV implements Decodable. It accepts whatever tag the input
// carries.
func (o *DataObject) DecodeTLV(d *Decoder) error {
	h, err := d.ReadHeader()
	if err != nil {
		return err
	}
	v, err := d.ReadValue(int(h.Length))
	if err != nil {
		return err
	}
	o.Tag, o.Value = h.Tag, v
	return nil
}

// Nested invokes f with a decoder over o's value region, for walking the
// children of a constructed data object. f must consume the region exactly.
// Offsets in errors from the child decoder are relative to the value region,
// not to whatever input o came from.
func (o DataObject) Nested(f func(*Decoder) error) error {
	if !o.Tag.Constructed {
		return &DecodeError{Tag: o.Tag, Err: ErrUnexpectedTag}
	}
	d := NewDecoder(o.Value)
	if err := f(d); err != nil {
		return err
	}
	return d.Finish()
}
