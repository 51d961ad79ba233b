package bertlv

// Encodable is the capability a type implements to be written by an
// Encoder. EncodedLen reports the exact number of bytes EncodeTLV will
// produce; constructed writes verify the two agree. Implementations express
// themselves purely through Encoder operations and the EncodedLen helpers,
// so hand-written and generated types look the same to the codec.
type Encodable interface {
	EncodedLen() (int, error)
	EncodeTLV(e *Encoder) error
}

// Decodable is the capability a type implements to be read from a Decoder.
type Decodable interface {
	DecodeTLV(d *Decoder) error
}

// Decode reads one value from b into v and requires it to consume all of b;
// a leftover suffix fails with ErrTrailingData.
func Decode(b []byte, v Decodable) error {
	d := NewDecoder(b)
	if err := v.DecodeTLV(d); err != nil {
		return err
	}
	return d.Finish()
}

// DecodePrefix reads one value from the front of b into v and returns the
// number of bytes consumed. Unlike Decode it permits a suffix.
func DecodePrefix(b []byte, v Decodable) (int, error) {
	d := NewDecoder(b)
	if err := v.DecodeTLV(d); err != nil {
		return 0, err
	}
	return d.Offset(), nil
}

// Encode writes v into out and returns the number of bytes written. It fails
// with ErrBufferFull if out is too small, and writes nothing beyond
// len(out) regardless.
func Encode(v Encodable, out []byte) (int, error) {
	buf := NewFixedBuffer(out)
	if err := v.EncodeTLV(NewEncoder(buf)); err != nil {
		return 0, err
	}
	return buf.Len(), nil
}

// EncodedLen returns the exact number of bytes Encode would write for v,
// letting callers size buffers without a trial encode.
func EncodedLen(v Encodable) (int, error) {
	return v.EncodedLen()
}

// Marshal encodes v into a new heap-backed buffer. The written size is
// verified against v's declared size; disagreement fails with
// ErrUnderlength.
func Marshal(v Encodable) ([]byte, error) {
	expected, err := v.EncodedLen()
	if err != nil {
		return nil, err
	}
	buf := NewDynamicBuffer(expected)
	if err := v.EncodeTLV(NewEncoder(buf)); err != nil {
		return nil, err
	}
	if buf.Len() != expected {
		return nil, &EncodeError{Err: ErrUnderlength}
	}
	return buf.Bytes(), nil
}
