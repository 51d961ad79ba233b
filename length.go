package bertlv

import "math"

// Length is the byte count of the value region that follows a header.
//
// Lengths 0 through 127 encode in a single byte. Larger lengths use the long
// form: a lead byte of 0x80|n followed by n big-endian bytes, 1 <= n <= 4.
// Only the minimal form is valid: a long form that would have fit the short
// form, or one with a redundant leading zero byte, decodes as
// ErrNonCanonicalLength. The indefinite form (lead byte 0x80 alone) decodes
// as ErrIndefiniteLength.
type Length uint32

// MaxLength is the largest value length the codec accepts or produces. It is
// capped below the 4-byte long form's ceiling so a Length always converts to
// int, including on 32-bit targets.
const MaxLength Length = math.MaxInt32

// maxLengthBytes is the long form's trailing byte budget.
const maxLengthBytes = 4

// EncodedLen returns the number of bytes the encoded form of l occupies.
func (l Length) EncodedLen() int {
	switch {
	case l <= 0x7F:
		return 1
	case l <= 0xFF:
		return 2
	case l <= 0xFFFF:
		return 3
	case l <= 0xFFFFFF:
		return 4
	default:
		return 5
	}
}

// putLength writes the canonical encoding of l into b, which must be exactly
// l.EncodedLen() bytes.
func putLength(b []byte, l Length) {
	if l <= 0x7F {
		b[0] = byte(l)
		return
	}
	n := len(b) - 1
	b[0] = 0x80 | byte(n)
	v := uint32(l)
	for i := n; i >= 1; i-- {
		b[i] = byte(v)
		v >>= 8
	}
}

// parseLength reads a length from the front of b, returning the length and
// the number of bytes consumed.
func parseLength(b []byte) (Length, int, error) {
	if len(b) == 0 {
		return 0, 0, ErrIncomplete
	}
	first := b[0]
	if first&0x80 == 0 {
		return Length(first), 1, nil
	}
	n := int(first & 0x7F)
	if n == 0 {
		return 0, 0, ErrIndefiniteLength
	}
	if n > maxLengthBytes {
		return 0, 0, ErrLengthOverflow
	}
	if len(b) < 1+n {
		return 0, 0, ErrIncomplete
	}
	if b[1] == 0 {
		return 0, 0, ErrNonCanonicalLength
	}
	var v uint32
	for _, c := range b[1 : 1+n] {
		v = v<<8 | uint32(c)
	}
	if v <= 0x7F {
		return 0, 0, ErrNonCanonicalLength
	}
	if Length(v) > MaxLength {
		return 0, 0, ErrLengthOverflow
	}
	return Length(v), 1 + n, nil
}
