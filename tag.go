package bertlv

import (
	"fmt"
	"math"
)

// Class is the tag class from the top two bits of the first tag byte.
type Class uint8

const (
	ClassUniversal Class = iota
	ClassApplication
	ClassContextSpecific
	ClassPrivate
)

func (c Class) String() string {
	switch c {
	case ClassUniversal:
		return "Universal"
	case ClassApplication:
		return "Application"
	case ClassContextSpecific:
		return "ContextSpecific"
	case ClassPrivate:
		return "Private"
	default:
		return fmt.Sprintf("Class(%d)", uint8(c))
	}
}

// Tag identifies a data object: its class, whether its value is constructed
// from nested data objects or primitive, and its number. Tags are small
// values, compared with ==.
//
// Numbers 0 through 30 encode in a single byte. Larger numbers use the
// multi-byte form: the first byte carries 0b11111 in its low five bits, and
// the number follows in base-128 groups, most significant first, with the
// high bit set on every byte but the last. Numbers are capped at what fits
// in a uint32; anything longer decodes as ErrMalformedTag.
type Tag struct {
	Class       Class
	Constructed bool
	Number      uint32
}

// Universal returns the universal-class primitive tag with the given number.
func Universal(number uint32) Tag {
	return Tag{Class: ClassUniversal, Number: number}
}

// Application returns the application-class primitive tag with the given number.
func Application(number uint32) Tag {
	return Tag{Class: ClassApplication, Number: number}
}

// ContextSpecific returns the context-specific-class primitive tag with the
// given number.
func ContextSpecific(number uint32) Tag {
	return Tag{Class: ClassContextSpecific, Number: number}
}

// Private returns the private-class primitive tag with the given number.
func Private(number uint32) Tag {
	return Tag{Class: ClassPrivate, Number: number}
}

// WithConstructed returns a copy of t with the constructed flag set to c.
func (t Tag) WithConstructed(c bool) Tag {
	t.Constructed = c
	return t
}

// Matches reports whether t and o are structurally equal. It is the test
// decoders use to dispatch on an expected tag.
func (t Tag) Matches(o Tag) bool {
	return t == o
}

// EncodedLen returns the number of bytes the encoded form of t occupies.
func (t Tag) EncodedLen() int {
	if t.Number <= 30 {
		return 1
	}
	n := 1
	for v := t.Number; v > 0; v >>= 7 {
		n++
	}
	return n
}

func (t Tag) String() string {
	var buf [maxTagLen]byte
	n := t.EncodedLen()
	putTag(buf[:n], t)
	return fmt.Sprintf("%X", buf[:n])
}

// Tags for the universal primitives the codec reads natively, plus the
// constructed sequence tag.
var (
	TagBoolean     = Universal(1)
	TagInteger     = Universal(2)
	TagBitString   = Universal(3)
	TagOctetString = Universal(4)
	TagNull        = Universal(5)
	TagOID         = Universal(6)
	TagEnumerated  = Universal(10)
	TagUTF8String  = Universal(12)
	TagSequence    = Universal(16).WithConstructed(true)
	TagSet         = Universal(17).WithConstructed(true)
)

// maxTagLen bounds the encoded tag size: one lead byte plus up to five
// base-128 continuation bytes, enough for any uint32 number. The bound keeps
// the continuation scan finite on hostile input.
const maxTagLen = 6

// putTag writes the encoded form of t into b, which must be exactly
// t.EncodedLen() bytes.
func putTag(b []byte, t Tag) {
	first := byte(t.Class&3) << 6
	if t.Constructed {
		first |= 0x20
	}
	if t.Number <= 30 {
		b[0] = first | byte(t.Number)
		return
	}
	b[0] = first | 0x1F
	i := len(b) - 1
	v := t.Number
	b[i] = byte(v & 0x7F)
	for v >>= 7; v > 0; v >>= 7 {
		i--
		b[i] = byte(v&0x7F) | 0x80
	}
}

// parseTag reads a tag from the front of b, returning the tag and the number
// of bytes consumed. Truncated input returns ErrIncomplete. A continuation
// sequence that exceeds maxTagLen, overflows a uint32, or starts with a
// padding byte (low seven bits all zero) returns ErrMalformedTag.
func parseTag(b []byte) (Tag, int, error) {
	if len(b) == 0 {
		return Tag{}, 0, ErrIncomplete
	}
	first := b[0]
	t := Tag{
		Class:       Class(first >> 6),
		Constructed: first&0x20 != 0,
	}
	if num := first & 0x1F; num != 0x1F {
		t.Number = uint32(num)
		return t, 1, nil
	}
	var n uint32
	for i := 1; ; i++ {
		if i >= len(b) {
			return Tag{}, 0, ErrIncomplete
		}
		if i >= maxTagLen {
			return Tag{}, 0, ErrMalformedTag
		}
		c := b[i]
		if i == 1 && c&0x7F == 0 {
			return Tag{}, 0, ErrMalformedTag
		}
		if n > math.MaxUint32>>7 {
			return Tag{}, 0, ErrMalformedTag
		}
		n = n<<7 | uint32(c&0x7F)
		if c&0x80 == 0 {
			t.Number = n
			return t, i + 1, nil
		}
	}
}
