package bertlv

import "fmt"

// Header is the tag and length pair that precedes every value region.
type Header struct {
	Tag    Tag
	Length Length
}

// EncodedLen returns the number of bytes the encoded form of h occupies.
func (h Header) EncodedLen() int {
	return h.Tag.EncodedLen() + h.Length.EncodedLen()
}

func (h Header) String() string {
	return fmt.Sprintf("%s[%d]", h.Tag, uint32(h.Length))
}

// putHeader writes the encoded form of h into b, which must be exactly
// h.EncodedLen() bytes.
func putHeader(b []byte, h Header) {
	n := h.Tag.EncodedLen()
	putTag(b[:n], h.Tag)
	putLength(b[n:], h.Length)
}

// parseHeader reads a tag then a length from the front of b. On failure the
// returned count is the bytes consumed before the failing component, so
// callers can report the position of the fault.
func parseHeader(b []byte) (Header, int, error) {
	t, n, err := parseTag(b)
	if err != nil {
		return Header{}, 0, err
	}
	l, m, err := parseLength(b[n:])
	if err != nil {
		return Header{}, n, err
	}
	return Header{Tag: t, Length: l}, n + m, nil
}
