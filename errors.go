package bertlv

import (
	"errors"
	"fmt"

	"github.com/ansel1/merry"
)

func Is(err error, originals ...error) bool {
	return merry.Is(err, originals...)
}

func Details(err error) string {
	return merry.Details(err)
}

var ErrIncomplete = errors.New("unexpected end of input")
var ErrMalformedTag = errors.New("malformed tag")
var ErrIndefiniteLength = errors.New("indefinite length not supported")
var ErrLengthOverflow = fmt.Errorf("length exceeds max supported value %d", MaxLength)
var ErrNonCanonicalLength = errors.New("length is not minimally encoded")
var ErrTrailingData = errors.New("trailing data at end of value")
var ErrUnexpectedTag = errors.New("unexpected tag")
var ErrOverflow = errors.New("integer overflow")
var ErrInvalidLen = errors.New("invalid length")
var ErrBufferFull = errors.New("buffer full")
var ErrUnderlength = errors.New("encoded value shorter than declared length")
var ErrUnimplemented = errors.New("not implemented")

// DecodeError describes a failure while decoding. Offset is the absolute
// position in the original input of the byte at which the failure was
// detected. Tag is the tag being decoded when the failure occurred, if one
// had been read.
type DecodeError struct {
	Offset int
	Tag    Tag
	Err    error
}

func (e *DecodeError) Error() string {
	msg := "bertlv: " + e.Err.Error()
	if e.Tag != (Tag{}) {
		msg += " decoding " + e.Tag.String()
	}
	msg += fmt.Sprintf(" at offset %d", e.Offset)
	return msg
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// TagMismatchError is returned when input carries a different tag than the
// caller declared. It unwraps to ErrUnexpectedTag. Expected is the zero Tag
// when several tags were acceptable, as in a choice.
type TagMismatchError struct {
	Offset   int
	Expected Tag
	Actual   Tag
}

func (e *TagMismatchError) Error() string {
	msg := "bertlv: unexpected tag: "
	if e.Expected != (Tag{}) {
		msg += "expected " + e.Expected.String() + ", "
	}
	msg += "got " + e.Actual.String()
	msg += fmt.Sprintf(" at offset %d", e.Offset)
	return msg
}

func (e *TagMismatchError) Unwrap() error {
	return ErrUnexpectedTag
}

// EncodeError describes a failure while encoding the value identified by Tag.
type EncodeError struct {
	Tag Tag
	Err error
}

func (e *EncodeError) Error() string {
	msg := "bertlv: error encoding value"
	if e.Tag != (Tag{}) {
		msg += " with tag " + e.Tag.String()
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

type errKey int

const (
	errorKeyOffset errKey = iota
)

func init() {
	merry.RegisterDetail("Offset", errorKeyOffset)
}

func WithOffset(err error, offset int) error {
	return merry.WithValue(err, errorKeyOffset, offset)
}

// GetOffset returns the input offset recorded on err, or -1 if err carries
// none.
func GetOffset(err error) int {
	if v := merry.Value(err, errorKeyOffset); v != nil {
		if offset, ok := v.(int); ok {
			return offset
		}
	}
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Offset
	}
	var tme *TagMismatchError
	if errors.As(err, &tme) {
		return tme.Offset
	}
	return -1
}
