package hexutil

import (
	"encoding/hex"
	"errors"
	"strings"

	"github.com/ansel1/merry"
)

var ErrInvalidHexString = errors.New("invalid hex string")

// Parse converts a hex string to bytes.  The string may carry a "0x" prefix,
// and whitespace, colons, and dashes between bytes are ignored, so the forms
// most hex dump tools produce can be pasted in directly.
func Parse(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")

	// strip separators
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n', ':', '-':
			return -1 // drop
		}
		return r
	}, s)

	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, merry.Here(ErrInvalidHexString).WithCause(err)
	}
	return b, nil
}
