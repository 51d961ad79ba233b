package bertlv

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDump(t *testing.T) {
	got := Dump(hex2bytes("30 07 01 01 FF 02 02 01 2C"))
	exp := "30 (7):\n" +
		"  01 (1): 0xff\n" +
		"  02 (2): 0x012c\n"
	assert.Equal(t, exp, got)
}

func TestDump_deepNesting(t *testing.T) {
	got := Dump(hex2bytes("6F 07 A0 05 04 03 01 02 03"))
	exp := "6F (7):\n" +
		"  A0 (5):\n" +
		"    04 (3): 0x010203\n"
	assert.Equal(t, exp, got)
}

func TestDump_emptyValues(t *testing.T) {
	got := Dump(hex2bytes("30 00 05 00"))
	exp := "30 (0):\n" +
		"05 (0):\n"
	assert.Equal(t, exp, got)
}

func TestPrint_malformed(t *testing.T) {
	// renders as far as the input parses, then the error
	var buf bytes.Buffer
	err := Print(&buf, "", hex2bytes("01 01 FF 02 02 00"))
	require.Error(t, err)
	assert.True(t, Is(err, ErrIncomplete), "%+v", err)

	out := buf.String()
	assert.Contains(t, out, "01 (1): 0xff\n")
	assert.Contains(t, out, "unexpected end of input")
}

func TestPrintSimple(t *testing.T) {
	var buf bytes.Buffer
	err := PrintSimple(&buf, "", hex2bytes("25 03 01 02 03 34 00"))
	require.NoError(t, err)

	exp := "25 (3): 0x010203\n" +
		"34 (0):\n"
	assert.Equal(t, exp, buf.String())
}
