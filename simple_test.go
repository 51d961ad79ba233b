package bertlv

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSimpleTag(t *testing.T) {
	tag, err := NewSimpleTag(37)
	require.NoError(t, err)
	assert.Equal(t, SimpleTag(37), tag)
	assert.Equal(t, "25", tag.String())
	assert.Equal(t, Universal(37), tag.Embed())

	_, err = NewSimpleTag(0x00)
	require.Error(t, err)
	assert.True(t, Is(err, ErrMalformedTag), "%+v", err)

	_, err = NewSimpleTag(0xFF)
	require.Error(t, err)
	assert.True(t, Is(err, ErrMalformedTag), "%+v", err)
}

func TestDecoder_DecodeSimple(t *testing.T) {
	d := NewDecoder(hex2bytes("25 03 01 02 03"))
	v, err := d.DecodeSimple(SimpleTag(37))
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, v)
	require.NoError(t, d.Finish())
}

func TestDecoder_DecodeSimple_longFormLength(t *testing.T) {
	// lengths under a simple tag keep the BER long forms
	content := bytes.Repeat([]byte{0xEE}, 256)
	in := append(hex2bytes("25 82 01 00"), content...)
	d := NewDecoder(in)
	v, err := d.DecodeSimple(SimpleTag(37))
	require.NoError(t, err)
	assert.Equal(t, content, v)
	require.NoError(t, d.Finish())
}

func TestDecoder_DecodeSimple_errors(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		err    error
		offset int
	}{
		{
			name:   "empty",
			in:     "",
			err:    ErrIncomplete,
			offset: 0,
		},
		{
			name:   "invalid tag 00",
			in:     "00 01 AA",
			err:    ErrMalformedTag,
			offset: 0,
		},
		{
			name:   "invalid tag FF",
			in:     "FF 01 AA",
			err:    ErrMalformedTag,
			offset: 0,
		},
		{
			name:   "length claims more than remains",
			in:     "25 02 AA",
			err:    ErrIncomplete,
			offset: 0,
		},
		{
			name:   "non canonical length",
			in:     "25 81 7F",
			err:    ErrNonCanonicalLength,
			offset: 1,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := NewDecoder(hex2bytes(tc.in))
			_, err := d.DecodeSimple(SimpleTag(37))
			require.Error(t, err)
			assert.True(t, Is(err, tc.err), "%+v", err)
			assert.Equal(t, tc.offset, GetOffset(err))
		})
	}
}

func TestDecoder_DecodeSimple_mismatch(t *testing.T) {
	d := NewDecoder(hex2bytes("30 01 AA"))
	_, err := d.DecodeSimple(SimpleTag(37))
	require.Error(t, err)
	assert.True(t, Is(err, ErrUnexpectedTag), "%+v", err)

	var tme *TagMismatchError
	require.True(t, errors.As(err, &tme))
	assert.Equal(t, Universal(37), tme.Expected)
	assert.Equal(t, Universal(48), tme.Actual)
}

func TestDecoder_PeekSimpleTag(t *testing.T) {
	d := NewDecoder(hex2bytes("25 01 AA"))
	tag, err := d.PeekSimpleTag()
	require.NoError(t, err)
	assert.Equal(t, SimpleTag(37), tag)
	assert.Equal(t, 0, d.Offset())
}

func TestDecoder_ReadSimpleHeader(t *testing.T) {
	d := NewDecoder(hex2bytes("25 82 01 00"))
	// scope claims 256 bytes that are not there
	_, _, err := d.ReadSimpleHeader()
	require.Error(t, err)
	assert.True(t, Is(err, ErrIncomplete), "%+v", err)
	assert.Equal(t, 0, GetOffset(err))
}

func TestEncoder_EncodeSimple(t *testing.T) {
	buf := NewDynamicBuffer(0)
	e := NewEncoder(buf)
	require.NoError(t, e.EncodeSimple(SimpleTag(37), []byte{1, 2, 3}))
	assert.Equal(t, hex2bytes("25 03 01 02 03"), buf.Bytes())

	n, err := EncodedLenSimple(SimpleTag(37), 3)
	require.NoError(t, err)
	assert.Equal(t, n, e.Len())
}

func TestEncoder_EncodeSimple_longFormLength(t *testing.T) {
	content := bytes.Repeat([]byte{0xEE}, 256)
	buf := NewDynamicBuffer(0)
	e := NewEncoder(buf)
	require.NoError(t, e.EncodeSimple(SimpleTag(37), content))

	exp := append(hex2bytes("25 82 01 00"), content...)
	assert.Equal(t, exp, buf.Bytes())
}

func TestEncoder_EncodeSimple_invalidTag(t *testing.T) {
	buf := NewDynamicBuffer(0)
	e := NewEncoder(buf)
	err := e.EncodeSimple(SimpleTag(0xFF), []byte{1})
	require.Error(t, err)
	assert.True(t, Is(err, ErrMalformedTag), "%+v", err)
}

func TestSimpleDataObject(t *testing.T) {
	in := SimpleDataObject{Tag: SimpleTag(0x30), Value: []byte{0xAA, 0xBB}}
	b, err := Marshal(in)
	require.NoError(t, err)
	assert.Equal(t, hex2bytes("30 02 AA BB"), b)

	var out SimpleDataObject
	require.NoError(t, Decode(b, &out))
	assert.Equal(t, in, out)
	assert.Equal(t, 2, out.Len())
	assert.Equal(t, "30[2]", out.String())
}
