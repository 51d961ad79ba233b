package iso7816

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gemalto/bertlv-go"
)

// hex2bytes converts hex string to bytes.  Any non-hex characters in the string are stripped first.
// panics on error
func hex2bytes(s string) []byte {
	// strip non hex bytes
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'A' && r <= 'F':
		case r >= 'a' && r <= 'f':
		default:
			return -1 // drop
		}
		return r
	}, s)
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}

	return b
}

func TestFileControlParameters(t *testing.T) {
	in := hex2bytes("62 0B 80 02 01 F4 82 01 38 83 02 3F 00")

	var p FileControlParameters
	require.NoError(t, bertlv.Decode(in, &p))
	assert.Equal(t, uint64(500), p.FileSize)
	assert.Equal(t, []byte{0x38}, p.FileDescriptor)
	assert.Equal(t, []byte{0x3F, 0x00}, p.FileID)
	assert.Empty(t, p.Extra)

	out, err := bertlv.Marshal(p)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestFileControlParameters_extraMembers(t *testing.T) {
	// members the type does not model survive a round trip
	in := hex2bytes("62 08 83 02 3F 00 85 02 AA BB")

	var p FileControlParameters
	require.NoError(t, bertlv.Decode(in, &p))
	require.Len(t, p.Extra, 1)
	assert.Equal(t, bertlv.ContextSpecific(5), p.Extra[0].Tag)
	assert.Equal(t, []byte{0xAA, 0xBB}, p.Extra[0].Value)

	out, err := bertlv.Marshal(p)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestFileControlParameters_errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		err  error
	}{
		{
			name: "file identifier not two bytes",
			in:   "62 05 83 03 3F 00 01",
			err:  bertlv.ErrInvalidLen,
		},
		{
			name: "df name too long",
			in:   "62 15 84 13 00 01 02 03 04 05 06 07 08 09 0A 0B 0C 0D 0E 0F 10 11 12",
			err:  bertlv.ErrInvalidLen,
		},
		{
			name: "life cycle status too wide",
			in:   "62 06 8A 04 01 00 00 00",
			err:  bertlv.ErrOverflow,
		},
		{
			name: "wrong template tag",
			in:   "64 00",
			err:  bertlv.ErrUnexpectedTag,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var p FileControlParameters
			err := bertlv.Decode(hex2bytes(tc.in), &p)
			require.Error(t, err)
			assert.True(t, bertlv.Is(err, tc.err), "%+v", err)
		})
	}
}

func TestFileManagementData(t *testing.T) {
	in := hex2bytes("64 09 50 07 47 65 6D 61 6C 74 6F")

	var m FileManagementData
	require.NoError(t, bertlv.Decode(in, &m))
	assert.Equal(t, "Gemalto", m.Label)

	out, err := bertlv.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestFileManagementData_latin1Label(t *testing.T) {
	// 0xE9 is é in ISO 8859-1; the decoded string is UTF-8
	in := hex2bytes("64 06 50 04 63 61 66 E9")

	var m FileManagementData
	require.NoError(t, bertlv.Decode(in, &m))
	assert.Equal(t, "café", m.Label)

	out, err := bertlv.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestFileManagementData_labelNotLatin1(t *testing.T) {
	m := FileManagementData{Label: "日本"}
	_, err := bertlv.Marshal(m)
	require.Error(t, err)
}

func TestFileControlInfo(t *testing.T) {
	in := hex2bytes("6F 0E 84 07 A0 00 00 03 08 00 00 50 03 50 49 56")

	var f FileControlInfo
	require.NoError(t, bertlv.Decode(in, &f))
	assert.Equal(t, hex2bytes("A0 00 00 03 08 00 00"), f.Parameters.DFName)
	assert.Equal(t, "PIV", f.Management.Label)

	out, err := bertlv.Marshal(f)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestSelectResponse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		chk  func(t *testing.T, r SelectResponse)
	}{
		{
			name: "fci",
			in:   "6F 04 83 02 3F 00",
			chk: func(t *testing.T, r SelectResponse) {
				require.NotNil(t, r.FCI)
				assert.Nil(t, r.FCP)
				assert.Nil(t, r.FMD)
				assert.Equal(t, []byte{0x3F, 0x00}, r.FCI.Parameters.FileID)
			},
		},
		{
			name: "fcp",
			in:   "62 04 80 02 01 F4",
			chk: func(t *testing.T, r SelectResponse) {
				require.NotNil(t, r.FCP)
				assert.Equal(t, uint64(500), r.FCP.FileSize)
			},
		},
		{
			name: "fmd",
			in:   "64 05 50 03 50 49 56",
			chk: func(t *testing.T, r SelectResponse) {
				require.NotNil(t, r.FMD)
				assert.Equal(t, "PIV", r.FMD.Label)
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var r SelectResponse
			require.NoError(t, bertlv.Decode(hex2bytes(tc.in), &r))
			tc.chk(t, r)

			out, err := bertlv.Marshal(r)
			require.NoError(t, err)
			assert.Equal(t, hex2bytes(tc.in), out)
		})
	}
}

func TestSelectResponse_errors(t *testing.T) {
	var r SelectResponse
	err := bertlv.Decode(hex2bytes("30 00"), &r)
	require.Error(t, err)
	assert.True(t, bertlv.Is(err, bertlv.ErrUnexpectedTag), "%+v", err)

	_, err = bertlv.Marshal(SelectResponse{})
	require.Error(t, err)
	assert.True(t, bertlv.Is(err, ErrMissingMember), "%+v", err)
}
