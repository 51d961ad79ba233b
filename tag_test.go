package bertlv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTag_wireForm(t *testing.T) {
	tests := []struct {
		name string
		tag  Tag
		exp  []byte
	}{
		{
			name: "universal short",
			tag:  Universal(17),
			exp:  []byte{0x11},
		},
		{
			name: "universal zero",
			tag:  Universal(0),
			exp:  []byte{0x00},
		},
		{
			name: "universal max short",
			tag:  Universal(30),
			exp:  []byte{0x1E},
		},
		{
			name: "application short",
			tag:  Application(5),
			exp:  []byte{0x45},
		},
		{
			name: "context short",
			tag:  ContextSpecific(0),
			exp:  []byte{0x80},
		},
		{
			name: "private short",
			tag:  Private(30),
			exp:  []byte{0xDE},
		},
		{
			name: "constructed sequence",
			tag:  TagSequence,
			exp:  []byte{0x30},
		},
		{
			name: "constructed application",
			tag:  Application(15).WithConstructed(true),
			exp:  []byte{0x6F},
		},
		{
			name: "universal multi byte one group",
			tag:  Universal(34),
			exp:  []byte{0x1F, 0x22},
		},
		{
			name: "universal multi byte boundary",
			tag:  Universal(31),
			exp:  []byte{0x1F, 0x1F},
		},
		{
			name: "universal multi byte max one group",
			tag:  Universal(127),
			exp:  []byte{0x1F, 0x7F},
		},
		{
			name: "universal multi byte two groups",
			tag:  Universal(170),
			exp:  []byte{0x1F, 0x81, 0x2A},
		},
		{
			name: "universal multi byte min two groups",
			tag:  Universal(128),
			exp:  []byte{0x1F, 0x81, 0x00},
		},
		{
			name: "application multi byte",
			tag:  Application(102),
			exp:  []byte{0x5F, 0x66},
		},
		{
			name: "context multi byte",
			tag:  ContextSpecific(102),
			exp:  []byte{0x9F, 0x66},
		},
		{
			name: "private multi byte",
			tag:  Private(102),
			exp:  []byte{0xDF, 0x66},
		},
		{
			name: "constructed multi byte",
			tag:  ContextSpecific(170).WithConstructed(true),
			exp:  []byte{0xBF, 0x81, 0x2A},
		},
		{
			name: "max number",
			tag:  Universal(0xFFFFFFFF),
			exp:  []byte{0x1F, 0x8F, 0xFF, 0xFF, 0xFF, 0x7F},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, len(tc.exp), tc.tag.EncodedLen())

			b := make([]byte, tc.tag.EncodedLen())
			putTag(b, tc.tag)
			assert.Equal(t, tc.exp, b)

			got, n, err := parseTag(tc.exp)
			require.NoError(t, err)
			assert.Equal(t, len(tc.exp), n)
			assert.Equal(t, tc.tag, got)
		})
	}
}

func TestTag_parseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		err  error
	}{
		{
			name: "empty",
			in:   nil,
			err:  ErrIncomplete,
		},
		{
			name: "truncated extension",
			in:   []byte{0x1F},
			err:  ErrIncomplete,
		},
		{
			name: "truncated continuation",
			in:   []byte{0x1F, 0x81},
			err:  ErrIncomplete,
		},
		{
			name: "padded lead continuation",
			in:   []byte{0x1F, 0x80, 0x01},
			err:  ErrMalformedTag,
		},
		{
			name: "zero continuation",
			in:   []byte{0x1F, 0x00},
			err:  ErrMalformedTag,
		},
		{
			name: "number overflows uint32",
			in:   []byte{0x1F, 0x90, 0x80, 0x80, 0x80, 0x00},
			err:  ErrMalformedTag,
		},
		{
			name: "unterminated within budget",
			in:   []byte{0x1F, 0x81, 0x81, 0x81, 0x81, 0x81, 0x81, 0x81},
			err:  ErrMalformedTag,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := parseTag(tc.in)
			require.Error(t, err)
			assert.True(t, Is(err, tc.err), "%+v", err)
		})
	}
}

func TestTag_String(t *testing.T) {
	assert.Equal(t, "6F", Application(15).WithConstructed(true).String())
	assert.Equal(t, "5F2A", Application(42).String())
	assert.Equal(t, "30", TagSequence.String())
	assert.Equal(t, "01", TagBoolean.String())
}

func TestTag_Matches(t *testing.T) {
	assert.True(t, Application(5).Matches(Application(5)))
	assert.False(t, Application(5).Matches(Application(5).WithConstructed(true)))
	assert.False(t, Application(5).Matches(ContextSpecific(5)))
	assert.False(t, Application(5).Matches(Application(6)))
}

func TestClass_String(t *testing.T) {
	assert.Equal(t, "Universal", ClassUniversal.String())
	assert.Equal(t, "Application", ClassApplication.String())
	assert.Equal(t, "ContextSpecific", ClassContextSpecific.String())
	assert.Equal(t, "Private", ClassPrivate.String())
}
