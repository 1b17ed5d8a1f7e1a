package valuetype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func utf16LEBytes(s string) []byte {
	var out []byte
	for _, r := range s {
		out = append(out, byte(r), 0)
	}
	out = append(out, 0, 0)
	return out
}

func TestGetUTF8Size_ASCII(t *testing.T) {
	data := []byte("Joachim Metz\x00")
	size, err := GetUTF8Size(data, true, 1252)
	require.NoError(t, err)
	assert.Equal(t, 13, size)

	s, err := CopyToUTF8(data, true, 1252)
	require.NoError(t, err)
	assert.Equal(t, "Joachim Metz\x00", s)
}

func TestGetUTF8Size_UTF16LE(t *testing.T) {
	data := utf16LEBytes("Joachim Metz")
	size, err := GetUTF8Size(data, false, 1252)
	require.NoError(t, err)
	assert.Equal(t, 13, size)
}

func TestCopyToUTF8_AbsentCodepageFallsBackToSniff(t *testing.T) {
	data := []byte("Caf\xe9 au lait, a perfectly ordinary sentence.")
	s, err := CopyToUTF8(data, true, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, s)
}

func TestCopyToUTF8_UnsupportedNonZeroCodepageFails(t *testing.T) {
	_, err := CopyToUTF8([]byte("x"), true, 999999)
	require.Error(t, err)
}

func TestGetUTF8Size_UnicodeSentinelReclassifies(t *testing.T) {
	data := utf16LEBytes("Joachim Metz")
	sizeHinted, err := GetUTF8Size(data, true, 1200)
	require.NoError(t, err)
	sizeExplicit, err := GetUTF8Size(data, false, 1252)
	require.NoError(t, err)
	assert.Equal(t, sizeExplicit, sizeHinted)
}

func TestGetUTF8Size_NilBuffer(t *testing.T) {
	size, err := GetUTF8Size(nil, true, 1252)
	require.NoError(t, err)
	assert.Equal(t, 0, size)

	s, err := CopyToUTF8(nil, true, 1252)
	require.NoError(t, err)
	assert.Equal(t, "", s)
}

func TestStringContainsZeroBytes(t *testing.T) {
	assert.False(t, StringContainsZeroBytes([]byte("Joachim Metz\x00")))
	assert.True(t, StringContainsZeroBytes(utf16LEBytes("Joachim Metz")))
}

func TestStringContainsZeroBytes_TrailingOnly(t *testing.T) {
	assert.False(t, StringContainsZeroBytes([]byte{0x41, 0x42, 0x00, 0x00, 0x00}))
}

func TestCopyTo32Bit(t *testing.T) {
	v, err := CopyTo32Bit([]byte{0x01, 0x00, 0x00, 0x00})
	require.NoError(t, err)
	assert.Equal(t, uint32(1), v)

	_, err = CopyTo32Bit([]byte{0x01, 0x00})
	require.Error(t, err)
}

func TestCopyTo64Bit(t *testing.T) {
	v, err := CopyTo64Bit([]byte{0x02, 0, 0, 0, 0, 0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), v)

	_, err = CopyTo64Bit([]byte{0x02})
	require.Error(t, err)
}

func TestGetBinarySize(t *testing.T) {
	assert.Equal(t, 0, GetBinarySize(nil))
	assert.Equal(t, 3, GetBinarySize([]byte{1, 2, 3}))
}

func TestUTF7Decode(t *testing.T) {
	// "+-" decodes to a literal '+', "+Jjo-" to U+263A, the rest is literal.
	data := []byte("Hi Mom +-+Jjo--!")
	s, err := decodeToUTF8(data, true, CodepageUTF7)
	require.NoError(t, err)
	assert.Equal(t, "Hi Mom +☺-!", s)
}
