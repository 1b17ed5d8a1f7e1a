package recordentry

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pffcore/pffcore/pff"
)

func newMAPIEntry(entryType uint32, valueType pff.ValueType, data []byte) *Entry {
	e := New(1252)
	e.SetIdentifier(Identifier{
		Format:    pff.FormatMAPIProperty,
		EntryType: entryType,
		ValueType: uint32(valueType),
	})
	e.SetData(data)
	return e
}

func TestEntryTypeValueType(t *testing.T) {
	e := newMAPIEntry(pff.EntryTypeSubject, pff.ValueTypeString, []byte("hi"))
	et, ok := e.EntryType()
	require.True(t, ok)
	assert.Equal(t, pff.EntryTypeSubject, et)

	vt, ok := e.ValueType()
	require.True(t, ok)
	assert.Equal(t, uint32(pff.ValueTypeString), vt)
}

func TestEntryTypeValueType_NonMAPIFormat(t *testing.T) {
	e := New(1252)
	e.SetIdentifier(Identifier{Format: pff.FormatNumericIndex})
	_, ok := e.EntryType()
	assert.False(t, ok)
	_, ok = e.ValueType()
	assert.False(t, ok)
}

func TestAsBoolean(t *testing.T) {
	e := newMAPIEntry(0x0001, pff.ValueTypeBoolean, []byte{0x01})
	v, err := e.AsBoolean()
	require.NoError(t, err)
	assert.True(t, v)

	e2 := newMAPIEntry(0x0001, pff.ValueTypeBoolean, []byte{0x00})
	v2, err := e2.AsBoolean()
	require.NoError(t, err)
	assert.False(t, v2)
}

func TestAsBoolean_WrongType(t *testing.T) {
	e := newMAPIEntry(0x0001, pff.ValueTypeInteger32Bit, []byte{0, 0, 0, 0})
	_, err := e.AsBoolean()
	require.Error(t, err)
	assert.True(t, pff.Is(err, pff.KindTypeMismatch))
}

func TestAsInt32(t *testing.T) {
	e := newMAPIEntry(0x0001, pff.ValueTypeInteger32Bit, []byte{0x2a, 0x00, 0x00, 0x00})
	v, err := e.AsInt32()
	require.NoError(t, err)
	assert.Equal(t, int32(42), v)
}

func TestAsInt64_Currency(t *testing.T) {
	e := newMAPIEntry(0x0001, pff.ValueTypeCurrency, []byte{1, 0, 0, 0, 0, 0, 0, 0})
	v, err := e.AsInt64()
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
}

func TestAsFiletime(t *testing.T) {
	e := newMAPIEntry(0x0001, pff.ValueTypeFiletime, []byte{1, 0, 0, 0, 0, 0, 0, 0})
	v, err := e.AsFiletime()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v)
}

func TestAsUTF8String_ASCII(t *testing.T) {
	e := newMAPIEntry(pff.EntryTypeSubject, pff.ValueTypeString, []byte("hello\x00"))
	s, err := e.AsUTF8String()
	require.NoError(t, err)
	assert.Equal(t, "hello\x00", s)
}

func TestAsUTF8String_Unicode(t *testing.T) {
	data := []byte{'h', 0, 'i', 0, 0, 0}
	e := newMAPIEntry(pff.EntryTypeSubject, pff.ValueTypeUnicodeString, data)
	s, err := e.AsUTF8String()
	require.NoError(t, err)
	assert.Equal(t, "hi\x00", s)
}

func TestReadBufferAndSeek(t *testing.T) {
	e := newMAPIEntry(0x0001, pff.ValueTypeBinaryData, []byte{1, 2, 3, 4, 5})
	buf := make([]byte, 2)
	n, err := e.ReadBuffer(buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []byte{1, 2}, buf)

	pos, err := e.SeekOffset(0, io.SeekStart)
	require.NoError(t, err)
	assert.Equal(t, int64(0), pos)

	n, err = e.ReadBuffer(buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []byte{1, 2}, buf)

	_, err = e.SeekOffset(100, io.SeekStart)
	require.Error(t, err)
	assert.True(t, pff.Is(err, pff.KindIO))
}

func TestReadBuffer_EOF(t *testing.T) {
	e := newMAPIEntry(0x0001, pff.ValueTypeBinaryData, []byte{1})
	buf := make([]byte, 4)
	n, err := e.ReadBuffer(buf)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = e.ReadBuffer(buf)
	assert.ErrorIs(t, err, io.EOF)
}

func TestClone_Independence(t *testing.T) {
	e := newMAPIEntry(0x0001, pff.ValueTypeBinaryData, []byte{1, 2, 3})
	clone := e.Clone()

	_, err := clone.ReadBuffer(make([]byte, 1))
	require.NoError(t, err)

	// Source cursor must be unaffected by reads against the clone.
	buf := make([]byte, 3)
	n, err := e.ReadBuffer(buf)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	clone.Data()[0] = 0xff
	assert.Equal(t, byte(1), e.Data()[0])
}

func TestAsSize(t *testing.T) {
	e := newMAPIEntry(0x0001, pff.ValueTypeBinaryData, []byte{1, 2, 3, 4})
	size, err := e.AsSize()
	require.NoError(t, err)
	assert.Equal(t, uint64(4), size)
}

func TestNameToIDBinding(t *testing.T) {
	e := New(1252)
	e.SetNameToID(&NameToIDBinding{Kind: NameToIDNumeric, Numeric: 0x8001})
	require.NotNil(t, e.NameToID)
	assert.Equal(t, uint32(0x8001), e.NameToID.Numeric)

	clone := e.Clone()
	clone.NameToID.Numeric = 0x9999
	assert.Equal(t, uint32(0x8001), e.NameToID.Numeric)
}
