package recordset

import (
	"encoding/binary"
	"testing"
	"unicode/utf16"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pffcore/pffcore/pff"
	"github.com/pffcore/pffcore/pff/recordentry"
)

// utf16LEBytes encodes s as the raw little-endian UTF-16 byte sequence a
// name-to-id map's string binding stores on the wire.
func utf16LEBytes(s string) []byte {
	units := utf16.Encode([]rune(s))
	out := make([]byte, len(units)*2)
	for i, u := range units {
		binary.LittleEndian.PutUint16(out[i*2:], u)
	}
	return out
}

func mapiEntry(entryType uint32, valueType pff.ValueType, data []byte) *recordentry.Entry {
	e := recordentry.New(1252)
	e.SetIdentifier(recordentry.Identifier{
		Format:    pff.FormatMAPIProperty,
		EntryType: entryType,
		ValueType: uint32(valueType),
	})
	e.SetData(data)
	return e
}

func TestEntryByType_Basic(t *testing.T) {
	rs := New(1252)
	rs.AppendEntry(mapiEntry(pff.EntryTypeSubject, pff.ValueTypeString, []byte("hi")))

	e, result, err := rs.EntryByType(pff.EntryTypeSubject, pff.ValueTypeString, 0)
	require.NoError(t, err)
	assert.Equal(t, ResultFound, result)
	require.NotNil(t, e)
}

func TestEntryByType_NotFound(t *testing.T) {
	rs := New(1252)
	_, result, err := rs.EntryByType(0x9999, pff.ValueTypeString, 0)
	require.NoError(t, err)
	assert.Equal(t, ResultNotFound, result)
}

func TestEntryByType_ValueTypeMismatch(t *testing.T) {
	rs := New(1252)
	rs.AppendEntry(mapiEntry(pff.EntryTypeSubject, pff.ValueTypeString, []byte("hi")))

	_, result, err := rs.EntryByType(pff.EntryTypeSubject, pff.ValueTypeUnicodeString, 0)
	require.NoError(t, err)
	assert.Equal(t, ResultNotFound, result)
}

func TestEntryByType_MatchAnyValueType(t *testing.T) {
	rs := New(1252)
	rs.AppendEntry(mapiEntry(pff.EntryTypeSubject, pff.ValueTypeString, []byte("hi")))

	e, result, err := rs.EntryByType(pff.EntryTypeSubject, pff.ValueTypeUnicodeString, MatchAnyValueType)
	require.NoError(t, err)
	assert.Equal(t, ResultFound, result)
	require.NotNil(t, e)
}

func TestEntryByType_NumericNameToIDBinding(t *testing.T) {
	rs := New(1252)
	e := mapiEntry(0x8001, pff.ValueTypeString, []byte("custom"))
	e.SetNameToID(&recordentry.NameToIDBinding{Kind: recordentry.NameToIDNumeric, Numeric: 0x6666})
	rs.AppendEntry(e)

	// Binding present: a lookup for entry_type 0x6666 matches via the
	// binding's numeric value, not the raw 0x8001 entry_type.
	found, result, err := rs.EntryByType(0x6666, pff.ValueTypeString, 0)
	require.NoError(t, err)
	assert.Equal(t, ResultFound, result)
	assert.Same(t, e, found)

	// A raw lookup for 0x8001 fails once a numeric binding claims the slot.
	_, result, err = rs.EntryByType(0x8001, pff.ValueTypeString, 0)
	require.NoError(t, err)
	assert.Equal(t, ResultNotFound, result)
}

func TestEntryByType_IgnoreNameToIDMap(t *testing.T) {
	rs := New(1252)
	e := mapiEntry(0x8001, pff.ValueTypeString, []byte("custom"))
	e.SetNameToID(&recordentry.NameToIDBinding{Kind: recordentry.NameToIDNumeric, Numeric: 0x6666})
	rs.AppendEntry(e)

	found, result, err := rs.EntryByType(0x8001, pff.ValueTypeString, IgnoreNameToIDMap)
	require.NoError(t, err)
	assert.Equal(t, ResultFound, result)
	assert.Same(t, e, found)
}

func TestEntryByUTF8Name(t *testing.T) {
	rs := New(1252)
	guid := uuid.New()
	e := mapiEntry(0x8002, pff.ValueTypeString, []byte("value"))
	e.SetNameToID(&recordentry.NameToIDBinding{GUID: guid, Kind: recordentry.NameToIDString, Name: []byte("X-Custom-Header"), IsASCII: true})
	rs.AppendEntry(e)

	found, result, err := rs.EntryByUTF8Name(guid, "X-Custom-Header", pff.ValueTypeString, 0)
	require.NoError(t, err)
	assert.Equal(t, ResultFound, result)
	assert.Same(t, e, found)

	_, result, err = rs.EntryByUTF8Name(uuid.New(), "X-Custom-Header", pff.ValueTypeString, 0)
	require.NoError(t, err)
	assert.Equal(t, ResultNotFound, result)
}

func TestEntryByUTF8Name_UTF16LEBinding(t *testing.T) {
	rs := New(1252)
	guid := uuid.New()
	e := mapiEntry(0x8003, pff.ValueTypeUnicodeString, []byte("value"))
	e.SetNameToID(&recordentry.NameToIDBinding{GUID: guid, Kind: recordentry.NameToIDString, Name: utf16LEBytes("X-Héader"), IsASCII: false})
	rs.AppendEntry(e)

	// A raw byte-length comparison against the UTF-8 name would never
	// match (two bytes per code unit vs. one per ASCII byte, plus the
	// multi-byte é); the lookup must decode before comparing.
	found, result, err := rs.EntryByUTF8Name(guid, "X-Héader", pff.ValueTypeUnicodeString, 0)
	require.NoError(t, err)
	assert.Equal(t, ResultFound, result)
	assert.Same(t, e, found)
}

func TestEntryByUTF16Name(t *testing.T) {
	rs := New(1252)
	guid := uuid.New()
	e := mapiEntry(0x8004, pff.ValueTypeUnicodeString, []byte("value"))
	e.SetNameToID(&recordentry.NameToIDBinding{GUID: guid, Kind: recordentry.NameToIDString, Name: []byte("X-Custom-Header"), IsASCII: true})
	rs.AppendEntry(e)

	wantUnits := utf16.Encode([]rune("X-Custom-Header"))
	found, result, err := rs.EntryByUTF16Name(guid, wantUnits, pff.ValueTypeUnicodeString, 0)
	require.NoError(t, err)
	assert.Equal(t, ResultFound, result)
	assert.Same(t, e, found)

	_, result, err = rs.EntryByUTF16Name(guid, utf16.Encode([]rune("nope")), pff.ValueTypeUnicodeString, 0)
	require.NoError(t, err)
	assert.Equal(t, ResultNotFound, result)
}

func TestResizeGrowAndShrink(t *testing.T) {
	rs := New(1252)
	require.NoError(t, rs.Resize(3))
	assert.Equal(t, 3, rs.NumberOfEntries())

	require.NoError(t, rs.Resize(1))
	assert.Equal(t, 1, rs.NumberOfEntries())
}

func TestClone_Independence(t *testing.T) {
	rs := New(1252)
	rs.AppendEntry(mapiEntry(pff.EntryTypeSubject, pff.ValueTypeString, []byte("hi")))

	clone := rs.Clone()
	clone.entries[0].SetData([]byte("changed"))

	orig, err := rs.EntryByIndex(0)
	require.NoError(t, err)
	assert.Equal(t, []byte("hi"), orig.Data())
}

func TestEntryByIndex_OutOfRange(t *testing.T) {
	rs := New(1252)
	_, err := rs.EntryByIndex(0)
	require.Error(t, err)
	assert.True(t, pff.Is(err, pff.KindArgument))
}
