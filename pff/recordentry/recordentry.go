// Package recordentry implements the (identifier, value_type, raw_bytes,
// optional name_to_id_binding) tuple described by §4.2 of the design,
// grounded on original_source/pypff/pypff_record_entry.c's accessor surface
// and original_source/libpff/libpff_value_type.c's conversion semantics.
package recordentry

import (
	"io"

	"github.com/google/uuid"

	"github.com/pffcore/pffcore/pff"
	"github.com/pffcore/pffcore/pff/valuetype"
)

const op = "recordentry"

// NameToIDKind discriminates the two name-to-id map entry variants (§4.4).
type NameToIDKind uint8

const (
	NameToIDNumeric NameToIDKind = iota
	NameToIDString
)

// NameToIDBinding is the optional back-reference a record entry carries
// into the container-scoped name-to-id map.
type NameToIDBinding struct {
	GUID    uuid.UUID
	Kind    NameToIDKind
	Numeric uint32
	Name    []byte
	IsASCII bool
}

// Identifier tags a record entry. Only Format == pff.FormatMAPIProperty
// identifiers participate in type-based record set lookup (§4.3).
type Identifier struct {
	Format    pff.IdentifierFormat
	EntryType uint32
	ValueType uint32
}

// Entry is one property within a record set.
type Entry struct {
	Identifier    Identifier
	NameToID      *NameToIDBinding
	valueData     []byte // nil denotes an empty value, not an error
	asciiCodepage uint32
	cursor        int64
}

// New creates a default-initialised entry inheriting the given codepage,
// as libpff_record_set_initialize does for each newly allocated entry.
func New(asciiCodepage uint32) *Entry {
	return &Entry{asciiCodepage: asciiCodepage}
}

// SetIdentifier installs the entry's MAPI identifier.
func (e *Entry) SetIdentifier(id Identifier) { e.Identifier = id }

// SetData installs the entry's raw value bytes. A nil data denotes an
// explicitly empty value and is not an error.
func (e *Entry) SetData(data []byte) { e.valueData = data; e.cursor = 0 }

// SetNameToID installs the entry's name-to-id map back-reference.
func (e *Entry) SetNameToID(b *NameToIDBinding) { e.NameToID = b }

// EntryType returns the MAPI entry type, or ok=false for non-MAPI
// identifier formats.
func (e *Entry) EntryType() (uint32, bool) {
	if e.Identifier.Format != pff.FormatMAPIProperty {
		return 0, false
	}
	return e.Identifier.EntryType, true
}

// ValueType returns the MAPI value type, or ok=false for non-MAPI
// identifier formats.
func (e *Entry) ValueType() (uint32, bool) {
	if e.Identifier.Format != pff.FormatMAPIProperty {
		return 0, false
	}
	return e.Identifier.ValueType, true
}

// Data returns a zero-copy view of the underlying bytes; nil means an
// empty value.
func (e *Entry) Data() []byte { return e.valueData }

func (e *Entry) checkValueType(op string, want pff.ValueType) error {
	vt, ok := e.ValueType()
	if !ok {
		return pff.Newf(op, pff.KindTypeMismatch, "entry has no MAPI value type")
	}
	if pff.ValueType(vt) != want {
		return pff.Newf(op, pff.KindTypeMismatch, "value type 0x%04x does not match requested 0x%04x", vt, want)
	}
	return nil
}

// AsBoolean interprets the value as PT_BOOLEAN (1 byte, nonzero == true).
func (e *Entry) AsBoolean() (bool, error) {
	if err := e.checkValueType(op+".AsBoolean", pff.ValueTypeBoolean); err != nil {
		return false, err
	}
	if len(e.valueData) != 1 {
		return false, pff.Newf(op+".AsBoolean", pff.KindDecode, "invalid value data size %d, want 1", len(e.valueData))
	}
	return e.valueData[0] != 0, nil
}

// AsInt16 interprets the value as PT_I2.
func (e *Entry) AsInt16() (int16, error) {
	if err := e.checkValueType(op+".AsInt16", pff.ValueTypeInteger16Bit); err != nil {
		return 0, err
	}
	if len(e.valueData) != 2 {
		return 0, pff.Newf(op+".AsInt16", pff.KindDecode, "invalid value data size %d, want 2", len(e.valueData))
	}
	return int16(uint16(e.valueData[0]) | uint16(e.valueData[1])<<8), nil
}

// AsInt32 interprets the value as PT_LONG.
func (e *Entry) AsInt32() (int32, error) {
	if err := e.checkValueType(op+".AsInt32", pff.ValueTypeInteger32Bit); err != nil {
		return 0, err
	}
	v, err := valuetype.CopyTo32Bit(e.valueData)
	if err != nil {
		return 0, pff.Wrap(op+".AsInt32", pff.KindDecode, err)
	}
	return int32(v), nil
}

// AsInt64 interprets the value as PT_I8 or PT_CURRENCY (both 8-byte
// integers at the wire level; callers distinguish by ValueType()).
func (e *Entry) AsInt64() (int64, error) {
	vt, ok := e.ValueType()
	if !ok || (pff.ValueType(vt) != pff.ValueTypeInteger64Bit && pff.ValueType(vt) != pff.ValueTypeCurrency) {
		return 0, pff.Newf(op+".AsInt64", pff.KindTypeMismatch, "value type is not an 8-byte integer")
	}
	v, err := valuetype.CopyTo64Bit(e.valueData)
	if err != nil {
		return 0, pff.Wrap(op+".AsInt64", pff.KindDecode, err)
	}
	return int64(v), nil
}

// AsFloat interprets the value as PT_DOUBLE.
func (e *Entry) AsFloat() (float64, error) {
	if err := e.checkValueType(op+".AsFloat", pff.ValueTypeDouble64Bit); err != nil {
		return 0, err
	}
	f, err := valuetype.Double(e.valueData)
	if err != nil {
		return 0, pff.Wrap(op+".AsFloat", pff.KindDecode, err)
	}
	return f, nil
}

// AsFiletime interprets the value as PT_SYSTIME (§3: u64 100ns ticks since
// 1601-01-01 UTC).
func (e *Entry) AsFiletime() (uint64, error) {
	if err := e.checkValueType(op+".AsFiletime", pff.ValueTypeFiletime); err != nil {
		return 0, err
	}
	v, err := valuetype.CopyTo64Bit(e.valueData)
	if err != nil {
		return 0, pff.Wrap(op+".AsFiletime", pff.KindDecode, err)
	}
	return v, nil
}

// AsFloatingtime interprets the value as PT_APPTIME (§3: f64 days since
// 1899-12-30).
func (e *Entry) AsFloatingtime() (float64, error) {
	if err := e.checkValueType(op+".AsFloatingtime", pff.ValueTypeFloatingtime); err != nil {
		return 0, err
	}
	f, err := valuetype.Floatingtime(e.valueData)
	if err != nil {
		return 0, pff.Wrap(op+".AsFloatingtime", pff.KindDecode, err)
	}
	return f, nil
}

// AsSize returns the value's binary size as a uint64, regardless of type.
func (e *Entry) AsSize() (uint64, error) {
	return uint64(valuetype.GetBinarySize(e.valueData)), nil
}

// AsUTF8String decodes a PT_STRING8/PT_UNICODE value to UTF-8 under the
// entry's inherited ascii_codepage.
func (e *Entry) AsUTF8String() (string, error) {
	vt, ok := e.ValueType()
	isASCII := ok && pff.ValueType(vt) == pff.ValueTypeString
	s, err := valuetype.CopyToUTF8(e.valueData, isASCII, e.asciiCodepage)
	if err != nil {
		return "", pff.Wrap(op+".AsUTF8String", pff.KindDecode, err)
	}
	return s, nil
}

// AsUTF16String decodes a PT_STRING8/PT_UNICODE value to UTF-16 code units.
func (e *Entry) AsUTF16String() ([]uint16, error) {
	vt, ok := e.ValueType()
	isASCII := ok && pff.ValueType(vt) == pff.ValueTypeString
	units, err := valuetype.CopyToUTF16(e.valueData, isASCII, e.asciiCodepage)
	if err != nil {
		return nil, pff.Wrap(op+".AsUTF16String", pff.KindDecode, err)
	}
	return units, nil
}

// ReadBuffer reads up to len(out) bytes from the logical read cursor,
// advancing it, matching io.Reader semantics.
func (e *Entry) ReadBuffer(out []byte) (int, error) {
	if e.cursor >= int64(len(e.valueData)) {
		return 0, io.EOF
	}
	n := copy(out, e.valueData[e.cursor:])
	e.cursor += int64(n)
	return n, nil
}

// SeekOffset repositions the logical read cursor. whence follows
// io.Seeker's SeekStart/SeekCurrent/SeekEnd convention; seeking outside
// [0, len(value_data)] fails with KindIO (SeekFailed, §4.2).
func (e *Entry) SeekOffset(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
		base = 0
	case io.SeekCurrent:
		base = e.cursor
	case io.SeekEnd:
		base = int64(len(e.valueData))
	default:
		return 0, pff.Newf(op+".SeekOffset", pff.KindArgument, "invalid whence %d", whence)
	}
	next := base + offset
	if next < 0 || next > int64(len(e.valueData)) {
		return 0, pff.Newf(op+".SeekOffset", pff.KindIO, "seek to %d outside [0, %d]", next, len(e.valueData))
	}
	e.cursor = next
	return next, nil
}

// Clone duplicates the entry, including its read cursor, for independent
// iteration. The cloned value_data is a fresh copy: a record entry
// exclusively owns its value_data unless borrowing a table-backed page, and
// a clone must never alias the source's buffer across independent cursors.
func (e *Entry) Clone() *Entry {
	clone := &Entry{
		Identifier:    e.Identifier,
		asciiCodepage: e.asciiCodepage,
		cursor:        e.cursor,
	}
	if e.valueData != nil {
		clone.valueData = append([]byte(nil), e.valueData...)
	}
	if e.NameToID != nil {
		nb := *e.NameToID
		if e.NameToID.Name != nil {
			nb.Name = append([]byte(nil), e.NameToID.Name...)
		}
		clone.NameToID = &nb
	}
	return clone
}
