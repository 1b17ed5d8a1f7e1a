// Package recordset implements the tabular record set / record entry model
// described by §4.3, grounded directly on
// original_source/libpff/libpff_record_set.c: initialize/free/clone/resize
// and the exact get_entry_by_type / get_entry_by_utf8_name /
// get_entry_by_utf16_name lookup algorithms.
package recordset

import (
	"github.com/pffcore/pffcore/pff"
	"github.com/pffcore/pffcore/pff/nameid"
	"github.com/pffcore/pffcore/pff/recordentry"
	"github.com/pffcore/pffcore/pff/valuetype"
)

const op = "recordset"

// LookupFlags mirrors libpff's LIBPFF_ENTRY_VALUE_FLAG_* bits accepted by
// the by-type and by-name lookup routines.
type LookupFlags uint8

const (
	// IgnoreNameToIDMap forces entry_type-only matching even when a name-
	// to-id map entry is bound to a candidate (libpff_record_set.c:
	// LIBPFF_ENTRY_VALUE_FLAG_IGNORE_NAME_TO_ID_MAP).
	IgnoreNameToIDMap LookupFlags = 1 << iota
	// MatchAnyValueType relaxes the value_type equality check so any
	// value_type is accepted once the identifier matches
	// (LIBPFF_ENTRY_VALUE_FLAG_MATCH_ANY_VALUE_TYPE).
	MatchAnyValueType
)

func (f LookupFlags) has(bit LookupFlags) bool { return f&bit != 0 }

// RecordSet is an ordered collection of record entries sharing a single
// ascii_codepage, corresponding to one row of a PFF table (or, for an
// item's top-level properties, the item's own property set).
type RecordSet struct {
	asciiCodepage uint32
	entries       []*recordentry.Entry
}

// New creates an empty record set under the given ascii_codepage. Mirrors
// libpff_record_set_initialize.
func New(asciiCodepage uint32) *RecordSet {
	return &RecordSet{asciiCodepage: asciiCodepage}
}

// NumberOfEntries returns the number of entries currently in the set.
func (rs *RecordSet) NumberOfEntries() int { return len(rs.entries) }

// EntryByIndex returns the entry at the given zero-based position, or an
// error if index is out of range (libpff_record_set_get_entry_by_index).
func (rs *RecordSet) EntryByIndex(index int) (*recordentry.Entry, error) {
	if index < 0 || index >= len(rs.entries) {
		return nil, pff.Newf(op+".EntryByIndex", pff.KindArgument, "index %d out of range [0, %d)", index, len(rs.entries))
	}
	return rs.entries[index], nil
}

// AppendEntry adds entry to the set. Mirrors libpff_record_set_resize
// growing the backing array by one.
func (rs *RecordSet) AppendEntry(entry *recordentry.Entry) {
	rs.entries = append(rs.entries, entry)
}

// Resize grows or shrinks the set to exactly numberOfEntries, matching
// libpff_record_set_resize. Growing appends freshly initialised entries
// under the set's codepage; shrinking truncates and discards the tail.
func (rs *RecordSet) Resize(numberOfEntries int) error {
	if numberOfEntries < 0 {
		return pff.Newf(op+".Resize", pff.KindArgument, "negative size %d", numberOfEntries)
	}
	switch {
	case numberOfEntries == len(rs.entries):
		return nil
	case numberOfEntries < len(rs.entries):
		rs.entries = rs.entries[:numberOfEntries]
	default:
		for len(rs.entries) < numberOfEntries {
			rs.entries = append(rs.entries, recordentry.New(rs.asciiCodepage))
		}
	}
	return nil
}

// Clone produces a deep copy of the record set, matching
// libpff_record_set_clone: every entry is independently cloned so mutating
// the copy's read cursors never affects the source.
func (rs *RecordSet) Clone() *RecordSet {
	clone := &RecordSet{asciiCodepage: rs.asciiCodepage}
	clone.entries = make([]*recordentry.Entry, len(rs.entries))
	for i, e := range rs.entries {
		clone.entries[i] = e.Clone()
	}
	return clone
}

// Result is the tri-state outcome of a record set lookup, reshaped from
// libpff's 1/0/-1 sentinel into an explicit enum (§9 Design Notes).
type Result int

const (
	ResultError Result = iota - 1
	ResultNotFound
	ResultFound
)

// EntryByType looks up an entry by MAPI entry type and value type, applying
// the exact precedence of libpff_record_set_get_entry_by_type:
//
//  1. Entries whose identifier is not in MAPI-property format never match.
//  2. If IgnoreNameToIDMap is set, or the candidate carries no name-to-id
//     binding, or the binding is not NameToIDNumeric, match on entry_type
//     alone.
//  3. Otherwise (a numeric name-to-id binding is present and the flag is
//     not set) match the binding's Numeric field instead of entry_type —
//     this lets a named property claim the same numeric slot a standard
//     property would otherwise occupy.
//  4. In both cases the value_type must also match, unless MatchAnyValueType
//     is set.
//
// The first matching entry wins.
func (rs *RecordSet) EntryByType(entryType uint32, valueType pff.ValueType, flags LookupFlags) (*recordentry.Entry, Result, error) {
	for _, e := range rs.entries {
		if e.Identifier.Format != pff.FormatMAPIProperty {
			continue
		}
		identifierMatches := false
		if flags.has(IgnoreNameToIDMap) || e.NameToID == nil || e.NameToID.Kind != recordentry.NameToIDNumeric {
			identifierMatches = e.Identifier.EntryType == entryType
		} else {
			identifierMatches = e.NameToID.Numeric == uint32(entryType)
		}
		if !identifierMatches {
			continue
		}
		if !flags.has(MatchAnyValueType) && e.Identifier.ValueType != uint32(valueType) {
			continue
		}
		return e, ResultFound, nil
	}
	return nil, ResultNotFound, nil
}

// EntryByUTF8Name looks up an entry whose name-to-id binding is a string
// (NameToIDString) identifier matching name under the given GUID,
// mirroring libpff_record_set_get_entry_by_utf8_name. The binding's stored
// Name bytes are compared under NameToID.IsASCII: ASCII bytes are decoded
// via the set's codepage (matching the teacher's ascii_codepage-aware
// string decode) before comparison, UTF-16LE bytes are decoded straight to
// UTF-8 — in both cases by code-unit content, never by raw byte length,
// since an ASCII name and its UTF-16LE encoding never share a byte length.
func (rs *RecordSet) EntryByUTF8Name(guid nameid.GUID, name string, valueType pff.ValueType, flags LookupFlags) (*recordentry.Entry, Result, error) {
	for _, e := range rs.entries {
		if e.Identifier.Format != pff.FormatMAPIProperty {
			continue
		}
		if e.NameToID == nil || e.NameToID.Kind != recordentry.NameToIDString {
			continue
		}
		if e.NameToID.GUID != guid {
			continue
		}
		decoded, err := valuetype.CopyToUTF8(e.NameToID.Name, e.NameToID.IsASCII, rs.asciiCodepage)
		if err != nil || decoded != name {
			continue
		}
		if !flags.has(MatchAnyValueType) && e.Identifier.ValueType != uint32(valueType) {
			continue
		}
		return e, ResultFound, nil
	}
	return nil, ResultNotFound, nil
}

// EntryByUTF16Name is EntryByUTF8Name's UTF-16 code-unit counterpart,
// mirroring libpff_record_set_get_entry_by_utf16_name: name is compared by
// code-unit sequence rather than decoded-string equality, so callers
// holding a raw UTF-16 name (as read directly off the wire, before any
// UTF-8 conversion) do not pay for a round-trip decode to compare it.
func (rs *RecordSet) EntryByUTF16Name(guid nameid.GUID, name []uint16, valueType pff.ValueType, flags LookupFlags) (*recordentry.Entry, Result, error) {
	for _, e := range rs.entries {
		if e.Identifier.Format != pff.FormatMAPIProperty {
			continue
		}
		if e.NameToID == nil || e.NameToID.Kind != recordentry.NameToIDString {
			continue
		}
		if e.NameToID.GUID != guid {
			continue
		}
		units, err := valuetype.CopyToUTF16(e.NameToID.Name, e.NameToID.IsASCII, rs.asciiCodepage)
		if err != nil || !equalUTF16(units, name) {
			continue
		}
		if !flags.has(MatchAnyValueType) && e.Identifier.ValueType != uint32(valueType) {
			continue
		}
		return e, ResultFound, nil
	}
	return nil, ResultNotFound, nil
}

// equalUTF16 compares two UTF-16 code-unit sequences by length and content,
// never by the number of bytes they would occupy on the wire.
func equalUTF16(a, b []uint16) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Entries returns a read-only view over the record set's entries, in
// table order.
func (rs *RecordSet) Entries() []*recordentry.Entry {
	return rs.entries
}

// ASCIICodepage returns the code page new entries in this set inherit.
func (rs *RecordSet) ASCIICodepage() uint32 { return rs.asciiCodepage }
