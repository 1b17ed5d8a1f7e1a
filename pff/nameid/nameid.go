// Package nameid implements the container-scoped name-to-id map (§4.4),
// which resolves named MAPI properties (GUID + either a numeric id or a
// UTF-16 string name) to the numeric entry_type slot a record entry
// actually carries on the wire. Grounded on
// original_source/libpff/libpff_record_set.c's name_to_id_map_entry
// cross-references and original_source/libpff/libpff_types.h's
// identifier-format discriminants; the GUID-scoped registry itself
// generalizes the teacher's flat Mapi-int64 property switch
// (models/message.go's SetProperties) into a proper lookup table.
package nameid

import (
	"github.com/google/uuid"

	"github.com/pffcore/pffcore/pff"
)

const op = "nameid"

// GUID identifies the property set a named property belongs to (e.g.
// PS_PUBLIC_STRINGS, PS_INTERNET_HEADERS). google/uuid.UUID is byte-
// compatible with a MAPI GUID's field layout.
type GUID = uuid.UUID

// Kind discriminates a numeric-named from a string-named entry, matching
// the two name-to-id map entry variants libpff distinguishes by
// identifier format.
type Kind uint8

const (
	KindNumeric Kind = iota
	KindString
)

// Entry is one binding in the name-to-id map: (GUID, Kind, Numeric|Name)
// resolving to the numeric property id the record entry actually carries.
type Entry struct {
	GUID       GUID
	Kind       Kind
	Numeric    uint32 // valid when Kind == KindNumeric; the LID
	Name       string // valid when Kind == KindString
	PropertyID uint32 // the assigned numeric slot, >= 0x8000
}

// Map is the container-wide name-to-id map. Handles into it are opaque
// integer indices (not pointers), so a record entry can carry a stable
// back-reference without libpff's C cyclic-pointer ownership.
type Map struct {
	entries    []Entry
	byNumeric  map[numericKey]int
	byString   map[stringKey]int
	byProperty map[uint32]int
}

type numericKey struct {
	guid    GUID
	numeric uint32
}

type stringKey struct {
	guid GUID
	name string
}

// NewMap creates an empty name-to-id map.
func NewMap() *Map {
	return &Map{
		byNumeric:  make(map[numericKey]int),
		byString:   make(map[stringKey]int),
		byProperty: make(map[uint32]int),
	}
}

// Add registers a binding and returns its stable handle (an index into the
// map, valid for the map's lifetime). A duplicate (GUID, Numeric) or (GUID,
// Name) pair within the same Kind is rejected with a KindState error rather
// than overwriting the earlier binding's handle.
func (m *Map) Add(e Entry) (int, error) {
	switch e.Kind {
	case KindNumeric:
		if _, exists := m.byNumeric[numericKey{e.GUID, e.Numeric}]; exists {
			return 0, pff.Newf(op+".Add", pff.KindState, "duplicate numeric binding: guid %s, lid %d", e.GUID, e.Numeric)
		}
	case KindString:
		if _, exists := m.byString[stringKey{e.GUID, e.Name}]; exists {
			return 0, pff.Newf(op+".Add", pff.KindState, "duplicate string binding: guid %s, name %q", e.GUID, e.Name)
		}
	}
	handle := len(m.entries)
	m.entries = append(m.entries, e)
	switch e.Kind {
	case KindNumeric:
		m.byNumeric[numericKey{e.GUID, e.Numeric}] = handle
	case KindString:
		m.byString[stringKey{e.GUID, e.Name}] = handle
	}
	m.byProperty[e.PropertyID] = handle
	return handle, nil
}

// Get dereferences a handle returned by Add.
func (m *Map) Get(handle int) (Entry, error) {
	if handle < 0 || handle >= len(m.entries) {
		return Entry{}, pff.Newf(op+".Get", pff.KindArgument, "invalid handle %d", handle)
	}
	return m.entries[handle], nil
}

// LookupByNumeric resolves a (GUID, LID) pair to its binding.
func (m *Map) LookupByNumeric(guid GUID, numeric uint32) (Entry, bool) {
	idx, ok := m.byNumeric[numericKey{guid, numeric}]
	if !ok {
		return Entry{}, false
	}
	return m.entries[idx], true
}

// LookupByName resolves a (GUID, name) pair to its binding.
func (m *Map) LookupByName(guid GUID, name string) (Entry, bool) {
	idx, ok := m.byString[stringKey{guid, name}]
	if !ok {
		return Entry{}, false
	}
	return m.entries[idx], true
}

// LookupByPropertyID resolves the numeric wire-level property id (as seen
// in a record entry's entry_type) back to its full named-property binding,
// when one exists. Entry types below 0x8000 are never named properties and
// always return false.
func (m *Map) LookupByPropertyID(propertyID uint32) (Entry, bool) {
	if propertyID < 0x8000 {
		return Entry{}, false
	}
	idx, ok := m.byProperty[propertyID]
	if !ok {
		return Entry{}, false
	}
	return m.entries[idx], true
}

// Len returns the number of bindings registered in the map.
func (m *Map) Len() int { return len(m.entries) }
