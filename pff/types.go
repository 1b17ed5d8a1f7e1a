// Package pff holds the type codes, identifiers and error taxonomy shared
// across the decoding core.
package pff

// ValueType is a MAPI property value type code (u32 on the wire).
type ValueType uint32

// Value type codes, as used throughout MS-OXCDATA / MS-OXPROPS and mirrored
// by libpff's LIBPFF_VALUE_TYPE_* constants.
const (
	ValueTypeUnspecified    ValueType = 0x0000
	ValueTypeNull           ValueType = 0x0001
	ValueTypeInteger16Bit   ValueType = 0x0002
	ValueTypeInteger32Bit   ValueType = 0x0003
	ValueTypeFloat32Bit     ValueType = 0x0004
	ValueTypeDouble64Bit    ValueType = 0x0005
	ValueTypeCurrency       ValueType = 0x0006
	ValueTypeFloatingtime   ValueType = 0x0007
	ValueTypeErrorCode      ValueType = 0x000a
	ValueTypeBoolean        ValueType = 0x000b
	ValueTypeObject         ValueType = 0x000d
	ValueTypeInteger64Bit   ValueType = 0x0014
	ValueTypeString         ValueType = 0x001e // PT_STRING8, codepage-dependent
	ValueTypeUnicodeString  ValueType = 0x001f // PT_UNICODE, UTF-16LE
	ValueTypeFiletime       ValueType = 0x0040
	ValueTypeGUID           ValueType = 0x0048
	ValueTypeServerID       ValueType = 0x00fb
	ValueTypeRestriction    ValueType = 0x00fd
	ValueTypeRuleAction     ValueType = 0x00fe
	ValueTypeBinaryData     ValueType = 0x0102

	// Multi-valued variants carry the MV bit (0x1000) or'd onto the base type.
	ValueTypeMultiValueFlag ValueType = 0x1000
)

// IsMultiValue reports whether a value type carries the multi-value bit.
func (v ValueType) IsMultiValue() bool {
	return v&ValueTypeMultiValueFlag != 0
}

// IdentifierFormat discriminates the shape of a record entry identifier.
// Only FormatMAPIProperty participates in type-based record set lookup.
type IdentifierFormat uint8

const (
	// FormatMAPIProperty identifies a standard (entry_type, value_type) tag.
	FormatMAPIProperty IdentifierFormat = iota
	// FormatNumericIndex identifies a table entry addressed only by its
	// position (e.g. a reserved/system column); not a lookup candidate.
	FormatNumericIndex
)

// AttachmentMethod is the value of the ATTACHMENT_METHOD MAPI property
// (entry type 0x3705), naming how an attachment's content is stored.
type AttachmentMethod uint32

const (
	AttachmentMethodNone            AttachmentMethod = 0x00000000
	AttachmentMethodByValue         AttachmentMethod = 0x00000001
	AttachmentMethodByReference     AttachmentMethod = 0x00000002
	AttachmentMethodByReferenceOnly AttachmentMethod = 0x00000004
	AttachmentMethodEmbeddedMessage AttachmentMethod = 0x00000005
	AttachmentMethodOLE             AttachmentMethod = 0x00000006
)

// Well-known MAPI entry types referenced directly by the attachment and
// item-values layers.
const (
	EntryTypeMessageClass             uint32 = 0x001a
	EntryTypeSubject                  uint32 = 0x0037
	EntryTypeAttachmentMethod         uint32 = 0x3705
	EntryTypeAttachmentDataObject     uint32 = 0x3701
	EntryTypeAttachmentFilenameShort  uint32 = 0x3704
	EntryTypeAttachmentFilenameLong   uint32 = 0x3707
	EntryTypeDisplayName              uint32 = 0x3001
	EntryTypeRTFCompressed            uint32 = 0x1009
)
