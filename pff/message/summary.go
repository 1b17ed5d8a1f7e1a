// Package message extracts a typed summary of the well-known MAPI
// properties that make up an email message, adapting
// models/message.go's field list and SetProperties dispatch into a
// single read pass over a facade.Item's generic record set — the
// property identifiers it cares about are inherited from the teacher,
// but each value now comes from recordentry.Entry's grounded decoders
// instead of a 90-case switch over pre-decoded interface{} values.
package message

import (
	"strings"
	"time"

	"github.com/pffcore/pffcore/pff"
	"github.com/pffcore/pffcore/pff/facade"
	"github.com/pffcore/pffcore/pff/recordset"
	"github.com/pffcore/pffcore/pff/rtf"
)

// Well-known MAPI entry types this package reads, beyond the handful
// already declared in pff/types.go for the core decoding path.
const (
	entryTypeMessageClass          uint32 = 0x001a
	entryTypeSubject               uint32 = 0x0037
	entryTypeSenderEmailAddress    uint32 = 0x0c1f
	entryTypeSenderName            uint32 = 0x0c1a
	entryTypeDisplayTo             uint32 = 0x0e04
	entryTypeDisplayCC             uint32 = 0x0e03
	entryTypeDisplayBCC            uint32 = 0x0e02
	entryTypeBody                  uint32 = 0x1000
	entryTypeBodyHTML              uint32 = 0x1013
	entryTypeRTFCompressed         uint32 = 0x1009
	entryTypeTransportHeaders      uint32 = 0x007d
	entryTypeClientSubmitTime      uint32 = 0x0039
	entryTypeMessageDeliveryTime   uint32 = 0x0e06
	entryTypeCreationTime          uint32 = 0x3007
	entryTypeLastModificationTime  uint32 = 0x3008
	entryTypeHasAttachments        uint32 = 0x0e1b
)

// Summary is the typed view of an item's well-known message properties,
// all of them optional: an item missing a property simply leaves the
// corresponding field at its zero value.
type Summary struct {
	MessageClass            string
	Subject                 string
	SenderEmailAddress      string
	SenderName              string
	DisplayTo               string
	DisplayCC               string
	DisplayBCC              string
	Body                    string
	BodyHTML                string
	ConvertedBodyRTF        string // decompressed PR_RTF_COMPRESSED, raw RTF markup
	TransportMessageHeaders string
	ClientSubmitTime        time.Time
	MessageDeliveryTime     time.Time
	CreationTime            time.Time
	LastModificationTime    time.Time
	HasAttachments          bool
}

const op = "message.Summarize"

// Summarize reads item's first record set and populates every
// recognised well-known property found there. Unlike
// models.Message.SetProperties, a property that resolves to the wrong
// Go type is skipped rather than panicking on a failed type assertion:
// recordentry.Entry's As* accessors already return a typed decode error
// instead of leaving that to an untyped interface{} cast.
func Summarize(item facade.Item) (*Summary, error) {
	s := &Summary{}

	setString(item, entryTypeMessageClass, &s.MessageClass)
	setString(item, entryTypeSubject, &s.Subject)
	setString(item, entryTypeSenderEmailAddress, &s.SenderEmailAddress)
	setString(item, entryTypeSenderName, &s.SenderName)
	setString(item, entryTypeDisplayTo, &s.DisplayTo)
	setString(item, entryTypeDisplayCC, &s.DisplayCC)
	setString(item, entryTypeDisplayBCC, &s.DisplayBCC)
	setString(item, entryTypeBody, &s.Body)
	setString(item, entryTypeBodyHTML, &s.BodyHTML)
	setString(item, entryTypeTransportHeaders, &s.TransportMessageHeaders)

	setTime(item, entryTypeClientSubmitTime, &s.ClientSubmitTime)
	setTime(item, entryTypeMessageDeliveryTime, &s.MessageDeliveryTime)
	setTime(item, entryTypeCreationTime, &s.CreationTime)
	setTime(item, entryTypeLastModificationTime, &s.LastModificationTime)

	setBool(item, entryTypeHasAttachments, &s.HasAttachments)

	if s.BodyHTML == "" {
		if err := setConvertedBody(item, s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func lookup(item facade.Item, entryType uint32) (*facade.RecordEntry, bool) {
	entry, result, err := item.RecordEntryByType(0, entryType, 0, recordset.MatchAnyValueType)
	if err != nil || result != recordset.ResultFound {
		return nil, false
	}
	return entry, true
}

func setString(item facade.Item, entryType uint32, dst *string) {
	entry, ok := lookup(item, entryType)
	if !ok {
		return
	}
	if s, err := entry.AsUTF8String(); err == nil {
		*dst = strings.TrimRight(s, "\x00")
	}
}

func setTime(item facade.Item, entryType uint32, dst *time.Time) {
	entry, ok := lookup(item, entryType)
	if !ok {
		return
	}
	if ft, err := entry.AsFiletime(); err == nil {
		*dst = filetimeToTime(ft)
	}
}

func setBool(item facade.Item, entryType uint32, dst *bool) {
	entry, ok := lookup(item, entryType)
	if !ok {
		return
	}
	if b, err := entry.AsBoolean(); err == nil {
		*dst = b
	}
}

// setConvertedBody decompresses PR_RTF_COMPRESSED when no HTML body is
// present, mirroring the teacher's ConvertedBodyHTML fallback — renamed
// ConvertedBodyRTF here because pff/rtf.Decompress recovers RTF markup,
// not HTML; no RTF-to-HTML conversion is within this core's scope.
func setConvertedBody(item facade.Item, s *Summary) error {
	entry, ok := lookup(item, entryTypeRTFCompressed)
	if !ok {
		return nil
	}
	decompressed, err := rtf.Decompress(entry.Data())
	if err != nil {
		return pff.Wrap(op, pff.KindDecode, err)
	}
	s.ConvertedBodyRTF = string(decompressed)
	return nil
}

// filetimeToTime converts a MAPI PT_SYSTIME value (100ns ticks since
// 1601-01-01 UTC) to a time.Time, matching parsemsg.go's extractData
// PT_SYSTIME branch's epoch arithmetic exactly.
func filetimeToTime(ticks uint64) time.Time {
	const hundredNsPerMs = 10000
	const epochDeltaMs = 11644473600000
	ms := int64(ticks/hundredNsPerMs) - epochDeltaMs
	return time.Unix(0, ms*int64(time.Millisecond)).UTC()
}
