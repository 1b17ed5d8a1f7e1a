package facade

import (
	"strings"

	"github.com/pffcore/pffcore/pff"
	"github.com/pffcore/pffcore/pff/attachment"
	"github.com/pffcore/pffcore/pff/external"
	"github.com/pffcore/pffcore/pff/recordset"
)

const attachmentOp = "facade.attachment"

// memSource is the attachment.FileIO data provider backed by an
// already-materialised byte slice (an attachment's BinaryData value).
type memSource struct{ data []byte }

func (m memSource) ReadBufferAt(offset int64, out []byte) (int, error) {
	if offset < 0 || offset > int64(len(m.data)) {
		return 0, pff.Newf(attachmentOp, pff.KindIO, "offset %d outside [0, %d]", offset, len(m.data))
	}
	return copy(out, m.data[offset:]), nil
}

func (m memSource) Size() (int64, error) { return int64(len(m.data)), nil }

// attachmentOf builds the lower-level attachment.Attachment dispatch
// handle the rest of this file delegates to, over the Item's own record
// set at index 0 (an attachment item carries exactly one record set,
// per libpff_attachment.c's convention of indexing the attachment's
// values table at 0).
func attachmentOf(item Item) (*attachment.Attachment, error) {
	rs, err := item.RecordSet(0)
	if err != nil {
		return nil, pff.Wrap(attachmentOp, pff.KindIO, err)
	}
	return attachment.New(rs), nil
}

// GetType resolves an attachment Item's higher-level Type, delegating to
// pff/attachment's method/data-object dispatch.
func GetType(item Item) (attachment.Type, error) {
	a, err := attachmentOf(item)
	if err != nil {
		return attachment.TypeUndetermined, err
	}
	return a.Type()
}

// GetDataSize returns the byte length of an attachment's
// ATTACHMENT_DATA_OBJECT value when that value is BinaryData-typed. An
// Object-typed data object (an EmbeddedMessage or OLE attachment) is not
// opened as a stream here and reports ResultNotFound, as does an
// attachment with no data object at all.
func GetDataSize(item Item) (uint64, recordset.Result, error) {
	rs, err := item.RecordSet(0)
	if err != nil {
		return 0, recordset.ResultError, pff.Wrap(attachmentOp+".GetDataSize", pff.KindIO, err)
	}
	entry, result, err := rs.EntryByType(pff.EntryTypeAttachmentDataObject, pff.ValueTypeBinaryData, 0)
	if err != nil {
		return 0, recordset.ResultError, pff.Wrap(attachmentOp+".GetDataSize", pff.KindIO, err)
	}
	if result != recordset.ResultFound {
		return 0, result, nil
	}
	return uint64(len(entry.Data())), recordset.ResultFound, nil
}

// DataReadBuffer reads up to len(out) bytes from the attachment's
// BinaryData value at offset 0, via a throwaway attachment.FileIO over
// the already-materialised value bytes.
func DataReadBuffer(item Item, out []byte) (int, error) {
	rs, err := item.RecordSet(0)
	if err != nil {
		return 0, pff.Wrap(attachmentOp+".DataReadBuffer", pff.KindIO, err)
	}
	entry, result, err := rs.EntryByType(pff.EntryTypeAttachmentDataObject, pff.ValueTypeBinaryData, 0)
	if err != nil {
		return 0, pff.Wrap(attachmentOp+".DataReadBuffer", pff.KindIO, err)
	}
	if result != recordset.ResultFound {
		return 0, pff.Newf(attachmentOp+".DataReadBuffer", pff.KindNotFound, "attachment has no binary data value")
	}
	io := attachment.NewFileIO(memSource{data: entry.Data()})
	if err := io.Open(attachment.AccessFlagRead); err != nil {
		return 0, err
	}
	defer io.Close()
	return io.ReadBuffer(out)
}

// DataSeekOffset is exposed for callers that want to read an
// attachment's BinaryData value from an arbitrary offset; it validates
// the requested offset against the value's size without retaining any
// adapter state across calls.
func DataSeekOffset(item Item, offset int64, whence int) (int64, error) {
	rs, err := item.RecordSet(0)
	if err != nil {
		return 0, pff.Wrap(attachmentOp+".DataSeekOffset", pff.KindIO, err)
	}
	entry, result, err := rs.EntryByType(pff.EntryTypeAttachmentDataObject, pff.ValueTypeBinaryData, 0)
	if err != nil {
		return 0, pff.Wrap(attachmentOp+".DataSeekOffset", pff.KindIO, err)
	}
	if result != recordset.ResultFound {
		return 0, pff.Newf(attachmentOp+".DataSeekOffset", pff.KindNotFound, "attachment has no binary data value")
	}
	io := attachment.NewFileIO(memSource{data: entry.Data()})
	if err := io.Open(attachment.AccessFlagRead); err != nil {
		return 0, err
	}
	defer io.Close()
	return io.SeekOffset(offset, whence)
}

// ItemResult reports whether GetItem resolved an embedded item, found
// none, or failed outright.
type ItemResult int

const (
	ItemError ItemResult = iota
	ItemHasAttachment
	ItemNoAttachmentData
)

// GetItem resolves the embedded message Item an EmbeddedMessage or OLE
// attachment references, using item's own file to materialise the
// resolved node as an Item handle. tree is consulted first; localDescriptors
// is the fallback collaborator attachment.ResolveEmbeddedItem uses when
// tree has no node for the embedded identifier yet (either may be nil,
// disabling that branch — ResolveEmbeddedItem reports KindNotFound/
// KindArgument accordingly rather than panicking).
func GetItem(item Item, tree external.ItemTree, localDescriptors external.LocalDescriptorsTree) (Item, ItemResult, error) {
	notifier := item.file.cfg.Notifier
	a, err := attachmentOf(item)
	if err != nil {
		return Item{}, ItemError, err
	}
	identifier, ok, err := a.EmbeddedObjectIdentifier()
	if err != nil {
		return Item{}, ItemError, err
	}
	if !ok {
		notifier.Tracef("attachment: item %d has no embedded object data", item.Identifier())
		return Item{}, ItemNoAttachmentData, nil
	}
	notifier.Tracef("attachment: resolving embedded identifier %d from item %d", identifier, item.Identifier())
	node, err := attachment.ResolveEmbeddedItem(identifier, tree, localDescriptors)
	if err != nil {
		return Item{}, ItemError, err
	}
	notifier.Event().Uint32("parent", item.Identifier()).Uint32("embedded", node.Identifier()).Msg("attachment: resolved embedded item")
	embedded := item.file.ItemByIdentifier(node.Identifier(), node.DataIdentifier(), node.LocalDescriptorsIdentifier(), node.Recovered())
	return embedded, ItemHasAttachment, nil
}

// Filename resolves an attachment's display filename: the long filename
// (PR_ATTACH_LONG_FILENAME) if present, else the short 8.3 filename
// (PR_ATTACH_FILENAME), matching how libpff's pypff bindings expose a
// single preferred name rather than requiring callers to juggle both
// properties themselves — supplemented beyond the distilled spec per
// pypff_attachment.c's get_name.
func Filename(item Item) (string, error) {
	rs, err := item.RecordSet(0)
	if err != nil {
		return "", pff.Wrap(attachmentOp+".Filename", pff.KindIO, err)
	}
	if entry, result, err := rs.EntryByType(pff.EntryTypeAttachmentFilenameLong, 0, recordset.MatchAnyValueType); err != nil {
		return "", pff.Wrap(attachmentOp+".Filename", pff.KindIO, err)
	} else if result == recordset.ResultFound {
		return decodeFilename(entry)
	}
	entry, result, err := rs.EntryByType(pff.EntryTypeAttachmentFilenameShort, 0, recordset.MatchAnyValueType)
	if err != nil {
		return "", pff.Wrap(attachmentOp+".Filename", pff.KindIO, err)
	}
	if result != recordset.ResultFound {
		return "", pff.Newf(attachmentOp+".Filename", pff.KindNotFound, "attachment has no filename property")
	}
	return decodeFilename(entry)
}

func decodeFilename(entry *RecordEntry) (string, error) {
	s, err := entry.AsUTF8String()
	if err != nil {
		return "", err
	}
	return strings.TrimRight(s, "\x00"), nil
}
