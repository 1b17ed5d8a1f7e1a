// Package msgfmt adapts the teacher's CFBF-walking logic (originally
// parsemsg.go's processEntries/parseEntryName) into a concrete
// external.TableReader + external.ItemTree pair over a single .msg-shaped
// Compound File Binary Format container, so that cmd/pffdump has a real
// container format to exercise the facade against.
//
// A full PST/OST container's NDB page format and B-tree descriptor index
// are out of this core's scope (spec.md §1, "descriptor/offsets index
// trees ... page/block allocator") and stay external collaborators with
// no in-module implementation. A .msg file is itself a valid CFBF
// container carrying exactly one message's properties plus its
// attachments/recipients as nested storages, so it gives this module one
// concrete, fully-real collaborator to drive the CLI without reaching
// into the NDB page format at all.
package msgfmt

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/richardlehane/mscfb"

	"github.com/pffcore/pffcore/pff"
	"github.com/pffcore/pffcore/pff/external"
	"github.com/pffcore/pffcore/pff/recordentry"
	"github.com/pffcore/pffcore/pff/recordset"
)

const op = "msgfmt"

// PropertyStreamPrefix names a top-level or nested property stream,
// carried over verbatim from parsemsg.go.
const PropertyStreamPrefix = "__substg1.0_"

// attachmentStoragePrefix names a storage holding one attachment's own
// properties, carried over verbatim from parsemsg.go's recognition of
// "__attach_version1.0_#" paths.
const attachmentStoragePrefix = "__attach_version1.0_#"

// MessageIdentifier is the descriptor identifier the message's own
// top-level properties are read back under.
const MessageIdentifier uint32 = 0

// Reader is the fully in-memory, read-once index of one .msg file's
// property streams, grouped into one record set per item (the message
// itself at MessageIdentifier, one per attachment thereafter).
type Reader struct {
	groups      map[uint32]*recordset.RecordSet
	attachments []uint32 // in encounter order, for tree/list commands
}

// Open walks f's CFBF streams once, grouping __substg1.0_ property
// streams by their owning storage (message root, or one
// __attach_version1.0_#NNNNNNNN storage per attachment). Recipient
// storages are intentionally not decoded into items: spec.md's item
// tree covers messages/folders/attachments, and a recipient's property
// set is a per-message side table the distilled spec's Non-goals put
// outside the item tree proper.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pff.Wrap(op+".Open", pff.KindIO, err)
	}
	defer f.Close()

	doc, err := mscfb.New(f)
	if err != nil {
		return nil, pff.Wrap(op+".Open", pff.KindDecode, err)
	}

	r := &Reader{groups: map[uint32]*recordset.RecordSet{}}
	attachmentIDs := map[string]uint32{}

	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		if !strings.HasPrefix(entry.Name, PropertyStreamPrefix) {
			continue
		}
		owner, ok := ownerOf(entry.Path)
		if !ok {
			continue // recipient storage or other unrecognised nesting
		}
		identifier, isAttachment := attachmentIdentifier(owner, attachmentIDs, &r.attachments)
		if !isAttachment {
			identifier = MessageIdentifier
		}

		rec, err := decodeEntry(entry)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			continue
		}
		rs := r.groups[identifier]
		if rs == nil {
			rs = recordset.New(1252)
			r.groups[identifier] = rs
		}
		rs.AppendEntry(rec)
	}
	if _, ok := r.groups[MessageIdentifier]; !ok {
		return nil, pff.Newf(op+".Open", pff.KindDecode, "no message properties found in %s", path)
	}
	return r, nil
}

// ownerOf reports the storage a property stream is a direct child of:
// "" for the message root, the attachment storage name for an
// attachment's own properties, and ok=false for anything else
// (recipient storages, unexpected nesting depth).
func ownerOf(path []string) (owner string, ok bool) {
	switch len(path) {
	case 0:
		return "", true
	case 1:
		if strings.HasPrefix(path[0], attachmentStoragePrefix) {
			return path[0], true
		}
		return "", false
	default:
		return "", false
	}
}

func attachmentIdentifier(owner string, seen map[string]uint32, order *[]uint32) (uint32, bool) {
	if owner == "" {
		return 0, false
	}
	if id, ok := seen[owner]; ok {
		return id, true
	}
	// Identifiers 1.. are handed out in encounter order rather than parsed
	// from the "#NNNNNNNN" suffix: that suffix is mscfb's own storage
	// index, not a value this core's identifier space needs to preserve.
	id := uint32(len(seen)) + 1
	seen[owner] = id
	*order = append(*order, id)
	return id, true
}

// decodeEntry turns one "__substg1.0_CCCCTTTT" stream into a record
// entry, mirroring parseEntryName + extractMessageProperty but decoding
// straight into recordentry.Entry instead of models.MessageEntryProperty.
func decodeEntry(entry *mscfb.File) (*recordentry.Entry, error) {
	name := entry.Name[len(PropertyStreamPrefix):]
	if len(name) < 8 {
		return nil, nil
	}
	entryType, err := strconv.ParseUint(name[0:4], 16, 32)
	if err != nil {
		return nil, nil
	}
	valueType, err := strconv.ParseUint(name[4:8], 16, 32)
	if err != nil {
		return nil, nil
	}

	data, err := io.ReadAll(entry)
	if err != nil {
		return nil, pff.Wrap(op+".decodeEntry", pff.KindIO, err)
	}

	rec := recordentry.New(1252)
	rec.SetIdentifier(recordentry.Identifier{
		Format:    pff.FormatMAPIProperty,
		EntryType: uint32(entryType),
		ValueType: uint32(valueType),
	})
	rec.SetData(data)
	return rec, nil
}

// ReadRecordSets implements external.TableReader: each item (message or
// attachment) is exactly one record set, so dataIdentifier and
// localDescriptorsIdentifier are unused — they would matter for a real
// NDB-backed table reader chasing out-of-line block chains, which this
// already-fully-buffered CFBF adapter has no need for.
func (r *Reader) ReadRecordSets(descriptorIdentifier uint32, dataIdentifier uint64, localDescriptorsIdentifier uint64, recovered bool) ([]*recordset.RecordSet, error) {
	rs, ok := r.groups[descriptorIdentifier]
	if !ok {
		return nil, pff.Newf(op+".ReadRecordSets", pff.KindNotFound, "no item with identifier %d", descriptorIdentifier)
	}
	return []*recordset.RecordSet{rs}, nil
}

// Attachments returns the attachment identifiers encountered, in
// encounter order.
func (r *Reader) Attachments() []uint32 {
	out := make([]uint32, len(r.attachments))
	copy(out, r.attachments)
	return out
}

// node is the external.Node this adapter hands back from NodeByIdentifier:
// every stream this adapter decodes is already fully buffered in-memory
// under the owning group's own record set, so DataIdentifier/
// LocalDescriptorsIdentifier are always zero and Recovered is always
// false — there is no out-of-line data to chase and no recovery scan to
// have produced this node. Values/Children are not exercised by this
// adapter's dump-item path.
type node struct{ identifier uint32 }

func (n node) Identifier() uint32                  { return n.identifier }
func (n node) DataIdentifier() uint64              { return 0 }
func (n node) LocalDescriptorsIdentifier() uint64  { return 0 }
func (n node) Recovered() bool                     { return false }
func (n node) Values() (external.ItemValuesHandle, error) {
	return nil, pff.Newf(op+".node.Values", pff.KindState, "unsupported by the msg-format adapter")
}
func (n node) Children() ([]external.Node, error) {
	return nil, pff.Newf(op+".node.Children", pff.KindState, "unsupported by the msg-format adapter")
}

// NodeByIdentifier implements external.ItemTree over this reader's own
// group identifiers: every message/attachment identifier this reader
// produced already has a record set, so the lookup always succeeds for
// an identifier this reader itself handed out.
func (r *Reader) NodeByIdentifier(identifier uint32) (external.Node, bool) {
	if _, ok := r.groups[identifier]; !ok {
		return nil, false
	}
	return node{identifier: identifier}, true
}

// AppendIdentifier implements external.ItemTree's attach step for an
// identifier the local descriptors tree resolved but NodeByIdentifier
// didn't yet know about. This adapter's groups map already holds a record
// set per identifier it ever hands out, so "attaching" a new identifier
// here means registering an (empty, until some caller populates it)
// record set for it — there is no separate node-tree structure to grow
// the way a real NDB descriptor index would.
func (r *Reader) AppendIdentifier(identifier uint32, dataIdentifier uint64, localDescriptorsIdentifier uint64, recovered bool) (external.Node, error) {
	if _, exists := r.groups[identifier]; exists {
		return nil, pff.Newf(op+".AppendIdentifier", pff.KindState, "identifier %d already present in item tree", identifier)
	}
	r.groups[identifier] = recordset.New(1252)
	return node{identifier: identifier}, nil
}

// NumberOfNodes reports the number of distinct identifiers this reader
// currently has record sets for, standing in for the item tree's node
// count in AppendIdentifier's grow-by-one invariant check.
func (r *Reader) NumberOfNodes() int {
	return len(r.groups)
}
