// Package external declares the collaborator interfaces pffcore's item,
// attachment and facade layers depend on but do not implement themselves:
// table/record materialisation, local descriptor trees, embedded object
// streams, and the item tree a file exposes. Concrete implementations live
// closer to the container format (pff/ole, and a future pff/table reader);
// this package exists so those layers can be mocked in tests without
// pulling in mscfb, matching the teacher's use of the mscfb.Reader
// interface boundary in parsemsg.go's processEntries.
package external

import (
	"io"

	"github.com/pffcore/pffcore/pff/recordset"
)

// TableReader materialises the record sets backing one item's property
// table, deferring the actual page/row decode to whichever concrete
// reader a pff.File wires up. Grounded on libpff_table_read's role as
// libpff_item_values_read's sole collaborator.
type TableReader interface {
	// ReadRecordSets returns every record set for the item identified by
	// descriptorIdentifier, in on-disk order.
	ReadRecordSets(descriptorIdentifier uint32, dataIdentifier uint64, localDescriptorsIdentifier uint64, recovered bool) ([]*recordset.RecordSet, error)
}

// LocalDescriptorValue is one entry of an item's local descriptors tree:
// an identifier resolving to its own data/local-descriptors stream pair,
// used by attachments and recipient tables stored out-of-line from the
// item's main property table.
type LocalDescriptorValue struct {
	Identifier                uint64
	DataIdentifier            uint64
	LocalDescriptorsIdentifier uint64
}

// LocalDescriptorsTree resolves a local descriptor identifier to its
// value, mirroring libpff_table_get_local_descriptors_value_by_identifier.
type LocalDescriptorsTree interface {
	ValueByIdentifier(identifier uint64) (LocalDescriptorValue, bool, error)
}

// EmbeddedObjectStream exposes an OLE-embedded object's byte stream for
// sequential or random access, backing ATTACHMENT_METHOD_OLE attachments
// (§6 attachment.GetItem).
type EmbeddedObjectStream interface {
	io.ReadSeeker
	io.Closer
	Size() (int64, error)
}

// Node is one entry of an item tree: an identifier plus the children
// reachable from it, mirroring the folder/message/attachment/recipient
// hierarchy libpff_item_tree builds from the descriptors index. The
// Data/LocalDescriptors/Recovered accessors mirror the same descriptor
// fields facade.File.ItemByIdentifier takes directly — a Node is simply
// the tree's own record of what a caller would otherwise have to resolve
// by hand before constructing an Item over it.
type Node interface {
	Identifier() uint32
	DataIdentifier() uint64
	LocalDescriptorsIdentifier() uint64
	Recovered() bool
	Values() (ItemValuesHandle, error)
	Children() ([]Node, error)
}

// ItemTree resolves a descriptor identifier to an already-constructed
// node, mirroring libpff_item_tree_get_node_by_identifier — the first
// lookup libpff_attachment_get_item performs before falling back to the
// local descriptors tree.
type ItemTree interface {
	NodeByIdentifier(identifier uint32) (Node, bool)

	// AppendIdentifier grows the tree with a freshly resolved node,
	// mirroring libpff_item_tree_append_identifier: called once
	// LocalDescriptorsTree.ValueByIdentifier has resolved an identifier
	// the tree had no node for yet.
	AppendIdentifier(identifier uint32, dataIdentifier uint64, localDescriptorsIdentifier uint64, recovered bool) (Node, error)

	// NumberOfNodes reports how many nodes the tree currently holds, so a
	// caller of AppendIdentifier can assert it grew by exactly one
	// (libpff_attachment_get_item's sub-node-count invariant check).
	NumberOfNodes() int
}

// ItemValuesHandle is the minimal surface a Node exposes from its backing
// itemvalues.ItemValues, matching that type's NumberOfRecordSets/RecordSet
// methods exactly; declared here rather than imported from pff/itemvalues
// since that package already imports external, and the reverse import
// would be cyclic.
type ItemValuesHandle interface {
	NumberOfRecordSets(tr TableReader) (int, error)
	RecordSet(tr TableReader, index int) (*recordset.RecordSet, error)
}

// FileIOHandle is a minimal random-access byte source, matching
// libbfio_handle_t's surface as used by libpff_attached_file_io_handle.c.
// pff/attachment's FileIO does not take one: it wraps its own unexported
// source interface (ReadBufferAt, Size).
type FileIOHandle interface {
	io.ReaderAt
	Size() (int64, error)
}
