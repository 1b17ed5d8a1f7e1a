// Package facade is the public entry point into pffcore: File, Item,
// RecordSet and RecordEntry thin handles over the lower internal layers
// (itemvalues, recordset, recordentry), grounded on the external-facing
// surface §6 of the design describes and, at the call-shape level, on
// pypff's File/Item wrapper classes (pypff_file.c/pypff_item.c) — the
// Python bindings are the clearest illustration of what a caller-facing
// handle over libpff's internal item tree looks like, since libpff itself
// exposes this surface only through its opaque C handle types.
package facade

import (
	"io"

	"github.com/pffcore/pffcore/pff"
	"github.com/pffcore/pffcore/pff/config"
	"github.com/pffcore/pffcore/pff/external"
	"github.com/pffcore/pffcore/pff/itemvalues"
	"github.com/pffcore/pffcore/pff/recordentry"
	"github.com/pffcore/pffcore/pff/recordset"
)

const op = "facade"

// RecordSet is the public alias over the internal tabular record set type.
type RecordSet = recordset.RecordSet

// RecordEntry is the public alias over the internal record entry type.
type RecordEntry = recordentry.Entry

// File is the root handle over one open PFF/PST/OST container. It owns no
// parsing logic of its own: the actual page/table decode is delegated to
// the external.TableReader and external.ItemTree collaborators supplied
// at Open time, matching §1's scoping of the NDB/BTree page format as
// out of this core's responsibility.
//
// SPEC deviation, recorded here and in DESIGN.md: the originally-sketched
// facade.Open(r io.ReaderAt, opts ...config.Option) signature implied File
// itself resolves descriptor identifiers to data without an explicit
// collaborator parameter. That is only possible if File silently builds
// its own NDB reader internally, which would smuggle the out-of-scope
// container-format parser back in through the front door. Open instead
// takes the TableReader/ItemTree collaborators explicitly, the same way
// itemvalues.Read and attachment.ResolveEmbeddedItem already do.
type File struct {
	root        io.ReaderAt
	cfg         *config.Config
	tableReader external.TableReader
	itemTree    external.ItemTree
}

// Open constructs a File over an already-open container reader, wiring
// the supplied collaborators. opts configure ascii codepage defaults,
// logging, and recovered-item policy (pff/config).
func Open(root io.ReaderAt, tableReader external.TableReader, itemTree external.ItemTree, opts ...config.Option) (*File, error) {
	if root == nil {
		return nil, pff.Newf(op+".Open", pff.KindArgument, "nil root reader")
	}
	if tableReader == nil {
		return nil, pff.Newf(op+".Open", pff.KindArgument, "nil table reader")
	}
	return &File{
		root:        root,
		cfg:         config.New(opts...),
		tableReader: tableReader,
		itemTree:    itemTree,
	}, nil
}

// Config returns the file's resolved configuration.
func (f *File) Config() *config.Config { return f.cfg }

// Item is a borrowed handle over one node of the container's item tree
// (a message, folder, attachment or recipient row). An Item's record
// sets are materialised lazily, on first access, exactly like the
// itemvalues.ItemValues it wraps.
type Item struct {
	file       *File
	identifier uint32
	values     *itemvalues.ItemValues
}

// ItemByIdentifier resolves a descriptor identifier to an Item handle.
// dataIdentifier and localDescriptorsIdentifier are the identifiers the
// caller's external.ItemTree/descriptor-index collaborator already
// resolved for this descriptor; pffcore does not re-derive them, since
// doing so would require the out-of-scope NDB/BTree decode.
func (f *File) ItemByIdentifier(identifier uint32, dataIdentifier uint64, localDescriptorsIdentifier uint64, recovered bool) Item {
	return Item{
		file:       f,
		identifier: identifier,
		values:     itemvalues.New(identifier, dataIdentifier, localDescriptorsIdentifier, recovered, f.cfg),
	}
}

// Identifier returns the item's descriptor identifier.
func (i Item) Identifier() uint32 { return i.identifier }

// NumberOfRecordSets returns the number of record sets in the item's
// property table, reading it on first access.
func (i Item) NumberOfRecordSets() (int, error) {
	return i.values.NumberOfRecordSets(i.file.tableReader)
}

// RecordSet returns the record set at the given index, reading the
// item's property table on first access.
func (i Item) RecordSet(index int) (*RecordSet, error) {
	return i.values.RecordSet(i.file.tableReader, index)
}

// RecordEntryByType looks up a record entry in the item's record set at
// recordSetIndex, reading the table on first access.
func (i Item) RecordEntryByType(recordSetIndex int, entryType uint32, valueType pff.ValueType, flags recordset.LookupFlags) (*RecordEntry, recordset.Result, error) {
	return i.values.RecordEntryByType(i.file.tableReader, recordSetIndex, entryType, valueType, flags)
}

// ItemTree exposes the file's item tree collaborator, for callers (e.g.
// pff/attachment.ResolveEmbeddedItem) that need to resolve a sibling
// node by identifier.
func (i Item) ItemTree() external.ItemTree { return i.file.itemTree }
