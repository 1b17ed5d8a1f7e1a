// Package itemvalues implements the lazily-materialised property table
// behind a single item (message, folder, attachment or recipient row),
// grounded on original_source/libpff/libpff_item_values.c.
package itemvalues

import (
	"github.com/pffcore/pffcore/pff"
	"github.com/pffcore/pffcore/pff/config"
	"github.com/pffcore/pffcore/pff/external"
	"github.com/pffcore/pffcore/pff/recordentry"
	"github.com/pffcore/pffcore/pff/recordset"
)

const op = "itemvalues"

// ItemValues is the deferred-read property table for one item. A newly
// constructed ItemValues holds only the identifiers needed to locate its
// data on disk; the record sets themselves are read at most once, on
// first access, by whichever accessor needs them.
type ItemValues struct {
	DescriptorIdentifier       uint32
	DataIdentifier             uint64
	LocalDescriptorsIdentifier uint64
	Recovered                  bool

	cfg   *config.Config
	table *table
}

// New creates item values referencing the given descriptor. Mirrors
// libpff_item_values_initialize. cfg governs how Read treats a recovered
// descriptor; a nil cfg falls back to config.New()'s defaults.
func New(descriptorIdentifier uint32, dataIdentifier uint64, localDescriptorsIdentifier uint64, recovered bool, cfg *config.Config) *ItemValues {
	if cfg == nil {
		cfg = config.New()
	}
	return &ItemValues{
		DescriptorIdentifier:       descriptorIdentifier,
		DataIdentifier:             dataIdentifier,
		LocalDescriptorsIdentifier: localDescriptorsIdentifier,
		Recovered:                  recovered,
		cfg:                        cfg,
	}
}

// Read materialises the item's record sets via tr. Calling Read a second
// time fails with KindState ("table already set"), mirroring
// libpff_item_values_read's single-shot guard — callers that only need
// lazy-on-demand semantics should prefer the accessor methods below, which
// call Read internally exactly once.
//
// If the descriptor is Recovered and the configured RecoveredItemPolicy is
// RecoveredItemUnsupported (the only policy this core implements, §9), Read
// returns a KindState "recovered item decode unsupported" error instead of
// attempting to decode the item's table: libpff itself never resolved what
// recovery semantics should look like for an orphaned descriptor, and this
// core declines to guess.
func (iv *ItemValues) Read(tr external.TableReader) error {
	if iv.table != nil {
		return pff.Newf(op+".Read", pff.KindState, "item values - table already set")
	}
	iv.cfg.Notifier.Tracef("itemvalues: reading descriptor %d (data=%d, local-descriptors=%d, recovered=%t)",
		iv.DescriptorIdentifier, iv.DataIdentifier, iv.LocalDescriptorsIdentifier, iv.Recovered)
	if iv.Recovered && iv.cfg.RecoveredItems == config.RecoveredItemUnsupported {
		iv.cfg.Notifier.Tracef("itemvalues: descriptor %d is recovered, policy unsupported", iv.DescriptorIdentifier)
		return pff.Newf(op+".Read", pff.KindState, "recovered item decode unsupported")
	}
	t, err := readTable(tr, iv.DescriptorIdentifier, iv.DataIdentifier, iv.LocalDescriptorsIdentifier, iv.Recovered)
	if err != nil {
		return pff.Wrap(op+".Read", pff.KindIO, err)
	}
	iv.table = t
	iv.cfg.Notifier.Event().Uint32("descriptor", iv.DescriptorIdentifier).Int("record_sets", t.numberOfRecordSets()).Msg("itemvalues: table read")
	return nil
}

// ensureRead performs the lazy read-on-first-access libpff applies at
// every accessor entry point (libpff_item_values_get_number_of_record_sets
// et al.): if the table has not been read yet, read it now. When the
// config has AutoReadTables off, an unread table fails with KindState
// instead.
func (iv *ItemValues) ensureRead(tr external.TableReader) error {
	if iv.table != nil {
		return nil
	}
	if !iv.cfg.AutoReadTables {
		return pff.Newf(op+".ensureRead", pff.KindState, "item values - table not read and auto-read disabled")
	}
	return iv.Read(tr)
}

// NumberOfRecordSets returns the number of record sets in the item's
// property table, reading it on first call.
func (iv *ItemValues) NumberOfRecordSets(tr external.TableReader) (int, error) {
	if err := iv.ensureRead(tr); err != nil {
		return 0, err
	}
	return iv.table.numberOfRecordSets(), nil
}

// RecordSet returns the record set at the given index, reading the table
// on first call.
func (iv *ItemValues) RecordSet(tr external.TableReader, index int) (*recordset.RecordSet, error) {
	if err := iv.ensureRead(tr); err != nil {
		return nil, err
	}
	return iv.table.recordSet(index)
}

// LocalDescriptorsValueByIdentifier resolves identifier against tree, the
// item's local descriptors tree collaborator, mirroring
// libpff_table_get_local_descriptors_value_by_identifier's tri-state
// outcome. pff/attachment.ResolveEmbeddedItem does not go through this
// method: its local-descriptors fallback calls the tree's
// ValueByIdentifier directly.
func (iv *ItemValues) LocalDescriptorsValueByIdentifier(tree external.LocalDescriptorsTree, identifier uint64) (external.LocalDescriptorValue, recordset.Result, error) {
	if tree == nil {
		return external.LocalDescriptorValue{}, recordset.ResultError, pff.Newf(op+".LocalDescriptorsValueByIdentifier", pff.KindArgument, "nil local descriptors tree")
	}
	value, found, err := tree.ValueByIdentifier(identifier)
	if err != nil {
		return external.LocalDescriptorValue{}, recordset.ResultError, err
	}
	if !found {
		return external.LocalDescriptorValue{}, recordset.ResultNotFound, nil
	}
	return value, recordset.ResultFound, nil
}

// RecordEntryByType looks up a record entry in the one record set at the
// given record set index (other record sets are not searched), mirroring
// libpff_item_values_get_record_entry_by_type: the table is read lazily
// if needed, then the lookup is delegated to recordset.EntryByType.
func (iv *ItemValues) RecordEntryByType(tr external.TableReader, recordSetIndex int, entryType uint32, valueType pff.ValueType, flags recordset.LookupFlags) (*recordentry.Entry, recordset.Result, error) {
	rs, err := iv.RecordSet(tr, recordSetIndex)
	if err != nil {
		return nil, recordset.ResultError, err
	}
	entry, result, err := rs.EntryByType(entryType, valueType, flags)
	return entry, result, err
}
