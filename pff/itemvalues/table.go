package itemvalues

import (
	"github.com/pffcore/pffcore/pff"
	"github.com/pffcore/pffcore/pff/external"
	"github.com/pffcore/pffcore/pff/recordset"
)

// table holds the materialised record sets for one item, standing in for
// libpff_table_t. The teacher has no equivalent collaborator (parsemsg.go
// decodes each mscfb stream directly, with no table abstraction at all);
// this type is pffcore's own, shaped to match the call surface
// libpff_item_values.c expects of libpff_table_t.
type table struct {
	recordSets []*recordset.RecordSet
}

func readTable(tr external.TableReader, descriptorIdentifier uint32, dataIdentifier uint64, localDescriptorsIdentifier uint64, recovered bool) (*table, error) {
	if tr == nil {
		return nil, pff.Newf(op+".readTable", pff.KindArgument, "nil table reader")
	}
	recordSets, err := tr.ReadRecordSets(descriptorIdentifier, dataIdentifier, localDescriptorsIdentifier, recovered)
	if err != nil {
		return nil, err
	}
	return &table{recordSets: recordSets}, nil
}

func (t *table) numberOfRecordSets() int {
	return len(t.recordSets)
}

func (t *table) recordSet(index int) (*recordset.RecordSet, error) {
	if index < 0 || index >= len(t.recordSets) {
		return nil, pff.Newf(op+".recordSet", pff.KindArgument, "index %d out of range [0, %d)", index, len(t.recordSets))
	}
	return t.recordSets[index], nil
}
