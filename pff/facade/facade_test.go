package facade

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pffcore/pffcore/pff"
	"github.com/pffcore/pffcore/pff/recordentry"
	"github.com/pffcore/pffcore/pff/recordset"
)

type fakeTableReader struct {
	sets map[uint32][]*recordset.RecordSet
}

func (f *fakeTableReader) ReadRecordSets(descriptorIdentifier uint32, dataIdentifier uint64, localDescriptorsIdentifier uint64, recovered bool) ([]*recordset.RecordSet, error) {
	return f.sets[descriptorIdentifier], nil
}

func subjectRow(subject string) *recordset.RecordSet {
	rs := recordset.New(1252)
	e := recordentry.New(1252)
	e.SetIdentifier(recordentry.Identifier{Format: pff.FormatMAPIProperty, EntryType: pff.EntryTypeSubject, ValueType: uint32(pff.ValueTypeString)})
	e.SetData(append([]byte(subject), 0))
	rs.AppendEntry(e)
	return rs
}

func TestFile_Open_RejectsNilCollaborators(t *testing.T) {
	_, err := Open(nil, &fakeTableReader{}, nil)
	require.Error(t, err)
	assert.True(t, pff.Is(err, pff.KindArgument))

	_, err = Open(strings.NewReader("x"), nil, nil)
	require.Error(t, err)
	assert.True(t, pff.Is(err, pff.KindArgument))
}

func TestItemByIdentifier_LazyRecordSet(t *testing.T) {
	tr := &fakeTableReader{sets: map[uint32][]*recordset.RecordSet{
		7: {subjectRow("hello")},
	}}
	f, err := Open(strings.NewReader("root"), tr, nil)
	require.NoError(t, err)

	item := f.ItemByIdentifier(7, 0, 0, false)
	assert.Equal(t, uint32(7), item.Identifier())

	n, err := item.NumberOfRecordSets()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	entry, result, err := item.RecordEntryByType(0, pff.EntryTypeSubject, pff.ValueTypeString, 0)
	require.NoError(t, err)
	assert.Equal(t, recordset.ResultFound, result)
	s, err := entry.AsUTF8String()
	require.NoError(t, err)
	assert.Equal(t, "hello\x00", s)
}

func TestRecordSet_ReadOnceCached(t *testing.T) {
	calls := 0
	tr := &countingTableReader{sets: []*recordset.RecordSet{subjectRow("x")}, calls: &calls}
	f, err := Open(strings.NewReader("root"), tr, nil)
	require.NoError(t, err)

	item := f.ItemByIdentifier(1, 0, 0, false)
	_, err = item.RecordSet(0)
	require.NoError(t, err)
	_, err = item.RecordSet(0)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

type countingTableReader struct {
	sets  []*recordset.RecordSet
	calls *int
}

func (c *countingTableReader) ReadRecordSets(descriptorIdentifier uint32, dataIdentifier uint64, localDescriptorsIdentifier uint64, recovered bool) ([]*recordset.RecordSet, error) {
	*c.calls++
	return c.sets, nil
}
