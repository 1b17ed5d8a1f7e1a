package itemvalues

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pffcore/pffcore/pff"
	"github.com/pffcore/pffcore/pff/external"
	"github.com/pffcore/pffcore/pff/recordentry"
	"github.com/pffcore/pffcore/pff/recordset"
)

type fakeTableReader struct {
	sets      []*recordset.RecordSet
	err       error
	callCount int
}

func (f *fakeTableReader) ReadRecordSets(descriptorIdentifier uint32, dataIdentifier uint64, localDescriptorsIdentifier uint64, recovered bool) ([]*recordset.RecordSet, error) {
	f.callCount++
	if f.err != nil {
		return nil, f.err
	}
	return f.sets, nil
}

func oneRowTable() *fakeTableReader {
	rs := recordset.New(1252)
	e := recordentry.New(1252)
	e.SetIdentifier(recordentry.Identifier{Format: pff.FormatMAPIProperty, EntryType: pff.EntryTypeSubject, ValueType: uint32(pff.ValueTypeString)})
	e.SetData([]byte("hello\x00"))
	rs.AppendEntry(e)
	return &fakeTableReader{sets: []*recordset.RecordSet{rs}}
}

func TestLazyReadOnFirstAccess(t *testing.T) {
	tr := oneRowTable()
	iv := New(1, 0, 0, false, nil)

	n, err := iv.NumberOfRecordSets(tr)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, tr.callCount)

	// Second accessor call must not re-read.
	_, err = iv.RecordSet(tr, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, tr.callCount)
}

func TestRead_SecondCallFails(t *testing.T) {
	tr := oneRowTable()
	iv := New(1, 0, 0, false, nil)

	require.NoError(t, iv.Read(tr))
	err := iv.Read(tr)
	require.Error(t, err)
	assert.True(t, pff.Is(err, pff.KindState))
}

func TestRecordEntryByType(t *testing.T) {
	tr := oneRowTable()
	iv := New(1, 0, 0, false, nil)

	entry, result, err := iv.RecordEntryByType(tr, 0, pff.EntryTypeSubject, pff.ValueTypeString, 0)
	require.NoError(t, err)
	assert.Equal(t, recordset.ResultFound, result)
	require.NotNil(t, entry)

	s, err := entry.AsUTF8String()
	require.NoError(t, err)
	assert.Equal(t, "hello\x00", s)
}

func TestRecordSet_IndexOutOfRange(t *testing.T) {
	tr := oneRowTable()
	iv := New(1, 0, 0, false, nil)
	_, err := iv.RecordSet(tr, 5)
	require.Error(t, err)
}

func TestRead_RecoveredItemIsUnsupported(t *testing.T) {
	tr := oneRowTable()
	iv := New(1, 0, 0, true, nil)

	err := iv.Read(tr)
	require.Error(t, err)
	assert.True(t, pff.Is(err, pff.KindState))
	assert.Equal(t, 0, tr.callCount)
}

type fakeLocalDescriptorsTree struct {
	values map[uint64]external.LocalDescriptorValue
}

func (f *fakeLocalDescriptorsTree) ValueByIdentifier(identifier uint64) (external.LocalDescriptorValue, bool, error) {
	v, ok := f.values[identifier]
	return v, ok, nil
}

func TestLocalDescriptorsValueByIdentifier(t *testing.T) {
	iv := New(1, 0, 0, false, nil)
	tree := &fakeLocalDescriptorsTree{values: map[uint64]external.LocalDescriptorValue{
		7: {Identifier: 7, DataIdentifier: 42},
	}}

	value, result, err := iv.LocalDescriptorsValueByIdentifier(tree, 7)
	require.NoError(t, err)
	assert.Equal(t, recordset.ResultFound, result)
	assert.Equal(t, uint64(42), value.DataIdentifier)

	_, result, err = iv.LocalDescriptorsValueByIdentifier(tree, 9)
	require.NoError(t, err)
	assert.Equal(t, recordset.ResultNotFound, result)

	_, result, err = iv.LocalDescriptorsValueByIdentifier(nil, 7)
	require.Error(t, err)
	assert.Equal(t, recordset.ResultError, result)
}
