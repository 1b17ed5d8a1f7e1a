package codepage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
)

func TestLookup_DirectTableHit(t *testing.T) {
	enc, ok := Lookup(1252)
	require.True(t, ok)
	assert.Equal(t, charmap.Windows1252, enc)

	enc, ok = Lookup(932)
	require.True(t, ok)
	assert.Equal(t, japanese.ShiftJIS, enc)
}

func TestLookup_Windows1255(t *testing.T) {
	// 1255 is in the direct table, so this resolves on the first lookup
	// tier.
	enc, ok := Lookup(1255)
	require.True(t, ok)
	assert.NotNil(t, enc)
}

func TestLookup_UnknownCodepageFails(t *testing.T) {
	_, ok := Lookup(999999)
	assert.False(t, ok)
}

func TestSniff_DetectsWindows1252(t *testing.T) {
	enc, ok := Sniff([]byte("Caf\xe9 au lait, a perfectly ordinary sentence."))
	require.True(t, ok)
	assert.NotNil(t, enc)
}

func TestSniff_DetectsUTF8(t *testing.T) {
	enc, ok := Sniff([]byte("Hello, world! This is plain ASCII/UTF-8 text."))
	require.True(t, ok)
	assert.NotNil(t, enc)
}

func TestSniff_EmptyDataFallsBack(t *testing.T) {
	_, ok := Sniff(nil)
	// chardet has nothing to work with; sniffFallback's windows-1252/
	// iso-8859-1 probes still resolve against an empty reader, so Sniff
	// is expected to still report a usable encoding rather than erroring.
	assert.True(t, ok)
}
