package msgfmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOwnerOf(t *testing.T) {
	owner, ok := ownerOf(nil)
	assert.True(t, ok)
	assert.Equal(t, "", owner)

	owner, ok = ownerOf([]string{"__attach_version1.0_#00000000"})
	assert.True(t, ok)
	assert.Equal(t, "__attach_version1.0_#00000000", owner)

	_, ok = ownerOf([]string{"__recip_version1.0_#00000000"})
	assert.False(t, ok)

	_, ok = ownerOf([]string{"__attach_version1.0_#00000000", "nested"})
	assert.False(t, ok)
}

func TestAttachmentIdentifier(t *testing.T) {
	seen := map[string]uint32{}
	var order []uint32

	id, isAttachment := attachmentIdentifier("", seen, &order)
	assert.False(t, isAttachment)
	assert.Equal(t, uint32(0), id)

	id1, isAttachment := attachmentIdentifier("__attach_version1.0_#00000000", seen, &order)
	assert.True(t, isAttachment)
	assert.Equal(t, uint32(1), id1)

	id2, _ := attachmentIdentifier("__attach_version1.0_#00000001", seen, &order)
	assert.Equal(t, uint32(2), id2)

	// Revisiting the same owner returns the same identifier, not a new one.
	again, _ := attachmentIdentifier("__attach_version1.0_#00000000", seen, &order)
	assert.Equal(t, id1, again)

	assert.Equal(t, []uint32{1, 2}, order)
}
