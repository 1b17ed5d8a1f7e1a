package namedprops

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestName_KnownGUID(t *testing.T) {
	assert.Equal(t, "PS_PUBLIC_STRINGS", Name(PSPublicStrings))
	assert.Equal(t, "PS_INTERNET_HEADERS", Name(PSInternetHeaders))
}

func TestName_UnknownGUID(t *testing.T) {
	assert.Equal(t, "", Name(uuid.New()))
}
