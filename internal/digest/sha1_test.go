package digest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHex(t *testing.T) {
	h := Hex("bob@x.com")
	assert.Len(t, h, 40)
	assert.Equal(t, "cd15", h[:4])
}

func TestHexEmpty(t *testing.T) {
	assert.Equal(t, "da39a3ee5e6b4b0d3255bfef95601890afd80709", Hex(""))
}
