package bell

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBadgeCapsAtNinePlus(t *testing.T) {
	assert.Empty(t, Badge(0))
	assert.Empty(t, Badge(-3))

	assert.True(t, strings.Contains(Badge(1), "1"))
	assert.True(t, strings.Contains(Badge(9), "9"))
	assert.False(t, strings.Contains(Badge(9), "9+"))

	assert.True(t, strings.Contains(Badge(10), "9+"))
	assert.True(t, strings.Contains(Badge(250), "9+"))
	assert.False(t, strings.Contains(Badge(250), "250"))
}
