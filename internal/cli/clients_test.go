package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abcdef", truncate("abcdef", 6))
	assert.Equal(t, "abc...", truncate("abcdefgh", 6))

	// Widths at or below the ellipsis length cut hard instead of panicking
	assert.Equal(t, "abc", truncate("abcdef", 3))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}
