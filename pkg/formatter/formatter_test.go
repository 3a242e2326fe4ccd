package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	cases := map[int]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		1234567:  "1,234,567",
		-1234567: "-1,234,567",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatNumber(in), "FormatNumber(%d)", in)
	}
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "Great Charger IP-67", Preview("Great Charger\nIP-67", 40))
	assert.Equal(t, "abc", Preview("abcdef", 3))
	// cut on runes, not bytes
	assert.Equal(t, "סיי", Preview("סיימתי", 3))
	assert.Equal(t, "", Preview("", 40))
}
