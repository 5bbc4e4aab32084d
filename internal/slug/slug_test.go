package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Simple", "Hello World", "hello-world"},
		{"Punctuation", "Hello, World!", "hello-world"},
		{"Diacritics", "Café Über", "cafe-uber"},
		{"Collapses separators", "a  --  b", "a-b"},
		{"Leading and trailing junk", "  !!hello!!  ", "hello"},
		{"Digits survive", "Top 10 posts", "top-10-posts"},
		{"Only junk", "!!!", ""},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Make(tt.input))
		})
	}
}

func TestFromContent(t *testing.T) {
	t.Run("Truncates body to 30 runes before slugifying", func(t *testing.T) {
		body := "Hello World! This is a long body of text that keeps going"
		// First 30 runes: "Hello World! This is a long bo"
		assert.Equal(t, "hello-world-this-is-a-long-bo", FromContent(body, "Some Title"))
	})

	t.Run("Short body is used whole", func(t *testing.T) {
		assert.Equal(t, "go", FromContent("Go", "ignored"))
	})

	t.Run("Falls back to title for blank body", func(t *testing.T) {
		assert.Equal(t, "my-title", FromContent("   ", "My Title"))
	})

	t.Run("Same opening text yields same slug", func(t *testing.T) {
		a := FromContent("Same opening text here, then different A", "")
		b := FromContent("Same opening text here, then different B", "")
		assert.Equal(t, a, b)
	})

	t.Run("Empty body and title", func(t *testing.T) {
		assert.Equal(t, "", FromContent("", ""))
	})
}
