package converters

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trims surrounding whitespace", "  hello  \n", "hello"},
		{"collapses spaces and tabs", "a \t  b", "a b"},
		{"windows line endings", "a\r\nb\r\nc", "a\nb\nc"},
		{"old mac line endings", "a\rb", "a\nb"},
		{"collapses blank runs", "a\n\n\n\n\nb", "a\n\nb"},
		{"trims each line", "a   \n   b", "a\nb"},
		{"drops NUL bytes", "a\x00b", "ab"},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeText(tt.in))
		})
	}
}

func TestNormalizeText_InvalidUTF8(t *testing.T) {
	out := NormalizeText("caf\xff\xfe latte")
	assert.Equal(t, "caf latte", out)
}

func TestNormalizeText_Idempotent(t *testing.T) {
	in := "  First   paragraph.\r\n\r\n\r\nSecond\tparagraph.  "
	once := NormalizeText(in)
	assert.Equal(t, once, NormalizeText(once))
}
