package sanitizer

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	s := NewStrict(zerolog.Nop())

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "strips script tags and contents",
			input: "<script>alert('x')</script>Buy groceries",
			want:  "Buy groceries",
		},
		{
			name:  "plain text unchanged",
			input: "Buy groceries",
			want:  "Buy groceries",
		},
		{
			name:  "empty passes through",
			input: "",
			want:  "",
		},
		{
			name:  "strips markup but keeps inner text",
			input: "<b>Buy</b> groceries",
			want:  "Buy groceries",
		},
		{
			name:  "special characters survive",
			input: "milk & eggs",
			want:  "milk & eggs",
		},
		{
			name:  "entity-encoded script does not survive",
			input: "&lt;script&gt;alert('x')&lt;/script&gt;Buy groceries",
			want:  "Buy groceries",
		},
		{
			name:  "double-encoded markup does not survive",
			input: "&amp;lt;b&amp;gt;Buy&amp;lt;/b&amp;gt; groceries",
			want:  "Buy groceries",
		},
		{
			name:  "entity-encoded event handler does not survive",
			input: "&lt;img src=x onerror=alert(1)&gt;weekly run",
			want:  "weekly run",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Sanitize(tt.input))
		})
	}
}
