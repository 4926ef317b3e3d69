package sanitize

import (
	"testing"
)

func TestText_RemovesAllHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "script tag",
			input:    `Tech Meetup <script>alert('xss')</script> 2026`,
			expected: `Tech Meetup  2026`,
		},
		{
			name:     "inline event handler",
			input:    `<div onclick="alert('xss')">Downtown Hall</div>`,
			expected: `Downtown Hall`,
		},
		{
			name:     "formatting stripped",
			input:    `<b>Bold</b> <i>Italic</i> venue`,
			expected: `Bold Italic venue`,
		},
		{
			name:     "plain text unchanged",
			input:    `Just plain text`,
			expected: `Just plain text`,
		},
		{
			name:     "empty string",
			input:    ``,
			expected: ``,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(tt.input); got != tt.expected {
				t.Errorf("Text(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestHTML_KeepsSafeFormatting(t *testing.T) {
	input := `<p>A gathering of <strong>tech enthusiasts</strong>.</p><script>alert(1)</script>`
	expected := `<p>A gathering of <strong>tech enthusiasts</strong>.</p>`

	if got := HTML(input); got != expected {
		t.Errorf("HTML(%q) = %q, want %q", input, got, expected)
	}
}
