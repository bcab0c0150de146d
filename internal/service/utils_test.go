package service

import "testing"

func TestSanitizeUTF8(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain text", "plain text"},
		{"bad \xff byte", "bad  byte"},
		{"nul\x00inside", "nulinside"},
		{"Décision", "Décision"},
	}
	for _, tt := range tests {
		if got := sanitizeUTF8(tt.in); got != tt.want {
			t.Errorf("sanitizeUTF8(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 3, "hel"},
		{"héllo", 2, "hé"},
		{"hello", 0, ""},
	}
	for _, tt := range tests {
		if got := truncateRunes(tt.in, tt.n); got != tt.want {
			t.Errorf("truncateRunes(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
