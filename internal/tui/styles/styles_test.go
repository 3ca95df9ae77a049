package styles

import "testing"

func TestPad(t *testing.T) {
	tests := []struct {
		s     string
		width int
		want  string
	}{
		{"abc", 5, "abc  "},
		{"abcdef", 3, "abc"},
		{"abc", 3, "abc"},
		{"abc", 0, ""},
		{"abc", -10, ""},
	}
	for _, tt := range tests {
		if got := Pad(tt.s, tt.width); got != tt.want {
			t.Errorf("Pad(%q, %d) = %q, want %q", tt.s, tt.width, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		s     string
		width int
		want  string
	}{
		{"abcdefgh", 6, "abc..."},
		{"abc", 6, "abc"},
		{"abcdefgh", 2, "ab"},
		{"abc", 0, ""},
		{"abc", -4, ""},
	}
	for _, tt := range tests {
		if got := Truncate(tt.s, tt.width); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.s, tt.width, got, tt.want)
		}
	}
}
