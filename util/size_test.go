package util

import "testing"

func TestParseSize(t *testing.T) {
	const fallback = int64(42)
	tests := []struct {
		input string
		want  int64
	}{
		{"10MB", 10 << 20},
		{"512kb", 512 << 10},
		{"2GB", 2 << 30},
		{"1024", 1024},
		{"64B", 64},
		{"  1 MB ", 1 << 20},
		{"", fallback},
		{"lots", fallback},
		{"-5MB", fallback},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseSize(tt.input, fallback); got != tt.want {
				t.Errorf("ParseSize(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}
