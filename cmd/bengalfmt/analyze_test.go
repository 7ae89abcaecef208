package main

import "testing"

func TestTopLevelSection(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"guides/setup.md", "guides"},
		{"./guides/setup.md", "guides"},
		{"reference/api/index.md", "reference"},
		{"readme.md", ""},
		{"./readme.md", ""},
	}

	for _, tt := range tests {
		if got := topLevelSection(tt.path); got != tt.want {
			t.Errorf("topLevelSection(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
