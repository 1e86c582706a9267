package render

import "testing"

func TestBadge(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Go", "Go"},
		{"Kubernetes", "Kubern"},
		{"Tailwind CSS", "Tailwi"},
		{"日本語のテキスト", "日本語のテキ"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := badge(tt.name); got != tt.want {
			t.Errorf("badge(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
