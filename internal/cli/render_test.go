package cli

import (
	"testing"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name       string
		flag       string
		fromConfig []string
		want       []string
	}{
		{"flag wins", "dot,png", []string{"json"}, []string{"dot", "png"}},
		{"config fallback", "", []string{"json", "svg"}, []string{"json", "svg"}},
		{"default svg", "", nil, []string{"svg"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.flag, tt.fromConfig)
			if len(got) != len(tt.want) {
				t.Fatalf("parseFormats() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("parseFormats()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestValidateFormats(t *testing.T) {
	if err := validateFormats([]string{"json", "dot", "svg", "png", "mermaid"}); err != nil {
		t.Errorf("valid formats rejected: %v", err)
	}
	if err := validateFormats([]string{"svg", "pdf"}); err == nil {
		t.Error("invalid format accepted")
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"derived from input", "", "graph.json", "graph"},
		{"output without extension", "out/diagram", "graph.json", "out/diagram"},
		{"output with format extension", "diagram.svg", "graph.json", "diagram"},
		{"output with unrelated extension", "diagram.backup", "graph.json", "diagram.backup"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}
