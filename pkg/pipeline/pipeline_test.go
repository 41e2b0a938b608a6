package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/injectograph/injectograph/pkg/cache"
	"github.com/injectograph/injectograph/pkg/digraph"
	"github.com/injectograph/injectograph/pkg/errors"
	"github.com/injectograph/injectograph/pkg/render"
)

const sampleDecls = `[
  {"name": "AppComponent", "kind": "component", "dependencies": [{"token": "Router"}, {"token": "Store"}]},
  {"name": "Router", "kind": "service", "dependencies": []},
  {"name": "Store", "kind": "service", "dependencies": [{"token": "Logger"}]},
  {"name": "Logger", "kind": "service", "dependencies": []}
]`

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		wantCode errors.Code
	}{
		{"empty is valid", Options{}, ""},
		{"valid direction and format", Options{Direction: digraph.DirectionUpstream, Formats: []string{FormatDOT}}, ""},
		{"bad direction", Options{Direction: "sideways"}, errors.ErrCodeInvalidDirection},
		{"bad format", Options{Formats: []string{"pdf"}}, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("Validate() = %v, want code %q", err, tt.wantCode)
			}
		})
	}
}

func TestOptionsDefaults(t *testing.T) {
	o := Options{}.withDefaults()
	if o.Direction != DefaultDirection {
		t.Errorf("Direction = %q", o.Direction)
	}
	if len(o.Formats) != 1 || o.Formats[0] != FormatJSON {
		t.Errorf("Formats = %v", o.Formats)
	}
	if o.CacheTTL != DefaultCacheTTL {
		t.Errorf("CacheTTL = %v", o.CacheTTL)
	}
}

func TestExecuteFullGraph(t *testing.T) {
	r := NewRunner(nil, nil)

	res, err := r.Execute(context.Background(), []byte(sampleDecls), Options{})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(res.Graph.Nodes) != 4 {
		t.Errorf("got %d nodes, want 4", len(res.Graph.Nodes))
	}
	if len(res.Graph.Edges) != 3 {
		t.Errorf("got %d edges, want 3", len(res.Graph.Edges))
	}
	if res.GraphCached {
		t.Error("first run reported a cache hit")
	}

	data, ok := res.Artifacts[FormatJSON]
	if !ok {
		t.Fatal("missing json artifact")
	}
	g, err := render.ReadGraph(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("json artifact does not decode: %v", err)
	}
	if len(g.Nodes) != len(res.Graph.Nodes) {
		t.Errorf("artifact has %d nodes, graph has %d", len(g.Nodes), len(res.Graph.Nodes))
	}
}

func TestExecuteFiltered(t *testing.T) {
	r := NewRunner(nil, nil)

	res, err := r.Execute(context.Background(), []byte(sampleDecls), Options{
		Direction: digraph.DirectionDownstream,
		Entries:   []string{"Store"},
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(res.Graph.Nodes) != 2 {
		t.Fatalf("got %d nodes, want Store and Logger", len(res.Graph.Nodes))
	}
	for _, n := range res.Graph.Nodes {
		if n.ID != "Store" && n.ID != "Logger" {
			t.Errorf("unexpected node %q in filtered graph", n.ID)
		}
	}
}

func TestExecuteInvalidOptions(t *testing.T) {
	r := NewRunner(nil, nil)

	_, err := r.Execute(context.Background(), []byte(sampleDecls), Options{Direction: "sideways"})
	if !errors.Is(err, errors.ErrCodeInvalidDirection) {
		t.Errorf("error = %v, want invalid-direction", err)
	}

	_, err = r.Execute(context.Background(), []byte(sampleDecls), Options{Formats: []string{"gif"}})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want invalid-format", err)
	}
}

func TestExecuteInvalidInput(t *testing.T) {
	r := NewRunner(nil, nil)

	_, err := r.Execute(context.Background(), []byte("{not json"), Options{})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want invalid-input", err)
	}
}

func TestExecuteTextFormats(t *testing.T) {
	r := NewRunner(nil, nil)

	res, err := r.Execute(context.Background(), []byte(sampleDecls), Options{
		Formats: []string{FormatDOT, FormatMermaid},
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if dot := string(res.Artifacts[FormatDOT]); !strings.Contains(dot, "digraph injections") {
		t.Errorf("dot artifact missing header:\n%s", dot)
	}
	if mmd := string(res.Artifacts[FormatMermaid]); !strings.HasPrefix(mmd, "graph TD") {
		t.Errorf("mermaid artifact missing header:\n%s", mmd)
	}
}

func TestExecuteGraphCaching(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer fc.Close()
	r := NewRunner(fc, nil)
	ctx := context.Background()

	first, err := r.Execute(ctx, []byte(sampleDecls), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if first.GraphCached {
		t.Error("first execution reported a cache hit")
	}

	second, err := r.Execute(ctx, []byte(sampleDecls), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !second.GraphCached {
		t.Error("second execution did not hit the cache")
	}
	if len(second.Graph.Nodes) != len(first.Graph.Nodes) || len(second.Graph.Edges) != len(first.Graph.Edges) {
		t.Error("cached graph differs from original")
	}

	// Different filter options must not share a cache entry.
	filtered, err := r.Execute(ctx, []byte(sampleDecls), Options{Entries: []string{"Store"}})
	if err != nil {
		t.Fatal(err)
	}
	if filtered.GraphCached {
		t.Error("filtered execution hit the unfiltered cache entry")
	}
	if len(filtered.Graph.Nodes) != 2 {
		t.Errorf("filtered graph has %d nodes, want 2", len(filtered.Graph.Nodes))
	}
}

func TestExecuteRefreshBypassesCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer fc.Close()
	r := NewRunner(fc, nil)
	ctx := context.Background()

	if _, err := r.Execute(ctx, []byte(sampleDecls), Options{}); err != nil {
		t.Fatal(err)
	}
	res, err := r.Execute(ctx, []byte(sampleDecls), Options{Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.GraphCached {
		t.Error("Refresh execution reported a cache hit")
	}
}

func TestGraphStageOnly(t *testing.T) {
	r := NewRunner(nil, nil)

	g, err := r.Graph(context.Background(), []byte(sampleDecls), Options{
		Direction: digraph.DirectionUpstream,
		Entries:   []string{"Logger"},
	})
	if err != nil {
		t.Fatalf("Graph error: %v", err)
	}
	want := map[string]bool{"Logger": true, "Store": true, "AppComponent": true}
	if len(g.Nodes) != len(want) {
		t.Fatalf("got %d nodes, want %d", len(g.Nodes), len(want))
	}
	for _, n := range g.Nodes {
		if !want[n.ID] {
			t.Errorf("unexpected node %q", n.ID)
		}
	}
}
