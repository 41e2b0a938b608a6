package digraph

import (
	"reflect"
	"strings"
	"testing"

	"github.com/injectograph/injectograph/pkg/errors"
)

func cls(name, kind string, tokens ...string) Class {
	deps := make([]Dependency, 0, len(tokens))
	for _, tok := range tokens {
		deps = append(deps, Dependency{Token: tok})
	}
	return Class{Name: name, Kind: kind, Dependencies: deps}
}

func mustBuild(t *testing.T, classes []Class) Graph {
	t.Helper()
	g, err := Build(classes)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return g
}

func TestBuildValidation(t *testing.T) {
	tests := []struct {
		name    string
		classes []Class
		wantMsg string
	}{
		{
			name:    "NilInput",
			classes: nil,
			wantMsg: "class declarations must not be nil",
		},
		{
			name:    "BlankName",
			classes: []Class{{Name: "   ", Kind: KindService, Dependencies: []Dependency{}}},
			wantMsg: "name must be a non-empty string",
		},
		{
			name:    "MissingKind",
			classes: []Class{{Name: "A", Dependencies: []Dependency{}}},
			wantMsg: "kind must be a string",
		},
		{
			name:    "MissingDependencies",
			classes: []Class{{Name: "A", Kind: KindService}},
			wantMsg: "dependencies must be an array",
		},
		{
			name: "MissingToken",
			classes: []Class{{Name: "A", Kind: KindService, Dependencies: []Dependency{
				{Token: ""},
			}}},
			wantMsg: "token must be a string",
		},
		{
			name: "SecondDeclarationInvalid",
			classes: []Class{
				cls("A", KindService),
				{Name: "B", Kind: KindComponent},
			},
			wantMsg: `class declaration "B": dependencies must be an array`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.classes)
			if err == nil {
				t.Fatal("Build() returned nil error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidDeclaration) {
				t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidDeclaration)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want substring %q", err, tt.wantMsg)
			}
		})
	}
}

func TestBuildEmpty(t *testing.T) {
	g := mustBuild(t, []Class{})
	if len(g.Nodes) != 0 || len(g.Edges) != 0 {
		t.Errorf("empty input produced %d nodes, %d edges", len(g.Nodes), len(g.Edges))
	}
	if g.CircularDependencies == nil {
		t.Error("CircularDependencies is nil, want empty slice")
	}
}

func TestBuildTwoNodeCycle(t *testing.T) {
	g := mustBuild(t, []Class{
		cls("A", KindService, "B"),
		cls("B", KindService, "A"),
	})

	if len(g.Nodes) != 2 || len(g.Edges) != 2 {
		t.Fatalf("got %d nodes, %d edges, want 2 and 2", len(g.Nodes), len(g.Edges))
	}
	for _, e := range g.Edges {
		if !e.IsCircular {
			t.Errorf("edge %s->%s not marked circular", e.From, e.To)
		}
	}
	want := []Cycle{{"A", "B", "A"}}
	if !reflect.DeepEqual(g.CircularDependencies, want) {
		t.Errorf("cycles = %v, want %v", g.CircularDependencies, want)
	}
}

func TestBuildSelfLoop(t *testing.T) {
	g := mustBuild(t, []Class{cls("A", KindService, "A")})

	want := []Cycle{{"A", "A"}}
	if !reflect.DeepEqual(g.CircularDependencies, want) {
		t.Errorf("cycles = %v, want %v", g.CircularDependencies, want)
	}
	if len(g.Edges) != 1 || !g.Edges[0].IsCircular {
		t.Errorf("self-loop edge = %+v, want single circular edge", g.Edges)
	}
}

func TestBuildUnknownNode(t *testing.T) {
	g := mustBuild(t, []Class{cls("A", KindComponent, "X")})

	var found *Node
	for i := range g.Nodes {
		if g.Nodes[i].ID == "X" {
			found = &g.Nodes[i]
		}
	}
	if found == nil {
		t.Fatal("node X was not created for the undeclared token")
	}
	if found.Kind != KindUnknown {
		t.Errorf("node X kind = %q, want %q", found.Kind, KindUnknown)
	}
}

func TestBuildDuplicateFirstWins(t *testing.T) {
	g := mustBuild(t, []Class{
		cls("A", KindService),
		cls("A", KindComponent),
	})

	if len(g.Nodes) != 1 {
		t.Fatalf("got %d nodes, want duplicate collapsed to 1", len(g.Nodes))
	}
	if g.Nodes[0].Kind != KindService {
		t.Errorf("kind = %q, want first declaration's %q", g.Nodes[0].Kind, KindService)
	}
}

func TestBuildDeclaredKindWinsOverPlaceholder(t *testing.T) {
	// B is referenced before it is declared; the declaration still arrives
	// in the same input, so B must not end up as an unknown node.
	g := mustBuild(t, []Class{
		cls("A", KindService, "B"),
		cls("B", KindDirective),
	})

	for _, n := range g.Nodes {
		if n.ID == "B" && n.Kind != KindDirective {
			t.Errorf("node B kind = %q, want %q", n.Kind, KindDirective)
		}
	}
}

func TestBuildSorting(t *testing.T) {
	g := mustBuild(t, []Class{
		cls("Zeta", KindService, "Beta", "Alpha"),
		cls("Alpha", KindService),
		cls("Beta", KindService, "Alpha"),
	})

	wantIDs := []string{"Alpha", "Beta", "Zeta"}
	gotIDs := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		gotIDs[i] = n.ID
	}
	if !reflect.DeepEqual(gotIDs, wantIDs) {
		t.Errorf("node order = %v, want %v", gotIDs, wantIDs)
	}

	for i := 1; i < len(g.Edges); i++ {
		a, b := g.Edges[i-1], g.Edges[i]
		if a.From > b.From || (a.From == b.From && a.To > b.To) {
			t.Errorf("edges out of order: %v before %v", a, b)
		}
	}
}

func TestBuildFlagsPreserved(t *testing.T) {
	classes := []Class{{
		Name: "A",
		Kind: KindComponent,
		Dependencies: []Dependency{
			{Token: "NoBag"},
			{Token: "EmptyBag", Flags: &EdgeFlags{}},
			{Token: "Optional", Flags: &EdgeFlags{Optional: true, Host: true}},
		},
	}}
	g := mustBuild(t, classes)

	byTarget := make(map[string]Edge)
	for _, e := range g.Edges {
		byTarget[e.To] = e
	}

	if byTarget["NoBag"].Flags != nil {
		t.Error("absent flags bag became non-nil")
	}
	if f := byTarget["EmptyBag"].Flags; f == nil || *f != (EdgeFlags{}) {
		t.Errorf("empty flags bag = %v, want present zero value", f)
	}
	if f := byTarget["Optional"].Flags; f == nil || !f.Optional || !f.Host || f.Self || f.SkipSelf {
		t.Errorf("flags = %+v, want optional+host only", f)
	}

	// Build copies flag bags; mutating the input afterwards must not leak
	// into the constructed graph.
	classes[0].Dependencies[2].Flags.Optional = false
	if !byTarget["Optional"].Flags.Optional {
		t.Error("graph shares flag storage with input declarations")
	}
}

func TestBuildUniqueNodeIDs(t *testing.T) {
	g := mustBuild(t, []Class{
		cls("A", KindService, "B", "C", "B"),
		cls("B", KindService, "C"),
		cls("A", KindDirective, "D"),
	})

	seen := make(map[string]bool)
	for _, n := range g.Nodes {
		if seen[n.ID] {
			t.Errorf("duplicate node id %q", n.ID)
		}
		seen[n.ID] = true
	}
}

func TestBuildDeterminism(t *testing.T) {
	classes := []Class{
		cls("App", KindComponent, "Router", "Store"),
		cls("Router", KindService, "Store"),
		cls("Store", KindService, "App"),
	}
	first := mustBuild(t, classes)
	second := mustBuild(t, classes)
	if !reflect.DeepEqual(first, second) {
		t.Error("Build is not deterministic for identical input")
	}
}

func TestBuildEdgeEndpointsExist(t *testing.T) {
	g := mustBuild(t, []Class{
		cls("A", KindService, "B", "Missing"),
		cls("B", KindService, "A"),
	})

	ids := make(map[string]bool)
	for _, n := range g.Nodes {
		ids[n.ID] = true
	}
	for _, e := range g.Edges {
		if !ids[e.From] || !ids[e.To] {
			t.Errorf("edge %s->%s references a missing node", e.From, e.To)
		}
	}
}

func TestBuildCircularEdgesMatchCycles(t *testing.T) {
	g := mustBuild(t, []Class{
		cls("A", KindService, "B"),
		cls("B", KindService, "C"),
		cls("C", KindService, "A"),
		cls("D", KindService, "A"),
	})

	steps := make(map[edgeKey]bool)
	for _, c := range g.CircularDependencies {
		for i := 0; i+1 < len(c); i++ {
			steps[edgeKey{c[i], c[i+1]}] = true
		}
	}
	for _, e := range g.Edges {
		if e.IsCircular != steps[edgeKey{e.From, e.To}] {
			t.Errorf("edge %s->%s IsCircular = %v, inconsistent with cycle steps", e.From, e.To, e.IsCircular)
		}
	}
}
