package canvas

import (
	"fmt"
	"slices"
	"testing"

	"github.com/matzehuels/flowboard/pkg/catalog"
	"github.com/matzehuels/flowboard/pkg/selection"
	"github.com/matzehuels/flowboard/pkg/workflow"
)

func twoNodes() *workflow.Graph {
	g := workflow.New(nil)
	g.Seed([]workflow.Node{
		{ID: 1, Type: catalog.TypeTrigger, Label: "Webhook", Position: workflow.Point{X: 100, Y: 200}},
		{ID: 2, Type: catalog.TypeAction, Label: "Transform", Position: workflow.Point{X: 300, Y: 200}},
	}, []workflow.Connection{{From: 1, To: 2}})
	return g
}

func TestEdgeGeometry(t *testing.T) {
	d := Render(twoNodes(), nil)

	if len(d.Edges) != 1 {
		t.Fatalf("len(Edges) = %d, want 1", len(d.Edges))
	}
	e := d.Edges[0]
	if e.Start != (workflow.Point{X: 160, Y: 200}) {
		t.Errorf("Start = %v, want (160,200)", e.Start)
	}
	if e.End != (workflow.Point{X: 240, Y: 200}) {
		t.Errorf("End = %v, want (240,200)", e.End)
	}
	if e.Marker.Center != e.End || e.Marker.Radius != MarkerRadius {
		t.Errorf("Marker = %+v", e.Marker)
	}
}

func TestRemovedEndpointHidesEdge(t *testing.T) {
	g := twoNodes()
	g.RemoveNode(2)

	d := Render(g, nil)
	if len(d.Edges) != 0 {
		t.Errorf("len(Edges) = %d, want 0", len(d.Edges))
	}
	if got := slices.Collect(g.Connections()); len(got) != 1 {
		t.Errorf("Connections() = %v, want the dangling connection kept", got)
	}
	if len(d.Nodes) != 1 {
		t.Errorf("len(Nodes) = %d, want 1", len(d.Nodes))
	}
}

func TestNodeStyling(t *testing.T) {
	g := workflow.New(nil)
	g.CreateNode(catalog.TypeIntegration, workflow.Point{X: 500, Y: 200}, "API Call")
	g.CreateNode("mystery", workflow.Point{X: 700, Y: 200}, "")
	n := g.CreateNode(catalog.TypeOutput, workflow.Point{X: 900, Y: 200}, "Send Email")
	g.UpdateNode(n.ID, workflow.Patch{Icon: ptr("📧")})

	d := Render(g, nil)

	tests := []struct {
		name   string
		fill   string
		stroke string
		glyph  string
	}{
		{"known type", "#45b7d1", "#45b7d1", "🔗"},
		{"unknown type", catalog.FallbackFill, catalog.Fallback.Color, catalog.Fallback.Glyph},
		{"icon override", "#96ceb4", "#96ceb4", "📧"},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := d.Nodes[i]
			if s.Fill != tt.fill || s.Stroke != tt.stroke || s.Glyph != tt.glyph {
				t.Errorf("fill/stroke/glyph = %s/%s/%s, want %s/%s/%s",
					s.Fill, s.Stroke, s.Glyph, tt.fill, tt.stroke, tt.glyph)
			}
			if s.Box.W != NodeWidth || s.Box.H != NodeHeight || s.Radius != CornerRadius {
				t.Errorf("box = %+v radius %v", s.Box, s.Radius)
			}
		})
	}
	if d.Nodes[0].Box.X != 440 || d.Nodes[0].Box.Y != 160 {
		t.Errorf("box origin = (%v,%v), want (440,160)", d.Nodes[0].Box.X, d.Nodes[0].Box.Y)
	}
}

func TestSelectionAndHover(t *testing.T) {
	g := twoNodes()
	s := selection.New()
	s.Select(1)
	s.Hover(2)

	d := Render(g, s)

	if !d.Nodes[0].Selected || d.Nodes[0].Hovered {
		t.Errorf("node 1 flags = %v/%v", d.Nodes[0].Selected, d.Nodes[0].Hovered)
	}
	if !slices.Contains(d.Nodes[0].Classes, ClassSelected) {
		t.Errorf("node 1 classes = %v", d.Nodes[0].Classes)
	}
	if !d.Nodes[1].Hovered || !slices.Contains(d.Nodes[1].Classes, ClassHovered) {
		t.Errorf("node 2 = %+v", d.Nodes[1])
	}
	if d.Nodes[0].StrokeWidth <= strokeWidth || d.Nodes[1].StrokeWidth <= strokeWidth {
		t.Error("emphasis did not widen stroke")
	}
	if d.Nodes[0].Fill != "#ff6b6b" {
		t.Error("selection changed fill color")
	}
}

func TestInspectorOverlay(t *testing.T) {
	g := twoNodes()
	s := selection.New()

	if d := Render(g, s); d.Inspector != nil {
		t.Error("inspector present without selection")
	}

	s.Select(2)
	d := Render(g, s)
	if d.Inspector == nil {
		t.Fatal("inspector missing for live selection")
	}
	if d.Inspector.NodeID != 2 || d.Inspector.Label != "Transform" || len(d.Inspector.Options) != 4 {
		t.Errorf("Inspector = %+v", d.Inspector)
	}
	if d.Inspector.Box.X+d.Inspector.Box.W > d.Width {
		t.Error("inspector outside frame")
	}

	g.RemoveNode(2)
	if d := Render(g, s); d.Inspector != nil {
		t.Error("inspector present for dangling selection")
	}
}

func TestFrameSize(t *testing.T) {
	tests := []struct {
		name  string
		pos   workflow.Point
		w, h  float64
		opts  []Option
	}{
		{"default", workflow.Point{X: 100, Y: 200}, DefaultWidth, DefaultHeight, nil},
		{"grows right", workflow.Point{X: 1000, Y: 200}, 1000 + 60 + GridSize, DefaultHeight, nil},
		{"grows down", workflow.Point{X: 100, Y: 700}, DefaultWidth, 700 + 40 + GridSize, nil},
		{"custom minimum", workflow.Point{X: 100, Y: 200}, 400, 300, []Option{WithSize(400, 300)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := workflow.New(nil)
			g.CreateNode(catalog.TypeAction, tt.pos, "")
			d := Render(g, nil, tt.opts...)
			if d.Width != tt.w || d.Height != tt.h {
				t.Errorf("frame = %vx%v, want %vx%v", d.Width, d.Height, tt.w, tt.h)
			}
		})
	}
}

func TestRenderIsPure(t *testing.T) {
	g := twoNodes()
	before := slices.Collect(g.Nodes())
	a := Render(g, nil, WithTheme(ThemeLight))
	b := Render(g, nil, WithTheme(ThemeLight))
	if fmt.Sprint(a) != fmt.Sprint(b) {
		t.Error("Render not deterministic")
	}
	if !slices.Equal(before, slices.Collect(g.Nodes())) {
		t.Error("Render mutated the graph")
	}
	if a.Theme.Name != "light" || a.Grid.Stroke != ThemeLight.GridStroke {
		t.Errorf("theme = %+v", a.Theme)
	}
}

func TestWithCatalog(t *testing.T) {
	cat := catalog.Extend(catalog.Entry{Type: "delay", Color: "#ffaa00", Glyph: "⏱", Label: "Delay"})
	g := workflow.New(nil)
	g.CreateNode("delay", workflow.Point{X: 100, Y: 100}, "")

	if d := Render(g, nil); d.Nodes[0].Stroke != catalog.Fallback.Color {
		t.Errorf("default catalog stroke = %s", d.Nodes[0].Stroke)
	}
	if d := Render(g, nil, WithCatalog(cat)); d.Nodes[0].Stroke != "#ffaa00" || d.Nodes[0].Glyph != "⏱" {
		t.Errorf("extended catalog node = %+v", d.Nodes[0])
	}
}

func TestThemeByName(t *testing.T) {
	if th, err := ThemeByName("dark"); err != nil || th != ThemeDark {
		t.Errorf("ThemeByName(dark) = %v, %v", th.Name, err)
	}
	if _, err := ThemeByName("neon"); err == nil {
		t.Error("ThemeByName(neon) succeeded")
	}
}

func TestRectContains(t *testing.T) {
	r := NodeBox(workflow.Point{X: 100, Y: 200})
	for _, p := range []workflow.Point{{X: 40, Y: 160}, {X: 160, Y: 240}, {X: 100, Y: 200}} {
		if !r.Contains(p) {
			t.Errorf("Contains(%v) = false", p)
		}
	}
	for _, p := range []workflow.Point{{X: 39, Y: 200}, {X: 100, Y: 241}} {
		if r.Contains(p) {
			t.Errorf("Contains(%v) = true", p)
		}
	}
}

func ptr[T any](v T) *T { return &v }
