package sink

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/flowboard/pkg/catalog"
	"github.com/matzehuels/flowboard/pkg/render/canvas"
	"github.com/matzehuels/flowboard/pkg/selection"
	"github.com/matzehuels/flowboard/pkg/workflow"
)

func demo() (*workflow.Graph, *selection.Controller) {
	g := workflow.New(nil)
	g.Seed([]workflow.Node{
		{ID: 1, Type: catalog.TypeTrigger, Label: "Webhook", Position: workflow.Point{X: 100, Y: 200}},
		{ID: 2, Type: catalog.TypeAction, Label: "Transform", Position: workflow.Point{X: 300, Y: 200}},
		{ID: 3, Type: catalog.TypeIntegration, Label: "API <Call>", Position: workflow.Point{X: 500, Y: 200}},
	}, []workflow.Connection{{From: 1, To: 2}, {From: 2, To: 3}, {From: 3, To: 9}})
	return g, selection.New()
}

func TestRenderSVG(t *testing.T) {
	g, s := demo()
	s.Select(2)
	svg := string(RenderSVG(canvas.Render(g, s)))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 1000.0 600.0"`) {
		t.Errorf("unexpected header: %.80s", svg)
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("document not closed")
	}

	counts := []struct {
		needle string
		want   int
	}{
		{`<path class="connection"`, 2},
		{`<circle class="marker"`, 2},
		{`class="workflow-node selected"`, 1},
		{`class="workflow-node"`, 2},
		{`id="grid"`, 1},
		{`id="connection-gradient"`, 1},
		{`d="M 160.0 200.0 L 240.0 200.0"`, 1},
	}
	for _, c := range counts {
		if got := strings.Count(svg, c.needle); got != c.want {
			t.Errorf("count(%s) = %d, want %d", c.needle, got, c.want)
		}
	}
	if !strings.Contains(svg, "API &lt;Call&gt;") {
		t.Error("label not escaped")
	}
	if strings.Contains(svg, "<script") || strings.Contains(svg, `class="inspector"`) {
		t.Error("optional content rendered without options")
	}
}

func TestRenderSVGEscapesColors(t *testing.T) {
	cat := catalog.Extend(catalog.Entry{Type: "delay", Color: `red" onload="alert(1)`, Glyph: "⏱", Label: "Delay"})
	g := workflow.New(cat)
	g.CreateNode("delay", workflow.Point{X: 100, Y: 200}, "")

	theme := canvas.ThemeDark
	theme.Background = `#000"><script>x</script>`
	svg := string(RenderSVG(canvas.Render(g, nil, canvas.WithCatalog(cat), canvas.WithTheme(theme))))

	for _, bad := range []string{`onload="alert(1)`, "<script>x</script>"} {
		if strings.Contains(svg, bad) {
			t.Errorf("unescaped attribute value %q in output", bad)
		}
	}
	if !strings.Contains(svg, `fill="red&#34; onload=&#34;alert(1)"`) {
		t.Error("catalog color not escaped into fill attribute")
	}
}

func TestRenderSVGOptions(t *testing.T) {
	g, s := demo()
	s.Select(1)
	d := canvas.Render(g, s)

	svg := string(RenderSVG(d, WithInteraction(), WithInspector()))
	if !strings.Contains(svg, "<script") || !strings.Contains(svg, "<style>") {
		t.Error("interaction script missing")
	}
	if strings.Count(svg, `<g class="inspector" data-node="1">`) != 1 {
		t.Error("inspector panel missing")
	}
	if !strings.Contains(svg, `class="inspector-type"`) || !strings.Contains(svg, ">Trigger</text>") {
		t.Error("inspector type field missing catalog label")
	}

	s.Clear()
	svg = string(RenderSVG(canvas.Render(g, s), WithInspector()))
	if strings.Contains(svg, `class="inspector"`) {
		t.Error("inspector rendered without selection")
	}
}

func TestRenderJSON(t *testing.T) {
	g, s := demo()
	s.Hover(3)

	data, err := RenderJSON(canvas.Render(g, s))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out canvas.Diagram
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.Width != canvas.DefaultWidth || out.Height != canvas.DefaultHeight {
		t.Errorf("frame = %vx%v", out.Width, out.Height)
	}
	if len(out.Nodes) != 3 || len(out.Edges) != 2 {
		t.Errorf("nodes/edges = %d/%d, want 3/2", len(out.Nodes), len(out.Edges))
	}
	if !out.Nodes[2].Hovered {
		t.Error("hover flag lost")
	}
	if out.Inspector != nil {
		t.Error("inspector present without selection")
	}
	if out.Theme.Name != "dark" {
		t.Errorf("Theme.Name = %q", out.Theme.Name)
	}
}

func TestTerminal(t *testing.T) {
	g, s := demo()
	s.Select(1)
	s.Hover(2)

	term := NewTerminal(100, 30)
	canvas.Draw(canvas.Render(g, s), term)
	out := term.String()

	for _, want := range []string{"Webhook", "Transform", "┏", "╔", "╭", "───"} {
		if !strings.Contains(out, want) {
			t.Errorf("terminal output missing %q:\n%s", want, out)
		}
	}
	if cols, rows := term.Size(); cols != 100 || rows != 30 || len(term.Lines()) != 30 {
		t.Errorf("Size() = %d,%d", cols, rows)
	}

	p := term.CellAt(10, 10)
	if !canvas.NodeBox(workflow.Point{X: 100, Y: 200}).Contains(p) {
		t.Errorf("CellAt(10,10) = %v, outside node 1", p)
	}
}

func TestTerminalTruncatesLabels(t *testing.T) {
	g := workflow.New(nil)
	g.CreateNode(catalog.TypeAction, workflow.Point{X: 100, Y: 200}, "A very long label that cannot fit")

	term := NewTerminal(100, 30)
	canvas.Draw(canvas.Render(g, nil), term)
	if !strings.Contains(term.String(), "…") {
		t.Errorf("long label not truncated:\n%s", term.String())
	}
}

func TestTerminalFarCoordinates(t *testing.T) {
	tests := []struct {
		name string
		at   workflow.Point
	}{
		{"far", workflow.Point{X: 1e20, Y: 1e20}},
		{"million", workflow.Point{X: 1e6, Y: 1e6}},
		{"negative", workflow.Point{X: -1e20, Y: -1e20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := workflow.New(nil)
			a := g.CreateNode(catalog.TypeTrigger, workflow.Point{X: 100, Y: 200}, "")
			b := g.CreateNode(catalog.TypeOutput, tt.at, "")
			g.Connect(a.ID, b.ID)

			done := make(chan string, 1)
			go func() {
				term := NewTerminal(80, 24)
				canvas.Draw(canvas.Render(g, nil), term)
				done <- term.String()
			}()
			select {
			case out := <-done:
				if got := len(strings.Split(out, "\n")); got != 24 {
					t.Errorf("rendered %d lines, want 24", got)
				}
			case <-time.After(5 * time.Second):
				t.Fatal("terminal draw did not finish")
			}
		})
	}
}
