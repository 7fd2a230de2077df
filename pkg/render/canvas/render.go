package canvas

import (
	"iter"

	"github.com/matzehuels/flowboard/pkg/catalog"
	"github.com/matzehuels/flowboard/pkg/workflow"
)

// Source is the read-only graph view a diagram is projected from.
// *workflow.Graph satisfies it.
type Source interface {
	Node(id workflow.NodeID) (workflow.Node, bool)
	Nodes() iter.Seq[workflow.Node]
	Connections() iter.Seq[workflow.Connection]
	Resolve(c workflow.Connection) (from, to workflow.Node, ok bool)
}

// Selection is the selection state a diagram reflects.
// *selection.Controller satisfies it. A nil Selection means nothing is
// selected or hovered.
type Selection interface {
	Selected() (workflow.NodeID, bool)
	IsSelected(id workflow.NodeID) bool
	IsHovered(id workflow.NodeID) bool
}

// Option configures [Render].
type Option func(*renderer)

type renderer struct {
	theme   Theme
	width   float64
	height  float64
	catalog *catalog.Catalog
}

// WithTheme selects the palette. The default is [ThemeDark].
func WithTheme(t Theme) Option { return func(r *renderer) { r.theme = t } }

// WithSize sets the minimum frame size. Non-positive values keep the default.
func WithSize(width, height float64) Option {
	return func(r *renderer) {
		if width > 0 {
			r.width = width
		}
		if height > 0 {
			r.height = height
		}
	}
}

// WithCatalog sets the table used for node colors and glyphs. Without it the
// source's own catalog is used when it exposes one, else [catalog.Default].
func WithCatalog(c *catalog.Catalog) Option { return func(r *renderer) { r.catalog = c } }

// Render projects src and sel into a diagram.
func Render(src Source, sel Selection, opts ...Option) Diagram {
	r := renderer{theme: ThemeDark, width: DefaultWidth, height: DefaultHeight}
	for _, opt := range opts {
		opt(&r)
	}
	if r.catalog == nil {
		if cs, ok := src.(interface{ Catalog() *catalog.Catalog }); ok {
			r.catalog = cs.Catalog()
		}
		if r.catalog == nil {
			r.catalog = catalog.Default()
		}
	}
	if sel == nil {
		sel = noSelection{}
	}

	d := Diagram{
		Theme: r.theme,
		Grid:  Grid{Size: GridSize, Stroke: r.theme.GridStroke},
		Edges: buildEdges(src, r.theme),
		Nodes: r.buildShapes(src, sel),
	}
	d.Width, d.Height = frameSize(d.Nodes, r.width, r.height)
	d.Inspector = r.buildInspector(src, sel, d.Width)
	return d
}

func buildEdges(src Source, th Theme) []Edge {
	edges := []Edge{}
	for c := range src.Connections() {
		from, to, ok := src.Resolve(c)
		if !ok {
			continue
		}
		start, end := EdgeEndpoints(from.Position, to.Position)
		edges = append(edges, Edge{
			From:   c.From,
			To:     c.To,
			Start:  start,
			End:    end,
			Width:  edgeWidth,
			Marker: Marker{Center: end, Radius: MarkerRadius, Fill: th.MarkerFill},
		})
	}
	return edges
}

func (r *renderer) buildShapes(src Source, sel Selection) []Shape {
	shapes := []Shape{}
	for n := range src.Nodes() {
		entry := r.catalog.Lookup(n.Type)
		glyph := n.Icon
		if glyph == "" {
			glyph = entry.Glyph
		}
		s := Shape{
			ID:          n.ID,
			Type:        n.Type,
			Label:       n.Label,
			Glyph:       glyph,
			Box:         NodeBox(n.Position),
			Radius:      CornerRadius,
			Fill:        r.catalog.Fill(n.Type),
			FillOpacity: fillOpacity,
			Stroke:      entry.Color,
			StrokeWidth: strokeWidth,
			Selected:    sel.IsSelected(n.ID),
			Hovered:     sel.IsHovered(n.ID),
			Classes:     []string{ClassNode},
		}
		if s.Hovered {
			s.StrokeWidth = hoverWidth
			s.Classes = append(s.Classes, ClassHovered)
		}
		if s.Selected {
			s.StrokeWidth = selectedWidth
			s.Classes = append(s.Classes, ClassSelected)
		}
		shapes = append(shapes, s)
	}
	return shapes
}

func (r *renderer) buildInspector(src Source, sel Selection, frameWidth float64) *Inspector {
	id, ok := sel.Selected()
	if !ok {
		return nil
	}
	n, ok := src.Node(id)
	if !ok {
		return nil
	}
	return &Inspector{
		NodeID:  n.ID,
		Label:   n.Label,
		Type:    n.Type,
		Options: r.catalog.Entries(),
		Box: Rect{
			X: frameWidth - inspectorWidth - inspectorMargin,
			Y: inspectorMargin,
			W: inspectorWidth,
			H: inspectorHeight,
		},
	}
}

func frameSize(shapes []Shape, minW, minH float64) (float64, float64) {
	w, h := minW, minH
	for _, s := range shapes {
		w = max(w, s.Box.X+s.Box.W+GridSize)
		h = max(h, s.Box.Y+s.Box.H+GridSize)
	}
	return w, h
}

type noSelection struct{}

func (noSelection) Selected() (workflow.NodeID, bool) { return 0, false }
func (noSelection) IsSelected(workflow.NodeID) bool   { return false }
func (noSelection) IsHovered(workflow.NodeID) bool    { return false }
