package canvas

import (
	"strconv"
	"strings"

	"github.com/matzehuels/flowboard/pkg/workflow"
)

// Paint describes fill and stroke for a primitive.
type Paint struct {
	Fill          string
	FillOpacity   float64
	Stroke        string
	StrokeWidth   float64
	StrokeOpacity float64
	Class         string
}

// Font describes a text primitive.
type Font struct {
	Size   float64
	Weight int
	Color  string
	Class  string
}

// Surface is the set of drawing capabilities a sink provides. Calls arrive in
// layer order between Begin and End. Group and Ungroup bracket the
// primitives that belong to one node.
type Surface interface {
	Begin(width, height float64, th Theme)
	Pattern(g Grid)
	Path(from, to workflow.Point, p Paint)
	Circle(center workflow.Point, radius float64, p Paint)
	Group(id workflow.NodeID, classes []string)
	RoundedRect(box Rect, radius float64, p Paint)
	Text(at workflow.Point, s string, f Font)
	Ungroup()
	End()
}

// Class names used by [Draw] for non-node primitives.
const (
	ClassConnection = "connection"
	ClassMarker     = "marker"
	ClassNodeRect   = "node-rect"
	ClassGlyph      = "node-glyph"
	ClassLabel      = "node-label"
)

// Draw walks the grid, edge and node layers of d, in that order, on s.
func Draw(d Diagram, s Surface) {
	s.Begin(d.Width, d.Height, d.Theme)
	s.Pattern(d.Grid)

	for _, e := range d.Edges {
		s.Path(e.Start, e.End, Paint{
			Stroke:        d.Theme.EdgeFrom,
			StrokeWidth:   e.Width,
			StrokeOpacity: d.Theme.EdgeOpacity,
			Class:         ClassConnection,
		})
		s.Circle(e.Marker.Center, e.Marker.Radius, Paint{Fill: e.Marker.Fill, FillOpacity: 1, Class: ClassMarker})
	}

	for _, n := range d.Nodes {
		s.Group(n.ID, n.Classes)
		s.RoundedRect(n.Box, n.Radius, Paint{
			Fill:          n.Fill,
			FillOpacity:   n.FillOpacity,
			Stroke:        n.Stroke,
			StrokeWidth:   n.StrokeWidth,
			StrokeOpacity: 1,
			Class:         ClassNodeRect,
		})
		s.Text(n.GlyphAt(), n.Glyph, Font{Size: glyphSize, Class: ClassGlyph})
		s.Text(n.LabelAt(), n.Label, Font{Size: labelSize, Weight: labelWeight, Color: d.Theme.LabelColor, Class: ClassLabel})
		s.Ungroup()
	}

	s.End()
}

// ClassList joins classes for a class attribute.
func ClassList(classes []string) string { return strings.Join(classes, " ") }

// NodeElementID is the element id sinks give a node group.
func NodeElementID(id workflow.NodeID) string {
	return "node-" + strconv.FormatUint(uint64(id), 10)
}
