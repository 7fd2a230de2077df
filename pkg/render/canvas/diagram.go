package canvas

import (
	"github.com/matzehuels/flowboard/pkg/catalog"
	"github.com/matzehuels/flowboard/pkg/workflow"
)

// Geometry in canvas units.
const (
	NodeWidth     = 120.0
	NodeHeight    = 80.0
	CornerRadius  = 12.0
	GridSize      = 30.0
	MarkerRadius  = 4.0
	DefaultWidth  = 1000.0
	DefaultHeight = 600.0

	// StandOff is the horizontal distance from a node center to the point
	// where its edges attach.
	StandOff = NodeWidth / 2

	glyphOffsetY = 35.0
	labelOffsetY = 60.0
	glyphSize    = 24.0
	labelSize    = 12.0
	labelWeight  = 600

	fillOpacity   = 0.2
	strokeWidth   = 2.0
	hoverWidth    = 3.0
	selectedWidth = 4.0
	edgeWidth     = 3.0

	inspectorWidth  = 260.0
	inspectorHeight = 220.0
	inspectorMargin = 20.0
)

// CSS classes carried by node shapes.
const (
	ClassNode     = "workflow-node"
	ClassSelected = "selected"
	ClassHovered  = "hovered"
)

// Diagram is the complete description of one frame.
type Diagram struct {
	Width     float64    `json:"width"`
	Height    float64    `json:"height"`
	Theme     Theme      `json:"theme"`
	Grid      Grid       `json:"grid"`
	Edges     []Edge     `json:"edges"`
	Nodes     []Shape    `json:"nodes"`
	Inspector *Inspector `json:"inspector,omitempty"`
}

// Grid is the background tile pattern.
type Grid struct {
	Size   float64 `json:"size"`
	Stroke string  `json:"stroke"`
}

// Edge is a drawn connection.
type Edge struct {
	From   workflow.NodeID `json:"from"`
	To     workflow.NodeID `json:"to"`
	Start  workflow.Point  `json:"start"`
	End    workflow.Point  `json:"end"`
	Width  float64         `json:"width"`
	Marker Marker          `json:"marker"`
}

// Marker is the round cap at an edge's arrival point.
type Marker struct {
	Center workflow.Point `json:"center"`
	Radius float64        `json:"radius"`
	Fill   string         `json:"fill"`
}

// Shape is a drawn node.
type Shape struct {
	ID          workflow.NodeID `json:"id"`
	Type        string          `json:"type"`
	Label       string          `json:"label"`
	Glyph       string          `json:"glyph"`
	Box         Rect            `json:"box"`
	Radius      float64         `json:"radius"`
	Fill        string          `json:"fill"`
	FillOpacity float64         `json:"fill_opacity"`
	Stroke      string          `json:"stroke"`
	StrokeWidth float64         `json:"stroke_width"`
	Selected    bool            `json:"selected,omitempty"`
	Hovered     bool            `json:"hovered,omitempty"`
	Classes     []string        `json:"classes"`
}

// Center returns the node position the shape was built from.
func (s Shape) Center() workflow.Point { return s.Box.Center() }

// GlyphAt returns the baseline anchor of the glyph text.
func (s Shape) GlyphAt() workflow.Point {
	return workflow.Point{X: s.Box.X + s.Box.W/2, Y: s.Box.Y + glyphOffsetY}
}

// LabelAt returns the baseline anchor of the label text.
func (s Shape) LabelAt() workflow.Point {
	return workflow.Point{X: s.Box.X + s.Box.W/2, Y: s.Box.Y + labelOffsetY}
}

// Inspector is the overlay shown for the selected node.
type Inspector struct {
	NodeID  workflow.NodeID `json:"node_id"`
	Label   string          `json:"label"`
	Type    string          `json:"type"`
	Options []catalog.Entry `json:"options"`
	Box     Rect            `json:"box"`
}

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// NodeBox returns the box of a node centered at p.
func NodeBox(p workflow.Point) Rect {
	return Rect{X: p.X - NodeWidth/2, Y: p.Y - NodeHeight/2, W: NodeWidth, H: NodeHeight}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p workflow.Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Center returns the midpoint of r.
func (r Rect) Center() workflow.Point {
	return workflow.Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// EdgeEndpoints returns where an edge between nodes centered at from and to
// starts and ends.
func EdgeEndpoints(from, to workflow.Point) (start, end workflow.Point) {
	return workflow.Point{X: from.X + StandOff, Y: from.Y}, workflow.Point{X: to.X - StandOff, Y: to.Y}
}
