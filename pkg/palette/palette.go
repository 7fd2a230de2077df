// Package palette lists the node categories a user can add and creates
// nodes from them.
package palette

import (
	"github.com/matzehuels/flowboard/pkg/catalog"
	"github.com/matzehuels/flowboard/pkg/workflow"
)

// Slot placement for shells without a pointer.
const (
	// OriginX and OriginY place the first slot on an empty graph.
	OriginX = 100.0
	OriginY = 200.0
	// Spacing is the horizontal gap between consecutive slots.
	Spacing = 200.0
)

// Item is one palette button.
type Item struct {
	Type  string `json:"type"`
	Glyph string `json:"glyph"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// Palette creates nodes of catalog types in a graph.
type Palette struct {
	graph   *workflow.Graph
	catalog *catalog.Catalog
}

// New creates a palette. A nil catalog means the graph's catalog.
func New(g *workflow.Graph, cat *catalog.Catalog) *Palette {
	if cat == nil {
		cat = g.Catalog()
	}
	return &Palette{graph: g, catalog: cat}
}

// Items returns one item per catalog entry, in catalog order.
func (p *Palette) Items() []Item {
	entries := p.catalog.Entries()
	items := make([]Item, len(entries))
	for i, e := range entries {
		items[i] = Item{Type: e.Type, Glyph: e.Glyph, Label: e.Label, Color: e.Color}
	}
	return items
}

// Create adds a node of type tag at pos with the catalog's default label.
// Tags the catalog does not know are refused.
func (p *Palette) Create(tag string, pos workflow.Point) (workflow.Node, bool) {
	if !p.catalog.Known(tag) {
		return workflow.Node{}, false
	}
	return p.graph.CreateNode(tag, pos, p.catalog.Lookup(tag).Label), true
}

// NextSlot returns a drop point one Spacing to the right of the right-most
// node, on that node's row. Ties go to the node inserted last.
func (p *Palette) NextSlot() workflow.Point {
	var (
		right workflow.Point
		found bool
	)
	for n := range p.graph.Nodes() {
		if !found || n.Position.X >= right.X {
			right, found = n.Position, true
		}
	}
	if !found {
		return workflow.Point{X: OriginX, Y: OriginY}
	}
	return workflow.Point{X: right.X + Spacing, Y: right.Y}
}
