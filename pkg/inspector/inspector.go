// Package inspector edits the currently selected node.
//
// The panel has no state of its own: visibility and contents are derived
// from the selection and the graph on every call, and edits are written
// through to the graph immediately.
package inspector

import (
	"github.com/matzehuels/flowboard/pkg/catalog"
	"github.com/matzehuels/flowboard/pkg/selection"
	"github.com/matzehuels/flowboard/pkg/workflow"
)

// Form is what the panel shows for the selected node.
type Form struct {
	NodeID  workflow.NodeID `json:"node_id"`
	Label   string          `json:"label"`
	Type    string          `json:"type"`
	Options []catalog.Entry `json:"options"`
}

// Panel binds the graph, the selection, and the catalog that constrains the
// type field.
type Panel struct {
	graph   *workflow.Graph
	sel     *selection.Controller
	catalog *catalog.Catalog
}

// New creates a panel. A nil catalog means the graph's catalog.
func New(g *workflow.Graph, s *selection.Controller, cat *catalog.Catalog) *Panel {
	if cat == nil {
		cat = g.Catalog()
	}
	return &Panel{graph: g, sel: s, catalog: cat}
}

// View returns the form for the selected node. ok is false when nothing is
// selected or the selected node no longer exists.
func (p *Panel) View() (Form, bool) {
	n, ok := p.sel.Resolve(p.graph)
	if !ok {
		return Form{}, false
	}
	return Form{
		NodeID:  n.ID,
		Label:   n.Label,
		Type:    n.Type,
		Options: p.catalog.Entries(),
	}, true
}

// Visible reports whether the panel has a node to show.
func (p *Panel) Visible() bool {
	_, ok := p.sel.Resolve(p.graph)
	return ok
}

// SetLabel replaces the selected node's label. Any text is accepted,
// including the empty string.
func (p *Panel) SetLabel(text string) bool {
	n, ok := p.sel.Resolve(p.graph)
	if !ok {
		return false
	}
	p.graph.UpdateNode(n.ID, workflow.Patch{Label: &text})
	return true
}

// SetType changes the selected node's type to one of the catalog's tags.
// Unknown tags are rejected.
func (p *Panel) SetType(tag string) bool {
	if !p.catalog.Known(tag) {
		return false
	}
	n, ok := p.sel.Resolve(p.graph)
	if !ok {
		return false
	}
	p.graph.UpdateNode(n.ID, workflow.Patch{Type: &tag})
	return true
}

// Delete removes the selected node and clears the selection. Connections
// touching the node are left in place.
func (p *Panel) Delete() bool {
	n, ok := p.sel.Resolve(p.graph)
	if !ok {
		return false
	}
	p.graph.RemoveNode(n.ID)
	p.sel.Clear()
	return true
}
