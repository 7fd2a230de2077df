// Package selection tracks which node is selected and which is hovered.
//
// The [Controller] holds identifiers only. It never owns graph data, so a
// node removed from the graph leaves at most a dangling lookup, which
// [Controller.Resolve] reports as "nothing selected".
package selection

import "github.com/matzehuels/flowboard/pkg/workflow"

// Lookup resolves node identifiers. *workflow.Graph satisfies it.
type Lookup interface {
	Node(id workflow.NodeID) (workflow.Node, bool)
}

// Controller holds the single selection and the transient hover target.
// The two are independent. The zero value has nothing selected or hovered.
type Controller struct {
	selected    workflow.NodeID
	hasSelected bool
	hovered     workflow.NodeID
	hasHovered  bool
}

// New returns an empty controller.
func New() *Controller { return &Controller{} }

// Select makes id the selection, replacing any previous one.
func (c *Controller) Select(id workflow.NodeID) {
	c.selected, c.hasSelected = id, true
}

// Clear drops the selection.
func (c *Controller) Clear() {
	c.selected, c.hasSelected = 0, false
}

// Click routes a pointer click: a hit selects that node, a miss (nil)
// clears the selection.
func (c *Controller) Click(hit *workflow.NodeID) {
	if hit == nil {
		c.Clear()
		return
	}
	c.Select(*hit)
}

// Hover marks id as the node under the pointer.
func (c *Controller) Hover(id workflow.NodeID) {
	c.hovered, c.hasHovered = id, true
}

// Leave clears the hover target.
func (c *Controller) Leave() {
	c.hovered, c.hasHovered = 0, false
}

// Selected returns the selected identifier, which may no longer resolve.
func (c *Controller) Selected() (workflow.NodeID, bool) { return c.selected, c.hasSelected }

// Hovered returns the hovered identifier, which may no longer resolve.
func (c *Controller) Hovered() (workflow.NodeID, bool) { return c.hovered, c.hasHovered }

// IsSelected reports whether id is the current selection.
func (c *Controller) IsSelected(id workflow.NodeID) bool {
	return c.hasSelected && c.selected == id
}

// IsHovered reports whether id is the current hover target.
func (c *Controller) IsHovered(id workflow.NodeID) bool {
	return c.hasHovered && c.hovered == id
}

// Resolve returns the selected node if it is still live in g.
func (c *Controller) Resolve(g Lookup) (workflow.Node, bool) {
	if !c.hasSelected {
		return workflow.Node{}, false
	}
	return g.Node(c.selected)
}
