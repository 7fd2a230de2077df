package graph

import (
	"github.com/matzehuels/flowboard/pkg/catalog"
	"github.com/matzehuels/flowboard/pkg/errors"
	"github.com/matzehuels/flowboard/pkg/workflow"
)

// Snapshot is the serialized form of a workflow graph.
type Snapshot struct {
	Nodes       []Node       `json:"nodes"`
	Connections []Connection `json:"connections"`
}

// Node is a serialized workflow node.
type Node struct {
	ID    uint64  `json:"id"`
	Type  string  `json:"type"`
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Icon  string  `json:"icon,omitempty"`
}

// Connection is a serialized connection.
type Connection struct {
	From uint64 `json:"from"`
	To   uint64 `json:"to"`
}

// FromWorkflow captures g's nodes and connections in insertion order.
func FromWorkflow(g *workflow.Graph) Snapshot {
	s := Snapshot{
		Nodes:       make([]Node, 0, g.NodeCount()),
		Connections: make([]Connection, 0, g.ConnectionCount()),
	}
	for n := range g.Nodes() {
		s.Nodes = append(s.Nodes, Node{
			ID:    uint64(n.ID),
			Type:  n.Type,
			Label: n.Label,
			X:     n.Position.X,
			Y:     n.Position.Y,
			Icon:  n.Icon,
		})
	}
	for c := range g.Connections() {
		s.Connections = append(s.Connections, Connection{From: uint64(c.From), To: uint64(c.To)})
	}
	return s
}

// Validate checks that every node id is positive and at most
// [workflow.MaxNodeID]. Duplicate ids are not detected.
func (s Snapshot) Validate() error {
	for i, n := range s.Nodes {
		if n.ID == 0 {
			return errors.New(errors.ErrCodeInvalidSeed, "node %d: id must be positive", i)
		}
		if n.ID > uint64(workflow.MaxNodeID) {
			return errors.New(errors.ErrCodeInvalidSeed, "node %d: id %d exceeds %d", i, n.ID, workflow.MaxNodeID)
		}
	}
	return nil
}

// Apply seeds g with the snapshot's nodes and connections.
func (s Snapshot) Apply(g *workflow.Graph) {
	nodes := make([]workflow.Node, len(s.Nodes))
	for i, n := range s.Nodes {
		nodes[i] = workflow.Node{
			ID:       workflow.NodeID(n.ID),
			Type:     n.Type,
			Label:    n.Label,
			Position: workflow.Point{X: n.X, Y: n.Y},
			Icon:     n.Icon,
		}
	}
	conns := make([]workflow.Connection, len(s.Connections))
	for i, c := range s.Connections {
		conns[i] = workflow.Connection{From: workflow.NodeID(c.From), To: workflow.NodeID(c.To)}
	}
	g.Seed(nodes, conns)
}

// Workflow returns a new graph seeded from s. A nil catalog means
// [catalog.Default].
func (s Snapshot) Workflow(cat *catalog.Catalog) *workflow.Graph {
	g := workflow.New(cat)
	s.Apply(g)
	return g
}

// DefaultSeed returns the demo workflow.
func DefaultSeed() Snapshot {
	return Snapshot{
		Nodes: []Node{
			{ID: 1, Type: catalog.TypeTrigger, Label: "Webhook", Icon: "🎯", X: 100, Y: 200},
			{ID: 2, Type: catalog.TypeAction, Label: "Transform", Icon: "⚡", X: 300, Y: 200},
			{ID: 3, Type: catalog.TypeIntegration, Label: "API Call", Icon: "🔗", X: 500, Y: 200},
			{ID: 4, Type: catalog.TypeOutput, Label: "Send Email", Icon: "📧", X: 700, Y: 200},
		},
		Connections: []Connection{
			{From: 1, To: 2},
			{From: 2, To: 3},
			{From: 3, To: 4},
		},
	}
}
