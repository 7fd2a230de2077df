package workflow

import (
	"iter"
	"slices"

	"github.com/matzehuels/flowboard/pkg/catalog"
)

// NodeID identifies a node within one Graph. The zero value is never issued.
type NodeID uint64

// MaxNodeID is the largest identifier a Graph holds. It is the largest
// integer a JSON number represents exactly, and keeps the counter far from
// wrapping.
const MaxNodeID NodeID = 1<<53 - 1

// Point is a 2D canvas coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is a typed, positioned unit of the workflow.
type Node struct {
	ID       NodeID
	Type     string // category tag, looked up in the catalog at render time
	Label    string
	Position Point  // visual center
	Icon     string // glyph override; empty means the catalog glyph
}

// Connection is a directed edge between two node identifiers. It is valid
// only while both endpoints resolve to live nodes.
type Connection struct {
	From NodeID
	To   NodeID
}

// Patch lists the fields [Graph.UpdateNode] should change. Nil fields are
// left untouched.
type Patch struct {
	Label    *string
	Type     *string
	Position *Point
	Icon     *string
}

// Graph owns the node set and the connection list.
// Use [New] to create one; the zero value is not usable.
type Graph struct {
	nodes   map[NodeID]*Node
	order   []NodeID // insertion order of live nodes
	conns   []Connection
	nextID  NodeID
	catalog *catalog.Catalog
}

// New creates an empty graph. The catalog supplies default labels for
// [Graph.CreateNode]; nil means [catalog.Default].
func New(cat *catalog.Catalog) *Graph {
	if cat == nil {
		cat = catalog.Default()
	}
	return &Graph{
		nodes:   make(map[NodeID]*Node),
		nextID:  1,
		catalog: cat,
	}
}

// Catalog returns the catalog used for default labels.
func (g *Graph) Catalog() *catalog.Catalog { return g.catalog }

// CreateNode stores a new node with a fresh identifier and returns it.
// An empty label is replaced by the catalog label for typ.
func (g *Graph) CreateNode(typ string, pos Point, label string) Node {
	if label == "" {
		label = g.catalog.Lookup(typ).Label
	}
	n := &Node{ID: g.issueID(), Type: typ, Label: label, Position: pos}
	g.nodes[n.ID] = n
	g.order = append(g.order, n.ID)
	return *n
}

func (g *Graph) issueID() NodeID {
	id := g.nextID
	g.nextID++
	return id
}

// UpdateNode applies the non-nil fields of p to node id.
// Unknown identifiers are ignored.
func (g *Graph) UpdateNode(id NodeID, p Patch) {
	n, ok := g.nodes[id]
	if !ok {
		return
	}
	if p.Label != nil {
		n.Label = *p.Label
	}
	if p.Type != nil {
		n.Type = *p.Type
	}
	if p.Position != nil {
		n.Position = *p.Position
	}
	if p.Icon != nil {
		n.Icon = *p.Icon
	}
}

// RemoveNode deletes node id if present. Connections referencing it are kept
// and become invalid.
func (g *Graph) RemoveNode(id NodeID) {
	if _, ok := g.nodes[id]; !ok {
		return
	}
	delete(g.nodes, id)
	g.order = slices.DeleteFunc(g.order, func(o NodeID) bool { return o == id })
}

// Connect appends a directed connection. Endpoints are not checked: a
// connection to a node that does not exist yet is legal but inert.
func (g *Graph) Connect(from, to NodeID) Connection {
	c := Connection{From: from, To: to}
	g.conns = append(g.conns, c)
	return c
}

// Disconnect removes the first connection from→to and reports whether one
// was found.
func (g *Graph) Disconnect(from, to NodeID) bool {
	i := slices.Index(g.conns, Connection{From: from, To: to})
	if i < 0 {
		return false
	}
	g.conns = slices.Delete(g.conns, i, i+1)
	return true
}

// Node returns a copy of node id and true, or the zero Node and false.
func (g *Graph) Node(id NodeID) (Node, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// Nodes yields copies of the live nodes in insertion order.
func (g *Graph) Nodes() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for _, id := range g.order {
			if !yield(*g.nodes[id]) {
				return
			}
		}
	}
}

// Connections yields every stored connection, valid or not, in insertion
// order.
func (g *Graph) Connections() iter.Seq[Connection] {
	return func(yield func(Connection) bool) {
		for _, c := range g.conns {
			if !yield(c) {
				return
			}
		}
	}
}

// NodeCount returns the number of live nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// ConnectionCount returns the number of stored connections, including
// invalid ones.
func (g *Graph) ConnectionCount() int { return len(g.conns) }

// Resolve returns both endpoints of c. ok is false when either endpoint is
// missing.
func (g *Graph) Resolve(c Connection) (from, to Node, ok bool) {
	f, okF := g.nodes[c.From]
	t, okT := g.nodes[c.To]
	if !okF || !okT {
		return Node{}, Node{}, false
	}
	return *f, *t, true
}

// Valid reports whether both endpoints of c resolve to live nodes.
func (g *Graph) Valid(c Connection) bool {
	_, _, ok := g.Resolve(c)
	return ok
}

// Prune removes every invalid connection and returns how many were dropped.
// It is never called implicitly.
func (g *Graph) Prune() int {
	before := len(g.conns)
	g.conns = slices.DeleteFunc(g.conns, func(c Connection) bool { return !g.Valid(c) })
	return before - len(g.conns)
}

// Seed loads nodes and connections with caller-chosen identifiers, appending
// to whatever the graph already holds. The identifier counter is advanced
// past the largest seeded id. Nodes with identifier 0 or above [MaxNodeID]
// are dropped.
//
// Seeding two nodes with the same identifier is a caller error; the result is
// unspecified.
func (g *Graph) Seed(nodes []Node, conns []Connection) {
	for _, n := range nodes {
		if n.ID == 0 || n.ID > MaxNodeID {
			continue
		}
		node := n
		if _, exists := g.nodes[node.ID]; !exists {
			g.order = append(g.order, node.ID)
		}
		g.nodes[node.ID] = &node
		if node.ID >= g.nextID {
			g.nextID = node.ID + 1
		}
	}
	g.conns = append(g.conns, conns...)
}
