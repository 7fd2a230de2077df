package editor

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/flowboard/pkg/catalog"
	"github.com/matzehuels/flowboard/pkg/graph"
	"github.com/matzehuels/flowboard/pkg/workflow"
)

func newDemo(t *testing.T) *Session {
	t.Helper()
	return New(nil, WithSeed(graph.DefaultSeed()))
}

func TestSeededSession(t *testing.T) {
	s := newDemo(t)
	assert.Equal(t, 4, s.Graph().NodeCount())
	assert.Equal(t, 3, s.Graph().ConnectionCount())

	r := s.Apply(Create(catalog.TypeAction, workflow.Point{X: 900, Y: 200}))
	require.True(t, r.Changed)
	require.NotNil(t, r.Node)
	assert.Equal(t, workflow.NodeID(5), r.Node.ID)
}

func TestSelectionIsSingle(t *testing.T) {
	s := newDemo(t)
	s.Apply(Click(1))
	s.Apply(Click(2))

	id, ok := s.Selection().Selected()
	require.True(t, ok)
	assert.Equal(t, workflow.NodeID(2), id)
	assert.False(t, s.Selection().IsSelected(1))

	d := s.Diagram()
	selected := 0
	for _, n := range d.Nodes {
		if n.Selected {
			selected++
		}
	}
	assert.Equal(t, 1, selected)
}

func TestClickMissClears(t *testing.T) {
	s := newDemo(t)
	s.Apply(Click(1))

	r := s.Apply(ClickAt(workflow.Point{X: 100, Y: 500}))
	assert.True(t, r.Changed)
	_, ok := s.Selection().Selected()
	assert.False(t, ok)

	r = s.Apply(ClickAt(workflow.Point{X: 310, Y: 220}))
	assert.True(t, r.Changed)
	assert.True(t, s.Selection().IsSelected(2))

	r = s.Apply(Event{Kind: KindClick})
	assert.True(t, r.Changed)
	assert.False(t, s.Selection().IsSelected(2))
}

func TestHoverDoesNotDriveInspector(t *testing.T) {
	s := newDemo(t)
	s.Apply(Enter(3))

	assert.True(t, s.Selection().IsHovered(3))
	assert.False(t, s.Inspector().Visible())
	assert.Nil(t, s.Diagram().Inspector)

	r := s.Apply(Leave())
	assert.True(t, r.Changed)
	_, ok := s.Selection().Hovered()
	assert.False(t, ok)
}

func TestInspectorEvents(t *testing.T) {
	s := newDemo(t)

	r := s.Apply(SetLabel("ignored"))
	assert.False(t, r.Changed, "label edit without selection")

	s.Apply(Click(2))
	require.True(t, s.Apply(SetLabel("Normalize")).Changed)
	require.True(t, s.Apply(SetType(catalog.TypeIntegration)).Changed)
	assert.False(t, s.Apply(SetType("mystery")).Changed)

	n, _ := s.Graph().Node(2)
	assert.Equal(t, "Normalize", n.Label)
	assert.Equal(t, catalog.TypeIntegration, n.Type)
	assert.Equal(t, workflow.Point{X: 300, Y: 200}, n.Position)

	d := s.Diagram()
	require.NotNil(t, d.Inspector)
	assert.Equal(t, "Normalize", d.Inspector.Label)
}

func TestDeleteSelected(t *testing.T) {
	s := newDemo(t)
	s.Apply(Click(2))

	r := s.Apply(Delete())
	require.True(t, r.Changed)

	_, ok := s.Selection().Selected()
	assert.False(t, ok)
	for n := range s.Graph().Nodes() {
		assert.NotEqual(t, workflow.NodeID(2), n.ID)
	}
	assert.Equal(t, 3, s.Graph().ConnectionCount(), "connections retained")
	assert.Len(t, s.Diagram().Edges, 1, "only 3→4 still renders")

	assert.False(t, s.Apply(Delete()).Changed)
}

func TestUnknownIDsAreNoops(t *testing.T) {
	s := newDemo(t)
	before, err := graph.Marshal(s.Snapshot())
	require.NoError(t, err)

	events := []Event{
		Click(42),
		Enter(42),
		Move(42, workflow.Point{X: 1, Y: 1}),
		Disconnect(42, 43),
		SetLabel("x"),
		SetType(catalog.TypeOutput),
		Delete(),
		{Kind: "teleport"},
		{Kind: KindMove},
		{Kind: KindConnect},
		{Kind: KindLabel},
		{Kind: KindEnter},
		Create("mystery", workflow.Point{}),
	}
	for _, ev := range events {
		r := s.Apply(ev)
		assert.False(t, r.Changed, "event %+v", ev)
	}

	after, err := graph.Marshal(s.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestConnectPruneCycle(t *testing.T) {
	s := newDemo(t)

	r := s.Apply(Connect(4, 9))
	require.True(t, r.Changed)
	assert.Equal(t, &workflow.Connection{From: 4, To: 9}, r.Connection)
	assert.Len(t, s.Diagram().Edges, 3, "pending connection is inert")

	r = s.Apply(Prune())
	assert.True(t, r.Changed)
	assert.Equal(t, 1, r.Pruned)
	assert.Equal(t, 3, s.Graph().ConnectionCount())

	assert.False(t, s.Apply(Prune()).Changed)

	r = s.Apply(Disconnect(1, 2))
	assert.True(t, r.Changed)
	assert.Len(t, s.Diagram().Edges, 2)
}

func TestMove(t *testing.T) {
	s := newDemo(t)
	r := s.Apply(Move(1, workflow.Point{X: 120, Y: 260}))
	require.True(t, r.Changed)
	require.NotNil(t, r.Node)
	assert.Equal(t, workflow.Point{X: 120, Y: 260}, r.Node.Position)

	e := s.Diagram().Edges[0]
	assert.Equal(t, workflow.Point{X: 180, Y: 260}, e.Start)
	assert.Equal(t, workflow.Point{X: 240, Y: 200}, e.End)
}

func TestCreateDefaults(t *testing.T) {
	s := New(nil)

	r := s.Apply(Event{Kind: KindCreate, Type: catalog.TypeTrigger})
	require.True(t, r.Changed)
	assert.Equal(t, "Trigger", r.Node.Label)
	assert.Equal(t, workflow.Point{X: 100, Y: 200}, r.Node.Position)

	label := "Nightly"
	r = s.Apply(Event{Kind: KindCreate, Type: catalog.TypeTrigger, Text: &label})
	require.True(t, r.Changed)
	assert.Equal(t, "Nightly", r.Node.Label)
	assert.Equal(t, workflow.Point{X: 300, Y: 200}, r.Node.Position)

	empty := ""
	r = s.Apply(Event{Kind: KindCreate, Type: catalog.TypeOutput, Text: &empty})
	require.True(t, r.Changed)
	assert.Equal(t, "Output", r.Node.Label)
	got, _ := s.Graph().Node(r.Node.ID)
	assert.Equal(t, "Output", got.Label)
}

func TestHitTestTopmost(t *testing.T) {
	s := New(nil)
	a := s.Apply(Create(catalog.TypeAction, workflow.Point{X: 100, Y: 100})).Node
	b := s.Apply(Create(catalog.TypeAction, workflow.Point{X: 150, Y: 100})).Node

	id, ok := s.HitTest(workflow.Point{X: 120, Y: 100})
	require.True(t, ok)
	assert.Equal(t, b.ID, id, "later node is on top")

	id, ok = s.HitTest(workflow.Point{X: 45, Y: 100})
	require.True(t, ok)
	assert.Equal(t, a.ID, id)

	_, ok = s.HitTest(workflow.Point{X: 500, Y: 500})
	assert.False(t, ok)
}

func TestExtendedCatalog(t *testing.T) {
	cat := catalog.Extend(catalog.Entry{Type: "delay", Color: "#ffaa00", Glyph: "⏱", Label: "Delay"})
	s := New(cat)

	types := make([]string, 0)
	for _, it := range s.Palette().Items() {
		types = append(types, it.Type)
	}
	assert.True(t, slices.Contains(types, "delay"))

	r := s.Apply(Create("delay", workflow.Point{X: 100, Y: 100}))
	require.True(t, r.Changed)
	assert.Equal(t, "#ffaa00", s.Diagram().Nodes[0].Stroke)
}
