package cli

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/flowboard/pkg/catalog"
	"github.com/matzehuels/flowboard/pkg/editor"
	"github.com/matzehuels/flowboard/pkg/graph"
	"github.com/matzehuels/flowboard/pkg/observability"
	"github.com/matzehuels/flowboard/pkg/render/canvas"
	"github.com/matzehuels/flowboard/pkg/workflow"
)

var (
	keyTab       = tea.KeyMsg{Type: tea.KeyTab}
	keyShiftTab  = tea.KeyMsg{Type: tea.KeyShiftTab}
	keyEnter     = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc       = tea.KeyMsg{Type: tea.KeyEsc}
	keyBackspace = tea.KeyMsg{Type: tea.KeyBackspace}
	keyCtrlT     = tea.KeyMsg{Type: tea.KeyCtrlT}
	keyCtrlD     = tea.KeyMsg{Type: tea.KeyCtrlD}
	keyCtrlS     = tea.KeyMsg{Type: tea.KeyCtrlS}
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func newTestModel(t *testing.T) editModel {
	t.Helper()
	s := editor.New(nil, editor.WithSeed(graph.DefaultSeed()))
	return newEditModel(context.Background(), s, filepath.Join(t.TempDir(), "out.json"), canvas.ThemeDark)
}

func press(t *testing.T, m editModel, msgs ...tea.Msg) (editModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(editModel)
	}
	return m, cmd
}

func hovered(m editModel) workflow.NodeID {
	id, _ := m.session.Selection().Hovered()
	return id
}

func selected(m editModel) workflow.NodeID {
	id, _ := m.session.Selection().Selected()
	return id
}

func TestEditHoverCycle(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(t, m, keyTab)
	assert.Equal(t, workflow.NodeID(1), hovered(m))

	m, _ = press(t, m, keyTab, keyTab)
	assert.Equal(t, workflow.NodeID(3), hovered(m))

	m, _ = press(t, m, keyShiftTab)
	assert.Equal(t, workflow.NodeID(2), hovered(m))

	m, _ = press(t, m, keyTab, keyTab, keyTab)
	assert.Equal(t, workflow.NodeID(1), hovered(m), "hover wraps around")
}

func TestEditShiftTabStartsAtLast(t *testing.T) {
	m, _ := press(t, newTestModel(t), keyShiftTab)
	assert.Equal(t, workflow.NodeID(4), hovered(m))
}

func TestEditSelectAndLabel(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(t, m, keyTab, keyTab, keyEnter)
	require.Equal(t, workflow.NodeID(2), selected(m))
	assert.False(t, m.editing)

	m, _ = press(t, m, keyEnter)
	require.True(t, m.editing, "second enter focuses the label field")

	m, cmd := press(t, m, runes("!q"))
	assert.Nil(t, cmd, "q while editing is text, not quit")
	n, _ := m.session.Graph().Node(2)
	assert.Equal(t, "Transform!q", n.Label)

	m, _ = press(t, m, keyBackspace, keyBackspace, runes(" "), keyEnter)
	n, _ = m.session.Graph().Node(2)
	assert.Equal(t, "Transform ", n.Label)
	assert.False(t, m.editing)
}

func TestEditEscClearsSelection(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, keyTab, keyEnter, keyEnter)
	require.True(t, m.editing)

	m, _ = press(t, m, keyEsc)
	assert.False(t, m.editing, "first esc leaves the field")
	assert.Equal(t, workflow.NodeID(1), selected(m))

	m, _ = press(t, m, keyEsc)
	_, ok := m.session.Selection().Selected()
	assert.False(t, ok, "second esc clears the selection")
}

func TestEditCycleType(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, keyTab, keyEnter, keyCtrlT)

	n, _ := m.session.Graph().Node(1)
	assert.Equal(t, catalog.TypeAction, n.Type)

	m, _ = press(t, m, keyCtrlT, keyCtrlT, keyCtrlT)
	n, _ = m.session.Graph().Node(1)
	assert.Equal(t, catalog.TypeTrigger, n.Type, "cycle wraps")
}

func TestEditDeleteAndPrune(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, keyTab, keyTab, keyEnter, keyCtrlD)

	g := m.session.Graph()
	assert.Equal(t, 3, g.NodeCount())
	assert.Equal(t, 3, g.ConnectionCount(), "connections survive until pruned")
	assert.False(t, m.session.Inspector().Visible())

	m, _ = press(t, m, runes("p"))
	assert.Equal(t, 1, g.ConnectionCount())
	assert.Equal(t, "pruned 2 connections", m.status)
}

func TestEditCreateFromPalette(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, runes("2"))

	g := m.session.Graph()
	require.Equal(t, 5, g.NodeCount())
	n, ok := g.Node(5)
	require.True(t, ok)
	assert.Equal(t, catalog.TypeAction, n.Type)
	assert.Equal(t, workflow.Point{X: 900, Y: 200}, n.Position)
	assert.Equal(t, workflow.NodeID(5), hovered(m), "new node is hovered")

	m, _ = press(t, m, runes("9"))
	assert.Equal(t, 5, g.NodeCount(), "no ninth palette type")
}

func TestEditConnect(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, keyTab, keyEnter, keyTab, keyTab, keyTab, runes("c"))

	g := m.session.Graph()
	assert.Equal(t, 4, g.ConnectionCount())
	var found bool
	for c := range g.Connections() {
		found = found || c == workflow.Connection{From: 1, To: 4}
	}
	assert.True(t, found, "1 → 4 connected")

	m, _ = press(t, m, keyEsc, runes("c"))
	assert.Equal(t, 4, g.ConnectionCount(), "connect needs a selection")
	assert.Contains(t, m.status, "select a node")
}

func TestEditExport(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, keyTab, keyEnter, keyCtrlD, keyCtrlS)

	require.Equal(t, m.path, m.exported)
	snap, err := graph.ReadFile(m.path)
	require.NoError(t, err)
	assert.Len(t, snap.Nodes, 3)
	assert.Len(t, snap.Connections, 3)
}

func TestEditQuit(t *testing.T) {
	_, cmd := press(t, newTestModel(t), runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = press(t, newTestModel(t), tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
}

func TestEditView(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	view := m.View()
	assert.Contains(t, view, "Palette")
	assert.Contains(t, view, "Integration")

	m, _ = press(t, m, keyTab, keyEnter)
	view = m.View()
	assert.Contains(t, view, "Inspector")
	assert.Contains(t, view, "#1")
	assert.Contains(t, view, "Webhook")
	assert.Less(t, len(strings.Split(view, "\n")), 41, "view fits the terminal")
}

type recordingCommands struct{ kinds []string }

func (r *recordingCommands) OnCommand(_ context.Context, kind string, _ bool) {
	r.kinds = append(r.kinds, kind)
}

func TestEditReportsCommands(t *testing.T) {
	rec := &recordingCommands{}
	observability.SetCommandHooks(rec)
	t.Cleanup(observability.Reset)

	press(t, newTestModel(t), keyTab, keyEnter, runes("p"))
	assert.Equal(t, []string{"enter", "click", "prune"}, rec.kinds)
}
