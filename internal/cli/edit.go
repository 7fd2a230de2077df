package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowboard/pkg/catalog"
	"github.com/matzehuels/flowboard/pkg/editor"
	"github.com/matzehuels/flowboard/pkg/errors"
	"github.com/matzehuels/flowboard/pkg/graph"
	"github.com/matzehuels/flowboard/pkg/observability"
	"github.com/matzehuels/flowboard/pkg/render/canvas"
	"github.com/matzehuels/flowboard/pkg/render/canvas/sink"
	"github.com/matzehuels/flowboard/pkg/workflow"
)

const (
	panelWidth    = 30
	defaultCols   = 110
	defaultRows   = 32
	chromeRows    = 4 // title, status, help, spacing
	exportDefault = "flowboard.json"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1).
			Width(panelWidth)
	panelActiveStyle = panelStyle.BorderForeground(colorCyan)
	canvasStyle      = lipgloss.NewStyle().Foreground(colorGray)
	fieldLabelStyle  = lipgloss.NewStyle().Foreground(colorGray).Width(7)
	cursorStyle      = lipgloss.NewStyle().Foreground(colorCyan).Blink(true)
	optionStyle      = lipgloss.NewStyle().Foreground(colorDim)
	optionOnStyle    = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
)

// editCommand creates the interactive terminal editor.
func (c *CLI) editCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit [seed.json]",
		Short: "Edit a workflow graph in the terminal",
		Long: `Open a workflow graph in an interactive terminal editor. Without a seed
file the built-in demo graph is loaded and ctrl+s exports to ` + exportDefault + `.

Keys:
  tab / shift+tab   move the hover between nodes
  enter             select the hovered node; again to edit its label
  esc               stop editing, then clear the selection
  ctrl+t            cycle the selected node's type
  ctrl+d            delete the selected node
  1-9               add a node of the n-th palette type
  c                 connect the selected node to the hovered one
  p                 prune dangling connections
  ctrl+s            export the graph snapshot
  q                 quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			snap, err := loadSeed(input)
			if err != nil {
				return err
			}

			cfg := c.config()
			theme, err := canvas.ThemeByName(cfg.Render.Theme)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidTheme, err, "edit")
			}

			s := editor.New(cfg.BuildCatalog(), editor.WithSeed(snap))
			m := newEditModel(cmd.Context(), s, input, theme)

			final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return fmt.Errorf("editor: %w", err)
			}
			if em, ok := final.(editModel); ok && em.exported != "" {
				printSuccess("Exported %s", em.exported)
			}
			return nil
		},
	}
}

// =============================================================================
// editModel - bubbletea model over an editor session
// =============================================================================

// editModel translates key presses into session events and redraws the
// session's diagram on a terminal surface.
type editModel struct {
	ctx     context.Context
	session *editor.Session
	theme   canvas.Theme
	path    string // export target

	cols, rows int
	editing    bool // inspector label field has focus
	status     string
	exported   string
}

func newEditModel(ctx context.Context, s *editor.Session, path string, theme canvas.Theme) editModel {
	if path == "" {
		path = exportDefault
	}
	return editModel{
		ctx:     ctx,
		session: s,
		theme:   theme,
		path:    path,
		cols:    defaultCols,
		rows:    defaultRows,
		status:  "tab to move, enter to select",
	}
}

func (m editModel) Init() tea.Cmd { return nil }

func (m editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m editModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if m.editing {
		switch msg.Type {
		case tea.KeyEnter, tea.KeyEsc:
			m.editing = false
			m.status = "label saved"
		case tea.KeyBackspace:
			if form, ok := m.session.Inspector().View(); ok {
				r := []rune(form.Label)
				if len(r) > 0 {
					m.apply(editor.SetLabel(string(r[:len(r)-1])))
				}
			}
		case tea.KeyRunes, tea.KeySpace:
			text := string(msg.Runes)
			if msg.Type == tea.KeySpace {
				text = " "
			}
			if form, ok := m.session.Inspector().View(); ok {
				m.apply(editor.SetLabel(form.Label + text))
			}
		default:
			return m.handleCommand(key)
		}
		if !m.session.Inspector().Visible() {
			m.editing = false
		}
		return m, nil
	}

	switch key {
	case "q":
		return m, tea.Quit
	case "tab":
		m.moveHover(1)
	case "shift+tab":
		m.moveHover(-1)
	case "enter":
		m.enter()
	case "esc":
		if m.apply(editor.Reset()).Changed {
			m.status = "selection cleared"
		}
	case "c":
		m.connect()
	case "p":
		r := m.apply(editor.Prune())
		m.status = fmt.Sprintf("pruned %s", describe(r.Pruned, "connection"))
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.create(int(key[0] - '1'))
	default:
		return m.handleCommand(key)
	}
	return m, nil
}

// handleCommand handles the ctrl bindings, which work in both modes.
func (m editModel) handleCommand(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+t":
		m.cycleType()
	case "ctrl+d":
		if m.apply(editor.Delete()).Changed {
			m.editing = false
			m.status = "node deleted"
		}
	case "ctrl+s":
		m.export()
	}
	return m, nil
}

// apply dispatches ev and reports it to the command hooks.
func (m *editModel) apply(ev editor.Event) editor.Result {
	r := m.session.Apply(ev)
	observability.Command().OnCommand(m.ctx, string(ev.Kind), r.Changed)
	return r
}

// nodeIDs lists live node ids in insertion order.
func (m *editModel) nodeIDs() []workflow.NodeID {
	var ids []workflow.NodeID
	for n := range m.session.Graph().Nodes() {
		ids = append(ids, n.ID)
	}
	return ids
}

func (m *editModel) moveHover(step int) {
	ids := m.nodeIDs()
	if len(ids) == 0 {
		return
	}
	next := 0
	if cur, ok := m.session.Selection().Hovered(); ok {
		if i := slices.Index(ids, cur); i >= 0 {
			next = (i + step + len(ids)) % len(ids)
		}
	} else if step < 0 {
		next = len(ids) - 1
	}
	m.apply(editor.Enter(ids[next]))
	n, _ := m.session.Graph().Node(ids[next])
	m.status = fmt.Sprintf("hover #%d %s", n.ID, n.Label)
}

func (m *editModel) enter() {
	sel := m.session.Selection()
	hov, hasHov := sel.Hovered()
	cur, hasSel := sel.Selected()
	switch {
	case hasHov && (!hasSel || cur != hov) && m.apply(editor.Click(hov)).Changed:
		m.status = fmt.Sprintf("selected #%d, enter to edit the label", hov)
	case m.session.Inspector().Visible():
		m.editing = true
		m.status = "editing label, enter to finish"
	}
}

func (m *editModel) connect() {
	sel := m.session.Selection()
	from, ok1 := sel.Selected()
	to, ok2 := sel.Hovered()
	if !ok1 || !ok2 || from == to {
		m.status = "select a node, hover another, then press c"
		return
	}
	m.apply(editor.Connect(from, to))
	m.status = fmt.Sprintf("connected #%d → #%d", from, to)
}

func (m *editModel) create(i int) {
	types := m.session.Catalog().Types()
	if i >= len(types) {
		return
	}
	r := m.apply(editor.Event{Kind: editor.KindCreate, Type: types[i]})
	if r.Node != nil {
		m.apply(editor.Enter(r.Node.ID))
		m.status = fmt.Sprintf("created #%d %s", r.Node.ID, r.Node.Label)
	}
}

func (m *editModel) cycleType() {
	form, ok := m.session.Inspector().View()
	if !ok || len(form.Options) == 0 {
		return
	}
	i := slices.IndexFunc(form.Options, func(e catalog.Entry) bool { return e.Type == form.Type })
	next := form.Options[(i+1)%len(form.Options)].Type
	if m.apply(editor.SetType(next)).Changed {
		m.status = "type " + next
	}
}

func (m *editModel) export() {
	if err := graph.WriteFile(m.session.Snapshot(), m.path); err != nil {
		m.status = "export failed: " + errors.UserMessage(err)
		return
	}
	m.exported = m.path
	m.status = "exported " + m.path
}

// =============================================================================
// View
// =============================================================================

func (m editModel) View() string {
	d := m.session.Diagram(canvas.WithTheme(m.theme))

	cols := max(m.cols-panelWidth-4, 20)
	rows := max(m.rows-chromeRows, 8)
	term := sink.NewTerminal(cols, rows)
	canvas.Draw(d, term)

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(term.String()),
		" ",
		m.panel(d.Inspector),
	)

	var b strings.Builder
	b.WriteString(StyleTitle.Render(appName) + " " + StyleDim.Render(m.path))
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(StyleHighlight.Render(iconInfo) + " " + m.status)
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(m.help()))
	return b.String()
}

func (m editModel) help() string {
	if m.editing {
		return "type to edit  ⌫ delete  ⏎/esc done  ctrl+t type  ctrl+d delete"
	}
	return "⇥ hover  ⏎ select  esc clear  1-9 add  c connect  p prune  ctrl+s export  q quit"
}

// panel renders the inspector for the selected node, or the palette when
// nothing is selected.
func (m editModel) panel(in *canvas.Inspector) string {
	var b strings.Builder
	if in == nil {
		b.WriteString(StyleTitle.Render("Palette"))
		b.WriteString("\n")
		for i, item := range m.session.Palette().Items() {
			if i >= 9 {
				break
			}
			fmt.Fprintf(&b, "\n%s %s %s", StyleHighlight.Render(fmt.Sprint(i+1)), item.Glyph, item.Label)
		}
		return panelStyle.Render(b.String())
	}

	label := in.Label
	if m.editing {
		label += cursorStyle.Render("▏")
	}
	b.WriteString(StyleTitle.Render("Inspector") + " " + StyleDim.Render(fmt.Sprintf("#%d", in.NodeID)))
	b.WriteString("\n\n")
	b.WriteString(fieldLabelStyle.Render("Label") + StyleValue.Render(label))
	b.WriteString("\n")
	b.WriteString(fieldLabelStyle.Render("Type") + StyleValue.Render(in.Type))
	b.WriteString("\n")
	for _, opt := range in.Options {
		line := fmt.Sprintf("  %s %s", opt.Glyph, opt.Label)
		if opt.Type == in.Type {
			b.WriteString("\n" + optionOnStyle.Render(line))
		} else {
			b.WriteString("\n" + optionStyle.Render(line))
		}
	}

	if m.editing {
		return panelActiveStyle.Render(b.String())
	}
	return panelStyle.Render(b.String())
}
