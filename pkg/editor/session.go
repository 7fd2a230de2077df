// Package editor ties the workflow graph, selection, inspector and palette
// into one editing session driven by discrete input events.
//
// A [Session] is the single owner of all editing state. Shells translate
// their raw input (key presses, pointer coordinates, HTTP requests) into
// [Event] values, call [Session.Apply], and redraw from [Session.Diagram].
// Sessions are not safe for concurrent use; shells that share one across
// goroutines must serialize access.
package editor

import (
	"github.com/matzehuels/flowboard/pkg/catalog"
	"github.com/matzehuels/flowboard/pkg/graph"
	"github.com/matzehuels/flowboard/pkg/inspector"
	"github.com/matzehuels/flowboard/pkg/palette"
	"github.com/matzehuels/flowboard/pkg/render/canvas"
	"github.com/matzehuels/flowboard/pkg/selection"
	"github.com/matzehuels/flowboard/pkg/workflow"
)

// Session is the owned editing state.
type Session struct {
	catalog   *catalog.Catalog
	graph     *workflow.Graph
	sel       *selection.Controller
	inspector *inspector.Panel
	palette   *palette.Palette
}

// Option configures a new session.
type Option func(*Session)

// WithSeed loads s into the session's graph.
func WithSeed(s graph.Snapshot) Option {
	return func(sess *Session) { s.Apply(sess.graph) }
}

// New creates a session with an empty graph. A nil catalog means
// [catalog.Default].
func New(cat *catalog.Catalog, opts ...Option) *Session {
	if cat == nil {
		cat = catalog.Default()
	}
	g := workflow.New(cat)
	sel := selection.New()
	s := &Session{
		catalog:   cat,
		graph:     g,
		sel:       sel,
		inspector: inspector.New(g, sel, cat),
		palette:   palette.New(g, cat),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog returns the node type table the session was built with.
func (s *Session) Catalog() *catalog.Catalog { return s.catalog }

// Graph returns the session's graph.
func (s *Session) Graph() *workflow.Graph { return s.graph }

// Selection returns the selected and hovered node state.
func (s *Session) Selection() *selection.Controller { return s.sel }

// Inspector returns the panel bound to the current selection.
func (s *Session) Inspector() *inspector.Panel { return s.inspector }

// Palette returns the node palette.
func (s *Session) Palette() *palette.Palette { return s.palette }

// Apply dispatches ev and reports its effect. Unknown kinds, missing fields
// and unknown node ids are no-ops with Changed=false.
func (s *Session) Apply(ev Event) Result {
	r := Result{Kind: ev.Kind}
	switch ev.Kind {
	case KindClick:
		r.Changed = s.click(ev)
	case KindEnter:
		if id, ok := s.target(ev); ok {
			s.sel.Hover(id)
			r.Changed = true
		}
	case KindLeave:
		_, r.Changed = s.sel.Hovered()
		s.sel.Leave()
	case KindReset:
		_, r.Changed = s.sel.Selected()
		s.sel.Clear()
	case KindLabel:
		if ev.Text != nil {
			r.Changed = s.inspector.SetLabel(*ev.Text)
		}
	case KindType:
		r.Changed = s.inspector.SetType(ev.Type)
	case KindDelete:
		r.Changed = s.inspector.Delete()
	case KindCreate:
		pos := s.palette.NextSlot()
		if ev.Position != nil {
			pos = *ev.Position
		}
		n, ok := s.palette.Create(ev.Type, pos)
		if ok && ev.Text != nil && *ev.Text != "" {
			s.graph.UpdateNode(n.ID, workflow.Patch{Label: ev.Text})
			n, _ = s.graph.Node(n.ID)
		}
		if ok {
			r.Changed, r.Node = true, &n
		}
	case KindConnect:
		if ev.From != nil && ev.To != nil {
			c := s.graph.Connect(*ev.From, *ev.To)
			r.Changed, r.Connection = true, &c
		}
	case KindDisconnect:
		if ev.From != nil && ev.To != nil && s.graph.Disconnect(*ev.From, *ev.To) {
			r.Changed = true
			r.Connection = &workflow.Connection{From: *ev.From, To: *ev.To}
		}
	case KindMove:
		if ev.Node == nil || ev.Position == nil {
			break
		}
		if _, ok := s.graph.Node(*ev.Node); ok {
			s.graph.UpdateNode(*ev.Node, workflow.Patch{Position: ev.Position})
			n, _ := s.graph.Node(*ev.Node)
			r.Changed, r.Node = true, &n
		}
	case KindPrune:
		r.Pruned = s.graph.Prune()
		r.Changed = r.Pruned > 0
	}
	return r
}

func (s *Session) click(ev Event) bool {
	if ev.Node == nil && ev.Position == nil {
		_, had := s.sel.Selected()
		s.sel.Clear()
		return had
	}
	if ev.Node == nil {
		id, ok := s.HitTest(*ev.Position)
		if !ok {
			_, had := s.sel.Selected()
			s.sel.Clear()
			return had
		}
		s.sel.Select(id)
		return true
	}
	if _, ok := s.graph.Node(*ev.Node); !ok {
		return false
	}
	s.sel.Select(*ev.Node)
	return true
}

// target resolves an event's node reference, directly or by hit test.
func (s *Session) target(ev Event) (workflow.NodeID, bool) {
	switch {
	case ev.Node != nil:
		_, ok := s.graph.Node(*ev.Node)
		return *ev.Node, ok
	case ev.Position != nil:
		return s.HitTest(*ev.Position)
	}
	return 0, false
}

// HitTest returns the topmost node whose box contains p. Nodes drawn later
// are on top, so the last match in insertion order wins.
func (s *Session) HitTest(p workflow.Point) (workflow.NodeID, bool) {
	var (
		hit   workflow.NodeID
		found bool
	)
	for n := range s.graph.Nodes() {
		if canvas.NodeBox(n.Position).Contains(p) {
			hit, found = n.ID, true
		}
	}
	return hit, found
}

// Diagram renders the current state. The session's catalog is applied
// before opts.
func (s *Session) Diagram(opts ...canvas.Option) canvas.Diagram {
	return canvas.Render(s.graph, s.sel, append([]canvas.Option{canvas.WithCatalog(s.catalog)}, opts...)...)
}

// Snapshot captures the graph in wire form.
func (s *Session) Snapshot() graph.Snapshot { return graph.FromWorkflow(s.graph) }
