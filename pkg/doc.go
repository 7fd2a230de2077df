// Package pkg provides the core libraries for Flowboard, a workflow graph
// editor.
//
// # Overview
//
// A workflow is a directed graph of typed nodes ("trigger", "action",
// "integration", "output") placed on a canvas. The libraries here model the
// graph, the editing state around it, and the renderers that draw it. The
// CLI, the terminal editor and the HTTP shell are thin layers on top.
//
// # Architecture
//
// Input flows in as discrete events and diagrams flow out:
//
//	key press / pointer / HTTP request
//	         ↓
//	    [editor] Session.Apply (event dispatch)
//	         ↓
//	    [workflow] graph + [selection] + [inspector] + [palette]
//	         ↓
//	    [render/canvas] Render (pure projection to a Diagram)
//	         ↓
//	    SVG / JSON / terminal, or [pipeline] for PNG / PDF / DOT
//
// # Quick Start
//
//	s := editor.New(nil, editor.WithSeed(graph.DefaultSeed()))
//	s.Apply(editor.Click(2))
//	s.Apply(editor.SetLabel("Normalize"))
//
//	d := s.Diagram(canvas.WithTheme(canvas.ThemeLight))
//	svg := sink.RenderSVG(d, sink.WithInspector())
//
// # Main Packages
//
// Core, single-threaded and free of I/O:
//
//   - [catalog]: node type metadata with a fallback for unknown tags
//   - [workflow]: nodes, connections, monotonic ids
//   - [selection]: selected and hovered node
//   - [inspector]: edits the selected node
//   - [palette]: creates nodes from catalog types
//   - [editor]: the owned session and its event table
//   - [render/canvas]: diagram projection and the drawing surface
//
// Around the core:
//
//   - [graph]: the JSON seed/snapshot format
//   - [render/nodelink]: Graphviz export
//   - [pipeline]: format dispatch and artifact caching
//   - [cache]: null, file and Redis artifact caches
//   - [server]: the HTTP editing shell
//   - [observability]: render, cache, command and HTTP hooks
//   - [errors]: coded errors for shell boundaries
//
// [catalog]: https://pkg.go.dev/github.com/matzehuels/flowboard/pkg/catalog
// [workflow]: https://pkg.go.dev/github.com/matzehuels/flowboard/pkg/workflow
// [selection]: https://pkg.go.dev/github.com/matzehuels/flowboard/pkg/selection
// [inspector]: https://pkg.go.dev/github.com/matzehuels/flowboard/pkg/inspector
// [palette]: https://pkg.go.dev/github.com/matzehuels/flowboard/pkg/palette
// [editor]: https://pkg.go.dev/github.com/matzehuels/flowboard/pkg/editor
// [render/canvas]: https://pkg.go.dev/github.com/matzehuels/flowboard/pkg/render/canvas
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/flowboard/pkg/render/nodelink
// [graph]: https://pkg.go.dev/github.com/matzehuels/flowboard/pkg/graph
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/flowboard/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/flowboard/pkg/cache
// [server]: https://pkg.go.dev/github.com/matzehuels/flowboard/pkg/server
// [observability]: https://pkg.go.dev/github.com/matzehuels/flowboard/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/flowboard/pkg/errors
package pkg
