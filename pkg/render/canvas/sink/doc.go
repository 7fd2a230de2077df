// Package sink draws canvas diagrams into concrete output formats.
//
// # Overview
//
// A "sink" turns a [canvas.Diagram] into something a shell can show:
//
//   - SVG: a standalone document, optionally with hover/click script and
//     the inspector panel
//   - JSON: the diagram description for external renderers
//   - Terminal: a character grid for the interactive editor
//
// SVG and Terminal both implement [canvas.Surface] and are driven by
// [canvas.Draw], so every sink sees the same layers in the same order.
//
// # SVG Output
//
//	svg := sink.RenderSVG(d, sink.WithInteraction(), sink.WithInspector())
//
// Connections are emitted as <path class="connection"> followed by a
// <circle class="marker">. Each node is a <g class="workflow-node ...">
// carrying its id in data-node.
//
// PDF and PNG output go through [render.ToPDF] and [render.ToPNG] on the
// SVG bytes.
//
// # Terminal Output
//
//	term := sink.NewTerminal(100, 30)
//	canvas.Draw(d, term)
//	fmt.Println(term.String())
//
// [render.ToPDF]: github.com/matzehuels/flowboard/pkg/render.ToPDF
// [render.ToPNG]: github.com/matzehuels/flowboard/pkg/render.ToPNG
package sink
