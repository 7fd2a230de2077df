// Package render provides visualization output for workflow graphs.
//
// # Overview
//
// This package holds the format conversion shared by every renderer. The
// renderers themselves live in subpackages:
//
//   - [canvas]: the editor diagram (grid, edges, nodes, inspector)
//   - [canvas/sink]: SVG, JSON and terminal output for canvas diagrams
//   - [nodelink]: Graphviz node-link export
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG using the external rsvg-convert tool
// (from librsvg). Both the canvas and node-link renderers use them.
//
//	svg := sink.RenderSVG(canvas.Render(g, sel))
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [canvas]: github.com/matzehuels/flowboard/pkg/render/canvas
// [canvas/sink]: github.com/matzehuels/flowboard/pkg/render/canvas/sink
// [nodelink]: github.com/matzehuels/flowboard/pkg/render/nodelink
package render
