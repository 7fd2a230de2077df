// Package nodelink exports workflow graphs as Graphviz node-link diagrams.
//
// # Overview
//
// The canvas renderer is the editor's own view. This package is the
// interchange path: it writes DOT source that any Graphviz tool can read,
// and renders it in-process for SVG, PDF and PNG export.
//
// # Usage
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(dot)
//	png, err := nodelink.RenderPNG(dot, 2.0)  // 2x scale
//
// # DOT Format
//
// Nodes keep their editor positions via pinned pos attributes and the
// neato engine. Fill and stroke follow the catalog, with unknown types
// drawn dashed. Only valid connections are exported.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
