package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/flowboard/pkg/catalog"
	"github.com/matzehuels/flowboard/pkg/render"
	"github.com/matzehuels/flowboard/pkg/workflow"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the node id and type tag under the label.
	Detailed bool
	// Catalog supplies node colors and glyphs. Nil means the graph's catalog.
	Catalog *catalog.Catalog
}

// ToDOT converts a workflow graph to Graphviz DOT source.
//
// Nodes are pinned at their canvas positions (y flipped, since Graphviz
// grows upward), so the export keeps the editor's arrangement. Connections
// with a missing endpoint are left out.
func ToDOT(g *workflow.Graph, opts Options) string {
	cat := opts.Catalog
	if cat == nil {
		cat = g.Catalog()
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fixedsize=true, width=1.667, height=1.111, fontsize=12, fontcolor=\"#ffffff\", penwidth=2];\n")
	buf.WriteString("  edge [color=\"#ff6b6b99\", penwidth=3, arrowhead=dot, arrowsize=0.5];\n")
	buf.WriteString("\n")

	for n := range g.Nodes() {
		attrs := fmtAttrs(n, cat, opts.Detailed)
		fmt.Fprintf(&buf, "  %d [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for c := range g.Connections() {
		if !g.Valid(c) {
			continue
		}
		fmt.Fprintf(&buf, "  %d -> %d;\n", c.From, c.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n workflow.Node, glyph string, detailed bool) string {
	label := glyph + "\n" + n.Label
	if detailed {
		label += fmt.Sprintf("\n#%d · %s", n.ID, n.Type)
	}
	return label
}

func fmtAttrs(n workflow.Node, cat *catalog.Catalog, detailed bool) []string {
	entry := cat.Lookup(n.Type)
	glyph := n.Icon
	if glyph == "" {
		glyph = entry.Glyph
	}
	attrs := []string{
		fmt.Sprintf("label=%q", fmtLabel(n, glyph, detailed)),
		fmt.Sprintf("pos=\"%s,%s!\"", fmtCoord(n.Position.X), fmtCoord(-n.Position.Y)),
		fmt.Sprintf("fillcolor=\"%s33\"", cat.Fill(n.Type)),
		fmt.Sprintf("color=%q", entry.Color),
	}
	if !cat.Known(n.Type) {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"")
	}
	return attrs
}

func fmtCoord(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// RenderSVG renders a DOT graph to SVG using Graphviz's neato engine, which
// honors pinned positions.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
