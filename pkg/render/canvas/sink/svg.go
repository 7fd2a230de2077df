package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/flowboard/pkg/render/canvas"
	"github.com/matzehuels/flowboard/pkg/workflow"
)

const nodeInteractionCSS = `
    .workflow-node { cursor: pointer; }
    .workflow-node .node-rect { transition: stroke-width 0.2s ease, fill-opacity 0.2s ease; }
    .workflow-node.hovered .node-rect { stroke-width: 3; fill-opacity: 0.3; }
    .workflow-node.selected .node-rect { stroke-width: 4; fill-opacity: 0.35; }
    .connection { transition: stroke-width 0.2s ease; }`

const nodeInteractionJS = `
    document.querySelectorAll('.workflow-node').forEach(el => {
      el.addEventListener('mouseenter', () => el.classList.add('hovered'));
      el.addEventListener('mouseleave', () => el.classList.remove('hovered'));
      el.addEventListener('click', ev => {
        ev.stopPropagation();
        document.querySelectorAll('.workflow-node.selected').forEach(s => s.classList.remove('selected'));
        el.classList.add('selected');
      });
    });
    document.documentElement.addEventListener('click', () => {
      document.querySelectorAll('.workflow-node.selected').forEach(s => s.classList.remove('selected'));
    });`

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	interaction bool
	inspector   bool
}

// WithInteraction embeds CSS and script for client-side hover and click
// highlighting.
func WithInteraction() SVGOption { return func(r *svgRenderer) { r.interaction = true } }

// WithInspector draws the inspector overlay when the diagram has one.
func WithInspector() SVGOption { return func(r *svgRenderer) { r.inspector = true } }

// RenderSVG draws d as a standalone SVG document.
func RenderSVG(d canvas.Diagram, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	s := &svgSurface{}
	canvas.Draw(d, s)

	if r.inspector && d.Inspector != nil {
		renderInspector(&s.buf, d.Theme, *d.Inspector)
	}
	if r.interaction {
		renderNodeInteraction(&s.buf)
	}
	s.buf.WriteString("</svg>\n")
	return s.buf.Bytes()
}

// svgSurface writes primitives as SVG elements. End leaves the root element
// open so RenderSVG can append overlays.
type svgSurface struct {
	buf   bytes.Buffer
	theme canvas.Theme
}

func (s *svgSurface) Begin(width, height float64, th canvas.Theme) {
	s.theme = th
	fmt.Fprintf(&s.buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&s.buf, `  <rect class="background" width="100%%" height="100%%" fill="%s"/>`+"\n", escapeXML(th.Background))
}

func (s *svgSurface) Pattern(g canvas.Grid) {
	s.buf.WriteString("  <defs>\n")
	fmt.Fprintf(&s.buf, `    <pattern id="grid" width="%.0f" height="%.0f" patternUnits="userSpaceOnUse">`+"\n", g.Size, g.Size)
	fmt.Fprintf(&s.buf, `      <path d="M %.0f 0 L 0 0 0 %.0f" fill="none" stroke="%s" stroke-width="1"/>`+"\n", g.Size, g.Size, escapeXML(g.Stroke))
	s.buf.WriteString("    </pattern>\n")
	s.buf.WriteString(`    <linearGradient id="connection-gradient" x1="0%" y1="0%" x2="100%" y2="0%">` + "\n")
	fmt.Fprintf(&s.buf, `      <stop offset="0%%" stop-color="%s" stop-opacity="%.2g"/>`+"\n", escapeXML(s.theme.EdgeFrom), s.theme.EdgeOpacity)
	fmt.Fprintf(&s.buf, `      <stop offset="100%%" stop-color="%s" stop-opacity="%.2g"/>`+"\n", escapeXML(s.theme.EdgeTo), s.theme.EdgeOpacity)
	s.buf.WriteString("    </linearGradient>\n")
	s.buf.WriteString("  </defs>\n")
	s.buf.WriteString(`  <rect class="grid" width="100%" height="100%" fill="url(#grid)"/>` + "\n")
}

func (s *svgSurface) Path(from, to workflow.Point, p canvas.Paint) {
	fmt.Fprintf(&s.buf, `  <path class="%s" d="M %.1f %.1f L %.1f %.1f" stroke="url(#connection-gradient)" stroke-width="%.0f" fill="none"/>`+"\n",
		escapeXML(p.Class), from.X, from.Y, to.X, to.Y, p.StrokeWidth)
}

func (s *svgSurface) Circle(c workflow.Point, r float64, p canvas.Paint) {
	fmt.Fprintf(&s.buf, `  <circle class="%s" cx="%.1f" cy="%.1f" r="%.0f" fill="%s"/>`+"\n", escapeXML(p.Class), c.X, c.Y, r, escapeXML(p.Fill))
}

func (s *svgSurface) Group(id workflow.NodeID, classes []string) {
	fmt.Fprintf(&s.buf, `  <g id="%s" class="%s" data-node="%d">`+"\n", escapeXML(canvas.NodeElementID(id)), escapeXML(canvas.ClassList(classes)), id)
}

func (s *svgSurface) RoundedRect(b canvas.Rect, r float64, p canvas.Paint) {
	fmt.Fprintf(&s.buf, `    <rect class="%s" x="%.1f" y="%.1f" width="%.0f" height="%.0f" rx="%.0f" fill="%s" fill-opacity="%.2g" stroke="%s" stroke-width="%.0f"/>`+"\n",
		escapeXML(p.Class), b.X, b.Y, b.W, b.H, r, escapeXML(p.Fill), p.FillOpacity, escapeXML(p.Stroke), p.StrokeWidth)
}

func (s *svgSurface) Text(at workflow.Point, text string, f canvas.Font) {
	fmt.Fprintf(&s.buf, `    <text class="%s" x="%.1f" y="%.1f" text-anchor="middle" font-size="%.0f"`, escapeXML(f.Class), at.X, at.Y, f.Size)
	if f.Weight > 0 {
		fmt.Fprintf(&s.buf, ` font-weight="%d"`, f.Weight)
	}
	if f.Color != "" {
		fmt.Fprintf(&s.buf, ` fill="%s"`, escapeXML(f.Color))
	}
	fmt.Fprintf(&s.buf, ">%s</text>\n", escapeXML(text))
}

func (s *svgSurface) Ungroup() { s.buf.WriteString("  </g>\n") }

func (s *svgSurface) End() {}

func renderInspector(buf *bytes.Buffer, th canvas.Theme, in canvas.Inspector) {
	b := in.Box
	pad := 16.0
	x := b.X + pad
	w := b.W - 2*pad

	typeLabel := in.Type
	for _, e := range in.Options {
		if e.Type == in.Type {
			typeLabel = e.Label
			break
		}
	}

	fmt.Fprintf(buf, `  <g class="inspector" data-node="%d">`+"\n", in.NodeID)
	fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.0f" height="%.0f" rx="8" fill="%s" stroke="%s"/>`+"\n",
		b.X, b.Y, b.W, b.H, escapeXML(th.PanelFill), escapeXML(th.PanelStroke))
	fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" font-size="14" font-weight="600" fill="%s">Node Settings</text>`+"\n",
		x, b.Y+28, escapeXML(th.PanelText))
	renderField(buf, th, x, b.Y+54, w, "Node Name", in.Label, "inspector-label")
	renderField(buf, th, x, b.Y+112, w, "Node Type", typeLabel, "inspector-type")
	fmt.Fprintf(buf, `    <rect class="btn-delete" x="%.1f" y="%.1f" width="%.0f" height="28" rx="6" fill="#ff6b6b" fill-opacity="0.2" stroke="#ff6b6b"/>`+"\n",
		x, b.Y+170, w)
	fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" text-anchor="middle" font-size="12" fill="#ff6b6b">Delete Node</text>`+"\n",
		x+w/2, b.Y+188)
	buf.WriteString("  </g>\n")
}

func renderField(buf *bytes.Buffer, th canvas.Theme, x, y, w float64, label, value, class string) {
	fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" font-size="11" fill="%s" fill-opacity="0.7">%s</text>`+"\n",
		x, y, escapeXML(th.PanelText), escapeXML(label))
	fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.0f" height="28" rx="6" fill="none" stroke="%s"/>`+"\n",
		x, y+8, w, escapeXML(th.PanelStroke))
	fmt.Fprintf(buf, `    <text class="%s" x="%.1f" y="%.1f" font-size="12" fill="%s">%s</text>`+"\n",
		escapeXML(class), x+8, y+27, escapeXML(th.PanelText), escapeXML(value))
}

func renderNodeInteraction(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "  <style>%s\n  </style>\n", nodeInteractionCSS)
	fmt.Fprintf(buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", nodeInteractionJS)
}

// escapeXML escapes s for use in element text and quoted attribute values.
func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
