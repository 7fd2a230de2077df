package pipeline

import (
	"fmt"

	"github.com/matzehuels/flowboard/pkg/errors"
	"github.com/matzehuels/flowboard/pkg/render"
	"github.com/matzehuels/flowboard/pkg/render/canvas"
	"github.com/matzehuels/flowboard/pkg/render/canvas/sink"
	"github.com/matzehuels/flowboard/pkg/render/nodelink"
)

// RenderCanvas produces one canvas artifact from a projected diagram.
func RenderCanvas(d canvas.Diagram, format string, opts Options) ([]byte, error) {
	switch format {
	case errors.FormatSVG:
		return canvasSVG(d, opts), nil
	case errors.FormatJSON:
		return sink.RenderJSON(d)
	case errors.FormatPNG:
		return convertErr(render.ToPNG(canvasSVG(d, opts), opts.Scale))
	case errors.FormatPDF:
		return convertErr(render.ToPDF(canvasSVG(d, opts)))
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported canvas format: %s", format)
	}
}

// RenderNodelink produces one nodelink artifact from DOT source.
func RenderNodelink(dot, format string, opts Options) ([]byte, error) {
	switch format {
	case errors.FormatDOT:
		return []byte(dot), nil
	case errors.FormatSVG:
		return nodelink.RenderSVG(dot)
	case errors.FormatPNG:
		return convertErr(nodelink.RenderPNG(dot, opts.Scale))
	case errors.FormatPDF:
		return convertErr(nodelink.RenderPDF(dot))
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported nodelink format: %s", format)
	}
}

func canvasSVG(d canvas.Diagram, opts Options) []byte {
	var svgOpts []sink.SVGOption
	if opts.Interactive {
		svgOpts = append(svgOpts, sink.WithInteraction())
	}
	if opts.Inspector {
		svgOpts = append(svgOpts, sink.WithInspector())
	}
	return sink.RenderSVG(d, svgOpts...)
}

// convertErr tags a missing rsvg-convert as UNSUPPORTED so shells can
// report it as such.
func convertErr(data []byte, err error) ([]byte, error) {
	if err == nil {
		return data, nil
	}
	if err == render.ErrConverterMissing {
		return nil, errors.Wrap(errors.ErrCodeUnsupported, err, "raster output needs rsvg-convert")
	}
	return nil, fmt.Errorf("convert: %w", err)
}
