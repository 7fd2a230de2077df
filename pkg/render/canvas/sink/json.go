package sink

import (
	"encoding/json"

	"github.com/matzehuels/flowboard/pkg/render/canvas"
)

// RenderJSON exports the diagram description as pretty-printed JSON.
//
// The document carries every layer with resolved coordinates, colors and
// classes, so an external renderer can draw the frame without access to the
// graph or catalog. Dangling connections are absent, as they are from the
// diagram itself.
func RenderJSON(d canvas.Diagram) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}
