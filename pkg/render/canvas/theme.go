package canvas

import "fmt"

// Theme is the non-catalog part of the palette.
type Theme struct {
	Name        string  `json:"name"`
	Background  string  `json:"background"`
	GridStroke  string  `json:"grid_stroke"`
	LabelColor  string  `json:"label_color"`
	EdgeFrom    string  `json:"edge_from"`
	EdgeTo      string  `json:"edge_to"`
	EdgeOpacity float64 `json:"edge_opacity"`
	MarkerFill  string  `json:"marker_fill"`
	PanelFill   string  `json:"panel_fill"`
	PanelStroke string  `json:"panel_stroke"`
	PanelText   string  `json:"panel_text"`
}

var (
	// ThemeDark matches the dashboard's dark canvas.
	ThemeDark = Theme{
		Name:        "dark",
		Background:  "#1a1a2e",
		GridStroke:  "rgba(255, 255, 255, 0.05)",
		LabelColor:  "#ffffff",
		EdgeFrom:    "#ff6b6b",
		EdgeTo:      "#4ecdc4",
		EdgeOpacity: 0.6,
		MarkerFill:  "#ff6b6b",
		PanelFill:   "#16213e",
		PanelStroke: "rgba(255, 255, 255, 0.1)",
		PanelText:   "#ffffff",
	}

	// ThemeLight is a print-friendly variant.
	ThemeLight = Theme{
		Name:        "light",
		Background:  "#f7f7fb",
		GridStroke:  "rgba(0, 0, 0, 0.06)",
		LabelColor:  "#1a1a2e",
		EdgeFrom:    "#ff6b6b",
		EdgeTo:      "#4ecdc4",
		EdgeOpacity: 0.8,
		MarkerFill:  "#ff6b6b",
		PanelFill:   "#ffffff",
		PanelStroke: "rgba(0, 0, 0, 0.15)",
		PanelText:   "#1a1a2e",
	}
)

// Themes lists the built-in themes by name.
var Themes = map[string]Theme{
	ThemeDark.Name:  ThemeDark,
	ThemeLight.Name: ThemeLight,
}

// ThemeByName returns the built-in theme called name.
func ThemeByName(name string) (Theme, error) {
	th, ok := Themes[name]
	if !ok {
		return Theme{}, fmt.Errorf("unknown theme %q", name)
	}
	return th, nil
}
