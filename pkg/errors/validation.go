package errors

import (
	"path/filepath"
	"slices"
	"strings"
	"unicode"
)

// Output formats accepted by the render pipeline.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
)

// Visualization types.
const (
	VizCanvas   = "canvas"
	VizNodelink = "nodelink"
)

var formatsByViz = map[string][]string{
	VizCanvas:   {FormatSVG, FormatJSON, FormatPNG, FormatPDF},
	VizNodelink: {FormatSVG, FormatPNG, FormatPDF, FormatDOT},
}

// ValidatePath validates a file path given on the command line or in the
// config file.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No ".." element once the path is cleaned
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if slices.Contains(strings.Split(filepath.ToSlash(filepath.Clean(path)), "/"), "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}

// ValidateVizType checks that viz names a known visualization.
func ValidateVizType(viz string) error {
	if _, ok := formatsByViz[viz]; !ok {
		return New(ErrCodeInvalidVizType, "unknown visualization type %q (want canvas or nodelink)", viz)
	}
	return nil
}

// ValidateFormat checks that format can be produced for viz.
func ValidateFormat(format, viz string) error {
	if err := ValidateVizType(viz); err != nil {
		return err
	}
	if !slices.Contains(formatsByViz[viz], format) {
		return New(ErrCodeInvalidFormat, "format %q not supported for %s (want %s)",
			format, viz, strings.Join(formatsByViz[viz], ", "))
	}
	return nil
}

// Formats returns the formats viz supports, or nil for an unknown type.
func Formats(viz string) []string {
	return slices.Clone(formatsByViz[viz])
}
