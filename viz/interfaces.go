// Package viz routes and renders design boards: SVG for the live canvas and a
// handful of export formats for the same graph.
package viz

import (
	"fmt"
	"strings"

	"github.com/panyam/designboard/diagram"
)

// Generator turns a graph into a textual diagram.
type Generator interface {
	Generate(g diagram.Graph) (string, error)
}

// Formats lists the supported export format names.
var Formats = []string{"svg", "excalidraw", "mermaid", "dot"}

// GeneratorFor returns the generator for an export format name.
func GeneratorFor(format string) (Generator, error) {
	switch strings.ToLower(format) {
	case "", "svg":
		return &SvgRenderer{}, nil
	case "excalidraw":
		return &ExcalidrawGenerator{}, nil
	case "mermaid":
		return &MermaidGenerator{}, nil
	case "dot":
		return &DotGenerator{}, nil
	}
	return nil, fmt.Errorf("unknown format '%s', expected one of %s", format, strings.Join(Formats, ", "))
}

// ContentType is the media type served for a format.
func ContentType(format string) string {
	switch strings.ToLower(format) {
	case "", "svg":
		return "image/svg+xml"
	case "excalidraw":
		return "application/json"
	default:
		return "text/plain; charset=utf-8"
	}
}
