package viz

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/panyam/designboard/diagram"
)

const (
	AnchorRadius     = 4.0
	ResizeHandleSize = 8.0

	cardRadius   = 6.0
	cardPadding  = 10.0
	iconRadius   = 14.0
	iconSize     = 16.0
	iconTintFill = 0.125
)

// ResizeHandle is the square at the bottom right corner of a selected card.
func ResizeHandle(n diagram.Node) diagram.Rect {
	b := n.Bounds()
	return diagram.Rect{
		X:      b.X + b.Width - ResizeHandleSize/2,
		Y:      b.Y + b.Height - ResizeHandleSize/2,
		Width:  ResizeHandleSize,
		Height: ResizeHandleSize,
	}
}

// writeNode is the one template every kind is drawn with. The kind only
// chooses the icon and the subtitle.
func writeNode(svg *bytes.Buffer, n diagram.Node, selected, editing bool, draft string) {
	info := n.Kind.Info()
	color := html.EscapeString(n.AccentColor())
	b := n.Bounds()
	cy := b.Y + b.Height/2
	iconCX := b.X + cardPadding + iconRadius

	class := "node node-" + string(n.Kind)
	if selected {
		class += " selected"
	}
	if editing {
		class += " editing"
	}
	fmt.Fprintf(svg, "    <g id=\"node-%s\" class=\"%s\" data-kind=\"%s\">\n", html.EscapeString(n.ID), class, n.Kind)
	fmt.Fprintf(svg, "      <rect class=\"node-card\" x=\"%s\" y=\"%s\" width=\"%s\" height=\"%s\" rx=\"%s\" stroke=\"%s\" />\n",
		num(b.X), num(b.Y), num(b.Width), num(b.Height), num(cardRadius), color)

	// Icon in a circle tinted with the node color.
	fmt.Fprintf(svg, "      <circle cx=\"%s\" cy=\"%s\" r=\"%s\" fill=\"%s\" fill-opacity=\"%s\" />\n",
		num(iconCX), num(cy), num(iconRadius), color, num(iconTintFill))
	fmt.Fprintf(svg, "      <svg x=\"%s\" y=\"%s\" width=\"%s\" height=\"%s\" viewBox=\"0 0 24 24\" fill=\"none\" stroke=\"%s\" stroke-width=\"2\" stroke-linecap=\"round\" stroke-linejoin=\"round\">%s</svg>\n",
		num(iconCX-iconSize/2), num(cy-iconSize/2), num(iconSize), num(iconSize), color, strings.Join(info.Icon, ""))

	textX := iconCX + iconRadius + 8
	label := n.Label
	if editing {
		label = draft
	}
	fmt.Fprintf(svg, "      <text class=\"node-label\" x=\"%s\" y=\"%s\">%s</text>\n", num(textX), num(cy-1), html.EscapeString(label))
	if editing {
		// Caret style underline marking the inline editor.
		fmt.Fprintf(svg, "      <line class=\"node-label-editor\" x1=\"%s\" y1=\"%s\" x2=\"%s\" y2=\"%s\" stroke=\"%s\" />\n",
			num(textX), num(cy+2), num(b.X+b.Width-cardPadding), num(cy+2), color)
	}
	fmt.Fprintf(svg, "      <text class=\"node-subtitle\" x=\"%s\" y=\"%s\">%s</text>\n", num(textX), num(cy+13), html.EscapeString(info.Subtitle))

	for _, a := range diagram.AllAnchors() {
		p := n.AnchorPoint(a)
		fmt.Fprintf(svg, "      <circle class=\"anchor anchor-%s\" data-anchor=\"%s\" cx=\"%s\" cy=\"%s\" r=\"%s\" fill=\"%s\" />\n",
			a.Type, a, num(p.X), num(p.Y), num(AnchorRadius), color)
	}
	if selected {
		h := ResizeHandle(n)
		fmt.Fprintf(svg, "      <rect class=\"resize-handle\" x=\"%s\" y=\"%s\" width=\"%s\" height=\"%s\" fill=\"%s\" />\n",
			num(h.X), num(h.Y), num(h.Width), num(h.Height), selectedColor)
	}
	svg.WriteString("    </g>\n")
}
