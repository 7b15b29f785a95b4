package vicinity

import (
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"

	"vicmar/server/internal/geometry"
)

// RenderOverlay writes the SVG overlay drawn on top of the base map. Lots are
// emitted in draw order; hovered and selected lots use the active style.
func RenderOverlay(w io.Writer, c *Catalog, p *Palette, opts Options, hovered, selected string) error {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" preserveAspectRatio="xMidYMid meet">`,
		strconv.FormatFloat(opts.MapWidth, 'f', -1, 64), strconv.FormatFloat(opts.MapHeight, 'f', -1, 64))
	b.WriteByte('\n')

	for _, lot := range c.DrawOrder() {
		active := lot.ID == hovered || lot.ID == selected
		style := p.Style(lot.Info.Type, active)
		fmt.Fprintf(&b, `  <polygon data-lot-id="%s" data-type="%s" points="%s" fill="%s" stroke="%s" stroke-width="%d"/>`,
			html.EscapeString(lot.ID),
			html.EscapeString(lot.Info.Type),
			geometry.SVGPoints(lot.Polygon),
			html.EscapeString(style.Fill),
			html.EscapeString(style.Stroke),
			style.StrokeWidth,
		)
		b.WriteByte('\n')
	}
	b.WriteString("</svg>\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write overlay: %w", err)
	}
	return nil
}
