package chart

import (
	"fmt"
	"html"
	"strings"
)

// SVG serialises the chart as a standalone SVG document.
func (c *VectorChart) SVG() string {
	var b strings.Builder
	baseline := num(c.Baseline())
	left, right := num(c.Padding.Left), num(c.Padding.Left+c.PlotWidth())

	fmt.Fprintf(&b, `<svg width="%s" height="%s" xmlns="http://www.w3.org/2000/svg" style="font-family:Arial,sans-serif;">`+"\n",
		num(c.Width), num(c.Height))

	for _, y := range c.GridLines {
		fmt.Fprintf(&b, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="#E5E7EB" stroke-width="0.5" stroke-dasharray="3,3" opacity="0.5"/>`+"\n",
			left, num(y), right, num(y))
	}

	fmt.Fprintf(&b, `<path d="%s" fill="%s" opacity="0.2"/>`+"\n", c.FillPath, ColorLineSoft)
	fmt.Fprintf(&b, `<path d="%s" stroke="%s" stroke-width="2.5" fill="none" stroke-linecap="round" stroke-linejoin="round"/>`+"\n",
		c.LinePath, ColorLineStrong)

	for _, p := range c.Points {
		fmt.Fprintf(&b, `<circle cx="%s" cy="%s" r="4.5" fill="%s" stroke="white" stroke-width="1.5"/>`+"\n",
			num(p.X), num(p.Y), ColorPrimary)
		fmt.Fprintf(&b, `<text x="%s" y="%s" text-anchor="middle" font-size="11" font-weight="600" fill="%s">%d</text>`+"\n",
			num(p.X), num(p.Y-12), ColorPrimary, p.Value)
	}

	labelY := num(c.Padding.Top + c.PlotHeight() + 25)
	for _, p := range c.Points {
		fmt.Fprintf(&b, `<text x="%s" y="%s" text-anchor="middle" font-size="11" fill="#374151">%s</text>`+"\n",
			num(p.X), labelY, html.EscapeString(p.Label))
	}

	fmt.Fprintf(&b, `<text x="%s" y="20" text-anchor="middle" font-size="13" font-weight="500" fill="%s">%s</text>`+"\n",
		num(c.Width/2), ColorPrimary, html.EscapeString(c.Title))
	fmt.Fprintf(&b, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="#D1D5DB" stroke-width="1"/>`+"\n",
		left, baseline, right, baseline)
	b.WriteString("</svg>")
	return b.String()
}
