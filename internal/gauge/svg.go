package gauge

import (
	"fmt"
	"html"
	"strconv"
	"strings"
)

// Palette holds the concrete colors the standalone SVG uses in place of CSS classes.
type Palette struct {
	Track    string
	Healthy  string
	Warning  string
	Critical string
	Muted    string
	Font     string
}

func DefaultPalette() Palette {
	return Palette{
		Track:    "#e2e8f0",
		Healthy:  "#1fa971",
		Warning:  "#f59e0b",
		Critical: "#ef4444",
		Muted:    "#64748b",
		Font:     "Inter, system-ui, sans-serif",
	}
}

func (p Palette) stroke(sev Severity) string {
	switch sev {
	case SeverityHealthy:
		return p.Healthy
	case SeverityWarning:
		return p.Warning
	default:
		return p.Critical
	}
}

// SVG renders g as a self-contained image: the rings are rotated so the arc starts at
// twelve o'clock and the text stays upright.
func SVG(g Gauge) string {
	return SVGWithPalette(g, DefaultPalette())
}

func SVGWithPalette(g Gauge, p Palette) string {
	vb := strconv.Itoa(g.ViewBox)
	c := num(g.Center)
	geo, _ := GeometryFor(g.Size)

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s" role="img" aria-label="%s %s">`, vb, vb, vb, vb, esc(g.Label), esc(g.Caption))
	fmt.Fprintf(&b, `<g transform="rotate(-90 %s %s)">`, c, c)
	fmt.Fprintf(&b, `<circle cx="%s" cy="%s" r="%s" fill="none" stroke="%s" stroke-width="%s" stroke-linecap="round"/>`, c, c, num(g.Radius), esc(p.Track), num(g.StrokeWidth))
	fmt.Fprintf(&b, `<circle class="%s" cx="%s" cy="%s" r="%s" fill="none" stroke="%s" stroke-width="%s" stroke-linecap="round" stroke-dasharray="%s" stroke-dashoffset="%s"/>`, esc(g.StrokeClass), c, c, num(g.Radius), esc(p.stroke(g.Severity)), num(g.StrokeWidth), num(g.DashArray), num(g.DashOffset))
	b.WriteString(`</g>`)
	fmt.Fprintf(&b, `<text class="%s" x="%s" y="%s" text-anchor="middle" dominant-baseline="middle" font-family="%s" font-size="%d" font-weight="700" fill="%s">%s</text>`, esc(g.TextClass), c, c, esc(p.Font), geo.TextPx, esc(p.stroke(g.Severity)), esc(g.Label))
	fmt.Fprintf(&b, `<text x="%s" y="%s" text-anchor="middle" font-family="%s" font-size="%d" font-weight="500" fill="%s">%s</text>`, c, num(g.Center+float64(geo.TextPx)/2+float64(geo.LabelPx)), esc(p.Font), geo.LabelPx, esc(p.Muted), esc(g.Caption))
	b.WriteString(`</svg>`)
	return b.String()
}

// num prints the shortest decimal that round-trips, so identical gauges emit identical markup.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func esc(s string) string {
	return html.EscapeString(s)
}
