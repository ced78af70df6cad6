package dashboard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/solardome/stratum/internal/gauge"
)

// GaugeHTML renders g as inline SVG styled by the page's theme classes.
func GaugeHTML(g gauge.Gauge) string {
	vb := strconv.Itoa(g.ViewBox)
	c := num(g.Center)
	var b strings.Builder
	fmt.Fprintf(&b, `<div class="gauge gauge-%s" data-severity="%s">`, esc(string(g.Size)), esc(string(g.Severity)))
	fmt.Fprintf(&b, `<svg width="%s" height="%s" viewBox="0 0 %s %s" role="img" aria-label="%s %s">`, vb, vb, vb, vb, esc(g.Label), esc(g.Caption))
	fmt.Fprintf(&b, `<g transform="rotate(-90 %s %s)">`, c, c)
	fmt.Fprintf(&b, `<circle class="gauge-track" cx="%s" cy="%s" r="%s" fill="none" stroke-width="%s"/>`, c, c, num(g.Radius), num(g.StrokeWidth))
	fmt.Fprintf(&b, `<circle class="%s" cx="%s" cy="%s" r="%s" fill="none" stroke-width="%s" stroke-linecap="round" stroke-dasharray="%s" stroke-dashoffset="%s"/>`,
		esc(g.StrokeClass), c, c, num(g.Radius), num(g.StrokeWidth), num(g.DashArray), num(g.DashOffset))
	b.WriteString(`</g>`)
	fmt.Fprintf(&b, `<text class="%s %s" x="%s" y="%s" text-anchor="middle" dominant-baseline="middle">%s</text>`, esc(g.TextClass), esc(g.TextSize), c, c, esc(g.Label))
	fmt.Fprintf(&b, `<text class="gauge-caption %s" x="%s" y="%s" text-anchor="middle">%s</text>`, esc(g.LabelSize), c, num(g.Center+g.Radius/2), esc(g.Caption))
	b.WriteString(`</svg></div>`)
	return b.String()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func severityFill(sev gauge.Severity) string {
	return "fill-" + sev.Color()
}
