// Package termview prints gauges and fleet summaries for the terminal.
package termview

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/solardome/stratum/internal/catalog"
	"github.com/solardome/stratum/internal/gauge"
	"github.com/solardome/stratum/internal/report"
	"github.com/solardome/stratum/internal/scoring"
)

// Theme uses ANSI 256-color codes so output degrades cleanly on basic terminals.
type Theme struct {
	Healthy  lipgloss.Color
	Warning  lipgloss.Color
	Critical lipgloss.Color
	Info     lipgloss.Color
	Faint    lipgloss.Color
	Header   lipgloss.Color
	Track    lipgloss.Color
}

var DefaultTheme = Theme{
	Healthy:  lipgloss.Color("42"),
	Warning:  lipgloss.Color("214"),
	Critical: lipgloss.Color("203"),
	Info:     lipgloss.Color("39"),
	Faint:    lipgloss.Color("245"),
	Header:   lipgloss.Color("111"),
	Track:    lipgloss.Color("238"),
}

func (t Theme) severity(sev gauge.Severity) lipgloss.Color {
	switch sev {
	case gauge.SeverityHealthy:
		return t.Healthy
	case gauge.SeverityWarning:
		return t.Warning
	default:
		return t.Critical
	}
}

func (t Theme) tone(tone string) lipgloss.Color {
	switch tone {
	case scoring.ToneSuccess:
		return t.Healthy
	case scoring.ToneWarning:
		return t.Warning
	case scoring.ToneError:
		return t.Critical
	case scoring.ToneInfo:
		return t.Info
	default:
		return t.Faint
	}
}

type Renderer struct {
	Theme Theme
	Width int
}

func New() Renderer {
	return Renderer{Theme: DefaultTheme, Width: 30}
}

// Gauge draws the arc as a horizontal meter filled by visual progress, followed by
// the score label. Progress outside 0..100 is pinned to the meter's ends.
func (r Renderer) Gauge(g gauge.Gauge) string {
	width := r.Width
	if width <= 0 {
		width = 30
	}
	cells := 0.0
	if !math.IsNaN(g.Progress) {
		cells = math.Round(g.Progress / 100 * float64(width))
	}
	cells = math.Max(0, math.Min(cells, float64(width)))
	filled := int(cells)
	bar := lipgloss.NewStyle().Foreground(r.Theme.severity(g.Severity)).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(r.Theme.Track).Render(strings.Repeat("░", width-filled))
	label := lipgloss.NewStyle().Bold(true).Foreground(r.Theme.severity(g.Severity)).Render(g.Label)
	caption := lipgloss.NewStyle().Foreground(r.Theme.Faint).Render(g.Caption)
	return "[" + bar + "] " + label + " " + caption
}

// Summary renders the fleet gauge, stat cards and any violations in ds.
func (r Renderer) Summary(ds *catalog.Dataset) string {
	sum := scoring.Summarize(report.FleetOf(ds), gauge.SizeLarge)
	header := lipgloss.NewStyle().Bold(true).Foreground(r.Theme.Header)
	faint := lipgloss.NewStyle().Foreground(r.Theme.Faint)

	var b strings.Builder
	b.WriteString(header.Render("Stratum - Platform Compliance"))
	b.WriteString("\n")
	if ds.Fleet.LastScan != "" {
		b.WriteString(faint.Render("last scan " + ds.Fleet.LastScan))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(r.Gauge(sum.Gauge))
	b.WriteString("\n\n")

	for _, c := range sum.Cards {
		value := lipgloss.NewStyle().Bold(true).Foreground(r.Theme.tone(c.Tone)).Render(c.Value)
		fmt.Fprintf(&b, "  %s %s\n", lipgloss.NewStyle().Width(18).Render(c.Title), value)
	}

	if len(ds.Alerts) > 0 {
		b.WriteString("\n")
		b.WriteString(header.Render("Violations"))
		b.WriteString("\n")
		bad := lipgloss.NewStyle().Foreground(r.Theme.Critical)
		for _, a := range ds.Alerts {
			line := fmt.Sprintf("  %s %s (%s) %s", bad.Render("✗"), a.Instance.Name, a.Instance.InstanceID, a.Message)
			if a.TicketID != "" {
				line += faint.Render(" -> " + a.TicketID)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	fmt.Fprintf(&b, "\n%s\n", faint.Render(fmt.Sprintf("%d open tickets, %d standards", ds.OpenTickets(), len(ds.Standards))))
	return b.String()
}
