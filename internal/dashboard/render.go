// Package dashboard renders the Stratum pages as self-contained HTML. The same
// renderer serves live pages and writes the static site; only link targets differ.
package dashboard

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const (
	NavDashboard = "dashboard"
	NavTickets   = "tickets"
	NavStandards = "standards"
	NavReports   = "reports"
)

// Renderer builds pages. Static switches links to the file layout written by WriteSite.
type Renderer struct {
	Version string
	Static  bool
}

var (
	markdownOnce sync.Once
	markdown     goldmark.Markdown
)

func markdownEngine() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))
	})
	return markdown
}

// Markdown converts ticket text to HTML. Raw HTML in the source is dropped.
func Markdown(src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := markdownEngine().Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// href maps a route to a link. depth is how many directories below the site root
// the linking page sits when rendering statically.
func (r Renderer) href(route string, depth int) string {
	if !r.Static {
		return route
	}
	prefix := strings.Repeat("../", depth)
	return prefix + StaticFile(route)
}

// StaticFile is the site-relative file a route is written to.
func StaticFile(route string) string {
	switch route {
	case "", "/":
		return "index.html"
	default:
		return strings.TrimPrefix(route, "/") + ".html"
	}
}

func (r Renderer) page(title, active string, depth int, body func(b *strings.Builder)) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html lang=\"en\"><head><meta charset=\"utf-8\"><meta name=\"viewport\" content=\"width=device-width,initial-scale=1\">")
	fmt.Fprintf(&b, "<title>%s</title>", esc(title+" - Stratum"))
	b.WriteString(themeBootScript)
	b.WriteString(stylesheet)
	b.WriteString("</head><body><a class=\"skip-link\" href=\"#main-content\">Skip to main content</a>")

	b.WriteString(`<header class="top"><div class="top-inner">`)
	fmt.Fprintf(&b, `<a class="brand" href="%s">Stratum</a><nav aria-label="Primary">`, esc(r.href("/", depth)))
	for _, item := range []struct{ key, label, route string }{
		{NavDashboard, "Dashboard", "/"},
		{NavTickets, "Tickets", "/tickets"},
		{NavStandards, "Standards", "/standards"},
		{NavReports, "Reports", "/reports"},
	} {
		class := ""
		current := ""
		if item.key == active {
			class = ` class="active"`
			current = ` aria-current="page"`
		}
		fmt.Fprintf(&b, `<a href="%s"%s%s>%s</a>`, esc(r.href(item.route, depth)), class, current, item.label)
	}
	b.WriteString(`</nav><button id="theme-toggle" class="theme-toggle" type="button">Dark theme</button></div></header>`)

	b.WriteString(`<main id="main-content" class="shell">`)
	body(&b)
	b.WriteString(`</main>`)

	fmt.Fprintf(&b, `<footer class="foot"><div class="foot-inner"><span>Demo Environment - Stratum v%s</span><span>&copy; 2024 Stratum Technologies</span></div></footer>`, esc(r.Version))
	b.WriteString(themeToggleScript)
	b.WriteString("</body></html>")
	return b.String()
}

func esc(s string) string {
	return html.EscapeString(s)
}

// pillClass maps a scoring tone onto a pill modifier.
func pillClass(tone string) string {
	switch tone {
	case "success", "warning", "error", "info":
		return "pill " + tone
	default:
		return "pill"
	}
}
