package dashboard

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/solardome/stratum/internal/catalog"
	"github.com/solardome/stratum/internal/gauge"
	"github.com/solardome/stratum/internal/policy"
	"github.com/solardome/stratum/internal/report"
	"github.com/solardome/stratum/internal/scoring"
)

// Tickets of this type skip change-advisory review.
const standardChange = "Standard Change"

func TicketRoute(id string) string {
	return "/tickets/" + url.PathEscape(id)
}

func (r Renderer) Index(ds *catalog.Dataset) string {
	sum := scoring.Summarize(report.FleetOf(ds), gauge.SizeLarge)
	return r.page("Dashboard", NavDashboard, 0, func(b *strings.Builder) {
		b.WriteString(`<h1>Platform Compliance</h1>`)
		fmt.Fprintf(b, `<p class="sub">EC2 fleet compliance against platform standards. Last scan: %s.</p>`, esc(orDash(ds.Fleet.LastScan)))

		for _, a := range ds.Alerts {
			b.WriteString(`<div class="alert" role="alert"><div>`)
			fmt.Fprintf(b, `<strong>Compliance violation:</strong> <span class="mono">%s</span> %s.`, esc(a.Instance.Name), esc(a.Message))
			if t, ok := ds.Ticket(a.TicketID); ok {
				fmt.Fprintf(b, `<p class="note">Auto-ticket <a href="%s">%s</a> created</p>`, esc(r.href(TicketRoute(t.ID), 0)), esc(t.ID))
				if strings.EqualFold(t.Type, standardChange) {
					b.WriteString(`<p class="notice">This is a Standard Change - no CAB approval required</p>`)
				}
			}
			b.WriteString(`</div>`)
			if a.TicketID != "" {
				fmt.Fprintf(b, `<a href="%s">View ticket %s</a>`, esc(r.href(TicketRoute(a.TicketID), 0)), esc(a.TicketID))
			}
			b.WriteString(`</div>`)
		}

		b.WriteString(`<section class="hero" aria-label="Fleet compliance">`)
		b.WriteString(`<article class="card gauge-card"><div class="section-head"><h2>Overall Compliance</h2></div>`)
		b.WriteString(GaugeHTML(sum.Gauge))
		b.WriteString(`</article><div class="stats">`)
		for _, c := range sum.Cards {
			class := "card stat tone-" + c.Tone
			if c.Pulse {
				class += " pulse"
			}
			fmt.Fprintf(b, `<article class="%s" data-icon="%s"><div class="k">%s</div><div class="v">%s</div></article>`, esc(class), esc(c.Icon), esc(c.Title), esc(c.Value))
		}
		b.WriteString(`</div></section>`)

		b.WriteString(`<section class="grid-2">`)
		b.WriteString(`<article class="card"><div class="section-head"><h2>EC2 Instances</h2>`)
		fmt.Fprintf(b, `<span class="pill">%d shown</span></div>`, len(ds.Instances))
		b.WriteString(`<div class="table-wrap"><table><caption>Instances evaluated against their platform standard</caption><thead><tr><th scope="col">Name</th><th scope="col">Instance ID</th><th scope="col">Type</th><th scope="col">Standard</th><th scope="col">Environment</th><th scope="col">Status</th><th scope="col">Action</th></tr></thead><tbody>`)
		for _, in := range ds.Instances {
			row := ""
			status := `<span class="pill success">Compliant</span>`
			action := `<span class="note">-</span>`
			if in.Status == policy.StatusNonCompliant {
				row = ` class="row-error"`
				status = `<span class="pill error">Non-Compliant</span>`
				if in.TicketID != "" {
					action = fmt.Sprintf(`<a class="btn" href="%s">View Ticket</a>`, esc(r.href(TicketRoute(in.TicketID), 0)))
				}
			}
			fmt.Fprintf(b, `<tr%s><td>%s</td><td class="mono">%s</td><td class="mono">%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>`,
				row, esc(in.Name), esc(in.InstanceID), esc(in.InstanceType), esc(orDash(in.Standard)), esc(in.Environment), status, action)
		}
		b.WriteString(`</tbody></table></div></article>`)

		b.WriteString(`<article class="card"><div class="section-head"><h2>Recent Activity</h2></div>`)
		if len(ds.Activity) == 0 {
			b.WriteString(`<p class="note">No recent activity.</p>`)
		} else {
			b.WriteString(`<ul class="clean">`)
			for _, a := range ds.Activity {
				fmt.Fprintf(b, `<li><span class="dot %s"></span>%s<div class="note">%s</div></li>`, esc(scoring.ActivityTone(a.Tone)), esc(a.Text), esc(a.When))
			}
			b.WriteString(`</ul>`)
		}
		b.WriteString(`</article></section>`)
	})
}

func (r Renderer) Tickets(ds *catalog.Dataset, query string) string {
	tickets := ds.SearchTickets(query)
	return r.page("Tickets", NavTickets, 0, func(b *strings.Builder) {
		b.WriteString(`<h1>Tickets</h1><p class="sub">Change requests raised for platform compliance and infrastructure work.</p>`)
		r.searchForm(b, "/tickets", query, "Search tickets")
		b.WriteString(`<section class="card"><div class="table-wrap"><table><caption>Tickets</caption><thead><tr><th scope="col">ID</th><th scope="col">Title</th><th scope="col">Status</th><th scope="col">Priority</th><th scope="col">Type</th><th scope="col">Requester</th><th scope="col">Created</th></tr></thead><tbody>`)
		for _, t := range tickets {
			fmt.Fprintf(b, `<tr><td class="mono"><a href="%s">%s</a></td><td>%s<div class="note">%s</div></td><td><span class="%s">%s</span></td><td><span class="%s">%s</span></td><td>%s</td><td>%s</td><td>%s</td></tr>`,
				esc(r.href(TicketRoute(t.ID), 0)), esc(t.ID), esc(t.Title), esc(t.Category),
				pillClass(scoring.TicketStatusTone(t.Status)), esc(t.Status),
				pillClass(scoring.PriorityTone(t.Priority)), esc(t.Priority),
				esc(t.Type), esc(t.Requester), esc(t.Created))
		}
		if len(tickets) == 0 {
			fmt.Fprintf(b, `<tr><td colspan="7" class="note">No tickets match %q.</td></tr>`, esc(query))
		}
		b.WriteString(`</tbody></table></div></section>`)
	})
}

// TicketDetail renders one ticket. Its description is markdown.
func (r Renderer) TicketDetail(ds *catalog.Dataset, t catalog.Ticket) (string, error) {
	desc, err := Markdown(t.Description)
	if err != nil {
		return "", err
	}
	return r.page(t.ID, NavTickets, 1, func(b *strings.Builder) {
		fmt.Fprintf(b, `<p class="note"><a href="%s">&larr; Back to tickets</a></p>`, esc(r.href("/tickets", 1)))
		fmt.Fprintf(b, `<h1><span class="mono">%s</span> %s</h1>`, esc(t.ID), esc(t.Title))
		fmt.Fprintf(b, `<p class="sub"><span class="%s">%s</span> <span class="%s">%s priority</span> <span class="pill">%s</span></p>`,
			pillClass(scoring.TicketStatusTone(t.Status)), esc(t.Status), pillClass(scoring.PriorityTone(t.Priority)), esc(t.Priority), esc(t.Type))

		b.WriteString(`<section class="grid-2"><div>`)
		b.WriteString(`<article class="card"><div class="section-head"><h2>Description</h2></div>`)
		if desc == "" {
			b.WriteString(`<p class="note">No description provided.</p>`)
		} else {
			b.WriteString(`<div class="markdown">` + desc + `</div>`)
		}
		b.WriteString(`</article>`)

		if len(t.Details) > 0 {
			b.WriteString(`<article class="card section-block"><div class="section-head"><h2>Instance Details</h2></div><dl class="details">`)
			for _, d := range t.Details {
				class := ""
				if d.Tone != "" {
					class = ` class="tone-` + esc(d.Tone) + `"`
				}
				fmt.Fprintf(b, `<dt>%s</dt><dd%s>%s</dd>`, esc(d.Label), class, esc(d.Value))
			}
			b.WriteString(`</dl></article>`)
		}

		b.WriteString(`<article class="card section-block"><div class="section-head"><h2>Activity</h2></div>`)
		if len(t.Activity) == 0 {
			b.WriteString(`<p class="note">No activity yet.</p>`)
		} else {
			b.WriteString(`<ul class="clean">`)
			for _, c := range t.Activity {
				fmt.Fprintf(b, `<li><strong>%s</strong> <span class="note">%s</span><div>%s</div></li>`, esc(c.Author), esc(c.When), esc(c.Text))
			}
			b.WriteString(`</ul>`)
		}
		b.WriteString(`</article></div>`)

		b.WriteString(`<aside><article class="card"><div class="section-head"><h2>Details</h2></div><dl class="details">`)
		fmt.Fprintf(b, `<dt>Requester</dt><dd>%s</dd>`, esc(t.Requester))
		fmt.Fprintf(b, `<dt>Assignee</dt><dd>%s</dd>`, esc(orValue(t.Assignee, "Unassigned")))
		fmt.Fprintf(b, `<dt>Created</dt><dd>%s</dd>`, esc(orValue(t.CreatedAt, t.Created)))
		fmt.Fprintf(b, `<dt>Category</dt><dd>%s</dd>`, esc(t.Category))
		if t.RelatedStandard != "" {
			title := t.RelatedStandard
			if st, ok := ds.Standard(t.RelatedStandard); ok {
				title = st.ID + ": " + st.Title
			}
			fmt.Fprintf(b, `<dt>Standard</dt><dd>%s</dd>`, esc(title))
		}
		b.WriteString(`</dl></article>`)

		if len(t.RelatedResources) > 0 {
			b.WriteString(`<article class="card section-block"><div class="section-head"><h2>Related Resources</h2></div><ul class="clean">`)
			for _, res := range t.RelatedResources {
				value := esc(res.Value)
				if res.URL != "" {
					value = fmt.Sprintf(`<a href="%s" rel="noopener">%s</a>`, esc(res.URL), value)
				}
				fmt.Fprintf(b, `<li data-kind="%s"><div class="note">%s</div>%s</li>`, esc(res.Kind), esc(res.Label), value)
			}
			b.WriteString(`</ul></article>`)
		}
		if len(t.RelatedItems) > 0 {
			b.WriteString(`<article class="card section-block"><div class="section-head"><h2>Related Items</h2></div><ul class="clean">`)
			for _, item := range t.RelatedItems {
				fmt.Fprintf(b, `<li class="mono">%s</li>`, esc(item))
			}
			b.WriteString(`</ul></article>`)
		}
		b.WriteString(`</aside></section>`)
	}), nil
}

func (r Renderer) Standards(ds *catalog.Dataset, query string) string {
	standards := ds.SearchStandards(query)
	return r.page("Standards", NavStandards, 0, func(b *strings.Builder) {
		b.WriteString(`<h1>Platform Standards</h1><p class="sub">Rules every resource in the fleet is measured against.</p>`)
		r.searchForm(b, "/standards", query, "Search standards")
		if len(standards) == 0 {
			fmt.Fprintf(b, `<p class="note">No standards match %q.</p>`, esc(query))
			return
		}
		rates := make([]float64, 0, len(standards))
		for _, s := range standards {
			rates = append(rates, s.ComplianceRate)
		}
		avg := scoring.AverageRate(rates)
		fmt.Fprintf(b, `<p class="note">Average compliance across %d standards: <span class="%s">%s</span></p>`,
			len(standards), pillClass(scoring.RateTone(avg)), esc(gauge.FormatLabel(avg)))
		b.WriteString(`<section class="standards">`)
		for _, s := range standards {
			sev := gauge.Classify(s.ComplianceRate)
			width := s.ComplianceRate
			if width < 0 {
				width = 0
			}
			if width > 100 {
				width = 100
			}
			b.WriteString(`<article class="card">`)
			fmt.Fprintf(b, `<div class="section-head"><h2>%s</h2><span class="pill">%s</span></div>`, esc(s.Title), esc(s.Category))
			fmt.Fprintf(b, `<p class="note"><span class="mono">%s</span> &middot; %s &middot; updated %s</p>`, esc(s.ID), esc(s.Status), esc(s.LastUpdated))
			fmt.Fprintf(b, `<p>%s</p>`, esc(s.Description))
			fmt.Fprintf(b, `<div class="meter"><div class="meter-top"><span>%d resources</span><span class="%s">%s</span></div>`,
				s.AffectedResources, pillClass(scoring.RateTone(s.ComplianceRate)), esc(gauge.FormatLabel(s.ComplianceRate)))
			fmt.Fprintf(b, `<div class="track"><div class="fill %s" style="width:%s%%"></div></div></div>`, severityFill(sev), num(width))
			if len(s.AllowedInstanceFamilies) > 0 {
				fmt.Fprintf(b, `<p class="note">Allowed instance families: <span class="mono">%s</span></p>`, esc(strings.Join(s.AllowedInstanceFamilies, ", ")))
			}
			b.WriteString(`</article>`)
		}
		b.WriteString(`</section>`)
	})
}

func (r Renderer) Reports(ds *catalog.Dataset) string {
	return r.page("Reports", NavReports, 0, func(b *strings.Builder) {
		b.WriteString(`<h1>Reports</h1><p class="sub">Generated compliance, cost and audit reports.</p>`)
		if st := ds.ReportStats; st != nil {
			b.WriteString(`<section class="stats">`)
			fmt.Fprintf(b, `<article class="card stat tone-success"><div class="k">Average Compliance</div><div class="v">%s</div></article>`, esc(gauge.FormatLabel(st.AverageCompliance)))
			fmt.Fprintf(b, `<article class="card stat"><div class="k">Reports Generated</div><div class="v">%s</div></article>`, strconv.Itoa(st.Generated))
			fmt.Fprintf(b, `<article class="card stat"><div class="k">Next Scheduled</div><div class="v">%s</div></article>`, esc(st.NextScheduled))
			b.WriteString(`</section>`)
		}
		b.WriteString(`<section class="card section-block"><div class="table-wrap"><table><caption>Report archive</caption><thead><tr><th scope="col">ID</th><th scope="col">Title</th><th scope="col">Type</th><th scope="col">Status</th><th scope="col">Generated</th><th scope="col">Size</th></tr></thead><tbody>`)
		for _, rp := range ds.Reports {
			fmt.Fprintf(b, `<tr><td class="mono">%s</td><td>%s</td><td><span class="pill">%s</span></td><td><span class="pill success">%s</span></td><td>%s</td><td>%s</td></tr>`,
				esc(rp.ID), esc(rp.Title), esc(rp.Type), esc(rp.Status), esc(rp.GeneratedAt), esc(rp.Size))
		}
		if len(ds.Reports) == 0 {
			b.WriteString(`<tr><td colspan="6" class="note">No reports generated yet.</td></tr>`)
		}
		b.WriteString(`</tbody></table></div></section>`)
	})
}

func (r Renderer) NotFound(path string) string {
	return r.page("Not Found", "", 0, func(b *strings.Builder) {
		b.WriteString(`<h1>Page not found</h1>`)
		fmt.Fprintf(b, `<p class="sub">Nothing lives at <span class="mono">%s</span>.</p>`, esc(path))
		fmt.Fprintf(b, `<p><a href="%s">Return to the dashboard</a></p>`, esc(r.href("/", 0)))
	})
}

func (r Renderer) searchForm(b *strings.Builder, route, query, placeholder string) {
	if r.Static {
		return
	}
	fmt.Fprintf(b, `<form class="search" method="get" action="%s" role="search"><input type="search" name="q" value="%s" placeholder="%s" aria-label="%s"><button type="submit">Search</button></form>`,
		esc(route), esc(query), esc(placeholder), esc(placeholder))
}

func orDash(s string) string {
	return orValue(s, "-")
}

func orValue(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
