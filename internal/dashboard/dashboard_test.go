package dashboard

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/solardome/stratum/internal/catalog"
	"github.com/solardome/stratum/internal/gauge"
	"github.com/solardome/stratum/internal/report"
	"github.com/solardome/stratum/internal/scoring"
)

func demo(t *testing.T) *catalog.Dataset {
	t.Helper()
	ds, err := catalog.Default()
	if err != nil {
		t.Fatal(err)
	}
	return ds
}

func TestIndexShowsGaugeAlertAndFooter(t *testing.T) {
	r := Renderer{Version: "2.4.1"}
	html := r.Index(demo(t))

	for _, want := range []string{
		`<a href="/" class="active" aria-current="page">Dashboard</a>`,
		`class="stroke-success"`,
		`>97.9%</text>`,
		`>Compliant</text>`,
		`<span class="mono">api-prod-server</span> uses c5.large instead of approved t3 instance family.`,
		`<a href="/tickets/INFRA-4721">View ticket INFRA-4721</a>`,
		`class="card stat tone-error pulse"`,
		`<tr class="row-error">`,
		`<th scope="col">Action</th>`,
		`<td><a class="btn" href="/tickets/INFRA-4721">View Ticket</a></td>`,
		`Auto-ticket <a href="/tickets/INFRA-4721">INFRA-4721</a> created`,
		`<p class="notice">This is a Standard Change - no CAB approval required</p>`,
		`Demo Environment - Stratum v2.4.1`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("index missing %q", want)
		}
	}
	if strings.Count(html, `<tr class="row-error">`) != 1 {
		t.Fatalf("expected exactly one non-compliant row")
	}
}

func TestGaugeHTMLUsesVisualProgressForArcOnly(t *testing.T) {
	p := 92.0
	g := gauge.Compute(gauge.Input{Score: 97.9, VisualProgress: &p, Size: gauge.SizeLarge})
	out := GaugeHTML(g)
	if !strings.Contains(out, `stroke-dashoffset="`+num(g.DashOffset)+`"`) {
		t.Fatalf("dash offset not rendered: %s", out)
	}
	if !strings.Contains(out, `data-severity="healthy"`) || !strings.Contains(out, `class="text-success text-4xl"`) {
		t.Fatalf("severity classes missing: %s", out)
	}
}

func TestTicketsSearch(t *testing.T) {
	r := Renderer{Version: "test"}
	ds := demo(t)

	all := r.Tickets(ds, "")
	if strings.Count(all, `<td class="mono"><a href="/tickets/`) != 4 {
		t.Fatalf("expected four ticket rows")
	}
	filtered := r.Tickets(ds, "ebs")
	if !strings.Contains(filtered, "INFRA-4719") || strings.Contains(filtered, "INFRA-4721</a>") {
		t.Fatalf("search did not filter tickets")
	}
	if !strings.Contains(filtered, `value="ebs"`) {
		t.Fatalf("search box should echo the query")
	}
	none := r.Tickets(ds, "<script>")
	if strings.Contains(none, "<script>\"") || !strings.Contains(none, "No tickets match") {
		t.Fatalf("empty search result not rendered safely")
	}
}

func TestTicketDetailRendersMarkdownAndEscapes(t *testing.T) {
	r := Renderer{Version: "test"}
	ds := demo(t)
	tk, ok := ds.Ticket("INFRA-4721")
	if !ok {
		t.Fatal("demo ticket missing")
	}
	html, err := r.TicketDetail(ds, tk)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		`<strong>PS-2024-003</strong>`,
		`<blockquote>`,
		`<dd class="tone-error">c5.large (non-compliant)</dd>`,
		`<dd>Unassigned</dd>`,
		`<dd>Dec 9, 2024 at 2:34 PM</dd>`,
		`<dd>PS-2024-003: EC2 Instance Family Standards</dd>`,
		`href="https://github.dev/overmindtech/terraform-example/blob/main/main.tf#L389"`,
		`SC-0042: Instance Migration Template`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("ticket detail missing %q", want)
		}
	}

	tk.Description = "<script>alert(1)</script>\n\nplain"
	tk.Title = `<b>x</b>`
	html, err = r.TicketDetail(ds, tk)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(html, "<script>alert(1)</script>") || strings.Contains(html, "<b>x</b>") {
		t.Fatalf("raw html leaked into ticket page")
	}
}

func TestStandardsAndReports(t *testing.T) {
	r := Renderer{Version: "test"}
	ds := demo(t)

	st := r.Standards(ds, "")
	if strings.Count(st, `<article class="card">`) != 4 {
		t.Fatalf("expected four standard cards")
	}
	if !strings.Contains(st, `class="pill warning">97.9%`) || !strings.Contains(st, `class="pill success">100.0%`) {
		t.Fatalf("rate tones not applied")
	}
	if !strings.Contains(st, `Allowed instance families: <span class="mono">t3</span>`) {
		t.Fatalf("allowed families missing")
	}
	if got := r.Standards(ds, "nothing-matches"); !strings.Contains(got, "No standards match") {
		t.Fatalf("empty standards search not reported")
	}

	rp := r.Reports(ds)
	for _, want := range []string{">98.2%<", ">47<", ">Dec 31<", "RPT-2024-AUDIT", "8.3 MB"} {
		if !strings.Contains(rp, want) {
			t.Fatalf("reports page missing %q", want)
		}
	}
}

func TestStaticLinks(t *testing.T) {
	r := Renderer{Version: "test", Static: true}
	ds := demo(t)
	tk, _ := ds.Ticket("INFRA-4721")
	html, err := r.TicketDetail(ds, tk)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, `href="../tickets.html"`) || !strings.Contains(html, `href="../index.html"`) {
		t.Fatalf("static ticket page should link upward")
	}
	if strings.Contains(r.Tickets(ds, ""), `<form class="search"`) {
		t.Fatalf("static pages have no search form")
	}
	if got := StaticFile("/tickets/INFRA-4721"); got != "tickets/INFRA-4721.html" {
		t.Fatalf("StaticFile=%s", got)
	}
}

func TestNotFound(t *testing.T) {
	html := Renderer{Version: "test"}.NotFound("/nope<")
	if !strings.Contains(html, "/nope&lt;") || strings.Contains(html, `aria-current="page"`) {
		t.Fatalf("unexpected not found page")
	}
}

func TestPublishWritesSiteSnapshotChecksumsAndRunLog(t *testing.T) {
	out := filepath.Join(t.TempDir(), "site")
	res, err := Publish(out, demo(t), "2.4.1", time.Date(2024, 12, 9, 15, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Pages) != 9 {
		t.Fatalf("expected 9 written files, got %d: %v", len(res.Pages), res.Pages)
	}
	for _, rel := range []string{"index.html", "tickets.html", "tickets/INFRA-4721.html", "standards.html", "reports.html", "gauge.svg", "snapshot.json", "stratum.run.log"} {
		if _, err := os.Stat(filepath.Join(out, filepath.FromSlash(rel))); err != nil {
			t.Fatalf("missing %s: %v", rel, err)
		}
	}
	bad, err := report.VerifyChecksums(res.Checksums)
	if err != nil || len(bad) != 0 {
		t.Fatalf("checksums do not verify: bad=%v err=%v", bad, err)
	}
	raw, err := os.ReadFile(res.Checksums)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(raw), "\n"); n != 10 {
		t.Fatalf("expected 10 checksum entries, got %d", n)
	}
	log, err := os.ReadFile(res.RunLog)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(log), `"event":"render.start"`) || !strings.Contains(string(log), `"event":"render.complete"`) {
		t.Fatalf("run log missing lifecycle events: %s", log)
	}
}

func TestIndexOmitsNoticeForNormalChange(t *testing.T) {
	ds := demo(t)
	for i := range ds.Tickets {
		if ds.Tickets[i].ID == "INFRA-4721" {
			ds.Tickets[i].Type = "Normal Change"
		}
	}
	html := Renderer{Version: "test"}.Index(ds)
	if strings.Contains(html, "no CAB approval required") {
		t.Fatalf("notice must only appear for standard changes")
	}
	if strings.Count(html, `<span class="note">-</span>`) != 6 {
		t.Fatalf("expected a placeholder action for each compliant instance")
	}
}

func TestStandardsShowsAverageRate(t *testing.T) {
	ds := demo(t)
	rates := make([]float64, 0, len(ds.Standards))
	for _, s := range ds.Standards {
		rates = append(rates, s.ComplianceRate)
	}
	want := "Average compliance across 4 standards: "
	html := Renderer{Version: "test"}.Standards(ds, "")
	if !strings.Contains(html, want) {
		t.Fatalf("standards page missing %q", want)
	}
	if !strings.Contains(html, ">"+gauge.FormatLabel(scoring.AverageRate(rates))+"</span></p>") {
		t.Fatalf("average rate not rendered")
	}
}
