package termview

import (
	"math"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solardome/stratum/internal/catalog"
	"github.com/solardome/stratum/internal/gauge"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func plain(s string) string { return ansi.ReplaceAllString(s, "") }

func TestGaugeMeter(t *testing.T) {
	r := Renderer{Theme: DefaultTheme, Width: 10}
	cases := []struct {
		name     string
		score    float64
		progress *float64
		want     string
	}{
		{"full", 100, nil, "[██████████] 100.0% Compliant"},
		{"empty", 0, nil, "[░░░░░░░░░░] 0.0% Compliant"},
		{"visual progress drives bar", 97.9, ptr(50), "[█████░░░░░] 97.9% Compliant"},
		{"overflow pinned", 150, nil, "[██████████] 150.0% Compliant"},
		{"negative pinned", -20, nil, "[░░░░░░░░░░] -20.0% Compliant"},
		{"huge progress pinned", 90, ptr(1e20), "[██████████] 90.0% Compliant"},
		{"infinite progress pinned", 90, ptr(math.Inf(1)), "[██████████] 90.0% Compliant"},
		{"negative infinite progress pinned", 90, ptr(math.Inf(-1)), "[░░░░░░░░░░] 90.0% Compliant"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := gauge.Compute(gauge.Input{Score: c.score, VisualProgress: c.progress, Size: gauge.SizeSmall})
			assert.Equal(t, c.want, plain(r.Gauge(g)))
		})
	}
}

func TestGaugeMeterNaN(t *testing.T) {
	g := gauge.Compute(gauge.Input{Score: math.NaN(), Size: gauge.SizeLarge})
	out := plain(Renderer{Theme: DefaultTheme, Width: 4}.Gauge(g))
	assert.True(t, strings.HasPrefix(out, "[░░░░]"), out)
}

func TestSummaryDemo(t *testing.T) {
	ds, err := catalog.Default()
	require.NoError(t, err)
	out := plain(New().Summary(ds))

	assert.Contains(t, out, "97.9% Compliant")
	assert.Contains(t, out, "last scan 3 hours ago")
	assert.Contains(t, out, "Total Instances")
	assert.Contains(t, out, "api-prod-server (i-0a1b2c3d4e5f67890) uses c5.large instead of approved t3 instance family -> INFRA-4721")
	assert.Contains(t, out, "1 open tickets, 4 standards")
}

func ptr(v float64) *float64 { return &v }
