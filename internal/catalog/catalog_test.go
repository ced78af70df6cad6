package catalog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/solardome/stratum/internal/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const smallDataset = `fleet:
  total_instances: 2
  compliant: 1
  non_compliant: 1
  pending_review: 0
instances:
  - { id: "1", name: good, instance_id: i-1, instance_type: t3.small, standard_id: PS-1, environment: Production }
  - { id: "2", name: bad, instance_id: i-2, instance_type: m5.large, standard_id: PS-1, environment: Production, ticket_id: T-1 }
tickets:
  - { id: T-1, title: Fix bad, status: Open, priority: High, type: Standard Change, requester: Bot, created: now, category: Compute }
standards:
  - { id: PS-1, title: Families, description: t3 only, category: Compute, status: Active, affected_resources: 2, compliance_rate: 50, last_updated: today, allowed_instance_families: [t3] }
reports: []
`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestDefaultDataset(t *testing.T) {
	ds, err := Default()
	require.NoError(t, err)

	assert.Equal(t, DemoSource, ds.Source)
	assert.Len(t, ds.Digest, 64)
	assert.Equal(t, 48, ds.Fleet.TotalInstances)
	assert.Equal(t, 47, ds.Fleet.Compliant)
	require.NotNil(t, ds.Fleet.GaugeVisualProgress)
	assert.Equal(t, 92.0, *ds.Fleet.GaugeVisualProgress)
	assert.Len(t, ds.Instances, 7)
	assert.Len(t, ds.Tickets, 4)
	assert.Len(t, ds.Standards, 4)
	assert.Len(t, ds.Reports, 4)
	require.NotNil(t, ds.ReportStats)
	assert.Equal(t, 98.2, ds.ReportStats.AverageCompliance)
	assert.Equal(t, 1, ds.OpenTickets())
}

func TestDefaultDatasetDerivesViolation(t *testing.T) {
	ds, err := Default()
	require.NoError(t, err)

	bad := ds.NonCompliant()
	require.Len(t, bad, 1)
	assert.Equal(t, "api-prod-server", bad[0].Name)
	assert.Equal(t, "INFRA-4721", bad[0].TicketID)

	require.Len(t, ds.Alerts, 1)
	a := ds.Alerts[0]
	assert.Equal(t, "c5.large", a.Current)
	assert.Equal(t, "t3.*", a.Expected)
	assert.Equal(t, "INFRA-4721", a.TicketID)

	for _, in := range ds.Instances {
		if in.Name != "api-prod-server" {
			assert.Equal(t, policy.StatusCompliant, in.Status, in.Name)
		}
	}
}

func TestLookupsAndSearch(t *testing.T) {
	ds, err := Default()
	require.NoError(t, err)

	tk, ok := ds.Ticket("infra-4721")
	require.True(t, ok)
	assert.Equal(t, "Open", tk.Status)
	assert.Len(t, tk.Activity, 2)
	assert.Contains(t, tk.Description, "**PS-2024-003**")

	_, ok = ds.Ticket("INFRA-0000")
	assert.False(t, ok)

	st, ok := ds.Standard("PS-2024-003")
	require.True(t, ok)
	assert.Equal(t, []string{"t3"}, st.AllowedInstanceFamilies)

	cases := []struct {
		name  string
		query string
		want  int
	}{
		{"empty returns all", "", 4},
		{"by id", "4719", 1},
		{"by title case-insensitive", "SECURITY GROUP", 1},
		{"by category", "iam", 1},
		{"no match", "kubernetes", 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Len(t, ds.SearchTickets(c.query), c.want)
		})
	}

	assert.Len(t, ds.SearchStandards("encryption"), 1)
	assert.Len(t, ds.SearchStandards("  "), 4)
}

func TestLoadYAMLAndJSONC(t *testing.T) {
	dir := t.TempDir()
	ds, err := Load(writeFile(t, dir, "data.yaml", smallDataset))
	require.NoError(t, err)
	require.Len(t, ds.NonCompliant(), 1)
	assert.Equal(t, "bad", ds.NonCompliant()[0].Name)

	jsonc := `{
  // one compliant instance
  "fleet": {"total_instances": 1, "compliant": 1, "non_compliant": 0, "pending_review": 0},
  "instances": [{"id": "1", "name": "a", "instance_id": "i-1", "instance_type": "t3.micro", "environment": "Dev"}],
  "tickets": [],
  "standards": [],
  "reports": [],
}`
	ds, err = Load(writeFile(t, dir, "data.jsonc", jsonc))
	require.NoError(t, err)
	assert.Empty(t, ds.NonCompliant())
	assert.Equal(t, policy.StatusCompliant, ds.Instances[0].Status)
}

func TestLoadEmptyPathUsesDemo(t *testing.T) {
	ds, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DemoSource, ds.Source)
}

func TestLoadRejectsInvalidData(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name string
		body string
		want string
	}{
		{
			name: "unknown ticket reference",
			body: strings.Replace(smallDataset, "ticket_id: T-1", "ticket_id: T-9", 1),
			want: "references unknown ticket T-9",
		},
		{
			name: "counts exceed total",
			body: strings.Replace(smallDataset, "total_instances: 2", "total_instances: 1", 1),
			want: "fleet counts exceed total_instances",
		},
		{
			name: "unknown field",
			body: strings.Replace(smallDataset, "pending_review: 0", "pending_review: 0\n  owner: me", 1),
			want: "unknown field",
		},
		{
			name: "unknown ticket status",
			body: strings.Replace(smallDataset, "status: Open", "status: Bogus", 1),
			want: `ticket T-1 status "Bogus" must be one of`,
		},
		{
			name: "unknown ticket priority",
			body: strings.Replace(smallDataset, "priority: High", "priority: Urgentish", 1),
			want: `ticket T-1 priority "Urgentish" must be one of`,
		},
		{
			name: "unknown standard status",
			body: strings.Replace(smallDataset, "status: Active", "status: Sunset", 1),
			want: `standard PS-1 status "Sunset"`,
		},
		{
			name: "rate out of range",
			body: strings.Replace(smallDataset, "compliance_rate: 50", "compliance_rate: 150", 1),
			want: "outside 0..100",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Load(writeFile(t, dir, "bad.yaml", c.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), c.want)
		})
	}
}

func TestStoreReloadKeepsPreviousOnError(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "data.yaml", smallDataset)
	s, err := NewStore(path, nil)
	require.NoError(t, err)
	first := s.Current()

	changed, err := s.Reload()
	require.NoError(t, err)
	assert.False(t, changed, "identical content must not swap the dataset")
	assert.Same(t, first, s.Current())

	writeFile(t, dir, "data.yaml", "fleet: [")
	_, err = s.Reload()
	require.Error(t, err)
	assert.Same(t, first, s.Current())

	var seen *Dataset
	s.OnChange(func(ds *Dataset) { seen = ds })
	writeFile(t, dir, "data.yaml", strings.Replace(smallDataset, "m5.large", "t3.large", 1))
	changed, err = s.Reload()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Empty(t, s.Current().NonCompliant())
	assert.Same(t, s.Current(), seen)
}

func TestStaticStoreReloadIsNoop(t *testing.T) {
	ds, err := Default()
	require.NoError(t, err)
	s := NewStaticStore(ds)
	changed, err := s.Reload()
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Same(t, ds, s.Current())

	_, err = NewWatcher(s, 0, nil)
	assert.Error(t, err)
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "data.yaml", smallDataset)
	s, err := NewStore(path, nil)
	require.NoError(t, err)

	w, err := NewWatcher(s, 20*time.Millisecond, nil)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer func() { _ = w.Stop() }()

	writeFile(t, dir, "data.yaml", strings.Replace(smallDataset, "m5.large", "t3.large", 1))
	require.Eventually(t, func() bool {
		return len(s.Current().NonCompliant()) == 0
	}, 5*time.Second, 20*time.Millisecond)
}
