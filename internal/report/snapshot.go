package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/solardome/stratum/internal/catalog"
	"github.com/solardome/stratum/internal/gauge"
	"github.com/solardome/stratum/internal/scoring"
)

// Snapshot is the machine-readable companion to a rendered site.
type Snapshot struct {
	GeneratedAt  string               `json:"generated_at"`
	Source       string               `json:"source"`
	SourceSHA256 string               `json:"source_sha256"`
	Summary      scoring.Summary      `json:"summary"`
	Violations   []SnapshotViolation  `json:"violations"`
	Standards    []SnapshotStandard   `json:"standards"`
	OpenTickets  int                  `json:"open_tickets"`
	Reports      *catalog.ReportStats `json:"report_stats,omitempty"`
}

type SnapshotViolation struct {
	Name       string `json:"name"`
	InstanceID string `json:"instance_id"`
	Current    string `json:"current"`
	Expected   string `json:"expected"`
	Message    string `json:"message"`
	TicketID   string `json:"ticket_id,omitempty"`
}

type SnapshotStandard struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	ComplianceRate float64        `json:"compliance_rate"`
	Severity       gauge.Severity `json:"severity"`
}

func BuildSnapshot(ds *catalog.Dataset, now time.Time) Snapshot {
	s := Snapshot{
		GeneratedAt:  now.UTC().Format(time.RFC3339),
		Source:       ds.Source,
		SourceSHA256: ds.Digest,
		Summary:      scoring.Summarize(FleetOf(ds), gauge.SizeLarge),
		Violations:   Violations(ds),
		Standards:    make([]SnapshotStandard, 0, len(ds.Standards)),
		OpenTickets:  ds.OpenTickets(),
		Reports:      ds.ReportStats,
	}
	for _, st := range ds.Standards {
		s.Standards = append(s.Standards, SnapshotStandard{
			ID:             st.ID,
			Title:          st.Title,
			ComplianceRate: st.ComplianceRate,
			Severity:       gauge.Classify(st.ComplianceRate),
		})
	}
	return s
}

// Violations flattens the dataset's alerts. It never returns nil.
func Violations(ds *catalog.Dataset) []SnapshotViolation {
	out := make([]SnapshotViolation, 0, len(ds.Alerts))
	for _, a := range ds.Alerts {
		out = append(out, SnapshotViolation{
			Name:       a.Instance.Name,
			InstanceID: a.Instance.InstanceID,
			Current:    a.Current,
			Expected:   a.Expected,
			Message:    a.Message,
			TicketID:   a.TicketID,
		})
	}
	return out
}

// FleetOf adapts a dataset's fleet counts for scoring.
func FleetOf(ds *catalog.Dataset) scoring.Fleet {
	return scoring.Fleet{
		TotalInstances:      ds.Fleet.TotalInstances,
		Compliant:           ds.Fleet.Compliant,
		NonCompliant:        ds.Fleet.NonCompliant,
		PendingReview:       ds.Fleet.PendingReview,
		GaugeVisualProgress: ds.Fleet.GaugeVisualProgress,
	}
}

func WriteJSON(path string, value interface{}) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil && dir != "." {
		return err
	}
	b, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}
