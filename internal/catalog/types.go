package catalog

type Dataset struct {
	Fleet       Fleet        `json:"fleet"`
	Instances   []Instance   `json:"instances"`
	Tickets     []Ticket     `json:"tickets"`
	Standards   []Standard   `json:"standards"`
	Reports     []Report     `json:"reports"`
	ReportStats *ReportStats `json:"report_stats,omitempty"`
	Activity    []Activity   `json:"activity,omitempty"`
	Source      string       `json:"-"`
	Digest      string       `json:"-"`
	Alerts      []Alert      `json:"-"`
}

type Fleet struct {
	TotalInstances      int      `json:"total_instances"`
	Compliant           int      `json:"compliant"`
	NonCompliant        int      `json:"non_compliant"`
	PendingReview       int      `json:"pending_review"`
	LastScan            string   `json:"last_scan,omitempty"`
	GaugeVisualProgress *float64 `json:"gauge_visual_progress,omitempty"`
}

type Instance struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	InstanceID   string `json:"instance_id"`
	InstanceType string `json:"instance_type"`
	StandardID   string `json:"standard_id,omitempty"`
	Standard     string `json:"standard,omitempty"`
	Environment  string `json:"environment"`
	Region       string `json:"region,omitempty"`
	TicketID     string `json:"ticket_id,omitempty"`

	// Status is derived from the standards at load time, never read from the file.
	Status string `json:"-"`
}

type Ticket struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Status           string     `json:"status"`
	Priority         string     `json:"priority"`
	Type             string     `json:"type"`
	Requester        string     `json:"requester"`
	Assignee         string     `json:"assignee,omitempty"`
	Created          string     `json:"created"`
	CreatedAt        string     `json:"created_at,omitempty"`
	Category         string     `json:"category"`
	RelatedStandard  string     `json:"related_standard,omitempty"`
	Description      string     `json:"description,omitempty"`
	Details          []Field    `json:"details,omitempty"`
	RelatedResources []Resource `json:"related_resources,omitempty"`
	Activity         []Comment  `json:"activity,omitempty"`
	RelatedItems     []string   `json:"related_items,omitempty"`
}

type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Tone  string `json:"tone,omitempty"`
}

type Resource struct {
	Kind  string `json:"kind"`
	Label string `json:"label"`
	Value string `json:"value"`
	URL   string `json:"url,omitempty"`
}

type Comment struct {
	Author string `json:"author"`
	Kind   string `json:"kind,omitempty"`
	When   string `json:"when"`
	Text   string `json:"text"`
}

type Standard struct {
	ID                      string   `json:"id"`
	Title                   string   `json:"title"`
	Description             string   `json:"description"`
	Category                string   `json:"category"`
	Status                  string   `json:"status"`
	AffectedResources       int      `json:"affected_resources"`
	ComplianceRate          float64  `json:"compliance_rate"`
	LastUpdated             string   `json:"last_updated"`
	AllowedInstanceFamilies []string `json:"allowed_instance_families,omitempty"`
	Environments            []string `json:"environments,omitempty"`
}

type Report struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	GeneratedAt string `json:"generated_at"`
	Size        string `json:"size"`
}

type ReportStats struct {
	AverageCompliance float64 `json:"average_compliance"`
	Generated         int     `json:"generated"`
	NextScheduled     string  `json:"next_scheduled"`
}

type Activity struct {
	Text string `json:"text"`
	Tone string `json:"tone,omitempty"`
	When string `json:"when"`
}

// Alert is a non-compliant instance joined with its standard violation and ticket.
type Alert struct {
	Instance Instance
	Current  string
	Expected string
	Message  string
	TicketID string
}
