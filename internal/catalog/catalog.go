// Package catalog holds the dashboard's dataset: the fleet counts, the instance
// inventory, tickets, platform standards and generated reports. Instance compliance
// is derived from the standards when a dataset is loaded.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/solardome/stratum/internal/policy"
	"github.com/solardome/stratum/internal/schema"
)

//go:embed demo.yaml
var demoYAML []byte

const DemoSource = "builtin:demo"

// Default returns the built-in demo dataset.
func Default() (*Dataset, error) {
	var ds Dataset
	if err := schema.DecodeYAML(DemoSource, schema.KindCatalog, demoYAML, &ds); err != nil {
		return nil, err
	}
	ds.Source = DemoSource
	ds.Digest = schema.Digest(demoYAML)
	if err := prepare(&ds); err != nil {
		return nil, err
	}
	return &ds, nil
}

// Load reads a dataset from a YAML, JSON or JSONC file. An empty path yields the demo dataset.
func Load(path string) (*Dataset, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	var ds Dataset
	digest, err := schema.DecodeFile(path, schema.KindCatalog, &ds)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	ds.Source = path
	ds.Digest = digest
	if err := prepare(&ds); err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", path, err)
	}
	return &ds, nil
}

func prepare(ds *Dataset) error {
	if errs := Validate(ds); len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	deriveStatus(ds)
	return nil
}

var (
	ticketStatuses   = []string{"Open", "In Progress", "Resolved", "Closed"}
	ticketPriorities = []string{"High", "Medium", "Low"}
	standardStatuses = []string{"Active", "Draft", "Retired"}
)

func known(set []string, v string) bool {
	for _, s := range set {
		if strings.EqualFold(s, strings.TrimSpace(v)) {
			return true
		}
	}
	return false
}

// Validate reports semantic problems the schema pass cannot see. The result is sorted.
func Validate(ds *Dataset) []string {
	var errs []string
	f := ds.Fleet
	if f.TotalInstances < 0 || f.Compliant < 0 || f.NonCompliant < 0 || f.PendingReview < 0 {
		errs = append(errs, "fleet counts must be non-negative")
	}
	if f.Compliant+f.NonCompliant+f.PendingReview > f.TotalInstances {
		errs = append(errs, fmt.Sprintf("fleet counts exceed total_instances (%d)", f.TotalInstances))
	}

	ticketIDs := map[string]bool{}
	for _, t := range ds.Tickets {
		if ticketIDs[t.ID] {
			errs = append(errs, "duplicate ticket id "+t.ID)
		}
		ticketIDs[t.ID] = true
		if !known(ticketStatuses, t.Status) {
			errs = append(errs, fmt.Sprintf("ticket %s status %q must be one of %s", t.ID, t.Status, strings.Join(ticketStatuses, ", ")))
		}
		if !known(ticketPriorities, t.Priority) {
			errs = append(errs, fmt.Sprintf("ticket %s priority %q must be one of %s", t.ID, t.Priority, strings.Join(ticketPriorities, ", ")))
		}
	}
	standardIDs := map[string]bool{}
	for _, s := range ds.Standards {
		if standardIDs[s.ID] {
			errs = append(errs, "duplicate standard id "+s.ID)
		}
		standardIDs[s.ID] = true
		if !known(standardStatuses, s.Status) {
			errs = append(errs, fmt.Sprintf("standard %s status %q must be one of %s", s.ID, s.Status, strings.Join(standardStatuses, ", ")))
		}
		if s.ComplianceRate < 0 || s.ComplianceRate > 100 {
			errs = append(errs, fmt.Sprintf("standard %s compliance_rate %v outside 0..100", s.ID, s.ComplianceRate))
		}
	}
	for _, t := range ds.Tickets {
		if t.RelatedStandard != "" && !standardIDs[t.RelatedStandard] {
			errs = append(errs, fmt.Sprintf("ticket %s references unknown standard %s", t.ID, t.RelatedStandard))
		}
	}

	instanceIDs := map[string]bool{}
	for _, in := range ds.Instances {
		if instanceIDs[in.InstanceID] {
			errs = append(errs, "duplicate instance_id "+in.InstanceID)
		}
		instanceIDs[in.InstanceID] = true
		if in.StandardID != "" && !standardIDs[in.StandardID] {
			errs = append(errs, fmt.Sprintf("instance %s references unknown standard %s", in.Name, in.StandardID))
		}
		if in.TicketID != "" && !ticketIDs[in.TicketID] {
			errs = append(errs, fmt.Sprintf("instance %s references unknown ticket %s", in.Name, in.TicketID))
		}
	}

	rules := Rules(ds.Standards)
	for _, e := range policy.ValidateRules(rules) {
		errs = append(errs, "standards: "+e)
	}
	sort.Strings(errs)
	return errs
}

// Rules turns standards that constrain instance families into policy rules.
func Rules(standards []Standard) []policy.Rule {
	var rules []policy.Rule
	for _, s := range standards {
		if len(s.AllowedInstanceFamilies) == 0 {
			continue
		}
		rules = append(rules, policy.Rule{
			StandardID: s.ID,
			Enabled:    !strings.EqualFold(s.Status, "retired"),
			When: policy.RuleWhen{
				ResourceTypes: []string{policy.ResourceEC2Instance},
				Environments:  s.Environments,
			},
			Then: policy.RuleThen{AllowedFamilies: s.AllowedInstanceFamilies},
		})
	}
	return rules
}

func deriveStatus(ds *Dataset) {
	rules := Rules(ds.Standards)
	ds.Alerts = nil
	for i := range ds.Instances {
		in := &ds.Instances[i]
		res := policy.Evaluate(rules, policy.Resource{
			Type:         policy.ResourceEC2Instance,
			Name:         in.Name,
			StandardID:   in.StandardID,
			InstanceType: in.InstanceType,
			Environment:  in.Environment,
		})
		in.Status = res.Status
		for _, v := range res.Violations {
			ds.Alerts = append(ds.Alerts, Alert{
				Instance: *in,
				Current:  v.Current,
				Expected: v.Expected,
				Message:  v.Message,
				TicketID: in.TicketID,
			})
		}
	}
}

func (ds *Dataset) Ticket(id string) (Ticket, bool) {
	for _, t := range ds.Tickets {
		if strings.EqualFold(t.ID, id) {
			return t, true
		}
	}
	return Ticket{}, false
}

func (ds *Dataset) Standard(id string) (Standard, bool) {
	for _, s := range ds.Standards {
		if strings.EqualFold(s.ID, id) {
			return s, true
		}
	}
	return Standard{}, false
}

func (ds *Dataset) NonCompliant() []Instance {
	var out []Instance
	for _, in := range ds.Instances {
		if in.Status == policy.StatusNonCompliant {
			out = append(out, in)
		}
	}
	return out
}

// SearchTickets matches q case-insensitively against id, title and category.
// An empty query returns every ticket.
func (ds *Dataset) SearchTickets(q string) []Ticket {
	q = strings.ToLower(strings.TrimSpace(q))
	var out []Ticket
	for _, t := range ds.Tickets {
		if q == "" || matches(q, t.ID, t.Title, t.Category) {
			out = append(out, t)
		}
	}
	return out
}

func (ds *Dataset) SearchStandards(q string) []Standard {
	q = strings.ToLower(strings.TrimSpace(q))
	var out []Standard
	for _, s := range ds.Standards {
		if q == "" || matches(q, s.ID, s.Title, s.Description, s.Category) {
			out = append(out, s)
		}
	}
	return out
}

// OpenTickets counts tickets whose status is Open.
func (ds *Dataset) OpenTickets() int {
	n := 0
	for _, t := range ds.Tickets {
		if strings.EqualFold(t.Status, "open") {
			n++
		}
	}
	return n
}

func matches(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
