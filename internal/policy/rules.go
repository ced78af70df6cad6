package policy

import (
	"fmt"
	"sort"
	"strings"
)

const (
	StatusCompliant    = "compliant"
	StatusNonCompliant = "non-compliant"
	StatusPending      = "pending"
)

const ResourceEC2Instance = "ec2_instance"

type Rule struct {
	StandardID string
	Enabled    bool
	When       RuleWhen
	Then       RuleThen
}

type RuleWhen struct {
	ResourceTypes []string
	Environments  []string
}

type RuleThen struct {
	AllowedFamilies []string
}

type Resource struct {
	Type         string
	Name         string
	StandardID   string
	InstanceType string
	Environment  string
}

type Violation struct {
	StandardID string
	Current    string
	Expected   string
	Message    string
}

type Result struct {
	Status     string
	Violations []Violation
}

func ValidateRules(rules []Rule) []string {
	var errs []string
	seen := map[string]bool{}
	for _, r := range rules {
		if strings.TrimSpace(r.StandardID) == "" {
			errs = append(errs, "rule standard_id required")
			continue
		}
		if seen[r.StandardID] {
			errs = append(errs, "duplicate rule for standard "+r.StandardID)
		}
		seen[r.StandardID] = true
		for _, f := range r.Then.AllowedFamilies {
			if strings.TrimSpace(f) == "" || strings.Contains(f, ".") {
				errs = append(errs, "invalid allowed family for standard "+r.StandardID)
				break
			}
		}
	}
	sort.Strings(errs)
	return errs
}

// Evaluate applies every enabled rule bound to the resource's standard. Rules are
// visited in standard-id order so violation order is stable.
func Evaluate(rules []Rule, res Resource) Result {
	sorted := append([]Rule{}, rules...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].StandardID < sorted[j].StandardID })
	resType := normalizeToken(res.Type)
	if resType == "unknown" {
		resType = ResourceEC2Instance
	}
	family := InstanceFamily(res.InstanceType)

	out := Result{Status: StatusCompliant}
	for _, r := range sorted {
		if !r.Enabled || !strings.EqualFold(r.StandardID, res.StandardID) {
			continue
		}
		if !contains(r.When.ResourceTypes, resType) || !contains(r.When.Environments, normalizeToken(res.Environment)) {
			continue
		}
		if len(r.Then.AllowedFamilies) == 0 || contains(r.Then.AllowedFamilies, family) {
			continue
		}
		expected := strings.Join(r.Then.AllowedFamilies, "/")
		out.Violations = append(out.Violations, Violation{
			StandardID: r.StandardID,
			Current:    res.InstanceType,
			Expected:   expected + ".*",
			Message:    fmt.Sprintf("uses %s instead of approved %s instance family", res.InstanceType, expected),
		})
	}
	if len(out.Violations) > 0 {
		out.Status = StatusNonCompliant
	}
	return out
}

// InstanceFamily returns the family prefix of an instance type ("c5.large" -> "c5").
func InstanceFamily(instanceType string) string {
	t := normalizeToken(instanceType)
	if i := strings.Index(t, "."); i >= 0 {
		return t[:i]
	}
	return t
}

func contains(values []string, target string) bool {
	if len(values) == 0 {
		return true
	}
	for _, v := range values {
		if strings.EqualFold(v, target) {
			return true
		}
	}
	return false
}

func normalizeToken(s string) string {
	t := strings.TrimSpace(strings.ToLower(s))
	if t == "" {
		return "unknown"
	}
	return t
}
