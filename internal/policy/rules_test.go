package policy

import (
	"strings"
	"testing"
)

func t3Rule() Rule {
	return Rule{
		StandardID: "PS-2024-003",
		Enabled:    true,
		When:       RuleWhen{ResourceTypes: []string{ResourceEC2Instance}},
		Then:       RuleThen{AllowedFamilies: []string{"t3"}},
	}
}

func TestEvaluateInstanceFamily(t *testing.T) {
	cases := []struct {
		name         string
		instanceType string
		standardID   string
		want         string
	}{
		{"approved_family", "t3.large", "PS-2024-003", StatusCompliant},
		{"approved_family_mixed_case", "T3.XLarge", "PS-2024-003", StatusCompliant},
		{"wrong_family", "c5.large", "PS-2024-003", StatusNonCompliant},
		{"no_rule_for_standard", "c5.large", "PS-2024-002", StatusCompliant},
		{"no_standard", "m5.large", "", StatusCompliant},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res := Evaluate([]Rule{t3Rule()}, Resource{InstanceType: c.instanceType, StandardID: c.standardID, Environment: "Production"})
			if res.Status != c.want {
				t.Errorf("Evaluate(%s, %s).Status = %s, want %s", c.instanceType, c.standardID, res.Status, c.want)
			}
		})
	}
}

func TestEvaluateViolationText(t *testing.T) {
	res := Evaluate([]Rule{t3Rule()}, Resource{Name: "api-prod-server", InstanceType: "c5.large", StandardID: "PS-2024-003"})
	if len(res.Violations) != 1 {
		t.Fatalf("expected one violation, got %+v", res.Violations)
	}
	v := res.Violations[0]
	if v.Current != "c5.large" || v.Expected != "t3.*" {
		t.Fatalf("unexpected violation %+v", v)
	}
	if !strings.Contains(v.Message, "uses c5.large instead of approved t3 instance family") {
		t.Fatalf("unexpected message %q", v.Message)
	}
}

func TestEvaluateSkipsDisabledAndScopedRules(t *testing.T) {
	disabled := t3Rule()
	disabled.Enabled = false
	if res := Evaluate([]Rule{disabled}, Resource{InstanceType: "c5.large", StandardID: "PS-2024-003"}); res.Status != StatusCompliant {
		t.Fatalf("disabled rule should not apply, got %s", res.Status)
	}

	scoped := t3Rule()
	scoped.When.Environments = []string{"production"}
	if res := Evaluate([]Rule{scoped}, Resource{InstanceType: "c5.large", StandardID: "PS-2024-003", Environment: "Staging"}); res.Status != StatusCompliant {
		t.Fatalf("environment-scoped rule should not apply to staging, got %s", res.Status)
	}
	if res := Evaluate([]Rule{scoped}, Resource{InstanceType: "c5.large", StandardID: "PS-2024-003", Environment: "Production"}); res.Status != StatusNonCompliant {
		t.Fatalf("environment-scoped rule should apply to production, got %s", res.Status)
	}
}

func TestInstanceFamily(t *testing.T) {
	cases := map[string]string{
		"t3.large":  "t3",
		"c5.large":  "c5",
		"M6I.2XL":   "m6i",
		"t3":        "t3",
		"":          "unknown",
		" r5.metal": "r5",
	}
	for in, want := range cases {
		if got := InstanceFamily(in); got != want {
			t.Fatalf("InstanceFamily(%q)=%q want=%q", in, got, want)
		}
	}
}

func TestValidateRules(t *testing.T) {
	bad := []Rule{
		{StandardID: ""},
		{StandardID: "PS-1", Then: RuleThen{AllowedFamilies: []string{"t3.large"}}},
		{StandardID: "PS-1"},
	}
	errs := ValidateRules(bad)
	want := []string{
		"duplicate rule for standard PS-1",
		"invalid allowed family for standard PS-1",
		"rule standard_id required",
	}
	if strings.Join(errs, "|") != strings.Join(want, "|") {
		t.Fatalf("ValidateRules()=%v want=%v", errs, want)
	}
	if errs := ValidateRules([]Rule{t3Rule()}); len(errs) != 0 {
		t.Fatalf("expected valid rule set, got %v", errs)
	}
}
