package schema

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	KindConfig  = "config"
	KindCatalog = "catalog"
)

type Error struct {
	Path    string
	Line    int
	Message string
}

func (e Error) String() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d field %s: %s", e.Line, e.Path, e.Message)
	}
	return fmt.Sprintf("field %s: %s", e.Path, e.Message)
}

func formatErrors(path string, errs []Error) string {
	sort.Slice(errs, func(i, j int) bool {
		if errs[i].Line != errs[j].Line {
			return errs[i].Line < errs[j].Line
		}
		if errs[i].Path != errs[j].Path {
			return errs[i].Path < errs[j].Path
		}
		return errs[i].Message < errs[j].Message
	})
	var b strings.Builder
	b.WriteString("schema validation failed for ")
	b.WriteString(path)
	for _, e := range errs {
		b.WriteString("\n- ")
		b.WriteString(e.String())
	}
	return b.String()
}

func validate(kind string, root *yaml.Node) []Error {
	if root == nil || len(root.Content) == 0 {
		return []Error{{Path: kind, Line: 0, Message: "empty YAML document"}}
	}
	node := root.Content[0]
	switch kind {
	case KindConfig:
		return validateConfigYAML(node)
	case KindCatalog:
		return validateCatalogYAML(node)
	default:
		return []Error{{Path: kind, Line: 0, Message: "unknown document kind"}}
	}
}

func validateConfigYAML(node *yaml.Node) []Error {
	errList := []Error{}
	sections := []string{"server", "data", "log", "render"}
	m := validateMapNode(node, "config", sections, nil, &errList)
	if v, ok := m["server"]; ok {
		validateMapNode(v, "config.server", []string{"listen", "read_timeout_seconds", "write_timeout_seconds", "shutdown_timeout_seconds"}, nil, &errList)
	}
	if v, ok := m["data"]; ok {
		validateMapNode(v, "config.data", []string{"path", "watch"}, nil, &errList)
	}
	if v, ok := m["log"]; ok {
		validateMapNode(v, "config.log", []string{"level", "format"}, nil, &errList)
	}
	if v, ok := m["render"]; ok {
		validateMapNode(v, "config.render", []string{"out_dir"}, nil, &errList)
	}
	return errList
}

func validateCatalogYAML(node *yaml.Node) []Error {
	errList := []Error{}
	top := []string{"fleet", "instances", "tickets", "standards", "reports", "report_stats", "activity"}
	m := validateMapNode(node, "catalog", top, []string{"fleet", "instances", "tickets", "standards", "reports"}, &errList)

	if v, ok := m["fleet"]; ok {
		validateMapNode(v, "catalog.fleet",
			[]string{"total_instances", "compliant", "non_compliant", "pending_review", "last_scan", "gauge_visual_progress"},
			[]string{"total_instances", "compliant", "non_compliant", "pending_review"}, &errList)
	}
	if v, ok := m["instances"]; ok {
		for i, item := range validateSequenceNode(v, "catalog.instances", &errList) {
			validateMapNode(item, fmt.Sprintf("catalog.instances[%d]", i),
				[]string{"id", "name", "instance_id", "instance_type", "standard_id", "standard", "environment", "region", "ticket_id"},
				[]string{"id", "name", "instance_id", "instance_type", "environment"}, &errList)
		}
	}
	if v, ok := m["tickets"]; ok {
		for i, item := range validateSequenceNode(v, "catalog.tickets", &errList) {
			path := fmt.Sprintf("catalog.tickets[%d]", i)
			t := validateMapNode(item, path,
				[]string{"id", "title", "status", "priority", "type", "requester", "assignee", "created", "created_at", "category", "related_standard", "description", "details", "related_resources", "activity", "related_items"},
				[]string{"id", "title", "status", "priority", "type", "requester", "created", "category"}, &errList)
			if d, ok := t["details"]; ok {
				for j, f := range validateSequenceNode(d, path+".details", &errList) {
					validateMapNode(f, fmt.Sprintf("%s.details[%d]", path, j), []string{"label", "value", "tone"}, []string{"label", "value"}, &errList)
				}
			}
			if r, ok := t["related_resources"]; ok {
				for j, f := range validateSequenceNode(r, path+".related_resources", &errList) {
					validateMapNode(f, fmt.Sprintf("%s.related_resources[%d]", path, j), []string{"kind", "label", "value", "url"}, []string{"kind", "label", "value"}, &errList)
				}
			}
			if a, ok := t["activity"]; ok {
				for j, f := range validateSequenceNode(a, path+".activity", &errList) {
					validateMapNode(f, fmt.Sprintf("%s.activity[%d]", path, j), []string{"author", "kind", "when", "text"}, []string{"author", "when", "text"}, &errList)
				}
			}
			if r, ok := t["related_items"]; ok {
				validateSequenceNode(r, path+".related_items", &errList)
			}
		}
	}
	if v, ok := m["standards"]; ok {
		for i, item := range validateSequenceNode(v, "catalog.standards", &errList) {
			s := validateMapNode(item, fmt.Sprintf("catalog.standards[%d]", i),
				[]string{"id", "title", "description", "category", "status", "affected_resources", "compliance_rate", "last_updated", "allowed_instance_families", "environments"},
				[]string{"id", "title", "description", "category", "status", "affected_resources", "compliance_rate", "last_updated"}, &errList)
			if f, ok := s["allowed_instance_families"]; ok {
				validateSequenceNode(f, fmt.Sprintf("catalog.standards[%d].allowed_instance_families", i), &errList)
			}
		}
	}
	if v, ok := m["reports"]; ok {
		for i, item := range validateSequenceNode(v, "catalog.reports", &errList) {
			fields := []string{"id", "title", "type", "status", "generated_at", "size"}
			validateMapNode(item, fmt.Sprintf("catalog.reports[%d]", i), fields, fields, &errList)
		}
	}
	if v, ok := m["report_stats"]; ok {
		fields := []string{"average_compliance", "generated", "next_scheduled"}
		validateMapNode(v, "catalog.report_stats", fields, fields, &errList)
	}
	if v, ok := m["activity"]; ok {
		for i, item := range validateSequenceNode(v, "catalog.activity", &errList) {
			validateMapNode(item, fmt.Sprintf("catalog.activity[%d]", i), []string{"text", "tone", "when"}, []string{"text", "when"}, &errList)
		}
	}
	return errList
}

func validateMapNode(node *yaml.Node, path string, allowed, required []string, errs *[]Error) map[string]*yaml.Node {
	result := map[string]*yaml.Node{}
	if node == nil {
		*errs = append(*errs, Error{Path: path, Line: 0, Message: "missing object"})
		return result
	}
	if node.Kind != yaml.MappingNode {
		*errs = append(*errs, Error{Path: path, Line: node.Line, Message: "must be a mapping/object"})
		return result
	}
	allowedSet := map[string]bool{}
	for _, a := range allowed {
		allowedSet[a] = true
	}
	seen := map[string]int{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		k := node.Content[i]
		v := node.Content[i+1]
		key := k.Value
		if prevLine, ok := seen[key]; ok {
			*errs = append(*errs, Error{Path: path + "." + key, Line: k.Line, Message: fmt.Sprintf("duplicate key (already defined at line %d)", prevLine)})
			continue
		}
		seen[key] = k.Line
		if !allowedSet[key] {
			*errs = append(*errs, Error{Path: path + "." + key, Line: k.Line, Message: "unknown field"})
		}
		result[key] = v
	}
	for _, req := range required {
		if _, ok := result[req]; !ok {
			*errs = append(*errs, Error{Path: path + "." + req, Line: node.Line, Message: "missing required field"})
		}
	}
	return result
}

func validateSequenceNode(node *yaml.Node, path string, errs *[]Error) []*yaml.Node {
	if node == nil {
		*errs = append(*errs, Error{Path: path, Line: 0, Message: "missing sequence"})
		return nil
	}
	if node.Kind != yaml.SequenceNode {
		*errs = append(*errs, Error{Path: path, Line: node.Line, Message: "must be a sequence/array"})
		return nil
	}
	return node.Content
}
