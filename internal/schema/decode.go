// Package schema decodes YAML and commented-JSON documents strictly: unknown fields,
// duplicate keys and missing required fields are reported with line numbers before
// any value reaches a Go struct.
package schema

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// DecodeFile reads path and decodes it by extension (.json/.jsonc as JSONC, anything
// else as YAML). It returns the SHA-256 of the raw file.
func DecodeFile(path, kind string, out interface{}) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := Digest(b)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		err = DecodeJSONC(path, kind, b, out)
	default:
		err = DecodeYAML(path, kind, b, out)
	}
	return sum, err
}

func Digest(b []byte) string {
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}

func DecodeYAML(path, kind string, b []byte, out interface{}) error {
	var root yaml.Node
	if err := yaml.Unmarshal(b, &root); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if errs := validate(kind, &root); len(errs) > 0 {
		return fmt.Errorf("%s", formatErrors(path, errs))
	}
	normalized := nodeToValue(root.Content[0])
	j, err := json.Marshal(normalized)
	if err != nil {
		return fmt.Errorf("normalize %s: %w", path, err)
	}
	if err := json.Unmarshal(j, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// DecodeJSONC strips comments and trailing commas, then runs the result through the
// YAML path so both formats share one schema. jsonc keeps byte offsets, so reported
// line numbers match the original file.
func DecodeJSONC(path, kind string, b []byte, out interface{}) error {
	j := jsonc.ToJSON(b)
	if !json.Valid(j) {
		var v interface{}
		err := json.Unmarshal(j, &v)
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return DecodeYAML(path, kind, j, out)
}

func nodeToValue(node *yaml.Node) interface{} {
	if node == nil {
		return nil
	}
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil
		}
		return nodeToValue(node.Content[0])
	case yaml.MappingNode:
		m := make(map[string]interface{}, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			m[node.Content[i].Value] = nodeToValue(node.Content[i+1])
		}
		return m
	case yaml.SequenceNode:
		out := make([]interface{}, 0, len(node.Content))
		for _, c := range node.Content {
			out = append(out, nodeToValue(c))
		}
		return out
	case yaml.AliasNode:
		return nodeToValue(node.Alias)
	case yaml.ScalarNode:
		switch node.Tag {
		case "!!bool":
			return strings.EqualFold(node.Value, "true")
		case "!!int":
			var i int64
			if _, err := fmt.Sscan(node.Value, &i); err == nil {
				return i
			}
			return node.Value
		case "!!float":
			var f float64
			if _, err := fmt.Sscan(node.Value, &f); err == nil {
				return f
			}
			return node.Value
		case "!!null":
			return nil
		default:
			return node.Value
		}
	default:
		return node.Value
	}
}
