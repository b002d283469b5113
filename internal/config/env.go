package config

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// EnvVar is one environment override. A nil Value means the entry was
// declared without a value and is skipped when commands are built.
type EnvVar struct {
	Key   string
	Value *string
}

// OrderedEnv is an environment override mapping that keeps declaration order.
type OrderedEnv []EnvVar

// UnmarshalYAML decodes a YAML mapping, preserving key order. A null
// value (`KEY: ~` or `KEY:`) yields a nil Value.
func (e *OrderedEnv) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("env: expected a mapping, got %s", nodeKind(value))
	}
	out := make(OrderedEnv, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		k, v := value.Content[i], value.Content[i+1]
		entry := EnvVar{Key: k.Value}
		switch {
		case v.Kind == yaml.ScalarNode && v.Tag == "!!null":
		case v.Kind == yaml.ScalarNode:
			s := v.Value
			entry.Value = &s
		default:
			return fmt.Errorf("env: value for %q must be a scalar", k.Value)
		}
		out = append(out, entry)
	}
	*e = out
	return nil
}

// Get returns the value for key and whether a non-nil value is set.
func (e OrderedEnv) Get(key string) (string, bool) {
	for _, v := range e {
		if v.Key == key && v.Value != nil {
			return *v.Value, true
		}
	}
	return "", false
}

// Env builds an OrderedEnv from alternating key, value pairs.
func Env(pairs ...string) OrderedEnv {
	out := make(OrderedEnv, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		v := pairs[i+1]
		out = append(out, EnvVar{Key: pairs[i], Value: &v})
	}
	return out
}

func envFromMap(m map[string]string) OrderedEnv {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make(OrderedEnv, 0, len(keys))
	for _, k := range keys {
		v := m[k]
		out = append(out, EnvVar{Key: k, Value: &v})
	}
	return out
}

func nodeKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "document"
	}
}
