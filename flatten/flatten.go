package flatten

import (
	"fmt"
	"strings"
)

// DefaultSeparator joins nested keys when the caller passes an empty
// separator.
const DefaultSeparator = "."

// Map flattens nested maps in m into a single-level map whose keys are the
// nested paths joined by sep. Non-map leaves, including slices, are kept as
// values. An empty nested map is preserved as a leaf so the structure is not
// silently lost.
//
//	{"a": {"b": 1, "c": {"d": 2}}}  ->  {"a.b": 1, "a.c.d": 2}
func Map(m map[string]any, sep string) map[string]any {
	if sep == "" {
		sep = DefaultSeparator
	}

	out := make(map[string]any, len(m))
	flattenInto(out, "", m, sep)
	return out
}

func flattenInto(out map[string]any, prefix string, m map[string]any, sep string) {
	for key, value := range m {
		path := key
		if prefix != "" {
			path = prefix + sep + key
		}

		if nested, ok := value.(map[string]any); ok && len(nested) > 0 {
			flattenInto(out, path, nested, sep)
			continue
		}
		out[path] = value
	}
}

// Expand is the inverse of Map: it rebuilds a nested map from flat dotted
// keys. It errors when two keys conflict, i.e. one path is both a leaf and a
// prefix of another ("a" and "a.b").
func Expand(flat map[string]any, sep string) (map[string]any, error) {
	if sep == "" {
		sep = DefaultSeparator
	}

	out := make(map[string]any)
	for key, value := range flat {
		parts := strings.Split(key, sep)

		node := out
		for i, part := range parts[:len(parts)-1] {
			child, exists := node[part]
			if !exists {
				next := make(map[string]any)
				node[part] = next
				node = next
				continue
			}
			nested, ok := child.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("flatten: key conflict at %q", strings.Join(parts[:i+1], sep))
			}
			node = nested
		}

		leaf := parts[len(parts)-1]
		if existing, exists := node[leaf]; exists {
			if _, ok := existing.(map[string]any); ok {
				return nil, fmt.Errorf("flatten: key conflict at %q", key)
			}
		}
		node[leaf] = value
	}
	return out, nil
}

// Merge deep-merges src into dst and returns the result. Nested maps are
// merged recursively; on a type conflict src wins. Neither input is mutated.
func Merge(dst, src map[string]any) map[string]any {
	out := make(map[string]any, len(dst)+len(src))
	for key, value := range dst {
		out[key] = copyValue(value)
	}

	for key, value := range src {
		srcMap, srcIsMap := value.(map[string]any)
		dstMap, dstIsMap := out[key].(map[string]any)
		if srcIsMap && dstIsMap {
			out[key] = Merge(dstMap, srcMap)
			continue
		}
		out[key] = copyValue(value)
	}
	return out
}

// copyValue copies nested maps so merged results never alias the inputs.
// Other values, slices included, are shared as is.
func copyValue(v any) any {
	if m, ok := v.(map[string]any); ok {
		out := make(map[string]any, len(m))
		for key, value := range m {
			out[key] = copyValue(value)
		}
		return out
	}
	return v
}
