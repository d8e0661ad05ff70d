package env

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var varPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Expand substitutes ${NAME} references in s from src. Unresolved names are
// replaced with the empty string. `$$` emits a literal `$` (escape hatch);
// a bare `$` not forming a reference passes through unchanged. A nil src
// reads the process environment.
func Expand(s string, src Source) string {
	out, _ := expand(s, src, false)
	return out
}

// ExpandStrict is Expand, except any unresolved ${NAME} is an error. All
// missing names are collected and reported in one sorted list.
func ExpandStrict(s string, src Source) (string, error) {
	return expand(s, src, true)
}

func expand(s string, src Source, strict bool) (string, error) {
	if src == nil {
		src = OS()
	}

	// Hide escaped dollars from the reference pattern, restore them last.
	const dollarSentinel = "\x00MXWEB_ENV_DOLLAR\x00"
	s = strings.ReplaceAll(s, "$$", dollarSentinel)

	var missing map[string]struct{}

	out := varPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := match[2 : len(match)-1]
		if value, ok := src.Lookup(name); ok {
			return value
		}
		if strict {
			if missing == nil {
				missing = make(map[string]struct{})
			}
			missing[name] = struct{}{}
		}
		return ""
	})

	if len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for name := range missing {
			names = append(names, name)
		}
		sort.Strings(names)
		return "", fmt.Errorf("%w: %s", ErrMissingVar, strings.Join(names, ", "))
	}

	return strings.ReplaceAll(out, dollarSentinel, "$"), nil
}
