package env

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrMissingVar matches, via errors.Is, errors returned by Require and the
// strict expansion mode when a variable is absent.
var ErrMissingVar = errors.New("env: missing required variable")

// Resolver reads environment values from a Source with fallbacks and typed
// parsing. The zero Source (nil) falls back to the process environment.
type Resolver struct {
	source Source
}

// NewResolver creates a resolver over the given source. A nil source reads
// the process environment.
func NewResolver(source Source) *Resolver {
	if source == nil {
		source = OS()
	}
	return &Resolver{source: source}
}

// Lookup returns the raw value and whether the key is set.
func (r *Resolver) Lookup(key string) (string, bool) {
	return r.source.Lookup(key)
}

// Get returns the value for key, or fallback when the key is absent. An
// empty-but-set value is returned as is.
func (r *Resolver) Get(key, fallback string) string {
	if value, ok := r.source.Lookup(key); ok {
		return value
	}
	return fallback
}

// Require returns the value for key, or an error naming the key when it is
// absent or blank.
func (r *Resolver) Require(key string) (string, error) {
	value, ok := r.source.Lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingVar, key)
	}
	return value, nil
}

// Int returns the value for key parsed as an integer, or fallback when the
// key is absent. A set-but-unparsable value is an error naming the key.
func (r *Resolver) Int(key string, fallback int) (int, error) {
	value, ok := r.source.Lookup(key)
	if !ok {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("env: %s: invalid integer %q", key, value)
	}
	return parsed, nil
}

// Bool returns the value for key parsed as a boolean ("1", "t", "true",
// "TRUE" and friends per strconv.ParseBool), or fallback when absent.
func (r *Resolver) Bool(key string, fallback bool) (bool, error) {
	value, ok := r.source.Lookup(key)
	if !ok {
		return fallback, nil
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, fmt.Errorf("env: %s: invalid boolean %q", key, value)
	}
	return parsed, nil
}

// Duration returns the value for key parsed with time.ParseDuration, or
// fallback when absent.
func (r *Resolver) Duration(key string, fallback time.Duration) (time.Duration, error) {
	value, ok := r.source.Lookup(key)
	if !ok {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("env: %s: invalid duration %q", key, value)
	}
	return parsed, nil
}

// Strings returns the value for key split on commas with whitespace trimmed,
// or fallback when absent. Empty elements are dropped.
func (r *Resolver) Strings(key string, fallback []string) []string {
	value, ok := r.source.Lookup(key)
	if !ok {
		return fallback
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
