package env

import "os"

// Source supplies raw environment values by key.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Lookup returns (value, true) when the key is set, even if the value is
//   empty; ("", false) when the key is absent.
type Source interface {
	Lookup(key string) (string, bool)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(key string) (string, bool)

// Lookup calls f.
func (f SourceFunc) Lookup(key string) (string, bool) {
	return f(key)
}

// OS returns a Source backed by the process environment.
func OS() Source {
	return SourceFunc(os.LookupEnv)
}

// Map returns a Source backed by a fixed map. Useful in tests and for
// layering overrides in front of the process environment.
func Map(m map[string]string) Source {
	return SourceFunc(func(key string) (string, bool) {
		value, ok := m[key]
		return value, ok
	})
}

// Multi returns a Source that consults sources in order; the first source
// that has the key wins. Nil sources are skipped.
func Multi(sources ...Source) Source {
	return SourceFunc(func(key string) (string, bool) {
		for _, src := range sources {
			if src == nil {
				continue
			}
			if value, ok := src.Lookup(key); ok {
				return value, true
			}
		}
		return "", false
	})
}
