// Package env provides environment variable resolution and ${VAR} expansion.
//
// A Source supplies raw values (the process environment, a map, or a chain of
// sources); a Resolver adds typed getters with fallbacks on top of a Source;
// Expand substitutes ${NAME} references inside strings, with a strict mode
// that reports every unresolved name.
package env
