// Package flatten provides helpers for nested string-keyed maps: flattening
// to single-level dotted keys, expanding back, and recursive deep merge.
package flatten
