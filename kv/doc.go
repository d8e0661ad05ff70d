// Package kv provides a key-value storage abstraction with memory, SQLite,
// and Redis backends.
//
// It provides a Store interface with pluggable implementations, deterministic
// key derivation, and a read-through Loader that collapses concurrent fills.
package kv
