package kv

import "errors"

// Sentinel errors for store operations.
var (
	ErrNilStore   = errors.New("kv: store is nil")
	ErrInvalidKey = errors.New("kv: key is invalid")
	ErrKeyTooLong = errors.New("kv: key exceeds max length")
	ErrClosed     = errors.New("kv: store is closed")
)
