package token

import (
	"context"
	"sync"
	"time"
)

// Source supplies a bearer token for an outgoing request.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - The returned token is used as is; implementations own refresh logic.
type Source interface {
	Token(ctx context.Context) (string, error)
}

// StaticSource returns the same pre-issued token on every call.
type StaticSource string

// Token returns the static token.
func (s StaticSource) Token(_ context.Context) (string, error) {
	return string(s), nil
}

// CachedSource mints tokens lazily through a Signer and reuses them until
// they approach expiry, at which point the next call mints a fresh one.
type CachedSource struct {
	signer  *Signer
	subject string
	extra   map[string]any
	leeway  time.Duration

	mu        sync.Mutex
	cached    string
	expiresAt time.Time
}

// NewCachedSource creates a source minting tokens for subject. The signer's
// leeway doubles as the refresh margin: a cached token is replaced once it is
// within that margin of expiring.
func NewCachedSource(signer *Signer, subject string, extra map[string]any) *CachedSource {
	return &CachedSource{
		signer:  signer,
		subject: subject,
		extra:   extra,
		leeway:  signer.config.Leeway,
	}
}

// Token returns the cached token, minting a new one when none is cached or
// the cached one is about to expire.
func (s *CachedSource) Token(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != "" && time.Now().Before(s.expiresAt.Add(-s.leeway)) {
		return s.cached, nil
	}

	minted, err := s.signer.Issue(s.subject, s.extra)
	if err != nil {
		return "", err
	}

	s.cached = minted
	s.expiresAt = time.Now().Add(s.signer.config.TTL)
	return minted, nil
}

// Invalidate drops the cached token so the next call mints a fresh one.
func (s *CachedSource) Invalidate() {
	s.mu.Lock()
	s.cached = ""
	s.expiresAt = time.Time{}
	s.mu.Unlock()
}

// Compile-time interface checks.
var (
	_ Source = StaticSource("")
	_ Source = (*CachedSource)(nil)
)
