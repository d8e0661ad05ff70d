package token

import (
	"context"
	"testing"
	"time"
)

func TestStaticSource(t *testing.T) {
	src := StaticSource("pre-issued")

	got, err := src.Token(context.Background())
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}
	if got != "pre-issued" {
		t.Errorf("Token() = %q, want pre-issued", got)
	}
}

func TestCachedSource_ReusesToken(t *testing.T) {
	signer, _ := newTestPair(t, Config{Issuer: "mxweb"})
	src := NewCachedSource(signer, "svc", nil)
	ctx := context.Background()

	first, err := src.Token(ctx)
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}
	second, err := src.Token(ctx)
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}

	if first != second {
		t.Error("Token() minted a fresh token while the cached one was valid")
	}
}

func TestCachedSource_RefreshesNearExpiry(t *testing.T) {
	// TTL barely larger than leeway: the margin is crossed almost at once.
	signer, err := NewSigner(Config{
		Secret: testSecret,
		TTL:    30 * time.Millisecond,
		Leeway: 20 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewSigner() error = %v", err)
	}

	src := NewCachedSource(signer, "svc", nil)
	ctx := context.Background()

	first, _ := src.Token(ctx)
	time.Sleep(15 * time.Millisecond)

	// Past the refresh margin now, so a new mint is due. Tokens embed
	// second-granularity iat/exp, so compare expiry bookkeeping instead of
	// raw strings.
	src.mu.Lock()
	staleExpiry := src.expiresAt
	src.mu.Unlock()

	_, err = src.Token(ctx)
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}

	src.mu.Lock()
	freshExpiry := src.expiresAt
	src.mu.Unlock()

	if !freshExpiry.After(staleExpiry) {
		t.Error("Token() did not refresh a near-expiry token")
	}
	_ = first
}

func TestCachedSource_Invalidate(t *testing.T) {
	signer, _ := newTestPair(t, Config{})
	src := NewCachedSource(signer, "svc", nil)
	ctx := context.Background()

	_, _ = src.Token(ctx)
	src.Invalidate()

	src.mu.Lock()
	cached := src.cached
	src.mu.Unlock()

	if cached != "" {
		t.Error("Invalidate() left a cached token behind")
	}

	if _, err := src.Token(ctx); err != nil {
		t.Errorf("Token() after Invalidate error = %v", err)
	}
}

func TestCachedSource_VerifiableOutput(t *testing.T) {
	signer, verifier := newTestPair(t, Config{Issuer: "mxweb", Audience: "api"})
	src := NewCachedSource(signer, "svc", map[string]any{"scope": "read"})

	raw, err := src.Token(context.Background())
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}

	claims, err := verifier.Verify(raw)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.Subject != "svc" {
		t.Errorf("Subject = %q, want svc", claims.Subject)
	}
	if claims.Extra["scope"] != "read" {
		t.Errorf("Extra[scope] = %v, want read", claims.Extra["scope"])
	}
}
