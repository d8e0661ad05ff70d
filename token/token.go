package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Config configures token minting and verification.
type Config struct {
	// Secret is the HS256 signing secret. Required.
	Secret []byte

	// Issuer is set as the iss claim on minted tokens and enforced on
	// verification when non-empty.
	Issuer string

	// Audience is set as the aud claim on minted tokens and enforced on
	// verification when non-empty.
	Audience string

	// TTL is the lifetime of minted tokens.
	// Default: 15 minutes
	TTL time.Duration

	// Leeway tolerates clock skew when verifying expiry.
	// Default: 30 seconds
	Leeway time.Duration
}

func (c *Config) applyDefaults() {
	if c.TTL <= 0 {
		c.TTL = 15 * time.Minute
	}
	if c.Leeway <= 0 {
		c.Leeway = 30 * time.Second
	}
}

// Claims is the verified content of a token.
type Claims struct {
	Subject   string
	Issuer    string
	Audience  []string
	IssuedAt  time.Time
	ExpiresAt time.Time

	// Extra holds non-registered claims carried by the token.
	Extra map[string]any
}

// Signer mints HS256-signed tokens.
type Signer struct {
	config Config
}

// NewSigner creates a signer. The config secret is required.
func NewSigner(config Config) (*Signer, error) {
	if len(config.Secret) == 0 {
		return nil, ErrMissingSecret
	}
	config.applyDefaults()
	return &Signer{config: config}, nil
}

// Issue mints a token for subject with the configured issuer, audience, and
// TTL. Entries in extra become additional claims; registered claim names in
// extra are ignored rather than allowed to override the standard set.
func (s *Signer) Issue(subject string, extra map[string]any) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(s.config.TTL).Unix(),
	}
	if s.config.Issuer != "" {
		claims["iss"] = s.config.Issuer
	}
	if s.config.Audience != "" {
		claims["aud"] = s.config.Audience
	}
	for k, v := range extra {
		if _, reserved := claims[k]; reserved {
			continue
		}
		claims[k] = v
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.config.Secret)
	if err != nil {
		return "", wrapTokenError(err)
	}
	return signed, nil
}

// TTL returns the configured token lifetime after defaulting.
func (s *Signer) TTL() time.Duration {
	return s.config.TTL
}

// Verifier validates HS256-signed tokens.
type Verifier struct {
	config Config
}

// NewVerifier creates a verifier. The config secret is required.
func NewVerifier(config Config) (*Verifier, error) {
	if len(config.Secret) == 0 {
		return nil, ErrMissingSecret
	}
	config.applyDefaults()
	return &Verifier{config: config}, nil
}

// Verify parses raw and enforces signing method, signature, expiry with
// leeway, and the configured issuer and audience. The returned errors
// distinguish malformed tokens, expired tokens, and bad signatures via
// errors.Is.
func (v *Verifier) Verify(raw string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(v.config.Leeway),
		jwt.WithExpirationRequired(),
	}
	if v.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.config.Issuer))
	}
	if v.config.Audience != "" {
		opts = append(opts, jwt.WithAudience(v.config.Audience))
	}

	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return v.config.Secret, nil
	}, opts...)
	if err != nil {
		return nil, classifyParseError(err)
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidClaims
	}

	return buildClaims(mapClaims), nil
}

func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSignature
	default:
		return ErrInvalidClaims
	}
}

func buildClaims(mapClaims jwt.MapClaims) *Claims {
	claims := &Claims{Extra: make(map[string]any)}

	registered := map[string]struct{}{
		"sub": {}, "iss": {}, "aud": {}, "iat": {}, "exp": {}, "nbf": {},
	}
	for k, v := range mapClaims {
		if _, ok := registered[k]; !ok {
			claims.Extra[k] = v
		}
	}

	if sub, ok := mapClaims["sub"].(string); ok {
		claims.Subject = sub
	}
	if iss, ok := mapClaims["iss"].(string); ok {
		claims.Issuer = iss
	}

	switch aud := mapClaims["aud"].(type) {
	case string:
		claims.Audience = []string{aud}
	case []any:
		for _, a := range aud {
			if s, ok := a.(string); ok {
				claims.Audience = append(claims.Audience, s)
			}
		}
	}

	if iat, ok := mapClaims["iat"].(float64); ok {
		claims.IssuedAt = time.Unix(int64(iat), 0)
	}
	if exp, ok := mapClaims["exp"].(float64); ok {
		claims.ExpiresAt = time.Unix(int64(exp), 0)
	}

	return claims
}
