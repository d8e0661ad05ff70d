// Package token provides HS256 bearer token minting and verification, plus
// token sources for HTTP clients.
//
// A Signer mints signed tokens with standard claims; a Verifier validates
// method, signature, issuer, audience, and expiry with leeway. The Source
// interface supplies tokens to outgoing requests: StaticSource for
// pre-issued tokens, CachedSource for lazy minting with refresh before
// expiry.
package token
