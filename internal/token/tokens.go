package token

import (
	"context"
	"crypto/subtle"
)

const (
	MetadataKey = "authorization"
	scheme      = "Bearer "
)

// Tokens per-RPC credentials carrying a static bearer token
type Tokens struct {
	value  string
	secure bool
}

func NewTokens(value string) *Tokens {
	return &Tokens{value: value}
}

// WithTransportSecurity requires a TLS connection before the token is sent
func (t *Tokens) WithTransportSecurity() *Tokens {
	t.secure = true
	return t
}

func (t *Tokens) GetRequestMetadata(ctx context.Context, uri ...string) (map[string]string, error) {
	if t.value == "" {
		return nil, nil
	}
	return map[string]string{MetadataKey: Authorization(t.value)}, nil
}

func (t *Tokens) RequireTransportSecurity() bool {
	return t.secure
}

// Authorization the metadata value for token
func Authorization(token string) string {
	return scheme + token
}

// Valid reports whether one of the authorization values carries token.
// The keys within metadata.MD are normalized to lowercase, use MetadataKey.
func Valid(authorization []string, token string) bool {
	want := []byte(Authorization(token))
	for _, a := range authorization {
		if subtle.ConstantTimeCompare([]byte(a), want) == 1 {
			return true
		}
	}
	return false
}
