// Package auth verifies the two inbound credential kinds the service
// accepts: identity-provider session tokens (RS256, verified against a
// configured public key) and provider-signed webhook envelopes (HMAC).
// Verification is stateless and never performs network calls; converting
// the provider's published key to PEM happens in deployment tooling.
package auth

import (
	"crypto/rsa"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the decoded claim set of a verified session token.
type SessionClaims struct {
	// Azp is the authorized party (origin) the token was issued for.
	Azp string `json:"azp,omitempty"`
	// Plan is the billing tier slug embedded by the identity provider.
	Plan string `json:"plan,omitempty"`
	// Email is the authenticated email, used for invite acceptance.
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// UserID returns the token subject, the principal id used throughout the
// registry.
func (c *SessionClaims) UserID() string {
	return c.Subject
}

// TokenVerifier validates bearer session tokens against a fixed public
// key and an optional origin allow-list.
type TokenVerifier struct {
	publicKey        *rsa.PublicKey
	permittedOrigins map[string]bool
}

func NewTokenVerifier(publicKeyPEM string, permittedOrigins []string) (*TokenVerifier, error) {
	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(publicKeyPEM))
	if err != nil {
		return nil, fmt.Errorf("failed to parse verifier public key: %w", err)
	}

	origins := make(map[string]bool, len(permittedOrigins))
	for _, origin := range permittedOrigins {
		origins[origin] = true
	}

	return &TokenVerifier{
		publicKey:        key,
		permittedOrigins: origins,
	}, nil
}

// Verify validates structure, signature, and expiry, then enforces the
// origin allow-list when one is configured. It returns the decoded claims
// or an error; callers must treat any error as an authentication failure
// without distinguishing the cause to the client.
func (v *TokenVerifier) Verify(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.publicKey, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if len(v.permittedOrigins) > 0 && !v.permittedOrigins[claims.Azp] {
		return nil, fmt.Errorf("token origin %q not permitted", claims.Azp)
	}

	return claims, nil
}

// TokenDiagnostics is the debug decode result surfaced to admin callers.
// RawClaims is the payload as decoded without verification; Claims is set
// only when full verification succeeded.
type TokenDiagnostics struct {
	RawClaims   map[string]interface{} `json:"rawClaims"`
	Claims      *SessionClaims         `json:"claims,omitempty"`
	Verified    bool                   `json:"verified"`
	VerifyError string                 `json:"verifyError,omitempty"`
}

// Inspect decodes the token payload without loosening verification: the
// raw payload is always surfaced, and the verified claim set only when
// Verify passes.
func (v *TokenVerifier) Inspect(tokenString string) (*TokenDiagnostics, error) {
	raw := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode token: %w", err)
	}

	diag := &TokenDiagnostics{RawClaims: raw}
	claims, err := v.Verify(tokenString)
	if err != nil {
		diag.VerifyError = err.Error()
		return diag, nil
	}

	diag.Claims = claims
	diag.Verified = true
	return diag, nil
}
