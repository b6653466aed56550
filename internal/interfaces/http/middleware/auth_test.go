package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subplane/internal/infrastructure/auth"
	"subplane/internal/interfaces/http/handlers/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type authTestEnv struct {
	key      *rsa.PrivateKey
	verifier *auth.TokenVerifier
}

func newAuthTestEnv(t *testing.T) *authTestEnv {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	publicPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})

	verifier, err := auth.NewTokenVerifier(string(publicPEM), nil)
	require.NoError(t, err)

	return &authTestEnv{key: key, verifier: verifier}
}

func (e *authTestEnv) token(t *testing.T, sub, plan string) string {
	t.Helper()
	claims := &auth.SessionClaims{
		Plan:  plan,
		Email: "alice@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(e.key)
	require.NoError(t, err)
	return signed
}

func runAuthRequest(t *testing.T, mw *AuthMiddleware, authHeader string, extra ...gin.HandlerFunc) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()

	var captured *gin.Context
	engine := gin.New()
	chain := append([]gin.HandlerFunc{mw.RequireAuth()}, extra...)
	chain = append(chain, func(c *gin.Context) {
		captured = c.Copy()
		c.Status(http.StatusOK)
	})
	engine.GET("/protected", chain...)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	return w, captured
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	env := newAuthTestEnv(t)
	mw := NewAuthMiddleware(env.verifier, nil, testutil.NewMockLogger())

	w, _ := runAuthRequest(t, mw, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	env := newAuthTestEnv(t)
	mw := NewAuthMiddleware(env.verifier, nil, testutil.NewMockLogger())

	w, _ := runAuthRequest(t, mw, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	env := newAuthTestEnv(t)
	mw := NewAuthMiddleware(env.verifier, nil, testutil.NewMockLogger())

	w, _ := runAuthRequest(t, mw, "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ValidTokenSetsIdentity(t *testing.T) {
	env := newAuthTestEnv(t)
	mw := NewAuthMiddleware(env.verifier, nil, testutil.NewMockLogger())

	w, c := runAuthRequest(t, mw, "Bearer "+env.token(t, "u1", "starter"))
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, c)
	assert.Equal(t, "u1", c.GetString("user_id"))
	assert.Equal(t, "starter", c.GetString("plan"))
	assert.Equal(t, "alice@example.com", c.GetString("email"))
	assert.False(t, c.GetBool("is_admin"))
}

func TestAuthMiddleware_AdminAllowList(t *testing.T) {
	env := newAuthTestEnv(t)
	mw := NewAuthMiddleware(env.verifier, []string{"admin1"}, testutil.NewMockLogger())

	w, c := runAuthRequest(t, mw, "Bearer "+env.token(t, "admin1", ""))
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, c)
	assert.True(t, c.GetBool("is_admin"))
}

func TestAuthMiddleware_RequireAdmin(t *testing.T) {
	env := newAuthTestEnv(t)
	mw := NewAuthMiddleware(env.verifier, []string{"admin1"}, testutil.NewMockLogger())

	w, _ := runAuthRequest(t, mw, "Bearer "+env.token(t, "u1", "starter"), mw.RequireAdmin())
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = runAuthRequest(t, mw, "Bearer "+env.token(t, "admin1", ""), mw.RequireAdmin())
	assert.Equal(t, http.StatusOK, w.Code)
}
