package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.GetAddr())
	assert.Equal(t, "localhost:6379", cfg.Redis.GetAddr())
	assert.True(t, cfg.Billing.Enabled())
	assert.Equal(t, 5, cfg.Webhook.ToleranceMinutes)
	assert.Equal(t, 10, cfg.RateLimit.ClaimPerMinute)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SUBPLANE_BILLING_MODE", "off")
	t.Setenv("SUBPLANE_SERVER_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.Billing.Enabled())
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoad_EnvOnlySecrets(t *testing.T) {
	t.Setenv("SUBPLANE_AUTH_PUBLIC_KEY_PEM", "-----BEGIN PUBLIC KEY-----\nstub\n-----END PUBLIC KEY-----")
	t.Setenv("SUBPLANE_WEBHOOK_SIGNING_SECRET", "whsec_dGVzdA==")
	t.Setenv("SUBPLANE_AUTH_ADMIN_USER_IDS", "admin-1,admin-2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Contains(t, cfg.Auth.PublicKeyPEM, "BEGIN PUBLIC KEY")
	assert.Equal(t, "whsec_dGVzdA==", cfg.Webhook.SigningSecret)
	assert.Equal(t, []string{"admin-1", "admin-2"}, cfg.Auth.AdminUserIDs)
}

func TestLoad_EnvServerMode(t *testing.T) {
	t.Setenv("SUBPLANE_SERVER_MODE", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Server.Mode)
}

func TestLoad_RejectsInvalidBillingMode(t *testing.T) {
	t.Setenv("SUBPLANE_BILLING_MODE", "maybe")

	_, err := Load()
	require.Error(t, err)
}

func TestGet_ReturnsLoadedConfig(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Same(t, cfg, Get())
}
