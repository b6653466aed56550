package config

import "fmt"

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port" validate:"gte=1,lte=65535"`
	Mode string `mapstructure:"mode"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// AuthConfig configures identity token verification. The public key is the
// identity provider's published signing key, converted to PEM out-of-band;
// the service never fetches keys at verification time.
type AuthConfig struct {
	PublicKeyPEM     string   `mapstructure:"public_key_pem"`
	PermittedOrigins []string `mapstructure:"permitted_origins"`
	AdminUserIDs     []string `mapstructure:"admin_user_ids"`
}

// BillingConfig controls the claim billing gate. Mode "off" disables the
// gate entirely. PlanQuotas maps a plan slug from the verified token to the
// number of subdomains that plan may own; a missing table means unlimited.
type BillingConfig struct {
	Mode       string         `mapstructure:"mode" validate:"oneof=on off"`
	PlanQuotas map[string]int `mapstructure:"plan_quotas"`
}

func (b *BillingConfig) Enabled() bool {
	return b.Mode != "off"
}

type WebhookConfig struct {
	SigningSecret    string `mapstructure:"signing_secret"`
	ToleranceMinutes int    `mapstructure:"tolerance_minutes" validate:"gte=0"`
}

// RegistryConfig carries deployment-static registry settings. Reserved names
// listed here are merged with the reserved set stored in the KV config record.
type RegistryConfig struct {
	ReservedNames []string `mapstructure:"reserved_names"`
}

type RateLimitConfig struct {
	ClaimPerMinute int `mapstructure:"claim_per_minute"`
}
