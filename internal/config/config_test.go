package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SMTP_DRY_RUN", "true")

	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "dev", c.App.Env)
	assert.Equal(t, ":8080", c.Server.Addr)
	assert.Equal(t, "memory", c.Storage.Driver)
	assert.Equal(t, "none", c.Cache.Kind)
	assert.Equal(t, 5*time.Minute, c.Cache.IdentityTTL)
	assert.Equal(t, 0, c.Rate.Max)
	assert.Equal(t, time.Minute, c.Rate.Window)
	assert.Equal(t, 587, c.SMTP.Port)
	assert.Equal(t, "auto", c.SMTP.TLS)
	assert.Equal(t, 30*time.Second, c.SMTP.Timeout)
	assert.Equal(t, "sv-SE", c.Mail.DefaultLanguage)
	assert.Equal(t, "info@b8shield.com", c.Mail.DefaultSender)
	assert.Equal(t, "info@b8shield.com", c.Mail.OperatorAddress)
}

func TestLoad_YAMLAndEnvOverride(t *testing.T) {
	p := writeYAML(t, `
app:
  app_env: staging
smtp:
  host: smtp.example.com
  port: 465
  tls: ssl
  timeout: 5s
storage:
  driver: memory
  seed_file: seed.yaml
mail:
  operator_address: ops@example.com
  sender_policy:
    ORDER_CONFIRMATION/RETAIL: shop@example.com
`)
	t.Setenv("SMTP_HOST", "smtp.override.com")
	t.Setenv("MAIL_SENDER_POLICY", "PASSWORD_RESET/*=security@example.com")
	t.Setenv("RATE_TRUSTED_PROXIES", "10.0.0.0/8,127.0.0.1")

	c, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "staging", c.App.Env)
	assert.Equal(t, "smtp.override.com", c.SMTP.Host)
	assert.Equal(t, 465, c.SMTP.Port)
	assert.Equal(t, "ssl", c.SMTP.TLS)
	assert.Equal(t, 5*time.Second, c.SMTP.Timeout)
	assert.Equal(t, "ops@example.com", c.Mail.OperatorAddress)
	assert.Equal(t, "shop@example.com", c.Mail.SenderPolicy["ORDER_CONFIRMATION/RETAIL"])
	assert.Equal(t, "security@example.com", c.Mail.SenderPolicy["PASSWORD_RESET/*"])
	assert.Equal(t, filepath.Join(filepath.Dir(p), "seed.yaml"), c.Storage.SeedFile)
	assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, c.Rate.TrustedProxies)
}

func TestLoad_ValidationErrors(t *testing.T) {
	cases := map[string]string{
		"postgres without dsn": "storage:\n  driver: postgres\nsmtp:\n  host: h\n",
		"unknown cache":        "cache:\n  kind: memcached\nsmtp:\n  host: h\n",
		"redis without addr":   "cache:\n  kind: redis\nsmtp:\n  host: h\n",
		"bad tls":              "smtp:\n  host: h\n  tls: maybe\n",
		"missing smtp host":    "smtp:\n  port: 25\n",
		"bad policy key":       "smtp:\n  host: h\nmail:\n  sender_policy:\n    ORDER_CONFIRMATION: x@y.z\n",
		"prod without secret":  "app:\n  app_env: prod\nsmtp:\n  host: h\n",
		"negative rate":        "rate:\n  max: -1\nsmtp:\n  host: h\n",
		"bad trusted proxy":    "rate:\n  trusted_proxies: [\"lb.internal\"]\nsmtp:\n  host: h\n",
		"bad reply_to":         "smtp:\n  host: h\nmail:\n  reply_to: support-at-b8shield\n",
		"bad default sender":   "smtp:\n  host: h\nmail:\n  default_sender: info@\n",
		"bad operator address": "smtp:\n  host: h\nmail:\n  operator_address: ops\n",
		"bad sender domain":    "smtp:\n  host: h\nmail:\n  sender_domain: localhost\n",
		"bad policy address":   "smtp:\n  host: h\nmail:\n  sender_policy:\n    PASSWORD_RESET/*: security@\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeYAML(t, body))
			require.Error(t, err)
		})
	}
}

func TestParseKVList(t *testing.T) {
	got := parseKVList(" a=1 ; b = 2;;bad; =x ;c=", ";")
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, got)
}
