package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/email/transport"
)

type Config struct {
	App struct {
		// dev | staging | prod
		Env string `yaml:"app_env"`
	} `yaml:"app"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	Server struct {
		Addr         string        `yaml:"addr"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
	} `yaml:"server"`

	// Auth protects the HTTP surface. Empty JWTSecret disables the check (dev only).
	Auth struct {
		JWTSecret string `yaml:"jwt_secret"`
		Issuer    string `yaml:"issuer"`
		Audience  string `yaml:"audience"`
	} `yaml:"auth"`

	// Rate throttles /v1 per caller. Max 0 disables it. The counter lives in
	// Redis when cache.kind is redis, otherwise in process.
	Rate struct {
		Max    int           `yaml:"max"`
		Window time.Duration `yaml:"window"`
		// TrustedProxies (CIDR o IP) pueden fijar X-Forwarded-For. Vacío: se usa el peer TCP.
		TrustedProxies []string `yaml:"trusted_proxies"`
	} `yaml:"rate"`

	Storage struct {
		Driver   string `yaml:"driver"` // memory | postgres
		DSN      string `yaml:"dsn"`
		SeedFile string `yaml:"seed_file"` // memory driver only
		Migrate  bool   `yaml:"migrate"`
		Postgres struct {
			MaxConns        int32  `yaml:"max_conns"`
			MinConns        int32  `yaml:"min_conns"`
			ConnMaxLifetime string `yaml:"conn_max_lifetime"`
		} `yaml:"postgres"`
	} `yaml:"storage"`

	Cache struct {
		Kind        string        `yaml:"kind"` // none | memory | redis
		IdentityTTL time.Duration `yaml:"identity_ttl"`
		Redis       struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"cache"`

	SMTP struct {
		Host               string        `yaml:"host"`
		Port               int           `yaml:"port"`
		Username           string        `yaml:"username"`
		Password           string        `yaml:"password"`
		PasswordEnc        string        `yaml:"password_enc"` // secretbox, decrypted with security.secretbox_master_key
		TLS                string        `yaml:"tls"`          // auto | starttls | ssl | none
		InsecureSkipVerify bool          `yaml:"insecure_skip_verify"`
		Timeout            time.Duration `yaml:"timeout"`
		DryRun             bool          `yaml:"dry_run"` // record instead of sending
	} `yaml:"smtp"`

	Mail struct {
		OperatorAddress string `yaml:"operator_address"`
		DefaultLanguage string `yaml:"default_language"`
		DefaultSender   string `yaml:"default_sender"`
		SenderDomain    string `yaml:"sender_domain"`
		ReplyTo         string `yaml:"reply_to"`
		BaseURL         string `yaml:"base_url"`
		BrandName       string `yaml:"brand_name"`
		// SenderPolicy overrides the built-in table. Keys are "EVENT_TYPE/ACCOUNT_CLASS",
		// "EVENT_TYPE/*" or "*/ACCOUNT_CLASS".
		SenderPolicy map[string]string `yaml:"sender_policy"`
	} `yaml:"mail"`

	Security struct {
		SecretBoxMasterKey string `yaml:"secretbox_master_key"`
	} `yaml:"security"`
}

// Load reads path (optional: empty path means env + defaults only), applies
// defaults and env overrides, then validates.
func Load(path string) (*Config, error) {
	var c Config
	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	c.applyEnvOverrides()
	c.applyDefaults()

	if c.Storage.Postgres.ConnMaxLifetime != "" {
		if _, err := time.ParseDuration(c.Storage.Postgres.ConnMaxLifetime); err != nil {
			return nil, fmt.Errorf("config: storage.postgres.conn_max_lifetime: %w", err)
		}
	}

	// seed file is relative to the YAML
	if p := strings.TrimSpace(c.Storage.SeedFile); p != "" && path != "" && !filepath.IsAbs(p) {
		c.Storage.SeedFile = filepath.Clean(filepath.Join(filepath.Dir(path), p))
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 60 * time.Second
	}
	if c.Rate.Window == 0 {
		c.Rate.Window = time.Minute
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "memory"
	}
	if c.Cache.Kind == "" {
		c.Cache.Kind = "none"
	}
	if c.Cache.IdentityTTL == 0 {
		c.Cache.IdentityTTL = 5 * time.Minute
	}
	if c.SMTP.Port == 0 {
		c.SMTP.Port = 587
	}
	if c.SMTP.TLS == "" {
		c.SMTP.TLS = "auto"
	}
	if c.SMTP.Timeout == 0 {
		c.SMTP.Timeout = 30 * time.Second
	}
	if c.Mail.DefaultLanguage == "" {
		c.Mail.DefaultLanguage = "sv-SE"
	}
	if c.Mail.SenderDomain == "" {
		c.Mail.SenderDomain = "b8shield.com"
	}
	if c.Mail.DefaultSender == "" {
		c.Mail.DefaultSender = "info@" + c.Mail.SenderDomain
	}
	if c.Mail.OperatorAddress == "" {
		c.Mail.OperatorAddress = "info@" + c.Mail.SenderDomain
	}
	if c.Mail.BrandName == "" {
		c.Mail.BrandName = "B8Shield"
	}
	if c.Mail.BaseURL == "" {
		c.Mail.BaseURL = "https://shop.b8shield.com"
	}
}

// Validate checks values that would otherwise fail late at dispatch time.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "memory":
	case "postgres":
		if strings.TrimSpace(c.Storage.DSN) == "" {
			return fmt.Errorf("config: storage.dsn is required for driver postgres")
		}
	default:
		return fmt.Errorf("config: unknown storage.driver %q", c.Storage.Driver)
	}

	switch c.Cache.Kind {
	case "none", "memory":
	case "redis":
		if strings.TrimSpace(c.Cache.Redis.Addr) == "" {
			return fmt.Errorf("config: cache.redis.addr is required for cache kind redis")
		}
	default:
		return fmt.Errorf("config: unknown cache.kind %q", c.Cache.Kind)
	}

	if c.Rate.Max < 0 || c.Rate.Window < 0 {
		return fmt.Errorf("config: rate.max and rate.window must not be negative")
	}
	for _, p := range c.Rate.TrustedProxies {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, _, err := net.ParseCIDR(p); err != nil && net.ParseIP(p) == nil {
			return fmt.Errorf("config: rate.trusted_proxies: invalid entry %q", p)
		}
	}

	switch c.SMTP.TLS {
	case "auto", "starttls", "ssl", "none":
	default:
		return fmt.Errorf("config: unknown smtp.tls %q", c.SMTP.TLS)
	}
	if c.SMTP.Port <= 0 || c.SMTP.Port > 65535 {
		return fmt.Errorf("config: invalid smtp.port %d", c.SMTP.Port)
	}
	if !c.SMTP.DryRun && strings.TrimSpace(c.SMTP.Host) == "" {
		return fmt.Errorf("config: smtp.host is required unless smtp.dry_run is set")
	}

	for key, addr := range c.Mail.SenderPolicy {
		if strings.Count(key, "/") != 1 {
			return fmt.Errorf("config: mail.sender_policy key %q must be EVENT_TYPE/ACCOUNT_CLASS", key)
		}
		if err := checkAddress("mail.sender_policy["+key+"]", addr, false); err != nil {
			return err
		}
	}
	for _, a := range []struct {
		name, value string
		optional    bool
	}{
		{"mail.default_sender", c.Mail.DefaultSender, false},
		{"mail.operator_address", c.Mail.OperatorAddress, false},
		{"mail.reply_to", c.Mail.ReplyTo, true},
		{"mail.sender_domain", "info@" + c.Mail.SenderDomain, false},
	} {
		if err := checkAddress(a.name, a.value, a.optional); err != nil {
			return err
		}
	}

	if strings.EqualFold(c.App.Env, "prod") && c.Auth.JWTSecret == "" {
		return fmt.Errorf("config: auth.jwt_secret is required in prod")
	}
	return nil
}

// checkAddress aplica las reglas de direcciones del transport: un sender
// inválido se reporta al arrancar y no en cada envío.
func checkAddress(name, value string, optional bool) error {
	if optional && strings.TrimSpace(value) == "" {
		return nil
	}
	if _, err := transport.ParseAddressList(value); err != nil {
		return fmt.Errorf("config: %s: %w", name, err)
	}
	return nil
}

// ---- env helpers ----

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}

func getEnvInt(key string) (int, bool) {
	if s, ok := getEnvStr(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i, true
		}
	}
	return 0, false
}

func getEnvBool(key string) (bool, bool) {
	if s, ok := getEnvStr(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			return b, true
		}
	}
	return false, false
}

func getEnvDur(key string) (time.Duration, bool) {
	if s, ok := getEnvStr(key); ok {
		if d, err := time.ParseDuration(strings.TrimSpace(s)); err == nil {
			return d, true
		}
	}
	return 0, false
}

// parseKVList parses "k1=v1<sep>k2=v2".
func parseKVList(s, sep string) map[string]string {
	s = strings.TrimSpace(s)
	if s == "" {
		return map[string]string{}
	}
	items := strings.Split(s, sep)
	out := make(map[string]string, len(items))
	for _, it := range items {
		it = strings.TrimSpace(it)
		if i := strings.IndexRune(it, '='); i > 0 {
			k := strings.TrimSpace(it[:i])
			v := strings.TrimSpace(it[i+1:])
			if k != "" && v != "" {
				out[k] = v
			}
		}
	}
	return out
}

// applyEnvOverrides lets the environment win over the YAML file.
func (c *Config) applyEnvOverrides() {
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = strings.ToLower(v)
	}
	if v, ok := getEnvStr("LOG_LEVEL"); ok {
		c.Log.Level = v
	}

	// SERVER
	if v, ok := getEnvStr("SERVER_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := getEnvDur("SERVER_READ_TIMEOUT"); ok {
		c.Server.ReadTimeout = v
	}
	if v, ok := getEnvDur("SERVER_WRITE_TIMEOUT"); ok {
		c.Server.WriteTimeout = v
	}

	// AUTH
	if v, ok := getEnvStr("AUTH_JWT_SECRET"); ok {
		c.Auth.JWTSecret = v
	}
	if v, ok := getEnvStr("AUTH_ISSUER"); ok {
		c.Auth.Issuer = v
	}
	if v, ok := getEnvStr("AUTH_AUDIENCE"); ok {
		c.Auth.Audience = v
	}

	// RATE
	if v, ok := getEnvInt("RATE_MAX"); ok {
		c.Rate.Max = v
	}
	if v, ok := getEnvDur("RATE_WINDOW"); ok {
		c.Rate.Window = v
	}
	if v, ok := getEnvStr("RATE_TRUSTED_PROXIES"); ok {
		c.Rate.TrustedProxies = strings.Split(v, ",")
	}

	// STORAGE
	if v, ok := getEnvStr("STORAGE_DRIVER"); ok {
		c.Storage.Driver = strings.ToLower(v)
	}
	if v, ok := getEnvStr("STORAGE_DSN"); ok {
		c.Storage.DSN = v
	}
	if v, ok := getEnvStr("STORAGE_SEED_FILE"); ok {
		c.Storage.SeedFile = v
	}
	if v, ok := getEnvBool("STORAGE_MIGRATE"); ok {
		c.Storage.Migrate = v
	}
	if v, ok := getEnvInt("POSTGRES_MAX_CONNS"); ok {
		c.Storage.Postgres.MaxConns = int32(v)
	}
	if v, ok := getEnvInt("POSTGRES_MIN_CONNS"); ok {
		c.Storage.Postgres.MinConns = int32(v)
	}
	if v, ok := getEnvStr("POSTGRES_CONN_MAX_LIFETIME"); ok {
		c.Storage.Postgres.ConnMaxLifetime = v
	}

	// CACHE
	if v, ok := getEnvStr("CACHE_KIND"); ok {
		c.Cache.Kind = strings.ToLower(v)
	}
	if v, ok := getEnvDur("CACHE_IDENTITY_TTL"); ok {
		c.Cache.IdentityTTL = v
	}
	if v, ok := getEnvStr("REDIS_ADDR"); ok {
		c.Cache.Redis.Addr = v
	}
	if v, ok := getEnvStr("REDIS_PASSWORD"); ok {
		c.Cache.Redis.Password = v
	}
	if v, ok := getEnvInt("REDIS_DB"); ok {
		c.Cache.Redis.DB = v
	}
	if v, ok := getEnvStr("REDIS_PREFIX"); ok {
		c.Cache.Redis.Prefix = v
	}

	// SMTP
	if v, ok := getEnvStr("SMTP_HOST"); ok {
		c.SMTP.Host = v
	}
	if v, ok := getEnvInt("SMTP_PORT"); ok {
		c.SMTP.Port = v
	}
	if v, ok := getEnvStr("SMTP_USERNAME"); ok {
		c.SMTP.Username = v
	}
	if v, ok := getEnvStr("SMTP_PASSWORD"); ok {
		c.SMTP.Password = v
	}
	if v, ok := getEnvStr("SMTP_PASSWORD_ENC"); ok {
		c.SMTP.PasswordEnc = v
	}
	if v, ok := getEnvStr("SMTP_TLS"); ok {
		c.SMTP.TLS = strings.ToLower(v)
	}
	if v, ok := getEnvBool("SMTP_INSECURE_SKIP_VERIFY"); ok {
		c.SMTP.InsecureSkipVerify = v
	}
	if v, ok := getEnvDur("SMTP_TIMEOUT"); ok {
		c.SMTP.Timeout = v
	}
	if v, ok := getEnvBool("SMTP_DRY_RUN"); ok {
		c.SMTP.DryRun = v
	}

	// MAIL
	if v, ok := getEnvStr("MAIL_OPERATOR_ADDRESS"); ok {
		c.Mail.OperatorAddress = v
	}
	if v, ok := getEnvStr("MAIL_DEFAULT_LANGUAGE"); ok {
		c.Mail.DefaultLanguage = v
	}
	if v, ok := getEnvStr("MAIL_DEFAULT_SENDER"); ok {
		c.Mail.DefaultSender = v
	}
	if v, ok := getEnvStr("MAIL_SENDER_DOMAIN"); ok {
		c.Mail.SenderDomain = v
	}
	if v, ok := getEnvStr("MAIL_REPLY_TO"); ok {
		c.Mail.ReplyTo = v
	}
	if v, ok := getEnvStr("MAIL_BASE_URL"); ok {
		c.Mail.BaseURL = v
	}
	if v, ok := getEnvStr("MAIL_BRAND_NAME"); ok {
		c.Mail.BrandName = v
	}
	// MAIL_SENDER_POLICY="ORDER_CONFIRMATION/RETAIL=order@x.com;*/GUEST=info@x.com"
	if v, ok := getEnvStr("MAIL_SENDER_POLICY"); ok {
		if c.Mail.SenderPolicy == nil {
			c.Mail.SenderPolicy = map[string]string{}
		}
		for k, addr := range parseKVList(v, ";") {
			c.Mail.SenderPolicy[k] = addr
		}
	}

	// SECURITY
	if v, ok := getEnvStr("SECRETBOX_MASTER_KEY"); ok {
		c.Security.SecretBoxMasterKey = v
	}
}
