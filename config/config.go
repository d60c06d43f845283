package config

import (
	"fmt"
	"net"
	"time"

	"github.com/caarlos0/env/v11"
)

// MinJWTSecretLength applies outside development; HS256 keys shorter than the
// hash output weaken the signature.
const MinJWTSecretLength = 32

type Config struct {
	Port      int    `env:"PORT" envDefault:"8080"`
	Env       string `env:"APP_ENV" envDefault:"development"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty bool   `env:"LOG_PRETTY" envDefault:"false"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     int    `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"lawfirm_cms"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	JWTSecret     string        `env:"JWT_SECRET,required"`
	JWTExpiration time.Duration `env:"JWT_EXPIRATION" envDefault:"24h"`

	PolicyFile string `env:"WORKFLOW_POLICY_FILE"`

	VerifyRateLimitRPS   float64 `env:"VERIFY_RATE_LIMIT_RPS" envDefault:"2"`
	VerifyRateLimitBurst int     `env:"VERIFY_RATE_LIMIT_BURST" envDefault:"10"`

	// TrustedProxies lists proxy IPs or CIDRs whose X-Forwarded-For header is
	// honoured. Empty means the peer address is always the client address.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	AdminUsername string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c Config) ServerAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// BootstrapAdmin reports whether an administrator account should be ensured
// at startup.
func (c Config) BootstrapAdmin() bool {
	return c.AdminEmail != "" && c.AdminPassword != ""
}

func (c Config) JWT() JWTConfig {
	return NewJWTConfig(c.JWTSecret, c.JWTExpiration)
}

// Load parses environment variables into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if !cfg.IsDevelopment() && len(cfg.JWTSecret) < MinJWTSecretLength {
		return nil, fmt.Errorf("JWT_SECRET must be at least %d bytes long outside development, got %d bytes",
			MinJWTSecretLength, len(cfg.JWTSecret))
	}
	if cfg.VerifyRateLimitRPS <= 0 {
		return nil, fmt.Errorf("VERIFY_RATE_LIMIT_RPS must be positive, got %v", cfg.VerifyRateLimitRPS)
	}
	if cfg.VerifyRateLimitBurst < 1 {
		cfg.VerifyRateLimitBurst = 1
	}
	for _, proxy := range cfg.TrustedProxies {
		if !validProxy(proxy) {
			return nil, fmt.Errorf("TRUSTED_PROXIES entry %q is neither an IP nor a CIDR", proxy)
		}
	}

	return cfg, nil
}

func validProxy(proxy string) bool {
	if net.ParseIP(proxy) != nil {
		return true
	}
	_, _, err := net.ParseCIDR(proxy)
	return err == nil
}
