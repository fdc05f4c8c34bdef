package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every environment variable read by the client.
const EnvPrefix = "TOKOKITA"

type Config struct {
	API     APIConfig
	Log     LogConfig
	Session SessionConfig
	Payment PaymentConfig
	Listing ListingConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Session.ensureCredentialsPath(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type APIConfig struct {
	BaseURL string        `envconfig:"TOKOKITA_API_BASE_URL" default:"http://127.0.0.1:8000/api"`
	Timeout time.Duration `envconfig:"TOKOKITA_API_TIMEOUT" default:"30s"`
}

// Normalized returns the base URL without a trailing slash so request
// paths can always be joined with a leading one.
func (a APIConfig) Normalized() string {
	return strings.TrimRight(strings.TrimSpace(a.BaseURL), "/")
}

type LogConfig struct {
	Level  string `envconfig:"TOKOKITA_LOG_LEVEL" default:"info"`
	Format string `envconfig:"TOKOKITA_LOG_FORMAT" default:"console"`
}

type SessionConfig struct {
	// CredentialsFile overrides where the token pair is persisted.
	CredentialsFile string `envconfig:"TOKOKITA_CREDENTIALS_FILE"`
}

type PaymentConfig struct {
	CallbackPort int           `envconfig:"TOKOKITA_PAYMENT_CALLBACK_PORT" default:"8754"`
	WaitTimeout  time.Duration `envconfig:"TOKOKITA_PAYMENT_WAIT_TIMEOUT" default:"10m"`
}

type ListingConfig struct {
	ProductPageSize int `envconfig:"TOKOKITA_PRODUCT_PAGE_SIZE" default:"12"`
	OrderPageSize   int `envconfig:"TOKOKITA_ORDER_PAGE_SIZE" default:"10"`
}

func (s *SessionConfig) ensureCredentialsPath() error {
	if strings.TrimSpace(s.CredentialsFile) != "" {
		return nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return fmt.Errorf("resolving config dir: %w", err)
	}
	s.CredentialsFile = filepath.Join(dir, "tokokita", "credentials.json")
	return nil
}
