package config

import (
	"fmt"
	appErrors "nailstudio/internal/pkg/errors"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all settings, loaded once at process start and injected.
type Config struct {
	Port     int    `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// PostLoginRedirectURL is where the magic link lands after LINE login.
	PostLoginRedirectURL string `envconfig:"POST_LOGIN_REDIRECT_URL" default:"https://nail-studio-six.vercel.app/reservation"`
	// AdminAPIKey guards the dashboard routes. Empty denies every admin call.
	AdminAPIKey string `envconfig:"ADMIN_API_KEY"`

	OAuthStateTTL        time.Duration `envconfig:"OAUTH_STATE_TTL" default:"10m"`
	StateCleanupSchedule string        `envconfig:"STATE_CLEANUP_SCHEDULE" default:"0 */5 * * * *"`
	IdentityListPageSize int           `envconfig:"IDENTITY_LIST_PAGE_SIZE" default:"1000"`
	ReservationRateLimit float64       `envconfig:"RESERVATION_RATE_LIMIT" default:"5"`

	Line     LineConfig     `ignored:"true"`
	Supabase SupabaseConfig `ignored:"true"`
	Database DatabaseConfig `ignored:"true"`
}

// LineConfig covers both the LINE Login channel and the Messaging API channel.
type LineConfig struct {
	ChannelID              string `envconfig:"LINE_CHANNEL_ID"`
	ChannelSecret          string `envconfig:"LINE_CHANNEL_SECRET"`
	ChannelAccessToken     string `envconfig:"LINE_CHANNEL_ACCESS_TOKEN"`
	MessagingChannelSecret string `envconfig:"LINE_MESSAGING_CHANNEL_SECRET"`
	LoginRedirectURI       string `envconfig:"LINE_LOGIN_REDIRECT_URI" default:"https://qkgglpyddnmyhoybssye.supabase.co/functions/v1/line-auth?action=callback"`
	AuthBaseURL            string `envconfig:"LINE_AUTH_BASE_URL" default:"https://access.line.me"`
	APIBaseURL             string `envconfig:"LINE_API_BASE_URL" default:"https://api.line.me"`
}

// SupabaseConfig resolves SUPABASE_URL and SUPABASE_SERVICE_ROLE_KEY.
// Load falls back to VITE_SUPABASE_URL and SERVICE_ROLE_KEY.
type SupabaseConfig struct {
	URL            string `envconfig:"SUPABASE_URL"`
	ServiceRoleKey string `envconfig:"SUPABASE_SERVICE_ROLE_KEY"`
}

// DatabaseConfig selects the gorm dialector.
type DatabaseConfig struct {
	Driver string `envconfig:"DATABASE_DRIVER" default:"sqlite"`
	URL    string `envconfig:"DATABASE_URL" default:"nailstudio.db"`
}

// Load reads an optional .env file and then the process environment.
// A missing .env file is not an error. Sections are processed without a prefix
// so only the full variable names are read.
func Load(filenames ...string) (*Config, error) {
	if err := godotenv.Load(filenames...); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	cfg := &Config{}
	for _, section := range []interface{}{cfg, &cfg.Line, &cfg.Supabase, &cfg.Database} {
		if err := envconfig.Process("", section); err != nil {
			return nil, fmt.Errorf("failed to process environment: %w", err)
		}
	}
	if cfg.Supabase.URL == "" {
		cfg.Supabase.URL = os.Getenv("VITE_SUPABASE_URL")
	}
	cfg.Supabase.URL = strings.TrimRight(cfg.Supabase.URL, "/")
	if cfg.Supabase.ServiceRoleKey == "" {
		cfg.Supabase.ServiceRoleKey = os.Getenv("SERVICE_ROLE_KEY")
	}
	if cfg.Line.MessagingChannelSecret == "" {
		cfg.Line.MessagingChannelSecret = cfg.Line.ChannelSecret
	}

	switch cfg.Database.Driver {
	case "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.Database.Driver)
	}
	if cfg.IdentityListPageSize <= 0 {
		cfg.IdentityListPageSize = 1000
	}
	return cfg, nil
}

// LoginReady reports whether the LINE Login flow has every secret it needs.
func (c *Config) LoginReady() error {
	return requireSet(map[string]string{
		"LINE_CHANNEL_ID":           c.Line.ChannelID,
		"LINE_CHANNEL_SECRET":       c.Line.ChannelSecret,
		"SUPABASE_URL":              c.Supabase.URL,
		"SUPABASE_SERVICE_ROLE_KEY": c.Supabase.ServiceRoleKey,
	})
}

// MessagingReady reports whether the confirmation push has every secret it needs.
// linebot refuses to build a client without a channel secret, so that is required too.
func (c *Config) MessagingReady() error {
	return requireSet(map[string]string{
		"SUPABASE_URL":                  c.Supabase.URL,
		"SUPABASE_SERVICE_ROLE_KEY":     c.Supabase.ServiceRoleKey,
		"LINE_CHANNEL_ACCESS_TOKEN":     c.Line.ChannelAccessToken,
		"LINE_MESSAGING_CHANNEL_SECRET": c.Line.MessagingChannelSecret,
	})
}

func requireSet(values map[string]string) error {
	var missing []string
	for name, v := range values {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	slices.Sort(missing)
	return fmt.Errorf("%w: %s", appErrors.ErrConfiguration, strings.Join(missing, ", "))
}
