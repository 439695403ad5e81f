package pokefans

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"code.cloudfoundry.org/clock"
	"github.com/spf13/viper"

	"github.com/eringen/pokefans/eventloop"
	"github.com/eringen/pokefans/gallery"
)

// SiteConfig holds all configuration for a PokéFans site.
type SiteConfig struct {
	Name        string // Site name (default "PokéFans")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Meta description

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/community.db")

	SessionSecret string // Required: visitor cookie secret
	CookieSecure  bool   // Set true for HTTPS

	SubmitDelay     time.Duration // Simulated submission latency (default 1.5s)
	SuccessDuration time.Duration // Success banner display time (default 5s)
	PageSessions    int           // Page sessions kept in memory (default 1024)
	ThumbCache      int           // Thumbnails kept in memory (default 256)
	SubmitLimit     int           // Submissions per client IP per minute (default 10)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "PokéFans"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Description == "" {
		c.Description = "A community of Pokémon trainers sharing their favorite types and fan art."
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/community.db"
	}
	if c.SubmitDelay <= 0 {
		c.SubmitDelay = 1500 * time.Millisecond
	}
	if c.SuccessDuration <= 0 {
		c.SuccessDuration = 5 * time.Second
	}
	if c.PageSessions <= 0 {
		c.PageSessions = 1024
	}
	if c.ThumbCache <= 0 {
		c.ThumbCache = 256
	}
	if c.SubmitLimit <= 0 {
		c.SubmitLimit = 10
	}
}

// LoadConfig reads POKEFANS_* environment variables and an optional
// pokefans.yaml in the working directory.
func LoadConfig() (SiteConfig, error) {
	v := viper.New()
	v.SetConfigName("pokefans")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("POKEFANS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("name", "PokéFans")
	v.SetDefault("url", "http://localhost:3000")
	v.SetDefault("description", "")
	v.SetDefault("addr", ":3000")
	v.SetDefault("database_path", "data/community.db")
	v.SetDefault("session_secret", "")
	v.SetDefault("cookie_secure", false)
	v.SetDefault("submit_delay", 1500*time.Millisecond)
	v.SetDefault("success_duration", 5*time.Second)
	v.SetDefault("page_sessions", 1024)
	v.SetDefault("thumb_cache", 256)
	v.SetDefault("submit_limit", 10)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return SiteConfig{}, fmt.Errorf("pokefans: read config: %w", err)
		}
	}

	cfg := SiteConfig{
		Name:            v.GetString("name"),
		URL:             v.GetString("url"),
		Description:     v.GetString("description"),
		Addr:            v.GetString("addr"),
		DatabasePath:    v.GetString("database_path"),
		SessionSecret:   v.GetString("session_secret"),
		CookieSecure:    v.GetBool("cookie_secure"),
		SubmitDelay:     v.GetDuration("submit_delay"),
		SuccessDuration: v.GetDuration("success_duration"),
		PageSessions:    v.GetInt("page_sessions"),
		ThumbCache:      v.GetInt("thumb_cache"),
		SubmitLimit:     v.GetInt("submit_limit"),
	}
	cfg.setDefaults()
	return cfg, nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for site-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithClock replaces the clock driving page-session timers and the submit
// limiter.
func WithClock(c clock.Clock) Option {
	return func(a *App) {
		a.clock = c
	}
}

// WithScheduler replaces the timer source of every page session.
func WithScheduler(s eventloop.Scheduler) Option {
	return func(a *App) {
		a.scheduler = s
	}
}

// WithCatalog replaces the fan-art catalog.
func WithCatalog(items []gallery.Item) Option {
	return func(a *App) {
		a.catalog = items
	}
}

// WithHTTPClient sets the client used to fetch gallery images.
func WithHTTPClient(c *http.Client) Option {
	return func(a *App) {
		a.httpClient = c
	}
}
