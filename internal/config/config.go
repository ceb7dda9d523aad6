package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/lejogtracker/internal/activity"
	"github.com/2beens/lejogtracker/internal/route"
	"github.com/2beens/lejogtracker/internal/schedule"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/paulmach/orb"
)

// ErrConfig marks missing or invalid settings. Fatal at startup, never retried.
var ErrConfig = errors.New("config error")

const (
	DefaultStravaTokenURL   = "https://www.strava.com/oauth/token"
	DefaultStravaAPIBaseURL = "https://www.strava.com/api/v3"
	DefaultPageSize         = 200
	DefaultHTTPTimeout      = 30 * time.Second
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port" validate:"gte=0,lte=65535"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// telemetry
	HoneycombEnabled      bool   `toml:"honeycomb_enabled"`
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// tracker
	SnapshotPath        string   `toml:"snapshot_path" validate:"required"`
	SnapshotCacheSizeMB int      `toml:"snapshot_cache_size_mb" validate:"gte=0"`
	SyncEnabled         bool     `toml:"sync_enabled"`
	SyncInterval        Duration `toml:"sync_interval"`
	ViewRefreshInterval Duration `toml:"view_refresh_interval"`
	AllowedOrigins      []string `toml:"allowed_origins"`

	Strava  StravaConfig  `toml:"strava"`
	Journey JourneyConfig `toml:"journey"`
	Route   RouteConfig   `toml:"route"`
}

type StravaConfig struct {
	TokenURL      string   `toml:"token_url" validate:"required,url"`
	APIBaseURL    string   `toml:"api_base_url" validate:"required,url"`
	HTTPTimeout   Duration `toml:"http_timeout"`
	PageSize      int      `toml:"page_size" validate:"gt=0,lte=200"`
	ActivityKinds []string `toml:"activity_kinds" validate:"min=1,dive,required"`
}

type JourneyConfig struct {
	StartDate       string  `toml:"start_date" validate:"required,datetime=2006-01-02"`
	TotalDistanceKm float64 `toml:"total_distance_km" validate:"gt=0"`
	WeeklyTargetKm  float64 `toml:"weekly_target_km" validate:"gt=0"`
	Timezone        string  `toml:"timezone"`
}

type RouteConfig struct {
	StartName string       `toml:"start_name"`
	EndName   string       `toml:"end_name"`
	Waypoints [][2]float64 `toml:"waypoints" validate:"omitempty,min=2"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("%w: unknown env: %s", ErrConfig, env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("%w: no config section for env: %s", ErrConfig, env)
	}
	return cfg, nil
}

// Load reads the TOML file at path, picks the section for env, fills in
// defaults and validates the result.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("%w: decode [%s]: %w", ErrConfig, path, err)
	}
	return t.Resolve(env)
}

// Resolve picks the section for env, fills in defaults and validates it.
func (t *Toml) Resolve(env string) (*Config, error) {
	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}

	if cfg.Environment == "" {
		cfg.Environment = strings.ToLower(env)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Strava.TokenURL == "" {
		c.Strava.TokenURL = DefaultStravaTokenURL
	}
	if c.Strava.APIBaseURL == "" {
		c.Strava.APIBaseURL = DefaultStravaAPIBaseURL
	}
	if c.Strava.HTTPTimeout.Duration == 0 {
		c.Strava.HTTPTimeout.Duration = DefaultHTTPTimeout
	}
	if c.Strava.PageSize == 0 {
		c.Strava.PageSize = DefaultPageSize
	}
	if len(c.Strava.ActivityKinds) == 0 {
		c.Strava.ActivityKinds = []string{string(activity.KindWalk), string(activity.KindHike)}
	}
	if c.Journey.Timezone == "" {
		c.Journey.Timezone = "UTC"
	}
	if c.Route.StartName == "" {
		c.Route.StartName = route.LandsEnd
	}
	if c.Route.EndName == "" {
		c.Route.EndName = route.JohnOGroats
	}
	if c.SyncInterval.Duration == 0 {
		c.SyncInterval.Duration = 6 * time.Hour
	}
	if c.ViewRefreshInterval.Duration == 0 {
		c.ViewRefreshInterval.Duration = time.Minute
	}
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if _, err := time.LoadLocation(c.Journey.Timezone); err != nil {
		return fmt.Errorf("%w: timezone [%s]: %w", ErrConfig, c.Journey.Timezone, err)
	}

	// tickers and http clients panic or misbehave on non-positive durations
	intervals := []struct {
		name  string
		value time.Duration
	}{
		{"sync_interval", c.SyncInterval.Duration},
		{"view_refresh_interval", c.ViewRefreshInterval.Duration},
		{"strava.http_timeout", c.Strava.HTTPTimeout.Duration},
	}
	for _, interval := range intervals {
		if interval.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %s", ErrConfig, interval.name, interval.value)
		}
	}
	return nil
}

// OverrideStartDate replaces the journey start date (e.g. from START_DATE env)
// and validates it.
func (c *Config) OverrideStartDate(startDate string) error {
	if startDate == "" {
		return nil
	}
	if _, err := time.Parse(activity.DateLayout, startDate); err != nil {
		return fmt.Errorf("%w: start date [%s]: %w", ErrConfig, startDate, err)
	}
	c.Journey.StartDate = startDate
	return nil
}

func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Journey.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone [%s]: %w", ErrConfig, c.Journey.Timezone, err)
	}
	return loc, nil
}

// JourneySettings returns the challenge settings, with the start date at
// midnight in the journey time zone.
func (c *Config) JourneySettings() (schedule.Journey, error) {
	loc, err := c.Location()
	if err != nil {
		return schedule.Journey{}, err
	}

	startDate, err := time.ParseInLocation(activity.DateLayout, c.Journey.StartDate, loc)
	if err != nil {
		return schedule.Journey{}, fmt.Errorf("%w: start date [%s]: %w", ErrConfig, c.Journey.StartDate, err)
	}

	return schedule.Journey{
		StartDate:       startDate,
		TotalDistanceKm: c.Journey.TotalDistanceKm,
		WeeklyTargetKm:  c.Journey.WeeklyTargetKm,
	}, nil
}

// Waypoints returns the configured route, or the built-in LEJOG route when none is set.
func (c *Config) Waypoints() []orb.Point {
	if len(c.Route.Waypoints) == 0 {
		return route.LEJOGWaypoints()
	}
	waypoints := make([]orb.Point, 0, len(c.Route.Waypoints))
	for _, wp := range c.Route.Waypoints {
		waypoints = append(waypoints, orb.Point{wp[0], wp[1]})
	}
	return waypoints
}

func (c *Config) ActivityKinds() []activity.Kind {
	kinds := make([]activity.Kind, 0, len(c.Strava.ActivityKinds))
	for _, k := range c.Strava.ActivityKinds {
		kinds = append(kinds, activity.Kind(k))
	}
	return kinds
}
