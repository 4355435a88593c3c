package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// EnvPrefix is the prefix for environment variable overrides (e.g. LPWC_APP_PORT)
const EnvPrefix = "LPWC"

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Log       LogConfig
	Database  DatabaseConfig
	HTTP      HTTPConfig
	Label     LabelConfig
	Telemetry TelemetryConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name    string
	Env     string
	Port    string
	BaseURL string // absolute URL the label engine uses to fetch static assets
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path

	// Rotation of file output
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// DatabaseConfig holds catalog store connection settings
type DatabaseConfig struct {
	Driver          string // postgres or sqlite
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	Path            string // sqlite file path
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes

	SlowQueryThreshold time.Duration // catalog queries slower than this are logged and flagged
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int
	TrustedProxies []string
}

// LabelConfig holds the label content and PDF engine settings
type LabelConfig struct {
	Locale          string        `validate:"required"`
	Timezone        string        `validate:"required"`
	CurrencySymbol  string        `validate:"required"`
	WeightUnit      string        `validate:"required"`
	AssetsDir       string        `validate:"required"`
	FontDir         string        `validate:"required"`
	FontFamily      string        `validate:"required,alphanum"`
	FontRegular     string        `validate:"required"`
	FontBold        string        `validate:"required"`
	UseOTL          bool          // enable every OpenType layout feature for the label font
	Engine          string        `validate:"oneof=chromedp wkhtmltopdf"`
	ChromeRemoteURL string        `validate:"omitempty,url"`
	NoSandbox       bool          // required when Chrome runs as root in a container
	WkhtmltopdfPath string        `validate:"required_if=Engine wkhtmltopdf"`
	RenderTimeout   time.Duration `validate:"gt=0"`
}

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled           bool    // Whether to enable OpenTelemetry
	CollectorEndpoint string  // OTEL Collector endpoint (e.g., "localhost:4317")
	SamplingRatio     float64 // Sampling ratio (0.0-1.0, 1.0 = 100%)
	ServiceName       string  // Service name for traces
	Insecure          bool    // Use insecure (non-TLS) connection (development only)

	LogsEnabled     bool          // Export log entries over OTLP
	MetricsEnabled  bool          // Export label metrics over OTLP
	MetricsInterval time.Duration // Metrics export period

	ProfilingEnabled       bool   // Push Pyroscope profiles
	ProfilingServerAddress string // Pyroscope server, e.g. "http://localhost:4040"
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with LPWC_ prefix (e.g., LPWC_DATABASE_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	cfg, _, err := load("")
	return cfg, err
}

// LoadFile loads configuration from an explicit config file path
func LoadFile(path string) (*Config, error) {
	cfg, _, err := load(path)
	return cfg, err
}

// load reads the config file (if any) and returns the config together with
// the viper instance backing it
func load(path string) (*Config, *viper.Viper, error) {
	v := newViper(path)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	cfg, err := build(v)
	if err != nil {
		return nil, nil, err
	}
	return cfg, v, nil
}

func newViper(path string) *viper.Viper {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		v.AddConfigPath("/app")
	}

	// Enable environment variable override
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Booleans cannot be defaulted after the fact
	v.SetDefault("label.use_otl", true)
	v.SetDefault("label.no_sandbox", false)
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.insecure", true)
	v.SetDefault("telemetry.logs_enabled", true)
	v.SetDefault("telemetry.metrics_enabled", true)
	v.SetDefault("telemetry.profiling_enabled", false)

	return v
}

// build constructs and validates a Config from a loaded viper instance
func build(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:    v.GetString("app.name"),
			Env:     v.GetString("app.env"),
			Port:    v.GetString("app.port"),
			BaseURL: v.GetString("app.base_url"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),

			MaxSizeMB:  v.GetInt("log.max_size_mb"),
			MaxBackups: v.GetInt("log.max_backups"),
			MaxAgeDays: v.GetInt("log.max_age_days"),
		},
		Database: DatabaseConfig{
			Driver:          v.GetString("database.driver"),
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			Path:            v.GetString("database.path"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),

			SlowQueryThreshold: v.GetDuration("database.slow_query_threshold"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:    v.GetDuration("http.read_timeout"),
			WriteTimeout:   v.GetDuration("http.write_timeout"),
			IdleTimeout:    v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes: v.GetInt("http.max_header_bytes"),
			TrustedProxies: v.GetStringSlice("http.trusted_proxies"),
		},
		Label: LabelConfig{
			Locale:          v.GetString("label.locale"),
			Timezone:        v.GetString("label.timezone"),
			CurrencySymbol:  v.GetString("label.currency_symbol"),
			WeightUnit:      v.GetString("label.weight_unit"),
			AssetsDir:       v.GetString("label.assets_dir"),
			FontDir:         v.GetString("label.font_dir"),
			FontFamily:      v.GetString("label.font_family"),
			FontRegular:     v.GetString("label.font_regular"),
			FontBold:        v.GetString("label.font_bold"),
			UseOTL:          v.GetBool("label.use_otl"),
			Engine:          v.GetString("label.engine"),
			ChromeRemoteURL: v.GetString("label.chrome_remote_url"),
			NoSandbox:       v.GetBool("label.no_sandbox"),
			WkhtmltopdfPath: v.GetString("label.wkhtmltopdf_path"),
			RenderTimeout:   v.GetDuration("label.render_timeout"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           v.GetBool("telemetry.enabled"),
			CollectorEndpoint: v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:     v.GetFloat64("telemetry.sampling_ratio"),
			ServiceName:       v.GetString("telemetry.service_name"),
			Insecure:          v.GetBool("telemetry.insecure"),
			LogsEnabled:       v.GetBool("telemetry.logs_enabled"),
			MetricsEnabled:    v.GetBool("telemetry.metrics_enabled"),
			MetricsInterval:   v.GetDuration("telemetry.metrics_interval"),

			ProfilingEnabled:       v.GetBool("telemetry.profiling_enabled"),
			ProfilingServerAddress: v.GetString("telemetry.profiling_server_address"),
		},
	}

	// Apply defaults for empty values
	applyDefaults(cfg)

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "lpwc"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.App.BaseURL == "" {
		cfg.App.BaseURL = "http://localhost:" + cfg.App.Port
	}
	cfg.App.BaseURL = strings.TrimRight(cfg.App.BaseURL, "/")
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.Log.MaxSizeMB == 0 {
		cfg.Log.MaxSizeMB = 64
	}
	if cfg.Log.MaxBackups == 0 {
		cfg.Log.MaxBackups = 7
	}
	if cfg.Log.MaxAgeDays == 0 {
		cfg.Log.MaxAgeDays = 7
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "postgres"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "catalog"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "catalog.db"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 2
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 30
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 60 * time.Second // label rendering runs inside the request
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.Label.Locale == "" {
		cfg.Label.Locale = "bn-BD"
	}
	if cfg.Label.Timezone == "" {
		cfg.Label.Timezone = "Asia/Dhaka"
	}
	if cfg.Label.CurrencySymbol == "" {
		cfg.Label.CurrencySymbol = "৳"
	}
	if cfg.Label.WeightUnit == "" {
		cfg.Label.WeightUnit = "গ্রাম"
	}
	if cfg.Label.AssetsDir == "" {
		cfg.Label.AssetsDir = "assets"
	}
	if cfg.Label.FontDir == "" {
		cfg.Label.FontDir = "fonts"
	}
	if cfg.Label.FontFamily == "" {
		cfg.Label.FontFamily = "notosansbengali"
	}
	if cfg.Label.FontRegular == "" {
		cfg.Label.FontRegular = "NotoSerifBengali-Regular.ttf"
	}
	if cfg.Label.FontBold == "" {
		cfg.Label.FontBold = "NotoSerifBengali-Bold.ttf"
	}
	if cfg.Label.Engine == "" {
		cfg.Label.Engine = "chromedp"
	}
	if cfg.Label.WkhtmltopdfPath == "" {
		cfg.Label.WkhtmltopdfPath = "wkhtmltopdf"
	}
	if cfg.Label.RenderTimeout == 0 {
		cfg.Label.RenderTimeout = 30 * time.Second
	}
	if cfg.Database.SlowQueryThreshold == 0 {
		cfg.Database.SlowQueryThreshold = 200 * time.Millisecond
	}
	if cfg.Telemetry.SamplingRatio == 0 {
		cfg.Telemetry.SamplingRatio = 1.0
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = cfg.App.Name
	}
	if cfg.Telemetry.MetricsInterval == 0 {
		cfg.Telemetry.MetricsInterval = 60 * time.Second
	}
}

// validate checks the configuration for invalid values
func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("database.driver must be postgres or sqlite, got %q", c.Database.Driver)
	}

	// Validate connection pool settings
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}

	u, err := url.Parse(c.App.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("app.base_url must be an absolute URL, got %q", c.App.BaseURL)
	}

	if err := validator.New().Struct(c.Label); err != nil {
		return fmt.Errorf("invalid label configuration: %w", err)
	}
	if _, err := language.Parse(c.Label.Locale); err != nil {
		return fmt.Errorf("label.locale %q is not a valid BCP 47 tag: %w", c.Label.Locale, err)
	}
	if _, err := time.LoadLocation(c.Label.Timezone); err != nil {
		return fmt.Errorf("label.timezone %q is not a known time zone: %w", c.Label.Timezone, err)
	}

	if c.Telemetry.SamplingRatio < 0 || c.Telemetry.SamplingRatio > 1 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0 and 1")
	}
	if c.Telemetry.ProfilingEnabled && c.Telemetry.ProfilingServerAddress == "" {
		return fmt.Errorf("telemetry.profiling_server_address is required when profiling is enabled")
	}

	// Production-specific validations
	if c.App.Env == "production" && c.Database.Driver == "postgres" {
		if c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production")
		}
	}

	return nil
}

// DSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Location returns the configured label time zone. The zone is validated at
// load time, so the UTC fallback only applies to hand-built configs.
func (c *LabelConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// LanguageTag returns the configured label locale
func (c *LabelConfig) LanguageTag() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.Und
	}
	return tag
}
