package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"dealtown/filter"
)

const ENV_PREFIX = "DEALTOWN"

// Resources file names
const RESOURCES_PATH_PREFIX = "resources"
const DEALS_RESOURCE = "deals.json"
const HAPPY_HOURS_RESOURCE = "happy_hours.json"
const LUNCH_SPECIALS_RESOURCE = "lunch_specials.json"
const VENUES_RESOURCE = "venues.json"

type Config struct {
	App         App         `mapstructure:"app"`
	Redis       Redis       `mapstructure:"redis"`
	Postgres    Postgres    `mapstructure:"postgres"`
	Mail        Mail        `mapstructure:"mail"`
	Submissions Submissions `mapstructure:"submissions"`
	Venues      Venues      `mapstructure:"venues"`
	Logger      Logger      `mapstructure:"logger"`
}

type App struct {
	Env                       string `mapstructure:"env"`
	Port                      string `mapstructure:"port"`
	Timezone                  string `mapstructure:"timezone"`
	ShutdownTimeoutSeconds    int    `mapstructure:"shutdown_timeout_seconds"`
	AdminAPIKey               string `mapstructure:"admin_api_key"`
	AdminRequestsPerMinute    int    `mapstructure:"admin_requests_per_minute"`
	PublicRequestsPerSecond   int    `mapstructure:"public_requests_per_second"`
	GeolocationTimeoutSeconds int    `mapstructure:"geolocation_timeout_seconds"`
	ResourcesPath             string `mapstructure:"resources_path"`
	UpstreamTimeoutSeconds    int    `mapstructure:"upstream_timeout_seconds"`
	// TrustedProxies are CIDRs or IPs whose X-Forwarded-For is believed.
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

type Redis struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type Postgres struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	DBName         string `mapstructure:"dbname"`
	SSLMode        string `mapstructure:"sslmode"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
}

// GetDSN builds a lib/pq connection string.
func (p Postgres) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode)
}

type Mail struct {
	// Provider is one of "ses", "http" or "log".
	Provider    string `mapstructure:"provider"`
	From        string `mapstructure:"from"`
	AdminEmail  string `mapstructure:"admin_email"`
	SESRegion   string `mapstructure:"ses_region"`
	HTTPBaseURL string `mapstructure:"http_base_url"`
	HTTPAPIKey  string `mapstructure:"http_api_key"`
}

type Submissions struct {
	ThrottleLimit         int `mapstructure:"throttle_limit"`
	ThrottleWindowSeconds int `mapstructure:"throttle_window_seconds"`
}

type Venues struct {
	RefreshIntervalMinutes int `mapstructure:"refresh_interval_minutes"`
}

type Logger struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func (a App) ShutdownTimeout() time.Duration {
	return time.Duration(a.ShutdownTimeoutSeconds) * time.Second
}

func (a App) GeolocationTimeout() time.Duration {
	return time.Duration(a.GeolocationTimeoutSeconds) * time.Second
}

func (a App) UpstreamTimeout() time.Duration {
	return time.Duration(a.UpstreamTimeoutSeconds) * time.Second
}

func (a App) IsProd() bool {
	return a.Env == "prod" || a.Env == "production"
}

func (s Submissions) ThrottleWindow() time.Duration {
	return time.Duration(s.ThrottleWindowSeconds) * time.Second
}

func (v Venues) RefreshInterval() time.Duration {
	return time.Duration(v.RefreshIntervalMinutes) * time.Minute
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", ":8080")
	v.SetDefault("app.timezone", filter.DefaultTimezone)
	v.SetDefault("app.shutdown_timeout_seconds", 5)
	v.SetDefault("app.admin_api_key", "")
	v.SetDefault("app.admin_requests_per_minute", 60)
	v.SetDefault("app.public_requests_per_second", 20)
	v.SetDefault("app.geolocation_timeout_seconds", int(filter.DefaultGeolocationTimeout/time.Second))
	v.SetDefault("app.resources_path", "")
	v.SetDefault("app.upstream_timeout_seconds", 10)
	v.SetDefault("app.trusted_proxies", []string{})

	v.SetDefault("redis.address", "redis:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "dealtown")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.dbname", "dealtown")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.max_connections", 10)
	v.SetDefault("postgres.max_idle", 5)

	v.SetDefault("mail.provider", "log")
	v.SetDefault("mail.from", "DealTown <hello@dealtown.nz>")
	v.SetDefault("mail.admin_email", "")
	v.SetDefault("mail.ses_region", "ap-southeast-2")
	v.SetDefault("mail.http_base_url", "https://api.resend.com")
	v.SetDefault("mail.http_api_key", "")

	v.SetDefault("submissions.throttle_limit", 3)
	v.SetDefault("submissions.throttle_window_seconds", 600)

	v.SetDefault("venues.refresh_interval_minutes", 30)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
}

// Load reads .env, an optional yaml file at path, and DEALTOWN_* environment
// overrides (DEALTOWN_APP_PORT, DEALTOWN_REDIS_ADDRESS, ...).
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(ENV_PREFIX)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("dealtown")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate rejects settings the service cannot run with.
func Validate(cfg *Config) error {
	if _, err := filter.LoadLocation(cfg.App.Timezone); err != nil {
		return err
	}
	switch cfg.Mail.Provider {
	case "ses", "http", "log":
	default:
		return fmt.Errorf("unknown mail provider %q", cfg.Mail.Provider)
	}
	if cfg.Mail.Provider == "http" && cfg.Mail.HTTPAPIKey == "" {
		return errors.New("mail.http_api_key is required for the http provider")
	}
	if cfg.Submissions.ThrottleLimit < 0 || cfg.Submissions.ThrottleWindowSeconds <= 0 {
		return errors.New("submissions throttle limit must be >= 0 and window > 0")
	}
	if cfg.Venues.RefreshIntervalMinutes <= 0 {
		return errors.New("venues.refresh_interval_minutes must be positive")
	}
	if cfg.App.IsProd() && cfg.App.AdminAPIKey == "" {
		return errors.New("app.admin_api_key is required in prod")
	}
	return nil
}

// BaseDir returns the project root directory.
func BaseDir() string {
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}
	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}
	return wd
}

// GetResourcePath resolves a resource file under dir, or under BaseDir()/resources when dir is empty.
func GetResourcePath(dir, resourceFile string) string {
	if dir == "" {
		dir = filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX)
	}
	return filepath.Join(dir, resourceFile)
}
