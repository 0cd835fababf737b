package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Log      LogConfig
	Render   RenderConfig
	Storage  StorageConfig
	Database DatabaseConfig
	Redis    RedisConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	Addr           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxBodySize    int64
	SwaggerEnabled bool
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console, or empty for json in production
	Output string // stdout, stderr, or file path
}

// RenderConfig controls document rendering
type RenderConfig struct {
	Locale         string
	CurrencySymbol string
	Compress       bool
	// DecorSeed, when set, makes decorative randomness reproducible.
	DecorSeed           *uint64
	ProfessionalSubline bool
	Creator             string
	PreviewScale        float64
}

// StorageConfig selects where rendered artifacts are written
type StorageConfig struct {
	Driver       string // none, fs, s3
	Dir          string
	Bucket       string
	Region       string
	Endpoint     string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
	Prefix       string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Enabled bool
	// Migrate applies the repository schema on startup.
	Migrate         bool
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Load reads configuration from file and environment variables.
// Priority (highest to lowest):
// 1. Environment variables with INVOICE_ prefix (e.g., INVOICE_HTTP_ADDR)
// 2. the config file (file, or config.yaml in . and /etc/invoicing)
// 3. Built-in defaults
func Load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/invoicing")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("INVOICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
		},
		HTTP: HTTPConfig{
			Addr:           v.GetString("http.addr"),
			ReadTimeout:    v.GetDuration("http.read_timeout"),
			WriteTimeout:   v.GetDuration("http.write_timeout"),
			IdleTimeout:    v.GetDuration("http.idle_timeout"),
			MaxBodySize:    v.GetInt64("http.max_body_size"),
			SwaggerEnabled: v.GetBool("http.swagger_enabled"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Render: RenderConfig{
			Locale:              v.GetString("render.locale"),
			CurrencySymbol:      v.GetString("render.currency_symbol"),
			Compress:            v.GetBool("render.compress"),
			ProfessionalSubline: v.GetBool("render.professional_subline"),
			Creator:             v.GetString("render.creator"),
			PreviewScale:        v.GetFloat64("render.preview_scale"),
		},
		Storage: StorageConfig{
			Driver:       v.GetString("storage.driver"),
			Dir:          v.GetString("storage.dir"),
			Bucket:       v.GetString("storage.bucket"),
			Region:       v.GetString("storage.region"),
			Endpoint:     v.GetString("storage.endpoint"),
			AccessKey:    v.GetString("storage.access_key"),
			SecretKey:    v.GetString("storage.secret_key"),
			UsePathStyle: v.GetBool("storage.use_path_style"),
			Prefix:       v.GetString("storage.prefix"),
		},
		Database: DatabaseConfig{
			Enabled:         v.GetBool("database.enabled"),
			Migrate:         v.GetBool("database.migrate"),
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("database.conn_max_lifetime"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("redis.enabled"),
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			TTL:      v.GetDuration("redis.ttl"),
		},
	}
	if v.IsSet("render.decor_seed") {
		seed := v.GetUint64("render.decor_seed")
		cfg.Render.DecorSeed = &seed
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "invoicing-renderer")
	v.SetDefault("app.env", "development")

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.read_timeout", 15*time.Second)
	v.SetDefault("http.write_timeout", 30*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)
	v.SetDefault("http.max_body_size", 1<<20)
	v.SetDefault("http.swagger_enabled", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "")
	v.SetDefault("log.output", "stdout")

	v.SetDefault("render.locale", "en-US")
	v.SetDefault("render.currency_symbol", "$")
	v.SetDefault("render.compress", true)
	v.SetDefault("render.professional_subline", true)
	v.SetDefault("render.creator", "")
	v.SetDefault("render.preview_scale", 1.0)

	v.SetDefault("storage.driver", "none")
	v.SetDefault("storage.dir", "./artifacts")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.prefix", "invoices/")

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.migrate", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "invoiceuser")
	v.SetDefault("database.dbname", "invoicedb")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.conn_max_lifetime", time.Hour)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.ttl", 24*time.Hour)
}

func (c *Config) validate() error {
	if _, err := language.Parse(c.Render.Locale); err != nil {
		return fmt.Errorf("invalid render.locale %q: %w", c.Render.Locale, err)
	}
	if c.Render.PreviewScale <= 0 || c.Render.PreviewScale > 8 {
		return fmt.Errorf("render.preview_scale must be in (0, 8], got %v", c.Render.PreviewScale)
	}
	switch c.Storage.Driver {
	case "none", "fs":
	case "s3":
		if c.Storage.Bucket == "" {
			return errors.New("storage.bucket is required for the s3 driver")
		}
	default:
		return fmt.Errorf("unknown storage.driver %q", c.Storage.Driver)
	}
	if c.HTTP.MaxBodySize <= 0 {
		return errors.New("http.max_body_size must be positive")
	}
	return nil
}

// IsProduction reports whether the app runs in the production environment
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// LocaleTag returns the parsed render locale.
func (c RenderConfig) LocaleTag() language.Tag {
	return language.Make(c.Locale)
}

// DSN returns the PostgreSQL connection URL
func (c DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}
