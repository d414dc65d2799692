package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	DatabasePostgres = "postgres"
	DatabaseSQLite   = "sqlite"
)

type AppConfig struct {
	API        *APIConfig
	Gin        *GinConfig
	Postgres   *PostgresConfig
	Database   *DatabaseConfig
	Schema     *SchemaConfig
	Resolution *ResolutionConfig
	Dashboard  *DashboardConfig
	Cache      *CacheConfig
}

type APIConfig struct {
	Environment        string
	Port               string
	BaseURL            string
	JWTSigningKey      string
	AllowedCORSDomains []string
}

type GinConfig struct {
	Mode string
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DB       string
	SSLMode  string
}

type DatabaseConfig struct {
	Type       string
	SQLitePath string
}

// SchemaConfig controls which optional tables and columns are created when
// AutoMigrate is on. Capabilities are detected from the live schema either way.
type SchemaConfig struct {
	AutoMigrate  bool
	PartyRollups bool
	ReportPhotos bool
}

type ResolutionConfig struct {
	Order []string
}

type DashboardConfig struct {
	FeedSize          int
	AlertsPerSeverity int
	AlertsTotal       int
	RequirePhoto      bool
}

type CacheConfig struct {
	CatalogTTL time.Duration
}

// Load reads the yaml file at path, applies env overrides (API_PORT,
// POSTGRES_HOST, ...) and validates the result.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	fileLoaded := true
	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
		}
		fileLoaded = false
	}

	conf := &AppConfig{
		API: &APIConfig{
			Environment:        v.GetString("api.environment"),
			Port:               v.GetString("api.port"),
			BaseURL:            v.GetString("api.base_url"),
			JWTSigningKey:      v.GetString("api.jwt_signing_key"),
			AllowedCORSDomains: v.GetStringSlice("api.allowed_cors_domains"),
		},
		Gin: &GinConfig{
			Mode: v.GetString("gin.mode"),
		},
		Postgres: &PostgresConfig{
			Host:     v.GetString("postgres.host"),
			Port:     v.GetString("postgres.port"),
			User:     v.GetString("postgres.user"),
			Password: v.GetString("postgres.password"),
			DB:       v.GetString("postgres.db"),
			SSLMode:  v.GetString("postgres.sslmode"),
		},
		Database: &DatabaseConfig{
			Type:       strings.ToLower(v.GetString("database.type")),
			SQLitePath: v.GetString("database.sqlite_path"),
		},
		Schema: &SchemaConfig{
			AutoMigrate:  v.GetBool("schema.auto_migrate"),
			PartyRollups: v.GetBool("schema.party_rollups"),
			ReportPhotos: v.GetBool("schema.report_photos"),
		},
		Resolution: &ResolutionConfig{
			Order: v.GetStringSlice("resolution.order"),
		},
		Dashboard: &DashboardConfig{
			FeedSize:          v.GetInt("dashboard.feed_size"),
			AlertsPerSeverity: v.GetInt("dashboard.alerts_per_severity"),
			AlertsTotal:       v.GetInt("dashboard.alerts_total"),
			RequirePhoto:      v.GetBool("dashboard.require_photo"),
		},
		Cache: &CacheConfig{
			CatalogTTL: v.GetDuration("cache.catalog_ttl"),
		},
	}

	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("conf.Validate -> %w", err)
	}

	if fileLoaded {
		v.OnConfigChange(func(e fsnotify.Event) {
			zap.L().Warn("config file changed, restart to apply",
				zap.String("file", e.Name), zap.String("op", e.Op.String()))
		})
		v.WatchConfig()
	}

	return conf, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.environment", EnvDevelopment)
	v.SetDefault("api.port", "8080")
	v.SetDefault("api.base_url", "localhost:8080")
	v.SetDefault("api.allowed_cors_domains", []string{"http://localhost:3000"})
	v.SetDefault("gin.mode", "debug")
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", "5432")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("database.type", DatabasePostgres)
	v.SetDefault("database.sqlite_path", "mesas.db")
	v.SetDefault("schema.auto_migrate", true)
	v.SetDefault("schema.party_rollups", true)
	v.SetDefault("schema.report_photos", true)
	v.SetDefault("resolution.order", []string{"catalog", "assignment", "delegate"})
	v.SetDefault("dashboard.feed_size", 20)
	v.SetDefault("dashboard.alerts_per_severity", 5)
	v.SetDefault("dashboard.alerts_total", 10)
	v.SetDefault("dashboard.require_photo", false)
	v.SetDefault("cache.catalog_ttl", 5*time.Minute)
}

func (c *AppConfig) Validate() error {
	if err := validation.ValidateStruct(c.API,
		validation.Field(&c.API.Environment, validation.Required, validation.In(EnvDevelopment, EnvProduction)),
		validation.Field(&c.API.Port, validation.Required, is.Port),
		validation.Field(&c.API.JWTSigningKey, validation.Required, validation.Length(16, 0)),
	); err != nil {
		return fmt.Errorf("api: %w", err)
	}

	if err := validation.ValidateStruct(c.Database,
		validation.Field(&c.Database.Type, validation.Required, validation.In(DatabasePostgres, DatabaseSQLite)),
	); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if err := validation.ValidateStruct(c.Dashboard,
		validation.Field(&c.Dashboard.FeedSize, validation.Required, validation.Min(1), validation.Max(200)),
		validation.Field(&c.Dashboard.AlertsPerSeverity, validation.Min(0)),
		validation.Field(&c.Dashboard.AlertsTotal, validation.Min(0)),
	); err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}

	for i, src := range c.Resolution.Order {
		if err := validation.Validate(strings.ToLower(src), validation.In("catalog", "assignment", "delegate")); err != nil {
			return fmt.Errorf("resolution.order[%d]: %w", i, err)
		}
	}

	return nil
}
