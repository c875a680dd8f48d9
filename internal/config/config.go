package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Forecast sources
const (
	ForecastSourceStatic   = "static"
	ForecastSourceFile     = "file"
	ForecastSourcePostgres = "postgres"
)

type Config struct {
	App      App      `mapstructure:",squash"`
	Server   Server   `mapstructure:",squash"`
	Dataset  Dataset  `mapstructure:",squash"`
	Forecast Forecast `mapstructure:",squash"`
	Database Database `mapstructure:",squash"`
	Auth     Auth     `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Dataset struct {
	Path          string `mapstructure:"dataset_path"`
	DownloadName  string `mapstructure:"dataset_download_name"`
	Watch         bool   `mapstructure:"dataset_watch"`
	ReloadEnabled bool   `mapstructure:"dataset_reload_enabled"`
	ReloadCron    string `mapstructure:"dataset_reload_cron"`
}

type Forecast struct {
	Source       string `mapstructure:"forecast_source"`
	File         string `mapstructure:"forecast_file"`
	ModelVersion string `mapstructure:"forecast_model_version"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Auth struct {
	Secret       string        `mapstructure:"auth_secret"`
	Username     string        `mapstructure:"auth_username"`
	PasswordHash string        `mapstructure:"auth_password_hash"`
	TokenTTL     time.Duration `mapstructure:"auth_token_ttl"`
}

// Enabled reports whether an operator account is fully configured
func (a Auth) Enabled() bool {
	return a.Secret != "" && a.Username != "" && a.PasswordHash != ""
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", "8501")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("DATASET_PATH", filepath.Join("data", "processed", "ethiopia_fi_unified_data_enriched.csv"))
	viper.SetDefault("DATASET_DOWNLOAD_NAME", "ethiopia_fi_enriched.csv")
	viper.SetDefault("DATASET_WATCH", false)
	viper.SetDefault("DATASET_RELOAD_ENABLED", false)
	viper.SetDefault("DATASET_RELOAD_CRON", "*/30 * * * *") // every 30 minutes

	viper.SetDefault("FORECAST_SOURCE", ForecastSourceStatic)
	viper.SetDefault("FORECAST_FILE", filepath.Join("data", "forecast", "forecast.yaml"))
	viper.SetDefault("FORECAST_MODEL_VERSION", "")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/fi_forecast?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("AUTH_SECRET", "")
	viper.SetDefault("AUTH_USERNAME", "")
	viper.SetDefault("AUTH_PASSWORD_HASH", "")
	viper.SetDefault("AUTH_TOKEN_TTL", "12h")

	viper.SetDefault("LOG_LEVEL", "info")
}

func NewConfig() (*Config, error) {
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("config: no .env read by viper, using environment: ", err)
	}

	err := viper.Unmarshal(config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Forecast.Source = strings.ToLower(strings.TrimSpace(config.Forecast.Source))
	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Validate rejects settings the server cannot start with
func (c *Config) Validate() error {
	switch c.Forecast.Source {
	case ForecastSourceStatic, ForecastSourcePostgres:
	case ForecastSourceFile:
		if c.Forecast.File == "" {
			return fmt.Errorf("config: FORECAST_FILE is required when FORECAST_SOURCE=%s", ForecastSourceFile)
		}
	default:
		return fmt.Errorf("config: unknown FORECAST_SOURCE %q", c.Forecast.Source)
	}

	if c.Dataset.Path == "" {
		return fmt.Errorf("config: DATASET_PATH is required")
	}

	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("config: AUTH_TOKEN_TTL must be positive")
	}

	return nil
}

func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("config: could not resolve working directory: ", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("config: loaded .env from ", location)
			return
		}
	}

	logrus.Debug("config: no .env file found")
}
