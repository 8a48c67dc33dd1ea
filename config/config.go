package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	Logger LoggerConfig
	SQLite SQLiteConfig
	Mongo  MongoConfig
	JWT    JWTConfig
	Auth   AuthConfig
	Backup BackupConfig
	Stock  StockConfig
}

type ServerConfig struct {
	AppEnv   string
	HTTPAddr string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type SQLiteConfig struct {
	Path          string
	BusyTimeoutMS int
}

// MongoConfig points at the shared remote document store. An empty URI
// disables remote backup.
type MongoConfig struct {
	URI      string
	DBPrefix string
	Timeout  time.Duration
}

type JWTConfig struct {
	SecretKey string
	TTL       time.Duration
}

type AuthConfig struct {
	BcryptCost           int
	DefaultAdminPassword string
}

type BackupConfig struct {
	Enabled  bool
	Dir      string
	Interval time.Duration
}

type StockConfig struct {
	LowStockThreshold int
}

var defaults = map[string]any{
	"APP_ENV":                     "dev",
	"HTTP_ADDR":                   ":8085",
	"LOGGER_LEVEL":                "debug",
	"LOGGER_ENCODING":             "console",
	"LOGGER_DISABLE_CALLER":       false,
	"LOGGER_DISABLE_STACKTRACE":   true,
	"SQLITE_PATH":                 "omnipos.db",
	"SQLITE_BUSY_TIMEOUT_MS":      5000,
	"MONGO_URI":                   "",
	"MONGO_DB_PREFIX":             "pos_",
	"MONGO_TIMEOUT_SECONDS":       10,
	"JWT_SECRET_KEY":              "your-secret-key-change-this-in-prod",
	"JWT_TTL_HOURS":               12,
	"AUTH_BCRYPT_COST":            10,
	"AUTH_DEFAULT_ADMIN_PASSWORD": "admin",
	"BACKUP_ENABLED":              true,
	"BACKUP_DIR":                  "backups",
	"BACKUP_INTERVAL":             "24h",
	"LOW_STOCK_THRESHOLD":         6,
}

// LoadEnv reads defaults, an optional config.yaml and the environment, in
// increasing order of precedence.
func LoadEnv() (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			AppEnv:   v.GetString("APP_ENV"),
			HTTPAddr: v.GetString("HTTP_ADDR"),
		},
		Logger: LoggerConfig{
			Level:             v.GetString("LOGGER_LEVEL"),
			Encoding:          v.GetString("LOGGER_ENCODING"),
			DisableCaller:     v.GetBool("LOGGER_DISABLE_CALLER"),
			DisableStacktrace: v.GetBool("LOGGER_DISABLE_STACKTRACE"),
		},
		SQLite: SQLiteConfig{
			Path:          v.GetString("SQLITE_PATH"),
			BusyTimeoutMS: v.GetInt("SQLITE_BUSY_TIMEOUT_MS"),
		},
		Mongo: MongoConfig{
			URI:      v.GetString("MONGO_URI"),
			DBPrefix: v.GetString("MONGO_DB_PREFIX"),
			Timeout:  time.Duration(v.GetInt("MONGO_TIMEOUT_SECONDS")) * time.Second,
		},
		JWT: JWTConfig{
			SecretKey: v.GetString("JWT_SECRET_KEY"),
			TTL:       time.Duration(v.GetInt("JWT_TTL_HOURS")) * time.Hour,
		},
		Auth: AuthConfig{
			BcryptCost:           v.GetInt("AUTH_BCRYPT_COST"),
			DefaultAdminPassword: v.GetString("AUTH_DEFAULT_ADMIN_PASSWORD"),
		},
		Backup: BackupConfig{
			Enabled:  v.GetBool("BACKUP_ENABLED"),
			Dir:      v.GetString("BACKUP_DIR"),
			Interval: v.GetDuration("BACKUP_INTERVAL"),
		},
		Stock: StockConfig{
			LowStockThreshold: v.GetInt("LOW_STOCK_THRESHOLD"),
		},
	}

	if cfg.Backup.Interval <= 0 {
		return nil, fmt.Errorf("BACKUP_INTERVAL must be positive, got %s", cfg.Backup.Interval)
	}
	return cfg, nil
}
