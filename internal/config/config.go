package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env             string
	ListenAddr      string // TCP address the line protocol listens on
	AdminAddr       string // HTTP admin/health sidecar; empty disables it
	DatabaseURL     string // postgres:// DSN or a sqlite file path
	RedisURL        string // command stats counters; empty disables them
	LogLevel        string
	DefaultUserID   int64   // implicit user for BALANCE and LIST
	SeedUserName    string  // provisioned on first run if DefaultUserID is absent
	SeedUserBalance float64
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	listen := viper.GetString("BROKER_LISTEN_ADDR")
	if listen == "" {
		listen = ":6969"
	}
	admin := viper.GetString("ADMIN_LISTEN_ADDR")
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	dbURL := viper.GetString("DATABASE_URL")
	if dbURL == "" {
		dbURL = "broker.db"
	}

	logLevel := viper.GetString("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	defaultUser := viper.GetInt64("BROKER_DEFAULT_USER_ID")
	if defaultUser == 0 {
		defaultUser = 1
	}
	seedName := viper.GetString("BROKER_SEED_USER_NAME")
	if seedName == "" {
		seedName = "John Doe"
	}
	seedBalance := viper.GetFloat64("BROKER_SEED_USER_BALANCE")
	if !viper.IsSet("BROKER_SEED_USER_BALANCE") {
		seedBalance = 100.00
	}

	return &Config{
		Env:             env,
		ListenAddr:      listen,
		AdminAddr:       admin,
		DatabaseURL:     dbURL,
		RedisURL:        viper.GetString("REDIS_URL"),
		LogLevel:        logLevel,
		DefaultUserID:   defaultUser,
		SeedUserName:    seedName,
		SeedUserBalance: seedBalance,
	}, nil
}
