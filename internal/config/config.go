package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

// Data sources the ledger store can be built from
const (
	SourceCSV   = "csv"
	SourceMySQL = "mysql"
)

type Config struct {
	ServerAddress string
	Environment   string
	LogLevel      string
	Data          DataConfig
	Database      DatabaseConfig
	Migration     MigrationConfig
}

type DataConfig struct {
	Source          string
	Dir             string
	BaseURL         string
	FetchTimeout    time.Duration
	CashAccountFrom string
	CashAccountTo   string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	Params   string
}

type MigrationConfig struct {
	Dir string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_ADDRESS", ":8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATA_SOURCE", SourceCSV)
	v.SetDefault("DATA_DIR", "data")
	v.SetDefault("FETCH_TIMEOUT", "0s")
	v.SetDefault("CASH_ACCOUNT_FROM", "1100-0000")
	v.SetDefault("CASH_ACCOUNT_TO", "1145-0000")
	v.SetDefault("DB_PORT", 3306)
	v.SetDefault("DB_PARAMS", "parseTime=true")
	v.SetDefault("MIGRATION_DIR", "migrations")
}

// LoadConfig reads .env when present, then the environment.
func LoadConfig() (*Config, error) {
	return Load(".env")
}

// Load reads the given env file when present, then the environment.
func Load(envFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	timeout, err := time.ParseDuration(v.GetString("FETCH_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid FETCH_TIMEOUT: %w", err)
	}

	config := &Config{
		ServerAddress: v.GetString("SERVER_ADDRESS"),
		Environment:   v.GetString("ENVIRONMENT"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		Data: DataConfig{
			Source:          v.GetString("DATA_SOURCE"),
			Dir:             v.GetString("DATA_DIR"),
			BaseURL:         v.GetString("DATA_BASE_URL"),
			FetchTimeout:    timeout,
			CashAccountFrom: v.GetString("CASH_ACCOUNT_FROM"),
			CashAccountTo:   v.GetString("CASH_ACCOUNT_TO"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			Params:   v.GetString("DB_PARAMS"),
		},
		Migration: MigrationConfig{
			Dir: v.GetString("MIGRATION_DIR"),
		},
	}

	switch config.Data.Source {
	case SourceCSV, SourceMySQL:
	default:
		return nil, fmt.Errorf("invalid DATA_SOURCE %q", config.Data.Source)
	}

	return config, nil
}

// GetDSN returns the MySQL DSN string
func (c *Config) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.Params,
	)
}

// GetMigrationDBURL returns the database URL for migrations
func (c *Config) GetMigrationDBURL() string {
	return fmt.Sprintf("mysql://%s:%s@tcp(%s:%d)/%s?%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.Params,
	)
}
