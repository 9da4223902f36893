package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	SMTP     SMTPConfig     `mapstructure:"smtp"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	Reports  ReportsConfig  `mapstructure:"reports"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port      int     `envconfig:"PORT" default:"3001" mapstructure:"port"`
	RateRPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"50" mapstructure:"rate_rps"`
	RateBurst int     `envconfig:"RATE_LIMIT_BURST" default:"100" mapstructure:"rate_burst"`
}

type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost" mapstructure:"host"`
	Port     int    `envconfig:"DB_PORT" default:"5432" mapstructure:"port"`
	User     string `envconfig:"DB_USER" default:"postgres" mapstructure:"user"`
	Password string `envconfig:"DB_PASSWORD" default:"" mapstructure:"password"`
	Name     string `envconfig:"DB_NAME" default:"agendasalud" mapstructure:"name"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable" mapstructure:"sslmode"`
	PoolSize int    `envconfig:"DB_POOL_SIZE" default:"10" mapstructure:"pool_size"`
}

type SMTPConfig struct {
	Host     string `envconfig:"SMTP_HOST" default:"" mapstructure:"host"`
	Port     int    `envconfig:"SMTP_PORT" default:"587" mapstructure:"port"`
	User     string `envconfig:"SMTP_USER" default:"" mapstructure:"user"`
	Password string `envconfig:"SMTP_PASSWORD" default:"" mapstructure:"password"`
	From     string `envconfig:"SMTP_FROM" default:"no-reply@agendasalud.cl" mapstructure:"from"`
}

type GeminiConfig struct {
	// Absence of the key disables only the chat proxy.
	APIKey string `envconfig:"GEMINI_API_KEY" default:"" mapstructure:"api_key"`
	Model  string `envconfig:"GEMINI_MODEL" default:"gemini-1.5-flash" mapstructure:"model"`
}

type ReportsConfig struct {
	Dir string `envconfig:"REPORTS_DIR" default:"./reports" mapstructure:"dir"`
}

type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info" mapstructure:"level"`
	Pretty bool   `envconfig:"LOG_PRETTY" default:"false" mapstructure:"pretty"`
}

// Load reads configuration from the process environment, applying the
// documented defaults, then overlays an optional config.yaml when one is
// present in the working directory or ./config.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	if err := viper.ReadInConfig(); err == nil {
		if err := viper.Unmarshal(&cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	}

	return &cfg, nil
}
