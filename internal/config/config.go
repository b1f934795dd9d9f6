package config

import (
	"os"

	"github.com/spf13/viper"
)

// Config is the application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	YouTube  YouTubeConfig  `mapstructure:"youtube"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port string `mapstructure:"port"`
	// DebugErrors controls whether internal error details are included in
	// 500 responses. Diagnostic posture, off in production.
	DebugErrors bool `mapstructure:"debug_errors"`
}

// DatabaseConfig holds the PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// JWTConfig holds the token settings.
type JWTConfig struct {
	Secret        string `mapstructure:"secret"`
	ExpiryMinutes int    `mapstructure:"expiry_minutes"`
}

// AuthConfig holds the fixed login credentials that gate mutating operations.
type AuthConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// KafkaConfig holds the event publishing settings. Publishing is disabled
// when no brokers are configured.
type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

// YouTubeConfig holds the external video platform settings.
type YouTubeConfig struct {
	APIKey          string `mapstructure:"api_key"`
	BaseURL         string `mapstructure:"base_url"`
	Query           string `mapstructure:"query"`
	RegionCode      string `mapstructure:"region_code"`
	MaxResults      int    `mapstructure:"max_results"`
	PublishedAfter  string `mapstructure:"published_after"`
	PublishedBefore string `mapstructure:"published_before"`
}

// LoadConfig loads the configuration file at the given path, with environment
// variables taking precedence for the API key.
func LoadConfig(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	applyOverrides(&config)
	return &config, nil
}

// Load reads config.yaml from the working directory or ./config.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	applyOverrides(&config)
	return &config, nil
}

func applyOverrides(config *Config) {
	if port := os.Getenv("PORT"); port != "" {
		config.Server.Port = port
	}
	if apiKey := os.Getenv("YOUTUBE_API_KEY"); apiKey != "" {
		config.YouTube.APIKey = apiKey
	}

	// Defaults
	if config.Server.Port == "" {
		config.Server.Port = "3000"
	}
	if config.JWT.ExpiryMinutes <= 0 {
		config.JWT.ExpiryMinutes = 30
	}
}
