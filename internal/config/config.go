// Package config loads application configuration from a YAML file,
// environment variables and a local .env file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the root configuration structure.
type Config struct {
	App       App       `mapstructure:"app"`
	Server    Server    `mapstructure:"server"`
	Database  Database  `mapstructure:"database"`
	Providers Providers `mapstructure:"providers"`
}

// App contains application-wide settings.
type App struct {
	Debug bool `mapstructure:"debug"`
}

// Server contains HTTP server settings.
type Server struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	CORS         CORS          `mapstructure:"cors"`
}

// CORS contains cross-origin settings for the HTTP API.
type CORS struct {
	Enabled        bool     `mapstructure:"enabled"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Database contains PostgreSQL connection settings.
type Database struct {
	URL             string        `mapstructure:"url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// Providers groups the three upstream news API configurations.
type Providers struct {
	Guardian Provider `mapstructure:"guardian"`
	NewsAPI  Provider `mapstructure:"newsapi"`
	NYT      Provider `mapstructure:"nyt"`
}

// Provider is one upstream news API endpoint plus its credential.
type Provider struct {
	Endpoint string        `mapstructure:"endpoint"`
	APIKey   string        `mapstructure:"api_key"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// Load reads configuration from the given file (or .newswire.yaml in the
// working directory / $HOME when empty), layering environment variables and a
// local .env file on top.
func Load(configFile string) (*Config, error) {
	// .env is optional; ignore a missing file.
	_ = godotenv.Load(".env")

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".newswire")
		viper.SetConfigType("yaml")
	}

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine; defaults plus environment apply.
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("app.debug", false)

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.cors.enabled", false)
	viper.SetDefault("server.cors.allowed_origins", []string{"*"})

	viper.SetDefault("database.url", "postgres://localhost:5432/newswire?sslmode=disable")
	viper.SetDefault("database.max_open_conns", 25)
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.conn_max_lifetime", "5m")

	viper.SetDefault("providers.guardian.endpoint", "https://content.guardianapis.com/search")
	viper.SetDefault("providers.guardian.timeout", "30s")
	viper.SetDefault("providers.newsapi.endpoint", "https://newsapi.org/v2/top-headlines")
	viper.SetDefault("providers.newsapi.timeout", "30s")
	viper.SetDefault("providers.nyt.endpoint", "https://api.nytimes.com/svc/search/v2/articlesearch.json")
	viper.SetDefault("providers.nyt.timeout", "30s")

	// Credentials come from the environment (.env or exported):
	// PROVIDERS_GUARDIAN_API_KEY, PROVIDERS_NEWSAPI_API_KEY, PROVIDERS_NYT_API_KEY.
	viper.SetDefault("providers.guardian.api_key", "")
	viper.SetDefault("providers.newsapi.api_key", "")
	viper.SetDefault("providers.nyt.api_key", "")
}
