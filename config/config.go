package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config defines the app configuration.
type Config struct {
	Server struct {
		Port int    `yaml:"port" env:"PORT" env-default:"4000"`
		Env  string `yaml:"env" env:"ENV" env-default:"development"`
	} `yaml:"server"`
	Database struct {
		DSN          string `yaml:"dsn" env:"DSN"`
		MaxOpenConns int    `yaml:"max_open_conns" env:"MAXOPENCONNS" env-default:"25"`
		MaxIdleConns int    `yaml:"max_idle_conns" env:"MAXIDLECONNS" env-default:"25"`
		MaxIdleTime  string `yaml:"max_idle_time" env:"MAXIDLETIME" env-default:"15m"`
		Migrate      bool   `yaml:"migrate" env:"MIGRATE" env-default:"false"`
	} `yaml:"database"`
	Limiter struct {
		RPS     float64 `yaml:"rps" env:"RPS" env-default:"2"`
		Burst   int     `yaml:"burst" env:"BURST" env-default:"4"`
		Enabled bool    `yaml:"enabled" env:"LENABLED" env-default:"true"`
	} `yaml:"limiter"`
	Cors struct {
		TrustedOrigins []string `yaml:"trusted_origins" env:"TRUSTEDORIGINS" env-separator:" "`
	} `yaml:"cors"`
	Metrics struct {
		Enabled bool `yaml:"enabled" env:"MENABLED" env-default:"true"`
	} `yaml:"metrics"`
	Cache struct {
		Capacity      uint64        `yaml:"capacity" env:"CACHECAPACITY" env-default:"1024"`
		TrendingTTL   time.Duration `yaml:"trending_ttl" env:"TRENDINGTTL" env-default:"10m"`
		CategoriesTTL time.Duration `yaml:"categories_ttl" env:"CATEGORIESTTL" env-default:"15m"`
	} `yaml:"cache"`
	Activity struct {
		QueueSize       int           `yaml:"queue_size" env:"ACTIVITYQUEUESIZE" env-default:"256"`
		BreakerFailures uint32        `yaml:"breaker_failures" env:"BREAKERFAILURES" env-default:"5"`
		BreakerTimeout  time.Duration `yaml:"breaker_timeout" env:"BREAKERTIMEOUT" env-default:"30s"`
	} `yaml:"activity"`
	Log struct {
		Level string `yaml:"level" env:"LOGLEVEL" env-default:"info"`
	} `yaml:"log"`
}

// Decode reads the configuration from the YAML file at path, if it exists,
// and then applies environment overrides and defaults.
func Decode(path string) (Config, error) {
	var cfg Config
	if path != "" {
		_, err := os.Stat(path)
		switch {
		case err == nil:
			if err := cleanenv.ReadConfig(path, &cfg); err != nil {
				return Config{}, err
			}
			return cfg, nil
		case !errors.Is(err, fs.ErrNotExist):
			return Config{}, err
		}
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
