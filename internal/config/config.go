// Package config loads process configuration from config.yaml, .env and
// CVR_*-prefixed environment variables, in increasing precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/joelkehle/cvr-benchmark/internal/benchmark"
)

type Config struct {
	Addr         string `mapstructure:"addr"`
	DBPath       string `mapstructure:"db_path"`
	ChromePath   string `mapstructure:"chrome_path"`
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`

	// Benchmarks are injected reference rates, never hardcoded at call
	// sites, so alternative benchmark sets need no code change.
	Benchmarks benchmark.Benchmarks `mapstructure:"benchmarks"`

	Report struct {
		AlwaysShowAverage bool `mapstructure:"always_show_average"`
	} `mapstructure:"report"`
}

func Load() (*Config, error) {
	// Best effort; the .env file is a development convenience.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	v.SetDefault("addr", ":8080")
	v.SetDefault("db_path", "./cvr-benchmark.db")
	v.SetDefault("chrome_path", "")
	v.SetDefault("otlp_endpoint", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("benchmarks.b2b_average", benchmark.Default.B2BAverage)
	v.SetDefault("benchmarks.top_25_percent", benchmark.Default.Top25Percent)
	v.SetDefault("report.always_show_average", true)

	v.SetEnvPrefix("CVR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Benchmarks.Validate(); err != nil {
		return nil, fmt.Errorf("invalid benchmark configuration: %w", err)
	}
	return &cfg, nil
}
