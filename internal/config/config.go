package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Data      DataConfig      `yaml:"data" mapstructure:"data"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// AnthropicConfig holds Anthropic API settings for the live extractor.
// An empty Key means the service runs in demo mode.
type AnthropicConfig struct {
	Key               string  `yaml:"key" mapstructure:"key"`
	Model             string  `yaml:"model" mapstructure:"model"`
	MaxTokens         int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	TimeoutSecs       int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

// DataConfig locates the static schema and reference sample files.
type DataConfig struct {
	SchemaPath  string `yaml:"schema_path" mapstructure:"schema_path"`
	SamplesPath string `yaml:"samples_path" mapstructure:"samples_path"`
}

// ServerConfig configures the HTTP gateway.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("INTAKE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. The empty key default keeps the env-only
	// INTAKE_ANTHROPIC_KEY binding visible to Unmarshal.
	v.SetDefault("anthropic.key", "")
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.max_tokens", 4000)
	v.SetDefault("anthropic.timeout_secs", 60)
	v.SetDefault("anthropic.requests_per_second", 2.0)
	v.SetDefault("anthropic.burst", 4)
	v.SetDefault("data.schema_path", "data/form_schema.json")
	v.SetDefault("data.samples_path", "data/sample_transcripts.json")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
