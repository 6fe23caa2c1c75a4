package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all client configuration
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Stages   StagesConfig   `mapstructure:"stages"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Playback PlaybackConfig `mapstructure:"playback"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// StagesConfig holds the cosmetic delays between stage transitions. They
// give observers a chance to render fast backend responses; they are not
// synchronization points with real backend progress.
type StagesConfig struct {
	TranscribingDelay time.Duration `mapstructure:"transcribing_delay"`
	RoutingDelay      time.Duration `mapstructure:"routing_delay"`
	ProcessingDelay   time.Duration `mapstructure:"processing_delay"`
	GeneratingDelay   time.Duration `mapstructure:"generating_delay"`
}

type StorageConfig struct {
	Path string `mapstructure:"path"`
}

type PlaybackConfig struct {
	Player string `mapstructure:"player"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set config file path
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./configs/config.yaml"
	}

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Set defaults
	setDefaults(v)

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, use defaults and env vars
	}

	// Override with environment variables
	v.AutomaticEnv()
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// API
	v.SetDefault("api.base_url", "http://localhost:8000")
	v.SetDefault("api.timeout", "120s")

	// Stage transition delays
	v.SetDefault("stages.transcribing_delay", "300ms")
	v.SetDefault("stages.routing_delay", "300ms")
	v.SetDefault("stages.processing_delay", "400ms")
	v.SetDefault("stages.generating_delay", "300ms")

	// Storage
	v.SetDefault("storage.path", defaultStatePath())

	// Playback
	v.SetDefault("playback.player", defaultPlayer())

	// Logging
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", "")
}

func bindEnvVars(v *viper.Viper) {
	v.BindEnv("api.base_url", "ASSISTANT_API_URL")
	v.BindEnv("storage.path", "ASSISTANT_STATE_PATH")
	v.BindEnv("playback.player", "ASSISTANT_PLAYER")
	v.BindEnv("logging.level", "ASSISTANT_LOG_LEVEL")
	v.BindEnv("logging.file", "ASSISTANT_LOG_FILE")
}

func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "assistant.db"
	}
	return filepath.Join(home, ".assistant", "state.db")
}

func defaultPlayer() string {
	// afplay ships with macOS; ffplay is the common choice elsewhere.
	if _, err := os.Stat("/usr/bin/afplay"); err == nil {
		return "afplay"
	}
	return "ffplay"
}
