package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"goldpredict/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	DataSource struct {
		Symbol        string `yaml:"symbol"`
		MetalsBaseURL string `yaml:"metals_base_url"`
		MetalsAPIKey  string `yaml:"metals_api_key"`
	} `yaml:"data_source"`
	Schedule struct {
		SnapshotCron string   `yaml:"snapshot_cron"`
		Timeframes   []string `yaml:"timeframes"`
	} `yaml:"schedule"`
	Alert struct {
		BotToken      string  `yaml:"bot_token"`
		ChatID        string  `yaml:"chat_id"`
		MinConfidence float64 `yaml:"min_confidence"`
	} `yaml:"alert"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment
// variable overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("SYMBOL"); v != "" {
		cfg.DataSource.Symbol = v
	}
	if v := os.Getenv("METALS_BASE_URL"); v != "" {
		cfg.DataSource.MetalsBaseURL = v
	}
	if v := os.Getenv("METALS_API_KEY"); v != "" {
		cfg.DataSource.MetalsAPIKey = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Alert.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Alert.ChatID = v
	}
	if v := os.Getenv("ALERT_MIN_CONFIDENCE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Alert.MinConfidence = f
		}
	}
	if v := os.Getenv("SNAPSHOT_CRON"); v != "" {
		cfg.Schedule.SnapshotCron = v
	}
	if v := os.Getenv("SNAPSHOT_TIMEFRAMES"); v != "" {
		cfg.Schedule.Timeframes = strings.Split(v, ",")
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.DataSource.Symbol == "" {
		cfg.DataSource.Symbol = "XAUUSD"
	}
	if cfg.Schedule.SnapshotCron == "" {
		cfg.Schedule.SnapshotCron = "0 0 * * * *"
	}
	if len(cfg.Schedule.Timeframes) == 0 {
		cfg.Schedule.Timeframes = []string{model.Timeframe1h, model.Timeframe1d}
	}
	if cfg.Alert.MinConfidence == 0 {
		cfg.Alert.MinConfidence = 70
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/goldpredict.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

// Validate checks that all required fields are coherent.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	for _, tf := range c.Schedule.Timeframes {
		if !model.ValidTimeframe(tf) {
			return fmt.Errorf("schedule.timeframes: unsupported timeframe %q", tf)
		}
	}
	if c.Alert.MinConfidence < 0 || c.Alert.MinConfidence > 100 {
		return fmt.Errorf("alert.min_confidence must be within 0..100")
	}
	return nil
}
