package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("missing file should not fail: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("addr %q, want :8080", cfg.Server.Addr)
	}
	if cfg.DataSource.Symbol != "XAUUSD" {
		t.Errorf("symbol %q, want XAUUSD", cfg.DataSource.Symbol)
	}
	if cfg.Schedule.SnapshotCron != "0 0 * * * *" {
		t.Errorf("cron %q, want hourly default", cfg.Schedule.SnapshotCron)
	}
	if len(cfg.Schedule.Timeframes) != 2 {
		t.Errorf("timeframes %v, want [1h 1d]", cfg.Schedule.Timeframes)
	}
	if cfg.Alert.MinConfidence != 70 {
		t.Errorf("min confidence %.0f, want 70", cfg.Alert.MinConfidence)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("log level %q, want info", cfg.Log.Level)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  addr: ":9090"
data_source:
  symbol: "XAGUSD"
schedule:
  timeframes: ["4h"]
alert:
  min_confidence: 85
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("addr %q, want :9090", cfg.Server.Addr)
	}
	if cfg.DataSource.Symbol != "XAGUSD" {
		t.Errorf("symbol %q, want XAGUSD", cfg.DataSource.Symbol)
	}
	if len(cfg.Schedule.Timeframes) != 1 || cfg.Schedule.Timeframes[0] != "4h" {
		t.Errorf("timeframes %v, want [4h]", cfg.Schedule.Timeframes)
	}
	if cfg.Alert.MinConfidence != 85 {
		t.Errorf("min confidence %.0f, want 85", cfg.Alert.MinConfidence)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level %q, want debug", cfg.Log.Level)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":7070")
	t.Setenv("SYMBOL", "XPTUSD")
	t.Setenv("SNAPSHOT_TIMEFRAMES", "1h,4h,1d")
	t.Setenv("ALERT_MIN_CONFIDENCE", "90")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("addr %q, want env override :7070", cfg.Server.Addr)
	}
	if cfg.DataSource.Symbol != "XPTUSD" {
		t.Errorf("symbol %q, want XPTUSD", cfg.DataSource.Symbol)
	}
	if len(cfg.Schedule.Timeframes) != 3 {
		t.Errorf("timeframes %v, want three from env", cfg.Schedule.Timeframes)
	}
	if cfg.Alert.MinConfidence != 90 {
		t.Errorf("min confidence %.0f, want 90", cfg.Alert.MinConfidence)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [not a map"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}

	cfg.Schedule.Timeframes = []string{"2h"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unsupported timeframe")
	}

	cfg.Schedule.Timeframes = []string{"1h"}
	cfg.Alert.MinConfidence = 120
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for out-of-range confidence")
	}
}
