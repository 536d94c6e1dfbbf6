package server

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigWritesDefaults(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.json")

	cfg, err := LoadConfig(cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("fresh config = %+v, want defaults", cfg)
	}

	b, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	var written Config
	if err := json.Unmarshal(b, &written); err != nil {
		t.Fatalf("config.json is not valid JSON: %v", err)
	}
	if written.Colors.Lecture != "#FFDE59" || written.Export.Padding != 50 {
		t.Errorf("written config = %+v", written)
	}
}

func TestLoadConfigMerges(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(cfgPath, []byte(`{"colors": {"lecture": "#112233"}, "redis": {"password": "secret"}}`), 0644)
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Colors.Lecture != "#112233" || cfg.Colors.Tutorial != "#5CE1E6" {
		t.Errorf("colours = %+v", cfg.Colors)
	}
	if cfg.Redis.Password != "" {
		t.Errorf("password was read from config.json")
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	cases := []string{
		`{"colors": {"lecture": "yellow"}}`,
		`{"redis": {"db": 16}}`,
		`{"redis": {"enabled": true, "addr": ""}}`,
		`{"server": {"addr": ""}}`,
		`{"export": {"pixelRatio": 0}}`,
		`not json`,
	}
	for _, c := range cases {
		cfgPath := filepath.Join(t.TempDir(), "config.json")
		if err := os.WriteFile(cfgPath, []byte(c), 0644); err != nil {
			t.Fatal(err)
		}
		cfg, err := LoadConfig(cfgPath)
		if err == nil {
			t.Errorf("%s: expected an error", c)
		}
		if cfg != DefaultConfig() {
			t.Errorf("%s: invalid config not replaced by defaults", c)
		}
	}
}

func TestApplyEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("SCHEDGRID_REDIS_DB=3\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SCHEDGRID_ADDR", "0.0.0.0:9000")
	t.Setenv("SCHEDGRID_REDIS_ADDR", "cache:6379")
	t.Setenv("SCHEDGRID_REDIS_PASSWORD", "hunter2")
	// godotenv does not override variables that are already set.
	t.Setenv("SCHEDGRID_REDIS_DB", "")
	os.Unsetenv("SCHEDGRID_REDIS_DB")

	cfg := DefaultConfig()
	if err := ApplyEnv(&cfg, envFile); err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != "0.0.0.0:9000" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if !cfg.Redis.Enabled || cfg.Redis.Addr != "cache:6379" || cfg.Redis.DB != 3 || cfg.Redis.Password != "hunter2" {
		t.Errorf("redis = %+v", cfg.Redis)
	}

	cfg = DefaultConfig()
	if err := ApplyEnv(&cfg, filepath.Join(dir, "missing.env")); err != nil {
		t.Errorf("missing env file: %v", err)
	}
}
