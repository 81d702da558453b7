package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/bastiangx/votersearch/internal/utils"
)

func TestInitConfigCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg, err := InitConfig(path)
	if err != nil {
		t.Fatalf("InitConfig: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("InitConfig returned %+v, want defaults", cfg)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	again, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if *again != *DefaultConfig() {
		t.Errorf("written defaults do not load back: %+v", again)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[data]
source = "https://example.org/votersJSON.json"
load_timeout_seconds = 5

[search]
default_mode = "name"
normalize_unicode = true
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Data.Source != "https://example.org/votersJSON.json" || cfg.Data.LoadTimeout() != 5*time.Second {
		t.Errorf("unexpected data section: %+v", cfg.Data)
	}
	if cfg.Search.DefaultMode != "name" || !cfg.Search.NormalizeUnicode {
		t.Errorf("unexpected search section: %+v", cfg.Search)
	}
	if cfg.Server.HTTPAddr != DefaultConfig().Server.HTTPAddr {
		t.Errorf("missing section should keep defaults, got %+v", cfg.Server)
	}
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	// cli.color has the wrong type, so strict decoding fails.
	content := `
[server]
http_addr = ":9090"

[cli]
suggest_limit = 3
color = "yes"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.HTTPAddr != ":9090" {
		t.Errorf("http_addr = %q, want :9090", cfg.Server.HTTPAddr)
	}
	if cfg.CLI.SuggestLimit != 3 {
		t.Errorf("suggest_limit = %d, want 3", cfg.CLI.SuggestLimit)
	}
	if cfg.CLI.Color != DefaultConfig().CLI.Color {
		t.Errorf("invalid color should fall back to default")
	}
}

func TestLoadConfigGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[[[ not toml"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("unparseable file should yield defaults, got %+v", cfg)
	}
}

func TestLoadConfigWithPriorityCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	if err := os.WriteFile(path, []byte("[database]\ntable = \"roll_2024\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, used, err := LoadConfigWithPriority(path)
	if err != nil {
		t.Fatalf("LoadConfigWithPriority: %v", err)
	}
	if used != path || cfg.Database.Table != "roll_2024" {
		t.Errorf("used=%q table=%q", used, cfg.Database.Table)
	}
}

func TestLoadTimeout(t *testing.T) {
	if (DataConfig{}).LoadTimeout() != 0 {
		t.Error("zero seconds should mean no timeout")
	}
	if (DataConfig{LoadTimeoutSeconds: 2}).LoadTimeout() != 2*time.Second {
		t.Error("unexpected timeout")
	}
}

func TestGetConfigDirFollowsPlatformDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME applies on linux only")
	}
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir: %v", err)
	}
	want := filepath.Join(xdg, utils.AppName)
	if dir != want {
		t.Errorf("GetConfigDir = %q, want %q", dir, want)
	}
	if dir != utils.PlatformConfigDir(home) {
		t.Errorf("config dir and dataset lookup dir differ: %q vs %q", dir, utils.PlatformConfigDir(home))
	}
}
