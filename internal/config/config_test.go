package config

import (
	"os"
	"path/filepath"
	"testing"
)

func setupXDG(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmpDir, "data"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(tmpDir, "cache"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(tmpDir, "state"))
	return tmpDir
}

func TestGetPathsRespectsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/testxdg/config")
	t.Setenv("XDG_DATA_HOME", "/tmp/testxdg/data")
	t.Setenv("XDG_STATE_HOME", "/tmp/testxdg/state")

	paths := GetPaths()

	if paths.ConfigDir != "/tmp/testxdg/config/mates" {
		t.Fatalf("expected /tmp/testxdg/config/mates, got %s", paths.ConfigDir)
	}
	if paths.DBFile != "/tmp/testxdg/data/mates/mates.db" {
		t.Fatalf("unexpected DBFile %s", paths.DBFile)
	}
	if paths.LogFile != "/tmp/testxdg/state/mates/mates.log" {
		t.Fatalf("unexpected LogFile %s", paths.LogFile)
	}
}

func TestLoadMissingReturnsDefaults(t *testing.T) {
	setupXDG(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Source.Kind != SourceSQLite {
		t.Errorf("source kind = %q, want sqlite", cfg.Source.Kind)
	}
	if cfg.Lookback() != DefaultLookbackDays {
		t.Errorf("lookback = %d", cfg.Lookback())
	}
	if Initialized() {
		t.Error("should not be initialized without a config file")
	}
}

func TestSaveAndLoad(t *testing.T) {
	setupXDG(t)

	cfg, _ := Load()
	cfg.User.ID = "u-1"
	cfg.User.FirstName = "Dylan"
	cfg.Group.Default = "g-1"
	cfg.Streak.LookbackDays = 30
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Initialized() {
		t.Fatal("expected Initialized after Save")
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.User.FirstName != "Dylan" || got.Group.Default != "g-1" || got.Lookback() != 30 {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	setupXDG(t)
	paths := GetPaths()
	if err := paths.EnsureDirs(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(paths.ConfigFile, []byte("[user]\nid = \"u-9\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.User.ID != "u-9" {
		t.Errorf("user.id = %q", cfg.User.ID)
	}
	if cfg.Source.Kind != SourceSQLite || cfg.Log.Level != "info" {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	setupXDG(t)
	paths := GetPaths()
	_ = paths.EnsureDirs()
	if err := os.WriteFile(paths.ConfigFile, []byte("[user\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLookbackFallback(t *testing.T) {
	cfg := &Config{}
	if cfg.Lookback() != DefaultLookbackDays {
		t.Errorf("zero lookback should fall back, got %d", cfg.Lookback())
	}
}

func TestEnsureDirs(t *testing.T) {
	setupXDG(t)

	paths := GetPaths()
	if err := paths.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs failed: %v", err)
	}
	for _, dir := range []string{paths.ConfigDir, paths.DataDir, paths.CacheDir, paths.StateDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("dir %s not created: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("%s is not a directory", dir)
		}
	}
}
