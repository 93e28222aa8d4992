package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Source kinds.
const (
	SourceSQLite    = "sqlite"
	SourceFirestore = "firestore"
)

// DefaultLookbackDays is how far before a calendar grid readings are fetched
// so streaks that began earlier keep their true start.
const DefaultLookbackDays = 62

// Config holds the top-level mates configuration.
type Config struct {
	User   UserConfig   `toml:"user"`
	Group  GroupConfig  `toml:"group"`
	Source SourceConfig `toml:"source"`
	Streak StreakConfig `toml:"streak"`
	Log    LogConfig    `toml:"log"`
}

// UserConfig identifies who is using this install.
type UserConfig struct {
	ID        string `toml:"id"`
	FirstName string `toml:"first_name"`
	LastName  string `toml:"last_name"`
	Email     string `toml:"email"`
}

// GroupConfig selects the group shown when --group is not given.
// An empty Default means solo mode.
type GroupConfig struct {
	Default string `toml:"default"`
}

// SourceConfig chooses where readings, profiles and groups live.
type SourceConfig struct {
	Kind            string `toml:"kind"` // sqlite, firestore
	CredentialsFile string `toml:"credentials_file"`
	ProjectID       string `toml:"project_id"`
}

type StreakConfig struct {
	LookbackDays int `toml:"lookback_days"`
}

// LogConfig controls the diagnostic log file.
type LogConfig struct {
	Level      string `toml:"level"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

// Paths returns standard XDG-compliant paths.
type Paths struct {
	ConfigDir  string
	DataDir    string
	CacheDir   string
	StateDir   string
	ConfigFile string
	DBFile     string
	LogFile    string
}

// GetPaths returns the resolved paths, respecting XDG env vars.
func GetPaths() Paths {
	home, _ := os.UserHomeDir()

	configDir := envOr("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	dataDir := envOr("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	cacheDir := envOr("XDG_CACHE_HOME", filepath.Join(home, ".cache"))
	stateDir := envOr("XDG_STATE_HOME", filepath.Join(home, ".local", "state"))

	matesConfig := filepath.Join(configDir, "mates")
	matesData := filepath.Join(dataDir, "mates")
	matesState := filepath.Join(stateDir, "mates")

	return Paths{
		ConfigDir:  matesConfig,
		DataDir:    matesData,
		CacheDir:   filepath.Join(cacheDir, "mates"),
		StateDir:   matesState,
		ConfigFile: filepath.Join(matesConfig, "config.toml"),
		DBFile:     filepath.Join(matesData, "mates.db"),
		LogFile:    filepath.Join(matesState, "mates.log"),
	}
}

// EnsureDirs creates all required directories.
func (p Paths) EnsureDirs() error {
	dirs := []string{p.ConfigDir, p.DataDir, p.CacheDir, p.StateDir}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// Load reads config from disk, returning defaults if not found. Keys missing
// from the file keep their defaults.
func Load() (*Config, error) {
	paths := GetPaths()
	cfg := defaultConfig()

	data, err := os.ReadFile(paths.ConfigFile)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes config to disk.
func Save(cfg *Config) error {
	paths := GetPaths()
	if err := paths.EnsureDirs(); err != nil {
		return err
	}

	f, err := os.Create(paths.ConfigFile)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Initialized returns true if mates has been set up.
func Initialized() bool {
	paths := GetPaths()
	_, err := os.Stat(paths.ConfigFile)
	return err == nil
}

// Lookback returns the configured lookback, falling back to the default for
// unset or negative values.
func (c *Config) Lookback() int {
	if c.Streak.LookbackDays <= 0 {
		return DefaultLookbackDays
	}
	return c.Streak.LookbackDays
}

func defaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Kind: SourceSQLite,
		},
		Streak: StreakConfig{
			LookbackDays: DefaultLookbackDays,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
