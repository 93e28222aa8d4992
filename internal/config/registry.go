package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// KeyType represents the data type of a config key.
type KeyType string

const (
	KeyTypeString KeyType = "string"
	KeyTypeInt    KeyType = "int"
)

// KeyEntry describes a known, settable config key.
type KeyEntry struct {
	Type       KeyType
	Desc       string
	DefaultStr string

	get   func(*Config) string
	set   func(cfg *Config, value string) error
	unset func(cfg *Config)
}

// Get returns the current value of the key as a string.
func (e *KeyEntry) Get(cfg *Config) string { return e.get(cfg) }

// Set validates and sets the value, returning a descriptive error on type mismatch.
func (e *KeyEntry) Set(cfg *Config, value string) error { return e.set(cfg, value) }

// Unset resets the key to its schema default.
func (e *KeyEntry) Unset(cfg *Config) { e.unset(cfg) }

func stringKey(desc, def string, field func(*Config) *string) *KeyEntry {
	return &KeyEntry{
		Type:       KeyTypeString,
		Desc:       desc,
		DefaultStr: def,
		get:        func(cfg *Config) string { return *field(cfg) },
		set:        func(cfg *Config, v string) error { *field(cfg) = v; return nil },
		unset:      func(cfg *Config) { *field(cfg) = def },
	}
}

func intKey(desc string, def int, field func(*Config) *int) *KeyEntry {
	return &KeyEntry{
		Type:       KeyTypeInt,
		Desc:       desc,
		DefaultStr: strconv.Itoa(def),
		get:        func(cfg *Config) string { return strconv.Itoa(*field(cfg)) },
		set: func(cfg *Config, v string) error {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil || n < 0 {
				return fmt.Errorf("expected a non-negative integer, got %q", v)
			}
			*field(cfg) = n
			return nil
		},
		unset: func(cfg *Config) { *field(cfg) = def },
	}
}

// SchemaKeys is the authoritative registry of all settable config keys.
// Keys use dot-notation matching the TOML section structure.
var SchemaKeys = map[string]*KeyEntry{
	"user.id":         stringKey("Your user ID", "", func(c *Config) *string { return &c.User.ID }),
	"user.first_name": stringKey("First name shown on the calendar", "", func(c *Config) *string { return &c.User.FirstName }),
	"user.last_name":  stringKey("Last name", "", func(c *Config) *string { return &c.User.LastName }),
	"user.email":      stringKey("Email address", "", func(c *Config) *string { return &c.User.Email }),
	"group.default":   stringKey("Group shown when --group is not given", "", func(c *Config) *string { return &c.Group.Default }),
	"source.kind": {
		Type:       KeyTypeString,
		Desc:       "Where readings live (sqlite, firestore)",
		DefaultStr: SourceSQLite,
		get:        func(cfg *Config) string { return cfg.Source.Kind },
		set: func(cfg *Config, v string) error {
			switch v {
			case SourceSQLite, SourceFirestore:
				cfg.Source.Kind = v
				return nil
			}
			return fmt.Errorf("unknown source %q (use sqlite or firestore)", v)
		},
		unset: func(cfg *Config) { cfg.Source.Kind = SourceSQLite },
	},
	"source.credentials_file": stringKey("Firebase service account JSON", "", func(c *Config) *string { return &c.Source.CredentialsFile }),
	"source.project_id":       stringKey("Firebase project ID", "", func(c *Config) *string { return &c.Source.ProjectID }),
	"streak.lookback_days":    intKey("Days fetched before the visible calendar", DefaultLookbackDays, func(c *Config) *int { return &c.Streak.LookbackDays }),
	"log.level": {
		Type:       KeyTypeString,
		Desc:       "Log file level (debug, info, warn, error)",
		DefaultStr: "info",
		get:        func(cfg *Config) string { return cfg.Log.Level },
		set: func(cfg *Config, v string) error {
			switch v {
			case "debug", "info", "warn", "error":
				cfg.Log.Level = v
				return nil
			}
			return fmt.Errorf("unknown log level %q", v)
		},
		unset: func(cfg *Config) { cfg.Log.Level = "info" },
	},
}

// ValidKeyNames returns the sorted list of all known config key names.
func ValidKeyNames() []string {
	names := make([]string, 0, len(SchemaKeys))
	for k := range SchemaKeys {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// LookupKey returns the KeyEntry for a known config key.
func LookupKey(key string) (*KeyEntry, bool) {
	entry, ok := SchemaKeys[key]
	return entry, ok
}
