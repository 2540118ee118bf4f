package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Config is the persistent application configuration
type Config struct {
	// Server endpoints
	Server ServerConfig `json:"server"`

	// Search behavior
	Search SearchConfig `json:"search"`

	// UI Preferences
	UI UIConfig `json:"ui"`
}

// ServerConfig points spyglass at the inventory backend.
//
// Both URLs must be set for search to work. When either is missing the
// application still starts, but the search box is inert - mirroring how the
// web widget stays dormant on pages without its configuration attributes.
type ServerConfig struct {
	SearchURL  string `json:"search_url"`  // JSON search API, e.g. https://inv.example.com/api/search
	ResultsURL string `json:"results_url"` // full results page, e.g. https://inv.example.com/search
}

// SearchConfig holds tunables for the typeahead
type SearchConfig struct {
	MinQueryLen           int `json:"min_query_len"`           // queries shorter than this are never sent
	DebounceMs            int `json:"debounce_ms"`             // keystroke coalescing window
	GroupLimit            int `json:"group_limit"`             // max rows shown per result group
	CacheTTLSeconds       int `json:"cache_ttl_seconds"`       // client-side query cache lifetime
	RequestTimeoutSeconds int `json:"request_timeout_seconds"` // per-request HTTP timeout
}

// UIConfig holds UI preferences
type UIConfig struct {
	ShowRecent  bool `json:"show_recent"`  // show recent searches under an empty input
	RecentLimit int  `json:"recent_limit"` // how many recent searches to list
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			MinQueryLen:           2,
			DebounceMs:            180,
			GroupLimit:            6,
			CacheTTLSeconds:       30,
			RequestTimeoutSeconds: 10,
		},
		UI: UIConfig{
			ShowRecent:  true,
			RecentLimit: 8,
		},
	}
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".spyglass", "config.json")
}

// Load reads config from disk, or returns defaults
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads config from a specific path, or returns defaults
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			cfg.AutoPopulateFromEnv()
			return cfg, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return DefaultConfig(), nil
	}
	cfg.applyFloors()
	cfg.AutoPopulateFromEnv()

	return cfg, nil
}

// Save writes config to disk
func (c *Config) Save() error {
	path := ConfigPath()

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// AutoPopulateFromEnv fills in endpoints from environment variables.
// Values already present in the config win over the environment.
func (c *Config) AutoPopulateFromEnv() {
	if c.Server.SearchURL == "" {
		c.Server.SearchURL = os.Getenv("SPYGLASS_SEARCH_URL")
	}
	if c.Server.ResultsURL == "" {
		c.Server.ResultsURL = os.Getenv("SPYGLASS_RESULTS_URL")
	}
}

// Enabled reports whether search is fully configured.
func (c *Config) Enabled() bool {
	return c.Server.SearchURL != "" && c.Server.ResultsURL != ""
}

// Debounce returns the keystroke coalescing window as a duration.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Search.DebounceMs) * time.Millisecond
}

// CacheTTL returns the query cache lifetime as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Search.CacheTTLSeconds) * time.Second
}

// RequestTimeout returns the per-request HTTP timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Search.RequestTimeoutSeconds) * time.Second
}

// applyFloors clamps nonsense values from hand-edited config files back to
// the defaults so the UI never ends up with a zero debounce or group limit.
func (c *Config) applyFloors() {
	def := DefaultConfig()
	if c.Search.MinQueryLen < 1 {
		c.Search.MinQueryLen = def.Search.MinQueryLen
	}
	if c.Search.DebounceMs < 1 {
		c.Search.DebounceMs = def.Search.DebounceMs
	}
	if c.Search.GroupLimit < 1 {
		c.Search.GroupLimit = def.Search.GroupLimit
	}
	if c.Search.CacheTTLSeconds < 0 {
		c.Search.CacheTTLSeconds = def.Search.CacheTTLSeconds
	}
	if c.Search.RequestTimeoutSeconds < 1 {
		c.Search.RequestTimeoutSeconds = def.Search.RequestTimeoutSeconds
	}
	if c.UI.RecentLimit < 1 {
		c.UI.RecentLimit = def.UI.RecentLimit
	}
}
