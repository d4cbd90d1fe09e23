package updater

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	cacheFilePrefix = "update-"
	// DefaultCacheMaxAge is the default maximum age for the version cache.
	DefaultCacheMaxAge = 24 * time.Hour
)

// VersionCache holds cached version check results.
type VersionCache struct {
	LatestVersion   string    `json:"latest_version"`
	CurrentVersion  string    `json:"current_version"`
	CheckedAt       time.Time `json:"checked_at"`
	UpdateAvailable bool      `json:"update_available"`
}

// cacheFileName maps a source key such as "@maizzle/framework" to a file
// name safe on every platform.
func cacheFileName(key string) string {
	r := strings.NewReplacer("@", "", "/", "-", "\\", "-", ":", "-")
	return cacheFilePrefix + r.Replace(key) + ".json"
}

// LoadCache reads the version cache for key from the config directory.
// Returns nil, nil if the cache file does not exist (first run).
func LoadCache(configDir, key string) (*VersionCache, error) {
	path := filepath.Join(configDir, cacheFileName(key))

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading version cache: %w", err)
	}

	var cache VersionCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, fmt.Errorf("parsing version cache: %w", err)
	}
	return &cache, nil
}

// SaveCache writes the version cache for key to the config directory.
func SaveCache(configDir, key string, cache *VersionCache) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling version cache: %w", err)
	}

	path := filepath.Join(configDir, cacheFileName(key))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing version cache: %w", err)
	}
	return nil
}

// IsCacheStale returns true if the cache is older than maxAge, nil, or was
// recorded for a different installed version.
func IsCacheStale(cache *VersionCache, current string, maxAge time.Duration) bool {
	if cache == nil {
		return true
	}
	if cache.CurrentVersion != current {
		return true
	}
	return time.Since(cache.CheckedAt) > maxAge
}
