// Package cache implements a TTL based on-disk cache for provider responses.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/streamdex-cli/streamdex/filesystem"
	"github.com/streamdex-cli/streamdex/key"
	"github.com/streamdex-cli/streamdex/log"
	"github.com/streamdex-cli/streamdex/where"
)

type entry struct {
	StoredAt time.Time       `json:"stored_at"`
	Data     json.RawMessage `json:"data"`
}

func ttl() time.Duration {
	hours := viper.GetInt(key.SourcesResultCacheTTL)
	if hours <= 0 {
		hours = 24
	}
	return time.Duration(hours) * time.Hour
}

// GenerateKey builds a stable cache key from arbitrary request parts.
func GenerateKey(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(sum[:])
}

func pathOf(cacheKey string) string {
	return filepath.Join(where.Results(), cacheKey+".json")
}

// Read loads a cached response into target.
// Returns false when the entry is absent, expired or unreadable.
func Read(cacheKey string, target any) bool {
	raw, err := filesystem.API().ReadFile(pathOf(cacheKey))
	if err != nil {
		return false
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return false
	}

	if time.Since(e.StoredAt) > ttl() {
		return false
	}

	return json.Unmarshal(e.Data, target) == nil
}

// Write stores a response under the given key. Failures are logged and swallowed,
// a broken cache must never break a live request.
func Write(cacheKey string, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		log.Warnf("cache: marshal: %s", err)
		return
	}

	e := entry{StoredAt: time.Now(), Data: raw}
	out, err := json.Marshal(e)
	if err != nil {
		log.Warnf("cache: marshal entry: %s", err)
		return
	}

	if err := filesystem.API().WriteFile(pathOf(cacheKey), out, 0655); err != nil {
		log.Warnf("cache: write: %s", err)
	}
}

// CollectGarbage removes expired entries from the results directory.
func CollectGarbage() {
	dir := where.Results()
	entries, err := filesystem.API().ReadDir(dir)
	if err != nil {
		return
	}

	for _, info := range entries {
		if info.IsDir() {
			continue
		}

		path := filepath.Join(dir, info.Name())
		raw, err := filesystem.API().ReadFile(path)
		if err != nil {
			continue
		}

		var e entry
		if err := json.Unmarshal(raw, &e); err != nil || time.Since(e.StoredAt) > ttl() {
			_ = filesystem.API().Remove(path)
		}
	}
}
