package shared

import (
	"context"
	"crypto/sha1" // nolint:gosec
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog/log"

	"atrium/shared/cache"
	"atrium/shared/dto"
)

const cacheKeySeparator = ":"

// BuildCacheKey joins a prefix and its parts into a redis key.
func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), cacheKeySeparator)
}

// BuildCacheKeyWithQuery derives a stable key from the query params and
// filters so each distinct listing gets its own cache entry.
func BuildCacheKeyWithQuery(prefix string, req dto.QueryParams, filter dto.FilterGroup) string {
	raw, err := json.Marshal(struct {
		Query  dto.QueryParams `json:"query"`
		Filter dto.FilterGroup `json:"filter"`
	}{Query: req, Filter: filter})
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal cache key query")

		return prefix
	}

	sum := sha1.Sum(raw) // nolint:gosec

	return BuildCacheKey(prefix, hex.EncodeToString(sum[:]))
}

// InvalidateCaches clears every cache entry under the given prefix.
func InvalidateCaches(ctx context.Context, c cache.RedisCache, prefix string) {
	if err := c.Clear(ctx, prefix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to clear cache")
	}
}
