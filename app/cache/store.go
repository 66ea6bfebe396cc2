package cache

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"time"
)

// Store is the advisory cache used by the article pipeline. It is never the
// source of truth: implementations swallow backend failures, reporting them
// as a miss on Get and a no-op on Set/Delete, so callers always have a
// correct (if slower) path.
type Store interface {
	Get(key string) (string, bool)
	Set(key string, value string, ttl time.Duration)
	Delete(key string)
}

// ArticleKey builds the cache key for an article query. geoKey is the
// canonical "country-region-city" rendering of the request geography.
func ArticleKey(topic, geoKey string, size int) string {
	return fmt.Sprintf("articles:%s:%s:%d", strings.ToLower(topic), geoKey, size)
}

// AudioKey builds the cache key for synthesized audio. The key hashes the
// normalized text so identical text with a different voice or speed is a
// distinct entry.
func AudioKey(text, voice string, speed float64) string {
	normalized := strings.Join(strings.Fields(strings.TrimSpace(text)), " ")
	hash := sha256.Sum256([]byte(normalized))
	return fmt.Sprintf("audio:%x:%s:%.2f", hash[:8], voice, speed)
}
