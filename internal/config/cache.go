package config

import "time"

// CacheConfig configures the response cache used on static browse
// endpoints (room layout, upcoming showtimes).  Seat availability is
// deliberately never cached: it must be resolved fresh on every read.
type CacheConfig struct {
    Enabled bool
    TTL     time.Duration
    Prefix  string
}

// LoadCacheConfig reads the cache settings from the environment.
func LoadCacheConfig() CacheConfig {
    return CacheConfig{
        Enabled: envBool("CACHE_ENABLED", true),
        TTL:     envDur("CACHE_TTL", 30*time.Second),
        Prefix:  envStr("CACHE_PREFIX", "cache"),
    }
}
