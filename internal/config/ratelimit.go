package config

import (
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// Budget is one token bucket: Capacity tokens, refilled by RefillTokens
// every RefillInterval.
type Budget struct {
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
}

func (b Budget) clamp() Budget {
	if b.Capacity < 1 {
		b.Capacity = 1
	}
	if b.RefillTokens < 1 {
		b.RefillTokens = 1
	}
	if b.RefillInterval <= 0 {
		b.RefillInterval = time.Second
	}
	return b
}

// RateLimitConfig configures the Redis token buckets.  Page reads and
// form submissions draw from separate budgets; submissions write to the
// database and get the smaller one.  KeyStrategy is one of "ip",
// "route" or "ip_route".
type RateLimitConfig struct {
	Enabled     bool
	Read        Budget
	Write       Budget
	TTL         time.Duration
	KeyStrategy string
	Prefix      string
	Debug       bool
}

// BudgetFor returns the bucket name and budget that apply to an HTTP
// method.  GET, HEAD and OPTIONS are reads; everything else is a write.
func (c RateLimitConfig) BudgetFor(method string) (string, Budget) {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return "read", c.Read
	}
	return "write", c.Write
}

// LoadRateLimitConfig reads the RATE_LIMIT_* variables.  The read budget
// defaults to 60 requests refilled one per second; the write budget to
// 10 submissions refilled one every 6 seconds.  RATE_LIMIT_BURST and
// RATE_LIMIT_REFILL_EVERY are shorthands for the read budget.
func LoadRateLimitConfig() RateLimitConfig {
	read := Budget{
		Capacity:       envInt("RATE_LIMIT_CAPACITY", 60),
		RefillTokens:   envInt("RATE_LIMIT_REFILL_TOKENS", 1),
		RefillInterval: envDur("RATE_LIMIT_REFILL_INTERVAL", time.Second),
	}
	if b := envInt("RATE_LIMIT_BURST", -1); b > 0 {
		read.Capacity = b
	}
	if every := envDur("RATE_LIMIT_REFILL_EVERY", 0); every > 0 {
		read.RefillTokens = 1
		read.RefillInterval = every
	}
	write := Budget{
		Capacity:       envInt("RATE_LIMIT_WRITE_CAPACITY", 10),
		RefillTokens:   1,
		RefillInterval: envDur("RATE_LIMIT_WRITE_REFILL_EVERY", 6*time.Second),
	}

	cfg := RateLimitConfig{
		Enabled:     envBool("RATE_LIMIT_ENABLED", true),
		Read:        read.clamp(),
		Write:       write.clamp(),
		TTL:         envDur("RATE_LIMIT_TTL", 10*time.Minute),
		KeyStrategy: strings.ToLower(envStr("RATE_LIMIT_KEY_STRATEGY", "ip_route")),
		Prefix:      envStr("RATE_LIMIT_PREFIX", "rl"),
		Debug:       envBool("RATE_LIMIT_DEBUG", false),
	}
	// A bucket must outlive a few refills or an idle client would get a
	// fresh full bucket every time.
	minTTL := 5 * max(cfg.Read.RefillInterval, cfg.Write.RefillInterval)
	if cfg.TTL < minTTL {
		cfg.TTL = minTTL
	}
	return cfg
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
