// Package ratelimit limits request rates per client and endpoint with token buckets.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// idleBucketTTL is how long a bucket may go unused before cleanup drops it.
const idleBucketTTL = time.Hour

// defaultBucket names the bucket shared by every request that matches no
// endpoint configuration.
const defaultBucket = "*"

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

type bucket struct {
	limiter    *rate.Limiter
	limit      int
	lastAccess time.Time
}

// Limiter keeps one token bucket per client and matched endpoint
// configuration, plus one per client for everything unmatched.
type Limiter struct {
	mu          sync.Mutex
	buckets     map[string]*bucket
	config      *Config
	cleanupStop chan struct{}
	stopOnce    sync.Once
	now         func() time.Time
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// NewLimiter creates a rate limiter. A nil config enables a default of
// 1000 requests per minute per client.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
		}
	}

	l := &Limiter{
		buckets: make(map[string]*bucket),
		config:  config,
		now:     time.Now,
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.cleanupStop = make(chan struct{})
		go l.cleanup(config.CleanupInterval)
	}

	return l
}

// Allow reports whether a request from clientID to method+endpoint may
// proceed, consuming a token if so.
func (l *Limiter) Allow(clientID, endpoint, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{Allowed: false}
	}

	endpointConfig := MatchEndpoint(endpoint, method, l.config.EndpointConfigs)
	key := defaultBucket
	if endpointConfig != nil {
		key = endpointConfig.Method + " " + endpointConfig.Path
	} else {
		endpointConfig = &EndpointConfig{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
			Burst:  l.config.DefaultLimit,
		}
	}
	if endpointConfig.Limit <= 0 || endpointConfig.Window <= 0 {
		return true, Info{Allowed: true}
	}

	now := l.now()
	b := l.getBucket(bucketKey(clientID, key), endpointConfig, now)

	allowed := b.limiter.AllowN(now, 1)
	tokens := b.limiter.TokensAt(now)
	perSecond := float64(b.limiter.Limit())

	info := Info{
		Allowed:   allowed,
		Limit:     b.limit,
		Remaining: max(int(tokens), 0),
		ResetTime: now,
	}
	if missing := float64(b.limiter.Burst()) - tokens; missing > 0 {
		info.ResetTime = now.Add(time.Duration(missing / perSecond * float64(time.Second)))
	}
	if !allowed {
		info.RetryAfter = time.Duration((1 - tokens) / perSecond * float64(time.Second))
	}
	return allowed, info
}

// bucketKey keys a bucket by client and matched configuration, never by the
// raw path, so IDs in the path share one bucket.
func bucketKey(clientID, endpoint string) string {
	return clientID + "|" + endpoint
}

func (l *Limiter) getBucket(key string, cfg *EndpointConfig, now time.Time) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		burst := cfg.Burst
		if burst <= 0 {
			burst = cfg.Limit
		}
		b = &bucket{
			limiter: rate.NewLimiter(rate.Limit(float64(cfg.Limit)/cfg.Window.Seconds()), burst),
			limit:   cfg.Limit,
		}
		l.buckets[key] = b
	}
	b.lastAccess = now
	return b
}

func (l *Limiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.cleanupBuckets()
		case <-l.cleanupStop:
			return
		}
	}
}

// cleanupBuckets drops buckets idle for longer than idleBucketTTL.
func (l *Limiter) cleanupBuckets() {
	cutoff := l.now().Add(-idleBucketTTL)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.lastAccess.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Stop stops the cleanup goroutine. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		if l.cleanupStop != nil {
			close(l.cleanupStop)
		}
	})
}
