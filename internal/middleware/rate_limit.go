package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/apperr"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/config"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/utils"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Store counts hits per key. Keys embed the window index, so a key is only
// ever used within one window.
type Store interface {
	Increment(ctx context.Context, key string, ttl time.Duration) (int64, error)
	Decrement(ctx context.Context, key string) error
}

// Profile is one named limit.
type Profile struct {
	Name    string
	Window  time.Duration
	Max     int64
	Code    string
	Message string
	// SkipSuccessful stops responses below 400 from counting.
	SkipSuccessful bool
}

func GeneralProfile(cfg config.RateLimitConfig) Profile {
	return Profile{
		Name:    "general",
		Window:  cfg.Window(),
		Max:     int64(cfg.MaxRequests),
		Code:    apperr.CodeRateLimited,
		Message: "Too many requests from this IP, please try again later.",
	}
}

var (
	AuthProfile = Profile{
		Name:           "auth",
		Window:         15 * time.Minute,
		Max:            5,
		Code:           apperr.CodeAuthRateLimited,
		Message:        "Too many authentication attempts, please try again later.",
		SkipSuccessful: true,
	}
	UploadProfile = Profile{
		Name:    "upload",
		Window:  time.Hour,
		Max:     20,
		Code:    apperr.CodeUploadRateLimited,
		Message: "Too many uploads, please try again later.",
	}
	PublicProfile = Profile{
		Name:    "public",
		Window:  15 * time.Minute,
		Max:     200,
		Code:    apperr.CodeRateLimited,
		Message: "Too many requests, please try again later.",
	}
)

// RateLimit enforces a fixed window per client IP. Store failures let the
// request through.
func RateLimit(store Store, p Profile) gin.HandlerFunc {
	return rateLimit(store, p, time.Now)
}

func rateLimit(store Store, p Profile, now func() time.Time) gin.HandlerFunc {
	windowMS := p.Window.Milliseconds()
	if windowMS <= 0 {
		windowMS = 1
	}

	return func(c *gin.Context) {
		t := now()
		index := t.UnixMilli() / windowMS
		resetAt := time.UnixMilli((index + 1) * windowMS)
		key := fmt.Sprintf("rl:%s:%s:%d", p.Name, c.ClientIP(), index)

		count, err := store.Increment(c.Request.Context(), key, time.Duration(windowMS)*time.Millisecond)
		if err != nil {
			logrus.WithField("profile", p.Name).WithError(err).Warn("rate limit store unavailable")
			c.Next()
			return
		}

		remaining := p.Max - count
		if remaining < 0 {
			remaining = 0
		}
		resetSeconds := int64(resetAt.Sub(t).Seconds() + 0.999)

		h := c.Writer.Header()
		h.Set("RateLimit-Limit", strconv.FormatInt(p.Max, 10))
		h.Set("RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		h.Set("RateLimit-Reset", strconv.FormatInt(resetSeconds, 10))

		if count > p.Max {
			h.Set("Retry-After", strconv.FormatInt(resetSeconds, 10))
			utils.HandleError(c, apperr.New(http.StatusTooManyRequests, p.Code, p.Message))
			return
		}

		c.Next()

		if p.SkipSuccessful && c.Writer.Status() < http.StatusBadRequest {
			if err := store.Decrement(context.Background(), key); err != nil {
				logrus.WithField("profile", p.Name).WithError(err).Warn("rate limit decrement failed")
			}
		}
	}
}

// MemoryStore keeps counters in process. Expired keys are swept periodically.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	stop    chan struct{}
	once    sync.Once
}

type memoryEntry struct {
	count     int64
	expiresAt time.Time
}

func NewMemoryStore(sweepEvery time.Duration) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]*memoryEntry),
		stop:    make(chan struct{}),
	}
	if sweepEvery > 0 {
		go s.cleanupRoutine(sweepEvery)
	}
	return s
}

func (s *MemoryStore) Increment(_ context.Context, key string, ttl time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	e, ok := s.entries[key]
	if !ok || now.After(e.expiresAt) {
		e = &memoryEntry{expiresAt: now.Add(ttl)}
		s.entries[key] = e
	}
	e.count++
	return e.count, nil
}

func (s *MemoryStore) Decrement(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok && e.count > 0 {
		e.count--
	}
	return nil
}

func (s *MemoryStore) cleanupRoutine(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for key, e := range s.entries {
				if now.After(e.expiresAt) {
					delete(s.entries, key)
				}
			}
			s.mu.Unlock()
		}
	}
}

func (s *MemoryStore) Close() {
	s.once.Do(func() { close(s.stop) })
}

// RedisStore shares counters between instances.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &RedisStore{client: redis.NewClient(opts)}, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Increment(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.PExpire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

func (s *RedisStore) Decrement(ctx context.Context, key string) error {
	return s.client.Decr(ctx, key).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
