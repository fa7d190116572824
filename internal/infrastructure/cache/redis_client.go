// Package cache implements the Cache Layer (CL): a Redis-backed cache-aside
// layer with a circuit breaker and background health check, adapted from
// the teacher's internal/infrastructure/cache/redis_client.go.
package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/larderai/pantry/pkg/metrics"
)

// ErrKeyNotFound is returned by Get on a cache miss.
var ErrKeyNotFound = errors.New("key not found in cache")

// Config carries the Redis connection settings config.Config maps in.
type Config struct {
	Host     string
	Port     int
	Password string
	Database int
	PoolSize int
}

// RedisClient wraps redis.UniversalClient with a circuit breaker and
// background health check, matching the teacher's RedisClient shape.
type RedisClient struct {
	client         redis.UniversalClient
	logger         *zap.Logger
	circuitBreaker *circuitBreaker
	healthCheck    *healthCheck
	mu             sync.RWMutex
}

type healthCheck struct {
	ticker   *time.Ticker
	stopChan chan struct{}
	interval time.Duration
	timeout  time.Duration
}

// NewRedisClient pings once at construction; if the ping fails, the client
// still starts but Available will report false. This matches spec.md §4.6
// — "on startup the service pings the cache; if unreachable it stays in
// 'unavailable' mode" — rather than the teacher's hard failure on
// construction, because CL must never be a required collaborator.
func NewRedisClient(cfg Config, logger *zap.Logger) *RedisClient {
	opts := &redis.UniversalOptions{
		Addrs:        []string{fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)},
		Password:     cfg.Password,
		DB:           cfg.Database,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	}

	rc := &RedisClient{
		client: redis.NewUniversalClient(opts),
		logger: logger,
		circuitBreaker: &circuitBreaker{
			maxFailures: 5,
			timeout:     30 * time.Second,
			state:       circuitClosed,
		},
		healthCheck: &healthCheck{
			stopChan: make(chan struct{}),
			interval: 30 * time.Second,
			timeout:  2 * time.Second,
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx); err != nil {
		logger.Warn("cache layer unreachable at startup, starting in degraded mode", zap.Error(err))
		rc.circuitBreaker.mu.Lock()
		rc.circuitBreaker.failures = rc.circuitBreaker.maxFailures
		rc.circuitBreaker.state = circuitOpen
		rc.circuitBreaker.mu.Unlock()
	}

	rc.startHealthCheck()
	return rc
}

func (r *RedisClient) Ping(ctx context.Context) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	err := r.client.Ping(ctx).Err()
	if err != nil {
		r.circuitBreaker.recordFailure()
		metrics.SetAvailable(metrics.CacheLayerAvailable, false)
		return err
	}
	r.circuitBreaker.recordSuccess()
	metrics.SetAvailable(metrics.CacheLayerAvailable, true)
	return nil
}

func (r *RedisClient) Get(ctx context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.circuitBreaker.allowRequest() {
		return nil, ErrKeyNotFound
	}

	result, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		r.circuitBreaker.recordSuccess()
		return nil, ErrKeyNotFound
	}
	if err != nil {
		r.circuitBreaker.recordFailure()
		return nil, err
	}
	r.circuitBreaker.recordSuccess()
	return result, nil
}

func (r *RedisClient) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.circuitBreaker.allowRequest() {
		return fmt.Errorf("cache circuit breaker is open")
	}

	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		r.circuitBreaker.recordFailure()
		return err
	}
	r.circuitBreaker.recordSuccess()
	return nil
}

func (r *RedisClient) Close() error {
	close(r.healthCheck.stopChan)
	if r.healthCheck.ticker != nil {
		r.healthCheck.ticker.Stop()
	}
	return r.client.Close()
}

func (r *RedisClient) Available() bool {
	return r.circuitBreaker.allowRequest()
}

func (r *RedisClient) startHealthCheck() {
	r.healthCheck.ticker = time.NewTicker(r.healthCheck.interval)
	go func() {
		for {
			select {
			case <-r.healthCheck.ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), r.healthCheck.timeout)
				_ = r.Ping(ctx)
				cancel()
			case <-r.healthCheck.stopChan:
				return
			}
		}
	}()
}

type circuitState int

const (
	circuitClosed circuitState = iota
	circuitOpen
	circuitHalfOpen
)

type circuitBreaker struct {
	maxFailures     int
	timeout         time.Duration
	failures        int
	lastFailureTime time.Time
	state           circuitState
	mu              sync.Mutex
}

func (cb *circuitBreaker) allowRequest() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case circuitClosed:
		return true
	case circuitOpen:
		if time.Since(cb.lastFailureTime) > cb.timeout {
			cb.state = circuitHalfOpen
			return true
		}
		return false
	case circuitHalfOpen:
		return true
	default:
		return false
	}
}

func (cb *circuitBreaker) recordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.failures = 0
	cb.state = circuitClosed
}

func (cb *circuitBreaker) recordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.failures++
	cb.lastFailureTime = time.Now()
	if cb.failures >= cb.maxFailures {
		cb.state = circuitOpen
	}
}
