package middleware

import (
	"fmt"
	"log/slog"
	"loan-portal/internal/config"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimiterMiddleware enforces a fixed one-second window shared by
// every replica. Redis failures let the request through.
type RedisRateLimiterMiddleware struct {
	redisClient *redis.Client
	cfg         config.RateLimitConfig
	logger      *slog.Logger
	window      time.Duration
}

func NewRedisRateLimiterMiddleware(cfg config.RateLimitConfig, redisClient *redis.Client, logger *slog.Logger) *RedisRateLimiterMiddleware {
	logger = logger.With("component", "RedisRateLimiter")

	if !cfg.Enabled {
		logger.Info("Rate limiting is disabled via configuration.")
	} else if redisClient == nil {
		logger.Warn("Rate limiting enabled but no Redis client provided; disabling.")
		cfg.Enabled = false
	} else {
		logger.Info("Rate limiter middleware configured", "rps", cfg.RPS, "window", time.Second)
	}

	return &RedisRateLimiterMiddleware{
		redisClient: redisClient,
		cfg:         cfg,
		logger:      logger,
		window:      time.Second,
	}
}

func (rl *RedisRateLimiterMiddleware) IsEnabled() bool {
	return rl.cfg.Enabled && rl.redisClient != nil
}

func (rl *RedisRateLimiterMiddleware) Middleware(next http.Handler) http.Handler {
	if !rl.IsEnabled() {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := extractIP(r)
		if ip == unknownIP {
			rl.logger.ErrorContext(r.Context(), "Blocking request due to unknown client IP for rate limiting")
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		ctx := r.Context()
		key := fmt.Sprintf("loan-portal:ratelimit:%s", ip)

		pipe := rl.redisClient.Pipeline()
		incrCmd := pipe.Incr(ctx, key)
		ttlCmd := pipe.TTL(ctx, key)

		if _, err := pipe.Exec(ctx); err != nil {
			rl.logger.ErrorContext(ctx, "Redis pipeline failed during rate limiting check", "error", err, "ip", ip)
			next.ServeHTTP(w, r)
			return
		}

		currentCount, err := incrCmd.Result()
		if err != nil {
			rl.logger.ErrorContext(ctx, "Failed to get INCR result after pipeline exec", "error", err, "ip", ip)
			next.ServeHTTP(w, r)
			return
		}

		// -1: no expiry yet, -2: key vanished between commands.
		if ttl, err := ttlCmd.Result(); err == nil && (ttl == -1 || ttl == -2) {
			if err := rl.redisClient.Expire(ctx, key, rl.window).Err(); err != nil {
				rl.logger.ErrorContext(ctx, "Failed to set Redis EXPIRE for rate limit key", "error", err, "ip", ip)
			}
		}

		if float64(currentCount) > rl.cfg.RPS {
			rl.logger.WarnContext(ctx, "Rate limit exceeded", "ip", ip, "count", currentCount, "limit", rl.cfg.RPS)
			writeRateLimitExceeded(w, fmt.Sprintf("Rate limit exceeded. Limit is %v requests per %v.", rl.cfg.RPS, rl.window), rl.window)
			return
		}

		next.ServeHTTP(w, r)
	})
}
