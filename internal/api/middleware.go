package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/san98215/fitness-app/internal/domain"
	"github.com/san98215/fitness-app/internal/observability"
	"github.com/san98215/fitness-app/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Constants for context keys
const (
	ContextUserIDKey = "userID"
	ContextUserKey   = "user"
	contextTokenKey  = "sessionToken"
)

// sessionToken reads the session from the cookie, falling back to a Bearer
// Authorization header.
func sessionToken(c *gin.Context, cookieName string) string {
	if token, err := c.Cookie(cookieName); err == nil && token != "" {
		return token
	}
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// AuthMiddleware resolves the session token to a user and stores it in the
// context for downstream handlers.
func AuthMiddleware(authService service.AuthService, cookieName string, resp responder) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c, cookieName)
		if token == "" {
			abortWithError(c, http.StatusUnauthorized, "Authentication required")
			return
		}

		user, err := authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			resp.fail(c, err, "Authentication failed")
			return
		}

		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextUserKey, user)
		c.Set(contextTokenKey, token)
		c.Next()
	}
}

// Helper function to get User ID from context (used by handlers)
func getUserIDFromContext(c *gin.Context) (string, error) {
	idRaw, exists := c.Get(ContextUserIDKey)
	if !exists {
		return "", errors.New("user ID not found in context")
	}
	idStr, ok := idRaw.(string)
	if !ok {
		return "", errors.New("invalid user ID type in context")
	}
	return idStr, nil
}

func getUserFromContext(c *gin.Context) (*domain.User, bool) {
	raw, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := raw.(*domain.User)
	return user, ok
}

// requireUserID writes a 401 and returns false when no user is in context.
func requireUserID(c *gin.Context) (string, bool) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Authentication required")
		return "", false
	}
	return userID, true
}

// RequestLogger logs one entry per request. Server errors log at error
// level, client errors at warn.
func RequestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()

		status := c.Writer.Status()
		entry := log.WithFields(logrus.Fields{
			"status":    status,
			"method":    c.Request.Method,
			"path":      path,
			"latency":   time.Since(start).String(),
			"client_ip": c.ClientIP(),
		})
		if userID, err := getUserIDFromContext(c); err == nil {
			entry = entry.WithField("user_id", userID)
		}

		switch {
		case status >= http.StatusInternalServerError:
			entry.Error("request failed")
		case status >= http.StatusBadRequest:
			entry.Warn("request rejected")
		default:
			entry.Info("request handled")
		}
	}
}

// Metrics records request counts and latency by route template.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		observability.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, status).Inc()
		observability.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// RateLimit allows maxRequests per client IP within each window.
func RateLimit(redisClient *redis.Client, maxRequests int, window time.Duration, log logrus.FieldLogger) gin.HandlerFunc {
	if redisClient == nil {
		panic("redis client cannot be nil for RateLimit middleware")
	}
	if maxRequests <= 0 || window <= 0 {
		panic("RateLimit needs a positive request count and window")
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := "ratelimit:" + c.ClientIP()

		count, err := redisClient.Incr(ctx, key).Result()
		if err != nil {
			log.WithError(err).Error("rate limit increment failed")
			abortWithError(c, http.StatusInternalServerError, "Rate limiting error")
			return
		}
		// the window starts with the first request; later hits must not extend it
		if count == 1 {
			if err := redisClient.Expire(ctx, key, window).Err(); err != nil {
				_ = redisClient.Del(ctx, key).Err()
				log.WithError(err).Error("rate limit expire failed")
				abortWithError(c, http.StatusInternalServerError, "Rate limiting error")
				return
			}
		}

		if count > int64(maxRequests) {
			observability.RateLimitedRequests.Inc()
			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
			abortWithError(c, http.StatusTooManyRequests, "Too many requests")
			return
		}
		c.Next()
	}
}
