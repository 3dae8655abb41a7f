package httpkit

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/time/rate"

	"leadflow_backend/platform/logger"
)

// RequestLogger logs each request with latency and status.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.HTTPRequest(c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start), c.ClientIP())
	}
}

// SecurityHeaders sets common security headers on every response.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "no-referrer")
		c.Next()
	}
}

// IPRateLimiter limits requests per client IP using a token bucket.
type IPRateLimiter struct {
	limiters sync.Map
	rate     rate.Limit
	burst    int
}

// NewIPRateLimiter allows r requests per second with the given burst.
func NewIPRateLimiter(r rate.Limit, burst int) *IPRateLimiter {
	return &IPRateLimiter{rate: r, burst: burst}
}

func (l *IPRateLimiter) limiter(ip string) *rate.Limiter {
	v, ok := l.limiters.Load(ip)
	if !ok {
		v, _ = l.limiters.LoadOrStore(ip, rate.NewLimiter(l.rate, l.burst))
	}
	return v.(*rate.Limiter)
}

// Middleware rejects requests over the limit with 429.
func (l *IPRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.limiter(c.ClientIP()).Allow() {
			Error(c, http.StatusTooManyRequests, "too many requests", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// NewAuthRateLimiter returns a limiter tuned for credential endpoints:
// 5 attempts per minute per IP.
func NewAuthRateLimiter() *IPRateLimiter {
	return NewIPRateLimiter(rate.Every(12*time.Second), 5)
}

// AuthRequired validates the bearer token and attaches the identity.
func AuthRequired(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			Error(c, http.StatusUnauthorized, "missing bearer token", nil)
			c.Abort()
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			Error(c, http.StatusUnauthorized, "invalid or expired token", nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			Error(c, http.StatusUnauthorized, "invalid token claims", nil)
			c.Abort()
			return
		}
		if typ, _ := claims["type"].(string); typ != "access" {
			Error(c, http.StatusUnauthorized, "invalid token type", nil)
			c.Abort()
			return
		}
		sub, _ := claims["sub"].(string)
		if sub == "" {
			Error(c, http.StatusUnauthorized, "invalid token subject", nil)
			c.Abort()
			return
		}

		var roles []string
		if rawRoles, ok := claims["roles"].([]interface{}); ok {
			for _, r := range rawRoles {
				if s, ok := r.(string); ok {
					roles = append(roles, s)
				}
			}
		}

		setIdentity(c, Identity{UserID: sub, Roles: roles})
		c.Next()
	}
}

// RequireRole blocks requests whose identity lacks the given role.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := GetIdentity(c)
		if err != nil {
			Error(c, http.StatusUnauthorized, "authentication required", nil)
			c.Abort()
			return
		}
		if !id.HasRole(role) {
			Error(c, http.StatusForbidden, "insufficient permissions", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
