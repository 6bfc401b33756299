package ratelimit

import (
	"fmt"
	"net"
	"net/http"
	"strings"

	"venuepay/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

// Middleware applies the default rate limit, selecting the payment budget
// for payment-flow routes
func Middleware(rateLimiter *RateLimiter) gin.HandlerFunc {
	return limiterHandler(rateLimiter, nil)
}

// PaymentMiddleware forces the payment budget regardless of route
func PaymentMiddleware(rateLimiter *RateLimiter) gin.HandlerFunc {
	paymentType := RateLimitTypePayment
	return limiterHandler(rateLimiter, &paymentType)
}

func limiterHandler(rateLimiter *RateLimiter, forcedType *RateLimitType) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := getClientIP(c)

		limitType := getRateLimitType(c.FullPath())
		if forcedType != nil {
			limitType = *forcedType
		}

		result, err := rateLimiter.IsAllowed(c.Request.Context(), clientIP, limitType)
		if err != nil {
			response.RespondJSON(c, "error", http.StatusInternalServerError,
				"Rate limit check failed", nil, nil)
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", result.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", result.Remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", result.ResetTime))

		if !result.Allowed {
			response.RespondJSON(c, "error", http.StatusTooManyRequests,
				"Rate limit exceeded", nil, map[string]interface{}{
					"limit":      result.Limit,
					"reset_time": result.ResetTime,
				})
			c.Abort()
			return
		}

		c.Next()
	}
}

func getRateLimitType(path string) RateLimitType {
	if strings.Contains(path, "/checkout/payment") {
		return RateLimitTypePayment
	}
	return RateLimitTypeDefault
}

// extracts real client IP
func getClientIP(c *gin.Context) string {
	// Check X-Forwarded-For header
	xForwardedFor := c.GetHeader("X-Forwarded-For")
	if xForwardedFor != "" {
		ips := strings.Split(xForwardedFor, ",")
		if len(ips) > 0 {
			ip := strings.TrimSpace(ips[0])
			if net.ParseIP(ip) != nil {
				return ip
			}
		}
	}

	// Check X-Real-IP header
	xRealIP := c.GetHeader("X-Real-IP")
	if xRealIP != "" {
		if net.ParseIP(xRealIP) != nil {
			return xRealIP
		}
	}

	// Fall back to RemoteAddr
	ip, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}

	return ip
}
