package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"kaspalytics/internal/domain"
	"kaspalytics/internal/entitlement"
)

const (
	ctxUsernameKey = "username"
	ctxTierKey     = "tier"
)

// Identity resolves the caller from an optional Bearer token. Requests
// without a token proceed as the anonymous public tier; only an invalid or
// expired token is rejected.
func (h *Handler) Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			c.Set(ctxUsernameKey, "")
			c.Set(ctxTierKey, domain.TierPublic)
			c.Next()
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header must be a bearer token"})
			return
		}

		claims, err := h.authService.VerifyToken(strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ctxUsernameKey, claims.Subject)
		c.Set(ctxTierKey, domain.Tier(claims.Tier))
		c.Next()
	}
}

// RequireFeature gates a route on the entitlement table. Denied callers get
// a 403 naming the tiers that do unlock the feature.
func (h *Handler) RequireFeature(feature domain.Feature) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := currentUsername(c)
		tier := currentTier(c)

		if !entitlement.AllowedForUser(feature, tier, username, h.adminUsername) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":        "feature not available on your plan",
				"feature":      feature,
				"current_tier": tier,
			})
			return
		}
		c.Next()
	}
}

// RateLimit enforces the per-tier request budget. Authenticated callers are
// bucketed by username, anonymous callers by client IP.
func (h *Handler) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		tier := currentTier(c)
		key := currentUsername(c)
		if key == "" {
			key = c.ClientIP()
		}

		if !h.limiter.Allow(tier, key, entitlement.RequestsPerMinute(tier)) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":        "rate limit exceeded",
				"current_tier": tier,
			})
			return
		}
		c.Next()
	}
}

func currentUsername(c *gin.Context) string {
	if v, ok := c.Get(ctxUsernameKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func currentTier(c *gin.Context) domain.Tier {
	if v, ok := c.Get(ctxTierKey); ok {
		if t, ok := v.(domain.Tier); ok {
			return t
		}
	}
	return domain.TierPublic
}
