package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"kaspalytics/internal/domain"
	"kaspalytics/internal/repository"
)

type updateTierRequest struct {
	Tier string `json:"tier" binding:"required"`
}

// ListUsers godoc
// @Summary      List accounts
// @Description  Returns every account with its subscription tier (admin only)
// @Tags         admin
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/admin/users [get]
func (h *Handler) ListUsers(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.list-users")
	defer span.End()

	users, err := h.authService.ListUsers(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// UpdateUserTier godoc
// @Summary      Change a user's subscription tier
// @Description  Moves an account to a different tier (admin only)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        username  path  string             true  "Account username"
// @Param        body      body  updateTierRequest  true  "New tier"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/admin/users/{username}/tier [put]
func (h *Handler) UpdateUserTier(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.update-user-tier")
	defer span.End()

	username := c.Param("username")
	span.SetAttributes(attribute.String("target_user", username))

	var req updateTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tier is required"})
		return
	}

	tier, err := domain.ParseTier(req.Tier)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "valid_tiers": domain.AccountTiers})
		return
	}
	if tier == domain.TierPublic {
		c.JSON(http.StatusBadRequest, gin.H{"error": "public is the anonymous tier and cannot be assigned", "valid_tiers": domain.AccountTiers})
		return
	}

	if err := h.authService.UpdateTier(ctx, username, tier); errors.Is(err, repository.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"username": username, "tier": string(tier)})
}
