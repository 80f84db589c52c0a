package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"kaspalytics/internal/auth"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password" binding:"required"`
}

// Login godoc
// @Summary      Log in
// @Description  Verifies credentials and returns a bearer token with the user profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  loginRequest  true  "Credentials"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.login")
	defer span.End()

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	token, user, err := h.authService.Login(ctx, req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// Register godoc
// @Summary      Create an account
// @Description  Registers a new account on the free tier
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  registerRequest  true  "New account"
// @Success      201  {object}  domain.User
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.register")
	defer span.End()

	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username, email, and password are required"})
		return
	}

	user, err := h.authService.Register(ctx, req.Username, req.Email, req.FirstName, req.LastName, req.Password)
	if errors.Is(err, auth.ErrUserExists) {
		c.JSON(http.StatusConflict, gin.H{"error": "username already exists"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Me godoc
// @Summary      Get the current identity
// @Description  Returns the caller's username and tier, or the anonymous public identity
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.me")
	defer span.End()

	username := currentUsername(c)
	if username == "" {
		c.JSON(http.StatusOK, gin.H{"username": "public", "tier": currentTier(c), "authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": username, "tier": currentTier(c), "authenticated": true})
}
