package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smartmeal/planner/internal/infrastructure/security"
	"github.com/smartmeal/planner/pkg/errors"
	"go.uber.org/zap"
)

// TokenRequest is the payload of POST /auth/token
type TokenRequest struct {
	UserID string `json:"user_id" validate:"required,max=128"`
}

// AuthHandler issues and revokes bearer tokens
type AuthHandler struct {
	auth      *security.AuthService
	validator Validator
	logger    *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *security.AuthService, validator Validator, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		auth:      auth,
		validator: validator,
		logger:    logger.Named("auth-handler"),
	}
}

// RegisterPublicRoutes registers the token endpoint. Only called when
// development tokens are enabled.
func (h *AuthHandler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.POST("/auth/token", h.IssueToken)
}

// RegisterRoutes registers routes that need an authenticated caller
func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/auth/logout", h.Logout)
}

// IssueToken handles POST /auth/token
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req TokenRequest
	if !bindJSON(c, h.validator, &req, false) {
		return
	}

	token, err := h.auth.GenerateToken(req.UserID)
	if err != nil {
		_ = c.Error(errors.NewBadRequestError("Cannot issue token").WithCause(err))
		return
	}

	h.logger.Info("Development token issued", zap.String("user_id", req.UserID))
	c.JSON(http.StatusOK, token)
}

// Logout handles POST /auth/logout by revoking the presented token
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := security.ClaimsFrom(c)
	if !ok {
		_ = c.Error(errors.NewUnauthorizedError(""))
		return
	}
	if !h.auth.CanRevoke() {
		_ = c.Error(errors.NewAppError(errors.CodeServiceUnavailable, "Token revocation is unavailable", ""))
		return
	}

	if err := h.auth.RevokeToken(c.Request.Context(), claims); err != nil {
		_ = c.Error(errors.Wrap(err, "failed to revoke token"))
		return
	}

	c.Status(http.StatusNoContent)
}
