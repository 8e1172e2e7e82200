// Package security provides bearer token authentication and request
// validation for the HTTP API
package security

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/smartmeal/planner/internal/infrastructure/config"
	"github.com/smartmeal/planner/internal/ports/outbound"
	apperrors "github.com/smartmeal/planner/pkg/errors"
	"go.uber.org/zap"
)

// Context keys set by AuthMiddleware
const (
	ContextUserID  = "user_id"
	ContextTokenID = "token_id"
	ContextClaims  = "token_claims"
	audience       = "smartmeal-api"
	revokedPrefix  = "revoked_token:"
)

// ErrInvalidToken is returned for malformed, expired or revoked tokens
var ErrInvalidToken = errors.New("invalid token")

// Claims represents JWT claims structure
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// IssuedToken is a signed token and its expiry
type IssuedToken struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AuthService issues and verifies HS256 bearer tokens. Revocation is
// recorded in the cache when one is configured.
type AuthService struct {
	cfg     config.AuthConfig
	secret  []byte
	revoked outbound.CacheRepository
	logger  *zap.Logger
	now     func() time.Time
}

// NewAuthService creates a new authentication service. revoked may be nil.
func NewAuthService(cfg config.AuthConfig, revoked outbound.CacheRepository, logger *zap.Logger) *AuthService {
	if cfg.JWTExpiration <= 0 {
		cfg.JWTExpiration = 24 * time.Hour
	}
	secret := cfg.JWTSecret
	if secret == "" {
		secret = uuid.NewString()
		logger.Warn("No JWT secret configured, using an ephemeral one")
	}
	return &AuthService{
		cfg:     cfg,
		secret:  []byte(secret),
		revoked: revoked,
		logger:  logger.Named("auth"),
		now:     time.Now,
	}
}

// GenerateToken signs an access token for userID
func (a *AuthService) GenerateToken(userID string) (*IssuedToken, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidToken)
	}

	now := a.now()
	expires := now.Add(a.cfg.JWTExpiration)
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    a.cfg.Issuer,
			Subject:   userID,
			Audience:  []string{audience},
			ExpiresAt: jwt.NewNumericDate(expires),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &IssuedToken{Token: signed, TokenType: "Bearer", ExpiresAt: expires.UTC()}, nil
}

// ValidateToken parses and verifies a token
func (a *AuthService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(audience),
		jwt.WithTimeFunc(a.now),
	}
	if a.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.cfg.Issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, fmt.Errorf("%w: invalid claims", ErrInvalidToken)
	}

	if a.revoked != nil && claims.ID != "" {
		revoked, err := a.revoked.Exists(ctx, revokedPrefix+claims.ID)
		if err != nil {
			a.logger.Warn("Failed to check token revocation", zap.Error(err))
		} else if revoked {
			return nil, fmt.Errorf("%w: token has been revoked", ErrInvalidToken)
		}
	}

	return claims, nil
}

// RevokeToken marks the token id as revoked until the token would expire
func (a *AuthService) RevokeToken(ctx context.Context, claims *Claims) error {
	if a.revoked == nil {
		return errors.New("token revocation requires a cache")
	}
	ttl := time.Minute
	if claims.ExpiresAt != nil {
		if remaining := claims.ExpiresAt.Sub(a.now()); remaining > 0 {
			ttl = remaining
		}
	}
	return a.revoked.Set(ctx, revokedPrefix+claims.ID, []byte(claims.UserID), ttl)
}

// AuthMiddleware rejects requests without a valid bearer token and puts the
// caller's user id in the gin context
func (a *AuthService) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abort(c, apperrors.NewUnauthorizedError("Authorization header required"))
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			abort(c, apperrors.NewUnauthorizedError("Invalid authorization header format"))
			return
		}

		claims, err := a.ValidateToken(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			a.logger.Info("Token validation failed",
				zap.String("error", err.Error()),
				zap.String("ip", c.ClientIP()),
				zap.String("user_agent", c.Request.UserAgent()),
			)
			abort(c, apperrors.NewUnauthorizedError("Invalid or expired token"))
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextTokenID, claims.ID)
		c.Set(ContextClaims, claims)
		c.Next()
	}
}

// UserID returns the authenticated caller, empty when unauthenticated
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

// ClaimsFrom returns the verified claims of the current request
func ClaimsFrom(c *gin.Context) (*Claims, bool) {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*Claims)
	return claims, ok
}

// CanRevoke reports whether tokens can be revoked
func (a *AuthService) CanRevoke() bool {
	return a.revoked != nil
}

func abort(c *gin.Context, err *apperrors.AppError) {
	c.AbortWithStatusJSON(err.StatusCode(), apperrors.ToErrorResponse(err, c.GetString("request_id")))
}
