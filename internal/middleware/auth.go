package middleware

import (
  "net/http"
  "strings"

  "github.com/gin-gonic/gin"

  "github.com/asthmaai/asthmaai-backend/internal/logger"
  "github.com/asthmaai/asthmaai-backend/internal/requestdata"
  "github.com/asthmaai/asthmaai-backend/internal/services"
)

const SessionCookieName = "asthmaai.sid"

type AuthMiddleware struct {
  log               *logger.Logger
  authService       services.AuthService
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService) *AuthMiddleware {
  middlewareLogger := log.With("Middleware", "AuthMiddleware")
  return &AuthMiddleware{log: middlewareLogger, authService: authService}
}

// RequireAuth rejects the request with 401 before any handler runs unless it
// carries a live session.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
  return func(c *gin.Context) {
    tokenString := ExtractToken(c)
    if tokenString == "" {
      unauthorized(c)
      return
    }
    ctx, err := am.authService.SetContextFromToken(c.Request.Context(), tokenString)
    if err != nil {
      am.log.Debug("Rejected session token", "error", err)
      unauthorized(c)
      return
    }
    if !requestdata.IsAuthenticated(ctx) {
      unauthorized(c)
      return
    }
    c.Request = c.Request.WithContext(ctx)
    c.Next()
  }
}

// OptionalAuth resolves the session when one is present and never aborts.
func (am *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
  return func(c *gin.Context) {
    if tokenString := ExtractToken(c); tokenString != "" {
      if ctx, err := am.authService.SetContextFromToken(c.Request.Context(), tokenString); err == nil {
        c.Request = c.Request.WithContext(ctx)
      }
    }
    c.Next()
  }
}

func unauthorized(c *gin.Context) {
  c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
}

// ExtractToken prefers the session cookie, then a bearer header.
func ExtractToken(c *gin.Context) string {
  if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
    return cookie
  }
  authHeader := c.GetHeader("Authorization")
  if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
    return strings.TrimSpace(authHeader[7:])
  }
  return ""
}
