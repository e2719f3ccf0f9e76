package handlers

import (
  "errors"
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/asthmaai/asthmaai-backend/internal/errordata"
  "github.com/asthmaai/asthmaai-backend/internal/middleware"
  "github.com/asthmaai/asthmaai-backend/internal/repos"
  "github.com/asthmaai/asthmaai-backend/internal/services"
)

type AuthHandler struct {
  authService     services.AuthService
  secureCookie    bool
}

func NewAuthHandler(authService services.AuthService, secureCookie bool) *AuthHandler {
  return &AuthHandler{authService: authService, secureCookie: secureCookie}
}

type credentialsRequest struct {
  Username    string    `json:"username" binding:"required"`
  Password    string    `json:"password" binding:"required"`
}

func (ah *AuthHandler) Register(c *gin.Context) {
  var req credentialsRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid registration data"})
    return
  }
  ctx := c.Request.Context()
  user, token, err := ah.authService.Register(ctx, req.Username, req.Password)
  if err != nil {
    switch {
    case errors.Is(err, repos.ErrUsernameTaken):
      c.JSON(http.StatusBadRequest, gin.H{"message": "Username already exists"})
    case errors.Is(err, services.ErrInvalidInput):
      c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid registration data"})
    default:
      errordata.Record(ctx, "Failed to register user", err)
      c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to register user"})
    }
    return
  }
  ah.setSessionCookie(c, token)
  c.JSON(http.StatusCreated, user)
}

func (ah *AuthHandler) Login(c *gin.Context) {
  var req credentialsRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid username or password"})
    return
  }
  ctx := c.Request.Context()
  user, token, err := ah.authService.Login(ctx, req.Username, req.Password)
  if err != nil {
    if services.IsUnauthenticated(err) {
      c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid username or password"})
      return
    }
    errordata.Record(ctx, "Failed to log in", err)
    c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to log in"})
    return
  }
  ah.setSessionCookie(c, token)
  c.JSON(http.StatusOK, user)
}

func (ah *AuthHandler) Logout(c *gin.Context) {
  ctx := c.Request.Context()
  if err := ah.authService.Logout(ctx); err != nil && !errors.Is(err, services.ErrUnauthenticated) {
    errordata.Record(ctx, "Failed to log out", err)
    c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to log out"})
    return
  }
  ah.clearSessionCookie(c)
  c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (ah *AuthHandler) CurrentUser(c *gin.Context) {
  ctx := c.Request.Context()
  user, err := ah.authService.CurrentUser(ctx)
  if err != nil {
    if services.IsUnauthenticated(err) {
      c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
      return
    }
    errordata.Record(ctx, "Failed to load user", err)
    c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load user"})
    return
  }
  c.JSON(http.StatusOK, user)
}

func (ah *AuthHandler) setSessionCookie(c *gin.Context, token string) {
  c.SetSameSite(http.SameSiteLaxMode)
  maxAge := int(ah.authService.GetSessionTTL().Seconds())
  c.SetCookie(middleware.SessionCookieName, token, maxAge, "/", "", ah.secureCookie, true)
}

func (ah *AuthHandler) clearSessionCookie(c *gin.Context) {
  c.SetSameSite(http.SameSiteLaxMode)
  c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", ah.secureCookie, true)
}
