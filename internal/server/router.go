package server

import (
  "time"

  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"

  "github.com/asthmaai/asthmaai-backend/internal/handlers"
  "github.com/asthmaai/asthmaai-backend/internal/logger"
  "github.com/asthmaai/asthmaai-backend/internal/middleware"
)

type RouterConfig struct {
  Log                   *logger.Logger
  CORSOrigins           []string
  AuthHandler           *handlers.AuthHandler
  AuthMiddleware        *middleware.AuthMiddleware
  ChatHandler           *handlers.ChatHandler
  SymptomHandler        *handlers.SymptomHandler
  EducationHandler      *handlers.EducationHandler
  WsHandler             gin.HandlerFunc
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.New()
  router.Use(gin.Recovery())
  router.Use(middleware.RequestLogger(cfg.Log))
  router.Use(middleware.AttachRequestContext())

  //-----------------------------------------
  // Cors Setup
  //-----------------------------------------
  router.Use(cors.New(buildCORSConfig(cfg.CORSOrigins)))

  //-----------------------------------------
  // Health Routes
  //-----------------------------------------
  router.GET("/healthz", handlers.Health)

  //-----------------------------------------
  // Public Routes
  //-----------------------------------------
  api := router.Group("/api")
  {
    api.POST("/register", cfg.AuthHandler.Register)
    api.POST("/login", cfg.AuthHandler.Login)
    api.POST("/logout", cfg.AuthMiddleware.OptionalAuth(), cfg.AuthHandler.Logout)
    api.GET("/education", cfg.EducationHandler.GetContent)
  }

  //------------------------------------------
  // Protected Routes
  //------------------------------------------
  protected := api.Group("/")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  protected.GET("/user", cfg.AuthHandler.CurrentUser)
  if cfg.WsHandler != nil {
    protected.GET("/ws", cfg.WsHandler)
  }

  //Chat
  protected.POST("/chat", cfg.ChatHandler.SendMessage)
  protected.GET("/messages", cfg.ChatHandler.GetMessages)

  //Symptoms
  protected.POST("/symptoms", cfg.SymptomHandler.LogSymptom)
  protected.GET("/symptoms", cfg.SymptomHandler.GetSymptoms)

  return router
}

// buildCORSConfig only allows credentials for an explicit origin list. A
// wildcard or empty list opens every origin without cookies.
func buildCORSConfig(origins []string) cors.Config {
  corsConfig := cors.Config{
    AllowMethods:     []string{"GET", "POST", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", middleware.RequestIDHeader},
    ExposeHeaders:    []string{middleware.RequestIDHeader},
    MaxAge:           12 * time.Hour,
  }
  if len(origins) == 0 || containsWildcard(origins) {
    corsConfig.AllowAllOrigins = true
    return corsConfig
  }
  corsConfig.AllowOrigins = origins
  corsConfig.AllowCredentials = true
  return corsConfig
}

func containsWildcard(origins []string) bool {
  for _, o := range origins {
    if o == "*" {
      return true
    }
  }
  return false
}
