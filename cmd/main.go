package main

import (
  "context"
  "errors"
  "fmt"
  "net/http"
  "os"
  "os/signal"
  "syscall"
  "time"

  "github.com/asthmaai/asthmaai-backend/internal/config"
  "github.com/asthmaai/asthmaai-backend/internal/db"
  "github.com/asthmaai/asthmaai-backend/internal/handlers"
  "github.com/asthmaai/asthmaai-backend/internal/logger"
  "github.com/asthmaai/asthmaai-backend/internal/middleware"
  "github.com/asthmaai/asthmaai-backend/internal/repos"
  "github.com/asthmaai/asthmaai-backend/internal/server"
  "github.com/asthmaai/asthmaai-backend/internal/services"
  "github.com/asthmaai/asthmaai-backend/internal/sessions"
  "github.com/asthmaai/asthmaai-backend/internal/socket"
  "github.com/asthmaai/asthmaai-backend/internal/utils"
)

func main() {
  // .env
  if err := config.LoadDotEnv(); err != nil {
    fmt.Printf("failed to read .env: %v\n", err)
    os.Exit(1)
  }

  // Logger Setup
  log, err := logger.NewWithOptions(logger.Options{
    Mode:      utils.GetEnv("LOG_MODE", "development", nil),
    FilePath:  utils.GetEnv("LOG_FILE", "", nil),
    FileMaxMB: utils.GetEnvAsInt("LOG_FILE_MAX_MB", 100, nil),
  })
  if err != nil {
    fmt.Printf("failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Environment Variables
  cfg, err := config.Load(log)
  if err != nil {
    log.Error("Fatal error: invalid configuration", "error", err)
    os.Exit(1)
  }

  // Record Store Setup
  log.Info("Setting Up Record Store from Main now...", "driver", cfg.StoreDriver)
  var store repos.RecordStore
  var postgresService *db.PostgresService
  switch cfg.StoreDriver {
  case config.DriverPostgres:
    postgresService, err = db.NewPostgresService(log, cfg.Postgres)
    if err != nil {
      log.Error("Fatal error: DB init failed", "error", err)
      os.Exit(1)
    }
    if err = postgresService.AutoMigrateAll(); err != nil {
      log.Error("Fatal error: Postgres auto migration failed", "error", err)
      os.Exit(1)
    }
    store = repos.NewGormRecordStore(postgresService.DB(), log)
  default:
    store = repos.NewMemoryRecordStore(log)
  }
  log.Info("Record Store Set Up From Main Successful :)")

  // Session Store Setup
  log.Info("Setting Up Session Store from Main now...", "driver", cfg.SessionDriver)
  var sessionStore sessions.SessionStore
  switch cfg.SessionDriver {
  case config.DriverRedis:
    sessionStore, err = sessions.NewRedisStore(log, cfg.RedisAddress, cfg.RedisPassword, cfg.SessionTTL)
    if err != nil {
      log.Error("Fatal error: Redis session store init failed", "error", err)
      os.Exit(1)
    }
  default:
    sessionStore = sessions.NewMemoryStore(log, cfg.SessionTTL, cfg.SessionSweep)
  }
  log.Info("Session Store Set Up From Main Successful :)")

  // Websocket Setup
  log.Info("Setting Up Websocket Hub From Main Now :)")
  wsHub := socket.NewHub(log)
  log.Info("Websocket Hub Set Up From Main Successful :)")

  // Services Setup
  log.Info("Setting up Services from Main now...")
  completionGateway, err := services.NewCompletionGateway(log, services.CompletionConfig{
    APIKey:  cfg.OpenAIAPIKey,
    Model:   cfg.OpenAIModel,
    BaseURL: cfg.OpenAIBaseURL,
    Timeout: cfg.CompletionTimeout,
  })
  if err != nil {
    log.Error("Fatal error: Cannot init CompletionGateway", "error", err)
    os.Exit(1)
  }
  authService := services.NewAuthService(log, store, sessionStore, services.AuthConfig{
    JWTSecretKey: cfg.SessionSecret,
    SessionTTL:   cfg.SessionTTL,
  })
  chatService := services.NewChatService(log, store, completionGateway, wsHub)
  symptomService := services.NewSymptomService(log, store, wsHub)
  educationService := services.NewEducationService()
  log.Info("Services Set Up From Main Successful :)")

  //  Handler Setup
  log.Info("Setting Up Handlers from Main now...")
  authHandler := handlers.NewAuthHandler(authService, cfg.CookieSecure)
  chatHandler := handlers.NewChatHandler(chatService)
  symptomHandler := handlers.NewSymptomHandler(symptomService)
  educationHandler := handlers.NewEducationHandler(educationService)
  wsHandler := handlers.WsHandler(wsHub, handlers.NewUpgrader(cfg.CORSOrigins), log)
  log.Info("Handlers Set Up From Main Successful :)")

  // MiddleWare Setup
  log.Info("Setting Up Middleware from Main now...")
  authMiddleware := middleware.NewAuthMiddleware(log, authService)
  log.Info("Middleware Set Up From Main Successful :)")

  // Router Setup
  log.Info("Setting Up Router from Main now...")
  router := server.NewRouter(server.RouterConfig{
    Log:              log,
    CORSOrigins:      cfg.CORSOrigins,
    AuthHandler:      authHandler,
    AuthMiddleware:   authMiddleware,
    ChatHandler:      chatHandler,
    SymptomHandler:   symptomHandler,
    EducationHandler: educationHandler,
    WsHandler:        wsHandler,
  })
  log.Info("Router Set Up From Main Successful :)")

  srv := &http.Server{
    Addr:              ":" + cfg.Port,
    Handler:           router,
    ReadHeaderTimeout: 10 * time.Second,
  }
  go func() {
    log.Info("Server listening", "port", cfg.Port)
    if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
      log.Error("Server failed", "error", err)
      os.Exit(1)
    }
  }()

  // On Shutdown
  quit := make(chan os.Signal, 1)
  signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
  <-quit
  log.Info("Shutting down server now...")

  wsHub.Shutdown()
  ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
  defer cancel()
  if err := srv.Shutdown(ctx); err != nil {
    log.Warn("Server shutdown did not complete cleanly", "error", err)
  }
  if err := sessionStore.Close(); err != nil {
    log.Warn("Failed closing session store", "error", err)
  }
  if postgresService != nil {
    if err := postgresService.Close(); err != nil {
      log.Warn("Failed closing Postgres", "error", err)
    }
  }
  log.Info("Server stopped :)")
}
