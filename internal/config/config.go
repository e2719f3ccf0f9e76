package config

import (
  "errors"
  "fmt"
  "io/fs"
  "strings"
  "time"

  "github.com/google/uuid"
  "github.com/joho/godotenv"

  "github.com/asthmaai/asthmaai-backend/internal/logger"
  "github.com/asthmaai/asthmaai-backend/internal/utils"
)

const (
  DriverMemory   = "memory"
  DriverPostgres = "postgres"
  DriverRedis    = "redis"
)

var ErrMissingAPIKey = errors.New("OPENAI_API_KEY environment variable is required")

type PostgresConfig struct {
  Host        string
  Port        string
  User        string
  Password    string
  Name        string
  SSLMode     string
}

func (p PostgresConfig) DSN() string {
  return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", p.User, p.Password, p.Host, p.Port, p.Name, p.SSLMode)
}

type Config struct {
  Port                string

  OpenAIAPIKey        string
  OpenAIModel         string
  OpenAIBaseURL       string
  CompletionTimeout   time.Duration

  SessionSecret       string
  SessionTTL          time.Duration
  SessionSweep        time.Duration
  SessionDriver       string
  RedisAddress        string
  RedisPassword       string

  StoreDriver         string
  Postgres            PostgresConfig

  CORSOrigins         []string
  CookieSecure        bool
}

// LoadDotEnv reads an optional .env file. A missing file is not an error.
func LoadDotEnv(files ...string) error {
  err := godotenv.Load(files...)
  if err != nil && !errors.Is(err, fs.ErrNotExist) {
    return err
  }
  return nil
}

// Load reads the process environment. A missing provider key is fatal.
func Load(log *logger.Logger) (*Config, error) {
  log.Info("Attempting to load environment variables for Config now...")
  cfg := &Config{
    Port:              utils.GetEnv("PORT", "8080", log),
    OpenAIAPIKey:      strings.TrimSpace(utils.GetEnv("OPENAI_API_KEY", "", nil)),
    OpenAIModel:       utils.GetEnv("OPENAI_MODEL", "gpt-4o", log),
    OpenAIBaseURL:     utils.GetEnv("OPENAI_BASE_URL", "", log),
    CompletionTimeout: seconds(utils.GetEnvAsInt("COMPLETION_TIMEOUT_SECONDS", 30, log)),
    SessionSecret:     utils.GetEnv("SESSION_SECRET", "", nil),
    SessionTTL:        seconds(utils.GetEnvAsInt("SESSION_TTL_SECONDS", 86400, log)),
    SessionSweep:      seconds(utils.GetEnvAsInt("SESSION_SWEEP_SECONDS", 86400, log)),
    SessionDriver:     strings.ToLower(utils.GetEnv("SESSION_DRIVER", DriverMemory, log)),
    RedisAddress:      utils.GetEnv("REDIS_ADDRESS", "localhost:6379", log),
    RedisPassword:     utils.GetEnv("REDIS_PASSWORD", "", nil),
    StoreDriver:       strings.ToLower(utils.GetEnv("STORE_DRIVER", DriverMemory, log)),
    Postgres: PostgresConfig{
      Host:     utils.GetEnv("POSTGRES_HOST", "localhost", log),
      Port:     utils.GetEnv("POSTGRES_PORT", "5432", log),
      User:     utils.GetEnv("POSTGRES_USER", "postgres", log),
      Password: utils.GetEnv("POSTGRES_PASSWORD", "", nil),
      Name:     utils.GetEnv("POSTGRES_NAME", "asthmaai", log),
      SSLMode:  utils.GetEnv("POSTGRES_SSLMODE", "disable", log),
    },
    CORSOrigins:       utils.GetEnvAsList("CORS_ORIGINS", []string{"http://localhost:3000", "http://localhost:5000"}, log),
    CookieSecure:      utils.GetEnvAsBool("COOKIE_SECURE", false, log),
  }

  //1) Required
  if cfg.OpenAIAPIKey == "" {
    return nil, ErrMissingAPIKey
  }

  //2) Drivers
  if cfg.StoreDriver != DriverMemory && cfg.StoreDriver != DriverPostgres {
    return nil, fmt.Errorf("unknown STORE_DRIVER %q, want %q or %q", cfg.StoreDriver, DriverMemory, DriverPostgres)
  }
  if cfg.SessionDriver != DriverMemory && cfg.SessionDriver != DriverRedis {
    return nil, fmt.Errorf("unknown SESSION_DRIVER %q, want %q or %q", cfg.SessionDriver, DriverMemory, DriverRedis)
  }
  if cfg.CompletionTimeout <= 0 {
    return nil, fmt.Errorf("COMPLETION_TIMEOUT_SECONDS must be positive")
  }
  if cfg.SessionTTL <= 0 {
    return nil, fmt.Errorf("SESSION_TTL_SECONDS must be positive")
  }

  //3) Secret
  if cfg.SessionSecret == "" {
    log.Warn("SESSION_SECRET not set, generating one; sessions will not survive a restart")
    cfg.SessionSecret = uuid.NewString() + uuid.NewString()
  }

  log.Info("Environment variables loaded for Config :)",
    "storeDriver", cfg.StoreDriver,
    "sessionDriver", cfg.SessionDriver,
    "model", cfg.OpenAIModel,
  )
  return cfg, nil
}

func seconds(n int) time.Duration {
  return time.Duration(n) * time.Second
}
