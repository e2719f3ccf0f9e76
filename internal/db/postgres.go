package db

import (
  "fmt"

  "gorm.io/driver/postgres"
  "gorm.io/gorm"
  gormlogger "gorm.io/gorm/logger"

  "github.com/asthmaai/asthmaai-backend/internal/config"
  "github.com/asthmaai/asthmaai-backend/internal/logger"
  "github.com/asthmaai/asthmaai-backend/internal/types"
)

type PostgresService struct {
  db *gorm.DB
  log *logger.Logger
}

func NewPostgresService(log *logger.Logger, cfg config.PostgresConfig) (*PostgresService, error) {
  serviceLog := log.With("service", "PostgresService")

  //1) Attempt DB Connection
  log.Info("Attempting to connect to Postgres DB now...", "host", cfg.Host, "port", cfg.Port, "dbname", cfg.Name)
  db, err := Open(postgres.Open(cfg.DSN()))
  if err != nil {
    log.Error("Failed to connect to Postgres DB", "error", err)
    return nil, fmt.Errorf("Failed to connect to Postgres DB: %w", err)
  }
  log.Info("Successfully Connected to Postgres DB :)")

  return &PostgresService{db: db, log: serviceLog}, nil
}

// Open applies the settings the repos rely on; TranslateError maps unique
// violations to gorm.ErrDuplicatedKey.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
  return gorm.Open(dialector, &gorm.Config{
    DisableForeignKeyConstraintWhenMigrating: true,
    TranslateError:                           true,
    Logger:                                   gormlogger.Default.LogMode(gormlogger.Warn),
  })
}

// foreignKeys are added after migration so AutoMigrate never reorders tables.
var foreignKeys = []struct {
  table       string
  name        string
  column      string
}{
  {"messages", "fk_messages_user_id", "user_id"},
  {"symptoms", "fk_symptoms_user_id", "user_id"},
}

func (s *PostgresService) AutoMigrateAll() error {
  s.log.Info("Starting AutoMigrateAll for all GORM models now...")

  err := s.db.AutoMigrate(
    &types.User{},
    &types.Message{},
    &types.Symptom{},
  )
  if err != nil {
    s.log.Error("AutoMigrateAll failed for Base Tables :(", "error", err)
    return err
  }
  s.log.Info("AutoMigrateAll completed successfully for Base Tables :)")

  s.log.Info("Configuring Foreign Key Relationships for Base Tables now...")
  for _, fk := range foreignKeys {
    // -- <table>.user_id => users.id (ON DELETE CASCADE)
    if s.db.Migrator().HasConstraint(fk.table, fk.name) {
      continue
    }
    if err := s.db.Exec(fmt.Sprintf(`
      ALTER TABLE %q
      ADD CONSTRAINT %q
      FOREIGN KEY (%q)
      REFERENCES "users"("id")
      ON DELETE CASCADE
    `, fk.table, fk.name, fk.column)).Error; err != nil {
      return fmt.Errorf("failed to add %s: %w", fk.name, err)
    }
  }
  s.log.Info("Successfully Added Foreign Key Relationships to Base Tables :)")

  return nil
}

func (s *PostgresService) DB() *gorm.DB {
  return s.db
}

func (s *PostgresService) Close() error {
  sqlDB, err := s.db.DB()
  if err != nil {
    return err
  }
  return sqlDB.Close()
}
