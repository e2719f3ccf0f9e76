package repos

import (
    "context"
    "fmt"

    "gorm.io/gorm"

    "github.com/asthmaai/asthmaai-backend/internal/logger"
    "github.com/asthmaai/asthmaai-backend/internal/types"
)

// RecordStore is the single owner of Users, Messages and Symptoms. Lookups
// signal a miss with a nil result, never an error.
type RecordStore interface {
    CreateUser(ctx context.Context, username, password string) (*types.User, error)
    GetUser(ctx context.Context, id int) (*types.User, error)
    GetUserByUsername(ctx context.Context, username string) (*types.User, error)

    SaveMessage(ctx context.Context, content string, isBot bool, userID int, timestamp string) (*types.Message, error)
    GetMessagesByUser(ctx context.Context, userID int) ([]*types.Message, error)

    SaveSymptom(ctx context.Context, in SymptomInput, userID int, timestamp string) (*types.Symptom, error)
    GetSymptomsByUser(ctx context.Context, userID int) ([]*types.Symptom, error)
}

type SymptomInput struct {
    Severity        int
    Description     string
    Triggers        *string
    MedicationUsed  *string
}

type recordStore struct {
    log         *logger.Logger
    users       UserRepo
    messages    MessageRepo
    symptoms    SymptomRepo
}

func NewRecordStore(baseLog *logger.Logger, users UserRepo, messages MessageRepo, symptoms SymptomRepo) RecordStore {
    return &recordStore{
        log:        baseLog.With("repo", "RecordStore"),
        users:      users,
        messages:   messages,
        symptoms:   symptoms,
    }
}

// NewMemoryRecordStore keeps everything for the lifetime of the process.
func NewMemoryRecordStore(baseLog *logger.Logger) RecordStore {
    return NewRecordStore(baseLog, NewMemoryUserRepo(baseLog), NewMemoryMessageRepo(baseLog), NewMemorySymptomRepo(baseLog))
}

func NewGormRecordStore(db *gorm.DB, baseLog *logger.Logger) RecordStore {
    return NewRecordStore(baseLog, NewUserRepo(db, baseLog), NewMessageRepo(db, baseLog), NewSymptomRepo(db, baseLog))
}

func (s *recordStore) CreateUser(ctx context.Context, username, password string) (*types.User, error) {
    return s.users.Create(ctx, &types.User{Username: username, Password: password})
}

func (s *recordStore) GetUser(ctx context.Context, id int) (*types.User, error) {
    return s.users.GetByID(ctx, id)
}

func (s *recordStore) GetUserByUsername(ctx context.Context, username string) (*types.User, error) {
    return s.users.GetByUsername(ctx, username)
}

func (s *recordStore) SaveMessage(ctx context.Context, content string, isBot bool, userID int, timestamp string) (*types.Message, error) {
    if err := s.requireUser(ctx, userID); err != nil {
        return nil, err
    }
    return s.messages.Create(ctx, &types.Message{
        UserID:     userID,
        Content:    content,
        IsBot:      isBot,
        Timestamp:  timestamp,
    })
}

func (s *recordStore) GetMessagesByUser(ctx context.Context, userID int) ([]*types.Message, error) {
    return s.messages.GetByUserID(ctx, userID)
}

func (s *recordStore) SaveSymptom(ctx context.Context, in SymptomInput, userID int, timestamp string) (*types.Symptom, error) {
    if err := s.requireUser(ctx, userID); err != nil {
        return nil, err
    }
    return s.symptoms.Create(ctx, &types.Symptom{
        UserID:         userID,
        Severity:       in.Severity,
        Description:    in.Description,
        Triggers:       in.Triggers,
        MedicationUsed: in.MedicationUsed,
        Timestamp:      timestamp,
    })
}

func (s *recordStore) GetSymptomsByUser(ctx context.Context, userID int) ([]*types.Symptom, error) {
    return s.symptoms.GetByUserID(ctx, userID)
}

// requireUser enforces that an owner exists. Users are never deleted, so the
// check cannot go stale between lookup and insert.
func (s *recordStore) requireUser(ctx context.Context, userID int) error {
    u, err := s.users.GetByID(ctx, userID)
    if err != nil {
        return fmt.Errorf("failed checking owner %d: %w", userID, err)
    }
    if u == nil {
        s.log.Warn("Refusing to save record for unknown user", "userID", userID)
        return fmt.Errorf("owner %d: %w", userID, ErrUserNotFound)
    }
    return nil
}
