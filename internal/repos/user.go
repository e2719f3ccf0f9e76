package repos

import (
    "context"
    "errors"
    "fmt"

    "gorm.io/gorm"

    "github.com/asthmaai/asthmaai-backend/internal/logger"
    "github.com/asthmaai/asthmaai-backend/internal/types"
)

type UserRepo interface {
    // CREATE
    Create(ctx context.Context, user *types.User) (*types.User, error)

    // READ
    GetByID(ctx context.Context, id int) (*types.User, error)
    GetByUsername(ctx context.Context, username string) (*types.User, error)
}

type userRepo struct {
    db  *gorm.DB
    log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
    repoLog := baseLog.With("repo", "UserRepo")
    return &userRepo{db: db, log: repoLog}
}

// ----------------------------------------------------------------
// CREATE
// ----------------------------------------------------------------

func (ur *userRepo) Create(ctx context.Context, user *types.User) (*types.User, error) {
    ur.log.Info("Starting Create User now...")

    // 1) Uniqueness pre-check, the unique index is the final word
    existing, err := ur.GetByUsername(ctx, user.Username)
    if err != nil {
        return nil, err
    }
    if existing != nil {
        ur.log.Warn("Username already in use, cannot create user", "username", user.Username)
        return nil, ErrUsernameTaken
    }

    // 2) Create, letting postgres assign the serial id
    created := &types.User{Username: user.Username, Password: user.Password}
    if err := ur.db.WithContext(ctx).Create(created).Error; err != nil {
        if errors.Is(err, gorm.ErrDuplicatedKey) {
            return nil, ErrUsernameTaken
        }
        ur.log.Error("Failed to create user", "error", err)
        return nil, fmt.Errorf("failed creating user: %w", err)
    }
    ur.log.Info("Successfully created user", "id", created.ID)
    return created, nil
}

// ----------------------------------------------------------------
// READ
// ----------------------------------------------------------------

func (ur *userRepo) GetByID(ctx context.Context, id int) (*types.User, error) {
    var u types.User
    if err := ur.db.WithContext(ctx).
        Where("id = ?", id).
        First(&u).Error; err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return nil, nil
        }
        ur.log.Error("Failed to fetch user by id", "id", id, "error", err)
        return nil, fmt.Errorf("failed fetching user %d: %w", id, err)
    }
    return &u, nil
}

func (ur *userRepo) GetByUsername(ctx context.Context, username string) (*types.User, error) {
    var u types.User
    if err := ur.db.WithContext(ctx).
        Where("username = ?", username).
        Order("id ASC").
        First(&u).Error; err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return nil, nil
        }
        ur.log.Error("Failed to fetch user by username", "error", err)
        return nil, fmt.Errorf("failed fetching user by username: %w", err)
    }
    return &u, nil
}
