package repos

import (
    "context"
    "fmt"

    "gorm.io/gorm"

    "github.com/asthmaai/asthmaai-backend/internal/logger"
    "github.com/asthmaai/asthmaai-backend/internal/types"
)

type MessageRepo interface {
    Create(ctx context.Context, msg *types.Message) (*types.Message, error)
    GetByUserID(ctx context.Context, userID int) ([]*types.Message, error)
}

type messageRepo struct {
    db      *gorm.DB
    log     *logger.Logger
}

func NewMessageRepo(db *gorm.DB, baseLog *logger.Logger) MessageRepo {
    return &messageRepo{
        db:     db,
        log:    baseLog.With("repo", "MessageRepo"),
    }
}

func (mr *messageRepo) Create(ctx context.Context, msg *types.Message) (*types.Message, error) {
    created := *msg
    created.ID = 0
    if err := mr.db.WithContext(ctx).Create(&created).Error; err != nil {
        mr.log.Error("failed to create message", "error", err)
        return nil, fmt.Errorf("failed creating message: %w", err)
    }
    return &created, nil
}

func (mr *messageRepo) GetByUserID(ctx context.Context, userID int) ([]*types.Message, error) {
    msgs := []*types.Message{}
    if err := mr.db.WithContext(ctx).
        Where("user_id = ?", userID).
        Order("id ASC").
        Find(&msgs).Error; err != nil {
        mr.log.Error("failed to get messages by userID", "userID", userID, "error", err)
        return nil, fmt.Errorf("failed fetching messages: %w", err)
    }
    sortMessagesAscending(msgs)
    return msgs, nil
}
