package repos

import (
    "context"
    "fmt"

    "gorm.io/gorm"

    "github.com/asthmaai/asthmaai-backend/internal/logger"
    "github.com/asthmaai/asthmaai-backend/internal/types"
)

type SymptomRepo interface {
    Create(ctx context.Context, symptom *types.Symptom) (*types.Symptom, error)
    GetByUserID(ctx context.Context, userID int) ([]*types.Symptom, error)
}

type symptomRepo struct {
    db      *gorm.DB
    log     *logger.Logger
}

func NewSymptomRepo(db *gorm.DB, baseLog *logger.Logger) SymptomRepo {
    return &symptomRepo{
        db:     db,
        log:    baseLog.With("repo", "SymptomRepo"),
    }
}

func (sr *symptomRepo) Create(ctx context.Context, symptom *types.Symptom) (*types.Symptom, error) {
    created := symptom.Clone()
    created.ID = 0
    if err := sr.db.WithContext(ctx).Create(&created).Error; err != nil {
        sr.log.Error("failed to create symptom", "error", err)
        return nil, fmt.Errorf("failed creating symptom: %w", err)
    }
    return &created, nil
}

func (sr *symptomRepo) GetByUserID(ctx context.Context, userID int) ([]*types.Symptom, error) {
    symptoms := []*types.Symptom{}
    if err := sr.db.WithContext(ctx).
        Where("user_id = ?", userID).
        Order("id ASC").
        Find(&symptoms).Error; err != nil {
        sr.log.Error("failed to get symptoms by userID", "userID", userID, "error", err)
        return nil, fmt.Errorf("failed fetching symptoms: %w", err)
    }
    sortSymptomsDescending(symptoms)
    return symptoms, nil
}
