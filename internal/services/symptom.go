package services

import (
  "context"
  "fmt"
  "strings"
  "time"

  "github.com/asthmaai/asthmaai-backend/internal/logger"
  "github.com/asthmaai/asthmaai-backend/internal/repos"
  "github.com/asthmaai/asthmaai-backend/internal/requestdata"
  "github.com/asthmaai/asthmaai-backend/internal/socket"
  "github.com/asthmaai/asthmaai-backend/internal/types"
)

const (
  MinSeverity = 1
  MaxSeverity = 5
)

type SymptomService interface {
  LogSymptom(ctx context.Context, in repos.SymptomInput) (*types.Symptom, error)
  GetSymptoms(ctx context.Context) ([]*types.Symptom, error)
}

type symptomService struct {
  log         *logger.Logger
  store       repos.RecordStore
  notifier    socket.Notifier
  now         func() time.Time
}

func NewSymptomService(log *logger.Logger, store repos.RecordStore, notifier socket.Notifier) SymptomService {
  serviceLog := log.With("service", "SymptomService")
  return &symptomService{
    log:      serviceLog,
    store:    store,
    notifier: notifier,
    now:      time.Now,
  }
}

func (ss *symptomService) LogSymptom(ctx context.Context, in repos.SymptomInput) (*types.Symptom, error) {
  //1) Caller
  userID := requestdata.CurrentUserID(ctx)
  if userID == 0 {
    return nil, ErrUnauthenticated
  }

  //2) Validate
  if in.Severity < MinSeverity || in.Severity > MaxSeverity {
    return nil, fmt.Errorf("severity %d outside %d..%d: %w", in.Severity, MinSeverity, MaxSeverity, ErrInvalidInput)
  }
  if strings.TrimSpace(in.Description) == "" {
    return nil, fmt.Errorf("description is required: %w", ErrInvalidInput)
  }
  in.Triggers = blankToNil(in.Triggers)
  in.MedicationUsed = blankToNil(in.MedicationUsed)

  //3) Persist with server time
  symptom, err := ss.store.SaveSymptom(ctx, in, userID, FormatTimestamp(ss.now()))
  if err != nil {
    return nil, fmt.Errorf("failed saving symptom: %w", err)
  }
  if ss.notifier != nil {
    ss.notifier.NotifyUser(ctx, userID, socket.EventSymptomsUpdated)
  }
  ss.log.Debug("Symptom logged", "userID", userID, "symptomID", symptom.ID, "severity", symptom.Severity)
  return symptom, nil
}

func (ss *symptomService) GetSymptoms(ctx context.Context) ([]*types.Symptom, error) {
  userID := requestdata.CurrentUserID(ctx)
  if userID == 0 {
    return nil, ErrUnauthenticated
  }
  symptoms, err := ss.store.GetSymptomsByUser(ctx, userID)
  if err != nil {
    return nil, fmt.Errorf("failed fetching symptoms: %w", err)
  }
  if symptoms == nil {
    symptoms = []*types.Symptom{}
  }
  return symptoms, nil
}

func blankToNil(s *string) *string {
  if s == nil || strings.TrimSpace(*s) == "" {
    return nil
  }
  return s
}
