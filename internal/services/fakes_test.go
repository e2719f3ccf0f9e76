package services

import (
  "context"
  "sync"
  "time"

  "golang.org/x/crypto/bcrypt"

  "github.com/asthmaai/asthmaai-backend/internal/logger"
  "github.com/asthmaai/asthmaai-backend/internal/repos"
  "github.com/asthmaai/asthmaai-backend/internal/requestdata"
  "github.com/asthmaai/asthmaai-backend/internal/sessions"
  "github.com/asthmaai/asthmaai-backend/internal/types"
)

type notification struct {
  userID    int
  eventType string
}

type recordingNotifier struct {
  mu      sync.Mutex
  events  []notification
}

func (n *recordingNotifier) NotifyUser(ctx context.Context, userID int, eventType string) {
  n.mu.Lock()
  defer n.mu.Unlock()
  n.events = append(n.events, notification{userID: userID, eventType: eventType})
}

type stubGateway struct {
  reply   string
  err     error
  prompts []string
}

func (g *stubGateway) GetMedicalChatCompletion(ctx context.Context, userMessage string) (string, error) {
  g.prompts = append(g.prompts, userMessage)
  if g.err != nil {
    return "", g.err
  }
  return g.reply, nil
}

func asUser(userID int) context.Context {
  return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{UserID: userID})
}

func newStoreWithUser(username string) (repos.RecordStore, *types.User) {
  store := repos.NewMemoryRecordStore(logger.NewNop())
  user, err := store.CreateUser(context.Background(), username, "x")
  if err != nil {
    panic(err)
  }
  return store, user
}

func newTestAuth(store repos.RecordStore) (AuthService, *sessions.MemoryStore) {
  sessionStore := sessions.NewMemoryStore(logger.NewNop(), time.Hour, 0)
  svc := NewAuthService(logger.NewNop(), store, sessionStore, AuthConfig{
    JWTSecretKey: "test-secret",
    SessionTTL:   time.Hour,
    BcryptCost:   bcrypt.MinCost,
  })
  return svc, sessionStore
}
