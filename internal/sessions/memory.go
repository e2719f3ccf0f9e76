package sessions

import (
  "context"
  "sync"
  "time"

  "github.com/google/uuid"

  "github.com/asthmaai/asthmaai-backend/internal/logger"
  "github.com/asthmaai/asthmaai-backend/internal/types"
)

type MemoryStore struct {
  log         *logger.Logger
  ttl         time.Duration
  now         func() time.Time
  mu          sync.RWMutex
  sessions    map[string]types.Session
  stopOnce    sync.Once
  stop        chan struct{}
  done        chan struct{}
}

// NewMemoryStore starts a sweeper that drops expired sessions every
// sweepPeriod. A zero sweepPeriod disables the sweeper.
func NewMemoryStore(log *logger.Logger, ttl, sweepPeriod time.Duration) *MemoryStore {
  ms := &MemoryStore{
    log:      log.With("store", "MemorySessionStore"),
    ttl:      ttl,
    now:      time.Now,
    sessions: make(map[string]types.Session),
    stop:     make(chan struct{}),
    done:     make(chan struct{}),
  }
  if sweepPeriod > 0 {
    go ms.sweepLoop(sweepPeriod)
  } else {
    close(ms.done)
  }
  return ms
}

func (ms *MemoryStore) Create(ctx context.Context, userID int) (*types.Session, error) {
  s := types.Session{
    ID:         uuid.NewString(),
    UserID:     userID,
    ExpiresAt:  ms.now().Add(ms.ttl),
  }
  ms.mu.Lock()
  ms.sessions[s.ID] = s
  ms.mu.Unlock()
  ms.log.Debug("Session created", "userID", userID)
  return &s, nil
}

func (ms *MemoryStore) Get(ctx context.Context, id string) (*types.Session, error) {
  ms.mu.RLock()
  s, ok := ms.sessions[id]
  ms.mu.RUnlock()
  if !ok || s.Expired(ms.now()) {
    return nil, nil
  }
  return &s, nil
}

func (ms *MemoryStore) Delete(ctx context.Context, id string) error {
  ms.mu.Lock()
  delete(ms.sessions, id)
  ms.mu.Unlock()
  return nil
}

// Sweep removes every session expired at now and reports how many went.
func (ms *MemoryStore) Sweep(now time.Time) int {
  ms.mu.Lock()
  defer ms.mu.Unlock()
  removed := 0
  for id, s := range ms.sessions {
    if s.Expired(now) {
      delete(ms.sessions, id)
      removed++
    }
  }
  return removed
}

func (ms *MemoryStore) Len() int {
  ms.mu.RLock()
  defer ms.mu.RUnlock()
  return len(ms.sessions)
}

func (ms *MemoryStore) Close() error {
  ms.stopOnce.Do(func() {
    close(ms.stop)
  })
  <-ms.done
  return nil
}

func (ms *MemoryStore) sweepLoop(period time.Duration) {
  defer close(ms.done)
  ticker := time.NewTicker(period)
  defer ticker.Stop()
  for {
    select {
    case <-ms.stop:
      ms.log.Debug("Session sweeper stopped")
      return
    case <-ticker.C:
      if n := ms.Sweep(ms.now()); n > 0 {
        ms.log.Info("Swept expired sessions", "count", n)
      }
    }
  }
}
