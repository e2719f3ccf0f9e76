package repos

import (
    "context"
    "sync"

    "github.com/asthmaai/asthmaai-backend/internal/logger"
    "github.com/asthmaai/asthmaai-backend/internal/types"
)

// The in-memory repos hold records in creation order. Each collection has its
// own mutex so id allocation and insertion happen as one step.

type memoryUserRepo struct {
    mu      sync.RWMutex
    log     *logger.Logger
    nextID  int
    users   []types.User
    byID    map[int]int
}

func NewMemoryUserRepo(baseLog *logger.Logger) UserRepo {
    return &memoryUserRepo{
        log:    baseLog.With("repo", "MemoryUserRepo"),
        nextID: 1,
        byID:   make(map[int]int),
    }
}

func (r *memoryUserRepo) Create(ctx context.Context, user *types.User) (*types.User, error) {
    r.mu.Lock()
    defer r.mu.Unlock()
    for i := range r.users {
        if r.users[i].Username == user.Username {
            r.log.Warn("Username already in use, cannot create user", "username", user.Username)
            return nil, ErrUsernameTaken
        }
    }
    created := types.User{ID: r.nextID, Username: user.Username, Password: user.Password}
    r.nextID++
    r.byID[created.ID] = len(r.users)
    r.users = append(r.users, created)
    r.log.Debug("Created user", "id", created.ID)
    return &created, nil
}

func (r *memoryUserRepo) GetByID(ctx context.Context, id int) (*types.User, error) {
    r.mu.RLock()
    defer r.mu.RUnlock()
    idx, ok := r.byID[id]
    if !ok {
        return nil, nil
    }
    u := r.users[idx]
    return &u, nil
}

func (r *memoryUserRepo) GetByUsername(ctx context.Context, username string) (*types.User, error) {
    r.mu.RLock()
    defer r.mu.RUnlock()
    for i := range r.users {
        if r.users[i].Username == username {
            u := r.users[i]
            return &u, nil
        }
    }
    return nil, nil
}

type memoryMessageRepo struct {
    mu          sync.RWMutex
    log         *logger.Logger
    nextID      int
    messages    []types.Message
}

func NewMemoryMessageRepo(baseLog *logger.Logger) MessageRepo {
    return &memoryMessageRepo{
        log:    baseLog.With("repo", "MemoryMessageRepo"),
        nextID: 1,
    }
}

func (r *memoryMessageRepo) Create(ctx context.Context, msg *types.Message) (*types.Message, error) {
    r.mu.Lock()
    defer r.mu.Unlock()
    created := *msg
    created.ID = r.nextID
    r.nextID++
    r.messages = append(r.messages, created)
    return &created, nil
}

func (r *memoryMessageRepo) GetByUserID(ctx context.Context, userID int) ([]*types.Message, error) {
    r.mu.RLock()
    out := []*types.Message{}
    for i := range r.messages {
        if r.messages[i].UserID == userID {
            m := r.messages[i]
            out = append(out, &m)
        }
    }
    r.mu.RUnlock()
    sortMessagesAscending(out)
    return out, nil
}

type memorySymptomRepo struct {
    mu          sync.RWMutex
    log         *logger.Logger
    nextID      int
    symptoms    []types.Symptom
}

func NewMemorySymptomRepo(baseLog *logger.Logger) SymptomRepo {
    return &memorySymptomRepo{
        log:    baseLog.With("repo", "MemorySymptomRepo"),
        nextID: 1,
    }
}

func (r *memorySymptomRepo) Create(ctx context.Context, symptom *types.Symptom) (*types.Symptom, error) {
    r.mu.Lock()
    defer r.mu.Unlock()
    stored := symptom.Clone()
    stored.ID = r.nextID
    r.nextID++
    r.symptoms = append(r.symptoms, stored)
    out := stored.Clone()
    return &out, nil
}

func (r *memorySymptomRepo) GetByUserID(ctx context.Context, userID int) ([]*types.Symptom, error) {
    r.mu.RLock()
    out := []*types.Symptom{}
    for i := range r.symptoms {
        if r.symptoms[i].UserID == userID {
            s := r.symptoms[i].Clone()
            out = append(out, &s)
        }
    }
    r.mu.RUnlock()
    sortSymptomsDescending(out)
    return out, nil
}
