package services

import (
  "context"
  "errors"
  "fmt"
  "strings"
  "time"

  "github.com/asthmaai/asthmaai-backend/internal/logger"
  "github.com/asthmaai/asthmaai-backend/internal/repos"
  "github.com/asthmaai/asthmaai-backend/internal/requestdata"
  "github.com/asthmaai/asthmaai-backend/internal/socket"
  "github.com/asthmaai/asthmaai-backend/internal/types"
)

type ChatService interface {
  SendMessage(ctx context.Context, content string) (*types.Message, error)
  GetMessages(ctx context.Context) ([]*types.Message, error)
}

type chatService struct {
  log         *logger.Logger
  store       repos.RecordStore
  gateway     CompletionGateway
  notifier    socket.Notifier
  now         func() time.Time
}

func NewChatService(log *logger.Logger, store repos.RecordStore, gateway CompletionGateway, notifier socket.Notifier) ChatService {
  serviceLog := log.With("service", "ChatService")
  return &chatService{
    log:      serviceLog,
    store:    store,
    gateway:  gateway,
    notifier: notifier,
    now:      time.Now,
  }
}

// SendMessage runs one chat turn. Nothing is persisted unless the completion
// succeeds. The two saves are not atomic, so a user message without a reply
// is a valid state for readers.
func (cs *chatService) SendMessage(ctx context.Context, content string) (*types.Message, error) {
  //1) Caller
  userID := requestdata.CurrentUserID(ctx)
  if userID == 0 {
    return nil, ErrUnauthenticated
  }
  if strings.TrimSpace(content) == "" {
    return nil, fmt.Errorf("message content is empty: %w", ErrInvalidInput)
  }
  sentAt := FormatTimestamp(cs.now())

  //2) Completion
  reply, err := cs.gateway.GetMedicalChatCompletion(ctx, content)
  if err != nil {
    var oaErr *OpenAIError
    if errors.As(err, &oaErr) {
      cs.log.Warn("Completion failed", "userID", userID, "error", oaErr.Message, "cause", oaErr.Err)
    } else {
      cs.log.Warn("Completion failed", "userID", userID, "error", err)
    }
    return nil, err
  }

  //3) Persist user message then bot reply
  if _, err := cs.store.SaveMessage(ctx, content, false, userID, sentAt); err != nil {
    return nil, fmt.Errorf("failed saving user message: %w", err)
  }
  botMessage, err := cs.store.SaveMessage(ctx, reply, true, userID, FormatTimestamp(cs.now()))
  if err != nil {
    cs.notify(ctx, userID)
    return nil, fmt.Errorf("failed saving bot message: %w", err)
  }

  //4) Tell open sockets to refetch
  cs.notify(ctx, userID)
  cs.log.Debug("Chat turn stored", "userID", userID, "botMessageID", botMessage.ID)
  return botMessage, nil
}

func (cs *chatService) GetMessages(ctx context.Context) ([]*types.Message, error) {
  userID := requestdata.CurrentUserID(ctx)
  if userID == 0 {
    return nil, ErrUnauthenticated
  }
  messages, err := cs.store.GetMessagesByUser(ctx, userID)
  if err != nil {
    return nil, fmt.Errorf("failed fetching messages: %w", err)
  }
  if messages == nil {
    messages = []*types.Message{}
  }
  return messages, nil
}

func (cs *chatService) notify(ctx context.Context, userID int) {
  if cs.notifier == nil {
    return
  }
  cs.notifier.NotifyUser(ctx, userID, socket.EventMessagesUpdated)
}
