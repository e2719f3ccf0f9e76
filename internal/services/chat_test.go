package services

import (
  "context"
  "errors"
  "testing"
  "time"

  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"

  "github.com/asthmaai/asthmaai-backend/internal/logger"
  "github.com/asthmaai/asthmaai-backend/internal/socket"
)

func TestSendMessageStoresTurnInOrder(t *testing.T) {
  store, user := newStoreWithUser("alice")
  gw := &stubGateway{reply: "Keep your inhaler close."}
  notifier := &recordingNotifier{}
  svc := NewChatService(logger.NewNop(), store, gw, notifier).(*chatService)

  clock := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
  svc.now = func() time.Time {
    clock = clock.Add(time.Second)
    return clock
  }

  ctx := asUser(user.ID)
  bot, err := svc.SendMessage(ctx, "I feel wheezy")
  require.NoError(t, err)
  assert.True(t, bot.IsBot)
  assert.Equal(t, "Keep your inhaler close.", bot.Content)
  assert.Equal(t, user.ID, bot.UserID)
  assert.Equal(t, []string{"I feel wheezy"}, gw.prompts)

  messages, err := svc.GetMessages(ctx)
  require.NoError(t, err)
  require.Len(t, messages, 2)
  assert.Equal(t, "I feel wheezy", messages[0].Content)
  assert.False(t, messages[0].IsBot)
  assert.Equal(t, "2024-03-01T10:00:01.000Z", messages[0].Timestamp)
  assert.Equal(t, "2024-03-01T10:00:02.000Z", messages[1].Timestamp)
  assert.Equal(t, bot.ID, messages[1].ID)

  assert.Equal(t, []notification{{userID: user.ID, eventType: socket.EventMessagesUpdated}}, notifier.events)
}

func TestSendMessageCompletionFailureStoresNothing(t *testing.T) {
  store, user := newStoreWithUser("alice")
  cause := errors.New("boom")
  gw := &stubGateway{err: &OpenAIError{Message: "Error communicating with OpenAI: boom", Err: cause}}
  notifier := &recordingNotifier{}
  svc := NewChatService(logger.NewNop(), store, gw, notifier)

  ctx := asUser(user.ID)
  _, err := svc.SendMessage(ctx, "hello")
  var oaErr *OpenAIError
  require.ErrorAs(t, err, &oaErr)

  messages, err := svc.GetMessages(ctx)
  require.NoError(t, err)
  assert.Empty(t, messages)
  assert.Empty(t, notifier.events)
}

func TestSendMessageRequiresCaller(t *testing.T) {
  store, _ := newStoreWithUser("alice")
  gw := &stubGateway{reply: "hi"}
  svc := NewChatService(logger.NewNop(), store, gw, nil)

  _, err := svc.SendMessage(context.Background(), "hi")
  assert.ErrorIs(t, err, ErrUnauthenticated)
  assert.Empty(t, gw.prompts)

  _, err = svc.GetMessages(context.Background())
  assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestSendMessageRejectsBlankContent(t *testing.T) {
  store, user := newStoreWithUser("alice")
  gw := &stubGateway{reply: "hi"}
  svc := NewChatService(logger.NewNop(), store, gw, nil)

  _, err := svc.SendMessage(asUser(user.ID), "   ")
  assert.ErrorIs(t, err, ErrInvalidInput)
  assert.Empty(t, gw.prompts)
}

func TestGetMessagesIsScopedToCaller(t *testing.T) {
  store, alice := newStoreWithUser("alice")
  bob, err := store.CreateUser(context.Background(), "bob", "x")
  require.NoError(t, err)
  svc := NewChatService(logger.NewNop(), store, &stubGateway{reply: "ok"}, nil)

  _, err = svc.SendMessage(asUser(alice.ID), "from alice")
  require.NoError(t, err)

  messages, err := svc.GetMessages(asUser(bob.ID))
  require.NoError(t, err)
  assert.NotNil(t, messages)
  assert.Empty(t, messages)
}
