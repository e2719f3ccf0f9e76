package socket

import (
    "context"
    "testing"

    "github.com/google/uuid"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/asthmaai/asthmaai-backend/internal/logger"
)

func newTestClient(buffer int) *Client {
    return &Client{ID: uuid.New(), Outbound: make(chan Message, buffer)}
}

func TestNotifyUserReachesOnlyThatUser(t *testing.T) {
    hub := NewHub(logger.NewNop())
    mine := newTestClient(1)
    theirs := newTestClient(1)
    hub.Subscribe(mine, []string{UserChannel(1)})
    hub.Subscribe(theirs, []string{UserChannel(2)})

    hub.NotifyUser(context.Background(), 1, EventMessagesUpdated)

    require.Len(t, mine.Outbound, 1)
    msg := <-mine.Outbound
    assert.Equal(t, "user:1", msg.Channel)
    assert.Equal(t, Event{Type: EventMessagesUpdated}, msg.Data)
    assert.Len(t, theirs.Outbound, 0)
}

func TestBroadcastDropsWhenBufferFull(t *testing.T) {
    hub := NewHub(logger.NewNop())
    c := newTestClient(1)
    hub.Subscribe(c, []string{UserChannel(1)})

    hub.NotifyUser(context.Background(), 1, EventSymptomsUpdated)
    hub.NotifyUser(context.Background(), 1, EventSymptomsUpdated)

    assert.Len(t, c.Outbound, 1)
}

func TestUnsubscribeRemovesEmptyChannels(t *testing.T) {
    hub := NewHub(logger.NewNop())
    c := newTestClient(1)
    hub.Subscribe(c, []string{UserChannel(1)})
    assert.Equal(t, 1, hub.Subscribers(UserChannel(1)))

    hub.Unsubscribe(c)
    assert.Equal(t, 0, hub.Subscribers(UserChannel(1)))

    // no subscribers left: must not block or panic
    hub.NotifyUser(context.Background(), 1, EventMessagesUpdated)
}

func TestShutdownIsIdempotent(t *testing.T) {
    hub := NewHub(logger.NewNop())
    hub.Shutdown()
    hub.Shutdown()
    select {
    case <-hub.done:
    default:
        t.Fatal("done channel not closed")
    }
}
