package socket

import (
    "context"
    "strconv"
    "sync"

    "github.com/google/uuid"

    "github.com/asthmaai/asthmaai-backend/internal/logger"
)

const (
    EventMessagesUpdated = "messages.updated"
    EventSymptomsUpdated = "symptoms.updated"
)

type Message struct {
    Channel string      `json:"channel"`
    Data    interface{} `json:"data"`
}

type Event struct {
    Type    string      `json:"type"`
}

// Notifier tells a user's open clients that their data changed.
type Notifier interface {
    NotifyUser(ctx context.Context, userID int, eventType string)
}

type Hub struct {
    log       *logger.Logger
    mu        sync.RWMutex
    channels  map[string]map[uuid.UUID]*Client
    done      chan struct{}
    doneOnce  sync.Once
}

func NewHub(log *logger.Logger) *Hub {
    return &Hub{
        log:       log.With("component", "SocketHub"),
        channels:  make(map[string]map[uuid.UUID]*Client),
        done:      make(chan struct{}),
    }
}

// Shutdown makes every running client send a close frame and exit.
func (h *Hub) Shutdown() {
    h.doneOnce.Do(func() {
        close(h.done)
    })
}

func UserChannel(userID int) string {
    return "user:" + strconv.Itoa(userID)
}

func (h *Hub) Subscribe(client *Client, channels []string) {
    h.mu.Lock()
    defer h.mu.Unlock()

    for _, ch := range channels {
        if h.channels[ch] == nil {
            h.channels[ch] = make(map[uuid.UUID]*Client)
        }
        h.channels[ch][client.ID] = client
    }
    h.log.Debug("Client subscribed", "client", client.ID, "channels", channels)
}

func (h *Hub) Unsubscribe(client *Client) {
    h.mu.Lock()
    defer h.mu.Unlock()

    for ch, clientsMap := range h.channels {
        if _, ok := clientsMap[client.ID]; ok {
            delete(clientsMap, client.ID)
            if len(clientsMap) == 0 {
                delete(h.channels, ch)
            }
        }
    }
    h.log.Debug("Client unsubscribed from all channels", "client", client.ID)
}

func (h *Hub) Subscribers(channel string) int {
    h.mu.RLock()
    defer h.mu.RUnlock()
    return len(h.channels[channel])
}

// Broadcast never blocks; a client with a full buffer misses the message.
func (h *Hub) Broadcast(msg Message) {
    h.mu.RLock()
    defer h.mu.RUnlock()

    clientsMap, ok := h.channels[msg.Channel]
    if !ok {
        return
    }
    for _, client := range clientsMap {
        select {
        case client.Outbound <- msg:
        default:
            h.log.Warn("Dropping message to client; outbound buffer full", "client", client.ID, "channel", msg.Channel)
        }
    }
}

func (h *Hub) NotifyUser(ctx context.Context, userID int, eventType string) {
    h.Broadcast(Message{
        Channel: UserChannel(userID),
        Data:    Event{Type: eventType},
    })
}
