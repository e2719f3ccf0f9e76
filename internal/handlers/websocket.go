package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/gorilla/websocket"

  "github.com/asthmaai/asthmaai-backend/internal/logger"
  "github.com/asthmaai/asthmaai-backend/internal/requestdata"
  "github.com/asthmaai/asthmaai-backend/internal/socket"
)

// NewUpgrader accepts the listed origins. An empty list or "*" falls back to
// gorilla's same-origin check, since the session cookie rides along on upgrades.
func NewUpgrader(allowedOrigins []string) websocket.Upgrader {
  allowed := make(map[string]bool, len(allowedOrigins))
  for _, o := range allowedOrigins {
    allowed[o] = true
  }
  if len(allowed) == 0 || allowed["*"] {
    return websocket.Upgrader{}
  }
  return websocket.Upgrader{
    CheckOrigin: func(r *http.Request) bool {
      origin := r.Header.Get("Origin")
      return origin == "" || allowed[origin]
    },
  }
}

// WsHandler subscribes the caller to their own channel and blocks until the
// connection ends.
func WsHandler(hub *socket.Hub, upgrader websocket.Upgrader, log *logger.Logger) gin.HandlerFunc {
  wsLog := log.With("handler", "WsHandler")
  return func(c *gin.Context) {
    ctx := c.Request.Context()

    userID := requestdata.CurrentUserID(ctx)
    if userID == 0 {
      c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
      return
    }
    conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
    if err != nil {
      wsLog.Warn("Failed to upgrade to websocket", "error", err)
      return
    }
    client := socket.NewClient(conn, hub, wsLog)
    hub.Subscribe(client, []string{socket.UserChannel(userID)})

    client.Run(ctx)
  }
}
