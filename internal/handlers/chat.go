package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/asthmaai/asthmaai-backend/internal/errordata"
  "github.com/asthmaai/asthmaai-backend/internal/services"
)

type ChatHandler struct {
  chatService     services.ChatService
}

func NewChatHandler(chatService services.ChatService) *ChatHandler {
  return &ChatHandler{chatService: chatService}
}

// isBot is accepted for compatibility and ignored; the caller always authors
// the user side of a turn.
type messageRequest struct {
  Content     *string   `json:"content" binding:"required"`
  IsBot       *bool     `json:"isBot"`
}

func (ch *ChatHandler) SendMessage(c *gin.Context) {
  var req messageRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid message format"})
    return
  }
  ctx := c.Request.Context()
  botMessage, err := ch.chatService.SendMessage(ctx, *req.Content)
  if err != nil {
    if isInvalidInput(err) {
      c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid message format"})
      return
    }
    errordata.Record(ctx, "Failed to process chat message", err)
    c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to process chat message"})
    return
  }
  c.JSON(http.StatusOK, botMessage)
}

func (ch *ChatHandler) GetMessages(c *gin.Context) {
  ctx := c.Request.Context()
  messages, err := ch.chatService.GetMessages(ctx)
  if err != nil {
    errordata.Record(ctx, "Failed to fetch messages", err)
    c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch messages"})
    return
  }
  c.JSON(http.StatusOK, messages)
}
