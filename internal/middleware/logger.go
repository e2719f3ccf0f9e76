package middleware

import (
  "time"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/asthmaai/asthmaai-backend/internal/errordata"
  "github.com/asthmaai/asthmaai-backend/internal/logger"
  "github.com/asthmaai/asthmaai-backend/internal/requestdata"
)

const (
  RequestIDHeader = "X-Request-ID"
  requestIDKey    = "requestID"
)

// RequestLogger logs one line per request. Failure detail recorded by
// handlers in errordata is logged here and never sent to the client.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
  reqLog := log.With("Middleware", "RequestLogger")
  return func(c *gin.Context) {
    start := time.Now()
    requestID := c.GetHeader(RequestIDHeader)
    if requestID == "" {
      requestID = uuid.New().String()
    }
    c.Set(requestIDKey, requestID)
    c.Header(RequestIDHeader, requestID)

    c.Next()

    fields := []interface{}{
      "requestID", requestID,
      "method", c.Request.Method,
      "path", c.Request.URL.Path,
      "status", c.Writer.Status(),
      "clientIP", c.ClientIP(),
      "latency", time.Since(start).String(),
    }
    if userID := requestdata.CurrentUserID(c.Request.Context()); userID != 0 {
      fields = append(fields, "userID", userID)
    }
    if ed := errordata.GetErrorData(c.Request.Context()); ed != nil && ed.HasMessage() {
      fields = append(fields, "errorMessage", ed.Message)
      if ed.Err != nil {
        fields = append(fields, "error", ed.Err.Error())
      }
      reqLog.Warn("request failed", fields...)
      return
    }
    reqLog.Info("request", fields...)
  }
}
