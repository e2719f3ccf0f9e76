package requestdata

import (
  "context"
)

type key struct{}

var requestDataKey key

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
  return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
  val := ctx.Value(requestDataKey)
  if rd, ok := val.(*RequestData); ok {
    return rd
  }
  return nil
}

type RequestData struct {
  TokenString     string
  SessionID       string
  UserID          int
}

// IsAuthenticated reports whether the request carries a resolved user.
func IsAuthenticated(ctx context.Context) bool {
  rd := GetRequestData(ctx)
  return rd != nil && rd.UserID > 0
}

// CurrentUserID returns 0 when the request is unauthenticated.
func CurrentUserID(ctx context.Context) int {
  if rd := GetRequestData(ctx); rd != nil {
    return rd.UserID
  }
  return 0
}
