package errordata

import (
	"context"
)

type key struct{}

var errorDataKey key

// ErrorData carries the internal failure detail of a request so it can be
// logged without being sent to the client.
type ErrorData struct {
	Message string
	Err     error
}

func WithErrorData(ctx context.Context) context.Context {
	ed := &ErrorData{ Message: "" }
	return context.WithValue(ctx, errorDataKey, ed)
}

func GetErrorData(ctx context.Context) *ErrorData {
	val := ctx.Value(errorDataKey)
	ed, ok := val.(*ErrorData)
	if !ok {
		return nil
	}
	return ed
}

func (ed *ErrorData) SetError(msg string, err error) {
	ed.Message = msg
	ed.Err = err
}

func (ed *ErrorData) HasMessage() bool {
	return ed.Message != ""
}

// Record is a nil-safe SetError on the ErrorData in ctx.
func Record(ctx context.Context, msg string, err error) {
	if ed := GetErrorData(ctx); ed != nil {
		ed.SetError(msg, err)
	}
}
