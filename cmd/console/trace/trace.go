// Package trace carries the console request ID, and the sequence of backend
// calls made while serving it, through the request context.
package trace

import (
	"context"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

const (
	HeaderRequestID = "X-Request-Id"
	HeaderSpanID    = "X-Span-Id"
)

// 외부에서 넘어온 request id 가 이보다 길면 새로 발급한다.
const maxRequestIDLen = 128

type ctxKey struct{}

// Info is the trace state of one console request. Each backend call made on
// its behalf takes the next span number: 1, 2, 3, ...
type Info struct {
	RequestID string
	calls     atomic.Int64
}

// Span is the number of the last backend call, "0" before the first.
func (i *Info) Span() string {
	return strconv.FormatInt(i.calls.Load(), 10)
}

func (i *Info) nextSpan() string {
	return strconv.FormatInt(i.calls.Add(1), 10)
}

func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Start attaches a trace to ctx, keeping incoming when it is a usable ID.
func Start(ctx context.Context, incoming string) (context.Context, *Info) {
	id := strings.TrimSpace(incoming)
	if id == "" || len(id) > maxRequestIDLen {
		id = NewID()
	}
	info := &Info{RequestID: id}
	return context.WithValue(ctx, ctxKey{}, info), info
}

func from(ctx context.Context) *Info {
	if ctx == nil {
		return nil
	}
	info, _ := ctx.Value(ctxKey{}).(*Info)
	return info
}

func RequestIDFromContext(ctx context.Context) string {
	if info := from(ctx); info != nil {
		return info.RequestID
	}
	return ""
}

func CurrentSpanID(ctx context.Context) string {
	if info := from(ctx); info != nil {
		return info.Span()
	}
	return "0"
}

// NextSpanID reserves the next span for an outbound call. Calls made outside a
// console request (startup, background refresh) get a fresh ID and span 1.
func NextSpanID(ctx context.Context) (requestID, spanID string) {
	if info := from(ctx); info != nil {
		return info.RequestID, info.nextSpan()
	}
	return NewID(), "1"
}
