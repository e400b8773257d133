package listing

import (
	"sync"
	"time"
)

type NoticeLevel string

const (
	NoticeInfo  NoticeLevel = "info"
	NoticeError NoticeLevel = "error"
)

// Notice is a non-blocking message for the operator (toast).
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
	At      time.Time   `json:"at"`
}

// NoticeBuffer keeps the most recent notices until the UI drains them.
// When full the oldest notice is dropped; Push never blocks.
type NoticeBuffer struct {
	mu    sync.Mutex
	items []Notice
	limit int
}

func NewNoticeBuffer(limit int) *NoticeBuffer {
	if limit <= 0 {
		limit = 20
	}
	return &NoticeBuffer{limit: limit}
}

func (b *NoticeBuffer) Push(level NoticeLevel, msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.items) == b.limit {
		b.items = b.items[1:]
	}
	b.items = append(b.items, Notice{Level: level, Message: msg, At: time.Now()})
}

// Drain returns the buffered notices oldest first and empties the buffer.
func (b *NoticeBuffer) Drain() []Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.items
	b.items = nil
	if out == nil {
		return []Notice{}
	}
	return out
}
