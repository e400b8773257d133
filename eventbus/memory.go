package eventbus

import (
	"context"
	"sync"
)

// MemoryEventBus는 발행된 이벤트를 메모리에 보관합니다.
// 감사 발행이 꺼져 있을 때와 테스트에서 사용합니다.
type MemoryEventBus struct {
	mu     sync.Mutex
	events map[string][]Event
	limit  int
}

func NewMemoryEventBus(limit int) *MemoryEventBus {
	if limit <= 0 {
		limit = 100
	}
	return &MemoryEventBus{events: map[string][]Event{}, limit: limit}
}

func (m *MemoryEventBus) Publish(_ context.Context, topic Topic, event Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := append(m.events[topic.Base()], event)
	if len(list) > m.limit {
		list = list[len(list)-m.limit:]
	}
	m.events[topic.Base()] = list
	return nil
}

// Events는 토픽에 발행된 이벤트를 오래된 순서로 반환합니다.
func (m *MemoryEventBus) Events(topic Topic) []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Event(nil), m.events[topic.Base()]...)
}

func (m *MemoryEventBus) Close() {}
