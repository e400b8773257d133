package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// Topic은 토픽의 기본 이름과 DLQ 토픽 이름을 관리합니다.
type Topic struct {
	base string
}

func NewTopic(base string) Topic {
	return Topic{base: base}
}

func (t Topic) Base() string {
	return t.base
}

// DLQ는 발행에 실패한 이벤트를 보관하는 토픽 이름을 반환합니다 (예: my_topic.dlq).
func (t Topic) DLQ() string {
	return t.base + ".dlq"
}

// Event는 Kafka 메시지의 페이로드로 사용되는 구조체입니다.
type Event struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
	LastError  string          `json:"last_error,omitempty"`
}

// EventBus 인터페이스는 이벤트 발행의 추상화를 정의합니다.
// 콘솔은 감사 이벤트를 발행만 하고 구독하지 않습니다.
type EventBus interface {
	Publish(ctx context.Context, topic Topic, event Event) error
	Close()
}

// ErrPublishFailed는 기본 토픽과 DLQ 모두에 발행하지 못했을 때 반환되는 오류입니다.
var ErrPublishFailed = errors.New("이벤트 발행 실패")
