package dto

import "encoding/json"

type MutationRequestDTO struct {
	ID         string          `json:"id"`
	Kind       string          `json:"kind" binding:"required" example:"transition"`
	Transition string          `json:"transition,omitempty" example:"publish"`
	RecordKey  string          `json:"recordKey,omitempty" example:"12"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}

// MutationResponseDTO는 디스패치 결과와, 성공 시 재조회된 페이지를 담는다.
type MutationResponseDTO struct {
	RequestID string            `json:"requestId"`
	Result    string            `json:"result"`
	Error     string            `json:"error,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
	View      PageViewDTO       `json:"view"`
}
