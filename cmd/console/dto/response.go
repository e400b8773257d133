package dto

// ErrorResponseDTO는 공통 에러 응답 형식을 통일하기 위한 DTO이다.
type ErrorResponseDTO struct {
	Error string `json:"error" example:"invalid_token"`
}

// ValidationErrorResponseDTO는 로컬 검증 실패 응답이다. 백엔드로 전송되지 않았다.
type ValidationErrorResponseDTO struct {
	Error  string            `json:"error" example:"validation_failed"`
	Fields map[string]string `json:"fields"`
}

// LoginRequiredResponseDTO는 세션이 없을 때 로그인 경로로 안내한다.
type LoginRequiredResponseDTO struct {
	Error    string `json:"error" example:"login_required"`
	Redirect string `json:"redirect" example:"/console/session"`
}

// MessageResponseDTO는 단순 메시지 응답 형식을 통일하기 위한 DTO이다.
type MessageResponseDTO struct {
	Message string `json:"message" example:"logged out"`
}
