package dto

import "time"

type LoginRequestDTO struct {
	AccountName string `json:"accountName" binding:"required"`
	Password    string `json:"password" binding:"required"`
}

type SessionUserDTO struct {
	ID          int64  `json:"id"`
	AccountName string `json:"accountName"`
	NickName    string `json:"nickName,omitempty"`
	RoleType    string `json:"roleType,omitempty"`
}

// SessionDTO는 현재 운영자 세션이다. 토큰 만료 정보는 서명 검증 없이 읽은 값이다.
type SessionDTO struct {
	User           SessionUserDTO `json:"user"`
	TokenExpiresAt *time.Time     `json:"tokenExpiresAt,omitempty"`
	TokenExpired   bool           `json:"tokenExpired"`
}
