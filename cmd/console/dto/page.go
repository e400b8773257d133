package dto

import (
	"time"

	"locker-console/cmd/console/listing"
	"locker-console/cmd/console/status"
)

// PageInfoDTO는 페이지 카탈로그 항목이다.
type PageInfoDTO struct {
	Name            string   `json:"name" example:"notifications"`
	Title           string   `json:"title" example:"Notifications"`
	Filters         []string `json:"filters"`
	Sorts           []string `json:"sorts"`
	Mutations       []string `json:"mutations"`
	DefaultPageSize int      `json:"defaultPageSize"`
}

// RowDTO는 목록의 한 행과 그 행에서 가능한 액션이다.
type RowDTO struct {
	Key     string             `json:"key"`
	Record  any                `json:"record"`
	Actions *status.RowActions `json:"actions,omitempty"`
}

// PageViewDTO는 페이지 컨트롤러 스냅샷이다.
type PageViewDTO struct {
	Page     string           `json:"page"`
	Query    listing.Query    `json:"query"`
	State    listing.State    `json:"state"`
	Rows     []RowDTO         `json:"rows"`
	Total    int              `json:"total"`
	Error    string           `json:"error,omitempty"`
	LoadedAt *time.Time       `json:"loadedAt,omitempty"`
	Notices  []listing.Notice `json:"notices"`
}

type SetFiltersRequestDTO struct {
	Filters map[string]*string `json:"filters" binding:"required"`
}

type SetPageRequestDTO struct {
	Index int `json:"index"`
	Size  int `json:"size"`
}

// SetSortRequestDTO: field가 비어 있으면 정렬을 해제한다.
type SetSortRequestDTO struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}
