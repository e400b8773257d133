package dto

type UsagePointDTO struct {
	Date       string `json:"date" example:"2024-03-01"`
	UsageCount int64  `json:"usageCount"`
}

type StatisticsDTO struct {
	StartTime string          `json:"startTime"`
	EndTime   string          `json:"endTime"`
	Data      []UsagePointDTO `json:"data"`
	Total     int64           `json:"total"`
}
