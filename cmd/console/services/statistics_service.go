package services

import (
	"context"
	"time"

	"locker-console/cmd/console/clients/lockerclient"
	"locker-console/cmd/console/dto"
	"locker-console/cmd/console/validation"
)

const dateLayout = "2006-01-02"

type StatisticsInput struct {
	StartTime string `json:"startTime" validate:"required,datetime=2006-01-02"`
	EndTime   string `json:"endTime" validate:"required,datetime=2006-01-02"`
}

// StatisticsService serves the cabinet usage chart.
type StatisticsService struct {
	client *lockerclient.Client
}

func NewStatisticsService(client *lockerclient.Client) *StatisticsService {
	return &StatisticsService{client: client}
}

// Usage returns per-day usage between both bounds. Both are required and start must not be after end.
func (s *StatisticsService) Usage(ctx context.Context, in StatisticsInput) (dto.StatisticsDTO, error) {
	if err := validation.Struct(in); err != nil {
		return dto.StatisticsDTO{}, err
	}
	start, _ := time.Parse(dateLayout, in.StartTime)
	end, _ := time.Parse(dateLayout, in.EndTime)
	if start.After(end) {
		return dto.StatisticsDTO{}, validation.New("startTime", "ltefield=endTime")
	}

	points, err := s.client.Statistics(ctx, start, end)
	if err != nil {
		return dto.StatisticsDTO{}, err
	}

	out := dto.StatisticsDTO{
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Data:      make([]dto.UsagePointDTO, 0, len(points)),
	}
	for _, p := range points {
		date := p.Date
		// 백엔드가 timestamp로 줄 때도 있어 날짜만 남긴다.
		if t, err := time.Parse(time.RFC3339, date); err == nil {
			date = t.Format(dateLayout)
		}
		out.Data = append(out.Data, dto.UsagePointDTO{Date: date, UsageCount: p.UsageCount})
		out.Total += p.UsageCount
	}
	return out, nil
}
