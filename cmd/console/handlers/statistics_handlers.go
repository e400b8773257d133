package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"locker-console/cmd/console/services"
)

// GetStatisticsHandler godoc
// @Summary      캐비닛 사용 통계
// @Description  기간 내 일별 사용 횟수를 조회합니다. 두 날짜 모두 필수이며 startTime <= endTime 이어야 합니다.
// @Tags         statistics
// @Produce      json
// @Param        startTime  query     string  true  "시작일 (YYYY-MM-DD)"
// @Param        endTime    query     string  true  "종료일 (YYYY-MM-DD)"
// @Success      200        {object}  dto.StatisticsDTO
// @Failure      400        {object}  dto.ValidationErrorResponseDTO
// @Router       /console/statistics [get]
func GetStatisticsHandler(svc *services.StatisticsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		in := services.StatisticsInput{
			StartTime: c.Query("startTime"),
			EndTime:   c.Query("endTime"),
		}
		out, err := svc.Usage(c.Request.Context(), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}
