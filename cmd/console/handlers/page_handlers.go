package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"locker-console/cmd/console/dto"
	"locker-console/cmd/console/listing"
	"locker-console/cmd/console/mutation"
	"locker-console/cmd/console/services"
	"locker-console/cmd/console/status"
)

// pageFromPath 는 :page 파라미터로 페이지를 찾는다. 없으면 404 를 쓰고 false.
func pageFromPath(c *gin.Context, pages *services.PageRegistry) (services.Page, bool) {
	name := c.Param("page")
	p, ok := pages.Get(name)
	if !ok {
		writeUnknownPage(c, name)
		return nil, false
	}
	return p, true
}

// ListPagesHandler godoc
// @Summary      페이지 카탈로그
// @Description  콘솔 메뉴 순서대로 페이지, 필터 키, 지원 변경 작업, 기본 page size 를 반환합니다.
// @Tags         pages
// @Produce      json
// @Success      200  {array}  dto.PageInfoDTO
// @Router       /console/pages [get]
func ListPagesHandler(pages *services.PageRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, pages.Catalogue())
	}
}

// GetPageHandler godoc
// @Summary      페이지 조회
// @Description  현재 쿼리, 상태, 행, 행별 액션, 대기 중인 알림을 반환합니다. 처음 열 때(idle) 한 번 조회합니다.
// @Tags         pages
// @Produce      json
// @Param        page  path      string  true  "페이지 이름"
// @Success      200   {object}  dto.PageViewDTO
// @Failure      404   {object}  dto.ErrorResponseDTO
// @Router       /console/pages/{page} [get]
func GetPageHandler(pages *services.PageRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := pageFromPath(c, pages)
		if !ok {
			return
		}
		view := p.View()
		if view.State == listing.Idle {
			view = p.Reload(c.Request.Context())
		}
		c.JSON(http.StatusOK, view)
	}
}

// ReloadPageHandler godoc
// @Summary      페이지 재조회
// @Tags         pages
// @Produce      json
// @Param        page  path      string  true  "페이지 이름"
// @Success      200   {object}  dto.PageViewDTO
// @Router       /console/pages/{page}/reload [post]
func ReloadPageHandler(pages *services.PageRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := pageFromPath(c, pages)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, p.Reload(c.Request.Context()))
	}
}

// SetFiltersHandler godoc
// @Summary      필터 변경
// @Description  부분 필터를 병합합니다. null 또는 빈 값은 해당 필터를 제거합니다. 페이지는 1로 돌아갑니다.
// @Tags         pages
// @Accept       json
// @Produce      json
// @Param        page  path      string                    true  "페이지 이름"
// @Param        body  body      dto.SetFiltersRequestDTO  true  "필터"
// @Success      200   {object}  dto.PageViewDTO
// @Failure      400   {object}  dto.ValidationErrorResponseDTO
// @Router       /console/pages/{page}/filters [put]
func SetFiltersHandler(pages *services.PageRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := pageFromPath(c, pages)
		if !ok {
			return
		}
		var req dto.SetFiltersRequestDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid_request"})
			return
		}
		view, err := p.SetFilters(c.Request.Context(), req.Filters)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// SetPaginationHandler godoc
// @Summary      페이지 이동
// @Description  필터는 유지하고 index/size 를 바꿉니다. index >= 1, 1 <= size <= 500.
// @Tags         pages
// @Accept       json
// @Produce      json
// @Param        page  path      string                 true  "페이지 이름"
// @Param        body  body      dto.SetPageRequestDTO  true  "페이지네이션"
// @Success      200   {object}  dto.PageViewDTO
// @Failure      400   {object}  dto.ValidationErrorResponseDTO
// @Router       /console/pages/{page}/pagination [put]
func SetPaginationHandler(pages *services.PageRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := pageFromPath(c, pages)
		if !ok {
			return
		}
		var req dto.SetPageRequestDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid_request"})
			return
		}
		view, err := p.SetPage(c.Request.Context(), req.Index, req.Size)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// SetSortHandler godoc
// @Summary      정렬 변경
// @Description  field 가 비어 있으면 정렬을 해제합니다. 페이지는 1로 돌아갑니다. 카탈로그의 sorts 에 없는 field 는 400.
// @Tags         pages
// @Accept       json
// @Produce      json
// @Param        page  path      string                 true  "페이지 이름"
// @Param        body  body      dto.SetSortRequestDTO  true  "정렬"
// @Success      200   {object}  dto.PageViewDTO
// @Failure      400   {object}  dto.ValidationErrorResponseDTO
// @Router       /console/pages/{page}/sort [put]
func SetSortHandler(pages *services.PageRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := pageFromPath(c, pages)
		if !ok {
			return
		}
		var req dto.SetSortRequestDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid_request"})
			return
		}
		var s *listing.Sort
		if req.Field != "" {
			dir := listing.Direction(req.Direction)
			if dir == "" {
				dir = listing.Asc
			}
			s = &listing.Sort{Field: req.Field, Direction: dir}
		}
		view, err := p.SetSort(c.Request.Context(), s)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// MutatePageHandler godoc
// @Summary      변경 작업 실행
// @Description  create/update/delete/transition 을 백엔드로 보냅니다. 성공하면 페이지를 한 번 재조회해 함께 반환합니다.
// @Description  같은 id 로 다시 보낸 요청은 409 로 거절됩니다.
// @Tags         pages
// @Accept       json
// @Produce      json
// @Param        page  path      string                  true  "페이지 이름"
// @Param        body  body      dto.MutationRequestDTO  true  "변경 요청"
// @Success      200   {object}  dto.MutationResponseDTO
// @Failure      400   {object}  dto.MutationResponseDTO
// @Failure      409   {object}  dto.MutationResponseDTO
// @Failure      502   {object}  dto.MutationResponseDTO
// @Router       /console/pages/{page}/mutations [post]
func MutatePageHandler(pages *services.PageRegistry, d *mutation.Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := pageFromPath(c, pages)
		if !ok {
			return
		}
		var req dto.MutationRequestDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid_request"})
			return
		}

		out := d.Dispatch(c.Request.Context(), mutation.Request{
			ID:         req.ID,
			Page:       p.Name(),
			Kind:       mutation.Kind(req.Kind),
			Transition: status.Action(req.Transition),
			RecordKey:  req.RecordKey,
			Payload:    req.Payload,
		})

		resp := dto.MutationResponseDTO{
			RequestID: out.RequestID,
			Result:    string(out.Result),
			View:      p.View(),
		}
		if out.OK() {
			c.JSON(http.StatusOK, resp)
			return
		}

		_ = c.Error(out.Err)
		resp.Error = out.Err.Error()
		if ve := validationFields(out.Err); ve != nil {
			resp.Fields = ve
		}
		c.JSON(statusFor(out.Err), resp)
	}
}
