package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"locker-console/cmd/console/dto"
	"locker-console/cmd/console/httpclient"
	"locker-console/cmd/console/services"
)

// LoginHandler godoc
// @Summary      운영자 로그인
// @Description  백엔드 /user/login 으로 토큰을 발급받아 세션에 저장합니다. 모든 페이지 목록이 초기화됩니다.
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LoginRequestDTO  true  "계정 정보"
// @Success      200   {object}  dto.SessionDTO
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Failure      401   {object}  dto.ErrorResponseDTO
// @Router       /console/session [post]
func LoginHandler(authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.LoginRequestDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid_request"})
			return
		}

		sess, err := authSvc.Login(c.Request.Context(), req.AccountName, req.Password)
		if err != nil {
			switch httpclient.StatusOf(err) {
			case http.StatusUnauthorized, http.StatusForbidden:
				_ = c.Error(err)
				c.JSON(http.StatusUnauthorized, dto.ErrorResponseDTO{Error: "invalid_credentials"})
			default:
				writeError(c, err)
			}
			return
		}
		c.JSON(http.StatusOK, sess)
	}
}

// GetSessionHandler godoc
// @Summary      현재 세션 조회
// @Description  로그인한 운영자와 토큰 만료 시각(서명 검증 없이 읽은 값)을 반환합니다.
// @Tags         session
// @Produce      json
// @Success      200  {object}  dto.SessionDTO
// @Failure      401  {object}  dto.LoginRequiredResponseDTO
// @Router       /console/session [get]
func GetSessionHandler(authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := authSvc.Current()
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, sess)
	}
}

// LogoutHandler godoc
// @Summary      로그아웃
// @Tags         session
// @Produce      json
// @Success      200  {object}  dto.MessageResponseDTO
// @Router       /console/session [delete]
func LogoutHandler(authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authSvc.Logout(c.Request.Context()); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.MessageResponseDTO{Message: "logged out"})
	}
}
