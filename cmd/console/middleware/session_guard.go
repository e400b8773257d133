package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"locker-console/cmd/console/dto"
)

// LoginPath 는 세션이 없을 때 안내하는 로그인 경로다.
const LoginPath = "/console/session"

// SessionChecker 는 토큰 존재 여부만 확인한다. 유효성 판단은 백엔드 몫이다.
type SessionChecker interface {
	Present() bool
}

// RequireSession 은 세션 토큰이 없으면 401 과 로그인 경로를 돌려준다.
func RequireSession(sessions SessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !sessions.Present() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.LoginRequiredResponseDTO{
				Error:    "login_required",
				Redirect: LoginPath,
			})
			return
		}
		c.Next()
	}
}
