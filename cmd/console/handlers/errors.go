package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"locker-console/cmd/console/clients/lockerclient"
	"locker-console/cmd/console/dto"
	"locker-console/cmd/console/httpclient"
	"locker-console/cmd/console/middleware"
	"locker-console/cmd/console/mutation"
	"locker-console/cmd/console/session"
	"locker-console/cmd/console/validation"
)

// statusFor 는 서비스 에러를 콘솔 API 상태 코드로 바꾼다.
func statusFor(err error) int {
	var ve *validation.Error
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.Is(err, mutation.ErrUnsupported):
		return http.StatusBadRequest
	case errors.Is(err, mutation.ErrUnknownPage):
		return http.StatusNotFound
	case errors.Is(err, mutation.ErrActionDisabled), errors.Is(err, mutation.ErrDuplicateRequest):
		return http.StatusConflict
	case errors.Is(err, lockerclient.ErrMutationRejected):
		return http.StatusUnprocessableEntity
	case errors.Is(err, session.ErrNoSession):
		return http.StatusUnauthorized
	case httpclient.StatusOf(err) != 0:
		return http.StatusBadGateway
	case httpclient.IsNetwork(err):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// writeError 는 에러 종류에 맞는 상태 코드와 DTO 로 응답한다.
func writeError(c *gin.Context, err error) {
	_ = c.Error(err)

	var ve *validation.Error
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponseDTO{Error: "validation_failed", Fields: ve.Fields})
		return
	}
	if errors.Is(err, session.ErrNoSession) {
		c.JSON(http.StatusUnauthorized, dto.LoginRequiredResponseDTO{Error: "login_required", Redirect: middleware.LoginPath})
		return
	}
	c.JSON(statusFor(err), dto.ErrorResponseDTO{Error: err.Error()})
}

func writeUnknownPage(c *gin.Context, name string) {
	c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: "unknown_page: " + name})
}

func validationFields(err error) map[string]string {
	var ve *validation.Error
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}
