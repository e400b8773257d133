package httpclient

import (
	"errors"
	"fmt"
)

// HTTPError는 백엔드가 2xx 이외의 상태로 응답한 경우다.
type HTTPError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("locker-api %s %s: status=%d body=%s", e.Method, e.Path, e.Status, e.Body)
}

// NetworkError는 응답을 받지 못한 경우다 (연결 실패, 타임아웃 등).
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("locker-api %s %s: no response: %v", e.Method, e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// StatusOf는 err 체인에서 HTTPError를 찾아 상태 코드를 반환한다. 없으면 0.
func StatusOf(err error) int {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.Status
	}
	return 0
}

func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}
