package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"locker-console/internal/logger"
)

const (
	HeaderAuthorization = "Authorization"
	HeaderUserID        = "userId"
	HeaderSourceSystem  = "Source_System"

	DefaultSourceSystem = "Backstage"

	maxErrorBody    = 2048
	maxResponseBody = 8 << 20
)

// Credentials는 요청 시점에 세션에서 읽어오는 인증 정보다. 클라이언트는 세션을 변경하지 않는다.
type Credentials interface {
	Token() string
	UserID() string
}

// Request는 백엔드 호출 하나를 기술한다. Path는 base URL 기준 상대 경로다.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    any
	Headers map[string]string
}

// Client는 프로세스 전역에서 공유되는 락커 백엔드 클라이언트다.
type Client struct {
	base         *BaseClient
	creds        Credentials
	sourceSystem string
}

func NewClient(base *BaseClient, creds Credentials, sourceSystem string) *Client {
	if sourceSystem == "" {
		sourceSystem = DefaultSourceSystem
	}
	return &Client{base: base, creds: creds, sourceSystem: sourceSystem}
}

// Do는 요청을 실행하고 응답 바디(JSON payload)만 반환한다.
// 실패는 여기서 한 번 로깅한 뒤 HTTPError / NetworkError 로 반환한다.
func (c *Client) Do(ctx context.Context, r Request) (json.RawMessage, error) {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if r.Body != nil {
		b, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := c.base.NewRequest(ctx, method, r.Path, r.Query, body)
	if err != nil {
		return nil, err
	}
	c.decorate(req, r.Headers)

	resp, err := c.base.HTTPClient.Do(req)
	if err != nil {
		nerr := &NetworkError{Method: method, Path: r.Path, Err: err}
		logger.ErrorWithFields("locker-api no response", logger.Fields{
			"method": method,
			"path":   r.Path,
			"error":  err.Error(),
		})
		return nil, nerr
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		herr := &HTTPError{Method: method, Path: r.Path, Status: resp.StatusCode, Body: string(b)}
		logger.ErrorWithFields("locker-api error response", logger.Fields{
			"method": method,
			"path":   r.Path,
			"status": resp.StatusCode,
			"body":   herr.Body,
		})
		return nil, herr
	}

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		nerr := &NetworkError{Method: method, Path: r.Path, Err: err}
		logger.ErrorWithFields("locker-api read body failed", logger.Fields{
			"method": method,
			"path":   r.Path,
			"error":  err.Error(),
		})
		return nil, nerr
	}
	return json.RawMessage(payload), nil
}

func (c *Client) decorate(req *http.Request, extra map[string]string) {
	req.Header.Set("Accept", "application/json")
	if c.creds != nil {
		if token := c.creds.Token(); token != "" {
			req.Header.Set(HeaderAuthorization, "Bearer "+token)
		}
		if uid := c.creds.UserID(); uid != "" {
			req.Header.Set(HeaderUserID, uid)
		}
	}
	if req.Method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(HeaderSourceSystem, c.sourceSystem)
	} else if req.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range extra {
		req.Header.Set(k, v)
	}
}

// DoJSON은 Do 결과를 T로 디코딩한다.
func DoJSON[T any](ctx context.Context, c *Client, r Request) (T, error) {
	var out T
	raw, err := c.Do(ctx, r)
	if err != nil {
		return out, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode %s %s: %w", r.Method, r.Path, err)
	}
	return out, nil
}
