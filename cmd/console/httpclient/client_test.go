package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locker-console/cmd/console/trace"
)

type staticCreds struct{ token, uid string }

func (s staticCreds) Token() string  { return s.token }
func (s staticCreds) UserID() string { return s.uid }

func newTestClient(t *testing.T, h http.HandlerFunc, creds Credentials) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(NewBaseClientWithClient(New(Config{Timeout: 2 * time.Second}), srv.URL+"/api"), creds, "")
}

func TestDoAttachesSessionHeadersAndOmitsEmptyQuery(t *testing.T) {
	var got *http.Request
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		_, _ = io.WriteString(w, `{"users":[],"total":0}`)
	}, staticCreds{token: "tok-1", uid: "9"})

	q := url.Values{}
	q.Set("pageIndex", "1")
	q.Set("accountName", "")
	q.Set("nickName", "  ")

	raw, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/user/all", Query: q})
	require.NoError(t, err)
	assert.JSONEq(t, `{"users":[],"total":0}`, string(raw))

	require.NotNil(t, got)
	assert.Equal(t, "/api/user/all", got.URL.Path)
	assert.Equal(t, "pageIndex=1", got.URL.RawQuery)
	assert.Equal(t, "Bearer tok-1", got.Header.Get(HeaderAuthorization))
	assert.Equal(t, "9", got.Header.Get(HeaderUserID))
	assert.Empty(t, got.Header.Get(HeaderSourceSystem))
	assert.NotEmpty(t, got.Header.Get(trace.HeaderRequestID))
	assert.Equal(t, "1", got.Header.Get(trace.HeaderSpanID))
}

func TestDoPostCarriesSourceSystemAndJSONBody(t *testing.T) {
	var (
		header http.Header
		body   map[string]any
	)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Clone()
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = io.WriteString(w, `1`)
	}, nil)

	_, err := c.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/notification/publish",
		Body:   map[string]any{"id": 3},
	})
	require.NoError(t, err)
	assert.Equal(t, DefaultSourceSystem, header.Get(HeaderSourceSystem))
	assert.Equal(t, "application/json", header.Get("Content-Type"))
	assert.Empty(t, header.Get(HeaderAuthorization))
	assert.EqualValues(t, 3, body["id"])
}

func TestDoReturnsHTTPErrorForNon2xx(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = io.WriteString(w, `{"message":"cabinet in use"}`)
	}, nil)

	_, err := c.Do(context.Background(), Request{Method: http.MethodPost, Path: "/storage/delete", Body: map[string]int{"id": 1}})
	var he *HTTPError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusConflict, he.Status)
	assert.Contains(t, he.Body, "cabinet in use")
	assert.Equal(t, http.StatusConflict, StatusOf(err))
	assert.False(t, IsNetwork(err))
}

func TestDoReturnsNetworkErrorWhenNoResponse(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	c := NewClient(NewBaseClientWithClient(New(Config{Timeout: time.Second}), baseURL), nil, "")
	_, err := c.Do(context.Background(), Request{Path: "/user/all"})
	require.Error(t, err)
	assert.True(t, IsNetwork(err))
	assert.Zero(t, StatusOf(err))
}

func TestNewRequestRejectsQueryInPath(t *testing.T) {
	b := NewBaseClientWithClient(nil, "http://localhost:8080/api")
	_, err := b.NewRequest(context.Background(), http.MethodGet, "/user/all?x=1", nil, nil)
	require.Error(t, err)
}

func TestDoJSONDecodesPayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"token":"abc","user":{"id":1}}`)
	}, nil)

	type loginResp struct {
		Token string `json:"token"`
	}
	out, err := DoJSON[loginResp](context.Background(), c, Request{Method: http.MethodPost, Path: "/user/login"})
	require.NoError(t, err)
	assert.Equal(t, "abc", out.Token)
}

func TestRoundTripperIncrementsSpanWithinRequest(t *testing.T) {
	var spans []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		spans = append(spans, r.Header.Get(trace.HeaderSpanID))
		_, _ = io.WriteString(w, `{}`)
	}, nil)

	ctx, _ := trace.Start(context.Background(), "req-1")
	for i := 0; i < 3; i++ {
		_, err := c.Do(ctx, Request{Path: "/order/all"})
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"1", "2", "3"}, spans)
}
