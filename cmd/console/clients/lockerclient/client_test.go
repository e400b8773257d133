package lockerclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locker-console/cmd/console/httpclient"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	base := httpclient.NewBaseClientWithClient(httpclient.New(httpclient.Config{Timeout: 2 * time.Second}), srv.URL+"/api")
	return New(httpclient.NewClient(base, nil, ""))
}

func TestListUnwrapsEnvelope(t *testing.T) {
	var query url.Values
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/user/all", r.URL.Path)
		query = r.URL.Query()
		_, _ = io.WriteString(w, `{"users":[{"id":5,"accountName":"alice","nickName":"Alice","roleType":"Ordinary"}],"total":1}`)
	})

	q := url.Values{}
	q.Set("pageIndex", "1")
	q.Set("pageSize", "10")
	q.Set("accountName", "alice")

	res, err := List[User](context.Background(), c, UsersList, q)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "alice", res.Items[0].AccountName)
	assert.Equal(t, "5", res.Items[0].RecordKey())
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, "alice", query.Get("accountName"))
}

func TestListWithoutTotalFallsBackToRowCount(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"settingList":[{"id":1,"size":"Small","dateType":"OneWeek","price":3.5},{"id":2,"size":"Large","dateType":"OneMonth","price":20}]}`)
	})

	res, err := List[CabinetSetting](context.Background(), c, CabinetSettingList, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.InDelta(t, 3.5, res.Items[0].Price, 0.0001)
}

func TestListNullRowsIsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"orders":null,"total":0}`)
	})

	res, err := List[Order](context.Background(), c, OrdersList, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Zero(t, res.Total)
}

func TestListMissingEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"rows":[],"total":0}`)
	})

	_, err := List[Cabinet](context.Background(), c, CabinetsList, nil)
	require.ErrorIs(t, err, ErrMissingEnvelope)
}

func TestMutateSentinel(t *testing.T) {
	testCases := []struct {
		name    string
		body    string
		wantErr error
	}{
		{name: "one", body: "1"},
		{name: "true", body: "true"},
		{name: "empty body", body: ""},
		{name: "object", body: `{"id":3}`},
		{name: "zero", body: "0", wantErr: ErrMutationRejected},
		{name: "false", body: " false\n", wantErr: ErrMutationRejected},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				_, _ = io.WriteString(w, testCase.body)
			})
			err := c.Mutate(context.Background(), PathCabinetDelete, map[string]int64{"id": 1})
			if testCase.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.True(t, errors.Is(err, testCase.wantErr), "got %v", err)
		})
	}
}

func TestMutatePropagatesHTTPError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	})

	err := c.Mutate(context.Background(), PathUserDelete, map[string]int64{"id": 1})
	assert.Equal(t, http.StatusForbidden, httpclient.StatusOf(err))
}

func TestStatisticsSendsDateRange(t *testing.T) {
	var query url.Values
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		_, _ = io.WriteString(w, `{"data":[{"date":"2024-03-01","usageCount":4}]}`)
	})

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)
	points, err := c.Statistics(context.Background(), start, end)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.EqualValues(t, 4, points[0].UsageCount)
	assert.Equal(t, "2024-03-01", query.Get("StartTime"))
	assert.Equal(t, "2024-03-07", query.Get("EndTime"))
}

func TestLogin(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/user/login", r.URL.Path)
		_, _ = io.WriteString(w, `{"token":"jwt-token","user":{"id":1,"accountName":"admin","roleType":"Admin"}}`)
	})

	res, err := c.Login(context.Background(), "admin", "pw")
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", res.Token)
	assert.Equal(t, "Admin", res.User.RoleType)
}
