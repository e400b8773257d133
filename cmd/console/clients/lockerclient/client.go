// Package lockerclient wraps the locker REST backend endpoints used by the console.
package lockerclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"locker-console/cmd/console/httpclient"
)

// List endpoints and the envelope key each one returns its rows under.
var (
	UsersList          = ListEndpoint{Path: "/user/all", Envelope: "users"}
	CommentsList       = ListEndpoint{Path: "/user/comment/list", Envelope: "userComments"}
	NotificationsList  = ListEndpoint{Path: "/notification/list", Envelope: "notifications"}
	CabinetsList       = ListEndpoint{Path: "/storage/list", Envelope: "cabinets"}
	CabinetSettingList = ListEndpoint{Path: "/storage/setting/get", Envelope: "settingList"}
	CategoriesList     = ListEndpoint{Path: "/storage/category/list", Envelope: "storageCategories"}
	OrdersList         = ListEndpoint{Path: "/order/all", Envelope: "orders"}
	LostItemsList      = ListEndpoint{Path: "/order/lost/all", Envelope: "orderLostItems"}
	LogisticsList      = ListEndpoint{Path: "/order/logistics/all", Envelope: "logisticsInfo"}
)

// Mutation endpoints (all POST).
const (
	PathLogin    = "/user/login"
	PathRegister = "/user/register"

	PathUserUpdate    = "/user/update"
	PathUserDelete    = "/user/delete"
	PathCommentDelete = "/user/comment/delete"

	PathNotificationAdd       = "/notification/add"
	PathNotificationUpdate    = "/notification/update"
	PathNotificationDelete    = "/notification/delete"
	PathNotificationPublish   = "/notification/publish"
	PathNotificationUnpublish = "/notification/unpublish"

	PathCabinetAdd     = "/storage/add"
	PathCabinetUpdate  = "/storage/update"
	PathCabinetDelete  = "/storage/delete"
	PathSettingUpdate  = "/storage/setting/update"
	PathCategoryAdd    = "/storage/category/add"
	PathCategoryUpdate = "/storage/category/update"
	PathCategoryDelete = "/storage/category/delete"

	PathOrderAdd         = "/order/add"
	PathLostItemOperate  = "/order/lost/operate"
	PathLogisticsOperate = "/order/logistics/operate"
	PathOrderStatistical = "/order/statistical"
	statisticsDateLayout = "2006-01-02"
)

var (
	ErrMutationRejected = errors.New("mutation_rejected")
	ErrMissingEnvelope  = errors.New("missing_list_envelope")
)

type ListEndpoint struct {
	Path     string
	Envelope string
}

// ListResult is one server page of rows.
type ListResult[T any] struct {
	Items []T
	Total int
}

type Client struct {
	http *httpclient.Client
}

func New(c *httpclient.Client) *Client {
	return &Client{http: c}
}

// List fetches one page from a list endpoint and unwraps {<envelope>: [...], total: n}.
// A missing total falls back to the number of returned rows.
func List[T any](ctx context.Context, c *Client, ep ListEndpoint, query url.Values) (ListResult[T], error) {
	raw, err := c.http.Do(ctx, httpclient.Request{Method: http.MethodGet, Path: ep.Path, Query: query})
	if err != nil {
		return ListResult[T]{}, err
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err != nil {
		return ListResult[T]{}, fmt.Errorf("decode %s: %w", ep.Path, err)
	}
	rows, ok := body[ep.Envelope]
	if !ok {
		return ListResult[T]{}, fmt.Errorf("%w: %s has no %q", ErrMissingEnvelope, ep.Path, ep.Envelope)
	}

	var out ListResult[T]
	if !isNull(rows) {
		if err := json.Unmarshal(rows, &out.Items); err != nil {
			return ListResult[T]{}, fmt.Errorf("decode %s.%s: %w", ep.Path, ep.Envelope, err)
		}
	}
	if t, ok := body["total"]; ok && !isNull(t) {
		if err := json.Unmarshal(t, &out.Total); err != nil {
			return ListResult[T]{}, fmt.Errorf("decode %s.total: %w", ep.Path, err)
		}
	} else {
		out.Total = len(out.Items)
	}
	return out, nil
}

// Mutate posts body to path and checks the success sentinel.
// The backend answers 1/true (or an object/empty body) on success, 0/false when it refused.
func (c *Client) Mutate(ctx context.Context, path string, body any) error {
	raw, err := c.http.Do(ctx, httpclient.Request{Method: http.MethodPost, Path: path, Body: body})
	if err != nil {
		return err
	}
	switch string(bytes.TrimSpace(raw)) {
	case "0", "false":
		return fmt.Errorf("%w: %s", ErrMutationRejected, path)
	}
	return nil
}

func (c *Client) Login(ctx context.Context, accountName, password string) (LoginResult, error) {
	return httpclient.DoJSON[LoginResult](ctx, c.http, httpclient.Request{
		Method: http.MethodPost,
		Path:   PathLogin,
		Body:   map[string]string{"accountName": accountName, "password": password},
	})
}

// Statistics returns per-day cabinet usage between start and end (inclusive).
func (c *Client) Statistics(ctx context.Context, start, end time.Time) ([]UsagePoint, error) {
	q := url.Values{}
	q.Set("StartTime", start.Format(statisticsDateLayout))
	q.Set("EndTime", end.Format(statisticsDateLayout))

	resp, err := httpclient.DoJSON[struct {
		Data []UsagePoint `json:"data"`
	}](ctx, c.http, httpclient.Request{Method: http.MethodGet, Path: PathOrderStatistical, Query: q})
	if err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return []UsagePoint{}, nil
	}
	return resp.Data, nil
}

func isNull(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || string(t) == "null"
}
