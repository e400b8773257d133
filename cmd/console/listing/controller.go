// Package listing implements the paginated list controller shared by every console page.
//
// A Controller owns one page's QueryState and the last snapshot loaded for it.
// Every change to the query bumps a sequence number; a response is applied only
// when it was issued for the current sequence, so late responses for an older
// query are dropped. Concurrent reloads for the same sequence share one backend
// request.
package listing

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"locker-console/internal/logger"
)

type State string

const (
	Idle    State = "idle"
	Loading State = "loading"
	Ready   State = "ready"
	Failed  State = "failed"
)

// Record is a row with a stable key.
type Record interface {
	RecordKey() string
}

// Result is one server page.
type Result[T any] struct {
	Items []T
	Total int
}

// Fetcher loads one page for q from the backend.
type Fetcher[T Record] func(ctx context.Context, q Query) (Result[T], error)

// Snapshot is a consistent copy of the controller state.
type Snapshot[T Record] struct {
	Query    Query     `json:"query"`
	State    State     `json:"state"`
	Items    []T       `json:"items"`
	Total    int       `json:"total"`
	Err      error     `json:"-"`
	LoadedAt time.Time `json:"loadedAt,omitempty"`
}

type Options struct {
	Name         string
	PageSize     int
	FetchTimeout time.Duration
	NoticeBuffer int
}

type Controller[T Record] struct {
	name    string
	fetch   Fetcher[T]
	timeout time.Duration
	group   singleflight.Group
	notices *NoticeBuffer

	mu       sync.RWMutex
	query    Query
	seq      uint64
	state    State
	items    []T
	total    int
	err      error
	loadedAt time.Time

	// inflight counts running fetches; settled is the state the last applied response left.
	inflight int
	settled  State
}

func New[T Record](fetch Fetcher[T], opts Options) *Controller[T] {
	size := opts.PageSize
	if size <= 0 {
		size = 10
	}
	timeout := opts.FetchTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Controller[T]{
		name:    opts.Name,
		fetch:   fetch,
		timeout: timeout,
		notices: NewNoticeBuffer(opts.NoticeBuffer),
		query:   NewQuery(size),
		state:   Idle,
		items:   []T{},
	}
}

func (c *Controller[T]) Name() string { return c.name }

// Snapshot returns the current state without triggering a load.
func (c *Controller[T]) Snapshot() Snapshot[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Snapshot[T]{
		Query:    c.query.clone(),
		State:    c.state,
		Items:    slices.Clone(c.items),
		Total:    c.total,
		Err:      c.err,
		LoadedAt: c.loadedAt,
	}
}

// Lookup finds a row of the current snapshot by key.
func (c *Controller[T]) Lookup(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, it := range c.items {
		if it.RecordKey() == key {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func (c *Controller[T]) Notices() *NoticeBuffer { return c.notices }

// Reload loads the current QueryState. Calls issued while a request for the
// same state is in flight join it. If ctx ends first the request keeps running
// and its result is still applied; the caller just gets the snapshot as it is.
func (c *Controller[T]) Reload(ctx context.Context) Snapshot[T] {
	c.mu.Lock()
	q := c.query.clone()
	seq := c.seq
	c.state = Loading
	c.mu.Unlock()

	ch := c.group.DoChan(flightKey(seq), func() (any, error) {
		c.mu.Lock()
		c.inflight++
		c.mu.Unlock()

		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		res, err := c.fetch(fctx, q)
		c.apply(seq, res, err)
		return nil, nil
	})

	select {
	case <-ch:
		c.settle(seq)
	case <-ctx.Done():
		go func() {
			<-ch
			c.settle(seq)
		}()
	}
	return c.Snapshot()
}

func flightKey(seq uint64) string { return strconv.FormatUint(seq, 10) }

// settle runs after the joined flight has finished. A caller that joined a flight
// which had already applied its response marked Loading after the fact; put back
// the applied state unless another fetch for the same query is running.
func (c *Controller[T]) settle(seq uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seq == seq && c.state == Loading && c.inflight == 0 && c.settled != "" {
		c.state = c.settled
	}
}

// Invalidate makes any in-flight response stale so the next Reload issues a
// fresh request for the current QueryState.
func (c *Controller[T]) Invalidate() {
	c.mu.Lock()
	c.seq++
	c.mu.Unlock()
}

// Reset drops the loaded rows and returns to Idle, keeping the page size.
// In-flight responses are discarded. Used when the operator logs out.
func (c *Controller[T]) Reset() {
	c.mu.Lock()
	c.seq++
	c.query = NewQuery(c.query.Page.Size)
	c.state = Idle
	c.settled = ""
	c.items = []T{}
	c.total = 0
	c.err = nil
	c.loadedAt = time.Time{}
	c.mu.Unlock()
	c.notices.Drain()
}

// Refresh is Invalidate followed by Reload. Used after a confirmed mutation.
func (c *Controller[T]) Refresh(ctx context.Context) Snapshot[T] {
	c.Invalidate()
	return c.Reload(ctx)
}

// SetFilters merges partial into the filters, resets to page 1 and reloads.
func (c *Controller[T]) SetFilters(ctx context.Context, partial map[string]*string) (Snapshot[T], error) {
	return c.update(ctx, func(q Query) Query { return q.WithFilters(partial) })
}

// SetPage replaces pagination, keeps filters and reloads.
func (c *Controller[T]) SetPage(ctx context.Context, index, size int) (Snapshot[T], error) {
	return c.update(ctx, func(q Query) Query { return q.WithPage(index, size) })
}

// SetSort replaces ordering, resets to page 1 and reloads.
func (c *Controller[T]) SetSort(ctx context.Context, s *Sort) (Snapshot[T], error) {
	return c.update(ctx, func(q Query) Query { return q.WithSort(s) })
}

func (c *Controller[T]) update(ctx context.Context, fn func(Query) Query) (Snapshot[T], error) {
	c.mu.Lock()
	next := fn(c.query)
	if err := next.Validate(); err != nil {
		c.mu.Unlock()
		return c.Snapshot(), err
	}
	c.query = next
	c.seq++
	c.mu.Unlock()
	return c.Reload(ctx), nil
}

func (c *Controller[T]) apply(seq uint64, res Result[T], err error) {
	c.mu.Lock()
	c.inflight--
	if seq != c.seq {
		current := c.seq
		c.mu.Unlock()
		logger.DebugWithFields("list response discarded", logger.Fields{
			"page":        c.name,
			"seq":         seq,
			"current_seq": current,
		})
		return
	}

	if err != nil {
		// 마지막으로 성공한 목록은 유지한다.
		c.err = err
		c.state = Failed
		c.settled = Failed
		c.mu.Unlock()
		c.notices.Push(NoticeError, fmt.Sprintf("failed to load %s: %v", c.name, err))
		return
	}

	items := res.Items
	if items == nil {
		items = []T{}
	}
	c.items = items
	c.total = max(res.Total, len(items))
	c.err = nil
	c.state = Ready
	c.settled = Ready
	c.loadedAt = time.Now()
	c.mu.Unlock()
}
