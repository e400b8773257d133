package listing

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locker-console/cmd/console/validation"
)

type row struct {
	ID   string
	Name string
}

func (r row) RecordKey() string { return r.ID }

// recordingFetcher records every query it receives and answers with respond.
type recordingFetcher struct {
	mu      sync.Mutex
	queries []Query
	respond func(call int, q Query) (Result[row], error)
}

func (f *recordingFetcher) fetch(_ context.Context, q Query) (Result[row], error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	call := len(f.queries)
	f.mu.Unlock()
	return f.respond(call, q)
}

func (f *recordingFetcher) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

func (f *recordingFetcher) last() Query {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries[len(f.queries)-1]
}

func strPtr(s string) *string { return &s }

func okRows(rows ...row) func(int, Query) (Result[row], error) {
	return func(int, Query) (Result[row], error) {
		return Result[row]{Items: rows, Total: len(rows)}, nil
	}
}

func TestSetFiltersResetsPageIndex(t *testing.T) {
	f := &recordingFetcher{respond: okRows(row{ID: "1"})}
	c := New(f.fetch, Options{Name: "users", PageSize: 10})
	ctx := context.Background()

	_, err := c.SetPage(ctx, 3, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, f.last().Page.Index)

	snap, err := c.SetFilters(ctx, map[string]*string{"accountName": strPtr("alice")})
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Query.Page.Index)
	assert.Equal(t, 1, f.last().Page.Index)
	assert.Equal(t, "alice", f.last().Filters["accountName"])
}

func TestSetPageKeepsFilters(t *testing.T) {
	f := &recordingFetcher{respond: okRows()}
	c := New(f.fetch, Options{Name: "users", PageSize: 10})
	ctx := context.Background()

	_, err := c.SetFilters(ctx, map[string]*string{"nickName": strPtr("Bob")})
	require.NoError(t, err)
	_, err = c.SetPage(ctx, 2, 20)
	require.NoError(t, err)

	q := f.last()
	assert.Equal(t, Page{Index: 2, Size: 20}, q.Page)
	assert.Equal(t, "Bob", q.Filters["nickName"])
}

func TestSetSortResetsPageIndex(t *testing.T) {
	f := &recordingFetcher{respond: okRows()}
	c := New(f.fetch, Options{Name: "cabinets", PageSize: 8})
	ctx := context.Background()

	_, err := c.SetPage(ctx, 4, 8)
	require.NoError(t, err)
	snap, err := c.SetSort(ctx, &Sort{Field: "num", Direction: Desc})
	require.NoError(t, err)

	assert.Equal(t, 1, snap.Query.Page.Index)
	require.NotNil(t, f.last().Sort)
	assert.Equal(t, "num", f.last().Sort.Field)
}

func TestInvalidPaginationNeverReachesServer(t *testing.T) {
	f := &recordingFetcher{respond: okRows()}
	c := New(f.fetch, Options{Name: "users"})

	_, err := c.SetPage(context.Background(), 0, 10)
	require.Error(t, err)
	assert.True(t, validation.Is(err))

	_, err = c.SetPage(context.Background(), 1, 0)
	assert.True(t, validation.Is(err))

	_, err = c.SetSort(context.Background(), &Sort{Field: "num", Direction: "sideways"})
	assert.True(t, validation.Is(err))

	assert.Zero(t, f.calls())
	assert.Equal(t, Idle, c.Snapshot().State)
}

func TestAliceScenario(t *testing.T) {
	f := &recordingFetcher{respond: func(_ int, q Query) (Result[row], error) {
		if q.Filters["accountName"] == "alice" {
			return Result[row]{Items: []row{{ID: "5", Name: "alice"}}, Total: 1}, nil
		}
		return Result[row]{}, nil
	}}
	c := New(f.fetch, Options{Name: "users"})
	ctx := context.Background()

	_, err := c.SetFilters(ctx, map[string]*string{"accountName": strPtr("alice")})
	require.NoError(t, err)
	snap, err := c.SetPage(ctx, 1, 10)
	require.NoError(t, err)

	assert.Equal(t, Ready, snap.State)
	assert.Len(t, snap.Items, 1)
	assert.Equal(t, 1, snap.Total)
	assert.NoError(t, snap.Err)
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	f := &recordingFetcher{respond: func(call int, q Query) (Result[row], error) {
		if call == 1 {
			close(started)
			<-release
			return Result[row]{Items: []row{{ID: "old"}}, Total: 1}, nil
		}
		return Result[row]{Items: []row{{ID: "new"}}, Total: 1}, nil
	}}
	c := New(f.fetch, Options{Name: "users"})

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Reload(context.Background())
	}()
	<-started

	snap, err := c.SetFilters(context.Background(), map[string]*string{"accountName": strPtr("bob")})
	require.NoError(t, err)
	require.Equal(t, "new", snap.Items[0].ID)

	close(release)
	<-done

	final := c.Snapshot()
	assert.Equal(t, Ready, final.State)
	require.Len(t, final.Items, 1)
	assert.Equal(t, "new", final.Items[0].ID)
}

func TestConcurrentReloadsShareOneRequest(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	f := &recordingFetcher{respond: func(int, Query) (Result[row], error) {
		once.Do(func() { close(started) })
		<-release
		return Result[row]{Items: []row{{ID: "1"}}, Total: 1}, nil
	}}
	c := New(f.fetch, Options{Name: "orders"})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.Reload(context.Background())
	}()
	<-started

	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Reload(context.Background())
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, 1, f.calls())
	assert.Equal(t, Ready, c.Snapshot().State)
}

func TestJoiningFinishedFlightDoesNotStickInLoading(t *testing.T) {
	f := &recordingFetcher{respond: okRows(row{ID: "1"})}
	c := New(f.fetch, Options{Name: "orders"})
	ctx := context.Background()

	require.Equal(t, Ready, c.Reload(ctx).State)

	// 응답은 이미 반영됐지만 flight 키가 아직 남아 있는 구간을 재현한다.
	release := make(chan struct{})
	c.group.DoChan(flightKey(0), func() (any, error) {
		<-release
		return nil, nil
	})

	done := make(chan Snapshot[row], 1)
	go func() { done <- c.Reload(ctx) }()
	require.Eventually(t, func() bool { return c.Snapshot().State == Loading }, time.Second, time.Millisecond)
	close(release)

	snap := <-done
	assert.Equal(t, Ready, snap.State)
	assert.Equal(t, Ready, c.Snapshot().State)
}

func TestConcurrentReloadsSettleReady(t *testing.T) {
	f := &recordingFetcher{respond: okRows(row{ID: "1"})}
	c := New(f.fetch, Options{Name: "orders"})

	for round := 0; round < 50; round++ {
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				c.Reload(context.Background())
			}()
		}
		wg.Wait()
		require.Equal(t, Ready, c.Snapshot().State, "round %d", round)
	}
}

func TestFailureKeepsPriorItems(t *testing.T) {
	boom := errors.New("backend down")
	f := &recordingFetcher{respond: func(call int, q Query) (Result[row], error) {
		if call == 1 {
			return Result[row]{Items: []row{{ID: "1"}, {ID: "2"}}, Total: 12}, nil
		}
		return Result[row]{}, boom
	}}
	c := New(f.fetch, Options{Name: "cabinets"})
	ctx := context.Background()

	c.Reload(ctx)
	snap := c.Reload(ctx)

	assert.Equal(t, Failed, snap.State)
	assert.ErrorIs(t, snap.Err, boom)
	assert.Len(t, snap.Items, 2)
	assert.Equal(t, 12, snap.Total)

	notices := c.Notices().Drain()
	require.Len(t, notices, 1)
	assert.Equal(t, NoticeError, notices[0].Level)
	assert.Contains(t, notices[0].Message, "backend down")
	assert.Empty(t, c.Notices().Drain())

	// 다음 성공 시 에러가 지워진다.
	f.respond = okRows(row{ID: "3"})
	snap = c.Reload(ctx)
	assert.Equal(t, Ready, snap.State)
	assert.NoError(t, snap.Err)
}

func TestRefreshIssuesExactlyOneRequest(t *testing.T) {
	f := &recordingFetcher{respond: okRows(row{ID: "1"})}
	c := New(f.fetch, Options{Name: "notifications"})
	ctx := context.Background()

	c.Reload(ctx)
	before := f.calls()
	c.Refresh(ctx)
	assert.Equal(t, before+1, f.calls())
}

func TestTotalNeverBelowItemCount(t *testing.T) {
	f := &recordingFetcher{respond: func(int, Query) (Result[row], error) {
		return Result[row]{Items: []row{{ID: "1"}, {ID: "2"}, {ID: "3"}}, Total: 1}, nil
	}}
	c := New(f.fetch, Options{Name: "orders"})

	snap := c.Reload(context.Background())
	assert.Equal(t, 3, snap.Total)
}

func TestReloadReturnsWhenCallerGivesUp(t *testing.T) {
	release := make(chan struct{})
	var fetched atomic.Bool
	f := &recordingFetcher{respond: func(int, Query) (Result[row], error) {
		<-release
		fetched.Store(true)
		return Result[row]{Items: []row{{ID: "late"}}, Total: 1}, nil
	}}
	c := New(f.fetch, Options{Name: "logistics"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	snap := c.Reload(ctx)
	assert.Equal(t, Loading, snap.State)

	close(release)
	require.Eventually(t, func() bool { return c.Snapshot().State == Ready }, time.Second, 10*time.Millisecond)
	assert.True(t, fetched.Load())
	_, ok := c.Lookup("late")
	assert.True(t, ok)
}

func TestResetReturnsToIdle(t *testing.T) {
	f := &recordingFetcher{respond: okRows(row{ID: "1"})}
	c := New(f.fetch, Options{Name: "users", PageSize: 10})
	ctx := context.Background()

	_, err := c.SetFilters(ctx, map[string]*string{"accountName": strPtr("alice")})
	require.NoError(t, err)
	c.Notices().Push(NoticeInfo, "saved")

	c.Reset()
	snap := c.Snapshot()
	assert.Equal(t, Idle, snap.State)
	assert.Empty(t, snap.Items)
	assert.Empty(t, snap.Query.Filters)
	assert.Equal(t, 10, snap.Query.Page.Size)
	assert.Empty(t, c.Notices().Drain())
}
