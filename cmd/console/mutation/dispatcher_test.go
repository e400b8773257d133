package mutation

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"locker-console/cmd/console/listing"
	"locker-console/cmd/console/status"
	"locker-console/cmd/console/validation"
	"locker-console/eventbus"
)

type notePayload struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content"`
}

type fakeTarget struct {
	mu        sync.Mutex
	published map[string]bool
	refreshes int
	notices   []listing.NoticeLevel
	messages  []string
}

func newFakeTarget() *fakeTarget {
	return &fakeTarget{published: map[string]bool{"1": false, "2": true}}
}

func (f *fakeTarget) Name() string { return "notifications" }

func (f *fakeTarget) Prepare(req Request) (Call, error) {
	switch req.Kind {
	case Create:
		p, err := DecodePayload[notePayload](req.Payload)
		if err != nil {
			return Call{}, err
		}
		return Call{Path: "/notification/add", Body: p}, nil
	case Transition:
		return Call{Path: "/notification/" + string(req.Transition), Body: map[string]string{"id": req.RecordKey}}, nil
	case Delete:
		return Call{Path: "/notification/delete", Body: map[string]string{"id": req.RecordKey}}, nil
	}
	return Call{}, ErrUnsupported
}

func (f *fakeTarget) CheckAction(key string, action status.Action) (status.State, bool, error) {
	pub, ok := f.published[key]
	if !ok || !status.Notification.Governs(action) {
		return "", false, nil
	}
	next, err := status.Notification.Next(status.NotificationState(pub), action)
	return next, true, err
}

func (f *fakeTarget) Refresh(context.Context) {
	f.mu.Lock()
	f.refreshes++
	f.mu.Unlock()
}

func (f *fakeTarget) Notify(level listing.NoticeLevel, msg string) {
	f.mu.Lock()
	f.notices = append(f.notices, level)
	f.messages = append(f.messages, msg)
	f.mu.Unlock()
}

type fakeExecutor struct {
	mu    sync.Mutex
	paths []string
	err   error
}

func (f *fakeExecutor) Mutate(_ context.Context, path string, _ any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paths = append(f.paths, path)
	return f.err
}

func TestSuccessTriggersExactlyOneReload(t *testing.T) {
	target := newFakeTarget()
	exec := &fakeExecutor{}
	bus := eventbus.NewMemoryEventBus(10)
	d := NewDispatcher(exec, []Target{target}, WithAudit(bus, eventbus.TopicConsoleAudit, func() string { return "7" }))

	out := d.Dispatch(context.Background(), Request{
		Page:       "notifications",
		Kind:       Transition,
		Transition: status.ActionPublish,
		RecordKey:  "1",
	})

	require.True(t, out.OK(), "err: %v", out.Err)
	assert.Equal(t, 1, target.refreshes)
	assert.Equal(t, []string{"/notification/publish"}, exec.paths)
	assert.Equal(t, []listing.NoticeLevel{listing.NoticeInfo}, target.notices)
	assert.Equal(t, "notifications publish succeeded, 1 is now Published", target.messages[0])

	events := bus.Events(eventbus.TopicConsoleAudit)
	require.Len(t, events, 1)
	var ev AuditEvent
	require.NoError(t, json.Unmarshal(events[0].Payload, &ev))
	assert.Equal(t, status.ActionPublish, ev.Action)
	assert.Equal(t, "7", ev.OperatorID)
	assert.Equal(t, out.RequestID, events[0].ID)
}

func TestFailureTriggersNoReload(t *testing.T) {
	target := newFakeTarget()
	exec := &fakeExecutor{err: errors.New("status=500")}
	bus := eventbus.NewMemoryEventBus(10)
	d := NewDispatcher(exec, []Target{target}, WithAudit(bus, eventbus.TopicConsoleAudit, nil))

	out := d.Dispatch(context.Background(), Request{Page: "notifications", Kind: Delete, RecordKey: "1"})

	assert.Equal(t, Failed, out.Result)
	assert.Error(t, out.Err)
	assert.Zero(t, target.refreshes)
	assert.Empty(t, bus.Events(eventbus.TopicConsoleAudit))
	assert.Equal(t, []listing.NoticeLevel{listing.NoticeError}, target.notices)
}

func TestValidationFailureIsNeverSent(t *testing.T) {
	target := newFakeTarget()
	exec := &fakeExecutor{}
	d := NewDispatcher(exec, []Target{target})

	out := d.Dispatch(context.Background(), Request{
		Page:    "notifications",
		Kind:    Create,
		Payload: json.RawMessage(`{"content":"no title"}`),
	})

	assert.Equal(t, Refused, out.Result)
	assert.True(t, validation.Is(out.Err))
	var ve *validation.Error
	require.ErrorAs(t, out.Err, &ve)
	assert.Contains(t, ve.Fields, "title")
	assert.Empty(t, exec.paths)
	assert.Zero(t, target.refreshes)
}

func TestDisabledActionIsRefusedLocally(t *testing.T) {
	target := newFakeTarget()
	exec := &fakeExecutor{}
	d := NewDispatcher(exec, []Target{target})

	// "2" is published: delete and publish are disabled.
	out := d.Dispatch(context.Background(), Request{Page: "notifications", Kind: Delete, RecordKey: "2"})
	assert.ErrorIs(t, out.Err, ErrActionDisabled)
	assert.ErrorIs(t, out.Err, status.ErrActionNotAllowed)
	assert.True(t, IsRefused(out.Err))

	out = d.Dispatch(context.Background(), Request{Page: "notifications", Kind: Transition, Transition: status.ActionPublish, RecordKey: "2"})
	assert.ErrorIs(t, out.Err, ErrActionDisabled)
	assert.Empty(t, exec.paths)

	// Rows outside the snapshot are left to the server.
	out = d.Dispatch(context.Background(), Request{Page: "notifications", Kind: Delete, RecordKey: "99"})
	assert.True(t, out.OK())
}

func TestDuplicateRequestIsConsumedOnce(t *testing.T) {
	target := newFakeTarget()
	exec := &fakeExecutor{}
	d := NewDispatcher(exec, []Target{target})

	req := Request{ID: "req-1", Page: "notifications", Kind: Transition, Transition: status.ActionPublish, RecordKey: "1"}
	first := d.Dispatch(context.Background(), req)
	second := d.Dispatch(context.Background(), req)

	assert.True(t, first.OK())
	assert.ErrorIs(t, second.Err, ErrDuplicateRequest)
	assert.Len(t, exec.paths, 1)
	assert.Equal(t, 1, target.refreshes)
}

func TestRefusedRequestKeepsItsID(t *testing.T) {
	target := newFakeTarget()
	exec := &fakeExecutor{}
	d := NewDispatcher(exec, []Target{target})

	bad := Request{ID: "req-7", Page: "notifications", Kind: Create, Payload: json.RawMessage(`{"content":"x"}`)}
	out := d.Dispatch(context.Background(), bad)
	require.True(t, validation.Is(out.Err))
	assert.Empty(t, exec.paths)

	fixed := bad
	fixed.Payload = json.RawMessage(`{"title":"t","content":"x"}`)
	out = d.Dispatch(context.Background(), fixed)
	require.True(t, out.OK(), "err: %v", out.Err)
	assert.Len(t, exec.paths, 1)

	out = d.Dispatch(context.Background(), fixed)
	assert.ErrorIs(t, out.Err, ErrDuplicateRequest)
	assert.Len(t, exec.paths, 1)
}

func TestRequestShapeChecks(t *testing.T) {
	d := NewDispatcher(&fakeExecutor{}, []Target{newFakeTarget()})

	out := d.Dispatch(context.Background(), Request{Page: "missing", Kind: Create})
	assert.ErrorIs(t, out.Err, ErrUnknownPage)

	out = d.Dispatch(context.Background(), Request{Page: "notifications", Kind: Delete})
	assert.True(t, validation.Is(out.Err))

	out = d.Dispatch(context.Background(), Request{Page: "notifications", Kind: Transition, RecordKey: "1"})
	assert.True(t, validation.Is(out.Err))

	out = d.Dispatch(context.Background(), Request{Page: "notifications", Kind: "archive", RecordKey: "1"})
	assert.True(t, validation.Is(out.Err))
}

func TestSeenLimitForgetsOldest(t *testing.T) {
	d := NewDispatcher(&fakeExecutor{}, []Target{newFakeTarget()}, WithSeenLimit(1))
	assert.True(t, d.claim("a"))
	assert.True(t, d.claim("b"))
	assert.True(t, d.claim("a"))
	assert.False(t, d.claim("a"))
}

func TestTracingMiddlewareRecordsSpans(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	exec := &fakeExecutor{}
	d := NewDispatcher(exec, []Target{newFakeTarget()}, WithMiddleware(WithLogging(), WithTracing(tp)))

	ok := d.Dispatch(context.Background(), Request{Page: "notifications", Kind: Transition, Transition: status.ActionPublish, RecordKey: "1"})
	require.True(t, ok.OK())
	refused := d.Dispatch(context.Background(), Request{Page: "notifications", Kind: Delete, RecordKey: "2"})
	require.Equal(t, Refused, refused.Result)

	spans := sr.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "mutation publish", spans[0].Name())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)
	assert.Equal(t, "mutation delete", spans[1].Name())
	assert.Equal(t, codes.Error, spans[1].Status().Code)
}

func TestNilTracerProviderIsNoop(t *testing.T) {
	d := NewDispatcher(&fakeExecutor{}, []Target{newFakeTarget()}, WithMiddleware(WithTracing(nil)))
	out := d.Dispatch(context.Background(), Request{Page: "notifications", Kind: Delete, RecordKey: "1"})
	assert.True(t, out.OK())
}
