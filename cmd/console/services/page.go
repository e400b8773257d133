package services

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sort"
	"strconv"

	"locker-console/cmd/console/dto"
	"locker-console/cmd/console/listing"
	"locker-console/cmd/console/mutation"
	"locker-console/cmd/console/status"
	"locker-console/cmd/console/validation"
)

// Page is one admin screen: a list controller plus the mutations it accepts.
type Page interface {
	mutation.Target
	Info() dto.PageInfoDTO
	View() dto.PageViewDTO
	Reload(ctx context.Context) dto.PageViewDTO
	SetFilters(ctx context.Context, partial map[string]*string) (dto.PageViewDTO, error)
	SetPage(ctx context.Context, index, size int) (dto.PageViewDTO, error)
	SetSort(ctx context.Context, s *listing.Sort) (dto.PageViewDTO, error)
	Reset()
}

// prepareFunc resolves a mutation of one kind (or one named transition) to a backend call.
type prepareFunc func(req mutation.Request) (mutation.Call, error)

type pageDef[T listing.Record] struct {
	name    string
	title   string
	filters []string
	sorts   listing.SortParams
	fetch   listing.Fetcher[T]

	// machine/stateOf gate row actions; both nil when the page has no status table.
	machine *status.Machine
	stateOf func(T) status.State

	mutations map[string]prepareFunc
}

type page[T listing.Record] struct {
	def  pageDef[T]
	ctrl *listing.Controller[T]
}

func newPage[T listing.Record](def pageDef[T], opts listing.Options) *page[T] {
	opts.Name = def.name
	return &page[T]{def: def, ctrl: listing.New(def.fetch, opts)}
}

func (p *page[T]) Name() string { return p.def.name }

func (p *page[T]) Info() dto.PageInfoDTO {
	muts := make([]string, 0, len(p.def.mutations))
	for k := range p.def.mutations {
		muts = append(muts, k)
	}
	sort.Strings(muts)
	sorts := slices.Sorted(maps.Keys(p.def.sorts))
	if sorts == nil {
		sorts = []string{}
	}
	return dto.PageInfoDTO{
		Name:            p.def.name,
		Title:           p.def.title,
		Filters:         slices.Clone(p.def.filters),
		Sorts:           sorts,
		Mutations:       muts,
		DefaultPageSize: p.ctrl.Snapshot().Query.Page.Size,
	}
}

// View renders the current snapshot and drains pending notices.
func (p *page[T]) View() dto.PageViewDTO {
	return p.render(p.ctrl.Snapshot())
}

func (p *page[T]) Reload(ctx context.Context) dto.PageViewDTO {
	return p.render(p.ctrl.Reload(ctx))
}

func (p *page[T]) SetFilters(ctx context.Context, partial map[string]*string) (dto.PageViewDTO, error) {
	for k := range partial {
		if !slices.Contains(p.def.filters, k) {
			return p.View(), validation.New("filters."+k, "unknown filter")
		}
	}
	snap, err := p.ctrl.SetFilters(ctx, partial)
	return p.render(snap), err
}

func (p *page[T]) SetPage(ctx context.Context, index, size int) (dto.PageViewDTO, error) {
	snap, err := p.ctrl.SetPage(ctx, index, size)
	return p.render(snap), err
}

func (p *page[T]) SetSort(ctx context.Context, s *listing.Sort) (dto.PageViewDTO, error) {
	if s != nil {
		if _, ok := p.def.sorts[s.Field]; !ok {
			return p.View(), validation.New("sort.field", "unknown sort")
		}
	}
	snap, err := p.ctrl.SetSort(ctx, s)
	return p.render(snap), err
}

func (p *page[T]) Reset() { p.ctrl.Reset() }

// mutation.Target

func (p *page[T]) Prepare(req mutation.Request) (mutation.Call, error) {
	key := string(req.Kind)
	if req.Kind == mutation.Transition {
		key = string(req.Transition)
	}
	prepare, ok := p.def.mutations[key]
	if !ok {
		return mutation.Call{}, fmt.Errorf("%w: %s on %s", mutation.ErrUnsupported, key, p.def.name)
	}
	return prepare(req)
}

func (p *page[T]) CheckAction(recordKey string, action status.Action) (status.State, bool, error) {
	if p.def.machine == nil || !p.def.machine.Governs(action) {
		return "", false, nil
	}
	rec, ok := p.ctrl.Lookup(recordKey)
	if !ok {
		return "", false, nil
	}
	next, err := p.def.machine.Next(p.def.stateOf(rec), action)
	return next, true, err
}

func (p *page[T]) Refresh(ctx context.Context) { p.ctrl.Refresh(ctx) }

func (p *page[T]) Notify(level listing.NoticeLevel, msg string) {
	p.ctrl.Notices().Push(level, msg)
}

func (p *page[T]) render(snap listing.Snapshot[T]) dto.PageViewDTO {
	rows := make([]dto.RowDTO, 0, len(snap.Items))
	for _, it := range snap.Items {
		row := dto.RowDTO{Key: it.RecordKey(), Record: it}
		if p.def.machine != nil {
			actions := p.def.machine.Evaluate(p.def.stateOf(it))
			row.Actions = &actions
		}
		rows = append(rows, row)
	}
	view := dto.PageViewDTO{
		Page:    p.def.name,
		Query:   snap.Query,
		State:   snap.State,
		Rows:    rows,
		Total:   snap.Total,
		Notices: p.ctrl.Notices().Drain(),
	}
	if snap.Err != nil {
		view.Error = snap.Err.Error()
	}
	if !snap.LoadedAt.IsZero() {
		t := snap.LoadedAt
		view.LoadedAt = &t
	}
	return view
}

// recordID parses a numeric record key for request bodies.
func recordID(req mutation.Request) (int64, error) {
	id, err := strconv.ParseInt(req.RecordKey, 10, 64)
	if err != nil || id <= 0 {
		return 0, validation.New("recordKey", "numeric")
	}
	return id, nil
}

// byID builds a prepareFunc that posts the bare record id (e.g. `5`) to path,
// the body the delete and publish endpoints read.
func byID(path string) prepareFunc {
	return func(req mutation.Request) (mutation.Call, error) {
		id, err := recordID(req)
		if err != nil {
			return mutation.Call{}, err
		}
		return mutation.Call{Path: path, Body: id}, nil
	}
}

// operate builds a prepareFunc for status-transition endpoints taking {id, operateType}.
func operate(path, operateType string) prepareFunc {
	return func(req mutation.Request) (mutation.Call, error) {
		id, err := recordID(req)
		if err != nil {
			return mutation.Call{}, err
		}
		return mutation.Call{Path: path, Body: operateBody{ID: id, OperateType: operateType}}, nil
	}
}

// withPayload decodes and validates the payload as P, then lets build shape the body.
func withPayload[P any](path string, build func(req mutation.Request, p P) (any, error)) prepareFunc {
	return func(req mutation.Request) (mutation.Call, error) {
		p, err := mutation.DecodePayload[P](req.Payload)
		if err != nil {
			return mutation.Call{}, err
		}
		body, err := build(req, p)
		if err != nil {
			return mutation.Call{}, err
		}
		return mutation.Call{Path: path, Body: body}, nil
	}
}

type operateBody struct {
	ID          int64  `json:"id"`
	OperateType string `json:"operateType"`
}
