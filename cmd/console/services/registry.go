package services

import (
	"time"

	"locker-console/cmd/console/clients/lockerclient"
	"locker-console/cmd/console/dto"
	"locker-console/cmd/console/listing"
	"locker-console/cmd/console/mutation"
)

// RegistryOptions carries the per-page controller settings from config.
type RegistryOptions struct {
	PageSize     func(page string) int
	FetchTimeout time.Duration
	NoticeBuffer int
}

// PageRegistry owns one list controller per admin page, in menu order.
type PageRegistry struct {
	pages map[string]Page
	order []string
}

func NewPageRegistry(client *lockerclient.Client, opts RegistryOptions) *PageRegistry {
	builders := []struct {
		name  string
		build func(*lockerclient.Client, listing.Options) Page
	}{
		{PageUsers, usersPage},
		{PageComments, commentsPage},
		{PageNotifications, notificationsPage},
		{PageCabinets, cabinetsPage},
		{PageCabinetSettings, cabinetSettingsPage},
		{PageCategories, categoriesPage},
		{PageOrders, ordersPage},
		{PageLostItems, lostItemsPage},
		{PageLogistics, logisticsPage},
	}

	r := &PageRegistry{pages: make(map[string]Page, len(builders))}
	for _, b := range builders {
		lo := listing.Options{FetchTimeout: opts.FetchTimeout, NoticeBuffer: opts.NoticeBuffer}
		if opts.PageSize != nil {
			lo.PageSize = opts.PageSize(b.name)
		}
		r.pages[b.name] = b.build(client, lo)
		r.order = append(r.order, b.name)
	}
	return r
}

func (r *PageRegistry) Get(name string) (Page, bool) {
	p, ok := r.pages[name]
	return p, ok
}

func (r *PageRegistry) Catalogue() []dto.PageInfoDTO {
	out := make([]dto.PageInfoDTO, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.pages[name].Info())
	}
	return out
}

// Targets exposes every page to the mutation dispatcher.
func (r *PageRegistry) Targets() []mutation.Target {
	out := make([]mutation.Target, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.pages[name])
	}
	return out
}

// ResetAll drops every page's loaded rows (logout).
func (r *PageRegistry) ResetAll() {
	for _, p := range r.pages {
		p.Reset()
	}
}
