package controller

import (
	"context"
	"sync"
)

// DefaultPageSize matches the fixed page size of every screen.
const DefaultPageSize = 10

// State is a render snapshot of one list page.
type State[E any] struct {
	Items    []E
	Loading  bool
	Page     int
	PageSize int
	Query    string
}

// List owns the fetch/mutate/refetch cycle for one screen. It never
// mutates items optimistically: every successful mutation re-fetches, so
// the backend's copy stays authoritative.
type List[E any] struct {
	gateway  ResourcePort[E]
	notifier Notifier
	label    string

	mu       sync.Mutex
	items    []E
	loading  bool
	page     int
	pageSize int
	query    string
	seq      uint64
}

func NewList[E any](gateway ResourcePort[E], notifier Notifier, label string) *List[E] {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &List[E]{
		gateway:  gateway,
		notifier: notifier,
		label:    label,
		page:     1,
		pageSize: DefaultPageSize,
	}
}

// SetPageSize overrides the default page size. Values below 1 are
// ignored.
func (l *List[E]) SetPageSize(n int) {
	if n < 1 {
		return
	}
	l.mu.Lock()
	l.pageSize = n
	l.mu.Unlock()
}

// Snapshot returns a copy of the current state for rendering.
func (l *List[E]) Snapshot() State[E] {
	l.mu.Lock()
	defer l.mu.Unlock()
	items := make([]E, len(l.items))
	copy(items, l.items)
	return State[E]{
		Items:    items,
		Loading:  l.loading,
		Page:     l.page,
		PageSize: l.pageSize,
		Query:    l.query,
	}
}

// Refresh re-fetches the current page. The loading flag is cleared on
// every exit path, success or failure; a failed fetch keeps the prior
// items. Each call takes a sequence number, and a response that is no
// longer the latest issued one is discarded so a slow stale reply cannot
// overwrite fresher state.
func (l *List[E]) Refresh(ctx context.Context) error {
	l.mu.Lock()
	l.loading = true
	l.seq++
	seq := l.seq
	page, limit, query := l.page, l.pageSize, l.query
	l.mu.Unlock()

	items, err := l.gateway.List(ctx, page, limit, query)

	l.mu.Lock()
	defer l.mu.Unlock()
	if seq != l.seq {
		// A newer refresh owns the state now.
		return nil
	}
	l.loading = false
	if err != nil {
		l.notifier.Error("failed to load " + l.label + " list")
		return err
	}
	l.items = items
	return nil
}

// Search resets to the first page and refreshes with the new query.
func (l *List[E]) Search(ctx context.Context, query string) error {
	l.mu.Lock()
	l.page = 1
	l.query = query
	l.mu.Unlock()
	return l.Refresh(ctx)
}

// SetPage moves to page n (clamped to 1) and refreshes.
func (l *List[E]) SetPage(ctx context.Context, n int) error {
	if n < 1 {
		n = 1
	}
	l.mu.Lock()
	l.page = n
	l.mu.Unlock()
	return l.Refresh(ctx)
}

// Create POSTs the payload, notifies, and re-syncs on success.
func (l *List[E]) Create(ctx context.Context, payload E) error {
	if _, err := l.gateway.Create(ctx, payload); err != nil {
		l.notifier.Error("failed to add " + l.label)
		return err
	}
	l.notifier.Success(l.label + " added")
	return l.Refresh(ctx)
}

// Update PATCHes the named fields only, notifies, re-syncs on success.
func (l *List[E]) Update(ctx context.Context, id int64, partial map[string]any) error {
	if _, err := l.gateway.Update(ctx, id, partial); err != nil {
		l.notifier.Error("failed to update " + l.label)
		return err
	}
	l.notifier.Success(l.label + " updated")
	return l.Refresh(ctx)
}

// Remove deletes, notifies, re-syncs on success.
func (l *List[E]) Remove(ctx context.Context, id int64) error {
	if err := l.gateway.Remove(ctx, id); err != nil {
		l.notifier.Error("failed to delete " + l.label)
		return err
	}
	l.notifier.Success(l.label + " deleted")
	return l.Refresh(ctx)
}

// SetActive blocks or unblocks, notifies, re-syncs on success.
func (l *List[E]) SetActive(ctx context.Context, id int64, isActive bool) error {
	if _, err := l.gateway.SetActive(ctx, id, isActive); err != nil {
		l.notifier.Error("failed to change " + l.label + " status")
		return err
	}
	if isActive {
		l.notifier.Success(l.label + " unblocked")
	} else {
		l.notifier.Success(l.label + " blocked")
	}
	return l.Refresh(ctx)
}
