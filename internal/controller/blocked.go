package controller

import (
	"context"
	"strings"
	"sync"

	"github.com/azizbekh/staffdesk/internal/model"
)

// BlockedView is the composed read-only view over the managers and
// employees gateways. It has no endpoint of its own: both collections
// are fetched whole, filtered to inactive users client-side, and paged
// by slicing the filtered list.
type BlockedView struct {
	managers  PeoplePort
	employees PeoplePort
	notifier  Notifier

	mu       sync.Mutex
	all      []model.Person
	loading  bool
	page     int
	pageSize int
	query    string
	seq      uint64
}

func NewBlockedView(managers, employees PeoplePort, notifier Notifier) *BlockedView {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &BlockedView{
		managers:  managers,
		employees: employees,
		notifier:  notifier,
		page:      1,
		pageSize:  DefaultPageSize,
	}
}

// Refresh re-fetches both collections. Loading clears on every exit
// path and a failure keeps the previously fetched users. Like
// List.Refresh, each call takes a sequence number and a reply that is no
// longer the latest issued one is discarded.
func (v *BlockedView) Refresh(ctx context.Context) error {
	v.mu.Lock()
	v.loading = true
	v.seq++
	seq := v.seq
	v.mu.Unlock()

	managers, err := v.managers.ListAll(ctx)
	var employees []model.Person
	if err == nil {
		employees, err = v.employees.ListAll(ctx)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if seq != v.seq {
		// A newer refresh owns the state now.
		return nil
	}
	v.loading = false
	if err != nil {
		v.notifier.Error("failed to load blocked users")
		return err
	}
	v.all = append(managers, employees...)
	return nil
}

// Search narrows the already-fetched list; no request is issued.
func (v *BlockedView) Search(query string) {
	v.mu.Lock()
	v.query = query
	v.page = 1
	v.mu.Unlock()
}

func (v *BlockedView) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	v.mu.Lock()
	v.page = n
	v.mu.Unlock()
}

// Snapshot returns the current page of the filtered list plus the total
// number of matches (for pagination display).
func (v *BlockedView) Snapshot() (items []model.Person, total int, state State[model.Person]) {
	v.mu.Lock()
	defer v.mu.Unlock()

	filtered := FilterBlocked(v.all, v.query)
	total = len(filtered)

	start := (v.page - 1) * v.pageSize
	if start > total {
		start = total
	}
	end := start + v.pageSize
	if end > total {
		end = total
	}
	items = filtered[start:end]

	state = State[model.Person]{
		Items:    items,
		Loading:  v.loading,
		Page:     v.page,
		PageSize: v.pageSize,
		Query:    v.query,
	}
	return items, total, state
}

// Unblock reactivates a user through the gateway matching their type and
// re-fetches on success.
func (v *BlockedView) Unblock(ctx context.Context, p model.Person) error {
	port := v.employees
	if p.Type == model.TypeManager {
		port = v.managers
	}
	if _, err := port.SetActive(ctx, p.ID, true); err != nil {
		v.notifier.Error("failed to unblock user")
		return err
	}
	v.notifier.Success("user unblocked")
	return v.Refresh(ctx)
}

// FilterBlocked keeps exactly the inactive users and, when query is
// non-empty, those whose full name contains it case-insensitively.
func FilterBlocked(users []model.Person, query string) []model.Person {
	query = strings.ToLower(query)
	out := make([]model.Person, 0, len(users))
	for _, u := range users {
		if u.IsActive {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(u.FullName()), query) {
			continue
		}
		out = append(out, u)
	}
	return out
}
