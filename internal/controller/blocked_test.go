package controller

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/azizbekh/staffdesk/internal/model"
)

func TestFilterBlockedKeepsExactlyInactive(t *testing.T) {
	users := []model.Person{
		{ID: 1, Name: "Ali", LastName: "Valiyev", IsActive: true},
		{ID: 2, Name: "Bobur", LastName: "Karimov", IsActive: false},
		{ID: 3, Name: "Dilshod", LastName: "Toshev", IsActive: false},
	}

	blocked := FilterBlocked(users, "")
	if len(blocked) != 2 {
		t.Fatalf("expected 2 blocked users, got %d", len(blocked))
	}
	for _, u := range blocked {
		if u.IsActive {
			t.Fatalf("active user %d leaked into blocked set", u.ID)
		}
	}
}

func TestFilterBlockedNarrowsByFullNameCaseInsensitive(t *testing.T) {
	users := []model.Person{
		{ID: 1, Name: "Bobur", LastName: "Karimov", IsActive: false},
		{ID: 2, Name: "Dilshod", LastName: "Toshev", IsActive: false},
		{ID: 3, Name: "Karim", LastName: "Boburov", IsActive: true},
	}

	got := FilterBlocked(users, "BUR KAR")
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected only user 1 to match across name+last_name, got %+v", got)
	}
}

func TestBlockedViewMergesBothCollections(t *testing.T) {
	managers := newFakePeople()
	employees := newFakePeople()
	seedManager(t, managers, "Ali", "Valiyev", false)
	if _, err := employees.Create(context.Background(), model.Person{
		Name: "Bobur", LastName: "Karimov", Type: model.TypeEmployee, IsActive: false,
	}); err != nil {
		t.Fatalf("failed to seed employee: %v", err)
	}

	view := NewBlockedView(managers, employees, nil)
	if err := view.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}

	items, total, state := view.Snapshot()
	if total != 2 || len(items) != 2 {
		t.Fatalf("expected both blocked users, got total=%d items=%d", total, len(items))
	}
	if state.Loading {
		t.Fatal("loading must be false after refresh")
	}
}

func TestBlockedViewPaginationIsLocalSlice(t *testing.T) {
	managers := newFakePeople()
	employees := newFakePeople()
	for i := 0; i < 15; i++ {
		seedManager(t, managers, "Ali", "Valiyev", false)
	}

	view := NewBlockedView(managers, employees, nil)
	if err := view.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}

	items, total, _ := view.Snapshot()
	if total != 15 || len(items) != 10 {
		t.Fatalf("expected first page of 10 from 15, got total=%d page=%d", total, len(items))
	}

	view.SetPage(2)
	items, _, _ = view.Snapshot()
	if len(items) != 5 {
		t.Fatalf("expected 5 items on page 2, got %d", len(items))
	}
}

func TestBlockedViewSearchIsPureFilter(t *testing.T) {
	managers := newFakePeople()
	employees := newFakePeople()
	seedManager(t, managers, "Ali", "Valiyev", false)
	seedManager(t, managers, "Bobur", "Karimov", false)

	view := NewBlockedView(managers, employees, nil)
	if err := view.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}

	// No new fetch happens here; the fake would show it via listErr.
	managers.listErr = errors.New("must not be called")
	view.Search("bobur")

	items, total, _ := view.Snapshot()
	if total != 1 || len(items) != 1 || items[0].Name != "Bobur" {
		t.Fatalf("expected only Bobur, got %+v", items)
	}
}

func TestUnblockRoutesByType(t *testing.T) {
	managers := newFakePeople()
	employees := newFakePeople()
	emp, err := employees.Create(context.Background(), model.Person{
		Name: "Bobur", LastName: "Karimov", Type: model.TypeEmployee, IsActive: false,
	})
	if err != nil {
		t.Fatalf("failed to seed employee: %v", err)
	}

	notes := &recorder{}
	view := NewBlockedView(managers, employees, notes)
	if err := view.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}

	if err := view.Unblock(context.Background(), emp); err != nil {
		t.Fatalf("Unblock returned error: %v", err)
	}

	after, err := employees.Get(context.Background(), emp.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !after.IsActive {
		t.Fatal("expected employee reactivated")
	}

	_, total, _ := view.Snapshot()
	if total != 0 {
		t.Fatalf("expected empty blocked list after unblock, got %d", total)
	}
	if len(notes.successes) != 1 {
		t.Fatalf("expected success notification, got %v", notes.successes)
	}
}

func TestBlockedViewLoadingClearsOnFailure(t *testing.T) {
	managers := newFakePeople()
	managers.listErr = errors.New("backend down")
	view := NewBlockedView(managers, newFakePeople(), nil)

	if err := view.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh error")
	}
	_, _, state := view.Snapshot()
	if state.Loading {
		t.Fatal("loading must be false after a failing refresh")
	}
}

func TestStatsCountsByActivity(t *testing.T) {
	managers := newFakePeople()
	employees := newFakePeople()
	seedManager(t, managers, "Ali", "Valiyev", true)
	seedManager(t, managers, "Bobur", "Karimov", false)
	if _, err := employees.Create(context.Background(), model.Person{
		Name: "Dilshod", LastName: "Toshev", Type: model.TypeEmployee, IsActive: true,
	}); err != nil {
		t.Fatalf("failed to seed employee: %v", err)
	}

	stats, err := NewStats(managers, employees).Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect returned error: %v", err)
	}

	want := model.Statistics{Total: 3, Active: 2, Pending: 1, Blocked: 1}
	if stats != want {
		t.Fatalf("expected %+v, got %+v", want, stats)
	}
}

func TestStatsPropagatesFetchError(t *testing.T) {
	managers := newFakePeople()
	managers.listErr = errors.New("backend down")

	_, err := NewStats(managers, newFakePeople()).Collect(context.Background())
	if err == nil {
		t.Fatal("expected error from failing fetch")
	}
}

// scriptedPeople serves stale data on its first ListAll call only after
// a newer call has completed, reproducing out-of-order completion of two
// concurrent refreshes.
type scriptedPeople struct {
	mu      sync.Mutex
	calls   int
	started chan struct{}
	release chan struct{}
	stale   []model.Person
	fresh   []model.Person
}

func (p *scriptedPeople) ListAll(context.Context) ([]model.Person, error) {
	p.mu.Lock()
	p.calls++
	call := p.calls
	p.mu.Unlock()

	if call == 1 {
		close(p.started)
		<-p.release
		return p.stale, nil
	}
	return p.fresh, nil
}

func (p *scriptedPeople) Get(context.Context, int64) (model.Person, error) {
	return model.Person{}, errors.New("not scripted")
}

func (p *scriptedPeople) Update(context.Context, int64, map[string]any) (model.Person, error) {
	return model.Person{}, errors.New("not scripted")
}

func (p *scriptedPeople) SetActive(context.Context, int64, bool) (model.Person, error) {
	return model.Person{}, errors.New("not scripted")
}

func TestBlockedViewStaleRefreshDiscarded(t *testing.T) {
	managers := &scriptedPeople{
		started: make(chan struct{}),
		release: make(chan struct{}),
		stale:   []model.Person{{ID: 1, Name: "Stale", LastName: "User"}},
		fresh:   []model.Person{{ID: 2, Name: "Fresh", LastName: "User"}},
	}
	employees := &scriptedPeople{
		// Never reaches the blocking first-call path: the blocked view
		// fetches managers first, so both of this port's calls follow a
		// completed managers call.
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	close(employees.release)
	view := NewBlockedView(managers, employees, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = view.Refresh(context.Background())
	}()

	<-managers.started
	// Second refresh completes while the first is still in flight.
	if err := view.Refresh(context.Background()); err != nil {
		t.Fatalf("second refresh returned error: %v", err)
	}
	close(managers.release)
	wg.Wait()

	_, total, state := view.Snapshot()
	if total != 1 {
		t.Fatalf("total = %d, want the single fresh user", total)
	}
	if len(state.Items) != 1 || state.Items[0].Name != "Fresh" {
		t.Fatalf("stale response overwrote fresher state: %+v", state.Items)
	}
	if state.Loading {
		t.Fatal("loading must be false once the latest refresh finished")
	}
}
