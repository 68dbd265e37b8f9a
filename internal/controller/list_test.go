package controller

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/azizbekh/staffdesk/internal/model"
)

func seedManager(t *testing.T, f *fakePeople, name, lastName string, active bool) model.Person {
	t.Helper()
	p, err := f.Create(context.Background(), model.Person{
		Name:     name,
		LastName: lastName,
		Email:    name + "@x.com",
		Type:     model.TypeManager,
		IsActive: active,
		Tasks:    []model.Task{},
	})
	if err != nil {
		t.Fatalf("failed to seed person: %v", err)
	}
	return p
}

func TestRefreshLoadsItems(t *testing.T) {
	fake := newFakePeople()
	seedManager(t, fake, "Ali", "Valiyev", true)
	seedManager(t, fake, "Bobur", "Karimov", true)

	list := NewList[model.Person](fake, nil, "manager")
	if err := list.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}

	state := list.Snapshot()
	if len(state.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(state.Items))
	}
	if state.Loading {
		t.Fatal("loading must be false after a successful refresh")
	}
}

func TestRefreshClearsLoadingOnFailure(t *testing.T) {
	fake := newFakePeople()
	seedManager(t, fake, "Ali", "Valiyev", true)

	list := NewList[model.Person](fake, nil, "manager")
	if err := list.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}

	fake.listErr = errors.New("backend down")
	if err := list.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh error")
	}

	state := list.Snapshot()
	if state.Loading {
		t.Fatal("loading must be false after a failing refresh")
	}
	if len(state.Items) != 1 {
		t.Fatalf("failed refresh must keep prior items, got %d", len(state.Items))
	}
}

func TestCreateThenRefreshContainsEntityOnce(t *testing.T) {
	fake := newFakePeople()
	notes := &recorder{}
	list := NewList[model.Person](fake, notes, "manager")

	err := list.Create(context.Background(), model.Person{
		Name:     "Ali",
		LastName: "Valiyev",
		Email:    "ali@x.com",
		Type:     model.TypeManager,
		IsActive: true,
		Tasks:    []model.Task{},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	state := list.Snapshot()
	count := 0
	for _, p := range state.Items {
		if p.Name == "Ali" && p.LastName == "Valiyev" && p.Email == "ali@x.com" {
			count++
			if !p.IsActive {
				t.Fatal("expected isActive=true on created manager")
			}
		}
	}
	if count != 1 {
		t.Fatalf("expected the new manager exactly once, found %d", count)
	}
	if len(notes.successes) != 1 {
		t.Fatalf("expected one success notification, got %v", notes.successes)
	}
}

func TestCreateFailureKeepsStateAndNotifies(t *testing.T) {
	fake := newFakePeople()
	seedManager(t, fake, "Ali", "Valiyev", true)
	notes := &recorder{}
	list := NewList[model.Person](fake, notes, "manager")
	if err := list.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}

	fake.createErr = errors.New("boom")
	if err := list.Create(context.Background(), model.Person{Name: "Bobur"}); err == nil {
		t.Fatal("expected create error")
	}

	if len(list.Snapshot().Items) != 1 {
		t.Fatal("failed create must not touch local items")
	}
	if len(notes.errors) != 1 {
		t.Fatalf("expected one error notification, got %v", notes.errors)
	}
}

func TestUpdateChangesOnlyNamedFields(t *testing.T) {
	fake := newFakePeople()
	created := seedManager(t, fake, "Ali", "Valiyev", true)
	list := NewList[model.Person](fake, nil, "manager")

	err := list.Update(context.Background(), created.ID, map[string]any{"last_name": "Yangi"})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	after, err := fake.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if after.LastName != "Yangi" {
		t.Fatalf("expected last_name updated, got %q", after.LastName)
	}
	if after.Name != "Ali" || after.Email != "ali@x.com" || !after.IsActive {
		t.Fatalf("partial update touched unrelated fields: %+v", after)
	}
}

func TestSetActiveRoundTripIsIdempotent(t *testing.T) {
	fake := newFakePeople()
	created := seedManager(t, fake, "Ali", "Valiyev", true)
	list := NewList[model.Person](fake, nil, "manager")

	if err := list.SetActive(context.Background(), created.ID, false); err != nil {
		t.Fatalf("block returned error: %v", err)
	}
	if err := list.SetActive(context.Background(), created.ID, true); err != nil {
		t.Fatalf("unblock returned error: %v", err)
	}

	after, err := fake.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if after.IsActive != created.IsActive {
		t.Fatal("block then unblock must restore the original isActive")
	}
}

func TestRemoveThenRefreshAbsent(t *testing.T) {
	fake := newFakePeople()
	keep := seedManager(t, fake, "Ali", "Valiyev", true)
	gone := seedManager(t, fake, "Bobur", "Karimov", true)
	list := NewList[model.Person](fake, nil, "manager")

	if err := list.Remove(context.Background(), gone.ID); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}

	for _, p := range list.Snapshot().Items {
		if p.ID == gone.ID {
			t.Fatal("removed id still present after refresh")
		}
	}
	if len(list.Snapshot().Items) != 1 || list.Snapshot().Items[0].ID != keep.ID {
		t.Fatal("unrelated item lost")
	}
}

func TestSearchResetsToFirstPage(t *testing.T) {
	fake := newFakePeople()
	for i := 0; i < 25; i++ {
		seedManager(t, fake, "Ali", "Valiyev", true)
	}
	list := NewList[model.Person](fake, nil, "manager")

	if err := list.SetPage(context.Background(), 3); err != nil {
		t.Fatalf("SetPage returned error: %v", err)
	}
	if list.Snapshot().Page != 3 {
		t.Fatalf("expected page 3, got %d", list.Snapshot().Page)
	}

	if err := list.Search(context.Background(), "vali"); err != nil {
		t.Fatalf("Search returned error: %v", err)
	}

	state := list.Snapshot()
	if state.Page != 1 {
		t.Fatalf("search must reset to page 1, got %d", state.Page)
	}
	if state.Query != "vali" {
		t.Fatalf("expected stored query, got %q", state.Query)
	}
	if len(state.Items) != DefaultPageSize {
		t.Fatalf("expected a full page of matches, got %d", len(state.Items))
	}
}

// scriptedPort serves an old result on the first List call only after a
// newer call has completed, reproducing the out-of-order completion the
// sequence guard exists for.
type scriptedPort struct {
	mu      sync.Mutex
	calls   int
	started chan struct{}
	release chan struct{}
	stale   []model.Person
	fresh   []model.Person
}

func (p *scriptedPort) List(context.Context, int, int, string) ([]model.Person, error) {
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

func (p *scriptedPort) Create(context.Context, model.Person) (model.Person, error) {
	return model.Person{}, errors.New("not scripted")
}

func (p *scriptedPort) Update(context.Context, int64, map[string]any) (model.Person, error) {
	return model.Person{}, errors.New("not scripted")
}

func (p *scriptedPort) Remove(context.Context, int64) error { return errors.New("not scripted") }

func (p *scriptedPort) SetActive(context.Context, int64, bool) (model.Person, error) {
	return model.Person{}, errors.New("not scripted")
}

func TestStaleRefreshResponseDiscarded(t *testing.T) {
	port := &scriptedPort{
		started: make(chan struct{}),
		release: make(chan struct{}),
		stale:   []model.Person{{ID: 1, Name: "Stale"}},
		fresh:   []model.Person{{ID: 2, Name: "Fresh"}},
	}
	list := NewList[model.Person](port, nil, "manager")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = list.Refresh(context.Background())
	}()

	<-port.started
	// Second refresh completes while the first is still in flight.
	if err := list.Refresh(context.Background()); err != nil {
		t.Fatalf("second refresh returned error: %v", err)
	}
	close(port.release)
	wg.Wait()

	state := list.Snapshot()
	if len(state.Items) != 1 || state.Items[0].Name != "Fresh" {
		t.Fatalf("stale response overwrote fresh state: %+v", state.Items)
	}
	if state.Loading {
		t.Fatal("loading must be false once the latest refresh finished")
	}
}
