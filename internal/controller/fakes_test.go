package controller

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/azizbekh/staffdesk/internal/model"
)

var errNotFound = errors.New("not found")

// recorder collects notifications for assertions.
type recorder struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (r *recorder) Success(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.successes = append(r.successes, msg)
}

func (r *recorder) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, msg)
}

// fakePeople is an in-memory person collection with the backend's
// list/filter/patch semantics. Error fields inject failures per method.
type fakePeople struct {
	mu     sync.Mutex
	nextID int64
	people map[int64]model.Person

	listErr   error
	createErr error
	updateErr error
	removeErr error
	getErr    error
}

func newFakePeople() *fakePeople {
	return &fakePeople{nextID: 1, people: make(map[int64]model.Person)}
}

func (f *fakePeople) sorted() []model.Person {
	out := make([]model.Person, 0, len(f.people))
	for _, p := range f.people {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakePeople) List(_ context.Context, page, limit int, filter string) ([]model.Person, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}

	all := f.sorted()
	if filter != "" {
		matched := all[:0]
		for _, p := range all {
			if strings.Contains(strings.ToLower(p.FullName()), strings.ToLower(filter)) {
				matched = append(matched, p)
			}
		}
		all = matched
	}

	start := (page - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (f *fakePeople) ListAll(_ context.Context) ([]model.Person, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.sorted(), nil
}

func (f *fakePeople) Get(_ context.Context, id int64) (model.Person, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return model.Person{}, f.getErr
	}
	p, ok := f.people[id]
	if !ok {
		return model.Person{}, errNotFound
	}
	return p, nil
}

func (f *fakePeople) Create(_ context.Context, payload model.Person) (model.Person, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return model.Person{}, f.createErr
	}
	payload.ID = f.nextID
	f.nextID++
	f.people[payload.ID] = payload
	return payload, nil
}

func (f *fakePeople) Update(_ context.Context, id int64, partial map[string]any) (model.Person, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return model.Person{}, f.updateErr
	}
	p, ok := f.people[id]
	if !ok {
		return model.Person{}, errNotFound
	}
	for key, value := range partial {
		switch key {
		case "name":
			p.Name = value.(string)
		case "last_name":
			p.LastName = value.(string)
		case "email":
			p.Email = value.(string)
		case "isActive":
			p.IsActive = value.(bool)
		case "tasks":
			p.Tasks = value.([]model.Task)
		}
	}
	f.people[id] = p
	return p, nil
}

func (f *fakePeople) Remove(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.removeErr != nil {
		return f.removeErr
	}
	if _, ok := f.people[id]; !ok {
		return errNotFound
	}
	delete(f.people, id)
	return nil
}

func (f *fakePeople) SetActive(ctx context.Context, id int64, isActive bool) (model.Person, error) {
	return f.Update(ctx, id, map[string]any{"isActive": isActive})
}

// fakeTasks mirrors fakePeople for the tasks collection.
type fakeTasks struct {
	mu     sync.Mutex
	nextID int64
	tasks  map[int64]model.Task

	createErr error
	removeErr error
}

func newFakeTasks() *fakeTasks {
	return &fakeTasks{nextID: 1, tasks: make(map[int64]model.Task)}
}

func (f *fakeTasks) Create(_ context.Context, payload model.Task) (model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return model.Task{}, f.createErr
	}
	if payload.ID == 0 {
		payload.ID = f.nextID
		f.nextID++
	} else if payload.ID >= f.nextID {
		f.nextID = payload.ID + 1
	}
	f.tasks[payload.ID] = payload
	return payload, nil
}

func (f *fakeTasks) Remove(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.removeErr != nil {
		return f.removeErr
	}
	if _, ok := f.tasks[id]; !ok {
		return errNotFound
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeTasks) has(id int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.tasks[id]
	return ok
}
