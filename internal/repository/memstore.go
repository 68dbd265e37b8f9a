package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/azizbekh/staffdesk/internal/model"
)

// MemStore keeps everything in maps behind one mutex. Ids are assigned
// sequentially per collection, like the json-server backend the client
// was written against.
type MemStore struct {
	mu sync.Mutex

	nextPersonID int64
	nextTaskID   int64
	nextUserID   int64

	managers  map[int64]model.Person
	employees map[int64]model.Person
	tasks     map[int64]model.Task
	users     map[string]AuthUser
	settings  model.Settings
}

func NewMemStore() *MemStore {
	return &MemStore{
		nextPersonID: 1,
		nextTaskID:   1,
		nextUserID:   1,
		managers:     make(map[int64]model.Person),
		employees:    make(map[int64]model.Person),
		tasks:        make(map[int64]model.Task),
		users:        make(map[string]AuthUser),
		settings: model.Settings{
			Language: "uz",
			Theme:    "light",
		},
	}
}

func (s *MemStore) collection(t model.PersonType) map[int64]model.Person {
	if t == model.TypeManager {
		return s.managers
	}
	return s.employees
}

func (s *MemStore) ListPeople(_ context.Context, t model.PersonType) ([]model.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	coll := s.collection(t)
	out := make([]model.Person, 0, len(coll))
	for _, p := range coll {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) GetPerson(_ context.Context, t model.PersonType, id int64) (model.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.collection(t)[id]
	if !ok {
		return model.Person{}, ErrNotFound
	}
	return p, nil
}

func (s *MemStore) CreatePerson(_ context.Context, t model.PersonType, p model.Person) (model.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.nextPersonID
	s.nextPersonID++
	p.Type = t
	if p.Tasks == nil {
		p.Tasks = []model.Task{}
	}
	s.collection(t)[p.ID] = p
	return p, nil
}

func (s *MemStore) PatchPerson(_ context.Context, t model.PersonType, id int64, fields map[string]any) (model.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	coll := s.collection(t)
	p, ok := coll[id]
	if !ok {
		return model.Person{}, ErrNotFound
	}
	applyPersonFields(&p, fields)
	coll[id] = p
	return p, nil
}

func (s *MemStore) DeletePerson(_ context.Context, t model.PersonType, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	coll := s.collection(t)
	if _, ok := coll[id]; !ok {
		return ErrNotFound
	}
	delete(coll, id)
	return nil
}

func (s *MemStore) ListTasks(_ context.Context) ([]model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		out = append(out, task)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) GetTask(_ context.Context, id int64) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return model.Task{}, ErrNotFound
	}
	return task, nil
}

func (s *MemStore) CreateTask(_ context.Context, task model.Task) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task.ID = s.nextTaskID
	s.nextTaskID++
	if task.Status == "" {
		task.Status = model.StatusPending
	}
	s.tasks[task.ID] = task
	return task, nil
}

func (s *MemStore) PatchTask(_ context.Context, id int64, fields map[string]any) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return model.Task{}, ErrNotFound
	}
	applyTaskFields(&task, fields)
	s.tasks[id] = task
	return task, nil
}

func (s *MemStore) DeleteTask(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}

func (s *MemStore) GetUserByEmail(_ context.Context, email string) (*AuthUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[email]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (s *MemStore) UpsertUser(_ context.Context, name, email, passwordHash string) (*AuthUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[email]
	if !ok {
		user = AuthUser{ID: s.nextUserID, CreatedAt: time.Now()}
		s.nextUserID++
	}
	user.Name = name
	user.Email = email
	user.PasswordHash = passwordHash
	s.users[email] = user
	return &user, nil
}

func (s *MemStore) GetSettings(_ context.Context) (model.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings, nil
}

func (s *MemStore) PutSettings(_ context.Context, settings model.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	return nil
}
