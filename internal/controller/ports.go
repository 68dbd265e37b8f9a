package controller

import (
	"context"
	"errors"
	"sync"

	"github.com/azizbekh/staffdesk/internal/model"
)

// ErrTaskCreateFailed marks any failure of the two-step task-attachment
// workflow, whichever step broke.
var ErrTaskCreateFailed = errors.New("task create failed")

// ResourcePort is what a list controller needs from a gateway. It is
// satisfied by gateway.Resource and by test fakes.
type ResourcePort[E any] interface {
	List(ctx context.Context, page, limit int, filter string) ([]E, error)
	Create(ctx context.Context, payload E) (E, error)
	Update(ctx context.Context, id int64, partial map[string]any) (E, error)
	Remove(ctx context.Context, id int64) error
	SetActive(ctx context.Context, id int64, isActive bool) (E, error)
}

// PeoplePort is the slice of a person gateway used by the composed
// blocked-users view and the statistics screen.
type PeoplePort interface {
	ListAll(ctx context.Context) ([]model.Person, error)
	Get(ctx context.Context, id int64) (model.Person, error)
	Update(ctx context.Context, id int64, partial map[string]any) (model.Person, error)
	SetActive(ctx context.Context, id int64, isActive bool) (model.Person, error)
}

// TaskPort is the slice of the tasks gateway the attach workflow uses.
type TaskPort interface {
	Create(ctx context.Context, payload model.Task) (model.Task, error)
	Remove(ctx context.Context, id int64) error
}

// Notifier receives the transient success/error messages every network
// operation produces. The TUI renders them in the status bar; tests use
// a recorder.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// NopNotifier discards notifications.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Error(string)   {}

// Relay forwards notifications to a target bound after construction.
// Controllers are built before the UI that displays their messages; the
// relay closes that ordering gap. Unbound, it drops messages.
type Relay struct {
	mu     sync.Mutex
	target Notifier
}

func (r *Relay) Bind(n Notifier) {
	r.mu.Lock()
	r.target = n
	r.mu.Unlock()
}

func (r *Relay) Success(msg string) {
	r.mu.Lock()
	target := r.target
	r.mu.Unlock()
	if target != nil {
		target.Success(msg)
	}
}

func (r *Relay) Error(msg string) {
	r.mu.Lock()
	target := r.target
	r.mu.Unlock()
	if target != nil {
		target.Error(msg)
	}
}
