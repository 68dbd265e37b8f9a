package controller

import (
	"context"
	"fmt"

	"github.com/azizbekh/staffdesk/internal/model"
)

// Attacher runs the two-step task-attachment workflow: create the task
// in the standalone collection, then PATCH the owning person's tasks
// array to include it. The backend offers no transaction across the two
// writes.
//
// With Compensate off (the default), a step-2 failure leaves the
// created task orphaned in /tasks. With Compensate on, the orphan is
// deleted best-effort before the error is returned.
type Attacher struct {
	tasks      TaskPort
	people     func(model.PersonType) PeoplePort
	notifier   Notifier
	Compensate bool
}

func NewAttacher(tasks TaskPort, people func(model.PersonType) PeoplePort, notifier Notifier) *Attacher {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Attacher{tasks: tasks, people: people, notifier: notifier}
}

// Attach creates the task and links it to the person. Every failure
// surfaces as ErrTaskCreateFailed with the step's cause wrapped in.
func (a *Attacher) Attach(ctx context.Context, personID int64, personType model.PersonType, task model.Task) (model.Task, error) {
	if task.Status == "" {
		task.Status = model.StatusPending
	}
	task.Type = personType

	created, err := a.tasks.Create(ctx, task)
	if err != nil {
		a.notifier.Error("failed to add task")
		return model.Task{}, fmt.Errorf("%w: create task: %v", ErrTaskCreateFailed, err)
	}

	port := a.people(personType)
	person, err := port.Get(ctx, personID)
	if err != nil {
		return a.fail(ctx, created, fmt.Errorf("%w: load person %d: %v", ErrTaskCreateFailed, personID, err))
	}

	updated := append(person.Tasks, created)
	if _, err := port.Update(ctx, personID, map[string]any{"tasks": updated}); err != nil {
		return a.fail(ctx, created, fmt.Errorf("%w: link task %d to person %d: %v", ErrTaskCreateFailed, created.ID, personID, err))
	}

	a.notifier.Success("task added")
	return created, nil
}

func (a *Attacher) fail(ctx context.Context, created model.Task, err error) (model.Task, error) {
	if a.Compensate {
		// Best effort only; a failed delete still reports the original error.
		_ = a.tasks.Remove(ctx, created.ID)
	}
	a.notifier.Error("failed to add task")
	return model.Task{}, err
}
