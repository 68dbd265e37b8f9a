package repository

import (
	"context"
	"errors"
	"time"

	"github.com/azizbekh/staffdesk/internal/model"
)

var ErrNotFound = errors.New("not found")

// AuthUser is a dashboard login account (not a Person record).
type AuthUser struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Store is the persistence behind the stub backend. MemStore backs
// development and tests; PostgresStore is the durable option.
//
// Patch operations take a field map and change only the named fields.
type Store interface {
	ListPeople(ctx context.Context, t model.PersonType) ([]model.Person, error)
	GetPerson(ctx context.Context, t model.PersonType, id int64) (model.Person, error)
	CreatePerson(ctx context.Context, t model.PersonType, p model.Person) (model.Person, error)
	PatchPerson(ctx context.Context, t model.PersonType, id int64, fields map[string]any) (model.Person, error)
	DeletePerson(ctx context.Context, t model.PersonType, id int64) error

	ListTasks(ctx context.Context) ([]model.Task, error)
	GetTask(ctx context.Context, id int64) (model.Task, error)
	CreateTask(ctx context.Context, task model.Task) (model.Task, error)
	PatchTask(ctx context.Context, id int64, fields map[string]any) (model.Task, error)
	DeleteTask(ctx context.Context, id int64) error

	GetUserByEmail(ctx context.Context, email string) (*AuthUser, error)
	UpsertUser(ctx context.Context, name, email, passwordHash string) (*AuthUser, error)

	GetSettings(ctx context.Context) (model.Settings, error)
	PutSettings(ctx context.Context, s model.Settings) error
}
