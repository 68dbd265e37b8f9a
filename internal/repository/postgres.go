package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/azizbekh/staffdesk/internal/config"
	"github.com/azizbekh/staffdesk/internal/model"
)

// PostgresStore is the durable Store. Managers and employees share the
// people table, split by the type column; a person's tasks array is kept
// as jsonb, mirroring the wire shape.
type PostgresStore struct {
	DB *sql.DB
}

func NewPostgresStore(cfg *config.Config) (*PostgresStore, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPass, cfg.DBName)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return &PostgresStore{DB: db}, nil
}

func (s *PostgresStore) RunMigrations(ctx context.Context) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS people (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			last_name TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			tasks JSONB NOT NULL DEFAULT '[]'
		)`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			deadline TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'pending',
			priority TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			id INT PRIMARY KEY CHECK (id = 1),
			data JSONB NOT NULL
		)`,
	}
	for _, m := range migrations {
		if _, err := s.DB.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

func scanPerson(row interface{ Scan(...any) error }) (model.Person, error) {
	var p model.Person
	var tasksRaw []byte
	if err := row.Scan(&p.ID, &p.Name, &p.LastName, &p.Email, &p.Type, &p.IsActive, &tasksRaw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Person{}, ErrNotFound
		}
		return model.Person{}, err
	}
	if err := json.Unmarshal(tasksRaw, &p.Tasks); err != nil {
		return model.Person{}, err
	}
	if p.Tasks == nil {
		p.Tasks = []model.Task{}
	}
	return p, nil
}

func (s *PostgresStore) ListPeople(ctx context.Context, t model.PersonType) ([]model.Person, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, name, last_name, email, type, is_active, tasks
		 FROM people WHERE type = $1 ORDER BY id`, string(t))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Person{}
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PostgresStore) GetPerson(ctx context.Context, t model.PersonType, id int64) (model.Person, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT id, name, last_name, email, type, is_active, tasks
		 FROM people WHERE type = $1 AND id = $2`, string(t), id)
	return scanPerson(row)
}

func (s *PostgresStore) CreatePerson(ctx context.Context, t model.PersonType, p model.Person) (model.Person, error) {
	if p.Tasks == nil {
		p.Tasks = []model.Task{}
	}
	tasksRaw, err := json.Marshal(p.Tasks)
	if err != nil {
		return model.Person{}, err
	}
	row := s.DB.QueryRowContext(ctx,
		`INSERT INTO people (name, last_name, email, type, is_active, tasks)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, name, last_name, email, type, is_active, tasks`,
		p.Name, p.LastName, p.Email, string(t), p.IsActive, tasksRaw)
	return scanPerson(row)
}

func (s *PostgresStore) PatchPerson(ctx context.Context, t model.PersonType, id int64, fields map[string]any) (model.Person, error) {
	p, err := s.GetPerson(ctx, t, id)
	if err != nil {
		return model.Person{}, err
	}
	applyPersonFields(&p, fields)

	tasksRaw, err := json.Marshal(p.Tasks)
	if err != nil {
		return model.Person{}, err
	}
	row := s.DB.QueryRowContext(ctx,
		`UPDATE people SET name = $1, last_name = $2, email = $3, is_active = $4, tasks = $5
		 WHERE type = $6 AND id = $7
		 RETURNING id, name, last_name, email, type, is_active, tasks`,
		p.Name, p.LastName, p.Email, p.IsActive, tasksRaw, string(t), id)
	return scanPerson(row)
}

func (s *PostgresStore) DeletePerson(ctx context.Context, t model.PersonType, id int64) error {
	res, err := s.DB.ExecContext(ctx,
		`DELETE FROM people WHERE type = $1 AND id = $2`, string(t), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanTask(row interface{ Scan(...any) error }) (model.Task, error) {
	var task model.Task
	err := row.Scan(&task.ID, &task.Name, &task.Description, &task.Deadline,
		&task.Status, &task.Priority, &task.Type)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, ErrNotFound
	}
	return task, err
}

func (s *PostgresStore) ListTasks(ctx context.Context) ([]model.Task, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, name, description, deadline, status, priority, type
		 FROM tasks ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

func (s *PostgresStore) GetTask(ctx context.Context, id int64) (model.Task, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT id, name, description, deadline, status, priority, type
		 FROM tasks WHERE id = $1`, id)
	return scanTask(row)
}

func (s *PostgresStore) CreateTask(ctx context.Context, task model.Task) (model.Task, error) {
	if task.Status == "" {
		task.Status = model.StatusPending
	}
	row := s.DB.QueryRowContext(ctx,
		`INSERT INTO tasks (name, description, deadline, status, priority, type)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, name, description, deadline, status, priority, type`,
		task.Name, task.Description, task.Deadline, string(task.Status), string(task.Priority), string(task.Type))
	return scanTask(row)
}

func (s *PostgresStore) PatchTask(ctx context.Context, id int64, fields map[string]any) (model.Task, error) {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	applyTaskFields(&task, fields)

	row := s.DB.QueryRowContext(ctx,
		`UPDATE tasks SET name = $1, description = $2, deadline = $3, status = $4, priority = $5, type = $6
		 WHERE id = $7
		 RETURNING id, name, description, deadline, status, priority, type`,
		task.Name, task.Description, task.Deadline, string(task.Status), string(task.Priority), string(task.Type), id)
	return scanTask(row)
}

func (s *PostgresStore) DeleteTask(ctx context.Context, id int64) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*AuthUser, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE email = $1`, email)

	var u AuthUser
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *PostgresStore) UpsertUser(ctx context.Context, name, email, passwordHash string) (*AuthUser, error) {
	row := s.DB.QueryRowContext(ctx,
		`INSERT INTO users (name, email, password_hash)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, password_hash = EXCLUDED.password_hash
		 RETURNING id, name, email, password_hash, created_at`,
		name, email, passwordHash)

	var u AuthUser
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *PostgresStore) GetSettings(ctx context.Context) (model.Settings, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT data FROM settings WHERE id = 1`)

	var raw []byte
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Settings{Language: "uz", Theme: "light"}, nil
		}
		return model.Settings{}, err
	}
	var out model.Settings
	if err := json.Unmarshal(raw, &out); err != nil {
		return model.Settings{}, err
	}
	return out, nil
}

func (s *PostgresStore) PutSettings(ctx context.Context, settings model.Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	_, err = s.DB.ExecContext(ctx,
		`INSERT INTO settings (id, data) VALUES (1, $1)
		 ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data`, raw)
	return err
}
