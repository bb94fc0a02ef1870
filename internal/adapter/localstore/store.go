// Package localstore persists the last synced task/project collections to a
// local sqlite database so they survive restarts. It is a mirror of the
// remote state, never authoritative.
package localstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"taskdeck/internal/core/domain"
	"taskdeck/internal/core/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
  id          TEXT PRIMARY KEY,
  title       TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  status      TEXT NOT NULL,
  priority    TEXT NOT NULL,
  project_id  TEXT NOT NULL DEFAULT '',
  due_date    TEXT,
  reminder    TEXT,
  position    INTEGER NOT NULL,
  created_at  TEXT NOT NULL,
  updated_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS projects (
  id         TEXT PRIMARY KEY,
  name       TEXT NOT NULL,
  color      TEXT NOT NULL,
  task_count INTEGER NOT NULL DEFAULT 0,
  position   INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS attachments (
  id       TEXT PRIMARY KEY,
  task_id  TEXT NOT NULL,
  name     TEXT NOT NULL,
  type     TEXT NOT NULL,
  url      TEXT NOT NULL,
  size     INTEGER NOT NULL,
  position INTEGER NOT NULL
);
`

type Store struct {
	db *sqlx.DB
}

var _ ports.LocalStore = (*Store)(nil)

func Open(path string) (*Store, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying handle for health checks.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

type taskRow struct {
	ID          string         `db:"id"`
	Title       string         `db:"title"`
	Description string         `db:"description"`
	Status      string         `db:"status"`
	Priority    string         `db:"priority"`
	ProjectID   string         `db:"project_id"`
	DueDate     sql.NullString `db:"due_date"`
	Reminder    sql.NullString `db:"reminder"`
	Position    int            `db:"position"`
	CreatedAt   string         `db:"created_at"`
	UpdatedAt   string         `db:"updated_at"`
}

type projectRow struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	Color     string `db:"color"`
	TaskCount int    `db:"task_count"`
	Position  int    `db:"position"`
}

type attachmentRow struct {
	ID       string `db:"id"`
	TaskID   string `db:"task_id"`
	Name     string `db:"name"`
	Type     string `db:"type"`
	URL      string `db:"url"`
	Size     int64  `db:"size"`
	Position int    `db:"position"`
}

// ReplaceAll rewrites the snapshot in a single transaction. Project task
// counts are recomputed from the task rows on every save.
func (s *Store) ReplaceAll(ctx context.Context, tasks []domain.Task, projects []domain.Project) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"tasks", "projects", "attachments"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}

	counts := make(map[string]int, len(projects))
	for pos, t := range tasks {
		if t.ProjectID != "" {
			counts[t.ProjectID]++
		}
		if _, err := tx.NamedExecContext(ctx, `
			INSERT INTO tasks (id, title, description, status, priority, project_id, due_date, reminder, position, created_at, updated_at)
			VALUES (:id, :title, :description, :status, :priority, :project_id, :due_date, :reminder, :position, :created_at, :updated_at)`,
			taskToRow(t, pos),
		); err != nil {
			return err
		}
		for apos, a := range t.Attachments {
			if _, err := tx.NamedExecContext(ctx, `
				INSERT INTO attachments (id, task_id, name, type, url, size, position)
				VALUES (:id, :task_id, :name, :type, :url, :size, :position)`,
				attachmentRow{ID: a.ID, TaskID: t.ID, Name: a.Name, Type: a.Type, URL: a.URL, Size: a.Size, Position: apos},
			); err != nil {
				return err
			}
		}
	}

	for pos, p := range projects {
		if _, err := tx.NamedExecContext(ctx, `
			INSERT INTO projects (id, name, color, task_count, position)
			VALUES (:id, :name, :color, :task_count, :position)`,
			projectRow{ID: p.ID, Name: p.Name, Color: p.Color, TaskCount: counts[p.ID], Position: pos},
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Load reads the snapshot back in saved order.
func (s *Store) Load(ctx context.Context) ([]domain.Task, []domain.Project, error) {
	var taskRows []taskRow
	if err := s.db.SelectContext(ctx, &taskRows, "SELECT * FROM tasks ORDER BY position"); err != nil {
		return nil, nil, err
	}
	var attachmentRows []attachmentRow
	if err := s.db.SelectContext(ctx, &attachmentRows, "SELECT * FROM attachments ORDER BY task_id, position"); err != nil {
		return nil, nil, err
	}
	var projectRows []projectRow
	if err := s.db.SelectContext(ctx, &projectRows, "SELECT * FROM projects ORDER BY position"); err != nil {
		return nil, nil, err
	}

	byTask := make(map[string][]domain.Attachment, len(attachmentRows))
	for _, row := range attachmentRows {
		byTask[row.TaskID] = append(byTask[row.TaskID], domain.Attachment{
			ID: row.ID, Name: row.Name, Type: row.Type, URL: row.URL, Size: row.Size,
		})
	}

	tasks := make([]domain.Task, 0, len(taskRows))
	for _, row := range taskRows {
		task, err := rowToTask(row)
		if err != nil {
			return nil, nil, err
		}
		task.Attachments = byTask[task.ID]
		tasks = append(tasks, task)
	}

	projects := make([]domain.Project, 0, len(projectRows))
	for _, row := range projectRows {
		projects = append(projects, domain.Project{
			ID: row.ID, Name: row.Name, Color: row.Color, TaskCount: row.TaskCount,
		})
	}
	return tasks, projects, nil
}

func taskToRow(t domain.Task, pos int) taskRow {
	row := taskRow{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		ProjectID:   t.ProjectID,
		Position:    pos,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339Nano),
	}
	if t.DueDate != nil {
		row.DueDate = sql.NullString{String: t.DueDate.Format(time.RFC3339Nano), Valid: true}
	}
	if t.Reminder != nil {
		row.Reminder = sql.NullString{String: t.Reminder.Format(time.RFC3339Nano), Valid: true}
	}
	return row
}

func rowToTask(row taskRow) (domain.Task, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, row.CreatedAt)
	if err != nil {
		return domain.Task{}, err
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, row.UpdatedAt)
	if err != nil {
		return domain.Task{}, err
	}

	task := domain.Task{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Status:      domain.TaskStatus(row.Status),
		Priority:    domain.TaskPriority(row.Priority),
		ProjectID:   row.ProjectID,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
	if row.DueDate.Valid {
		due, err := time.Parse(time.RFC3339Nano, row.DueDate.String)
		if err != nil {
			return domain.Task{}, err
		}
		task.DueDate = &due
	}
	if row.Reminder.Valid {
		reminder, err := time.Parse(time.RFC3339Nano, row.Reminder.String)
		if err != nil {
			return domain.Task{}, err
		}
		task.Reminder = &reminder
	}
	return task, nil
}
