// Package store is the primary task store, a SQLite database owning the
// canonical task set. The JSON snapshot under the storage directory is a
// derived mirror; this database is authoritative.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/LoveFromCodes/todo-list/internal/clierr"
	"github.com/LoveFromCodes/todo-list/internal/task"
)

// Store wraps the SQLite connection for the task database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the task database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS tasks (
			id              TEXT PRIMARY KEY,
			title           TEXT NOT NULL,
			is_completed    INTEGER NOT NULL DEFAULT 0,
			priority        TEXT NOT NULL DEFAULT 'normal',
			created_at      INTEGER NOT NULL,
			completed_at    INTEGER,
			due_date        INTEGER,
			note            TEXT NOT NULL DEFAULT '',
			attachment_path TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_tasks_created_at ON tasks(created_at);
	`)
	return err
}

const taskColumns = "id, title, is_completed, priority, created_at, completed_at, due_date, note, attachment_path"

// Insert adds a new task.
func (s *Store) Insert(t *task.Task) error {
	_, err := s.db.Exec(
		"INSERT INTO tasks ("+taskColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		insertArgs(t)...,
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

// Update rewrites all mutable fields of an existing task.
func (s *Store) Update(t *task.Task) error {
	res, err := s.db.Exec(
		`UPDATE tasks SET title = ?, is_completed = ?, priority = ?, completed_at = ?,
			due_date = ?, note = ?, attachment_path = ? WHERE id = ?`,
		t.Title, boolToInt(t.IsCompleted), string(t.Priority), unixPtr(t.CompletedAt),
		unixPtr(t.DueDate), t.Note, nullString(t.AttachmentPath), t.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return notFoundIfZero(res, t.ID)
}

// Delete removes a task by ID.
func (s *Store) Delete(id uuid.UUID) error {
	res, err := s.db.Exec("DELETE FROM tasks WHERE id = ?", id.String())
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return notFoundIfZero(res, id)
}

// Get returns a task by ID.
func (s *Store) Get(id uuid.UUID) (*task.Task, error) {
	row := s.db.QueryRow("SELECT "+taskColumns+" FROM tasks WHERE id = ?", id.String())
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, clierr.Newf(clierr.TaskNotFound, "task %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("reading task: %w", err)
	}
	return t, nil
}

// All returns every task, ordered by creation time then ID for
// deterministic output.
func (s *Store) All() ([]*task.Task, error) {
	rows, err := s.db.Query("SELECT " + taskColumns + " FROM tasks ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// ReplaceAll atomically swaps the entire task set for the given one.
// Used by the directory-switch import protocol: delete-all then
// insert-all, never a merge.
func (s *Store) ReplaceAll(tasks []*task.Task) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec("DELETE FROM tasks"); err != nil {
		return fmt.Errorf("clearing tasks: %w", err)
	}
	for _, t := range tasks {
		if _, err := tx.Exec(
			"INSERT INTO tasks ("+taskColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
			insertArgs(t)...,
		); err != nil {
			return fmt.Errorf("inserting task %s: %w", t.ID, err)
		}
	}

	return tx.Commit()
}

// Counts returns total, completed and pending task counts.
func (s *Store) Counts() (total, completed, pending int, err error) {
	row := s.db.QueryRow("SELECT COUNT(*), COALESCE(SUM(is_completed), 0) FROM tasks")
	if err = row.Scan(&total, &completed); err != nil {
		return 0, 0, 0, fmt.Errorf("counting tasks: %w", err)
	}
	return total, completed, total - completed, nil
}

func insertArgs(t *task.Task) []any {
	return []any{
		t.ID.String(), t.Title, boolToInt(t.IsCompleted), string(t.Priority),
		t.CreatedAt.Unix(), unixPtr(t.CompletedAt), unixPtr(t.DueDate),
		t.Note, nullString(t.AttachmentPath),
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*task.Task, error) {
	var (
		id, title, priority, note string
		completedInt              int
		createdUnix               int64
		completedUnix, dueUnix    sql.NullInt64
		attachment                sql.NullString
	)
	if err := row.Scan(&id, &title, &completedInt, &priority, &createdUnix,
		&completedUnix, &dueUnix, &note, &attachment); err != nil {
		return nil, err
	}

	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parsing task id %q: %w", id, err)
	}

	t := &task.Task{
		ID:          parsedID,
		Title:       title,
		IsCompleted: completedInt != 0,
		Priority:    task.Priority(priority),
		CreatedAt:   time.Unix(createdUnix, 0),
		Note:        note,
	}
	if completedUnix.Valid {
		ts := time.Unix(completedUnix.Int64, 0)
		t.CompletedAt = &ts
	}
	if dueUnix.Valid {
		ts := time.Unix(dueUnix.Int64, 0)
		t.DueDate = &ts
	}
	if attachment.Valid {
		t.AttachmentPath = attachment.String
	}
	return t, nil
}

func notFoundIfZero(res sql.Result, id uuid.UUID) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return clierr.Newf(clierr.TaskNotFound, "task %s not found", id)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func unixPtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Unix()
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
