package task

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/example/task-events-backend/domain/task"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	id BIGSERIAL PRIMARY KEY,
	title VARCHAR(255) NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	status VARCHAR(50) NOT NULL DEFAULT 'pending',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const taskColumns = "id, title, description, status, created_at, updated_at"

// PostgresRepository provides access to task storage using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// Compile-time interface check.
var _ TaskRepository = (*PostgresRepository)(nil)

// NewPostgresRepository creates a new task repository backed by the given pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// InitSchema creates the tasks table if it does not exist yet.
func (r *PostgresRepository) InitSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// Insert saves a new task row. The store assigns id, timestamps and the
// default pending status.
func (r *PostgresRepository) Insert(ctx context.Context, title, description string) (*domain.Task, error) {
	row := r.pool.QueryRow(ctx,
		"INSERT INTO tasks (title, description) VALUES ($1, $2) RETURNING "+taskColumns,
		title, description,
	)
	return scanTask(row)
}

// FindByID retrieves a task by id.
func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*domain.Task, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE id = $1", id,
	)
	return scanTask(row)
}

// FindAll retrieves all tasks, newest first.
func (r *PostgresRepository) FindAll(ctx context.Context) ([]domain.Task, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+taskColumns+" FROM tasks ORDER BY created_at DESC, id DESC",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// Update replaces the three mutable fields of a task and refreshes
// updated_at in a single statement.
func (r *PostgresRepository) Update(ctx context.Context, id int64, title, description string, status domain.Status) (*domain.Task, error) {
	row := r.pool.QueryRow(ctx,
		"UPDATE tasks SET title = $1, description = $2, status = $3, updated_at = now() WHERE id = $4 RETURNING "+taskColumns,
		title, description, string(status), id,
	)
	return scanTask(row)
}

// Delete removes a task row and returns the removed row.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) (*domain.Task, error) {
	row := r.pool.QueryRow(ctx,
		"DELETE FROM tasks WHERE id = $1 RETURNING "+taskColumns, id,
	)
	return scanTask(row)
}

// scanTask scans a task row, mapping the no-rows case to the domain
// not-found sentinel.
func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	var status string
	err := row.Scan(&t.ID, &t.Title, &t.Description, &status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, mapRowError(err)
	}
	t.Status = domain.Status(status)
	return &t, nil
}

// mapRowError translates pgx row errors into domain errors.
func mapRowError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}
