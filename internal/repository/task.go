package repository

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sunlighthq/tasks-service/internal/entity"
)

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{
		db: db,
	}
}

const taskColumns = `id, text, completed, priority, due_date, category, description, owner_id, created_at, updated_at`

func scanTask(row pgx.Row) (*entity.Task, error) {
	var task entity.Task
	err := row.Scan(
		&task.ID,
		&task.Text,
		&task.Completed,
		&task.Priority,
		&task.DueDate,
		&task.Category,
		&task.Description,
		&task.OwnerID,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) Create(ctx context.Context, ownerID string, req *entity.CreateTaskRequest) (*entity.Task, error) {
	query := `
	INSERT INTO task (id, text, completed, priority, due_date, category, description, owner_id)
	VALUES ($1, $2, false, $3, $4, $5, $6, $7)
	RETURNING ` + taskColumns

	return scanTask(r.db.QueryRow(ctx, query,
		uuid.NewString(),
		req.Text,
		req.Priority,
		req.DueDate,
		req.Category,
		req.Description,
		ownerID,
	))
}

func (r *TaskRepository) GetByID(ctx context.Context, ownerID, taskID string) (*entity.Task, error) {
	query := `
	SELECT ` + taskColumns + `
	FROM task
	WHERE id = $1 AND owner_id = $2
	`

	task, err := scanTask(r.db.QueryRow(ctx, query, taskID, ownerID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return task, nil
}

// ListByOwner returns the owner's full collection, newest-created-first.
func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID string) ([]entity.Task, error) {
	query := `
	SELECT ` + taskColumns + `
	FROM task
	WHERE owner_id = $1
	ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []entity.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}

	return tasks, rows.Err()
}

// Update applies the patch in a single statement. The owner id sits in the
// WHERE clause, so "no such task" and "someone else's task" are the same
// no-row result, and the ownership check cannot race with the write. An empty
// patch still bumps updated_at.
func (r *TaskRepository) Update(ctx context.Context, ownerID, taskID string, updates map[string]interface{}) (*entity.Task, error) {
	setClause := "updated_at = CURRENT_TIMESTAMP"
	args := []interface{}{}
	argIndex := 1

	for field, value := range updates {
		setClause += ", " + field + " = $" + strconv.Itoa(argIndex)
		args = append(args, value)
		argIndex++
	}

	query := `
	UPDATE task
	SET ` + setClause + `
	WHERE id = $` + strconv.Itoa(argIndex) + ` AND owner_id = $` + strconv.Itoa(argIndex+1) + `
	RETURNING ` + taskColumns
	args = append(args, taskID, ownerID)

	task, err := scanTask(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return task, nil
}

// Delete hard-removes the task. The bool result reports whether a row owned
// by ownerID actually existed.
func (r *TaskRepository) Delete(ctx context.Context, ownerID, taskID string) (bool, error) {
	query := `DELETE FROM task WHERE id = $1 AND owner_id = $2`

	tag, err := r.db.Exec(ctx, query, taskID, ownerID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
