package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/taskmanager/task-api/internal/models"
)

var (
	ErrTaskNotFound   = errors.New("task not found")
	ErrDuplicateTitle = errors.New("duplicate active task title")
)

type Tasks interface {
	// FindAll returns every stored task in natural storage order.
	// An empty store yields an empty slice, not nil.
	FindAll(ctx context.Context) ([]models.Task, error)

	// FindByID returns ErrTaskNotFound if no task has the given id.
	FindByID(ctx context.Context, id int64) (*models.Task, error)

	// Save inserts the task when its ID is zero, assigning a fresh id,
	// and otherwise replaces the stored row wholesale. It returns
	// ErrDuplicateTitle if the store's active-title constraint rejects
	// the write.
	Save(ctx context.Context, task *models.Task) error

	// Delete returns ErrTaskNotFound if no task has the given id.
	Delete(ctx context.Context, id int64) error

	// ExistsActiveByTitle reports whether a not-completed task with
	// exactly the given title exists.
	ExistsActiveByTitle(ctx context.Context, title string) (bool, error)
}

type tasksImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewTasks(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) Tasks {
	return &tasksImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

func (r *tasksImpl) FindAll(ctx context.Context) ([]models.Task, error) {
	const selectTasksQuery = `
SELECT id,
       title,
       description,
       completed
FROM tasks
`
	rows, err := r.pgPool.Query(ctx, selectTasksQuery)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to select tasks")
		return nil, err
	}
	defer rows.Close()

	tasks := make([]models.Task, 0)
	for rows.Next() {
		var task models.Task
		err = rows.Scan(
			&task.ID,
			&task.Header,
			&task.Description,
			&task.Completed,
		)
		if err != nil {
			r.logger.Error().
				Err(err).
				Msg("failed to scan task")
			return nil, err
		}
		tasks = append(tasks, task)
	}

	err = rows.Err()
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}
	r.logger.Debug().
		Int("count", len(tasks)).
		Msg("selected tasks")

	return tasks, nil
}

func (r *tasksImpl) FindByID(ctx context.Context, id int64) (*models.Task, error) {
	task := &models.Task{ID: id}

	const selectTaskByIDQuery = `
SELECT title,
       description,
       completed
FROM tasks
WHERE id = $1
`
	err := r.pgPool.QueryRow(
		ctx,
		selectTaskByIDQuery,
		task.ID,
	).Scan(
		&task.Header,
		&task.Description,
		&task.Completed,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Warn().
				Int64("task_id", id).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		r.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to select task by id")
		return nil, err
	}
	r.logger.Debug().
		Int64("task_id", id).
		Msg("selected task by id")

	return task, nil
}

func (r *tasksImpl) Save(ctx context.Context, task *models.Task) error {
	if task.ID == 0 {
		return r.insert(ctx, task)
	}
	return r.update(ctx, task)
}

func (r *tasksImpl) insert(ctx context.Context, task *models.Task) error {
	const insertTaskQuery = `
INSERT INTO tasks (title,
                   description,
                   completed)
VALUES ($1, $2, $3)
RETURNING id
`
	err := r.pgPool.QueryRow(
		ctx,
		insertTaskQuery,
		task.Header,
		task.Description,
		task.Completed,
	).Scan(&task.ID)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Warn().
				Str("title", task.Header).
				Msg("active task with this title already exists")
			return ErrDuplicateTitle
		}

		r.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return err
	}
	r.logger.Debug().
		Int64("task_id", task.ID).
		Msg("inserted task")

	return nil
}

func (r *tasksImpl) update(ctx context.Context, task *models.Task) error {
	const updateTaskQuery = `
UPDATE tasks
SET title = $1,
    description = $2,
    completed = $3
WHERE id = $4
`
	tag, err := r.pgPool.Exec(
		ctx,
		updateTaskQuery,
		task.Header,
		task.Description,
		task.Completed,
		task.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Warn().
				Int64("task_id", task.ID).
				Str("title", task.Header).
				Msg("active task with this title already exists")
			return ErrDuplicateTitle
		}

		r.logger.Error().
			Err(err).
			Int64("task_id", task.ID).
			Msg("failed to update task")
		return err
	}
	if tag.RowsAffected() == 0 {
		r.logger.Warn().
			Int64("task_id", task.ID).
			Msg("task not found")
		return ErrTaskNotFound
	}
	r.logger.Debug().
		Int64("task_id", task.ID).
		Msg("updated task")

	return nil
}

func (r *tasksImpl) Delete(ctx context.Context, id int64) error {
	const deleteTaskQuery = `
DELETE FROM tasks
WHERE id = $1
`
	tag, err := r.pgPool.Exec(
		ctx,
		deleteTaskQuery,
		id,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to delete task")
		return err
	}
	if tag.RowsAffected() == 0 {
		r.logger.Warn().
			Int64("task_id", id).
			Msg("task not found")
		return ErrTaskNotFound
	}
	r.logger.Debug().
		Int64("task_id", id).
		Msg("deleted task")

	return nil
}

func (r *tasksImpl) ExistsActiveByTitle(ctx context.Context, title string) (bool, error) {
	const existsActiveByTitleQuery = `
SELECT EXISTS (
    SELECT 1
    FROM tasks
    WHERE title = $1 AND
          NOT completed
)
`
	var exists bool
	err := r.pgPool.QueryRow(
		ctx,
		existsActiveByTitleQuery,
		title,
	).Scan(&exists)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("title", title).
			Msg("failed to check active task title")
		return false, err
	}
	r.logger.Debug().
		Str("title", title).
		Bool("exists", exists).
		Msg("checked active task title")

	return exists, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
