package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophtodo/internal/common"
	"github.com/dmitrijs2005/gophtodo/internal/dbx"
	"github.com/dmitrijs2005/gophtodo/internal/server/models"
	"github.com/google/uuid"
)

const taskColumns = `id, user_id, description, created_date, created_time, due_date, due_time, priority, completed`

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		task.ID, task.OwnerID, task.Description, task.CreatedDate, task.CreatedTime,
		task.DueDate, task.DueTime, string(task.Priority), task.Completed)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return task, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE user_id = $1
		ORDER BY seq
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select tasks: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) GetForUpdate(ctx context.Context, ownerID, id string) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE id = $1 AND ($2 = '' OR user_id = $2)
		FOR UPDATE
	`
	return r.one(ctx, query, id, ownerID)
}

func (r *PostgresRepository) Replace(ctx context.Context, task *models.Task) (*models.Task, error) {
	query := `
		UPDATE tasks SET
			description = $2,
			due_date = $3,
			due_time = $4,
			priority = $5,
			completed = $6
		WHERE id = $1
		RETURNING ` + taskColumns + `
	`
	return r.one(ctx, query,
		task.ID, task.Description, task.DueDate, task.DueTime, string(task.Priority), task.Completed)
}

func (r *PostgresRepository) SetCompleted(ctx context.Context, ownerID, id string, completed bool) (*models.Task, error) {
	query := `
		UPDATE tasks SET completed = $3
		WHERE id = $1 AND ($2 = '' OR user_id = $2)
		RETURNING ` + taskColumns + `
	`
	return r.one(ctx, query, id, ownerID, completed)
}

func (r *PostgresRepository) Delete(ctx context.Context, ownerID, id string) error {
	query := `DELETE FROM tasks WHERE id = $1 AND ($2 = '' OR user_id = $2)`

	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) one(ctx context.Context, query string, args ...any) (*models.Task, error) {
	task, err := scanTask(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return task, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (*models.Task, error) {
	var (
		t        models.Task
		priority string
	)
	if err := s.Scan(&t.ID, &t.OwnerID, &t.Description, &t.CreatedDate, &t.CreatedTime,
		&t.DueDate, &t.DueTime, &priority, &t.Completed); err != nil {
		return nil, err
	}
	t.Priority = models.Priority(priority)
	return &t, nil
}
