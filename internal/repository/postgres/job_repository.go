package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/someswar123624/job-portal-backend/internal/common"
	"github.com/someswar123624/job-portal-backend/internal/domain/job"
)

type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	j.ID = common.NewUUID()
	now := time.Now().UTC()
	j.CreatedAt = now
	j.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO jobs (id, employer_id, title, company, location, description, salary, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		j.ID, j.EmployerID, j.Title, j.Company, j.Location, j.Description, j.Salary, j.Status, j.CreatedAt, j.UpdatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create job", err)
	}
	return &j, nil
}

func (r *JobRepository) GetByID(ctx context.Context, id common.UUID) (*job.Job, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, employer_id, title, company, location, description, salary, status, created_at, updated_at FROM jobs WHERE id = $1`, id)
	var j job.Job
	if err := row.Scan(&j.ID, &j.EmployerID, &j.Title, &j.Company, &j.Location, &j.Description, &j.Salary, &j.Status, &j.CreatedAt, &j.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "job not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load job", err)
	}
	return &j, nil
}

func (r *JobRepository) List(ctx context.Context, limit, offset int) ([]job.Job, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, employer_id, title, company, location, description, salary, status, created_at, updated_at
		FROM jobs ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list jobs", err)
	}
	defer rows.Close()
	return scanJobs(rows)
}

func (r *JobRepository) ListByEmployer(ctx context.Context, employerID common.UUID) ([]job.Job, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, employer_id, title, company, location, description, salary, status, created_at, updated_at
		FROM jobs WHERE employer_id = $1 ORDER BY created_at DESC`, employerID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list employer jobs", err)
	}
	defer rows.Close()
	return scanJobs(rows)
}

func scanJobs(rows *sql.Rows) ([]job.Job, error) {
	var items []job.Job
	for rows.Next() {
		var j job.Job
		if err := rows.Scan(&j.ID, &j.EmployerID, &j.Title, &j.Company, &j.Location, &j.Description, &j.Salary, &j.Status, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan job", err)
		}
		items = append(items, j)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list jobs", err)
	}
	return items, nil
}
