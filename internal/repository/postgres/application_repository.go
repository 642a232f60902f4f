package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/someswar123624/job-portal-backend/internal/common"
	"github.com/someswar123624/job-portal-backend/internal/domain/application"
)

type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const applicationColumns = `id, student_id, employer_id, job_id, form_name, form_srn, form_college, form_class10, form_class12, form_degree, form_degree_cgpa, form_skills, form_projects, form_resume, status, created_at, updated_at`

func (r *ApplicationRepository) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	app.ID = common.NewUUID()
	now := time.Now().UTC()
	app.CreatedAt = now
	app.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO applications (`+applicationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		app.ID, app.StudentID, app.EmployerID, app.JobID,
		app.Form.Name, app.Form.SRN, app.Form.College, app.Form.Class10, app.Form.Class12,
		app.Form.Degree, app.Form.DegreeCGPA, pq.Array(app.Form.Skills), app.Form.Projects, app.Form.Resume,
		app.Status, app.CreatedAt, app.UpdatedAt)
	if err != nil {
		// The unique index on (student_id, job_id) closes the
		// check-then-insert race.
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "already applied for this job", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create application", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	return scanApplication(row)
}

func (r *ApplicationRepository) FindByStudentAndJob(ctx context.Context, studentID, jobID common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE student_id = $1 AND job_id = $2`, studentID, jobID)
	return scanApplication(row)
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id common.UUID, status application.Status) (*application.Application, error) {
	_, err := r.db.ExecContext(ctx, `UPDATE applications SET status = $1, updated_at = $2 WHERE id = $3`, status, time.Now().UTC(), id)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update application", err)
	}
	return r.GetByID(ctx, id)
}

const detailsQuery = `SELECT a.id, a.student_id, a.employer_id, a.job_id,
		a.form_name, a.form_srn, a.form_college, a.form_class10, a.form_class12,
		a.form_degree, a.form_degree_cgpa, a.form_skills, a.form_projects, a.form_resume,
		a.status, a.created_at, a.updated_at,
		j.title, j.company, j.location, j.salary, j.description,
		s.name, s.email,
		e.name, e.email
	FROM applications a
	JOIN jobs j ON j.id = a.job_id
	JOIN students s ON s.id = a.student_id
	JOIN employers e ON e.id = a.employer_id`

func (r *ApplicationRepository) GetDetails(ctx context.Context, id common.UUID) (*application.Details, error) {
	row := r.db.QueryRowContext(ctx, detailsQuery+` WHERE a.id = $1`, id)
	return scanDetails(row)
}

func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID common.UUID) ([]application.Details, error) {
	rows, err := r.db.QueryContext(ctx, detailsQuery+` WHERE a.student_id = $1 ORDER BY a.created_at DESC`, studentID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list student applications", err)
	}
	defer rows.Close()
	return collectDetails(rows)
}

func (r *ApplicationRepository) ListByEmployer(ctx context.Context, employerID common.UUID) ([]application.Details, error) {
	rows, err := r.db.QueryContext(ctx, detailsQuery+` WHERE a.employer_id = $1 ORDER BY a.created_at DESC`, employerID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list employer applications", err)
	}
	defer rows.Close()
	return collectDetails(rows)
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID common.UUID) ([]application.Details, error) {
	rows, err := r.db.QueryContext(ctx, detailsQuery+` WHERE a.job_id = $1 ORDER BY a.created_at DESC`, jobID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list job applications", err)
	}
	defer rows.Close()
	return collectDetails(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (*application.Application, error) {
	var app application.Application
	err := row.Scan(&app.ID, &app.StudentID, &app.EmployerID, &app.JobID,
		&app.Form.Name, &app.Form.SRN, &app.Form.College, &app.Form.Class10, &app.Form.Class12,
		&app.Form.Degree, &app.Form.DegreeCGPA, pq.Array(&app.Form.Skills), &app.Form.Projects, &app.Form.Resume,
		&app.Status, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	app.Status = application.NormalizeStatus(app.Status)
	return &app, nil
}

func scanDetails(row rowScanner) (*application.Details, error) {
	var d application.Details
	var jobSummary application.JobSummary
	var studentSummary application.StudentSummary
	var employerSummary application.EmployerSummary
	err := row.Scan(&d.ID, &d.StudentID, &d.EmployerID, &d.JobID,
		&d.Form.Name, &d.Form.SRN, &d.Form.College, &d.Form.Class10, &d.Form.Class12,
		&d.Form.Degree, &d.Form.DegreeCGPA, pq.Array(&d.Form.Skills), &d.Form.Projects, &d.Form.Resume,
		&d.Status, &d.CreatedAt, &d.UpdatedAt,
		&jobSummary.Title, &jobSummary.Company, &jobSummary.Location, &jobSummary.Salary, &jobSummary.Description,
		&studentSummary.Name, &studentSummary.Email,
		&employerSummary.CompanyName, &employerSummary.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	d.Status = application.NormalizeStatus(d.Status)
	d.Job = &jobSummary
	d.Student = &studentSummary
	d.Employer = &employerSummary
	return &d, nil
}

func collectDetails(rows *sql.Rows) ([]application.Details, error) {
	var items []application.Details
	for rows.Next() {
		d, err := scanDetails(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	return items, nil
}
