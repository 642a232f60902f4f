package app

import (
	"context"

	"github.com/someswar123624/job-portal-backend/internal/common"
	"github.com/someswar123624/job-portal-backend/internal/domain/application"
	"github.com/someswar123624/job-portal-backend/internal/domain/job"
)

type ApplicationService struct {
	repo application.Repository
	jobs job.Repository
}

func NewApplicationService(repo application.Repository, jobs job.Repository) *ApplicationService {
	return &ApplicationService{repo: repo, jobs: jobs}
}

// Apply creates the single application a student may hold for a job. The
// pre-check gives a clean conflict message; the store's unique key on
// (student_id, job_id) decides the winner when two requests race.
func (s *ApplicationService) Apply(ctx context.Context, studentID, jobID common.UUID, form application.FormData) (*application.Application, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByStudentAndJob(ctx, studentID, jobID); err == nil {
		return nil, common.NewError(common.CodeConflict, "already applied for this job", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	created, err := s.repo.Create(ctx, application.Application{
		StudentID:  studentID,
		EmployerID: j.EmployerID,
		JobID:      jobID,
		Form:       form,
		Status:     application.StatusApplied,
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *ApplicationService) ListByStudent(ctx context.Context, studentID common.UUID) ([]application.Details, error) {
	return s.repo.ListByStudent(ctx, studentID)
}

func (s *ApplicationService) ListByEmployer(ctx context.Context, employerID common.UUID) ([]application.Details, error) {
	return s.repo.ListByEmployer(ctx, employerID)
}

// ListByJob returns the applications for one posting, only to the employer who
// owns it.
func (s *ApplicationService) ListByJob(ctx context.Context, employerID, jobID common.UUID) ([]application.Details, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.EmployerID != employerID {
		return nil, common.NewError(common.CodeForbidden, "job belongs to another employer", nil)
	}
	return s.repo.ListByJob(ctx, jobID)
}

// UpdateStatus checks existence, then ownership, then status validity, in
// that order: a non-owning employer always gets a forbidden answer no matter
// what status it sent, and nothing is persisted before validation passes.
func (s *ApplicationService) UpdateStatus(ctx context.Context, employerID, applicationID common.UUID, status application.Status) (*application.Details, error) {
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.EmployerID != employerID {
		return nil, common.NewError(common.CodeForbidden, "application belongs to another employer", nil)
	}
	next := application.NormalizeStatus(status)
	if !application.IsKnownStatus(next) {
		return nil, common.NewValidationError("invalid status", map[string]string{"status": "status must be pending, applied, accepted, or rejected"})
	}
	if _, err := s.repo.UpdateStatus(ctx, applicationID, next); err != nil {
		return nil, err
	}
	return s.repo.GetDetails(ctx, applicationID)
}
