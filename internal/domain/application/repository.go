package application

import (
	"context"

	"github.com/someswar123624/job-portal-backend/internal/common"
)

type Repository interface {
	// Create must fail with a conflict when an application for the same
	// (student, job) pair already exists, even under concurrent calls.
	Create(ctx context.Context, app Application) (*Application, error)
	GetByID(ctx context.Context, id common.UUID) (*Application, error)
	GetDetails(ctx context.Context, id common.UUID) (*Details, error)
	FindByStudentAndJob(ctx context.Context, studentID, jobID common.UUID) (*Application, error)
	ListByStudent(ctx context.Context, studentID common.UUID) ([]Details, error)
	ListByEmployer(ctx context.Context, employerID common.UUID) ([]Details, error)
	ListByJob(ctx context.Context, jobID common.UUID) ([]Details, error)
	UpdateStatus(ctx context.Context, id common.UUID, status Status) (*Application, error)
}
