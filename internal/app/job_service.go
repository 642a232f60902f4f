package app

import (
	"context"

	"github.com/someswar123624/job-portal-backend/internal/common"
	"github.com/someswar123624/job-portal-backend/internal/domain/job"
)

type JobService struct {
	repo job.Repository
}

func NewJobService(repo job.Repository) *JobService {
	return &JobService{repo: repo}
}

func (s *JobService) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	fields := map[string]string{}
	if j.Title == "" {
		fields["title"] = "title is required"
	}
	if j.Company == "" {
		fields["company"] = "company is required"
	}
	if j.Location == "" {
		fields["location"] = "location is required"
	}
	if j.Description == "" {
		fields["description"] = "description is required"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid job", fields)
	}
	if j.Status == "" {
		j.Status = job.StatusOpen
	}
	return s.repo.Create(ctx, j)
}

func (s *JobService) Get(ctx context.Context, id common.UUID) (*job.Job, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *JobService) List(ctx context.Context, limit, offset int) ([]job.Job, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *JobService) ListByEmployer(ctx context.Context, employerID common.UUID) ([]job.Job, error) {
	return s.repo.ListByEmployer(ctx, employerID)
}
