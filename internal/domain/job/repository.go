package job

import (
	"context"

	"github.com/someswar123624/job-portal-backend/internal/common"
)

type Repository interface {
	Create(ctx context.Context, j Job) (*Job, error)
	GetByID(ctx context.Context, id common.UUID) (*Job, error)
	List(ctx context.Context, limit, offset int) ([]Job, error)
	ListByEmployer(ctx context.Context, employerID common.UUID) ([]Job, error)
}
