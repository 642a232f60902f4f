package actor

import (
	"context"

	"github.com/someswar123624/job-portal-backend/internal/common"
)

// Repository is implemented once per actor kind over its own table. The
// federated login resolution depends on the interface being identical for both
// kinds.
type Repository interface {
	Create(ctx context.Context, a Actor) (*Actor, error)
	GetByID(ctx context.Context, id common.UUID) (*Actor, error)
	GetByEmail(ctx context.Context, email string) (*Actor, error)
	GetByGoogleID(ctx context.Context, googleID string) (*Actor, error)
	AttachGoogleID(ctx context.Context, id common.UUID, googleID string) error
}
