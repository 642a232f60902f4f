package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/someswar123624/job-portal-backend/internal/common"
	"github.com/someswar123624/job-portal-backend/internal/domain/actor"
)

// ActorRepository serves one actor kind; the table name is the only thing
// distinguishing the student and employer stores.
type ActorRepository struct {
	db    *sql.DB
	table string
}

func NewStudentRepository(db *sql.DB) *ActorRepository {
	return &ActorRepository{db: db, table: "students"}
}

func NewEmployerRepository(db *sql.DB) *ActorRepository {
	return &ActorRepository{db: db, table: "employers"}
}

func (r *ActorRepository) Create(ctx context.Context, a actor.Actor) (*actor.Actor, error) {
	a.ID = common.NewUUID()
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	query := fmt.Sprintf(`INSERT INTO %s (id, name, email, password_hash, google_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`, r.table)
	_, err := r.db.ExecContext(ctx, query, a.ID, a.Name, a.Email, a.PasswordHash, a.GoogleID, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "email already registered", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create account", err)
	}
	return &a, nil
}

func (r *ActorRepository) GetByID(ctx context.Context, id common.UUID) (*actor.Actor, error) {
	return r.getWhere(ctx, "id = $1", id)
}

func (r *ActorRepository) GetByEmail(ctx context.Context, email string) (*actor.Actor, error) {
	return r.getWhere(ctx, "email = $1", email)
}

func (r *ActorRepository) GetByGoogleID(ctx context.Context, googleID string) (*actor.Actor, error) {
	return r.getWhere(ctx, "google_id = $1 AND google_id <> ''", googleID)
}

func (r *ActorRepository) getWhere(ctx context.Context, where string, arg any) (*actor.Actor, error) {
	query := fmt.Sprintf(`SELECT id, name, email, password_hash, google_id, created_at, updated_at FROM %s WHERE %s`, r.table, where)
	row := r.db.QueryRowContext(ctx, query, arg)
	var a actor.Actor
	if err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.GoogleID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "account not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load account", err)
	}
	return &a, nil
}

func (r *ActorRepository) AttachGoogleID(ctx context.Context, id common.UUID, googleID string) error {
	query := fmt.Sprintf(`UPDATE %s SET google_id = $1, updated_at = $2 WHERE id = $3`, r.table)
	result, err := r.db.ExecContext(ctx, query, googleID, time.Now().UTC(), id)
	if err != nil {
		if isUniqueViolation(err) {
			return common.NewError(common.CodeConflict, "google account already linked", err)
		}
		return common.NewError(common.CodeInternal, "failed to link google account", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "account not found", sql.ErrNoRows)
	}
	return nil
}
