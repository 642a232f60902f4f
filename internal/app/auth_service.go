package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/someswar123624/job-portal-backend/internal/common"
	"github.com/someswar123624/job-portal-backend/internal/domain/actor"
	"github.com/someswar123624/job-portal-backend/internal/integration/googleauth"
	"github.com/someswar123624/job-portal-backend/internal/security"
)

// AuthService handles registration and both login modes for students and
// employers. The two kinds share every flow; only the backing store differs.
type AuthService struct {
	students  actor.Repository
	employers actor.Repository
	jwt       *security.JWTProvider
	google    googleauth.Verifier
	logger    Logger
	accessTTL time.Duration
}

type Logger interface {
	Info(msg string)
	Error(msg string)
}

func NewAuthService(students, employers actor.Repository, jwt *security.JWTProvider, google googleauth.Verifier, logger Logger, accessTTL time.Duration) *AuthService {
	return &AuthService{
		students:  students,
		employers: employers,
		jwt:       jwt,
		google:    google,
		logger:    logger,
		accessTTL: accessTTL,
	}
}

// AuthResult pairs the authenticated actor with a freshly issued token.
type AuthResult struct {
	Actor     *actor.Actor
	Token     string
	ExpiresAt time.Time
}

func (s *AuthService) repoFor(role actor.Role) actor.Repository {
	if role == actor.RoleEmployer {
		return s.employers
	}
	return s.students
}

func (s *AuthService) Register(ctx context.Context, role actor.Role, name, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	repo := s.repoFor(role)
	if _, err := repo.GetByEmail(ctx, email); err == nil {
		return nil, common.NewError(common.CodeConflict, "email already registered", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to hash password", err)
	}
	created, err := repo.Create(ctx, actor.Actor{Name: name, Email: email, PasswordHash: hash})
	if err != nil {
		return nil, err
	}
	s.logInfo(fmt.Sprintf("registered %s id=%s", role, created.ID))
	return s.issue(created, role)
}

func (s *AuthService) Login(ctx context.Context, role actor.Role, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	account, err := s.repoFor(role).GetByEmail(ctx, email)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			// Burn a hash comparison so unknown emails cost the
			// same as wrong passwords.
			security.CheckPassword(password, "")
			return nil, errInvalidCredentials()
		}
		return nil, err
	}
	if !security.CheckPassword(password, account.PasswordHash) {
		s.logInfo(fmt.Sprintf("login failed %s id=%s", role, account.ID))
		return nil, errInvalidCredentials()
	}
	return s.issue(account, role)
}

// LoginWithGoogle resolves a verified Google identity against the store:
// match by subject id, else link by email, else create a fresh account.
func (s *AuthService) LoginWithGoogle(ctx context.Context, role actor.Role, idToken string) (*AuthResult, error) {
	if s.google == nil {
		return nil, common.NewError(common.CodeUpstream, "google login is not configured", nil)
	}
	identity, err := s.google.Verify(ctx, idToken)
	if err != nil {
		s.logError("google id token verification failed")
		return nil, common.NewError(common.CodeUpstream, "google login failed", err)
	}

	repo := s.repoFor(role)
	account, err := repo.GetByGoogleID(ctx, identity.SubjectID)
	if err == nil {
		return s.issue(account, role)
	}
	if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}

	email := normalizeEmail(identity.Email)
	account, err = repo.GetByEmail(ctx, email)
	if err == nil {
		if linkErr := repo.AttachGoogleID(ctx, account.ID, identity.SubjectID); linkErr != nil {
			return nil, linkErr
		}
		account.GoogleID = identity.SubjectID
		s.logInfo(fmt.Sprintf("linked google account %s id=%s", role, account.ID))
		return s.issue(account, role)
	}
	if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}

	created, err := repo.Create(ctx, actor.Actor{Name: identity.Name, Email: email, GoogleID: identity.SubjectID})
	if err != nil {
		return nil, err
	}
	s.logInfo(fmt.Sprintf("created %s from google login id=%s", role, created.ID))
	return s.issue(created, role)
}

func (s *AuthService) issue(account *actor.Actor, role actor.Role) (*AuthResult, error) {
	token, expiresAt, err := s.jwt.Generate(account.ID, role, s.accessTTL)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to generate token", err)
	}
	return &AuthResult{Actor: account, Token: token, ExpiresAt: expiresAt}, nil
}

func errInvalidCredentials() error {
	return common.NewError(common.CodeUnauthorized, "invalid credentials", nil)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) logInfo(msg string) {
	if s.logger != nil {
		s.logger.Info(msg)
	}
}

func (s *AuthService) logError(msg string) {
	if s.logger != nil {
		s.logger.Error(msg)
	}
}
