package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/someswar123624/job-portal-backend/internal/common"
	"github.com/someswar123624/job-portal-backend/internal/domain/actor"
	"github.com/someswar123624/job-portal-backend/internal/integration/googleauth"
	"github.com/someswar123624/job-portal-backend/internal/security"
)

type fakeActorRepo struct {
	mu         sync.Mutex
	byID       map[common.UUID]*actor.Actor
	byEmail    map[string]*actor.Actor
	byGoogleID map[string]*actor.Actor
}

func newFakeActorRepo() *fakeActorRepo {
	return &fakeActorRepo{
		byID:       make(map[common.UUID]*actor.Actor),
		byEmail:    make(map[string]*actor.Actor),
		byGoogleID: make(map[string]*actor.Actor),
	}
}

func (r *fakeActorRepo) Create(ctx context.Context, a actor.Actor) (*actor.Actor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[a.Email]; ok {
		return nil, common.NewError(common.CodeConflict, "email already registered", nil)
	}
	a.ID = common.NewUUID()
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	stored := a
	r.byID[stored.ID] = &stored
	r.byEmail[stored.Email] = &stored
	if stored.GoogleID != "" {
		r.byGoogleID[stored.GoogleID] = &stored
	}
	return cloneActor(&stored), nil
}

func (r *fakeActorRepo) GetByID(ctx context.Context, id common.UUID) (*actor.Actor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byID[id]
	if account == nil {
		return nil, common.NewError(common.CodeNotFound, "account not found", nil)
	}
	return cloneActor(account), nil
}

func (r *fakeActorRepo) GetByEmail(ctx context.Context, email string) (*actor.Actor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byEmail[email]
	if account == nil {
		return nil, common.NewError(common.CodeNotFound, "account not found", nil)
	}
	return cloneActor(account), nil
}

func (r *fakeActorRepo) GetByGoogleID(ctx context.Context, googleID string) (*actor.Actor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byGoogleID[googleID]
	if account == nil {
		return nil, common.NewError(common.CodeNotFound, "account not found", nil)
	}
	return cloneActor(account), nil
}

func (r *fakeActorRepo) AttachGoogleID(ctx context.Context, id common.UUID, googleID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byID[id]
	if account == nil {
		return common.NewError(common.CodeNotFound, "account not found", nil)
	}
	account.GoogleID = googleID
	r.byGoogleID[googleID] = account
	return nil
}

func cloneActor(account *actor.Actor) *actor.Actor {
	copy := *account
	return &copy
}

type fakeVerifier struct {
	identity googleauth.Identity
	err      error
}

func (v *fakeVerifier) Verify(ctx context.Context, idToken string) (*googleauth.Identity, error) {
	if v.err != nil {
		return nil, v.err
	}
	identity := v.identity
	return &identity, nil
}

func newAuthServiceForTest(google googleauth.Verifier) (*AuthService, *fakeActorRepo, *fakeActorRepo) {
	students := newFakeActorRepo()
	employers := newFakeActorRepo()
	jwtProvider := security.NewJWTProvider("secret")
	service := NewAuthService(students, employers, jwtProvider, google, nil, time.Hour)
	return service, students, employers
}

func TestAuthServiceRegister(t *testing.T) {
	service, students, employers := newAuthServiceForTest(nil)

	result, err := service.Register(context.Background(), actor.RoleStudent, "Asha", "Asha@Example.com ", "pass123")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected token")
	}
	if result.Actor.Email != "asha@example.com" {
		t.Fatalf("expected normalized email, got %q", result.Actor.Email)
	}
	if result.Actor.PasswordHash == "pass123" {
		t.Fatal("password stored in plaintext")
	}
	if _, err := students.GetByEmail(context.Background(), "asha@example.com"); err != nil {
		t.Fatalf("expected student to exist, got %v", err)
	}
	if _, err := employers.GetByEmail(context.Background(), "asha@example.com"); !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected no employer record, got %v", err)
	}
}

func TestAuthServiceRegister_DuplicateEmail(t *testing.T) {
	service, _, _ := newAuthServiceForTest(nil)

	if _, err := service.Register(context.Background(), actor.RoleStudent, "Asha", "asha@example.com", "pass123"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	_, err := service.Register(context.Background(), actor.RoleStudent, "Other", "asha@example.com", "pass456")
	if !common.Is(err, common.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestAuthServiceRegister_SameEmailAcrossRoles(t *testing.T) {
	service, _, _ := newAuthServiceForTest(nil)

	if _, err := service.Register(context.Background(), actor.RoleStudent, "Asha", "asha@example.com", "pass123"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if _, err := service.Register(context.Background(), actor.RoleEmployer, "Acme", "asha@example.com", "pass123"); err != nil {
		t.Fatalf("expected employer registration with same email to pass, got %v", err)
	}
}

func TestAuthServiceLogin(t *testing.T) {
	service, _, _ := newAuthServiceForTest(nil)

	if _, err := service.Register(context.Background(), actor.RoleEmployer, "Acme", "hr@acme.test", "pass123"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	result, err := service.Login(context.Background(), actor.RoleEmployer, "hr@acme.test", "pass123")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	jwtProvider := security.NewJWTProvider("secret")
	claims, err := jwtProvider.Parse(result.Token)
	if err != nil {
		t.Fatalf("expected token to parse, got %v", err)
	}
	if claims.Role != string(actor.RoleEmployer) {
		t.Fatalf("expected employer role claim, got %q", claims.Role)
	}
	if claims.Subject != result.Actor.ID.String() {
		t.Fatalf("expected subject %s, got %s", result.Actor.ID, claims.Subject)
	}
}

func TestAuthServiceLogin_InvalidCredentials(t *testing.T) {
	service, _, _ := newAuthServiceForTest(nil)

	if _, err := service.Register(context.Background(), actor.RoleStudent, "Asha", "asha@example.com", "pass123"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if _, err := service.Login(context.Background(), actor.RoleStudent, "asha@example.com", "wrong"); !common.Is(err, common.CodeUnauthorized) {
		t.Fatalf("expected unauthorized for wrong password, got %v", err)
	}
	if _, err := service.Login(context.Background(), actor.RoleStudent, "nobody@example.com", "pass123"); !common.Is(err, common.CodeUnauthorized) {
		t.Fatalf("expected unauthorized for unknown email, got %v", err)
	}
}

func TestAuthServiceLogin_FederatedOnlyAccount(t *testing.T) {
	verifier := &fakeVerifier{identity: googleauth.Identity{SubjectID: "goog-1", Email: "asha@example.com", Name: "Asha"}}
	service, _, _ := newAuthServiceForTest(verifier)

	if _, err := service.LoginWithGoogle(context.Background(), actor.RoleStudent, "id-token"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if _, err := service.Login(context.Background(), actor.RoleStudent, "asha@example.com", ""); !common.Is(err, common.CodeUnauthorized) {
		t.Fatalf("expected password login to fail for federated-only account, got %v", err)
	}
}

func TestAuthServiceLoginWithGoogle_CreatesAccount(t *testing.T) {
	verifier := &fakeVerifier{identity: googleauth.Identity{SubjectID: "goog-1", Email: "New@Example.com", Name: "New User"}}
	service, students, _ := newAuthServiceForTest(verifier)

	result, err := service.LoginWithGoogle(context.Background(), actor.RoleStudent, "id-token")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if result.Actor.Email != "new@example.com" {
		t.Fatalf("expected normalized email, got %q", result.Actor.Email)
	}
	account, err := students.GetByGoogleID(context.Background(), "goog-1")
	if err != nil {
		t.Fatalf("expected account by google id, got %v", err)
	}
	if account.PasswordHash != "" {
		t.Fatal("expected federated account without password hash")
	}
}

func TestAuthServiceLoginWithGoogle_LinksExistingByEmail(t *testing.T) {
	verifier := &fakeVerifier{identity: googleauth.Identity{SubjectID: "goog-1", Email: "asha@example.com", Name: "Asha"}}
	service, students, _ := newAuthServiceForTest(verifier)

	registered, err := service.Register(context.Background(), actor.RoleStudent, "Asha", "asha@example.com", "pass123")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	result, err := service.LoginWithGoogle(context.Background(), actor.RoleStudent, "id-token")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if result.Actor.ID != registered.Actor.ID {
		t.Fatalf("expected existing account %s, got %s", registered.Actor.ID, result.Actor.ID)
	}
	linked, err := students.GetByGoogleID(context.Background(), "goog-1")
	if err != nil {
		t.Fatalf("expected google id attached, got %v", err)
	}
	if linked.ID != registered.Actor.ID {
		t.Fatalf("expected link to account %s, got %s", registered.Actor.ID, linked.ID)
	}
	if !security.CheckPassword("pass123", linked.PasswordHash) {
		t.Fatal("expected password login to keep working after linking")
	}
}

func TestAuthServiceLoginWithGoogle_MatchesBySubject(t *testing.T) {
	verifier := &fakeVerifier{identity: googleauth.Identity{SubjectID: "goog-1", Email: "asha@example.com", Name: "Asha"}}
	service, students, _ := newAuthServiceForTest(verifier)

	first, err := service.LoginWithGoogle(context.Background(), actor.RoleStudent, "id-token")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	// The email changed upstream, the subject id did not.
	verifier.identity.Email = "renamed@example.com"
	second, err := service.LoginWithGoogle(context.Background(), actor.RoleStudent, "id-token")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if second.Actor.ID != first.Actor.ID {
		t.Fatalf("expected same account %s, got %s", first.Actor.ID, second.Actor.ID)
	}
	if len(students.byID) != 1 {
		t.Fatalf("expected one account, got %d", len(students.byID))
	}
}

func TestAuthServiceLoginWithGoogle_VerifierFailure(t *testing.T) {
	verifier := &fakeVerifier{err: errors.New("upstream says no")}
	service, _, _ := newAuthServiceForTest(verifier)

	_, err := service.LoginWithGoogle(context.Background(), actor.RoleStudent, "bad-token")
	if !common.Is(err, common.CodeUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestAuthServiceLoginWithGoogle_NotConfigured(t *testing.T) {
	service, _, _ := newAuthServiceForTest(nil)

	_, err := service.LoginWithGoogle(context.Background(), actor.RoleStudent, "id-token")
	if !common.Is(err, common.CodeUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}
