package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/someswar123624/job-portal-backend/internal/common"
	"github.com/someswar123624/job-portal-backend/internal/domain/actor"
	"github.com/someswar123624/job-portal-backend/internal/security"
)

type errorEnvelope struct {
	Error struct {
		Code    common.Code `json:"code"`
		Message string      `json:"message"`
	} `json:"error"`
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) common.Code {
	t.Helper()
	var envelope errorEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("expected error envelope, got %v", err)
	}
	return envelope.Error.Code
}

func TestAuthenticateMissingHeader(t *testing.T) {
	mw := NewAuthMiddleware(security.NewJWTProvider("secret"))
	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/students/applications", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if code := decodeErrorCode(t, rec); code != common.CodeUnauthorized {
		t.Fatalf("expected unauthorized code, got %q", code)
	}
}

func TestAuthenticateGarbledHeader(t *testing.T) {
	mw := NewAuthMiddleware(security.NewJWTProvider("secret"))
	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	for _, header := range []string{"Token abc", "Bearer", "bearer "} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/students/applications", nil)
		req.Header.Set("Authorization", header)
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, rec.Code)
		}
	}
}

func TestAuthenticateRejectedToken(t *testing.T) {
	mw := NewAuthMiddleware(security.NewJWTProvider("secret"))
	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	otherProvider := security.NewJWTProvider("other-secret")
	token, _, err := otherProvider.Generate(common.NewUUID(), actor.RoleStudent, time.Hour)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/students/applications", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if code := decodeErrorCode(t, rec); code != common.CodeForbidden {
		t.Fatalf("expected forbidden code, got %q", code)
	}
}

func TestAuthenticateAttachesPrincipal(t *testing.T) {
	provider := security.NewJWTProvider("secret")
	mw := NewAuthMiddleware(provider)
	actorID := common.NewUUID()

	var gotID common.UUID
	var gotRole actor.Role
	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := ActorIDFromContext(r.Context())
		if !ok {
			t.Fatal("expected actor id in context")
		}
		role, ok := RoleFromContext(r.Context())
		if !ok {
			t.Fatal("expected role in context")
		}
		gotID, gotRole = id, role
		w.WriteHeader(http.StatusOK)
	}))

	token, _, err := provider.Generate(actorID, actor.RoleEmployer, time.Hour)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/employers/applications", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotID != actorID {
		t.Fatalf("expected actor id %s, got %s", actorID, gotID)
	}
	if gotRole != actor.RoleEmployer {
		t.Fatalf("expected employer role, got %q", gotRole)
	}
}

func TestRequireRole(t *testing.T) {
	provider := security.NewJWTProvider("secret")
	mw := NewAuthMiddleware(provider)
	handler := mw.Authenticate(RequireRole(actor.RoleEmployer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	studentToken, _, err := provider.Generate(common.NewUUID(), actor.RoleStudent, time.Hour)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/employers/jobs", nil)
	req.Header.Set("Authorization", "Bearer "+studentToken)
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for student on employer route, got %d", rec.Code)
	}

	employerToken, _, err := provider.Generate(common.NewUUID(), actor.RoleEmployer, time.Hour)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/employers/jobs", nil)
	req.Header.Set("Authorization", "Bearer "+employerToken)
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
