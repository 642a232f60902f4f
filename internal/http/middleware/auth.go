package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/someswar123624/job-portal-backend/internal/common"
	"github.com/someswar123624/job-portal-backend/internal/domain/actor"
	"github.com/someswar123624/job-portal-backend/internal/http/response"
	"github.com/someswar123624/job-portal-backend/internal/security"
)

type contextKey string

const (
	ContextActorIDKey contextKey = "actor_id"
	ContextRoleKey    contextKey = "role"
)

type AuthMiddleware struct {
	jwt *security.JWTProvider
}

func NewAuthMiddleware(jwt *security.JWTProvider) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt}
}

// Authenticate splits two failure modes: a request that never presented a
// usable credential is unauthorized, a request whose token was presented but
// rejected is forbidden.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Error(w, common.NewError(common.CodeUnauthorized, "missing authorization header", nil))
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
			response.Error(w, common.NewError(common.CodeUnauthorized, "invalid authorization header", nil))
			return
		}
		claims, err := m.jwt.Parse(parts[1])
		if err != nil {
			response.Error(w, common.NewError(common.CodeForbidden, "invalid token", err))
			return
		}
		actorID, err := common.ParseUUID(claims.Subject)
		if err != nil {
			response.Error(w, common.NewError(common.CodeForbidden, "invalid token subject", err))
			return
		}
		role, err := actor.ParseRole(claims.Role)
		if err != nil {
			response.Error(w, common.NewError(common.CodeForbidden, "invalid token role", err))
			return
		}
		ctx := context.WithValue(r.Context(), ContextActorIDKey, actorID)
		ctx = context.WithValue(ctx, ContextRoleKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func RequireRole(role actor.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			active, ok := RoleFromContext(r.Context())
			if !ok {
				response.Error(w, common.NewError(common.CodeForbidden, "role not found", nil))
				return
			}
			if active != role {
				response.Error(w, common.NewError(common.CodeForbidden, "insufficient role", nil))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func ActorIDFromContext(ctx context.Context) (common.UUID, bool) {
	id, ok := ctx.Value(ContextActorIDKey).(common.UUID)
	return id, ok
}

func RoleFromContext(ctx context.Context) (actor.Role, bool) {
	role, ok := ctx.Value(ContextRoleKey).(actor.Role)
	return role, ok
}
