package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/someswar123624/job-portal-backend/internal/app"
	"github.com/someswar123624/job-portal-backend/internal/common"
	"github.com/someswar123624/job-portal-backend/internal/domain/actor"
	"github.com/someswar123624/job-portal-backend/internal/http/middleware"
	"github.com/someswar123624/job-portal-backend/internal/http/response"
)

type AuthHandler struct {
	auth    *app.AuthService
	limiter middleware.Limiter
}

func NewAuthHandler(auth *app.AuthService, limiter middleware.Limiter) *AuthHandler {
	return &AuthHandler{auth: auth, limiter: limiter}
}

type registerRequest struct {
	Name        string `json:"name"`
	CompanyName string `json:"company_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type googleLoginRequest struct {
	IDToken string `json:"id_token"`
}

type authResponse struct {
	Token     string      `json:"token"`
	ExpiresAt string      `json:"expires_at"`
	Account   accountBody `json:"account"`
}

type accountBody struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (h *AuthHandler) RegisterStudent(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, actor.RoleStudent)
}

func (h *AuthHandler) RegisterEmployer(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, actor.RoleEmployer)
}

func (h *AuthHandler) LoginStudent(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, actor.RoleStudent)
}

func (h *AuthHandler) LoginEmployer(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, actor.RoleEmployer)
}

func (h *AuthHandler) GoogleLoginStudent(w http.ResponseWriter, r *http.Request) {
	h.googleLogin(w, r, actor.RoleStudent)
}

func (h *AuthHandler) GoogleLoginEmployer(w http.ResponseWriter, r *http.Request) {
	h.googleLogin(w, r, actor.RoleEmployer)
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request, role actor.Role) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	name := strings.TrimSpace(req.Name)
	if role == actor.RoleEmployer && name == "" {
		name = strings.TrimSpace(req.CompanyName)
	}
	email := strings.TrimSpace(req.Email)
	fields := map[string]string{}
	if name == "" {
		if role == actor.RoleEmployer {
			fields["company_name"] = "company_name is required"
		} else {
			fields["name"] = "name is required"
		}
	}
	if email == "" {
		fields["email"] = "email is required"
	} else if !strings.Contains(email, "@") {
		fields["email"] = "invalid email"
	}
	if len(req.Password) < 6 {
		fields["password"] = "password must be at least 6 characters"
	}
	if len(fields) > 0 {
		response.Error(w, common.NewValidationError("invalid request", fields))
		return
	}
	if h.limiter != nil {
		key := "register:ip:" + middleware.ClientIP(r)
		if !h.limiter.Allow(key, 10, time.Minute) {
			response.Error(w, common.NewError(common.CodeRateLimited, "register rate limit exceeded", nil))
			return
		}
	}
	result, err := h.auth.Register(r.Context(), role, name, email, req.Password)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, toAuthResponse(result, role))
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request, role actor.Role) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{
			"email":    "email is required",
			"password": "password is required",
		}))
		return
	}
	if h.limiter != nil {
		key := "login:ip:" + middleware.ClientIP(r)
		if !h.limiter.Allow(key, 10, time.Minute) {
			response.Error(w, common.NewError(common.CodeRateLimited, "login rate limit exceeded", nil))
			return
		}
	}
	result, err := h.auth.Login(r.Context(), role, req.Email, req.Password)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, toAuthResponse(result, role))
}

func (h *AuthHandler) googleLogin(w http.ResponseWriter, r *http.Request, role actor.Role) {
	var req googleLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if strings.TrimSpace(req.IDToken) == "" {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"id_token": "id_token is required"}))
		return
	}
	if h.limiter != nil {
		key := "google-login:ip:" + middleware.ClientIP(r)
		if !h.limiter.Allow(key, 10, time.Minute) {
			response.Error(w, common.NewError(common.CodeRateLimited, "login rate limit exceeded", nil))
			return
		}
	}
	result, err := h.auth.LoginWithGoogle(r.Context(), role, req.IDToken)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, toAuthResponse(result, role))
}

func toAuthResponse(result *app.AuthResult, role actor.Role) authResponse {
	return authResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt.Format(time.RFC3339),
		Account: accountBody{
			ID:    result.Actor.ID.String(),
			Name:  result.Actor.Name,
			Email: result.Actor.Email,
			Role:  string(role),
		},
	}
}
