package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/someswar123624/job-portal-backend/internal/app"
	"github.com/someswar123624/job-portal-backend/internal/common"
	"github.com/someswar123624/job-portal-backend/internal/domain/application"
	"github.com/someswar123624/job-portal-backend/internal/http/middleware"
	"github.com/someswar123624/job-portal-backend/internal/http/response"
	"github.com/someswar123624/job-portal-backend/internal/storage"
)

type ApplicationHandler struct {
	applications *app.ApplicationService
	files        storage.Store
	limiter      middleware.Limiter
}

func NewApplicationHandler(applications *app.ApplicationService, files storage.Store, limiter middleware.Limiter) *ApplicationHandler {
	return &ApplicationHandler{applications: applications, files: files, limiter: limiter}
}

const maxResumeBytes = 5 << 20

// Apply accepts a multipart form so the application form and the resume file
// arrive in one request. The job id rides in the path.
func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	studentID, ok := middleware.ActorIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	jobID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	if h.limiter != nil {
		key := "apply:" + jobID.String() + ":" + studentID.String()
		if !h.limiter.Allow(key, 10, time.Minute) {
			response.Error(w, common.NewError(common.CodeRateLimited, "apply rate limit exceeded", nil))
			return
		}
	}
	if err := r.ParseMultipartForm(maxResumeBytes); err != nil {
		response.Error(w, common.NewError(common.CodeValidation, "invalid multipart form", err))
		return
	}
	form := application.FormData{
		Name:       strings.TrimSpace(r.FormValue("name")),
		SRN:        strings.TrimSpace(r.FormValue("srn")),
		College:    strings.TrimSpace(r.FormValue("college")),
		Class10:    strings.TrimSpace(r.FormValue("class10")),
		Class12:    strings.TrimSpace(r.FormValue("class12")),
		Degree:     strings.TrimSpace(r.FormValue("degree")),
		DegreeCGPA: strings.TrimSpace(r.FormValue("degree_cgpa")),
		Projects:   strings.TrimSpace(r.FormValue("projects")),
	}
	if skills := strings.TrimSpace(r.FormValue("skills")); skills != "" {
		for _, skill := range strings.Split(skills, ",") {
			if skill = strings.TrimSpace(skill); skill != "" {
				form.Skills = append(form.Skills, skill)
			}
		}
	}
	file, header, err := r.FormFile("resume")
	if err == nil {
		defer file.Close()
		handle, saveErr := h.files.Save(header.Filename, file)
		if saveErr != nil {
			response.Error(w, common.NewError(common.CodeInternal, "failed to store resume", saveErr))
			return
		}
		form.Resume = handle
	} else if err != http.ErrMissingFile {
		response.Error(w, common.NewError(common.CodeValidation, "invalid resume upload", err))
		return
	}
	created, err := h.applications.Apply(r.Context(), studentID, jobID, form)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, created)
}

func (h *ApplicationHandler) ListStudent(w http.ResponseWriter, r *http.Request) {
	studentID, ok := middleware.ActorIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.applications.ListByStudent(r.Context(), studentID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *ApplicationHandler) ListEmployer(w http.ResponseWriter, r *http.Request) {
	employerID, ok := middleware.ActorIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.applications.ListByEmployer(r.Context(), employerID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *ApplicationHandler) ListByJob(w http.ResponseWriter, r *http.Request) {
	employerID, ok := middleware.ActorIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	jobID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	items, err := h.applications.ListByJob(r.Context(), employerID, jobID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	employerID, ok := middleware.ActorIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	applicationID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if strings.TrimSpace(req.Status) == "" {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"status": "status is required"}))
		return
	}
	updated, err := h.applications.UpdateStatus(r.Context(), employerID, applicationID, application.Status(req.Status))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}
