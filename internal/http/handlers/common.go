package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/someswar123624/job-portal-backend/internal/common"
)

func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return common.NewError(common.CodeValidation, "request body is required", nil)
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return common.NewError(common.CodeValidation, "request body is required", nil)
		}
		return common.NewError(common.CodeValidation, "invalid json body", err)
	}
	return nil
}

// idFromPath parses the path segment at the given index as a UUID, counting
// segments from zero after the leading slash.
func idFromPath(r *http.Request, index int) (common.UUID, error) {
	segments := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if index >= len(segments) {
		return "", common.NewError(common.CodeValidation, "missing id in path", nil)
	}
	id, err := common.ParseUUID(segments[index])
	if err != nil {
		return "", common.NewValidationError("invalid id", map[string]string{"id": "invalid uuid"})
	}
	return id, nil
}

func errUnauthorized() error {
	return common.NewError(common.CodeUnauthorized, "authentication required", nil)
}
