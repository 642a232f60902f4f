package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/someswar123624/job-portal-backend/internal/common"
)

// ErrorCollector lets the metrics layer count rendered errors without the
// response package importing it.
type ErrorCollector interface {
	ObserveError(code common.Code)
}

var collector ErrorCollector

func SetErrorCollector(c ErrorCollector) {
	collector = c
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

type errorBody struct {
	Code    common.Code       `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func Error(w http.ResponseWriter, err error) {
	var appErr *common.Error
	if !errors.As(err, &appErr) {
		appErr = common.NewError(common.CodeInternal, "internal error", err)
	}
	if collector != nil {
		collector.ObserveError(appErr.Code)
	}
	message := appErr.Message
	if appErr.Code == common.CodeInternal {
		// Never leak internals to clients.
		message = "internal error"
	}
	JSON(w, statusFor(appErr.Code), errorEnvelope{Error: errorBody{
		Code:    appErr.Code,
		Message: message,
		Fields:  appErr.Fields,
	}})
}

func statusFor(code common.Code) int {
	switch code {
	case common.CodeValidation:
		return http.StatusBadRequest
	case common.CodeUnauthorized:
		return http.StatusUnauthorized
	case common.CodeForbidden:
		return http.StatusForbidden
	case common.CodeNotFound:
		return http.StatusNotFound
	case common.CodeConflict:
		return http.StatusConflict
	case common.CodeRateLimited:
		return http.StatusTooManyRequests
	case common.CodeTimeout:
		return http.StatusServiceUnavailable
	case common.CodeUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
