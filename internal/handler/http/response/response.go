package response

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope of every non-MCP endpoint.
type Response struct {
	Success bool         `json:"success"`
	Data    any          `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code           string            `json:"code"`
	Message        string            `json:"message"`
	UpstreamStatus int               `json:"upstream_status,omitempty"`
	Details        map[string]string `json:"details,omitempty"`
}

const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeUpstream     = "UPSTREAM_ERROR"
	CodeInternal     = "INTERNAL_SERVER_ERROR"
)

func writeJSON(w http.ResponseWriter, statusCode int, payload Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		_ = json.NewEncoder(w).Encode(Response{
			Error: &ErrorDetail{Code: "ENCODING_ERROR", Message: "Failed to encode response"},
		})
	}
}

func writeError(w http.ResponseWriter, statusCode int, detail ErrorDetail) {
	writeJSON(w, statusCode, Response{Error: &detail})
}

func Success(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Response{Success: true, Data: data})
}

func ValidationError(w http.ResponseWriter, details map[string]string) {
	writeError(w, http.StatusUnprocessableEntity, ErrorDetail{
		Code:    CodeValidation,
		Message: "Validation failed",
		Details: details,
	})
}

func Unauthorized(w http.ResponseWriter, message string) {
	writeError(w, http.StatusUnauthorized, ErrorDetail{Code: CodeUnauthorized, Message: message})
}

// Forbidden reports a disabled capability; details name it and the operation.
func Forbidden(w http.ResponseWriter, message string, details map[string]string) {
	writeError(w, http.StatusForbidden, ErrorDetail{Code: CodeForbidden, Message: message, Details: details})
}

func NotFound(w http.ResponseWriter, message string) {
	writeError(w, http.StatusNotFound, ErrorDetail{Code: CodeNotFound, Message: message})
}

// BadGateway reports a failed or malformed Clockodo call. upstreamStatus is 0
// when the request never got an answer or the body was unusable.
func BadGateway(w http.ResponseWriter, message string, upstreamStatus int) {
	writeError(w, http.StatusBadGateway, ErrorDetail{
		Code:           CodeUpstream,
		Message:        message,
		UpstreamStatus: upstreamStatus,
	})
}

func InternalServerError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusInternalServerError, ErrorDetail{Code: CodeInternal, Message: message})
}
