package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/clockodo-mcp-go/internal/domain/access"
	"github.com/cmlabs-hris/clockodo-mcp-go/internal/domain/clockodo"
	"github.com/cmlabs-hris/clockodo-mcp-go/internal/domain/timetracking"
	"github.com/cmlabs-hris/clockodo-mcp-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/clockodo-mcp-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var (
		denied    *access.CapabilityDeniedError
		reqErr    *clockodo.UpstreamRequestError
		formatErr *clockodo.UpstreamFormatError
	)

	switch {
	case errors.Is(err, jwt.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.As(err, &denied):
		Forbidden(w, err.Error(), map[string]string{
			"capability": string(denied.Capability),
			"operation":  denied.Operation,
		})
	case errors.Is(err, timetracking.ErrCurrentUserNotFound):
		NotFound(w, "Current user not found")
	case errors.Is(err, timetracking.ErrNoRunningClock):
		NotFound(w, "No running clock")

	// Upstream failures
	case errors.As(err, &reqErr):
		BadGateway(w, err.Error(), reqErr.StatusCode)
	case errors.As(err, &formatErr):
		BadGateway(w, err.Error(), 0)

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
