package mcp

import (
	"errors"

	"github.com/cmlabs-hris/clockodo-mcp-go/internal/domain/access"
	"github.com/cmlabs-hris/clockodo-mcp-go/internal/domain/clockodo"
	"github.com/cmlabs-hris/clockodo-mcp-go/internal/domain/timetracking"
	"github.com/cmlabs-hris/clockodo-mcp-go/internal/pkg/validator"
)

// Error kinds reported to protocol clients.
const (
	KindUpstreamRequest  = "upstream_request"
	KindUpstreamFormat   = "upstream_format"
	KindCapabilityDenied = "capability_denied"
	KindValidation       = "validation"
	KindNotFound         = "not_found"
	KindInternal         = "internal"
)

var ErrUnknownOperation = errors.New("unknown operation")

// ErrorBody is the structured payload of a failed tool call.
type ErrorBody struct {
	Kind       string `json:"kind"`
	Message    string `json:"message"`
	StatusCode int    `json:"status_code,omitempty"`
	Details    any    `json:"details,omitempty"`
}

// ToErrorBody classifies err for the caller.
func ToErrorBody(err error) ErrorBody {
	var (
		denied    *access.CapabilityDeniedError
		verrs     validator.ValidationErrors
		reqErr    *clockodo.UpstreamRequestError
		formatErr *clockodo.UpstreamFormatError
	)

	switch {
	case errors.As(err, &denied):
		return ErrorBody{
			Kind:    KindCapabilityDenied,
			Message: err.Error(),
			Details: map[string]string{
				"capability": string(denied.Capability),
				"operation":  denied.Operation,
			},
		}
	case errors.As(err, &verrs):
		return ErrorBody{Kind: KindValidation, Message: "validation failed", Details: verrs.ToMap()}
	case errors.As(err, &reqErr):
		details := map[string]string{
			"method": reqErr.Method,
			"url":    reqErr.URL,
		}
		if reqErr.Body != "" {
			details["body"] = reqErr.Body
		}
		return ErrorBody{
			Kind:       KindUpstreamRequest,
			Message:    err.Error(),
			StatusCode: reqErr.StatusCode,
			Details:    details,
		}
	case errors.As(err, &formatErr):
		return ErrorBody{
			Kind:    KindUpstreamFormat,
			Message: err.Error(),
			Details: map[string]string{"family": string(formatErr.Family)},
		}
	case errors.Is(err, timetracking.ErrNoRunningClock),
		errors.Is(err, timetracking.ErrCurrentUserNotFound),
		errors.Is(err, ErrUnknownOperation):
		return ErrorBody{Kind: KindNotFound, Message: err.Error()}
	default:
		return ErrorBody{Kind: KindInternal, Message: err.Error()}
	}
}
