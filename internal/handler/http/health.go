package http

import (
	"net/http"

	"github.com/cmlabs-hris/clockodo-mcp-go/internal/handler/http/response"
	mcphandler "github.com/cmlabs-hris/clockodo-mcp-go/internal/handler/mcp"
)

// HealthReporter is satisfied by the tool server.
type HealthReporter interface {
	Health() mcphandler.Health
}

type HealthHandler interface {
	// GetHealth returns role, capabilities and enabled tools
	GetHealth(w http.ResponseWriter, r *http.Request)
}

type healthHandlerImpl struct {
	reporter HealthReporter
}

func NewHealthHandler(reporter HealthReporter) HealthHandler {
	return &healthHandlerImpl{reporter: reporter}
}

// GetHealth handles GET /health
func (h *healthHandlerImpl) GetHealth(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.reporter.Health())
}
