package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/clockodo-mcp-go/internal/domain/access"
	"github.com/cmlabs-hris/clockodo-mcp-go/internal/pkg/metrics"
	"github.com/google/uuid"
	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const healthTool = "health"

// ToolObserver receives one call per tool invocation.
type ToolObserver interface {
	ObserveToolCall(tool, outcome string, d time.Duration)
}

type Options struct {
	Name     string
	Version  string
	Logger   *slog.Logger
	Observer ToolObserver
	// Now is the clock used by time-relative resources.
	Now func() time.Time
}

// Server exposes the operations enabled by the gate over the tool protocol.
type Server struct {
	gate     access.Gate
	services Services
	ops      map[string]Operation
	enabled  []string
	log      *slog.Logger
	observer ToolObserver
	now      func() time.Time
	version  string
	mcp      *server.MCPServer
}

func NewServer(gate access.Gate, svc Services, opts Options) *Server {
	if opts.Name == "" {
		opts.Name = "clockodo"
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Server{
		gate:     gate,
		services: svc,
		ops:      map[string]Operation{},
		log:      opts.Logger,
		observer: opts.Observer,
		now:      opts.Now,
		version:  opts.Version,
		mcp: server.NewMCPServer(opts.Name, opts.Version,
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
			server.WithPromptCapabilities(false),
			server.WithRecovery(),
		),
	}

	for _, op := range append([]Operation{s.healthOperation()}, Operations(svc)...) {
		s.ops[op.Name] = op
		if op.Capability != "" && !gate.IsEnabled(op.Capability) {
			continue
		}
		s.enabled = append(s.enabled, op.Name)
		s.mcp.AddTool(buildTool(op), s.toolHandler(op.Name))
	}

	s.registerResources()
	s.registerPrompts()
	return s
}

// EnabledTools lists the registered tool names in registration order.
func (s *Server) EnabledTools() []string {
	return append([]string(nil), s.enabled...)
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// ServeStdio blocks serving the protocol on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// HTTPHandler serves the protocol over streamable HTTP.
func (s *Server) HTTPHandler() http.Handler {
	return server.NewStreamableHTTPServer(s.mcp)
}

// Call runs the named operation. Failures are reported inside the result
// rather than as a Go error so the client sees the structured payload.
func (s *Server) Call(ctx context.Context, name string, arguments map[string]any) *mcpgo.CallToolResult {
	callID := uuid.NewString()
	start := time.Now()

	out, err := s.invoke(ctx, name, arguments)
	elapsed := time.Since(start)

	if err != nil {
		body := ToErrorBody(err)
		outcome := metrics.OutcomeError
		if body.Kind == KindCapabilityDenied {
			outcome = metrics.OutcomeDenied
		}
		s.observe(name, outcome, elapsed)
		s.log.WarnContext(ctx, "tool call failed",
			slog.String("call_id", callID),
			slog.String("tool", name),
			slog.Duration("duration", elapsed),
			slog.String("error_kind", body.Kind),
			slog.String("error", err.Error()),
		)
		return errorResult(body)
	}

	text, err := json.Marshal(out)
	if err != nil {
		s.observe(name, metrics.OutcomeError, elapsed)
		return errorResult(ErrorBody{Kind: KindInternal, Message: fmt.Sprintf("encode result: %v", err)})
	}

	s.observe(name, metrics.OutcomeOK, elapsed)
	s.log.InfoContext(ctx, "tool call",
		slog.String("call_id", callID),
		slog.String("tool", name),
		slog.Duration("duration", elapsed),
	)
	return mcpgo.NewToolResultText(string(text))
}

func (s *Server) invoke(ctx context.Context, name string, arguments map[string]any) (any, error) {
	op, ok := s.ops[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, name)
	}
	if op.Capability != "" {
		if err := s.gate.Require(op.Capability, op.Name); err != nil {
			return nil, err
		}
	}
	return op.handle(ctx, newArgs(arguments))
}

func (s *Server) toolHandler(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
		return s.Call(ctx, name, request.GetArguments()), nil
	}
}

func (s *Server) observe(tool, outcome string, d time.Duration) {
	if s.observer != nil {
		s.observer.ObserveToolCall(tool, outcome, d)
	}
}

// Health is the payload of the health tool.
type Health struct {
	Status       string              `json:"status"`
	Version      string              `json:"version,omitempty"`
	Role         access.Role         `json:"role"`
	Capabilities []access.Capability `json:"capabilities"`
	Tools        []string            `json:"tools"`
}

func (s *Server) Health() Health {
	return Health{
		Status:       "ok",
		Version:      s.version,
		Role:         s.gate.Role(),
		Capabilities: s.gate.Capabilities(),
		Tools:        s.EnabledTools(),
	}
}

func (s *Server) healthOperation() Operation {
	return Operation{
		Name:        healthTool,
		Description: "Report server status, the active role, its capabilities and the enabled tools.",
		ReadOnly:    true,
		handle: func(context.Context, *args) (any, error) {
			return s.Health(), nil
		},
	}
}

func buildTool(op Operation) mcpgo.Tool {
	opts := []mcpgo.ToolOption{
		mcpgo.WithDescription(op.Description),
		mcpgo.WithReadOnlyHintAnnotation(op.ReadOnly),
	}
	for _, p := range op.Params {
		props := []mcpgo.PropertyOption{mcpgo.Description(p.Description)}
		if p.Required {
			props = append(props, mcpgo.Required())
		}
		switch p.Type {
		case TypeNumber:
			if d, ok := p.Default.(float64); ok {
				props = append(props, mcpgo.DefaultNumber(d))
			}
			opts = append(opts, mcpgo.WithNumber(p.Name, props...))
		case TypeBoolean:
			if d, ok := p.Default.(bool); ok {
				props = append(props, mcpgo.DefaultBool(d))
			}
			opts = append(opts, mcpgo.WithBoolean(p.Name, props...))
		case TypeObject:
			opts = append(opts, mcpgo.WithObject(p.Name, props...))
		default:
			if d, ok := p.Default.(string); ok {
				props = append(props, mcpgo.DefaultString(d))
			}
			opts = append(opts, mcpgo.WithString(p.Name, props...))
		}
	}
	return mcpgo.NewTool(op.Name, opts...)
}

func errorResult(body ErrorBody) *mcpgo.CallToolResult {
	text, err := json.Marshal(body)
	if err != nil {
		return mcpgo.NewToolResultError(body.Message)
	}
	return mcpgo.NewToolResultError(string(text))
}
