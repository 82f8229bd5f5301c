package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/clockodo-mcp-go/internal/domain/access"
	"github.com/cmlabs-hris/clockodo-mcp-go/internal/pkg/validator"
	mcpgo "github.com/mark3labs/mcp-go/mcp"
)

type promptArg struct {
	Name        string
	Description string
	Required    bool
}

type prompt struct {
	Name        string
	Description string
	Capability  access.Capability
	Args        []promptArg
	render      func(a map[string]string) string
}

var prompts = []prompt{
	{
		Name:        "start_work",
		Description: "Start tracking time for a customer and service",
		Capability:  access.CapabilityUserEdit,
		Args: []promptArg{
			{Name: "customer", Description: "Customer name", Required: true},
			{Name: "service", Description: "Service or task name", Required: true},
			{Name: "project", Description: "Project name"},
		},
		render: func(a map[string]string) string {
			if a["project"] != "" {
				return fmt.Sprintf("Start tracking time for customer '%s', project '%s', service '%s'", a["customer"], a["project"], a["service"])
			}
			return fmt.Sprintf("Start tracking time for customer '%s', service '%s'", a["customer"], a["service"])
		},
	},
	{
		Name:        "stop_work",
		Description: "Stop tracking time for the current task",
		Capability:  access.CapabilityUserEdit,
		render: func(map[string]string) string {
			return "Stop tracking time for the current task"
		},
	},
	{
		Name:        "add_time_entry",
		Description: "Add a manual time entry",
		Capability:  access.CapabilityUserEdit,
		Args: []promptArg{
			{Name: "customer", Description: "Customer name", Required: true},
			{Name: "service", Description: "Service or task name", Required: true},
			{Name: "date", Description: "Day of the work, YYYY-MM-DD", Required: true},
			{Name: "duration_hours", Description: "Duration in hours", Required: true},
			{Name: "description", Description: "What was done"},
		},
		render: func(a map[string]string) string {
			text := fmt.Sprintf("Add a time entry for %s hours on %s for customer '%s', service '%s'",
				a["duration_hours"], a["date"], a["customer"], a["service"])
			if a["description"] != "" {
				text += " with description: " + a["description"]
			}
			return text
		},
	},
	{
		Name:        "request_vacation",
		Description: "Request vacation for a date range",
		Capability:  access.CapabilityUserEdit,
		Args: []promptArg{
			{Name: "start_date", Description: "First day, YYYY-MM-DD", Required: true},
			{Name: "end_date", Description: "Last day, YYYY-MM-DD", Required: true},
		},
		render: func(a map[string]string) string {
			return fmt.Sprintf("Request vacation from %s to %s", a["start_date"], a["end_date"])
		},
	},
	{
		Name:        "check_overtime",
		Description: "Check overtime compliance of all employees for a year",
		Capability:  access.CapabilityHRRead,
		Args: []promptArg{
			{Name: "year", Description: "Year to check, e.g. 2024", Required: true},
		},
		render: func(a map[string]string) string {
			return fmt.Sprintf("Check overtime compliance for all employees in %s", a["year"])
		},
	},
	{
		Name:        "approve_vacation",
		Description: "Approve a team member's vacation request",
		Capability:  access.CapabilityTeamEdit,
		Args: []promptArg{
			{Name: "employee_name", Description: "Name of the employee", Required: true},
			{Name: "date_range", Description: "e.g. 2024-12-20 to 2024-12-31", Required: true},
		},
		render: func(a map[string]string) string {
			return fmt.Sprintf("Approve vacation request for %s (%s)", a["employee_name"], a["date_range"])
		},
	},
}

func (s *Server) registerPrompts() {
	for _, p := range prompts {
		if !s.gate.IsEnabled(p.Capability) {
			continue
		}
		opts := []mcpgo.PromptOption{mcpgo.WithPromptDescription(p.Description)}
		for _, a := range p.Args {
			argOpts := []mcpgo.ArgumentOption{mcpgo.ArgumentDescription(a.Description)}
			if a.Required {
				argOpts = append(argOpts, mcpgo.RequiredArgument())
			}
			opts = append(opts, mcpgo.WithArgument(a.Name, argOpts...))
		}

		name := p.Name
		s.mcp.AddPrompt(mcpgo.NewPrompt(p.Name, opts...),
			func(_ context.Context, request mcpgo.GetPromptRequest) (*mcpgo.GetPromptResult, error) {
				text, err := s.RenderPrompt(name, request.Params.Arguments)
				if err != nil {
					return nil, err
				}
				return mcpgo.NewGetPromptResult(p.Description, []mcpgo.PromptMessage{
					mcpgo.NewPromptMessage(mcpgo.RoleUser, mcpgo.NewTextContent(text)),
				}), nil
			},
		)
	}
}

// RenderPrompt fills the named prompt template.
func (s *Server) RenderPrompt(name string, arguments map[string]string) (string, error) {
	for _, p := range prompts {
		if p.Name != name {
			continue
		}
		if err := s.gate.Require(p.Capability, name); err != nil {
			return "", err
		}

		var errs validator.ValidationErrors
		clean := make(map[string]string, len(p.Args))
		for _, a := range p.Args {
			v := strings.TrimSpace(arguments[a.Name])
			if v == "" && a.Required {
				errs = append(errs, validator.ValidationError{Field: a.Name, Message: "is required"})
			}
			clean[a.Name] = v
		}
		if len(errs) > 0 {
			return "", errs
		}
		return p.render(clean), nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownOperation, name)
}
