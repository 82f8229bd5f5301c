package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cmlabs-hris/clockodo-mcp-go/internal/domain/access"
	"github.com/cmlabs-hris/clockodo-mcp-go/internal/domain/clockodo"
	"github.com/cmlabs-hris/clockodo-mcp-go/internal/domain/timetracking"
	mcpgo "github.com/mark3labs/mcp-go/mcp"
)

const (
	mimeJSON          = "application/json"
	recentEntriesDays = 7
)

type resource struct {
	URI         string
	Name        string
	Description string
	read        func(ctx context.Context) (any, error)
}

func (s *Server) resources() []resource {
	return []resource{
		{
			URI:         "clockodo://current-entry",
			Name:        "Current Time Entry",
			Description: "The clock entry currently running, if any",
			read:        s.readCurrentEntry,
		},
		{
			URI:         "clockodo://user-profile",
			Name:        "User Profile",
			Description: "Profile of the user behind the API credentials",
			read: func(ctx context.Context) (any, error) {
				return s.services.User.CurrentUser(ctx)
			},
		},
		{
			URI:         "clockodo://customers",
			Name:        "Customers",
			Description: "Customers available for time tracking",
			read:        s.readCustomers,
		},
		{
			URI:         "clockodo://services",
			Name:        "Services",
			Description: "Services available for time tracking",
			read:        s.readServices,
		},
		{
			URI:         "clockodo://projects",
			Name:        "Projects",
			Description: "Projects available for time tracking",
			read:        s.readProjects,
		},
		{
			URI:         "clockodo://recent-entries",
			Name:        "Recent Time Entries",
			Description: fmt.Sprintf("Your time entries of the last %d days", recentEntriesDays),
			read:        s.readRecentEntries,
		},
	}
}

// registerResources exposes the resources only when own data is readable.
func (s *Server) registerResources() {
	if !s.gate.IsEnabled(access.CapabilityUserRead) {
		return
	}
	for _, r := range s.resources() {
		s.mcp.AddResource(
			mcpgo.NewResource(r.URI, r.Name,
				mcpgo.WithResourceDescription(r.Description),
				mcpgo.WithMIMEType(mimeJSON),
			),
			func(ctx context.Context, request mcpgo.ReadResourceRequest) ([]mcpgo.ResourceContents, error) {
				text, err := s.ReadResource(ctx, r.URI)
				if err != nil {
					return nil, err
				}
				return []mcpgo.ResourceContents{
					mcpgo.TextResourceContents{URI: r.URI, MIMEType: mimeJSON, Text: text},
				}, nil
			},
		)
	}
}

// ReadResource renders the resource at uri as JSON.
func (s *Server) ReadResource(ctx context.Context, uri string) (string, error) {
	if err := s.gate.Require(access.CapabilityUserRead, uri); err != nil {
		return "", err
	}
	for _, r := range s.resources() {
		if r.URI != uri {
			continue
		}
		content, err := r.read(ctx)
		if err != nil {
			return "", err
		}
		text, err := json.Marshal(content)
		if err != nil {
			return "", fmt.Errorf("encode %s: %w", uri, err)
		}
		return string(text), nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownOperation, uri)
}

func (s *Server) readCurrentEntry(ctx context.Context) (any, error) {
	env, err := s.services.User.GetMyClock(ctx)
	if err != nil {
		return nil, err
	}
	entry, ok := env.Record("running")
	if !ok {
		return map[string]any{"running": false}, nil
	}
	return entry, nil
}

func (s *Server) readCustomers(ctx context.Context) (any, error) {
	return catalog(ctx, "customers", s.services.User.ListCustomers)
}

func (s *Server) readServices(ctx context.Context) (any, error) {
	return catalog(ctx, "services", s.services.User.ListServices)
}

func (s *Server) readProjects(ctx context.Context) (any, error) {
	return catalog(ctx, "projects", s.services.User.ListProjects)
}

func catalog(ctx context.Context, key string, list func(context.Context) ([]clockodo.Record, error)) (any, error) {
	records, err := list(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, r.String("name"))
	}
	return map[string]any{
		"count": len(records),
		key:     records,
		"names": names,
	}, nil
}

func (s *Server) readRecentEntries(ctx context.Context) (any, error) {
	end := s.now().UTC()
	start := end.AddDate(0, 0, -recentEntriesDays)
	req := timetracking.EntriesRequest{
		TimeSince: start.Format("2006-01-02") + "T00:00:00Z",
		TimeUntil: end.Format("2006-01-02") + "T23:59:59Z",
	}

	env, err := s.services.User.GetMyEntries(ctx, req)
	if err != nil {
		return nil, err
	}
	entries, err := env.Records(clockodo.FamilyTimeEntry)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"count":   len(entries),
		"entries": entries,
		"period": map[string]string{
			"start": req.TimeSince,
			"end":   req.TimeUntil,
		},
	}, nil
}
