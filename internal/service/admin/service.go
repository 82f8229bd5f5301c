package admin

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cmlabs-hris/clockodo-mcp-go/internal/domain/access"
	"github.com/cmlabs-hris/clockodo-mcp-go/internal/domain/clockodo"
	"github.com/cmlabs-hris/clockodo-mcp-go/internal/domain/timetracking"
	"github.com/cmlabs-hris/clockodo-mcp-go/internal/service/user"
)

type AdminServiceImpl struct {
	client clockodo.Client
	gate   access.Gate
}

func NewAdminService(client clockodo.Client, gate access.Gate) timetracking.AdminService {
	return &AdminServiceImpl{client: client, gate: gate}
}

func (s *AdminServiceImpl) ListUsers(ctx context.Context) (clockodo.Envelope, error) {
	const op = "list_users"
	if err := s.gate.Require(access.CapabilityAdminRead, op); err != nil {
		return nil, err
	}
	env, err := s.client.Fetch(ctx, clockodo.FamilyUser, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return env, nil
}

func (s *AdminServiceImpl) ListUserEntries(ctx context.Context, req timetracking.UserEntriesRequest) (clockodo.Envelope, error) {
	const op = "list_user_entries"
	if err := s.gate.Require(access.CapabilityAdminRead, op); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	params, err := user.EntryParams(req.TimeSince, req.TimeUntil, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	env, err := s.client.Fetch(ctx, clockodo.FamilyTimeEntry, params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return env, nil
}

func (s *AdminServiceImpl) ListAbsences(ctx context.Context, req timetracking.YearRequest) (clockodo.Envelope, error) {
	const op = "list_absences"
	if err := s.gate.Require(access.CapabilityAdminRead, op); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	env, err := s.client.Fetch(ctx, clockodo.FamilyAbsence, clockodo.Params{"filter[year]": strconv.Itoa(req.Year)})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return env, nil
}

func (s *AdminServiceImpl) EditUserEntry(ctx context.Context, req timetracking.EditEntryRequest) (clockodo.Envelope, error) {
	const op = "edit_user_entry"
	if err := s.gate.Require(access.CapabilityAdminEdit, op); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	env, err := s.client.Update(ctx, clockodo.FamilyTimeEntry, req.EntryID, req.Data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return env, nil
}

func (s *AdminServiceImpl) DeleteUserEntry(ctx context.Context, req timetracking.IDRequest) (clockodo.Envelope, error) {
	const op = "delete_user_entry"
	if err := s.gate.Require(access.CapabilityAdminEdit, op); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	env, err := s.client.Delete(ctx, clockodo.FamilyTimeEntry, req.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return env, nil
}
