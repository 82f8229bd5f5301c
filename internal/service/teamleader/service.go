package teamleader

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cmlabs-hris/clockodo-mcp-go/internal/domain/access"
	"github.com/cmlabs-hris/clockodo-mcp-go/internal/domain/clockodo"
	"github.com/cmlabs-hris/clockodo-mcp-go/internal/domain/timetracking"
)

type TeamLeaderServiceImpl struct {
	client clockodo.Client
	gate   access.Gate
}

func NewTeamLeaderService(client clockodo.Client, gate access.Gate) timetracking.TeamLeaderService {
	return &TeamLeaderServiceImpl{client: client, gate: gate}
}

// ListPendingVacations returns the year's absences still in "enquired" state,
// in upstream order.
func (s *TeamLeaderServiceImpl) ListPendingVacations(ctx context.Context, req timetracking.YearRequest) ([]clockodo.Record, error) {
	const op = "list_pending_vacation_requests"
	if err := s.gate.Require(access.CapabilityTeamRead, op); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	env, err := s.client.Fetch(ctx, clockodo.FamilyAbsence, clockodo.Params{"filter[year]": strconv.Itoa(req.Year)})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	absences, err := env.Records(clockodo.FamilyAbsence)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	pending := []clockodo.Record{}
	for _, a := range absences {
		if status, ok := a.Int("status"); ok && status == timetracking.AbsenceStatusEnquired {
			pending = append(pending, a)
		}
	}
	return pending, nil
}

// ApproveVacation implements timetracking.TeamLeaderService.
func (s *TeamLeaderServiceImpl) ApproveVacation(ctx context.Context, req timetracking.IDRequest) (clockodo.Envelope, error) {
	return s.setStatus(ctx, "approve_vacation_request", req, timetracking.AbsenceStatusApproved)
}

// RejectVacation implements timetracking.TeamLeaderService.
func (s *TeamLeaderServiceImpl) RejectVacation(ctx context.Context, req timetracking.IDRequest) (clockodo.Envelope, error) {
	return s.setStatus(ctx, "reject_vacation_request", req, timetracking.AbsenceStatusDeclined)
}

func (s *TeamLeaderServiceImpl) setStatus(ctx context.Context, op string, req timetracking.IDRequest, status int) (clockodo.Envelope, error) {
	if err := s.gate.Require(access.CapabilityTeamEdit, op); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	env, err := s.client.Update(ctx, clockodo.FamilyAbsence, req.ID, map[string]any{"status": status})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return env, nil
}

// AdjustVacationDates implements timetracking.TeamLeaderService.
func (s *TeamLeaderServiceImpl) AdjustVacationDates(ctx context.Context, req timetracking.AdjustVacationRequest) (clockodo.Envelope, error) {
	const op = "adjust_vacation_dates"
	if err := s.gate.Require(access.CapabilityTeamEdit, op); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	env, err := s.client.Update(ctx, clockodo.FamilyAbsence, req.AbsenceID, map[string]any{
		"date_since": req.NewDateSince,
		"date_until": req.NewDateUntil,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return env, nil
}

// CreateTeamVacation files an absence on behalf of a team member, approved
// right away when AutoApprove is set.
func (s *TeamLeaderServiceImpl) CreateTeamVacation(ctx context.Context, req timetracking.TeamVacationRequest) (clockodo.Envelope, error) {
	const op = "create_team_member_vacation"
	if err := s.gate.Require(access.CapabilityTeamEdit, op); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	status := timetracking.AbsenceStatusEnquired
	if req.AutoApprove {
		status = timetracking.AbsenceStatusApproved
	}
	env, err := s.client.Create(ctx, clockodo.FamilyAbsence, map[string]any{
		"date_since": req.DateSince,
		"date_until": req.DateUntil,
		"type":       req.AbsenceType,
		"users_id":   req.UserID,
		"status":     status,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return env, nil
}

// EditTeamEntry implements timetracking.TeamLeaderService.
func (s *TeamLeaderServiceImpl) EditTeamEntry(ctx context.Context, req timetracking.EditEntryRequest) (clockodo.Envelope, error) {
	const op = "edit_team_member_entry"
	if err := s.gate.Require(access.CapabilityTeamEdit, op); err != nil {
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

// DeleteTeamEntry implements timetracking.TeamLeaderService.
func (s *TeamLeaderServiceImpl) DeleteTeamEntry(ctx context.Context, req timetracking.IDRequest) (clockodo.Envelope, error) {
	const op = "delete_team_member_entry"
	if err := s.gate.Require(access.CapabilityTeamEdit, op); err != nil {
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
