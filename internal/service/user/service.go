package user

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cmlabs-hris/clockodo-mcp-go/internal/domain/access"
	"github.com/cmlabs-hris/clockodo-mcp-go/internal/domain/clockodo"
	"github.com/cmlabs-hris/clockodo-mcp-go/internal/domain/timetracking"
	"github.com/cmlabs-hris/clockodo-mcp-go/internal/pkg/validator"
	"golang.org/x/sync/singleflight"
)

type UserServiceImpl struct {
	client clockodo.Client
	gate   access.Gate
	lookup singleflight.Group
}

func NewUserService(client clockodo.Client, gate access.Gate) timetracking.UserService {
	return &UserServiceImpl{client: client, gate: gate}
}

// CurrentUser resolves the user whose email matches the API credentials.
// Concurrent lookups share one upstream request; nothing is cached between calls.
// The shared request ignores any single caller's cancellation, and each caller
// stops waiting when its own ctx ends.
func (s *UserServiceImpl) CurrentUser(ctx context.Context) (clockodo.Record, error) {
	shared := context.WithoutCancel(ctx)
	ch := s.lookup.DoChan(s.client.APIUser(), func() (any, error) {
		env, err := s.client.Fetch(shared, clockodo.FamilyUser, nil)
		if err != nil {
			return nil, err
		}
		users, err := env.Records(clockodo.FamilyUser)
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			if u.String("email") == s.client.APIUser() {
				return u, nil
			}
		}
		return nil, fmt.Errorf("%w: %s", timetracking.ErrCurrentUserNotFound, s.client.APIUser())
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(clockodo.Record), nil
	}
}

// CurrentUserID implements timetracking.UserService.
func (s *UserServiceImpl) CurrentUserID(ctx context.Context) (int, error) {
	u, err := s.CurrentUser(ctx)
	if err != nil {
		return 0, err
	}
	id, _ := u.Int("id")
	return id, nil
}

// GetMyClock implements timetracking.UserService.
func (s *UserServiceImpl) GetMyClock(ctx context.Context) (clockodo.Envelope, error) {
	const op = "get_my_clock"
	if err := s.gate.Require(access.CapabilityUserRead, op); err != nil {
		return nil, err
	}
	env, err := s.client.Fetch(ctx, clockodo.FamilyClock, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return env, nil
}

// StartMyClock implements timetracking.UserService.
func (s *UserServiceImpl) StartMyClock(ctx context.Context, req timetracking.StartClockRequest) (clockodo.Envelope, error) {
	const op = "start_my_clock"
	if err := s.gate.Require(access.CapabilityUserEdit, op); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	body := map[string]any{
		"customers_id": req.CustomersID,
		"services_id":  req.ServicesID,
	}
	if req.Billable != nil {
		body["billable"] = *req.Billable
	}
	if req.ProjectsID != nil {
		body["projects_id"] = *req.ProjectsID
	}
	if req.Text != nil {
		body["text"] = *req.Text
	}
	env, err := s.client.Create(ctx, clockodo.FamilyClock, body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return env, nil
}

// StopMyClock stops whatever clock is running. Without one it returns
// timetracking.ErrNoRunningClock and issues no stop request.
func (s *UserServiceImpl) StopMyClock(ctx context.Context) (clockodo.Envelope, error) {
	const op = "stop_my_clock"
	if err := s.gate.Require(access.CapabilityUserEdit, op); err != nil {
		return nil, err
	}

	env, err := s.client.Fetch(ctx, clockodo.FamilyClock, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	running, ok := env.Record("running")
	if !ok {
		return nil, timetracking.ErrNoRunningClock
	}
	id, ok := running.Int("id")
	if !ok || id == 0 {
		return nil, timetracking.ErrNoRunningClock
	}
	stopped, err := s.client.Delete(ctx, clockodo.FamilyClock, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return stopped, nil
}

// GetMyEntries implements timetracking.UserService.
func (s *UserServiceImpl) GetMyEntries(ctx context.Context, req timetracking.EntriesRequest) (clockodo.Envelope, error) {
	const op = "get_my_entries"
	if err := s.gate.Require(access.CapabilityUserRead, op); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	userID, err := s.CurrentUserID(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	params, err := EntryParams(req.TimeSince, req.TimeUntil, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	env, err := s.client.Fetch(ctx, clockodo.FamilyTimeEntry, params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return env, nil
}

// AddMyEntry implements timetracking.UserService.
func (s *UserServiceImpl) AddMyEntry(ctx context.Context, req timetracking.CreateEntryRequest) (clockodo.Envelope, error) {
	const op = "add_my_entry"
	if err := s.gate.Require(access.CapabilityUserEdit, op); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	userID, err := s.CurrentUserID(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	since, until, err := normalizeRange(req.TimeSince, req.TimeUntil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	body := map[string]any{
		"customers_id": req.CustomersID,
		"services_id":  req.ServicesID,
		"billable":     req.Billable,
		"time_since":   since,
		"time_until":   until,
		"users_id":     userID,
	}
	if req.ProjectsID != nil {
		body["projects_id"] = *req.ProjectsID
	}
	if req.Text != nil {
		body["text"] = *req.Text
	}
	env, err := s.client.Create(ctx, clockodo.FamilyTimeEntry, body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return env, nil
}

// EditMyEntry implements timetracking.UserService. Ownership is enforced
// upstream.
func (s *UserServiceImpl) EditMyEntry(ctx context.Context, req timetracking.EditEntryRequest) (clockodo.Envelope, error) {
	const op = "edit_my_entry"
	if err := s.gate.Require(access.CapabilityUserEdit, op); err != nil {
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

// DeleteMyEntry implements timetracking.UserService.
func (s *UserServiceImpl) DeleteMyEntry(ctx context.Context, req timetracking.IDRequest) (clockodo.Envelope, error) {
	const op = "delete_my_entry"
	if err := s.gate.Require(access.CapabilityUserEdit, op); err != nil {
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

// AddMyVacation files a vacation request for the current user.
func (s *UserServiceImpl) AddMyVacation(ctx context.Context, req timetracking.VacationRequest) (clockodo.Envelope, error) {
	const op = "add_my_vacation"
	if err := s.gate.Require(access.CapabilityUserEdit, op); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	userID, err := s.CurrentUserID(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	env, err := s.client.Create(ctx, clockodo.FamilyAbsence, map[string]any{
		"date_since": req.DateSince,
		"date_until": req.DateUntil,
		"type":       timetracking.AbsenceTypeVacation,
		"users_id":   userID,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return env, nil
}

// CancelMyVacation moves an approved absence to "approval cancelled".
func (s *UserServiceImpl) CancelMyVacation(ctx context.Context, req timetracking.IDRequest) (clockodo.Envelope, error) {
	const op = "cancel_my_vacation"
	if err := s.gate.Require(access.CapabilityUserEdit, op); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	env, err := s.client.Update(ctx, clockodo.FamilyAbsence, req.ID, map[string]any{
		"status": timetracking.AbsenceStatusApprovalCancelled,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return env, nil
}

// DeleteMyVacation deletes an absence, cancelling it first when AutoCancel is
// set. A failed cancel aborts the delete.
func (s *UserServiceImpl) DeleteMyVacation(ctx context.Context, req timetracking.DeleteVacationRequest) (clockodo.Envelope, error) {
	const op = "delete_my_vacation"
	if err := s.gate.Require(access.CapabilityUserEdit, op); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.AutoCancel {
		if _, err := s.CancelMyVacation(ctx, timetracking.IDRequest{ID: req.AbsenceID}); err != nil {
			return nil, fmt.Errorf("%s: cancel before delete: %w", op, err)
		}
	}
	env, err := s.client.Delete(ctx, clockodo.FamilyAbsence, req.AbsenceID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return env, nil
}

// ListCustomers implements timetracking.UserService.
func (s *UserServiceImpl) ListCustomers(ctx context.Context) ([]clockodo.Record, error) {
	return s.catalog(ctx, clockodo.FamilyCustomer)
}

// ListServices implements timetracking.UserService.
func (s *UserServiceImpl) ListServices(ctx context.Context) ([]clockodo.Record, error) {
	return s.catalog(ctx, clockodo.FamilyService)
}

// ListProjects implements timetracking.UserService.
func (s *UserServiceImpl) ListProjects(ctx context.Context) ([]clockodo.Record, error) {
	return s.catalog(ctx, clockodo.FamilyProject)
}

func (s *UserServiceImpl) catalog(ctx context.Context, family clockodo.Family) ([]clockodo.Record, error) {
	op := "list_" + family.Resource()
	if err := s.gate.Require(access.CapabilityUserRead, op); err != nil {
		return nil, err
	}
	env, err := s.client.Fetch(ctx, family, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	records, err := env.Records(family)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return records, nil
}

// EntryParams builds the time entry query for a time range, optionally
// narrowed to one user. Timestamps are normalized to RFC 3339.
func EntryParams(timeSince, timeUntil string, userID int) (clockodo.Params, error) {
	since, until, err := normalizeRange(timeSince, timeUntil)
	if err != nil {
		return nil, err
	}

	params := clockodo.Params{
		"time_since": since,
		"time_until": until,
	}
	if userID > 0 {
		params["filter[users_id]"] = strconv.Itoa(userID)
	}
	return params, nil
}

func normalizeRange(timeSince, timeUntil string) (string, string, error) {
	since, err := validator.NormalizeDateTime(timeSince)
	if err != nil {
		return "", "", validator.ValidationErrors{{Field: "time_since", Message: err.Error()}}
	}
	until, err := validator.NormalizeDateTime(timeUntil)
	if err != nil {
		return "", "", validator.ValidationErrors{{Field: "time_until", Message: err.Error()}}
	}
	return since, until, nil
}
