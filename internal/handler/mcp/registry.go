package mcp

import (
	"context"

	"github.com/cmlabs-hris/clockodo-mcp-go/internal/domain/access"
	"github.com/cmlabs-hris/clockodo-mcp-go/internal/domain/compliance"
	"github.com/cmlabs-hris/clockodo-mcp-go/internal/domain/timetracking"
)

type ParamType string

const (
	TypeNumber  ParamType = "number"
	TypeString  ParamType = "string"
	TypeBoolean ParamType = "boolean"
	TypeObject  ParamType = "object"
)

type Param struct {
	Name        string
	Type        ParamType
	Required    bool
	Description string
	Default     any
}

type handlerFunc func(ctx context.Context, a *args) (any, error)

// Operation is one exposed tool. An empty Capability means always enabled.
type Operation struct {
	Name        string
	Description string
	Capability  access.Capability
	ReadOnly    bool
	Params      []Param
	handle      handlerFunc
}

// Services are the domain services behind the tools.
type Services struct {
	HR         compliance.HRService
	User       timetracking.UserService
	TeamLeader timetracking.TeamLeaderService
	Admin      timetracking.AdminService
}

var (
	yearParam = Param{Name: "year", Type: TypeNumber, Required: true, Description: "Year to analyze, e.g. 2024"}

	maxOvertimeParam = Param{Name: "max_overtime_hours", Type: TypeNumber, Default: float64(compliance.DefaultMaxOvertimeHours),
		Description: "Overtime balance in hours above which an employee is flagged"}
	minVacationParam = Param{Name: "min_vacation_days", Type: TypeNumber, Default: float64(compliance.DefaultMinVacationDays),
		Description: "Vacation days taken below which an employee is flagged"}
	maxRemainingParam = Param{Name: "max_vacation_remaining", Type: TypeNumber, Default: float64(compliance.DefaultMaxVacationRemaining),
		Description: "Remaining vacation days above which an employee is flagged"}

	timeSinceParam = Param{Name: "time_since", Type: TypeString, Required: true, Description: "Start, e.g. 2024-01-01T00:00:00Z or 2024-01-01 00:00:00"}
	timeUntilParam = Param{Name: "time_until", Type: TypeString, Required: true, Description: "End, e.g. 2024-01-31T23:59:59Z or 2024-01-31 23:59:59"}

	entryIDParam   = Param{Name: "entry_id", Type: TypeNumber, Required: true, Description: "Time entry ID"}
	entryDataParam = Param{Name: "data", Type: TypeObject, Required: true, Description: "Fields to update, e.g. {\"text\": \"...\"}"}
	absenceIDParam = Param{Name: "absence_id", Type: TypeNumber, Required: true, Description: "Absence ID"}
)

// Operations is the static tool table. Order is the order tools are listed.
func Operations(svc Services) []Operation {
	return []Operation{
		// HR analytics
		{
			Name:        "check_overtime_compliance",
			Description: "Find employees whose overtime balance exceeds a threshold for a year.",
			Capability:  access.CapabilityHRRead,
			ReadOnly:    true,
			Params:      []Param{yearParam, maxOvertimeParam},
			handle: func(ctx context.Context, a *args) (any, error) {
				req := compliance.OvertimeRequest{
					Year:             a.int("year"),
					MaxOvertimeHours: a.floatOr("max_overtime_hours", compliance.DefaultMaxOvertimeHours),
				}
				if err := a.err(); err != nil {
					return nil, err
				}
				return svc.HR.CheckOvertimeCompliance(ctx, req)
			},
		},
		{
			Name:        "check_vacation_compliance",
			Description: "Find employees who took too little vacation or carry too much remaining vacation.",
			Capability:  access.CapabilityHRRead,
			ReadOnly:    true,
			Params:      []Param{yearParam, minVacationParam, maxRemainingParam},
			handle: func(ctx context.Context, a *args) (any, error) {
				req := compliance.VacationRequest{
					Year:                 a.int("year"),
					MinVacationDays:      a.floatOr("min_vacation_days", compliance.DefaultMinVacationDays),
					MaxVacationRemaining: a.floatOr("max_vacation_remaining", compliance.DefaultMaxVacationRemaining),
				}
				if err := a.err(); err != nil {
					return nil, err
				}
				return svc.HR.CheckVacationCompliance(ctx, req)
			},
		},
		{
			Name:        "get_hr_summary",
			Description: "Combined overtime and vacation compliance report for a year.",
			Capability:  access.CapabilityHRRead,
			ReadOnly:    true,
			Params:      []Param{yearParam, maxOvertimeParam, minVacationParam, maxRemainingParam},
			handle: func(ctx context.Context, a *args) (any, error) {
				req := summaryRequest(a)
				if err := a.err(); err != nil {
					return nil, err
				}
				return svc.HR.GetHRSummary(ctx, req)
			},
		},
		{
			Name:        "get_hr_overview",
			Description: "Compliance summary plus the number of absence requests awaiting a decision.",
			Capability:  access.CapabilityHRRead,
			ReadOnly:    true,
			Params:      []Param{yearParam, maxOvertimeParam, minVacationParam, maxRemainingParam},
			handle: func(ctx context.Context, a *args) (any, error) {
				req := summaryRequest(a)
				if err := a.err(); err != nil {
					return nil, err
				}
				return svc.HR.GetHROverview(ctx, req)
			},
		},
		{
			Name:        "get_raw_user_reports",
			Description: "Raw yearly user reports as returned by Clockodo, for debugging.",
			Capability:  access.CapabilityHRRead,
			ReadOnly:    true,
			Params:      []Param{yearParam},
			handle: func(ctx context.Context, a *args) (any, error) {
				req := compliance.RawReportsRequest{Year: a.int("year")}
				if err := a.err(); err != nil {
					return nil, err
				}
				return svc.HR.GetRawUserReports(ctx, req)
			},
		},

		// Own time tracking
		{
			Name:        "get_my_clock",
			Description: "Show the currently running clock, if any.",
			Capability:  access.CapabilityUserRead,
			ReadOnly:    true,
			handle: func(ctx context.Context, _ *args) (any, error) {
				return svc.User.GetMyClock(ctx)
			},
		},
		{
			Name:        "get_my_entries",
			Description: "List your own time entries in a time range.",
			Capability:  access.CapabilityUserRead,
			ReadOnly:    true,
			Params:      []Param{timeSinceParam, timeUntilParam},
			handle: func(ctx context.Context, a *args) (any, error) {
				req := timetracking.EntriesRequest{
					TimeSince: a.string("time_since"),
					TimeUntil: a.string("time_until"),
				}
				if err := a.err(); err != nil {
					return nil, err
				}
				return svc.User.GetMyEntries(ctx, req)
			},
		},
		{
			Name:        "start_my_clock",
			Description: "Start the clock for a customer and service.",
			Capability:  access.CapabilityUserEdit,
			Params: []Param{
				{Name: "customers_id", Type: TypeNumber, Required: true, Description: "Customer ID"},
				{Name: "services_id", Type: TypeNumber, Required: true, Description: "Service ID"},
				{Name: "billable", Type: TypeNumber, Description: "0 not billable, 1 billable, 2 already billed"},
				{Name: "projects_id", Type: TypeNumber, Description: "Project ID"},
				{Name: "text", Type: TypeString, Description: "Description of the work"},
			},
			handle: func(ctx context.Context, a *args) (any, error) {
				req := timetracking.StartClockRequest{
					CustomersID: a.int("customers_id"),
					ServicesID:  a.int("services_id"),
					Billable:    a.optionalInt("billable"),
					ProjectsID:  a.optionalInt("projects_id"),
					Text:        a.optionalString("text"),
				}
				if err := a.err(); err != nil {
					return nil, err
				}
				return svc.User.StartMyClock(ctx, req)
			},
		},
		{
			Name:        "stop_my_clock",
			Description: "Stop the running clock.",
			Capability:  access.CapabilityUserEdit,
			handle: func(ctx context.Context, _ *args) (any, error) {
				return svc.User.StopMyClock(ctx)
			},
		},
		{
			Name:        "add_my_entry",
			Description: "Add a time entry for yourself.",
			Capability:  access.CapabilityUserEdit,
			Params: []Param{
				{Name: "customers_id", Type: TypeNumber, Required: true, Description: "Customer ID"},
				{Name: "services_id", Type: TypeNumber, Required: true, Description: "Service ID"},
				timeSinceParam,
				timeUntilParam,
				{Name: "billable", Type: TypeNumber, Default: float64(1), Description: "0 not billable, 1 billable, 2 already billed"},
				{Name: "projects_id", Type: TypeNumber, Description: "Project ID"},
				{Name: "text", Type: TypeString, Description: "Description of the work"},
			},
			handle: func(ctx context.Context, a *args) (any, error) {
				req := timetracking.CreateEntryRequest{
					CustomersID: a.int("customers_id"),
					ServicesID:  a.int("services_id"),
					TimeSince:   a.string("time_since"),
					TimeUntil:   a.string("time_until"),
					Billable:    a.intOr("billable", 1),
					ProjectsID:  a.optionalInt("projects_id"),
					Text:        a.optionalString("text"),
				}
				if err := a.err(); err != nil {
					return nil, err
				}
				return svc.User.AddMyEntry(ctx, req)
			},
		},
		{
			Name:        "edit_my_entry",
			Description: "Edit one of your time entries.",
			Capability:  access.CapabilityUserEdit,
			Params:      []Param{entryIDParam, entryDataParam},
			handle: func(ctx context.Context, a *args) (any, error) {
				req := timetracking.EditEntryRequest{EntryID: a.int("entry_id"), Data: a.object("data")}
				if err := a.err(); err != nil {
					return nil, err
				}
				return svc.User.EditMyEntry(ctx, req)
			},
		},
		{
			Name:        "delete_my_entry",
			Description: "Delete one of your time entries.",
			Capability:  access.CapabilityUserEdit,
			Params:      []Param{entryIDParam},
			handle: func(ctx context.Context, a *args) (any, error) {
				req := timetracking.IDRequest{ID: a.int("entry_id")}
				if err := a.err(); err != nil {
					return nil, err
				}
				return svc.User.DeleteMyEntry(ctx, req)
			},
		},
		{
			Name:        "add_my_vacation",
			Description: "Request vacation for yourself.",
			Capability:  access.CapabilityUserEdit,
			Params: []Param{
				{Name: "date_since", Type: TypeString, Required: true, Description: "First day, YYYY-MM-DD"},
				{Name: "date_until", Type: TypeString, Required: true, Description: "Last day, YYYY-MM-DD"},
			},
			handle: func(ctx context.Context, a *args) (any, error) {
				req := timetracking.VacationRequest{
					DateSince: a.string("date_since"),
					DateUntil: a.string("date_until"),
				}
				if err := a.err(); err != nil {
					return nil, err
				}
				return svc.User.AddMyVacation(ctx, req)
			},
		},
		{
			Name:        "cancel_my_vacation",
			Description: "Cancel one of your approved vacations.",
			Capability:  access.CapabilityUserEdit,
			Params:      []Param{absenceIDParam},
			handle: func(ctx context.Context, a *args) (any, error) {
				req := timetracking.IDRequest{ID: a.int("absence_id")}
				if err := a.err(); err != nil {
					return nil, err
				}
				return svc.User.CancelMyVacation(ctx, req)
			},
		},
		{
			Name:        "delete_my_vacation",
			Description: "Delete one of your vacations. Approved vacations must be cancelled first, or pass auto_cancel.",
			Capability:  access.CapabilityUserEdit,
			Params: []Param{
				absenceIDParam,
				{Name: "auto_cancel", Type: TypeBoolean, Default: false, Description: "Cancel the absence before deleting it"},
			},
			handle: func(ctx context.Context, a *args) (any, error) {
				req := timetracking.DeleteVacationRequest{
					AbsenceID:  a.int("absence_id"),
					AutoCancel: a.boolOr("auto_cancel", false),
				}
				if err := a.err(); err != nil {
					return nil, err
				}
				return svc.User.DeleteMyVacation(ctx, req)
			},
		},

		// Team leader
		{
			Name:        "list_pending_vacation_requests",
			Description: "List absence requests of a year still waiting for approval.",
			Capability:  access.CapabilityTeamRead,
			ReadOnly:    true,
			Params:      []Param{yearParam},
			handle: func(ctx context.Context, a *args) (any, error) {
				req := timetracking.YearRequest{Year: a.int("year")}
				if err := a.err(); err != nil {
					return nil, err
				}
				pending, err := svc.TeamLeader.ListPendingVacations(ctx, req)
				if err != nil {
					return nil, err
				}
				return map[string]any{"count": len(pending), "absences": pending}, nil
			},
		},
		{
			Name:        "approve_vacation_request",
			Description: "Approve an absence request.",
			Capability:  access.CapabilityTeamEdit,
			Params:      []Param{absenceIDParam},
			handle: func(ctx context.Context, a *args) (any, error) {
				req := timetracking.IDRequest{ID: a.int("absence_id")}
				if err := a.err(); err != nil {
					return nil, err
				}
				return svc.TeamLeader.ApproveVacation(ctx, req)
			},
		},
		{
			Name:        "reject_vacation_request",
			Description: "Decline an absence request.",
			Capability:  access.CapabilityTeamEdit,
			Params:      []Param{absenceIDParam},
			handle: func(ctx context.Context, a *args) (any, error) {
				req := timetracking.IDRequest{ID: a.int("absence_id")}
				if err := a.err(); err != nil {
					return nil, err
				}
				return svc.TeamLeader.RejectVacation(ctx, req)
			},
		},
		{
			Name:        "adjust_vacation_dates",
			Description: "Move an absence to new dates.",
			Capability:  access.CapabilityTeamEdit,
			Params: []Param{
				absenceIDParam,
				{Name: "new_date_since", Type: TypeString, Required: true, Description: "New first day, YYYY-MM-DD"},
				{Name: "new_date_until", Type: TypeString, Required: true, Description: "New last day, YYYY-MM-DD"},
			},
			handle: func(ctx context.Context, a *args) (any, error) {
				req := timetracking.AdjustVacationRequest{
					AbsenceID:    a.int("absence_id"),
					NewDateSince: a.string("new_date_since"),
					NewDateUntil: a.string("new_date_until"),
				}
				if err := a.err(); err != nil {
					return nil, err
				}
				return svc.TeamLeader.AdjustVacationDates(ctx, req)
			},
		},
		{
			Name:        "create_team_member_vacation",
			Description: "Create an absence for a team member.",
			Capability:  access.CapabilityTeamEdit,
			Params: []Param{
				{Name: "user_id", Type: TypeNumber, Required: true, Description: "Team member's user ID"},
				{Name: "date_since", Type: TypeString, Required: true, Description: "First day, YYYY-MM-DD"},
				{Name: "date_until", Type: TypeString, Required: true, Description: "Last day, YYYY-MM-DD"},
				{Name: "absence_type", Type: TypeNumber, Default: float64(timetracking.AbsenceTypeVacation), Description: "Absence type, 1 is regular vacation"},
				{Name: "auto_approve", Type: TypeBoolean, Default: true, Description: "Create the absence as approved"},
			},
			handle: func(ctx context.Context, a *args) (any, error) {
				req := timetracking.TeamVacationRequest{
					UserID:      a.int("user_id"),
					DateSince:   a.string("date_since"),
					DateUntil:   a.string("date_until"),
					AbsenceType: a.intOr("absence_type", timetracking.AbsenceTypeVacation),
					AutoApprove: a.boolOr("auto_approve", true),
				}
				if err := a.err(); err != nil {
					return nil, err
				}
				return svc.TeamLeader.CreateTeamVacation(ctx, req)
			},
		},
		{
			Name:        "edit_team_member_entry",
			Description: "Edit a team member's time entry.",
			Capability:  access.CapabilityTeamEdit,
			Params:      []Param{entryIDParam, entryDataParam},
			handle: func(ctx context.Context, a *args) (any, error) {
				req := timetracking.EditEntryRequest{EntryID: a.int("entry_id"), Data: a.object("data")}
				if err := a.err(); err != nil {
					return nil, err
				}
				return svc.TeamLeader.EditTeamEntry(ctx, req)
			},
		},
		{
			Name:        "delete_team_member_entry",
			Description: "Delete a team member's time entry.",
			Capability:  access.CapabilityTeamEdit,
			Params:      []Param{entryIDParam},
			handle: func(ctx context.Context, a *args) (any, error) {
				req := timetracking.IDRequest{ID: a.int("entry_id")}
				if err := a.err(); err != nil {
					return nil, err
				}
				return svc.TeamLeader.DeleteTeamEntry(ctx, req)
			},
		},

		// Administration
		{
			Name:        "list_users",
			Description: "List all users.",
			Capability:  access.CapabilityAdminRead,
			ReadOnly:    true,
			handle: func(ctx context.Context, _ *args) (any, error) {
				return svc.Admin.ListUsers(ctx)
			},
		},
		{
			Name:        "list_user_entries",
			Description: "List the time entries of any user in a time range.",
			Capability:  access.CapabilityAdminRead,
			ReadOnly:    true,
			Params: []Param{
				{Name: "user_id", Type: TypeNumber, Required: true, Description: "User ID"},
				timeSinceParam,
				timeUntilParam,
			},
			handle: func(ctx context.Context, a *args) (any, error) {
				req := timetracking.UserEntriesRequest{
					UserID:    a.int("user_id"),
					TimeSince: a.string("time_since"),
					TimeUntil: a.string("time_until"),
				}
				if err := a.err(); err != nil {
					return nil, err
				}
				return svc.Admin.ListUserEntries(ctx, req)
			},
		},
		{
			Name:        "list_absences",
			Description: "List all absences of a year.",
			Capability:  access.CapabilityAdminRead,
			ReadOnly:    true,
			Params:      []Param{yearParam},
			handle: func(ctx context.Context, a *args) (any, error) {
				req := timetracking.YearRequest{Year: a.int("year")}
				if err := a.err(); err != nil {
					return nil, err
				}
				return svc.Admin.ListAbsences(ctx, req)
			},
		},
		{
			Name:        "edit_user_entry",
			Description: "Edit any user's time entry.",
			Capability:  access.CapabilityAdminEdit,
			Params:      []Param{entryIDParam, entryDataParam},
			handle: func(ctx context.Context, a *args) (any, error) {
				req := timetracking.EditEntryRequest{EntryID: a.int("entry_id"), Data: a.object("data")}
				if err := a.err(); err != nil {
					return nil, err
				}
				return svc.Admin.EditUserEntry(ctx, req)
			},
		},
		{
			Name:        "delete_user_entry",
			Description: "Delete any user's time entry.",
			Capability:  access.CapabilityAdminEdit,
			Params:      []Param{entryIDParam},
			handle: func(ctx context.Context, a *args) (any, error) {
				req := timetracking.IDRequest{ID: a.int("entry_id")}
				if err := a.err(); err != nil {
					return nil, err
				}
				return svc.Admin.DeleteUserEntry(ctx, req)
			},
		},
	}
}

func summaryRequest(a *args) compliance.SummaryRequest {
	return compliance.SummaryRequest{
		Year: a.int("year"),
		Thresholds: compliance.Thresholds{
			MaxOvertimeHours:     a.floatOr("max_overtime_hours", compliance.DefaultMaxOvertimeHours),
			MinVacationDays:      a.floatOr("min_vacation_days", compliance.DefaultMinVacationDays),
			MaxVacationRemaining: a.floatOr("max_vacation_remaining", compliance.DefaultMaxVacationRemaining),
		},
	}
}
