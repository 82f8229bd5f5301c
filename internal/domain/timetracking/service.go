package timetracking

import (
	"context"

	"github.com/cmlabs-hris/clockodo-mcp-go/internal/domain/clockodo"
)

// UserService covers the acting user's own clock, entries and vacations.
type UserService interface {
	CurrentUser(ctx context.Context) (clockodo.Record, error)
	CurrentUserID(ctx context.Context) (int, error)

	GetMyClock(ctx context.Context) (clockodo.Envelope, error)
	StartMyClock(ctx context.Context, req StartClockRequest) (clockodo.Envelope, error)
	StopMyClock(ctx context.Context) (clockodo.Envelope, error)

	GetMyEntries(ctx context.Context, req EntriesRequest) (clockodo.Envelope, error)
	AddMyEntry(ctx context.Context, req CreateEntryRequest) (clockodo.Envelope, error)
	EditMyEntry(ctx context.Context, req EditEntryRequest) (clockodo.Envelope, error)
	DeleteMyEntry(ctx context.Context, req IDRequest) (clockodo.Envelope, error)

	AddMyVacation(ctx context.Context, req VacationRequest) (clockodo.Envelope, error)
	CancelMyVacation(ctx context.Context, req IDRequest) (clockodo.Envelope, error)
	DeleteMyVacation(ctx context.Context, req DeleteVacationRequest) (clockodo.Envelope, error)

	// Catalog reads backing the protocol resources.
	ListCustomers(ctx context.Context) ([]clockodo.Record, error)
	ListServices(ctx context.Context) ([]clockodo.Record, error)
	ListProjects(ctx context.Context) ([]clockodo.Record, error)
}

// TeamLeaderService approves absences and corrects team members' entries.
type TeamLeaderService interface {
	ListPendingVacations(ctx context.Context, req YearRequest) ([]clockodo.Record, error)
	ApproveVacation(ctx context.Context, req IDRequest) (clockodo.Envelope, error)
	RejectVacation(ctx context.Context, req IDRequest) (clockodo.Envelope, error)
	AdjustVacationDates(ctx context.Context, req AdjustVacationRequest) (clockodo.Envelope, error)
	CreateTeamVacation(ctx context.Context, req TeamVacationRequest) (clockodo.Envelope, error)
	EditTeamEntry(ctx context.Context, req EditEntryRequest) (clockodo.Envelope, error)
	DeleteTeamEntry(ctx context.Context, req IDRequest) (clockodo.Envelope, error)
}

// AdminService reads and edits data of any user.
type AdminService interface {
	ListUsers(ctx context.Context) (clockodo.Envelope, error)
	ListUserEntries(ctx context.Context, req UserEntriesRequest) (clockodo.Envelope, error)
	ListAbsences(ctx context.Context, req YearRequest) (clockodo.Envelope, error)
	EditUserEntry(ctx context.Context, req EditEntryRequest) (clockodo.Envelope, error)
	DeleteUserEntry(ctx context.Context, req IDRequest) (clockodo.Envelope, error)
}
