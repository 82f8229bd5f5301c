package admin

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/cmlabs-hris/clockodo-mcp-go/internal/domain/access"
	"github.com/cmlabs-hris/clockodo-mcp-go/internal/domain/clockodo"
	"github.com/cmlabs-hris/clockodo-mcp-go/internal/domain/timetracking"
	"github.com/cmlabs-hris/clockodo-mcp-go/internal/pkg/clockodo/clockodotest"
	"github.com/cmlabs-hris/clockodo-mcp-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminService_ListUsers(t *testing.T) {
	users := clockodo.Envelope{"users": []any{map[string]any{"id": float64(1), "email": "a@example.com"}}}
	client := clockodotest.NewFakeClient("admin@example.com").OnFetch(clockodo.FamilyUser, users)
	svc := NewAdminService(client, access.GateForRole(access.RoleAdmin))

	env, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, users, env)
}

func TestAdminService_ListUserEntries(t *testing.T) {
	client := clockodotest.NewFakeClient("admin@example.com")
	svc := NewAdminService(client, access.GateForRole(access.RoleAdmin))

	_, err := svc.ListUserEntries(context.Background(), timetracking.UserEntriesRequest{
		UserID: 9, TimeSince: "2024-01-01T00:00:00Z", TimeUntil: "2024-02-01 00:00:00",
	})
	require.NoError(t, err)

	call, ok := client.LastCall("GET", clockodo.FamilyTimeEntry)
	require.True(t, ok)
	assert.Equal(t, "9", call.Params["filter[users_id]"])
	assert.Equal(t, "2024-02-01T00:00:00Z", call.Params["time_until"])
}

func TestAdminService_ListUserEntries_BadTimestamp(t *testing.T) {
	client := clockodotest.NewFakeClient("admin@example.com")
	svc := NewAdminService(client, access.GateForRole(access.RoleAdmin))

	_, err := svc.ListUserEntries(context.Background(), timetracking.UserEntriesRequest{
		UserID: 9, TimeSince: "yesterday", TimeUntil: "2024-02-01T00:00:00Z",
	})

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs.ToMap(), "time_since")
	assert.Empty(t, client.Calls())
}

func TestAdminService_ListAbsences(t *testing.T) {
	client := clockodotest.NewFakeClient("admin@example.com")
	svc := NewAdminService(client, access.GateForRole(access.RoleAdmin))

	_, err := svc.ListAbsences(context.Background(), timetracking.YearRequest{Year: 2025})
	require.NoError(t, err)

	call, _ := client.LastCall("GET", clockodo.FamilyAbsence)
	assert.Equal(t, "2025", call.Params["filter[year]"])
}

func TestAdminService_EditAndDeleteEntry(t *testing.T) {
	client := clockodotest.NewFakeClient("admin@example.com")
	svc := NewAdminService(client, access.GateForRole(access.RoleAdmin))
	ctx := context.Background()

	_, err := svc.EditUserEntry(ctx, timetracking.EditEntryRequest{EntryID: 3, Data: map[string]any{"text": "x"}})
	require.NoError(t, err)
	_, err = svc.DeleteUserEntry(ctx, timetracking.IDRequest{ID: 3})
	require.NoError(t, err)

	assert.Equal(t, 1, client.CallCount("PUT", clockodo.FamilyTimeEntry))
	assert.Equal(t, 1, client.CallCount("DELETE", clockodo.FamilyTimeEntry))
}

func TestAdminService_EditEntry_EmptyData(t *testing.T) {
	client := clockodotest.NewFakeClient("admin@example.com")
	svc := NewAdminService(client, access.GateForRole(access.RoleAdmin))

	_, err := svc.EditUserEntry(context.Background(), timetracking.EditEntryRequest{EntryID: 3, Data: map[string]any{}})

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs.ToMap(), "data")
}

func TestAdminService_DeniedForTeamLeader(t *testing.T) {
	client := clockodotest.NewFakeClient("lead@example.com")
	svc := NewAdminService(client, access.GateForRole(access.RoleTeamLeader))

	_, err := svc.ListUsers(context.Background())
	var denied *access.CapabilityDeniedError
	require.True(t, errors.As(err, &denied))
	assert.Equal(t, access.CapabilityAdminRead, denied.Capability)

	_, err = svc.DeleteUserEntry(context.Background(), timetracking.IDRequest{ID: 1})
	require.True(t, errors.As(err, &denied))
	assert.Equal(t, access.CapabilityAdminEdit, denied.Capability)

	assert.Empty(t, client.Calls())
}

func TestAdminService_UpstreamErrorsNameOperation(t *testing.T) {
	upstream := &clockodo.UpstreamRequestError{Method: "GET", URL: "u", StatusCode: http.StatusBadGateway}
	cases := []struct {
		op     string
		method string
		family clockodo.Family
		call   func(ctx context.Context, svc timetracking.AdminService) error
	}{
		{"list_users", "GET", clockodo.FamilyUser, func(ctx context.Context, svc timetracking.AdminService) error {
			_, err := svc.ListUsers(ctx)
			return err
		}},
		{"list_user_entries", "GET", clockodo.FamilyTimeEntry, func(ctx context.Context, svc timetracking.AdminService) error {
			_, err := svc.ListUserEntries(ctx, timetracking.UserEntriesRequest{UserID: 9, TimeSince: "2024-01-01T00:00:00Z", TimeUntil: "2024-02-01T00:00:00Z"})
			return err
		}},
		{"list_absences", "GET", clockodo.FamilyAbsence, func(ctx context.Context, svc timetracking.AdminService) error {
			_, err := svc.ListAbsences(ctx, timetracking.YearRequest{Year: 2025})
			return err
		}},
		{"edit_user_entry", "PUT", clockodo.FamilyTimeEntry, func(ctx context.Context, svc timetracking.AdminService) error {
			_, err := svc.EditUserEntry(ctx, timetracking.EditEntryRequest{EntryID: 3, Data: map[string]any{"text": "x"}})
			return err
		}},
		{"delete_user_entry", "DELETE", clockodo.FamilyTimeEntry, func(ctx context.Context, svc timetracking.AdminService) error {
			_, err := svc.DeleteUserEntry(ctx, timetracking.IDRequest{ID: 3})
			return err
		}},
	}
	for _, c := range cases {
		t.Run(c.op, func(t *testing.T) {
			client := clockodotest.NewFakeClient("admin@example.com")
			client.Fail(c.method, c.family, upstream)
			svc := NewAdminService(client, access.GateForRole(access.RoleAdmin))

			err := c.call(context.Background(), svc)
			require.Error(t, err)
			assert.True(t, strings.HasPrefix(err.Error(), c.op+": "), err.Error())

			var reqErr *clockodo.UpstreamRequestError
			require.True(t, errors.As(err, &reqErr))
			assert.Equal(t, http.StatusBadGateway, reqErr.StatusCode)
		})
	}
}
