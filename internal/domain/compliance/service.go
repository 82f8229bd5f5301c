package compliance

import (
	"context"

	"github.com/cmlabs-hris/clockodo-mcp-go/internal/domain/clockodo"
)

type HRService interface {
	CheckOvertimeCompliance(ctx context.Context, req OvertimeRequest) (OvertimeReport, error)
	CheckVacationCompliance(ctx context.Context, req VacationRequest) (VacationReport, error)
	GetHRSummary(ctx context.Context, req SummaryRequest) (SummaryReport, error)
	GetHROverview(ctx context.Context, req SummaryRequest) (OverviewReport, error)
	GetRawUserReports(ctx context.Context, req RawReportsRequest) (clockodo.Envelope, error)
}
