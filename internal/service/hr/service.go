package hr

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cmlabs-hris/clockodo-mcp-go/internal/domain/access"
	"github.com/cmlabs-hris/clockodo-mcp-go/internal/domain/clockodo"
	"github.com/cmlabs-hris/clockodo-mcp-go/internal/domain/compliance"
	"github.com/cmlabs-hris/clockodo-mcp-go/internal/domain/timetracking"
	"golang.org/x/sync/errgroup"
)

// reportTypeYear asks the upstream for yearly totals only.
const reportTypeYear = "0"

type HRServiceImpl struct {
	client clockodo.Client
	gate   access.Gate
}

func NewHRService(client clockodo.Client, gate access.Gate) compliance.HRService {
	return &HRServiceImpl{client: client, gate: gate}
}

// CheckOvertimeCompliance implements compliance.HRService.
func (s *HRServiceImpl) CheckOvertimeCompliance(ctx context.Context, req compliance.OvertimeRequest) (compliance.OvertimeReport, error) {
	const op = "check_overtime_compliance"
	if err := s.gate.Require(access.CapabilityHRRead, op); err != nil {
		return compliance.OvertimeReport{}, err
	}
	if err := req.Validate(); err != nil {
		return compliance.OvertimeReport{}, err
	}

	reports, err := s.userReports(ctx, req.Year)
	if err != nil {
		return compliance.OvertimeReport{}, fmt.Errorf("%s: %w", op, err)
	}

	violations := CheckOvertime(reports, req.MaxOvertimeHours)
	return compliance.OvertimeReport{
		Year:            req.Year,
		Threshold:       req.MaxOvertimeHours,
		TotalViolations: len(violations),
		Violations:      violations,
	}, nil
}

// CheckVacationCompliance implements compliance.HRService.
func (s *HRServiceImpl) CheckVacationCompliance(ctx context.Context, req compliance.VacationRequest) (compliance.VacationReport, error) {
	const op = "check_vacation_compliance"
	if err := s.gate.Require(access.CapabilityHRRead, op); err != nil {
		return compliance.VacationReport{}, err
	}
	if err := req.Validate(); err != nil {
		return compliance.VacationReport{}, err
	}

	reports, err := s.userReports(ctx, req.Year)
	if err != nil {
		return compliance.VacationReport{}, fmt.Errorf("%s: %w", op, err)
	}

	violations := CheckVacation(reports, req.MinVacationDays, req.MaxVacationRemaining)
	return compliance.VacationReport{
		Year:                 req.Year,
		MinVacationDays:      req.MinVacationDays,
		MaxVacationRemaining: req.MaxVacationRemaining,
		TotalViolations:      len(violations),
		Violations:           violations,
	}, nil
}

// GetHRSummary implements compliance.HRService.
func (s *HRServiceImpl) GetHRSummary(ctx context.Context, req compliance.SummaryRequest) (compliance.SummaryReport, error) {
	const op = "get_hr_summary"
	if err := s.gate.Require(access.CapabilityHRRead, op); err != nil {
		return compliance.SummaryReport{}, err
	}
	if err := req.Validate(); err != nil {
		return compliance.SummaryReport{}, err
	}

	reports, err := s.userReports(ctx, req.Year)
	if err != nil {
		return compliance.SummaryReport{}, fmt.Errorf("%s: %w", op, err)
	}

	return compliance.SummaryReport{
		Year:       req.Year,
		Thresholds: req.Thresholds,
		Summary:    Summarize(reports, req.Thresholds),
	}, nil
}

// GetHROverview implements compliance.HRService. Reports and absences are
// fetched concurrently; the first failure cancels the other request.
func (s *HRServiceImpl) GetHROverview(ctx context.Context, req compliance.SummaryRequest) (compliance.OverviewReport, error) {
	const op = "get_hr_overview"
	if err := s.gate.Require(access.CapabilityHRRead, op); err != nil {
		return compliance.OverviewReport{}, err
	}
	if err := req.Validate(); err != nil {
		return compliance.OverviewReport{}, err
	}

	var (
		reports  []compliance.UserReport
		absences []clockodo.Record
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		reports, err = s.userReports(gctx, req.Year)
		return err
	})
	g.Go(func() error {
		env, err := s.client.Fetch(gctx, clockodo.FamilyAbsence, clockodo.Params{"filter[year]": strconv.Itoa(req.Year)})
		if err != nil {
			return err
		}
		absences, err = env.Records(clockodo.FamilyAbsence)
		return err
	})
	if err := g.Wait(); err != nil {
		return compliance.OverviewReport{}, fmt.Errorf("%s: %w", op, err)
	}

	pending := 0
	for _, a := range absences {
		if status, ok := a.Int("status"); ok && status == timetracking.AbsenceStatusEnquired {
			pending++
		}
	}

	return compliance.OverviewReport{
		SummaryReport: compliance.SummaryReport{
			Year:       req.Year,
			Thresholds: req.Thresholds,
			Summary:    Summarize(reports, req.Thresholds),
		},
		PendingAbsences: pending,
	}, nil
}

// GetRawUserReports implements compliance.HRService.
func (s *HRServiceImpl) GetRawUserReports(ctx context.Context, req compliance.RawReportsRequest) (clockodo.Envelope, error) {
	const op = "get_raw_user_reports"
	if err := s.gate.Require(access.CapabilityHRRead, op); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	env, err := s.fetchReports(ctx, req.Year)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return env, nil
}

func (s *HRServiceImpl) fetchReports(ctx context.Context, year int) (clockodo.Envelope, error) {
	return s.client.Fetch(ctx, clockodo.FamilyUserReport, clockodo.Params{
		"year": strconv.Itoa(year),
		"type": reportTypeYear,
	})
}

func (s *HRServiceImpl) userReports(ctx context.Context, year int) ([]compliance.UserReport, error) {
	env, err := s.fetchReports(ctx, year)
	if err != nil {
		return nil, err
	}
	records, err := env.Records(clockodo.FamilyUserReport)
	if err != nil {
		return nil, err
	}
	return ToUserReports(records, year)
}
