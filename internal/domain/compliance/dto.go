package compliance

import (
	"github.com/cmlabs-hris/clockodo-mcp-go/internal/pkg/validator"
)

// ========================================
// OVERTIME
// ========================================

type OvertimeRequest struct {
	Year             int     `json:"year" validate:"gt=0"`
	MaxOvertimeHours float64 `json:"max_overtime_hours" validate:"gte=0"`
}

func (r *OvertimeRequest) Validate() error {
	return validator.Struct(r)
}

type OvertimeReport struct {
	Year            int         `json:"year"`
	Threshold       float64     `json:"threshold"`
	TotalViolations int         `json:"total_violations"`
	Violations      []Violation `json:"violations"`
}

// ========================================
// VACATION
// ========================================

type VacationRequest struct {
	Year                 int     `json:"year" validate:"gt=0"`
	MinVacationDays      float64 `json:"min_vacation_days" validate:"gte=0"`
	MaxVacationRemaining float64 `json:"max_vacation_remaining" validate:"gte=0"`
}

func (r *VacationRequest) Validate() error {
	return validator.Struct(r)
}

type VacationReport struct {
	Year                 int         `json:"year"`
	MinVacationDays      float64     `json:"min_vacation_days"`
	MaxVacationRemaining float64     `json:"max_vacation_remaining"`
	TotalViolations      int         `json:"total_violations"`
	Violations           []Violation `json:"violations"`
}

// ========================================
// SUMMARY
// ========================================

type SummaryRequest struct {
	Year       int        `json:"year" validate:"gt=0"`
	Thresholds Thresholds `json:"thresholds"`
}

func (r *SummaryRequest) Validate() error {
	return validator.Struct(r)
}

type SummaryReport struct {
	Year       int        `json:"year"`
	Thresholds Thresholds `json:"thresholds"`
	Summary
}

// OverviewReport extends the summary with the absence requests still
// waiting for a decision in the same year.
type OverviewReport struct {
	SummaryReport
	PendingAbsences int `json:"pending_absences"`
}

type RawReportsRequest struct {
	Year int `json:"year" validate:"gt=0"`
}

func (r *RawReportsRequest) Validate() error {
	return validator.Struct(r)
}
