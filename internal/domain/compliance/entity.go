package compliance

// UserReport is the per-employee yearly aggregate the analyzer works on.
// Hours and days are already converted from upstream seconds.
type UserReport struct {
	UserID            int     `json:"user_id"`
	UserName          string  `json:"user_name"`
	Year              int     `json:"year"`
	WorkedHours       float64 `json:"worked_hours"`
	TargetHours       float64 `json:"target_hours"`
	OvertimeBalance   float64 `json:"overtime_balance"`
	VacationTaken     float64 `json:"vacation_taken"`
	VacationRemaining float64 `json:"vacation_remaining"`
}

type Kind string

const (
	KindOvertimeExcess       Kind = "overtime-excess"
	KindVacationInsufficient Kind = "vacation-insufficient"
	KindVacationSurplus      Kind = "vacation-surplus"
)

// Violation is a single detected breach for one employee, year and metric.
type Violation struct {
	EmployeeID   int     `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	Kind         Kind    `json:"kind"`
	Observed     float64 `json:"observed"`
	Threshold    float64 `json:"threshold"`
	Deviation    float64 `json:"deviation"`
	Year         int     `json:"year"`
}

// Thresholds configure the compliance checks.
type Thresholds struct {
	MaxOvertimeHours     float64 `json:"max_overtime_hours" validate:"gte=0"`
	MinVacationDays      float64 `json:"min_vacation_days" validate:"gte=0"`
	MaxVacationRemaining float64 `json:"max_vacation_remaining" validate:"gte=0"`
}

const (
	DefaultMaxOvertimeHours     = 80
	DefaultMinVacationDays      = 10
	DefaultMaxVacationRemaining = 20
)

// DefaultThresholds returns the thresholds used when the caller gives none.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxOvertimeHours:     DefaultMaxOvertimeHours,
		MinVacationDays:      DefaultMinVacationDays,
		MaxVacationRemaining: DefaultMaxVacationRemaining,
	}
}

// EmployeeViolations groups the violations of one employee.
type EmployeeViolations struct {
	EmployeeID   int         `json:"employee_id"`
	EmployeeName string      `json:"employee_name"`
	Year         int         `json:"year"`
	Violations   []Violation `json:"violations"`
}

// Summary is the combined compliance picture of a report set.
type Summary struct {
	TotalEmployees          int                  `json:"total_employees"`
	EmployeesWithViolations int                  `json:"employees_with_violations"`
	Violations              []Violation          `json:"violations"`
	ByKind                  map[Kind][]Violation `json:"by_kind"`
	Employees               []EmployeeViolations `json:"employees"`
}
