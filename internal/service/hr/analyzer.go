package hr

import (
	"math"

	"github.com/cmlabs-hris/clockodo-mcp-go/internal/domain/compliance"
)

// CheckOvertime returns one violation per report whose overtime balance
// exceeds maxOvertimeHours, in input order.
func CheckOvertime(reports []compliance.UserReport, maxOvertimeHours float64) []compliance.Violation {
	violations := []compliance.Violation{}
	for _, r := range reports {
		if r.OvertimeBalance > maxOvertimeHours {
			violations = append(violations, newViolation(r, compliance.KindOvertimeExcess, r.OvertimeBalance, maxOvertimeHours))
		}
	}
	return violations
}

// CheckVacation runs the insufficient and surplus checks independently, so a
// report may yield zero, one or two violations.
func CheckVacation(reports []compliance.UserReport, minVacationDays, maxVacationRemaining float64) []compliance.Violation {
	violations := []compliance.Violation{}
	for _, r := range reports {
		if r.VacationTaken < minVacationDays {
			violations = append(violations, newViolation(r, compliance.KindVacationInsufficient, r.VacationTaken, minVacationDays))
		}
		if r.VacationRemaining > maxVacationRemaining {
			violations = append(violations, newViolation(r, compliance.KindVacationSurplus, r.VacationRemaining, maxVacationRemaining))
		}
	}
	return violations
}

// Summarize is CheckOvertime followed by CheckVacation, with counts and
// groupings derived from that list.
func Summarize(reports []compliance.UserReport, t compliance.Thresholds) compliance.Summary {
	violations := append(
		CheckOvertime(reports, t.MaxOvertimeHours),
		CheckVacation(reports, t.MinVacationDays, t.MaxVacationRemaining)...,
	)

	byKind := map[compliance.Kind][]compliance.Violation{
		compliance.KindOvertimeExcess:       {},
		compliance.KindVacationInsufficient: {},
		compliance.KindVacationSurplus:      {},
	}
	for _, v := range violations {
		byKind[v.Kind] = append(byKind[v.Kind], v)
	}

	return compliance.Summary{
		TotalEmployees:          len(reports),
		EmployeesWithViolations: countEmployees(violations),
		Violations:              violations,
		ByKind:                  byKind,
		Employees:               groupByEmployee(reports, violations),
	}
}

func newViolation(r compliance.UserReport, kind compliance.Kind, observed, threshold float64) compliance.Violation {
	return compliance.Violation{
		EmployeeID:   r.UserID,
		EmployeeName: r.UserName,
		Kind:         kind,
		Observed:     observed,
		Threshold:    threshold,
		Deviation:    math.Abs(observed - threshold),
		Year:         r.Year,
	}
}

type employeeYear struct {
	id   int
	year int
}

func countEmployees(violations []compliance.Violation) int {
	seen := map[int]struct{}{}
	for _, v := range violations {
		seen[v.EmployeeID] = struct{}{}
	}
	return len(seen)
}

// groupByEmployee keeps report order; employees without violations are left out.
func groupByEmployee(reports []compliance.UserReport, violations []compliance.Violation) []compliance.EmployeeViolations {
	grouped := map[employeeYear][]compliance.Violation{}
	for _, v := range violations {
		k := employeeYear{v.EmployeeID, v.Year}
		grouped[k] = append(grouped[k], v)
	}

	employees := []compliance.EmployeeViolations{}
	for _, r := range reports {
		vs, ok := grouped[employeeYear{r.UserID, r.Year}]
		if !ok {
			continue
		}
		employees = append(employees, compliance.EmployeeViolations{
			EmployeeID:   r.UserID,
			EmployeeName: r.UserName,
			Year:         r.Year,
			Violations:   vs,
		})
	}
	return employees
}
