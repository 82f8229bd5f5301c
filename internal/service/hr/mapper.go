package hr

import (
	"fmt"

	"github.com/cmlabs-hris/clockodo-mcp-go/internal/domain/clockodo"
	"github.com/cmlabs-hris/clockodo-mcp-go/internal/domain/compliance"
)

const secondsPerHour = 3600

// ToUserReports converts upstream userreports into analyzer input. Missing
// numeric fields count as 0. A record without a user id, or a second record
// for the same user and year, fails the whole batch.
func ToUserReports(records []clockodo.Record, fallbackYear int) ([]compliance.UserReport, error) {
	reports := make([]compliance.UserReport, 0, len(records))
	seen := make(map[employeeYear]struct{}, len(records))

	for i, rec := range records {
		userID, ok := rec.Int("users_id")
		if !ok {
			return nil, &clockodo.UpstreamFormatError{
				Family: clockodo.FamilyUserReport,
				Reason: fmt.Sprintf("element %d has no users_id", i),
			}
		}
		year, ok := rec.Int("year")
		if !ok {
			year = fallbackYear
		}

		k := employeeYear{userID, year}
		if _, dup := seen[k]; dup {
			return nil, &clockodo.UpstreamFormatError{
				Family: clockodo.FamilyUserReport,
				Reason: fmt.Sprintf("duplicate report for user %d in %d", userID, year),
			}
		}
		seen[k] = struct{}{}

		taken := rec.Map("sum_absence").Float("regular_holidays")
		reports = append(reports, compliance.UserReport{
			UserID:            userID,
			UserName:          rec.String("users_name"),
			Year:              year,
			WorkedHours:       rec.Float("sum_hours") / secondsPerHour,
			TargetHours:       rec.Float("sum_target") / secondsPerHour,
			OvertimeBalance:   (rec.Float("diff") + rec.Float("overtime_carryover")) / secondsPerHour,
			VacationTaken:     taken,
			VacationRemaining: rec.Float("holidays_quota") + rec.Float("holidays_carry") - taken,
		})
	}
	return reports, nil
}
