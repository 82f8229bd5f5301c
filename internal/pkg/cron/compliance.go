package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/clockodo-mcp-go/internal/domain/compliance"
)

// SnapshotRecorder receives the outcome of each compliance snapshot.
type SnapshotRecorder interface {
	RecordComplianceSnapshot(year int, summary compliance.Summary, at time.Time)
}

// ComplianceJobs periodically summarizes the current year's compliance.
type ComplianceJobs struct {
	hr         compliance.HRService
	recorder   SnapshotRecorder
	thresholds compliance.Thresholds
	now        func() time.Time
}

func NewComplianceJobs(hr compliance.HRService, recorder SnapshotRecorder, thresholds compliance.Thresholds) *ComplianceJobs {
	return &ComplianceJobs{
		hr:         hr,
		recorder:   recorder,
		thresholds: thresholds,
		now:        time.Now,
	}
}

// Snapshot fetches the summary of the current year and hands it to the recorder.
func (j *ComplianceJobs) Snapshot(ctx context.Context) error {
	now := j.now()
	report, err := j.hr.GetHRSummary(ctx, compliance.SummaryRequest{
		Year:       now.Year(),
		Thresholds: j.thresholds,
	})
	if err != nil {
		return fmt.Errorf("compliance snapshot: %w", err)
	}
	j.recorder.RecordComplianceSnapshot(report.Year, report.Summary, now)
	return nil
}

// Register adds the snapshot job to s.
func (j *ComplianceJobs) Register(s *Scheduler, interval time.Duration) {
	s.AddJob("compliance_snapshot", interval, j.Snapshot)
}
