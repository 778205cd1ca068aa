package jobs

import (
	"fmt"
	"log/slog"

	"fulfilment/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	ledgerReportJob *LedgerReportJob
}

// NewJobManager creates a job manager with all required jobs.
func NewJobManager(
	dailyReportHandler queries.DailyReportQueryHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		ledgerReportJob: NewLedgerReportJob(dailyReportHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.ledgerReportJob.Start(); err != nil {
		return fmt.Errorf("failed to start ledger report job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.ledgerReportJob.Stop()
}
