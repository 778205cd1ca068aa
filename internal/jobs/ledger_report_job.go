// Package jobs provides scheduled background tasks. Jobs are built on
// github.com/robfig/cron/v3 and coordinated through JobManager.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfilment/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// ledgerReportSchedule runs shortly after midnight UTC so the previous day
// is complete when the report is computed.
const ledgerReportSchedule = "10 0 * * *"

// LedgerReportJob computes the previous day's money reconciliation every
// morning and writes it to the log. The report itself stays queryable over
// HTTP for any day; the job exists so a day's numbers are produced even when
// nobody asks.
type LedgerReportJob struct {
	handler queries.DailyReportQueryHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewLedgerReportJob creates the daily reconciliation job.
func NewLedgerReportJob(handler queries.DailyReportQueryHandler, logger *slog.Logger) *LedgerReportJob {
	return &LedgerReportJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "ledger_report_job"),
	}
}

// Start schedules the job to run daily.
func (j *LedgerReportJob) Start() error {
	_, err := j.cron.AddFunc(ledgerReportSchedule, j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Ledger report job started (running daily)")
	return nil
}

// Stop stops the job.
func (j *LedgerReportJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Ledger report job stopped")
}

func (j *LedgerReportJob) run() {
	ctx := context.Background()

	query, err := queries.NewDailyReportQuery(time.Now().UTC().AddDate(0, 0, -1))
	if err != nil {
		j.logger.ErrorContext(ctx, "Ledger report job failed to build query", "error", err)
		return
	}

	report, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Ledger report job failed", "error", err)
		return
	}

	j.logger.InfoContext(ctx, "Daily ledger report",
		"day", report.Day.Format("2006-01-02"),
		"revenueCents", report.RevenueCents,
		"refundCents", report.RefundCents,
		"payoutCents", report.PayoutCents,
		"marginCents", report.MarginCents,
		"orderCount", report.OrderCount,
		"refundCount", report.RefundCount,
		"payoutCount", report.PayoutCount,
		"skippedRefundCount", report.SkippedRefundCount,
	)
}
