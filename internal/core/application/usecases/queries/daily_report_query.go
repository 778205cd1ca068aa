// Package queries contains read operations in the CQRS architecture.
// Query handlers read the database directly and bypass the aggregate layer:
// they never mutate state, so the domain invariants have nothing to protect.
package queries

import (
	"errors"
	"time"

	"fulfilment/internal/pkg/guard"
)

var ErrDailyReportQueryIsNotConstructed = errors.New(
	"DailyReportQuery must be created via NewDailyReportQuery constructor",
)

// DailyReportQuery reconciles one calendar day (UTC) of money movement:
// revenue in, payouts out, refunds back, and the resulting margin.
//
// Example:
//
//	query, _ := NewDailyReportQuery(time.Now().UTC().AddDate(0, 0, -1))
//	handler := NewDailyReportQueryHandler(db)
//	report, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("margin for %s: %d cents\n", report.Day.Format("2006-01-02"), report.MarginCents)
type DailyReportQuery struct {
	day time.Time

	guard guard.ConstructorGuard
}

// NewDailyReportQuery creates a query for the calendar day containing the
// given instant. The time-of-day part is dropped.
func NewDailyReportQuery(day time.Time) (DailyReportQuery, error) {
	q := DailyReportQuery{
		guard: guard.NewConstructorGuard(),
	}
	q.day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q DailyReportQuery) Validate() error {
	return q.guard.Validate(ErrDailyReportQueryIsNotConstructed)
}

// Day returns the UTC midnight of the reported day.
func (q DailyReportQuery) Day() time.Time { return q.day }

// DailyReportQueryResponse is one day's reconciled totals, all in minor units
// of the platform currency.
//
// The day's population is the orders created that day. Revenue is their booked
// value (price plus delivery fee); payouts sum every non-failed payout on
// those orders, pending included; refunds are read from those orders' audit
// trails, and entries with a missing or malformed amount are skipped rather
// than failing the whole report. Margin is revenue minus refunds minus payouts.
type DailyReportQueryResponse struct {
	Day time.Time

	RevenueCents int64
	RefundCents  int64
	PayoutCents  int64
	MarginCents  int64

	OrderCount         int
	RefundCount        int
	PayoutCount        int
	SkippedRefundCount int
}
