package queries

import (
	"context"
	"encoding/json"
	"time"

	"fulfilment/internal/core/domain/model/audit"
	"fulfilment/internal/core/domain/model/payout"

	"gorm.io/gorm"
)

// DailyReportQueryHandler reconciles one day of money movement straight from
// the database. The day is defined by order creation: revenue is the booked
// value of orders created in the window, and payouts and refunds are the ones
// attached to those orders no matter when the money itself moved. Refunds come
// from the audit trail because a refunded payment row only keeps its latest
// state while the trail keeps every refund with its amount.
type DailyReportQueryHandler struct {
	db *gorm.DB
}

// NewDailyReportQueryHandler creates a handler for daily reconciliation.
func NewDailyReportQueryHandler(db *gorm.DB) DailyReportQueryHandler {
	return DailyReportQueryHandler{db: db}
}

// Handle computes the report for the query's day. The day window is
// [midnight, next midnight) in UTC.
func (h DailyReportQueryHandler) Handle(
	ctx context.Context,
	query DailyReportQuery,
) (DailyReportQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return DailyReportQueryResponse{}, err
	}

	from := query.Day()
	to := from.Add(24 * time.Hour)

	response := DailyReportQueryResponse{Day: from}

	err := h.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(price_cents + delivery_fee_cents), 0),
			COUNT(*)
		FROM orders
		WHERE created_at >= ? AND created_at < ?
	`, from, to).
		Row().Scan(&response.RevenueCents, &response.OrderCount)
	if err != nil {
		return DailyReportQueryResponse{}, err
	}

	err = h.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(p.amount_cents), 0),
			COUNT(*)
		FROM payouts p
		JOIN orders o ON o.id = p.order_id
		WHERE p.status <> ?
		  AND o.created_at >= ? AND o.created_at < ?
	`, payout.StatusFailed, from, to).
		Row().Scan(&response.PayoutCents, &response.PayoutCount)
	if err != nil {
		return DailyReportQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT a.payload
		FROM audit_entries a
		JOIN orders o ON o.id = a.order_id
		WHERE a.action = ?
		  AND o.created_at >= ? AND o.created_at < ?
	`, string(audit.ActionRefund), from, to).Rows()
	if err != nil {
		return DailyReportQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var payload string
		if err = rows.Scan(&payload); err != nil {
			return DailyReportQueryResponse{}, err
		}

		amount, ok := refundAmountCents(payload)
		if !ok {
			response.SkippedRefundCount++
			continue
		}
		response.RefundCents += amount
		response.RefundCount++
	}
	if err = rows.Err(); err != nil {
		return DailyReportQueryResponse{}, err
	}

	response.MarginCents = response.RevenueCents - response.RefundCents - response.PayoutCents

	return response, nil
}

// refundAmountCents pulls the refunded amount out of a free-form audit
// payload. Entries without a usable amount are reported as skipped rather
// than failing the whole day.
func refundAmountCents(payload string) (int64, bool) {
	var fields map[string]any
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		return 0, false
	}

	raw, ok := fields["amount"]
	if !ok {
		return 0, false
	}

	switch v := raw.(type) {
	case float64:
		return int64(v), true
	case json.Number:
		cents, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return cents, true
	default:
		return 0, false
	}
}
