// Package http exposes the order lifecycle over a JSON API. Handlers
// translate request bodies into commands and queries; all business rules
// stay behind the application layer.
package http

import (
	"net/http"
	"time"

	"fulfilment/internal/core/application/usecases/commands"
	"fulfilment/internal/core/application/usecases/queries"
	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/core/domain/model/payment"
	"fulfilment/internal/core/domain/model/payout"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler          commands.CreateOrderCommandHandler
	createManualOrderHandler    commands.CreateManualOrderCommandHandler
	changeStatusHandler         commands.ChangeStatusCommandHandler
	assignDriverHandler         commands.AssignDriverCommandHandler
	requestQuoteHandler         commands.RequestQuoteCommandHandler
	acceptQuoteHandler          commands.AcceptQuoteCommandHandler
	postOrderMessageHandler     commands.PostOrderMessageCommandHandler
	recordSupplierStatusHandler commands.RecordSupplierStatusCommandHandler
	recordPaymentHandler        commands.RecordPaymentCommandHandler
	issueRefundHandler          commands.IssueRefundCommandHandler
	requestPayoutHandler        commands.RequestPayoutCommandHandler
	updatePayoutStatusHandler   commands.UpdatePayoutStatusCommandHandler

	orderTimelineHandler queries.OrderTimelineQueryHandler
	dailyReportHandler   queries.DailyReportQueryHandler
}

// NewServer creates an HTTP server over the given command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	createManualOrderHandler commands.CreateManualOrderCommandHandler,
	changeStatusHandler commands.ChangeStatusCommandHandler,
	assignDriverHandler commands.AssignDriverCommandHandler,
	requestQuoteHandler commands.RequestQuoteCommandHandler,
	acceptQuoteHandler commands.AcceptQuoteCommandHandler,
	postOrderMessageHandler commands.PostOrderMessageCommandHandler,
	recordSupplierStatusHandler commands.RecordSupplierStatusCommandHandler,
	recordPaymentHandler commands.RecordPaymentCommandHandler,
	issueRefundHandler commands.IssueRefundCommandHandler,
	requestPayoutHandler commands.RequestPayoutCommandHandler,
	updatePayoutStatusHandler commands.UpdatePayoutStatusCommandHandler,
	orderTimelineHandler queries.OrderTimelineQueryHandler,
	dailyReportHandler queries.DailyReportQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:          createOrderHandler,
		createManualOrderHandler:    createManualOrderHandler,
		changeStatusHandler:         changeStatusHandler,
		assignDriverHandler:         assignDriverHandler,
		requestQuoteHandler:         requestQuoteHandler,
		acceptQuoteHandler:          acceptQuoteHandler,
		postOrderMessageHandler:     postOrderMessageHandler,
		recordSupplierStatusHandler: recordSupplierStatusHandler,
		recordPaymentHandler:        recordPaymentHandler,
		issueRefundHandler:          issueRefundHandler,
		requestPayoutHandler:        requestPayoutHandler,
		updatePayoutStatusHandler:   updatePayoutStatusHandler,
		orderTimelineHandler:        orderTimelineHandler,
		dailyReportHandler:          dailyReportHandler,
	}
}

// RegisterRoutes attaches every endpoint to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/manual", s.CreateManualOrder)
	api.POST("/orders/:id/status", s.ChangeStatus)
	api.POST("/orders/:id/driver", s.AssignDriver)
	api.POST("/orders/:id/quote-requests", s.RequestQuote)
	api.POST("/orders/:id/quote-acceptances", s.AcceptQuote)
	api.POST("/orders/:id/messages", s.PostMessage)
	api.POST("/orders/:id/supplier-status", s.RecordSupplierStatus)
	api.POST("/orders/:id/refunds", s.IssueRefund)
	api.GET("/orders/:id/timeline", s.GetOrderTimeline)

	api.POST("/payments", s.RecordPayment)
	api.POST("/orders/:id/payouts", s.RequestPayout)
	api.POST("/payouts/:id/status", s.UpdatePayoutStatus)

	api.GET("/reports/daily", s.GetDailyReport)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadBody(ctx)
	}

	contact, err := bodyContact(req.Contact)
	if err != nil {
		return respondError(ctx, err)
	}
	address, err := bodyAddress(req.Address)
	if err != nil {
		return respondError(ctx, err)
	}
	price, err := bodyMoney(req.PriceCents, req.Currency)
	if err != nil {
		return respondError(ctx, err)
	}
	deliveryFee, err := bodyMoney(req.DeliveryFeeCents, req.Currency)
	if err != nil {
		return respondError(ctx, err)
	}

	var customerID *kernel.UUID
	if req.CustomerID != "" {
		id, idErr := kernel.UUIDFromString(req.CustomerID)
		if idErr != nil {
			return respondError(ctx, idErr)
		}
		customerID = &id
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, req.Code, contact, address, price, deliveryFee, customerID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: orderID.String()})
}

// CreateManualOrder handles POST /api/v1/orders/manual. Operations staff use
// it to capture walk-in and phone orders already paid out-of-band.
func (s *Server) CreateManualOrder(ctx echo.Context) error {
	var req CreateManualOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadBody(ctx)
	}

	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return respondError(ctx, err)
	}
	contact, err := bodyContact(req.Contact)
	if err != nil {
		return respondError(ctx, err)
	}
	address, err := bodyAddress(req.Address)
	if err != nil {
		return respondError(ctx, err)
	}
	price, err := bodyMoney(req.PriceCents, req.Currency)
	if err != nil {
		return respondError(ctx, err)
	}
	deliveryFee, err := bodyMoney(req.DeliveryFeeCents, req.Currency)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateManualOrderCommand(
		orderID, actorID, req.Code, contact, address, price, deliveryFee,
		kernel.NewUUID(), req.Provider, req.ProviderRef)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.createManualOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: orderID.String()})
}

// ChangeStatus handles POST /api/v1/orders/:id/status.
func (s *Server) ChangeStatus(ctx echo.Context) error {
	var req ChangeStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadBody(ctx)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}
	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return respondError(ctx, err)
	}
	target, err := order.StatusFromString(req.Target)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewChangeStatusCommand(orderID, actorID, target)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.changeStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignDriver handles POST /api/v1/orders/:id/driver.
func (s *Server) AssignDriver(ctx echo.Context) error {
	var req AssignDriverRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadBody(ctx)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}
	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return respondError(ctx, err)
	}
	driverID, err := kernel.UUIDFromString(req.DriverID)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewAssignDriverCommand(orderID, actorID, driverID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.assignDriverHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RequestQuote handles POST /api/v1/orders/:id/quote-requests.
func (s *Server) RequestQuote(ctx echo.Context) error {
	var req RequestQuoteRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadBody(ctx)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}
	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return respondError(ctx, err)
	}
	supplierID, err := kernel.UUIDFromString(req.SupplierID)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewRequestQuoteCommand(orderID, actorID, supplierID, req.Note)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.requestQuoteHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusAccepted)
}

// AcceptQuote handles POST /api/v1/orders/:id/quote-acceptances.
func (s *Server) AcceptQuote(ctx echo.Context) error {
	var req AcceptQuoteRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadBody(ctx)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}
	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return respondError(ctx, err)
	}
	supplierID, err := kernel.UUIDFromString(req.SupplierID)
	if err != nil {
		return respondError(ctx, err)
	}
	price, err := bodyMoney(req.PriceCents, req.Currency)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewAcceptQuoteCommand(orderID, actorID, supplierID, price)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.acceptQuoteHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// PostMessage handles POST /api/v1/orders/:id/messages.
func (s *Server) PostMessage(ctx echo.Context) error {
	var req PostMessageRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadBody(ctx)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}
	authorID, err := kernel.UUIDFromString(req.AuthorID)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewPostOrderMessageCommand(orderID, authorID, req.Text)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.postOrderMessageHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// RecordSupplierStatus handles POST /api/v1/orders/:id/supplier-status.
func (s *Server) RecordSupplierStatus(ctx echo.Context) error {
	var req SupplierStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadBody(ctx)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}
	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return respondError(ctx, err)
	}

	var location *kernel.GeoPoint
	if req.Location != nil {
		point, pointErr := kernel.NewGeoPoint(
			req.Location.Latitude, req.Location.Longitude, req.Location.AccuracyM,
			time.Now().UTC())
		if pointErr != nil {
			return respondError(ctx, pointErr)
		}
		location = &point
	}

	cmd, err := commands.NewRecordSupplierStatusCommand(orderID, actorID, req.Note, location)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.recordSupplierStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// IssueRefund handles POST /api/v1/orders/:id/refunds.
func (s *Server) IssueRefund(ctx echo.Context) error {
	var req IssueRefundRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadBody(ctx)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}
	paymentID, err := kernel.UUIDFromString(req.PaymentID)
	if err != nil {
		return respondError(ctx, err)
	}
	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return respondError(ctx, err)
	}
	amount, err := bodyMoney(req.AmountCents, req.Currency)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewIssueRefundCommand(orderID, paymentID, actorID, amount, req.Reason)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.issueRefundHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RecordPayment handles POST /api/v1/payments. Payment gateways call it to
// report settlement results; the same reference may arrive more than once.
func (s *Server) RecordPayment(ctx echo.Context) error {
	var req RecordPaymentRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadBody(ctx)
	}

	paymentID, err := kernel.UUIDFromString(req.PaymentID)
	if err != nil {
		return respondError(ctx, err)
	}
	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return respondError(ctx, err)
	}
	amount, err := bodyMoney(req.AmountCents, req.Currency)
	if err != nil {
		return respondError(ctx, err)
	}
	status, err := payment.StatusFromString(req.Status)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewRecordPaymentCommand(
		paymentID, orderID, amount, status, req.Provider, req.ProviderRef)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.recordPaymentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RequestPayout handles POST /api/v1/orders/:id/payouts.
func (s *Server) RequestPayout(ctx echo.Context) error {
	var req RequestPayoutRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadBody(ctx)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}
	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return respondError(ctx, err)
	}
	supplierID, err := kernel.UUIDFromString(req.SupplierID)
	if err != nil {
		return respondError(ctx, err)
	}
	amount, err := bodyMoney(req.AmountCents, req.Currency)
	if err != nil {
		return respondError(ctx, err)
	}

	payoutID := kernel.NewUUID()
	cmd, err := commands.NewRequestPayoutCommand(payoutID, orderID, actorID, supplierID, amount)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.requestPayoutHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: payoutID.String()})
}

// UpdatePayoutStatus handles POST /api/v1/payouts/:id/status.
func (s *Server) UpdatePayoutStatus(ctx echo.Context) error {
	var req UpdatePayoutStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadBody(ctx)
	}

	payoutID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}
	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return respondError(ctx, err)
	}
	target, err := payout.StatusFromString(req.Target)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewUpdatePayoutStatusCommand(payoutID, actorID, target)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.updatePayoutStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrderTimeline handles GET /api/v1/orders/:id/timeline.
func (s *Server) GetOrderTimeline(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewOrderTimelineQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	timeline, err := s.orderTimelineHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	type timelineEntry struct {
		ID        string         `json:"id"`
		ActorID   string         `json:"actorId"`
		Action    string         `json:"action"`
		Payload   map[string]any `json:"payload"`
		CreatedAt time.Time      `json:"createdAt"`
	}

	response := make([]timelineEntry, len(timeline))
	for i, entry := range timeline {
		response[i] = timelineEntry{
			ID:        entry.ID.String(),
			ActorID:   entry.ActorID.String(),
			Action:    entry.Action,
			Payload:   entry.Payload,
			CreatedAt: entry.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetDailyReport handles GET /api/v1/reports/daily?day=2006-01-02.
// An absent day defaults to yesterday, the last complete day.
func (s *Server) GetDailyReport(ctx echo.Context) error {
	day := time.Now().UTC().AddDate(0, 0, -1)
	if raw := ctx.QueryParam("day"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "day must be formatted as 2006-01-02",
			})
		}
		day = parsed
	}

	query, err := queries.NewDailyReportQuery(day)
	if err != nil {
		return respondError(ctx, err)
	}

	report, err := s.dailyReportHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"day":                 report.Day.Format("2006-01-02"),
		"revenueCents":        report.RevenueCents,
		"refundCents":         report.RefundCents,
		"payoutCents":         report.PayoutCents,
		"marginCents":         report.MarginCents,
		"orderCount":         report.OrderCount,
		"refundCount":        report.RefundCount,
		"payoutCount":        report.PayoutCount,
		"skippedRefundCount": report.SkippedRefundCount,
	})
}

func respondBadBody(ctx echo.Context) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: "Invalid request body",
	})
}
