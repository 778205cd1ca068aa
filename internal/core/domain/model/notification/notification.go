// Package notification contains the in-app notification records produced by
// domain event fan-out. Creation goes exclusively through the fan-out component;
// delivery transports (email/SMS/WhatsApp) are outside this core.
package notification

import (
	"errors"
	"strings"
	"time"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/pkg/errs"
)

// Well-known notification type tags. The dotted namespace groups related
// notifications for client-side filtering.
const (
	TypeOrderNew       = "order:new"
	TypeOrderStatus    = "order:status"
	TypeOrderDriver    = "order:driver"
	TypeOrderMessage   = "order:message"
	TypePaymentStatus  = "payment:status"
	TypePayoutStatus   = "payout:status"
	TypeQuoteRequested = "quote:requested"
)

// ErrNotificationIsNotConstructed is returned when a Notification was not
// created via a factory.
var ErrNotificationIsNotConstructed = errors.New(
	"Notification must be created via NewNotification or RestoreNotification")

// Notification is one persisted in-app message for one user.
type Notification struct {
	id     kernel.UUID
	userID kernel.UUID
	ntype  string
	title  string
	body   string
	data   map[string]any

	readAt    *time.Time
	createdAt time.Time

	isConstructed bool
}

// NewNotification creates an unread notification.
func NewNotification(
	id kernel.UUID,
	userID kernel.UUID,
	ntype string,
	title string,
	body string,
	data map[string]any,
) (*Notification, error) {
	return RestoreNotification(id, userID, ntype, title, body, data, nil, time.Now().UTC())
}

// RestoreNotification reconstructs a notification from persisted state.
func RestoreNotification(
	id kernel.UUID,
	userID kernel.UUID,
	ntype string,
	title string,
	body string,
	data map[string]any,
	readAt *time.Time,
	createdAt time.Time,
) (*Notification, error) {
	if err := errors.Join(id.Validate(), userID.Validate()); err != nil {
		return nil, err
	}
	if strings.TrimSpace(ntype) == "" {
		return nil, errs.NewValueIsRequiredError("notification type")
	}
	if strings.TrimSpace(title) == "" {
		return nil, errs.NewValueIsRequiredError("notification title")
	}

	if data == nil {
		data = map[string]any{}
	}

	return &Notification{
		id:            id,
		userID:        userID,
		ntype:         ntype,
		title:         title,
		body:          body,
		data:          data,
		readAt:        readAt,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Notification was created through a factory.
func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

// ID returns the notification's unique identifier.
func (n *Notification) ID() kernel.UUID { return n.id }

// UserID returns the recipient.
func (n *Notification) UserID() kernel.UUID { return n.userID }

// Type returns the dotted namespace tag, e.g. "order:status".
func (n *Notification) Type() string { return n.ntype }

// Title returns the short headline.
func (n *Notification) Title() string { return n.title }

// Body returns the message text.
func (n *Notification) Body() string { return n.body }

// Data returns the structured context attached to the notification.
// Callers must not mutate the returned map.
func (n *Notification) Data() map[string]any { return n.data }

// ReadAt returns when the user read the notification, nil if unread.
func (n *Notification) ReadAt() *time.Time { return n.readAt }

// CreatedAt returns the creation timestamp.
func (n *Notification) CreatedAt() time.Time { return n.createdAt }

// MarkRead stamps the notification as read. Re-reading keeps the first timestamp.
func (n *Notification) MarkRead() {
	if n.readAt == nil {
		now := time.Now().UTC()
		n.readAt = &now
	}
}
