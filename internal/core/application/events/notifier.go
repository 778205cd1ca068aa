package events

import (
	"context"
	"fmt"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/notification"
	"fulfilment/internal/core/domain/model/user"
	"fulfilment/internal/core/ports"
)

// Draft is one intended notification before dedupe. Recipient may be nil; nil
// recipients are dropped so handlers can address parties without checking
// presence first.
type Draft struct {
	Recipient *user.User
	Type      string
	Title     string
	Body      string
	Data      map[string]any
}

// Notifier turns drafts into persisted notifications. Duplicates within one
// batch (same recipient, type, title, body) collapse to a single row, so a
// user who is both the order's caretaker and an admin is notified once.
type Notifier struct {
	notifications ports.NotificationRepository
}

// NewNotifier creates a notifier over the given repository.
func NewNotifier(notifications ports.NotificationRepository) Notifier {
	return Notifier{notifications: notifications}
}

// Send deduplicates and bulk-inserts the batch. Returns the number of rows
// written.
func (n Notifier) Send(ctx context.Context, drafts []Draft) (int, error) {
	seen := make(map[string]struct{}, len(drafts))
	batch := make([]*notification.Notification, 0, len(drafts))

	for _, draft := range drafts {
		if draft.Recipient == nil {
			continue
		}

		key := fmt.Sprintf("%s|%s|%s|%s",
			draft.Recipient.ID(), draft.Type, draft.Title, draft.Body)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		row, err := notification.NewNotification(
			kernel.NewUUID(), draft.Recipient.ID(),
			draft.Type, draft.Title, draft.Body, draft.Data,
		)
		if err != nil {
			return 0, err
		}
		batch = append(batch, row)
	}

	if len(batch) == 0 {
		return 0, nil
	}
	if err := n.notifications.AddBatch(ctx, batch); err != nil {
		return 0, err
	}
	return len(batch), nil
}

// draftsFor fans one message out to a list of recipients.
func draftsFor(recipients []*user.User, ntype, title, body string, data map[string]any) []Draft {
	drafts := make([]Draft, 0, len(recipients))
	for _, recipient := range recipients {
		drafts = append(drafts, Draft{
			Recipient: recipient,
			Type:      ntype,
			Title:     title,
			Body:      body,
			Data:      data,
		})
	}
	return drafts
}
