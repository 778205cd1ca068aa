package events_test

import (
	"context"
	"testing"

	"fulfilment/internal/core/application/events"
	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/notification"
	"fulfilment/internal/core/domain/model/user"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) AddBatch(ctx context.Context, ns []*notification.Notification) error {
	args := m.Called(ctx, ns)
	return args.Error(0)
}

func (m *MockNotificationRepository) Update(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) GetByUser(
	ctx context.Context, userID kernel.UUID,
) ([]*notification.Notification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notification.Notification), args.Error(1)
}

func newUser(t *testing.T, name string) *user.User {
	t.Helper()
	u, err := user.NewUser(kernel.NewUUID(), name, name+"@example.com", user.RoleAdmin, nil, nil)
	require.NoError(t, err)
	return u
}

func TestNotifier_Send_DeduplicatesWithinBatch(t *testing.T) {
	ctx := t.Context()
	alice := newUser(t, "alice")
	bob := newUser(t, "bob")

	repo := new(MockNotificationRepository)
	repo.On("AddBatch", ctx, mock.AnythingOfType("[]*notification.Notification")).
		Run(func(args mock.Arguments) {
			batch := args.Get(1).([]*notification.Notification)
			require.Len(t, batch, 2, "duplicate draft must collapse")
		}).Return(nil).Once()

	notifier := events.NewNotifier(repo)
	written, err := notifier.Send(ctx, []events.Draft{
		{Recipient: alice, Type: notification.TypeOrderStatus, Title: "t", Body: "b"},
		{Recipient: alice, Type: notification.TypeOrderStatus, Title: "t", Body: "b"}, // dup
		{Recipient: bob, Type: notification.TypeOrderStatus, Title: "t", Body: "b"},
	})

	require.NoError(t, err)
	require.Equal(t, 2, written)
	repo.AssertExpectations(t)
}

func TestNotifier_Send_DropsNilRecipients(t *testing.T) {
	ctx := t.Context()
	alice := newUser(t, "alice")

	repo := new(MockNotificationRepository)
	repo.On("AddBatch", ctx, mock.Anything).Return(nil).Once()

	notifier := events.NewNotifier(repo)
	written, err := notifier.Send(ctx, []events.Draft{
		{Recipient: nil, Type: notification.TypeOrderStatus, Title: "t", Body: "b"},
		{Recipient: alice, Type: notification.TypeOrderStatus, Title: "t", Body: "b"},
	})

	require.NoError(t, err)
	require.Equal(t, 1, written)
}

func TestNotifier_Send_EmptyBatchSkipsWrite(t *testing.T) {
	ctx := t.Context()

	repo := new(MockNotificationRepository)
	notifier := events.NewNotifier(repo)

	written, err := notifier.Send(ctx, []events.Draft{
		{Recipient: nil, Type: notification.TypeOrderStatus, Title: "t", Body: "b"},
	})

	require.NoError(t, err)
	require.Zero(t, written)
	repo.AssertNotCalled(t, "AddBatch", mock.Anything, mock.Anything)
}

func TestNotifier_Send_DifferentBodiesAreKept(t *testing.T) {
	ctx := t.Context()
	alice := newUser(t, "alice")

	repo := new(MockNotificationRepository)
	repo.On("AddBatch", ctx, mock.Anything).
		Run(func(args mock.Arguments) {
			batch := args.Get(1).([]*notification.Notification)
			require.Len(t, batch, 2)
		}).Return(nil).Once()

	notifier := events.NewNotifier(repo)
	written, err := notifier.Send(ctx, []events.Draft{
		{Recipient: alice, Type: notification.TypeOrderStatus, Title: "t", Body: "first"},
		{Recipient: alice, Type: notification.TypeOrderStatus, Title: "t", Body: "second"},
	})

	require.NoError(t, err)
	require.Equal(t, 2, written)
}
