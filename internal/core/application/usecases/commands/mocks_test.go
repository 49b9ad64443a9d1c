package commands_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) (*delivery.Delivery, error) {
	args := m.Called(ctx, aggregate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockDeliveryRepository) UpdateAll(ctx context.Context, aggregates []*delivery.Delivery) error {
	args := m.Called(ctx, aggregates)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Get(ctx context.Context, id kernel.ID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) GetAllOpen(ctx context.Context) ([]*delivery.Delivery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Delivery), args.Error(1)
}

type MockDeliveryUoW struct{ mock.Mock }

func (m *MockDeliveryUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeliveryUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeliveryUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeliveryUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

type MockDeliveryUoWFactory struct{ mock.Mock }

func (m *MockDeliveryUoWFactory) Create() commands.DeliveryUoW {
	args := m.Called()
	return args.Get(0).(commands.DeliveryUoW)
}

type MockUserProvider struct{ mock.Mock }

func (m *MockUserProvider) Get(ctx context.Context, id kernel.ID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

type MockNotificationPublisher struct{ mock.Mock }

func (m *MockNotificationPublisher) Publish(groupKey string, event string, payload any) {
	m.Called(groupKey, event, payload)
}

func mustID(t *testing.T, v int64) kernel.ID {
	t.Helper()
	id, err := kernel.NewID(v)
	require.NoError(t, err)
	return id
}

func mustUser(t *testing.T, id int64, role user.Role) *user.User {
	t.Helper()
	u, err := user.NewUser(mustID(t, id), "test user", role)
	require.NoError(t, err)
	return u
}

func mustOpenDelivery(t *testing.T, id int64, driver *user.User, customer *user.User) *delivery.Delivery {
	t.Helper()
	d, err := delivery.RestoreDelivery(
		mustID(t, id), customer, driver, "Main St 1", "", time.Now().UTC(), nil, "", 0, 0)
	require.NoError(t, err)
	return d
}
