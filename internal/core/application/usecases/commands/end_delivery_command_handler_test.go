package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewEndDeliveryCommand(t *testing.T) {
	t.Run("should fail with empty image", func(t *testing.T) {
		_, err := commands.NewEndDeliveryCommand(mustID(t, 1), mustID(t, 5), "")

		require.Error(t, err)
		assert.ErrorIs(t, err, commands.ErrEndImageIsRequired)
	})
}

func TestEndDeliveryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	customer := mustUser(t, 2, user.RoleCustomer)
	driver := mustUser(t, 1, user.RoleDriver)
	open := mustOpenDelivery(t, 5, driver, customer)

	cmd, _ := commands.NewEndDeliveryCommand(driver.ID(), open.ID(), "proof.jpg")

	repo := new(MockDeliveryRepository)
	uow := new(MockDeliveryUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, open.ID()).Return(open, nil).Once(),
		repo.On("Update", mock.Anything, mock.MatchedBy(func(d *delivery.Delivery) bool {
			return d.IsEnded() && d.EndImage() == "proof.jpg"
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewEndDeliveryCommandHandler(factory)
	err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestEndDeliveryCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewEndDeliveryCommand(mustID(t, 1), mustID(t, 5), "proof.jpg")

	repo := new(MockDeliveryRepository)
	uow := new(MockDeliveryUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, mustID(t, 5)).
			Return(nil, errs.NewObjectNotFoundError("delivery", "5")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewEndDeliveryCommandHandler(factory)
	err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestEndDeliveryCommandHandler_Handle_ForbiddenForAnotherDriver(t *testing.T) {
	ctx := t.Context()
	customer := mustUser(t, 2, user.RoleCustomer)
	assignedDriver := mustUser(t, 3, user.RoleDriver)
	open := mustOpenDelivery(t, 5, assignedDriver, customer)

	actingDriverID := mustID(t, 1)
	cmd, _ := commands.NewEndDeliveryCommand(actingDriverID, open.ID(), "proof.jpg")

	repo := new(MockDeliveryRepository)
	repo.On("Get", mock.Anything, open.ID()).Return(open, nil).Once()

	uow := new(MockDeliveryUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DeliveryRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewEndDeliveryCommandHandler(factory)
	err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrForbidden)
	assert.False(t, open.IsEnded())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestEndDeliveryCommandHandler_Handle_ConflictWhenAlreadyEnded(t *testing.T) {
	ctx := t.Context()
	customer := mustUser(t, 2, user.RoleCustomer)
	driver := mustUser(t, 1, user.RoleDriver)
	firstEnd := time.Now().UTC().Add(-time.Hour)
	ended, err := delivery.RestoreDelivery(
		mustID(t, 5), customer, driver, "Main St 1", "", time.Now().UTC().Add(-2*time.Hour),
		&firstEnd, "first.jpg", 0, 1)
	require.NoError(t, err)

	cmd, _ := commands.NewEndDeliveryCommand(driver.ID(), ended.ID(), "second.jpg")

	repo := new(MockDeliveryRepository)
	repo.On("Get", mock.Anything, ended.ID()).Return(ended, nil).Once()

	uow := new(MockDeliveryUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DeliveryRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewEndDeliveryCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrConflict)
	// The original completion is untouched.
	assert.Equal(t, firstEnd, *ended.EndedAt())
	assert.Equal(t, "first.jpg", ended.EndImage())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestEndDeliveryCommandHandler_Handle_ConflictOnStaleSave(t *testing.T) {
	ctx := t.Context()
	customer := mustUser(t, 2, user.RoleCustomer)
	driver := mustUser(t, 1, user.RoleDriver)
	open := mustOpenDelivery(t, 5, driver, customer)

	cmd, _ := commands.NewEndDeliveryCommand(driver.ID(), open.ID(), "proof.jpg")

	repo := new(MockDeliveryRepository)
	repo.On("Get", mock.Anything, open.ID()).Return(open, nil).Once()
	repo.On("Update", mock.Anything, mock.Anything).
		Return(errs.NewConflictError("delivery 5 was modified concurrently")).Once()

	uow := new(MockDeliveryUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DeliveryRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewEndDeliveryCommandHandler(factory)
	err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrConflict)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
