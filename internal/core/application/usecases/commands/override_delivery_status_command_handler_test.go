package commands_test

import (
	"testing"
	"time"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOverrideDeliveryStatusCommandHandler_Handle_ForceDelivered(t *testing.T) {
	ctx := t.Context()
	record := scheduledDelivery(t, 21, "4821")
	cmd, err := commands.NewOverrideDeliveryStatusCommand(21, delivery.Delivered)
	require.NoError(t, err)

	repo := new(MockDeliveryRepository)
	uow := new(MockDeliveryUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, delivery.ID(21)).Return(record, nil).Once(),
		repo.On("UpdateStatus", mock.Anything, record, delivery.Scheduled).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewOverrideDeliveryStatusCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)

	// Override forces Delivered without a proof artifact.
	assert.Equal(t, delivery.Delivered, record.Status())
	assert.Nil(t, record.ProofPath())

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestOverrideDeliveryStatusCommandHandler_Handle_Cancel(t *testing.T) {
	ctx := t.Context()
	record := scheduledDelivery(t, 22, "4821")
	cmd, err := commands.NewOverrideDeliveryStatusCommand(22, delivery.Cancelled)
	require.NoError(t, err)

	repo := new(MockDeliveryRepository)
	uow := new(MockDeliveryUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, delivery.ID(22)).Return(record, nil).Once(),
		repo.On("UpdateStatus", mock.Anything, record, delivery.Scheduled).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewOverrideDeliveryStatusCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, delivery.Cancelled, record.Status())
}

func TestOverrideDeliveryStatusCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewOverrideDeliveryStatusCommand(404, delivery.Delivered)
	require.NoError(t, err)

	repo := new(MockDeliveryRepository)
	uow := new(MockDeliveryUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, delivery.ID(404)).
			Return(nil, errs.NewObjectNotFoundError("delivery", int64(404))).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewOverrideDeliveryStatusCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)

	var notFoundErr *errs.ObjectNotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
	repo.AssertNotCalled(t, "UpdateStatus")
}

func TestOverrideDeliveryStatusCommandHandler_Handle_AlreadyDelivered(t *testing.T) {
	ctx := t.Context()
	proofPath := "proof_photos/delivery_23.jpg"
	record, err := delivery.RestoreDelivery(
		23, "Alice", "Bob", "+15550100", "12 Canal St",
		delivery.Morning, mustCode(t, "4821"), nil, &proofPath,
		delivery.Delivered, time.Now(),
	)
	require.NoError(t, err)

	cmd, err := commands.NewOverrideDeliveryStatusCommand(23, delivery.Delivered)
	require.NoError(t, err)

	repo := new(MockDeliveryRepository)
	uow := new(MockDeliveryUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, delivery.ID(23)).Return(record, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewOverrideDeliveryStatusCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, delivery.ErrAlreadyDelivered)
	repo.AssertNotCalled(t, "UpdateStatus")
}

func TestOverrideDeliveryStatusCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.OverrideDeliveryStatusCommand{}

	factory := new(MockDeliveryUoWFactory)
	h := commands.NewOverrideDeliveryStatusCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrOverrideDeliveryStatusCommandIsNotConstructed)
}
