package commands_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/partner"
	"fulfillment/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAssignDeliveryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	testOrder := buildOrder(t, order.StatusReady)
	testPartner := buildPartner(t)
	cmd, err := commands.NewAssignDeliveryCommand(testOrder.ID(), testPartner.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	registry := new(MockPartnerRepository)
	uow := new(MockOrderUoW)

	registry.On("Get", ctx, testPartner.ID()).Return(testPartner, nil).Once()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		registry.On("Reserve", ctx, mock.AnythingOfType("*partner.DeliveryPartner")).Return(nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignDeliveryCommandHandler(factory, registry, services.NewDeliveryAssigner(30*time.Minute), discardLogger())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.StatusAssigned, testOrder.Status())
	require.NotNil(t, testOrder.Assignment())
	assert.Equal(t, testPartner.ID(), testOrder.Assignment().PartnerID())
	assert.False(t, testPartner.IsAvailable())
	registry.AssertNotCalled(t, "Release", ctx, mock.Anything)
	orderRepo.AssertExpectations(t)
	registry.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestAssignDeliveryCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.AssignDeliveryCommand{} // not constructed properly

	factory := new(MockOrderUoWFactory)
	registry := new(MockPartnerRepository)
	handler := commands.NewAssignDeliveryCommandHandler(factory, registry, services.NewDeliveryAssigner(0), discardLogger())
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrAssignDeliveryCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
	registry.AssertNotCalled(t, "Get", ctx, mock.Anything)
}

func TestAssignDeliveryCommandHandler_Handle_PartnerAlreadyReserved(t *testing.T) {
	ctx := t.Context()
	testOrder := buildOrder(t, order.StatusReady)
	takenPartner := buildPartner(t)
	require.NoError(t, takenPartner.Reserve(kernel.NewUUID()))
	cmd, err := commands.NewAssignDeliveryCommand(testOrder.ID(), takenPartner.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	registry := new(MockPartnerRepository)
	uow := new(MockOrderUoW)

	registry.On("Get", ctx, takenPartner.ID()).Return(takenPartner, nil).Once()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignDeliveryCommandHandler(factory, registry, services.NewDeliveryAssigner(0), discardLogger())
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, partner.ErrPartnerUnavailable)
	assert.Equal(t, order.StatusReady, testOrder.Status())
	registry.AssertNotCalled(t, "Reserve", ctx, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestAssignDeliveryCommandHandler_Handle_LostReservationRace(t *testing.T) {
	ctx := t.Context()
	testOrder := buildOrder(t, order.StatusReady)
	testPartner := buildPartner(t)
	cmd, err := commands.NewAssignDeliveryCommand(testOrder.ID(), testPartner.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	registry := new(MockPartnerRepository)
	uow := new(MockOrderUoW)

	registry.On("Get", ctx, testPartner.ID()).Return(testPartner, nil).Once()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		registry.On("Reserve", ctx, mock.AnythingOfType("*partner.DeliveryPartner")).
			Return(partner.ErrPartnerUnavailable).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignDeliveryCommandHandler(factory, registry, services.NewDeliveryAssigner(0), discardLogger())
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, partner.ErrPartnerUnavailable)
	orderRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
	registry.AssertNotCalled(t, "Release", ctx, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestAssignDeliveryCommandHandler_Handle_UpdateFailureReleasesReservation(t *testing.T) {
	ctx := t.Context()
	testOrder := buildOrder(t, order.StatusReady)
	testPartner := buildPartner(t)
	cmd, err := commands.NewAssignDeliveryCommand(testOrder.ID(), testPartner.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	registry := new(MockPartnerRepository)
	uow := new(MockOrderUoW)

	registry.On("Get", ctx, testPartner.ID()).Return(testPartner, nil).Once()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		registry.On("Reserve", ctx, mock.AnythingOfType("*partner.DeliveryPartner")).Return(nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).
			Return(errors.New("database error")).Once(),
		registry.On("Release", ctx, testPartner.ID()).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignDeliveryCommandHandler(factory, registry, services.NewDeliveryAssigner(0), discardLogger())
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "database error")
	registry.AssertExpectations(t)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestAssignDeliveryCommandHandler_Handle_CommitFailureReleasesReservation(t *testing.T) {
	ctx := t.Context()
	testOrder := buildOrder(t, order.StatusReady)
	testPartner := buildPartner(t)
	cmd, err := commands.NewAssignDeliveryCommand(testOrder.ID(), testPartner.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	registry := new(MockPartnerRepository)
	uow := new(MockOrderUoW)

	registry.On("Get", ctx, testPartner.ID()).Return(testPartner, nil).Once()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		registry.On("Reserve", ctx, mock.AnythingOfType("*partner.DeliveryPartner")).Return(nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		registry.On("Release", ctx, testPartner.ID()).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignDeliveryCommandHandler(factory, registry, services.NewDeliveryAssigner(0), discardLogger())
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "commit error")
	registry.AssertExpectations(t)
}

func TestAssignDeliveryCommandHandler_Handle_FailedReleaseIsLogged(t *testing.T) {
	ctx := t.Context()
	testOrder := buildOrder(t, order.StatusReady)
	testPartner := buildPartner(t)
	cmd, err := commands.NewAssignDeliveryCommand(testOrder.ID(), testPartner.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	registry := new(MockPartnerRepository)
	uow := new(MockOrderUoW)

	registry.On("Get", ctx, testPartner.ID()).Return(testPartner, nil).Once()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		registry.On("Reserve", ctx, mock.AnythingOfType("*partner.DeliveryPartner")).Return(nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).
			Return(errors.New("database error")).Once(),
		registry.On("Release", ctx, testPartner.ID()).
			Return(errors.New("connection reset")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	var logged bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logged, nil))

	handler := commands.NewAssignDeliveryCommandHandler(factory, registry, services.NewDeliveryAssigner(0), logger)
	err = handler.Handle(ctx, cmd)

	// The caller still sees the order failure; the stranded reservation is
	// reported through the log for manual repair.
	require.EqualError(t, err, "database error")
	assert.Contains(t, logged.String(), "stuck reserved")
	assert.Contains(t, logged.String(), testPartner.ID().String())
	assert.Contains(t, logged.String(), "connection reset")
	registry.AssertExpectations(t)
}
