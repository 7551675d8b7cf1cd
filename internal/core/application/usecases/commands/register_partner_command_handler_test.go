package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/partner"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegisterPartnerCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	partnerID := kernel.NewUUID()
	cmd, err := commands.NewRegisterPartnerCommand(partnerID, "Ravi Kumar", "+91-98-7654-3210")
	require.NoError(t, err)

	partnerRepo := new(MockPartnerRepository)
	uow := new(MockPartnerUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PartnerRepository").Return(partnerRepo).Once(),
		partnerRepo.On("Add", ctx, mock.AnythingOfType("*partner.DeliveryPartner")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPartnerUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRegisterPartnerCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)

	added := partnerRepo.Calls[0].Arguments.Get(1).(*partner.DeliveryPartner)
	assert.Equal(t, partnerID, added.ID())
	assert.True(t, added.IsAvailable())
	assert.Nil(t, added.ActiveOrderID())
	partnerRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRegisterPartnerCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.RegisterPartnerCommand{} // not constructed properly

	factory := new(MockPartnerUoWFactory)
	handler := commands.NewRegisterPartnerCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrRegisterPartnerCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestSetPartnerAvailabilityCommandHandler_Handle_OffShift(t *testing.T) {
	ctx := t.Context()
	testPartner := buildPartner(t)
	cmd, err := commands.NewSetPartnerAvailabilityCommand(testPartner.ID(), false)
	require.NoError(t, err)

	partnerRepo := new(MockPartnerRepository)
	uow := new(MockPartnerUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PartnerRepository").Return(partnerRepo).Once(),
		partnerRepo.On("Get", ctx, testPartner.ID()).Return(testPartner, nil).Once(),
		partnerRepo.On("Update", ctx, mock.AnythingOfType("*partner.DeliveryPartner")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPartnerUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSetPartnerAvailabilityCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, testPartner.IsAvailable())
	partnerRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestSetPartnerAvailabilityCommandHandler_Handle_ActiveOrderBlocksOnShift(t *testing.T) {
	ctx := t.Context()
	testPartner := buildPartner(t)
	require.NoError(t, testPartner.Reserve(kernel.NewUUID()))
	cmd, err := commands.NewSetPartnerAvailabilityCommand(testPartner.ID(), true)
	require.NoError(t, err)

	partnerRepo := new(MockPartnerRepository)
	uow := new(MockPartnerUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PartnerRepository").Return(partnerRepo).Once(),
		partnerRepo.On("Get", ctx, testPartner.ID()).Return(testPartner, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPartnerUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSetPartnerAvailabilityCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, partner.ErrPartnerHasActiveOrder)
	partnerRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
}
