// Package cmd wires the application together: configuration, database
// connections, command and query handlers, and background jobs.
package cmd

import (
	"log/slog"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/partnerrepo"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot builds every handler with its dependencies resolved. All
// command handlers share the unit of work factory; the assignment handler
// additionally gets the standalone partner registry, which operates outside
// the order transaction so reservations commit atomically on their own.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	assigner   services.DeliveryAssigner
	logger     *slog.Logger
}

// NewCompositionRoot creates the composition root from the runtime config
// and an open database connection.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		assigner:   services.NewDeliveryAssigner(config.DeliveryWindow()),
		logger:     logger,
	}
}

// PartnerRegistry returns the standalone partner repository used for
// reservations and compensating releases.
func (c *CompositionRoot) PartnerRegistry() ports.PartnerRepository {
	return partnerrepo.NewGormPartnerRepository(c.gormDB, nil)
}

// OrderRepository returns a repository for read-only background jobs.
func (c *CompositionRoot) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(c.gormDB, nil)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) partnerUoWFactory() commands.PartnerUoWFactory {
	return FuncPartnerUoWFactory(func() commands.PartnerUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	return commands.NewAcceptOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateDeclineOrderCommandHandler() commands.DeclineOrderCommandHandler {
	return commands.NewDeclineOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateStartPreparingCommandHandler() commands.StartPreparingCommandHandler {
	return commands.NewStartPreparingCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateMarkReadyCommandHandler() commands.MarkReadyCommandHandler {
	return commands.NewMarkReadyCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAssignDeliveryCommandHandler() commands.AssignDeliveryCommandHandler {
	return commands.NewAssignDeliveryCommandHandler(
		c.orderUoWFactory(),
		c.PartnerRegistry(),
		c.assigner,
		c.logger,
	)
}

func (c *CompositionRoot) CreateStartDeliveryCommandHandler() commands.StartDeliveryCommandHandler {
	return commands.NewStartDeliveryCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateMarkDeliveredCommandHandler() commands.MarkDeliveredCommandHandler {
	return commands.NewMarkDeliveredCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateMarkPaymentReceivedCommandHandler() commands.MarkPaymentReceivedCommandHandler {
	return commands.NewMarkPaymentReceivedCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateUpdateItemPackingCommandHandler() commands.UpdateItemPackingCommandHandler {
	return commands.NewUpdateItemPackingCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRegisterPartnerCommandHandler() commands.RegisterPartnerCommandHandler {
	return commands.NewRegisterPartnerCommandHandler(c.partnerUoWFactory())
}

func (c *CompositionRoot) CreateSetPartnerAvailabilityCommandHandler() commands.SetPartnerAvailabilityCommandHandler {
	return commands.NewSetPartnerAvailabilityCommandHandler(c.partnerUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersByStatusQueryHandler() queries.GetOrdersByStatusQueryHandler {
	return queries.NewGetOrdersByStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAvailablePartnersQueryHandler() queries.GetAvailablePartnersQueryHandler {
	return queries.NewGetAvailablePartnersQueryHandler(c.gormDB)
}

// CreateJobManager builds the background jobs over a read-only repository.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.OrderRepository(), c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncPartnerUoWFactory func() commands.PartnerUoW

func (f FuncPartnerUoWFactory) Create() commands.PartnerUoW {
	return f()
}
