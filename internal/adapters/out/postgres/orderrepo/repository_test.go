package orderrepo_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	postgresadapter "fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type uowFactory struct {
	inner *postgresadapter.GormUnitOfWorkFactory
}

func (f uowFactory) Create() commands.OrderUoW {
	return f.inner.Create()
}

type OrderRepositoryTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   *postgresadapter.GormUnitOfWorkFactory
}

func (suite *OrderRepositoryTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{}, &orderrepo.HistoryDTO{})
	suite.Require().NoError(err)

	suite.factory = postgresadapter.NewGormUnitOfWorkFactory(db)
}

func (suite *OrderRepositoryTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *OrderRepositoryTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *OrderRepositoryTestSuite) seedPreparingOrder(itemCount int) *order.Order {
	items := make([]*order.Item, 0, itemCount)
	for i := 0; i < itemCount; i++ {
		item, err := order.NewItem(
			kernel.NewUUID(), fmt.Sprintf("Item %d", i+1), 1, "pcs", decimal.NewFromInt(50),
		)
		suite.Require().NoError(err)
		items = append(items, item)
	}

	customer, err := order.NewCustomer("Asha Rao", "+91-99-1234-5678", "14 MG Road, Bengaluru")
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), "ORD-5001", customer, items, decimal.NewFromInt(int64(50*itemCount)),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.Accept())
	suite.Require().NoError(aggregate.StartPreparing())

	repo := orderrepo.NewGormOrderRepository(suite.db, nil)
	suite.Require().NoError(repo.Add(context.Background(), aggregate))
	return aggregate
}

// Concurrent packing updates against the same order row. Every transaction
// reads the order with a row lock, so the cycles execute serially and no
// committed flip is overwritten by a transaction that read before it.
func (suite *OrderRepositoryTestSuite) TestConcurrentPackingUpdatesSameOrder() {
	ctx := context.Background()
	const itemCount = 6

	aggregate := suite.seedPreparingOrder(itemCount)
	handler := commands.NewUpdateItemPackingCommandHandler(uowFactory{inner: suite.factory})

	var wg sync.WaitGroup
	results := make([]error, itemCount)
	for i, item := range aggregate.Items() {
		wg.Add(1)
		go func(slot int, itemID kernel.UUID) {
			defer wg.Done()
			cmd, err := commands.NewUpdateItemPackingCommand(aggregate.ID(), itemID, true)
			if err != nil {
				results[slot] = err
				return
			}
			results[slot] = handler.Handle(ctx, cmd)
		}(i, item.ID())
	}
	wg.Wait()

	for slot, err := range results {
		suite.Require().NoError(err, "item %d", slot)
	}

	repo := orderrepo.NewGormOrderRepository(suite.db, nil)
	persisted, err := repo.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	progress := persisted.PackingProgress()
	suite.Equal(itemCount, progress.Packed)
	suite.Equal(itemCount, progress.Total)
}

func TestOrderRepositoryTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(OrderRepositoryTestSuite))
}
