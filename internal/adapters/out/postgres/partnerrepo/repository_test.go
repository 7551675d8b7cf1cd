package partnerrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/partnerrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/partner"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type PartnerRepositoryTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *partnerrepo.GormPartnerRepository
}

func (suite *PartnerRepositoryTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&partnerrepo.PartnerDTO{})
	suite.Require().NoError(err)

	suite.repository = partnerrepo.NewGormPartnerRepository(db, nil)
}

func (suite *PartnerRepositoryTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *PartnerRepositoryTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE delivery_partners CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *PartnerRepositoryTestSuite) reservedAggregate(name string) *partner.DeliveryPartner {
	aggregate, err := partner.NewDeliveryPartner(kernel.NewUUID(), name, "+91-98-7654-3210")
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.Reserve(kernel.NewUUID()))
	return aggregate
}

func (suite *PartnerRepositoryTestSuite) TestReserve_UnknownPartnerReportsNotFound() {
	ctx := context.Background()

	// The aggregate was never added; the zero-row update must not read as a
	// reservation conflict.
	aggregate := suite.reservedAggregate("Ravi Kumar")

	err := suite.repository.Reserve(ctx, aggregate)

	var notFound *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFound)
	suite.Require().NotErrorIs(err, partner.ErrPartnerUnavailable)
}

func (suite *PartnerRepositoryTestSuite) TestReserve_SecondAttemptLosesToTheFirst() {
	ctx := context.Background()

	registered, err := partner.NewDeliveryPartner(kernel.NewUUID(), "Zoya Khan", "+91-98-7654-3210")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, registered))

	suite.Require().NoError(registered.Reserve(kernel.NewUUID()))
	suite.Require().NoError(suite.repository.Reserve(ctx, registered))

	stale, err := partner.RestoreDeliveryPartner(
		registered.ID(), registered.Name(), registered.PhoneNumber(), false, registered.ActiveOrderID(),
	)
	suite.Require().NoError(err)

	err = suite.repository.Reserve(ctx, stale)
	suite.Require().ErrorIs(err, partner.ErrPartnerUnavailable)
}

func (suite *PartnerRepositoryTestSuite) TestReserve_AfterReleaseSucceedsAgain() {
	ctx := context.Background()

	registered, err := partner.NewDeliveryPartner(kernel.NewUUID(), "Arjun Mehta", "+91-98-7654-3210")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, registered))

	suite.Require().NoError(registered.Reserve(kernel.NewUUID()))
	suite.Require().NoError(suite.repository.Reserve(ctx, registered))
	suite.Require().NoError(suite.repository.Release(ctx, registered.ID()))

	released, err := suite.repository.Get(ctx, registered.ID())
	suite.Require().NoError(err)
	suite.True(released.IsAvailable())

	suite.Require().NoError(released.Reserve(kernel.NewUUID()))
	suite.Require().NoError(suite.repository.Reserve(ctx, released))
}

func TestPartnerRepositoryTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(PartnerRepositoryTestSuite))
}
