package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fulfillment/cmd"
	adapterhttp "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/partnerrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	gommonlog "github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	configs, err := getConfigs()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := openDatabase(configs)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	root := cmd.NewCompositionRoot(configs, db, logger)

	if err := run(&root, configs, logger); err != nil {
		logger.Error("Service stopped with error", "error", err)
		os.Exit(1)
	}
}

func getConfigs() (cmd.Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		return cmd.Config{}, fmt.Errorf("error loading .env file: %w", err)
	}

	return cmd.Config{
		HTTPPort:              os.Getenv("HTTP_PORT"),
		DBHost:                os.Getenv("DB_HOST"),
		DBPort:                os.Getenv("DB_PORT"),
		DBUser:                os.Getenv("DB_USER"),
		DBPassword:            os.Getenv("DB_PASSWORD"),
		DBName:                os.Getenv("DB_NAME"),
		DBSslMode:             os.Getenv("DB_SSLMODE"),
		DeliveryWindowMinutes: os.Getenv("DELIVERY_WINDOW_MINUTES"),
	}, nil
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgresdriver.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.HistoryDTO{},
		&partnerrepo.PartnerDTO{},
	); err != nil {
		return nil, err
	}

	return db, nil
}

func run(root *cmd.CompositionRoot, configs cmd.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	jobManager := root.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e := echo.New()
	e.HideBanner = true
	// echo's own logger is silenced; everything goes through slog.
	e.Logger.SetLevel(gommonlog.OFF)
	e.Use(middleware.Recover())

	server := adapterhttp.NewServer(
		root.CreateCreateOrderCommandHandler(),
		root.CreateAcceptOrderCommandHandler(),
		root.CreateDeclineOrderCommandHandler(),
		root.CreateStartPreparingCommandHandler(),
		root.CreateMarkReadyCommandHandler(),
		root.CreateCancelOrderCommandHandler(),
		root.CreateAssignDeliveryCommandHandler(),
		root.CreateStartDeliveryCommandHandler(),
		root.CreateMarkDeliveredCommandHandler(),
		root.CreateMarkPaymentReceivedCommandHandler(),
		root.CreateUpdateItemPackingCommandHandler(),
		root.CreateRegisterPartnerCommandHandler(),
		root.CreateSetPartnerAvailabilityCommandHandler(),
		root.CreateGetOrderQueryHandler(),
		root.CreateGetOrdersByStatusQueryHandler(),
		root.CreateGetAvailablePartnersQueryHandler(),
	)
	server.RegisterRoutes(e)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		logger.Info("HTTP server starting", "port", configs.HTTPPort)
		return e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort))
	})

	group.Go(func() error {
		<-groupCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		logger.Info("Shutting down HTTP server")
		return e.Shutdown(shutdownCtx)
	})

	err := group.Wait()
	if err != nil && !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}
