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

	"transtrack/cmd"
	inhttp "transtrack/internal/adapters/in/http"
	"transtrack/internal/adapters/out/eventbus"
	"transtrack/internal/adapters/out/postgres/orderrepo"
	"transtrack/internal/adapters/out/postgres/templaterepo"
	"transtrack/internal/jobs"
	"transtrack/internal/pkg/logging"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs := getConfigs()
	logging.Setup(configs.LogLevel)
	logger := logging.WithComponent("app")

	db, err := openDatabase(configs)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	bus := eventbus.NewGoChannelBus(watermill.NewSlogLogger(slog.Default()))
	defer bus.Close()
	publisher := eventbus.NewWatermillEventPublisher(bus)

	notifier := eventbus.NewNotificationLogger(bus)
	if err = notifier.Start(context.Background()); err != nil {
		logger.Error("failed to start event notifier", "error", err)
		os.Exit(1)
	}

	app := cmd.NewCompositionRoot(configs, db, publisher)

	scheduler := jobs.NewScheduler()
	if err = registerJobs(scheduler, &app, configs); err != nil {
		logger.Error("failed to register background jobs", "error", err)
		os.Exit(1)
	}
	scheduler.Start()
	defer scheduler.Stop()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:           goDotEnvVariable("HTTP_PORT"),
		DBHost:             goDotEnvVariable("DB_HOST"),
		DBPort:             goDotEnvVariable("DB_PORT"),
		DBUser:             goDotEnvVariable("DB_USER"),
		DBPassword:         goDotEnvVariable("DB_PASSWORD"),
		DBName:             goDotEnvVariable("DB_NAME"),
		DBSslMode:          goDotEnvVariable("DB_SSLMODE"),
		LogLevel:           goDotEnvVariable("LOG_LEVEL"),
		SyncEndpoint:       goDotEnvVariable("SYNC_ENDPOINT"),
		SyncAPIKey:         goDotEnvVariable("SYNC_API_KEY"),
		SyncDispatchSpec:   goDotEnvVariable("SYNC_DISPATCH_SPEC"),
		SyncBatchLimit:     goDotEnvVariable("SYNC_BATCH_LIMIT"),
		EscalationScanSpec: goDotEnvVariable("ESCALATION_SCAN_SPEC"),
	}
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err = db.AutoMigrate(&orderrepo.OrderDTO{}, &templaterepo.TemplateDTO{}); err != nil {
		return nil, err
	}

	return db, nil
}

func registerJobs(scheduler *jobs.Scheduler, app *cmd.CompositionRoot, configs cmd.Config) error {
	sweepHandler := app.CreateEscalationSweepQueryHandler()
	scanJob := jobs.NewEscalationScanJob(sweepHandler, app.Publisher())
	if err := scheduler.AddEscalationScan(configs.EscalationScanSpec, scanJob); err != nil {
		return err
	}

	limit := jobs.DefaultSyncBatchLimit
	if configs.SyncBatchLimit != "" {
		if _, err := fmt.Sscanf(configs.SyncBatchLimit, "%d", &limit); err != nil {
			return err
		}
	}
	dispatchJob := jobs.NewSyncDispatchJob(app.CreateDispatchOrderSyncCommandHandler(), limit)
	return scheduler.AddSyncDispatch(configs.SyncDispatchSpec, dispatchJob)
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := inhttp.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateAssignTransportCommandHandler(),
		app.CreateChangeOrderStatusCommandHandler(),
		app.CreateCloseOrderCommandHandler(),
		app.CreateDeleteOrderCommandHandler(),
		app.CreateRecordMilestonePassageCommandHandler(),
		app.CreateInsertMilestoneCommandHandler(),
		app.CreateUpdateMilestoneCommandHandler(),
		app.CreateRemoveMilestoneCommandHandler(),
		app.CreateImportOrdersCommandHandler(),
		app.CreateDispatchOrderSyncCommandHandler(),
		app.CreateCreateTemplateCommandHandler(),
		app.CreateUpdateTemplateCommandHandler(),
		app.CreateActivateTemplateCommandHandler(),
		app.CreateDeactivateTemplateCommandHandler(),
		app.CreateDeleteTemplateCommandHandler(),
		app.CreateDuplicateTemplateCommandHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateGetActiveOrdersQueryHandler(),
		app.CreateGetTemplatesQueryHandler(),
		app.CreateEvaluateEscalationsQueryHandler(),
	)
	server.RegisterRoutes(e)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(ctx); err != nil {
			e.Logger.Error(err)
		}
	}()

	if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		e.Logger.Fatal(err)
	}
}
