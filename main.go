package main

import (
	"log"
	"net/http"
	"time"

	"payledger/app"
	Config "payledger/config"
	"payledger/database"
	"payledger/middlewares"
	"payledger/services"
	"payledger/tasks"
	"payledger/utility/cache"
	"payledger/utility/logger"

	"github.com/getsentry/sentry-go"
	"github.com/gorilla/mux"
	validation "gopkg.in/go-playground/validator.v9"
)

// @title PayLedger API
// @version 1.0
// @description Crypto ledger service : deposit and withdrawal review, balance accounting and payment recovery
// @BasePath /api/v1
func main() {
	config := Config.Data{}
	config.Init("")

	appLogger := logger.NewLogger()
	router := mux.NewRouter()
	validator := validation.New()

	if config.SentryDsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: config.SentryDsn}); err != nil {
			appLogger.Error("Sentry initialization failed : %s", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	Database := &database.Database{
		Config: config,
	}
	Database.LoadDBInstance()
	defer Database.CloseDBInstance()
	Database.RunDbMigrations()

	purgeInterval := time.Duration(config.PurgeCacheInterval) * time.Second
	cacheDuration := time.Duration(config.ExpireCacheDuration) * time.Second
	memoryCache := cache.Initialize(cacheDuration, purgeInterval)

	notifier := services.NewRedisNotifier(config)
	worker := services.NewNotificationWorker(notifier)
	go worker.Run()

	ledgerRepository := &database.LedgerRepository{
		BaseRepository: database.BaseRepository{Database: *Database},
	}
	tasks.ExecuteRecoveryCronJob(memoryCache, config, ledgerRepository, notifier)

	App := &app.App{
		Router: router,
		Logger: appLogger,
		Config: config,
		DB:     Database.DB,
	}
	App.RegisterRoutes(validator, memoryCache, notifier)

	serviceAddress := ":" + config.AppPort

	middleware := middlewares.NewMiddleware(appLogger, config, router).
		LogAPIRequests().
		Build()

	appLogger.Info("Server started and listening on port %s", config.AppPort)
	log.Fatal(http.ListenAndServe(serviceAddress, middleware))
}
