package app

import (
	"net/http"
	"sync"

	"payledger/controllers"
	"payledger/database"
	"payledger/middlewares"
	"payledger/services"
	"payledger/utility/cache"
	validator "payledger/utility/validator"

	httpSwagger "github.com/swaggo/http-swagger"
	validation "gopkg.in/go-playground/validator.v9"
)

var (
	once sync.Once
)

// RegisterRoutes ... Wires repositories, services and controllers onto the
// router. Admin review and recovery routes sit behind the admin role check,
// user wallet routes behind token verification only. The processor webhook
// requires a SERVICE token.
func (app *App) RegisterRoutes(validate *validation.Validate, memoryCache *cache.Memory, notifier services.Notifier) {

	once.Do(func() {
		ledgerRepository := &database.LedgerRepository{
			BaseRepository: database.BaseRepository{
				Database: database.Database{Config: app.Config, DB: app.DB},
			},
		}

		translator, err := validator.CustomizeMessages(validate)
		if err != nil {
			app.Logger.Error("Could not customize validation messages : %s", err)
		}

		approvalService := services.NewApprovalService(memoryCache, app.Config, notifier)
		recoveryService := services.NewRecoveryService(memoryCache, app.Config, notifier)
		ledgerService := services.NewLedgerService(memoryCache, app.Config, notifier)

		baseController := controllers.NewController(app.Logger, app.Config, validate, translator, ledgerRepository)
		adminController := controllers.NewAdminCryptoController(baseController, approvalService)
		recoveryController := controllers.NewRecoveryController(baseController, recoveryService)
		walletController := controllers.NewWalletController(baseController, ledgerService)

		baseURL := "/api/v1"

		apiRouter := app.Router.PathPrefix(baseURL).Subrouter()
		app.Router.PathPrefix("/swagger").Handler(httpSwagger.WrapHandler)

		// General Routes
		apiRouter.HandleFunc("/crypto/ping", baseController.Ping).Methods(http.MethodGet)

		// Admin review routes
		apiRouter.HandleFunc("/admin/crypto/deposits/{depositId}/approve", middlewares.AdminOnly(app.Config, app.Logger, adminController.ApproveDeposit)).Methods(http.MethodPost)
		apiRouter.HandleFunc("/admin/crypto/deposits/{depositId}/reject", middlewares.AdminOnly(app.Config, app.Logger, adminController.RejectDeposit)).Methods(http.MethodPost)
		apiRouter.HandleFunc("/admin/crypto/withdrawals/{withdrawalId}/approve", middlewares.AdminOnly(app.Config, app.Logger, adminController.ApproveWithdrawal)).Methods(http.MethodPost)
		apiRouter.HandleFunc("/admin/crypto/withdrawals/{withdrawalId}/reject", middlewares.AdminOnly(app.Config, app.Logger, adminController.RejectWithdrawal)).Methods(http.MethodPost)
		apiRouter.HandleFunc("/admin/crypto/pending", middlewares.AdminOnly(app.Config, app.Logger, adminController.GetPendingReview)).Methods(http.MethodGet)
		apiRouter.HandleFunc("/admin/crypto/stats", middlewares.AdminOnly(app.Config, app.Logger, adminController.GetStats)).Methods(http.MethodGet)

		// Payment recovery routes
		apiRouter.HandleFunc("/crypto/recovery", middlewares.AdminOnly(app.Config, app.Logger, recoveryController.GetCapabilities)).Methods(http.MethodGet)
		apiRouter.HandleFunc("/crypto/recovery", middlewares.AdminOnly(app.Config, app.Logger, recoveryController.PostAction)).Methods(http.MethodPost)

		// User wallet routes
		apiRouter.HandleFunc("/crypto/withdrawals", middlewares.ValidateAuthToken(app.Config, app.Logger, walletController.CreateWithdrawal)).Methods(http.MethodPost)
		apiRouter.HandleFunc("/crypto/withdrawals", middlewares.ValidateAuthToken(app.Config, app.Logger, walletController.GetWithdrawals)).Methods(http.MethodGet)
		apiRouter.HandleFunc("/crypto/deposits", middlewares.ValidateAuthToken(app.Config, app.Logger, walletController.GetDeposits)).Methods(http.MethodGet)
		apiRouter.HandleFunc("/crypto/deposits/ipn", middlewares.ServiceTokenOnly(app.Config, app.Logger, walletController.DepositIPN)).Methods(http.MethodPost)
	})

	app.Logger.Info("App routes registered successfully!")
}
