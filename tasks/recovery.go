package tasks

import (
	Config "payledger/config"
	"payledger/database"
	"payledger/services"
	"payledger/utility/cache"
	"payledger/utility/logger"

	"github.com/robfig/cron/v3"
)

// RunExpirySweep ... One pass of the payment expiry sweep
func RunExpirySweep(memoryCache *cache.Memory, config Config.Data, repository database.ILedgerRepository, notifier services.Notifier) {
	recoveryService := services.NewRecoveryService(memoryCache, config, notifier)
	report, err := recoveryService.AutoRecoverExpiredPayments(repository)
	if err != nil {
		logger.Error("Expiry sweep run failed : %s", err)
		return
	}
	logger.Info("Expiry sweep run complete : scanned %d, expired %d, failed %d", report.Scanned, report.Recovered, report.Failed)
}

// ExecuteRecoveryCronJob ... Schedules the expiry sweep on the configured
// cron interval
func ExecuteRecoveryCronJob(memoryCache *cache.Memory, config Config.Data, repository database.ILedgerRepository, notifier services.Notifier) {
	c := cron.New()
	c.AddFunc(config.RecoveryCronInterval, func() { RunExpirySweep(memoryCache, config, repository, notifier) })
	c.Start()
}
