package main

import (
	"fmt"
	"time"

	Config "payledger/config"
	"payledger/database"
	"payledger/services"
	"payledger/tasks"
	"payledger/utility/cache"
)

func main() {
	fmt.Println("Starting Recovery Job")

	config := Config.Data{}
	config.Init("")

	Database := &database.Database{
		Config: config,
	}
	Database.LoadDBInstance()
	defer Database.CloseDBInstance()

	purgeInterval := time.Duration(config.PurgeCacheInterval) * time.Second
	cacheDuration := time.Duration(config.ExpireCacheDuration) * time.Second
	memoryCache := cache.Initialize(cacheDuration, purgeInterval)

	ledgerRepository := &database.LedgerRepository{
		BaseRepository: database.BaseRepository{Database: *Database},
	}

	notifier := services.NewRedisNotifier(config)
	tasks.RunExpirySweep(memoryCache, config, ledgerRepository, notifier)
}
