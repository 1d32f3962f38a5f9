package app

import (
	"payledger/config"
	"payledger/utility/logger"

	"github.com/gorilla/mux"
	"github.com/jinzhu/gorm"
)

//App : app struct
type App struct {
	Router *mux.Router
	Logger *logger.Logger
	Config config.Data
	DB     *gorm.DB
}
