package database

import (
	"net/http"

	"payledger/utility/appError"
	"payledger/utility/errorcode"
	"payledger/utility/logger"

	"github.com/jinzhu/gorm"
)

// IRepository ... Interface definition for the generic base repository
type IRepository interface {
	Get(id interface{}, model interface{}) error
	GetByFieldName(field interface{}, model interface{}) error
	FetchByFieldName(field interface{}, model interface{}) error
	Create(model interface{}) error
	Db() *gorm.DB
}

// BaseRepository ... Model definition for database base repository
type BaseRepository struct {
	Database
}

// Get ... Retrieves a specified record from the database for a given id
func (repo *BaseRepository) Get(id interface{}, model interface{}) error {
	if err := repo.DB.Where("id = ?", id).First(model).Error; err != nil {
		logger.Error("Error with repository Get : %+v", err)
		return repoError(err)
	}
	return nil
}

// GetByFieldName ... Retrieves a record for the specified model from the database for a given field name
func (repo *BaseRepository) GetByFieldName(field interface{}, model interface{}) error {
	if err := repo.DB.Where(field).First(model).Error; err != nil {
		logger.Error("Error with repository GetByFieldName : %+v", err)
		return repoError(err)
	}
	return nil
}

// FetchByFieldName ... Retrieves all records for the specified model from the database for a given field name
func (repo *BaseRepository) FetchByFieldName(field interface{}, model interface{}) error {
	if err := repo.DB.Where(field).Find(model).Error; err != nil {
		logger.Error("Error with repository FetchByFieldName : %s", err)
		return repoError(err)
	}
	return nil
}

// Create ... Create a record on the database for the given model
func (repo *BaseRepository) Create(model interface{}) error {
	if err := repo.DB.Create(model).Error; err != nil {
		logger.Error("Error with repository Create : %s", err)
		return repoError(err)
	}
	return nil
}

// Db ... Exposes the underlying connection for transaction scoping
func (repo *BaseRepository) Db() *gorm.DB {
	return repo.DB
}

func repoError(err error) error {
	if err == gorm.ErrRecordNotFound {
		return appError.Err{
			ErrType: errorcode.RECORD_NOT_FOUND,
			ErrCode: http.StatusNotFound,
			Err:     err,
		}
	}
	return appError.Err{
		ErrType: errorcode.SERVER_ERR,
		ErrCode: http.StatusInternalServerError,
		Err:     err,
	}
}
