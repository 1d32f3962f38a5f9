package database

import (
	"net/http"
	"testing"

	"payledger/model"
	"payledger/utility/appError"
	"payledger/utility/errorcode"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jinzhu/gorm"
	uuid "github.com/satori/go.uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func mustUUID(t *testing.T) uuid.UUID {
	id, err := uuid.NewV4()
	require.NoError(t, err)
	return id
}

func newMockRepository(t *testing.T) (*LedgerRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open("mysql", db)
	require.NoError(t, err)
	gormDB.LogMode(false)

	repo := &LedgerRepository{
		BaseRepository: BaseRepository{Database: Database{DB: gormDB}},
	}
	return repo, mock, func() { gormDB.Close() }
}

func TestGetFindsRecordForUUID(t *testing.T) {
	repo, mock, closeDB := newMockRepository(t)
	defer closeDB()

	id := mustUUID(t)
	mock.ExpectQuery("SELECT (.+) FROM `deposits`(.+)id = \\?").
		WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).
			AddRow(id.String(), model.LedgerStatus.PENDING))

	deposit := model.Deposit{}
	require.NoError(t, repo.Get(id, &deposit))
	require.Equal(t, id, deposit.ID)
	require.Equal(t, model.LedgerStatus.PENDING, deposit.Status)
}

func TestGetMapsMissingRowToRecordNotFound(t *testing.T) {
	repo, mock, closeDB := newMockRepository(t)
	defer closeDB()

	mock.ExpectQuery("SELECT (.+) FROM `deposits`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	deposit := model.Deposit{}
	err := repo.Get(mustUUID(t), &deposit)
	require.Error(t, err)

	appErr, ok := err.(appError.Err)
	require.True(t, ok)
	require.Equal(t, errorcode.RECORD_NOT_FOUND, appErr.ErrType)
	require.Equal(t, http.StatusNotFound, appErr.ErrCode)
}

func TestTransitionStatusReportsRowsAffected(t *testing.T) {
	repo, mock, closeDB := newMockRepository(t)
	defer closeDB()

	id := mustUUID(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `deposits` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	rows, err := repo.TransitionStatus(nil, &model.Deposit{BaseModel: model.BaseModel{ID: id}}, model.LedgerStatus.PENDING, map[string]interface{}{
		"status": model.LedgerStatus.APPROVED,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), rows)

	// a concurrent writer already moved the record off PENDING
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `deposits` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	rows, err = repo.TransitionStatus(nil, &model.Deposit{BaseModel: model.BaseModel{ID: id}}, model.LedgerStatus.PENDING, map[string]interface{}{
		"status": model.LedgerStatus.REJECTED,
	})
	require.NoError(t, err)
	require.Equal(t, int64(0), rows)
}

func TestDebitBalanceGuardReportsInsufficientFunds(t *testing.T) {
	repo, mock, closeDB := newMockRepository(t)
	defer closeDB()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `user_crypto_balances` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	rows, err := repo.DebitBalance(nil, mustUUID(t), "BTC", decimal.RequireFromString("5"))
	require.NoError(t, err)
	require.Equal(t, int64(0), rows)
}
