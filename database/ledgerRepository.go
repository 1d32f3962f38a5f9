package database

import (
	"time"

	"payledger/dto"
	"payledger/model"
	"payledger/utility/logger"
	"payledger/utility/money"

	"github.com/jinzhu/gorm"
	uuid "github.com/satori/go.uuid"
	"github.com/shopspring/decimal"
)

// ILedgerRepository ... Ledger-specific queries on top of the base repository
type ILedgerRepository interface {
	IRepository
	FetchPendingDeposits(deposits *[]model.Deposit) error
	FetchPendingWithdrawals(withdrawals *[]model.Withdrawal) error
	FetchExpiredPaymentCandidates(payments *[]model.CryptoPayment, now time.Time, fallbackCutoff time.Time) error
	TransitionStatus(tx *gorm.DB, record interface{}, fromStatus string, updates map[string]interface{}) (int64, error)
	CreditBalance(tx *gorm.DB, userID uuid.UUID, currency string, amount decimal.Decimal) error
	DebitBalance(tx *gorm.DB, userID uuid.UUID, currency string, amount decimal.Decimal) (int64, error)
	DepositStats(stats *[]dto.StatusCurrencyStat) error
	WithdrawalStats(stats *[]dto.StatusCurrencyStat) error
}

// LedgerRepository ... Repository over deposits, withdrawals, balances,
// payments and audit logs
type LedgerRepository struct {
	BaseRepository
}

// FetchPendingDeposits ... Deposits awaiting admin review, oldest first
func (repo *LedgerRepository) FetchPendingDeposits(deposits *[]model.Deposit) error {
	if err := repo.DB.Where(&model.Deposit{Status: model.LedgerStatus.PENDING}).Order("created_at asc").Find(deposits).Error; err != nil {
		logger.Error("Error with repository FetchPendingDeposits : %s", err)
		return repoError(err)
	}
	return nil
}

// FetchPendingWithdrawals ... Withdrawals awaiting admin review, oldest first
func (repo *LedgerRepository) FetchPendingWithdrawals(withdrawals *[]model.Withdrawal) error {
	if err := repo.DB.Where(&model.Withdrawal{Status: model.LedgerStatus.PENDING}).Order("created_at asc").Find(withdrawals).Error; err != nil {
		logger.Error("Error with repository FetchPendingWithdrawals : %s", err)
		return repoError(err)
	}
	return nil
}

// FetchExpiredPaymentCandidates ... PENDING payments whose expiry has elapsed.
// Payments without an explicit expiry fall back to the configured age cutoff.
func (repo *LedgerRepository) FetchExpiredPaymentCandidates(payments *[]model.CryptoPayment, now time.Time, fallbackCutoff time.Time) error {
	err := repo.DB.
		Where("status = ?", model.PaymentStatus.PENDING).
		Where("(expires_at IS NOT NULL AND expires_at < ?) OR (expires_at IS NULL AND created_at < ?)", now, fallbackCutoff).
		Order("created_at asc").
		Find(payments).Error
	if err != nil {
		logger.Error("Error with repository FetchExpiredPaymentCandidates : %s", err)
		return repoError(err)
	}
	return nil
}

// TransitionStatus ... Guarded one-way status update. The WHERE clause pins
// the expected current status, zero rows affected means another writer got
// there first and the caller must treat the record as already terminal.
func (repo *LedgerRepository) TransitionStatus(tx *gorm.DB, record interface{}, fromStatus string, updates map[string]interface{}) (int64, error) {
	db := tx
	if db == nil {
		db = repo.DB
	}
	result := db.Model(record).Where("status = ?", fromStatus).Updates(updates)
	if result.Error != nil {
		logger.Error("Error with repository TransitionStatus : %s", result.Error)
		return 0, repoError(result.Error)
	}
	return result.RowsAffected, nil
}

// CreditBalance ... Atomic increment of the per-user, per-currency balance
// row. The row is created on first credit.
func (repo *LedgerRepository) CreditBalance(tx *gorm.DB, userID uuid.UUID, currency string, amount decimal.Decimal) error {
	db := tx
	if db == nil {
		db = repo.DB
	}
	result := db.Model(&model.UserCryptoBalance{}).
		Where("user_id = ? AND currency = ?", userID, currency).
		Update("available_balance", gorm.Expr("available_balance + ?", amount))
	if result.Error != nil {
		logger.Error("Error with repository CreditBalance : %s", result.Error)
		return repoError(result.Error)
	}
	if result.RowsAffected == 0 {
		balance := model.UserCryptoBalance{UserID: userID, Currency: currency, AvailableBalance: amount}
		if err := db.Create(&balance).Error; err != nil {
			logger.Error("Error with repository CreditBalance create : %s", err)
			return repoError(err)
		}
	}
	return nil
}

// DebitBalance ... Atomic decrement guarded against going negative. Zero rows
// affected means the balance row is missing or insufficient.
func (repo *LedgerRepository) DebitBalance(tx *gorm.DB, userID uuid.UUID, currency string, amount decimal.Decimal) (int64, error) {
	db := tx
	if db == nil {
		db = repo.DB
	}
	result := db.Model(&model.UserCryptoBalance{}).
		Where("user_id = ? AND currency = ? AND available_balance >= ?", userID, currency, amount).
		Update("available_balance", gorm.Expr("available_balance - ?", amount))
	if result.Error != nil {
		logger.Error("Error with repository DebitBalance : %s", result.Error)
		return 0, repoError(result.Error)
	}
	return result.RowsAffected, nil
}

// DepositStats ... Counts and sums grouped by status and currency
func (repo *LedgerRepository) DepositStats(stats *[]dto.StatusCurrencyStat) error {
	return repo.statusCurrencyStats("deposits", "amount", stats)
}

// WithdrawalStats ... Counts and total amounts grouped by status and currency
func (repo *LedgerRepository) WithdrawalStats(stats *[]dto.StatusCurrencyStat) error {
	return repo.statusCurrencyStats("withdrawals", "total_amount", stats)
}

func (repo *LedgerRepository) statusCurrencyStats(table, amountColumn string, stats *[]dto.StatusCurrencyStat) error {
	rows, err := repo.DB.Table(table).
		Select("status, currency, COUNT(*) as count, SUM(" + amountColumn + ") as total").
		Group("status, currency").
		Rows()
	if err != nil {
		logger.Error("Error with repository statusCurrencyStats on %s : %s", table, err)
		return repoError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var stat dto.StatusCurrencyStat
		var total decimal.NullDecimal
		if err := rows.Scan(&stat.Status, &stat.Currency, &stat.Count, &total); err != nil {
			logger.Error("Error scanning stats row on %s : %s", table, err)
			return repoError(err)
		}
		stat.Total = money.Serialize(total)
		*stats = append(*stats, stat)
	}
	return nil
}
