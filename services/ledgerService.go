package services

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	Config "payledger/config"
	"payledger/database"
	"payledger/dto"
	"payledger/model"
	"payledger/utility/address"
	"payledger/utility/appError"
	"payledger/utility/cache"
	"payledger/utility/errorcode"

	uuid "github.com/satori/go.uuid"
	"github.com/shopspring/decimal"
)

// LedgerService ... User-facing deposit and withdrawal operations
type LedgerService struct {
	Cache    *cache.Memory
	Config   Config.Data
	Notifier Notifier
}

func NewLedgerService(memory *cache.Memory, config Config.Data, notifier Notifier) *LedgerService {
	return &LedgerService{
		Cache:    memory,
		Config:   config,
		Notifier: notifier,
	}
}

// CreateWithdrawal ... Validates the destination address, reserves the total
// amount from the user balance and books the withdrawal in one transaction.
// Amounts at or above the configured threshold wait for admin review, smaller
// ones are approved on the spot.
func (service *LedgerService) CreateWithdrawal(repository database.ILedgerRepository, userID uuid.UUID, request model.CreateWithdrawalRequest) (model.Withdrawal, error) {
	withdrawal := model.Withdrawal{}

	currency := strings.ToUpper(strings.TrimSpace(request.Currency))
	if !model.IsSupportedCurrency(currency) {
		return withdrawal, inputErr(fmt.Sprintf("Currency %s is not supported", request.Currency))
	}

	if result := address.Validate(request.Address, currency); !result.Valid {
		return withdrawal, inputErr(fmt.Sprintf("Address is not valid for %s : %s", currency, result.Err))
	}

	amount := decimal.NewFromFloat(request.Amount)
	if amount.LessThanOrEqual(decimal.Zero) {
		return withdrawal, inputErr("Withdrawal amount must be greater than zero")
	}

	fee := service.withdrawalFee(amount)
	totalAmount := amount.Add(fee)

	requiresApproval := true
	threshold := decimal.NewFromFloat(service.Config.WithdrawalApprovalThreshold)
	if threshold.GreaterThan(decimal.Zero) && amount.LessThan(threshold) {
		requiresApproval = false
	}

	withdrawal = model.Withdrawal{
		UserID:           userID,
		Currency:         currency,
		Address:          request.Address,
		Amount:           amount,
		Fee:              fee,
		TotalAmount:      totalAmount,
		RequiresApproval: requiresApproval,
		Status:           model.LedgerStatus.PENDING,
	}
	if !requiresApproval {
		withdrawal.Status = model.LedgerStatus.APPROVED
	}

	tx := repository.Db().Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	if err := tx.Error; err != nil {
		return withdrawal, serverErr(err)
	}

	rows, err := repository.DebitBalance(tx, userID, currency, totalAmount)
	if err != nil {
		tx.Rollback()
		return withdrawal, err
	}
	if rows == 0 {
		tx.Rollback()
		return withdrawal, inputErr(fmt.Sprintf("Insufficient %s balance for this withdrawal", currency))
	}

	if err := tx.Create(&withdrawal).Error; err != nil {
		tx.Rollback()
		return withdrawal, serverErr(err)
	}

	if err := commitTx(tx); err != nil {
		return withdrawal, err
	}
	return withdrawal, nil
}

// RecordDeposit ... Books an inbound transfer reported by the payment
// processor as a PENDING deposit. Replayed webhooks for a transaction hash
// already on file return the existing record unchanged.
func (service *LedgerService) RecordDeposit(repository database.ILedgerRepository, request model.DepositIPNRequest) (model.Deposit, error) {
	deposit := model.Deposit{}

	currency := strings.ToUpper(strings.TrimSpace(request.Currency))
	if !model.IsSupportedCurrency(currency) {
		return deposit, inputErr(fmt.Sprintf("Currency %s is not supported", request.Currency))
	}

	amount := decimal.NewFromFloat(request.Amount)
	if amount.LessThanOrEqual(decimal.Zero) {
		return deposit, inputErr("Deposit amount must be greater than zero")
	}

	existing := model.Deposit{}
	err := repository.GetByFieldName(&model.Deposit{TxHash: request.TxHash}, &existing)
	if err == nil {
		return existing, nil
	}
	if appError.Type(err) != errorcode.RECORD_NOT_FOUND {
		return deposit, err
	}

	deposit = model.Deposit{
		UserID:   request.UserID,
		Currency: currency,
		Amount:   amount,
		TxHash:   request.TxHash,
		Status:   model.LedgerStatus.PENDING,
	}
	if err := repository.Create(&deposit); err != nil {
		return deposit, err
	}
	return deposit, nil
}

// FetchUserDeposits ...
func (service *LedgerService) FetchUserDeposits(repository database.ILedgerRepository, userID uuid.UUID) ([]dto.DepositResponse, error) {
	var deposits []model.Deposit
	if err := repository.FetchByFieldName(&model.Deposit{UserID: userID}, &deposits); err != nil {
		return nil, err
	}
	responseData := []dto.DepositResponse{}
	for _, deposit := range deposits {
		responseData = append(responseData, NormalizeDeposit(deposit))
	}
	return responseData, nil
}

// FetchUserWithdrawals ...
func (service *LedgerService) FetchUserWithdrawals(repository database.ILedgerRepository, userID uuid.UUID) ([]dto.WithdrawalResponse, error) {
	var withdrawals []model.Withdrawal
	if err := repository.FetchByFieldName(&model.Withdrawal{UserID: userID}, &withdrawals); err != nil {
		return nil, err
	}
	responseData := []dto.WithdrawalResponse{}
	for _, withdrawal := range withdrawals {
		responseData = append(responseData, NormalizeWithdrawal(withdrawal))
	}
	return responseData, nil
}

func (service *LedgerService) withdrawalFee(amount decimal.Decimal) decimal.Decimal {
	percent := decimal.NewFromFloat(service.Config.WithdrawalFeePercent)
	if percent.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return amount.Mul(percent).Div(decimal.NewFromFloat(100))
}

func inputErr(message string) error {
	return appError.Err{
		ErrType: errorcode.INPUT_ERR,
		ErrCode: http.StatusBadRequest,
		Err:     errors.New(message),
	}
}
