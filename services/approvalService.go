package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	Config "payledger/config"
	"payledger/database"
	"payledger/dto"
	"payledger/model"
	"payledger/utility/appError"
	"payledger/utility/cache"
	"payledger/utility/constants"
	"payledger/utility/errorcode"
	"payledger/utility/logger"

	"github.com/jinzhu/gorm"
	uuid "github.com/satori/go.uuid"
)

// ApprovalService ... Admin-side state transitions for deposits and
// withdrawals. Stateless over the ledger store, safe to run from any number
// of concurrent request handlers. A losing race on the PENDING guard is a
// legitimate outcome and surfaces as INVALID_STATE.
type ApprovalService struct {
	Cache    *cache.Memory
	Config   Config.Data
	Notifier Notifier
}

func NewApprovalService(memory *cache.Memory, config Config.Data, notifier Notifier) *ApprovalService {
	return &ApprovalService{
		Cache:    memory,
		Config:   config,
		Notifier: notifier,
	}
}

// ApproveDeposit ... PENDING -> APPROVED, credits the deposit amount to the
// user balance within the same transaction and books an audit entry.
func (service *ApprovalService) ApproveDeposit(repository database.ILedgerRepository, depositID, adminID uuid.UUID) (model.Deposit, error) {
	deposit := model.Deposit{}
	if err := repository.Get(depositID, &deposit); err != nil {
		return deposit, notFound(err, fmt.Sprintf("Deposit %s not found", depositID))
	}
	if model.IsTerminalLedgerStatus(deposit.Status) {
		return deposit, invalidState(fmt.Sprintf("Deposit %s is %s, only pending deposits can be approved", depositID, deposit.Status))
	}

	now := time.Now()
	tx := repository.Db().Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	if err := tx.Error; err != nil {
		return deposit, serverErr(err)
	}

	rows, err := repository.TransitionStatus(tx, &model.Deposit{BaseModel: model.BaseModel{ID: depositID}}, model.LedgerStatus.PENDING, map[string]interface{}{
		"status":      model.LedgerStatus.APPROVED,
		"reviewed_by": adminID,
		"reviewed_at": now,
	})
	if err != nil {
		tx.Rollback()
		return deposit, err
	}
	if rows == 0 {
		tx.Rollback()
		return deposit, invalidState(fmt.Sprintf("Deposit %s was reviewed concurrently", depositID))
	}

	if err := repository.CreditBalance(tx, deposit.UserID, deposit.Currency, deposit.Amount); err != nil {
		tx.Rollback()
		return deposit, err
	}

	if err := writeAudit(tx, adminID, constants.AUDIT_CRYPTO_DEPOSIT_APPROVED, "deposit", deposit.ID, map[string]interface{}{
		"currency": deposit.Currency,
		"amount":   deposit.Amount.String(),
	}); err != nil {
		tx.Rollback()
		return deposit, err
	}

	if err := commitTx(tx); err != nil {
		return deposit, err
	}

	deposit.Status = model.LedgerStatus.APPROVED
	deposit.ReviewedBy = &adminID
	deposit.ReviewedAt = &now

	service.notify(dto.NotificationEvent{
		EventType:    constants.NOTIFY_DEPOSIT_APPROVED,
		UserID:       deposit.UserID,
		ResourceType: "deposit",
		ResourceID:   deposit.ID,
		Currency:     deposit.Currency,
		Message:      fmt.Sprintf("Your %s deposit has been approved", deposit.Currency),
	})
	return deposit, nil
}

// RejectDeposit ... PENDING -> REJECTED with a mandatory reason. No balance
// movement, inbound funds were never credited.
func (service *ApprovalService) RejectDeposit(repository database.ILedgerRepository, depositID, adminID uuid.UUID, reason string) (model.Deposit, error) {
	deposit := model.Deposit{}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return deposit, validationErr(errorcode.REASON_REQUIRED_MSG)
	}

	if err := repository.Get(depositID, &deposit); err != nil {
		return deposit, notFound(err, fmt.Sprintf("Deposit %s not found", depositID))
	}
	if model.IsTerminalLedgerStatus(deposit.Status) {
		return deposit, invalidState(fmt.Sprintf("Deposit %s is %s, only pending deposits can be rejected", depositID, deposit.Status))
	}

	now := time.Now()
	tx := repository.Db().Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	if err := tx.Error; err != nil {
		return deposit, serverErr(err)
	}

	rows, err := repository.TransitionStatus(tx, &model.Deposit{BaseModel: model.BaseModel{ID: depositID}}, model.LedgerStatus.PENDING, map[string]interface{}{
		"status":           model.LedgerStatus.REJECTED,
		"reviewed_by":      adminID,
		"reviewed_at":      now,
		"rejection_reason": reason,
	})
	if err != nil {
		tx.Rollback()
		return deposit, err
	}
	if rows == 0 {
		tx.Rollback()
		return deposit, invalidState(fmt.Sprintf("Deposit %s was reviewed concurrently", depositID))
	}

	if err := writeAudit(tx, adminID, constants.AUDIT_CRYPTO_DEPOSIT_REJECTED, "deposit", deposit.ID, map[string]interface{}{
		"currency": deposit.Currency,
		"amount":   deposit.Amount.String(),
		"reason":   reason,
	}); err != nil {
		tx.Rollback()
		return deposit, err
	}

	if err := commitTx(tx); err != nil {
		return deposit, err
	}

	deposit.Status = model.LedgerStatus.REJECTED
	deposit.ReviewedBy = &adminID
	deposit.ReviewedAt = &now
	deposit.RejectionReason = &reason

	service.notify(dto.NotificationEvent{
		EventType:    constants.NOTIFY_DEPOSIT_REJECTED,
		UserID:       deposit.UserID,
		ResourceType: "deposit",
		ResourceID:   deposit.ID,
		Currency:     deposit.Currency,
		Message:      fmt.Sprintf("Your %s deposit was rejected : %s", deposit.Currency, reason),
	})
	return deposit, nil
}

// ApproveWithdrawal ... PENDING -> APPROVED. The balance was reserved when
// the request was created, approval only releases it for dispatch.
func (service *ApprovalService) ApproveWithdrawal(repository database.ILedgerRepository, withdrawalID, adminID uuid.UUID) (model.Withdrawal, error) {
	withdrawal := model.Withdrawal{}
	if err := repository.Get(withdrawalID, &withdrawal); err != nil {
		return withdrawal, notFound(err, fmt.Sprintf("Withdrawal %s not found", withdrawalID))
	}
	if model.IsTerminalLedgerStatus(withdrawal.Status) {
		return withdrawal, invalidState(fmt.Sprintf("Withdrawal %s is %s, only pending withdrawals can be approved", withdrawalID, withdrawal.Status))
	}

	now := time.Now()
	tx := repository.Db().Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	if err := tx.Error; err != nil {
		return withdrawal, serverErr(err)
	}

	rows, err := repository.TransitionStatus(tx, &model.Withdrawal{BaseModel: model.BaseModel{ID: withdrawalID}}, model.LedgerStatus.PENDING, map[string]interface{}{
		"status":      model.LedgerStatus.APPROVED,
		"reviewed_by": adminID,
		"reviewed_at": now,
	})
	if err != nil {
		tx.Rollback()
		return withdrawal, err
	}
	if rows == 0 {
		tx.Rollback()
		return withdrawal, invalidState(fmt.Sprintf("Withdrawal %s was reviewed concurrently", withdrawalID))
	}

	if err := writeAudit(tx, adminID, constants.AUDIT_CRYPTO_WITHDRAWAL_APPROVED, "withdrawal", withdrawal.ID, map[string]interface{}{
		"currency":    withdrawal.Currency,
		"totalAmount": withdrawal.TotalAmount.String(),
		"address":     withdrawal.Address,
	}); err != nil {
		tx.Rollback()
		return withdrawal, err
	}

	if err := commitTx(tx); err != nil {
		return withdrawal, err
	}

	withdrawal.Status = model.LedgerStatus.APPROVED
	withdrawal.ReviewedBy = &adminID
	withdrawal.ReviewedAt = &now

	service.notify(dto.NotificationEvent{
		EventType:    constants.NOTIFY_WITHDRAWAL_APPROVED,
		UserID:       withdrawal.UserID,
		ResourceType: "withdrawal",
		ResourceID:   withdrawal.ID,
		Currency:     withdrawal.Currency,
		Message:      fmt.Sprintf("Your %s withdrawal has been approved", withdrawal.Currency),
	})
	return withdrawal, nil
}

// RejectWithdrawal ... PENDING -> REJECTED with a mandatory reason. The
// reserved TotalAmount is credited back inside the same transaction. The
// PENDING guard makes the credit exactly-once, a concurrent second reject
// loses the guard and performs no mutation.
func (service *ApprovalService) RejectWithdrawal(repository database.ILedgerRepository, withdrawalID, adminID uuid.UUID, reason string) (model.Withdrawal, error) {
	withdrawal := model.Withdrawal{}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return withdrawal, validationErr(errorcode.REASON_REQUIRED_MSG)
	}

	if err := repository.Get(withdrawalID, &withdrawal); err != nil {
		return withdrawal, notFound(err, fmt.Sprintf("Withdrawal %s not found", withdrawalID))
	}
	if model.IsTerminalLedgerStatus(withdrawal.Status) {
		return withdrawal, invalidState(fmt.Sprintf("Withdrawal %s is %s, only pending withdrawals can be rejected", withdrawalID, withdrawal.Status))
	}

	now := time.Now()
	tx := repository.Db().Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	if err := tx.Error; err != nil {
		return withdrawal, serverErr(err)
	}

	rows, err := repository.TransitionStatus(tx, &model.Withdrawal{BaseModel: model.BaseModel{ID: withdrawalID}}, model.LedgerStatus.PENDING, map[string]interface{}{
		"status":           model.LedgerStatus.REJECTED,
		"reviewed_by":      adminID,
		"reviewed_at":      now,
		"rejection_reason": reason,
	})
	if err != nil {
		tx.Rollback()
		return withdrawal, err
	}
	if rows == 0 {
		tx.Rollback()
		return withdrawal, invalidState(fmt.Sprintf("Withdrawal %s was reviewed concurrently", withdrawalID))
	}

	if err := repository.CreditBalance(tx, withdrawal.UserID, withdrawal.Currency, withdrawal.TotalAmount); err != nil {
		tx.Rollback()
		return withdrawal, err
	}

	if err := writeAudit(tx, adminID, constants.AUDIT_CRYPTO_WITHDRAWAL_REJECTED, "withdrawal", withdrawal.ID, map[string]interface{}{
		"currency":    withdrawal.Currency,
		"totalAmount": withdrawal.TotalAmount.String(),
		"reason":      reason,
	}); err != nil {
		tx.Rollback()
		return withdrawal, err
	}

	if err := commitTx(tx); err != nil {
		return withdrawal, err
	}

	withdrawal.Status = model.LedgerStatus.REJECTED
	withdrawal.ReviewedBy = &adminID
	withdrawal.ReviewedAt = &now
	withdrawal.RejectionReason = &reason

	service.notify(dto.NotificationEvent{
		EventType:    constants.NOTIFY_WITHDRAWAL_REJECTED,
		UserID:       withdrawal.UserID,
		ResourceType: "withdrawal",
		ResourceID:   withdrawal.ID,
		Currency:     withdrawal.Currency,
		Message:      fmt.Sprintf("Your %s withdrawal was rejected : %s", withdrawal.Currency, reason),
	})
	return withdrawal, nil
}

// PendingReview ... Deposits and withdrawals awaiting review
func (service *ApprovalService) PendingReview(repository database.ILedgerRepository) (dto.PendingReviewResponse, error) {
	responseData := dto.PendingReviewResponse{
		Deposits:    []dto.DepositResponse{},
		Withdrawals: []dto.WithdrawalResponse{},
	}

	var deposits []model.Deposit
	if err := repository.FetchPendingDeposits(&deposits); err != nil {
		return responseData, err
	}
	var withdrawals []model.Withdrawal
	if err := repository.FetchPendingWithdrawals(&withdrawals); err != nil {
		return responseData, err
	}

	for _, deposit := range deposits {
		responseData.Deposits = append(responseData.Deposits, NormalizeDeposit(deposit))
	}
	for _, withdrawal := range withdrawals {
		responseData.Withdrawals = append(responseData.Withdrawals, NormalizeWithdrawal(withdrawal))
	}
	return responseData, nil
}

// Stats ... Aggregated counts and sums by status and currency, cached briefly
func (service *ApprovalService) Stats(repository database.ILedgerRepository) (dto.LedgerStatsResponse, error) {
	const statsCacheKey = "admin-crypto-stats"

	if cached := service.Cache.Get(statsCacheKey); cached != nil {
		if stats, ok := cached.(dto.LedgerStatsResponse); ok {
			return stats, nil
		}
	}

	responseData := dto.LedgerStatsResponse{
		Deposits:    []dto.StatusCurrencyStat{},
		Withdrawals: []dto.StatusCurrencyStat{},
	}
	if err := repository.DepositStats(&responseData.Deposits); err != nil {
		return responseData, err
	}
	if err := repository.WithdrawalStats(&responseData.Withdrawals); err != nil {
		return responseData, err
	}

	if ttl := time.Duration(service.Config.StatsCacheSeconds) * time.Second; ttl > 0 {
		service.Cache.SetWithExpiry(statsCacheKey, responseData, ttl)
	} else {
		service.Cache.Set(statsCacheKey, responseData, true)
	}
	return responseData, nil
}

// writeAudit ... Books the audit row inside the caller's transaction so the
// trail commits or rolls back with the state change it describes
func writeAudit(tx *gorm.DB, actorID uuid.UUID, action, resourceType string, resourceID uuid.UUID, details map[string]interface{}) error {
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return serverErr(err)
	}
	auditLog := model.AuditLog{
		ActorID:      actorID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Details:      string(detailsJSON),
	}
	if err := tx.Create(&auditLog).Error; err != nil {
		logger.Error("Error writing audit log for %s on %s %s : %s", action, resourceType, resourceID, err)
		return serverErr(err)
	}
	return nil
}

func (service *ApprovalService) notify(event dto.NotificationEvent) {
	if service.Notifier == nil {
		return
	}
	if err := service.Notifier.Enqueue(event); err != nil {
		logger.Error("Could not enqueue notification %s for user %s : %s", event.EventType, event.UserID, err)
	}
}

func notFound(err error, message string) error {
	if appErr, ok := err.(appError.Err); ok && appErr.ErrType == errorcode.RECORD_NOT_FOUND {
		return appError.Err{
			ErrType: errorcode.RECORD_NOT_FOUND,
			ErrCode: http.StatusNotFound,
			Err:     errors.New(message),
		}
	}
	return err
}

func invalidState(message string) error {
	return appError.Err{
		ErrType: errorcode.INVALID_STATE,
		ErrCode: http.StatusBadRequest,
		Err:     errors.New(message),
	}
}

func validationErr(message string) error {
	return appError.Err{
		ErrType: errorcode.VALIDATION_ERR,
		ErrCode: http.StatusBadRequest,
		Err:     errors.New(message),
	}
}

func commitTx(tx *gorm.DB) error {
	if err := tx.Commit().Error; err != nil {
		return serverErr(err)
	}
	return nil
}

func serverErr(err error) error {
	return appError.Err{
		ErrType: errorcode.SERVER_ERR,
		ErrCode: http.StatusInternalServerError,
		Err:     err,
	}
}
