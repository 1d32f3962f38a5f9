package services

import (
	"fmt"
	"strings"
	"time"

	Config "payledger/config"
	"payledger/database"
	"payledger/dto"
	"payledger/model"
	"payledger/utility/address"
	"payledger/utility/cache"
	"payledger/utility/constants"
	"payledger/utility/errorcode"
	"payledger/utility/logger"

	uuid "github.com/satori/go.uuid"
	"github.com/shopspring/decimal"
)

// RecoveryService ... Detects and resolves crypto payments stuck in PENDING.
// The sweep runs from the scheduler, operator-initiated actions come through
// the recovery endpoint. Every terminal transition is guarded on the current
// status so the sweep and an operator can never both resolve one payment.
type RecoveryService struct {
	Cache    *cache.Memory
	Config   Config.Data
	Notifier Notifier
}

func NewRecoveryService(memory *cache.Memory, config Config.Data, notifier Notifier) *RecoveryService {
	return &RecoveryService{
		Cache:    memory,
		Config:   config,
		Notifier: notifier,
	}
}

// systemActorID tags sweep-initiated audit rows, no human operator involved
var systemActorID = uuid.Nil

// AutoRecoverExpiredPayments ... One sweep pass. Each candidate is expired in
// its own transaction, a failure on one payment never blocks the rest of the
// batch.
func (service *RecoveryService) AutoRecoverExpiredPayments(repository database.ILedgerRepository) (dto.SweepReport, error) {
	report := dto.SweepReport{}
	now := time.Now()
	fallbackCutoff := now.Add(-time.Duration(service.expiryMinutes()) * time.Minute)

	var candidates []model.CryptoPayment
	if err := repository.FetchExpiredPaymentCandidates(&candidates, now, fallbackCutoff); err != nil {
		return report, err
	}
	report.Scanned = len(candidates)

	for _, payment := range candidates {
		if err := service.expirePayment(repository, payment); err != nil {
			report.Failed++
			logger.Error("Sweep could not expire payment %s : %s", payment.ID, err)
			continue
		}
		report.Recovered++
	}

	logger.Info("Expiry sweep done, scanned %d, expired %d, failed %d", report.Scanned, report.Recovered, report.Failed)
	return report, nil
}

func (service *RecoveryService) expirePayment(repository database.ILedgerRepository, payment model.CryptoPayment) error {
	reason := "Payment window elapsed without confirmation"

	tx := repository.Db().Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	if err := tx.Error; err != nil {
		return serverErr(err)
	}

	rows, err := repository.TransitionStatus(tx, &model.CryptoPayment{BaseModel: model.BaseModel{ID: payment.ID}}, model.PaymentStatus.PENDING, map[string]interface{}{
		"status":          model.PaymentStatus.EXPIRED,
		"recovery_reason": reason,
	})
	if err != nil {
		tx.Rollback()
		return err
	}
	if rows == 0 {
		// resolved by another writer between fetch and update, nothing to do
		tx.Rollback()
		return nil
	}

	if err := writeAudit(tx, systemActorID, constants.AUDIT_CRYPTO_PAYMENT_EXPIRED, "payment", payment.ID, map[string]interface{}{
		"currency": payment.Currency,
		"amount":   payment.Amount.String(),
	}); err != nil {
		tx.Rollback()
		return err
	}

	return commitTx(tx)
}

// RecoverPayment ... Operator-initiated PENDING -> REFUNDED with a mandatory
// reason. Books an audit row and notifies the payment's owner.
func (service *RecoveryService) RecoverPayment(repository database.ILedgerRepository, operatorID, paymentID uuid.UUID, reason string) (dto.RecoveryRecord, error) {
	record := dto.RecoveryRecord{}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return record, validationErr(errorcode.REASON_REQUIRED_MSG)
	}

	payment := model.CryptoPayment{}
	if err := repository.Get(paymentID, &payment); err != nil {
		return record, notFound(err, fmt.Sprintf("Payment %s not found", paymentID))
	}
	if model.IsTerminalPaymentStatus(payment.Status) {
		return record, invalidState(fmt.Sprintf("Payment %s is %s, only pending payments can be recovered", paymentID, payment.Status))
	}

	tx := repository.Db().Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	if err := tx.Error; err != nil {
		return record, serverErr(err)
	}

	rows, err := repository.TransitionStatus(tx, &model.CryptoPayment{BaseModel: model.BaseModel{ID: paymentID}}, model.PaymentStatus.PENDING, map[string]interface{}{
		"status":          model.PaymentStatus.REFUNDED,
		"recovery_reason": reason,
	})
	if err != nil {
		tx.Rollback()
		return record, err
	}
	if rows == 0 {
		tx.Rollback()
		return record, invalidState(fmt.Sprintf("Payment %s was resolved concurrently", paymentID))
	}

	if err := writeAudit(tx, operatorID, constants.AUDIT_CRYPTO_PAYMENT_REFUNDED, "payment", payment.ID, map[string]interface{}{
		"currency": payment.Currency,
		"amount":   payment.Amount.String(),
		"reason":   reason,
	}); err != nil {
		tx.Rollback()
		return record, err
	}

	if err := commitTx(tx); err != nil {
		return record, err
	}

	if service.Notifier != nil {
		if err := service.Notifier.Enqueue(dto.NotificationEvent{
			EventType:    constants.NOTIFY_PAYMENT_REFUNDED,
			UserID:       payment.UserID,
			ResourceType: "payment",
			ResourceID:   payment.ID,
			Currency:     payment.Currency,
			Message:      fmt.Sprintf("Your %s payment has been refunded : %s", payment.Currency, reason),
		}); err != nil {
			logger.Error("Could not enqueue refund notification for user %s : %s", payment.UserID, err)
		}
	}

	return dto.RecoveryRecord{
		PaymentID:   payment.ID,
		FromStatus:  model.PaymentStatus.PENDING,
		ToStatus:    model.PaymentStatus.REFUNDED,
		Reason:      reason,
		RecoveredAt: time.Now(),
	}, nil
}

// VerifyPaymentLegitimacy ... Read-only risk checks on a payment. Flags are
// advisory, nothing here mutates state.
func (service *RecoveryService) VerifyPaymentLegitimacy(repository database.ILedgerRepository, paymentID uuid.UUID) (dto.VerificationResult, error) {
	result := dto.VerificationResult{PaymentID: paymentID, Flags: []string{}}

	payment := model.CryptoPayment{}
	if err := repository.Get(paymentID, &payment); err != nil {
		return result, notFound(err, fmt.Sprintf("Payment %s not found", paymentID))
	}

	now := time.Now()
	result.Status = payment.Status
	result.CheckedAt = now

	if payment.Amount.LessThanOrEqual(decimal.Zero) {
		result.Flags = append(result.Flags, "non_positive_amount")
	}
	if !model.IsSupportedCurrency(payment.Currency) {
		result.Flags = append(result.Flags, "unsupported_currency")
	}
	if payment.PayAddress != "" {
		if check := address.Validate(payment.PayAddress, payment.Currency); !check.Valid {
			result.Flags = append(result.Flags, "invalid_address")
		}
	}
	if payment.Status == model.PaymentStatus.PENDING {
		if payment.ExpiresAt != nil && payment.ExpiresAt.Before(now) {
			result.Flags = append(result.Flags, "expired_window")
		}
		staleCutoff := now.Add(-2 * time.Duration(service.expiryMinutes()) * time.Minute)
		if payment.CreatedAt.Before(staleCutoff) {
			result.Flags = append(result.Flags, "stale")
		}
	}

	result.Legitimate = len(result.Flags) == 0
	return result, nil
}

// Capabilities ... Advertises the recovery actions and sweep settings
func (service *RecoveryService) Capabilities() dto.RecoveryCapabilities {
	return dto.RecoveryCapabilities{
		Actions:             []string{"recover", "verify", "sweep"},
		ExpiryMinutes:       service.expiryMinutes(),
		SweepCronExpression: service.Config.RecoveryCronInterval,
	}
}

func (service *RecoveryService) expiryMinutes() int {
	if service.Config.PaymentExpiryMinutes <= 0 {
		return 60
	}
	return service.Config.PaymentExpiryMinutes
}
