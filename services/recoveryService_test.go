package services

import (
	"time"

	"payledger/model"
	"payledger/utility/appError"
	"payledger/utility/constants"
	"payledger/utility/errorcode"

	"github.com/stretchr/testify/require"
)

func (s *Suite) seedPayment(status string, expiresAt *time.Time, createdAt time.Time) model.CryptoPayment {
	payment := model.CryptoPayment{
		UserID:     testUserID,
		Currency:   constants.COIN_BTC,
		Amount:     decimalFromString(s.T(), "0.5"),
		PayAddress: "1F824Xzdnv3bu29npK7ZZaN9aPAnN31kaD",
		Status:     status,
		ExpiresAt:  expiresAt,
	}
	payment.CreatedAt = createdAt
	require.NoError(s.T(), s.DB.Create(&payment).Error)
	return payment
}

func (s *Suite) TestSweepExpiresOnlyElapsedPayments() {
	now := time.Now()
	past := now.Add(-10 * time.Minute)
	future := now.Add(30 * time.Minute)
	old := now.Add(-3 * time.Hour)

	// three candidates : two past their explicit expiry, one with no expiry
	// but older than the fallback window
	expired1 := s.seedPayment(model.PaymentStatus.PENDING, &past, now.Add(-time.Hour))
	expired2 := s.seedPayment(model.PaymentStatus.PENDING, &past, now.Add(-time.Hour))
	expired3 := s.seedPayment(model.PaymentStatus.PENDING, nil, old)

	// two that must survive : one still inside its window, one already terminal
	live := s.seedPayment(model.PaymentStatus.PENDING, &future, now)
	confirmed := s.seedPayment(model.PaymentStatus.CONFIRMED, &past, now.Add(-time.Hour))

	service := NewRecoveryService(s.Cache, s.Config, s.Notifier)
	report, err := service.AutoRecoverExpiredPayments(s.Repository)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 3, report.Scanned)
	require.Equal(s.T(), 3, report.Recovered)
	require.Equal(s.T(), 0, report.Failed)

	for _, id := range []string{expired1.ID.String(), expired2.ID.String(), expired3.ID.String()} {
		stored := model.CryptoPayment{}
		require.NoError(s.T(), s.DB.First(&stored, "id = ?", id).Error)
		require.Equal(s.T(), model.PaymentStatus.EXPIRED, stored.Status)
		require.NotNil(s.T(), stored.RecoveryReason)
	}

	storedLive := model.CryptoPayment{}
	require.NoError(s.T(), s.DB.First(&storedLive, "id = ?", live.ID.String()).Error)
	require.Equal(s.T(), model.PaymentStatus.PENDING, storedLive.Status)

	storedConfirmed := model.CryptoPayment{}
	require.NoError(s.T(), s.DB.First(&storedConfirmed, "id = ?", confirmed.ID.String()).Error)
	require.Equal(s.T(), model.PaymentStatus.CONFIRMED, storedConfirmed.Status)

	require.Equal(s.T(), 3, s.auditCount(constants.AUDIT_CRYPTO_PAYMENT_EXPIRED))
}

func (s *Suite) TestRecoverPaymentRefundsWithReason() {
	now := time.Now()
	payment := s.seedPayment(model.PaymentStatus.PENDING, nil, now.Add(-2*time.Hour))

	service := NewRecoveryService(s.Cache, s.Config, s.Notifier)
	record, err := service.RecoverPayment(s.Repository, testAdminID, payment.ID, "processor never confirmed")
	require.NoError(s.T(), err)
	require.Equal(s.T(), model.PaymentStatus.PENDING, record.FromStatus)
	require.Equal(s.T(), model.PaymentStatus.REFUNDED, record.ToStatus)

	stored := model.CryptoPayment{}
	require.NoError(s.T(), s.DB.First(&stored, "id = ?", payment.ID.String()).Error)
	require.Equal(s.T(), model.PaymentStatus.REFUNDED, stored.Status)
	require.NotNil(s.T(), stored.RecoveryReason)
	require.Equal(s.T(), "processor never confirmed", *stored.RecoveryReason)

	require.Equal(s.T(), 1, s.auditCount(constants.AUDIT_CRYPTO_PAYMENT_REFUNDED))
	require.Len(s.T(), s.Notifier.events, 1)
	require.Equal(s.T(), constants.NOTIFY_PAYMENT_REFUNDED, s.Notifier.events[0].EventType)
}

func (s *Suite) TestRecoverPaymentRequiresReason() {
	payment := s.seedPayment(model.PaymentStatus.PENDING, nil, time.Now())

	service := NewRecoveryService(s.Cache, s.Config, s.Notifier)
	_, err := service.RecoverPayment(s.Repository, testAdminID, payment.ID, "")
	require.Error(s.T(), err)
	require.Equal(s.T(), errorcode.VALIDATION_ERR, appError.Type(err))
}

func (s *Suite) TestRecoverTerminalPaymentFails() {
	payment := s.seedPayment(model.PaymentStatus.CONFIRMED, nil, time.Now())

	service := NewRecoveryService(s.Cache, s.Config, s.Notifier)
	_, err := service.RecoverPayment(s.Repository, testAdminID, payment.ID, "late refund")
	require.Error(s.T(), err)
	require.Equal(s.T(), errorcode.INVALID_STATE, appError.Type(err))
	require.Equal(s.T(), 0, s.auditCount(constants.AUDIT_CRYPTO_PAYMENT_REFUNDED))
}

func (s *Suite) TestVerifyFlagsExpiredAndStalePayment() {
	now := time.Now()
	past := now.Add(-5 * time.Minute)
	payment := s.seedPayment(model.PaymentStatus.PENDING, &past, now.Add(-5*time.Hour))

	service := NewRecoveryService(s.Cache, s.Config, s.Notifier)
	result, err := service.VerifyPaymentLegitimacy(s.Repository, payment.ID)
	require.NoError(s.T(), err)
	require.False(s.T(), result.Legitimate)
	require.Contains(s.T(), result.Flags, "expired_window")
	require.Contains(s.T(), result.Flags, "stale")
}

func (s *Suite) TestVerifyCleanPayment() {
	now := time.Now()
	future := now.Add(30 * time.Minute)
	payment := s.seedPayment(model.PaymentStatus.PENDING, &future, now)

	service := NewRecoveryService(s.Cache, s.Config, s.Notifier)
	result, err := service.VerifyPaymentLegitimacy(s.Repository, payment.ID)
	require.NoError(s.T(), err)
	require.True(s.T(), result.Legitimate)
	require.Empty(s.T(), result.Flags)
}

func (s *Suite) TestCapabilitiesReportConfiguredWindow() {
	service := NewRecoveryService(s.Cache, s.Config, s.Notifier)
	capabilities := service.Capabilities()
	require.Equal(s.T(), 60, capabilities.ExpiryMinutes)
	require.Equal(s.T(), "@every 10m", capabilities.SweepCronExpression)
	require.Contains(s.T(), capabilities.Actions, "recover")
	require.Contains(s.T(), capabilities.Actions, "sweep")
}
