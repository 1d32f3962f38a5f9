package services

import (
	"payledger/model"
	"payledger/utility/appError"
	"payledger/utility/constants"
	"payledger/utility/errorcode"

	"github.com/stretchr/testify/require"
)

func (s *Suite) seedWithdrawal(amount, fee, total string) model.Withdrawal {
	withdrawal := model.Withdrawal{
		UserID:           testUserID,
		Currency:         constants.COIN_USDT,
		Address:          "0xce4B800c0aB49Dda535BCe18F87f81D13f142A3C",
		Amount:           decimalFromString(s.T(), amount),
		Fee:              decimalFromString(s.T(), fee),
		TotalAmount:      decimalFromString(s.T(), total),
		RequiresApproval: true,
		Status:           model.LedgerStatus.PENDING,
	}
	require.NoError(s.T(), s.DB.Create(&withdrawal).Error)
	return withdrawal
}

func (s *Suite) seedDeposit(amount string) model.Deposit {
	deposit := model.Deposit{
		UserID:   testUserID,
		Currency: constants.COIN_USDT,
		Amount:   decimalFromString(s.T(), amount),
		TxHash:   "0xabc123",
		Status:   model.LedgerStatus.PENDING,
	}
	require.NoError(s.T(), s.DB.Create(&deposit).Error)
	return deposit
}

func (s *Suite) TestRejectWithdrawalCreditsBalanceBackExactlyOnce() {
	s.seedBalance(testUserID, constants.COIN_USDT, "50")
	withdrawal := s.seedWithdrawal("100", "0", "100")

	service := NewApprovalService(s.Cache, s.Config, s.Notifier)
	rejected, err := service.RejectWithdrawal(s.Repository, withdrawal.ID, testAdminID, "suspicious destination")
	require.NoError(s.T(), err)
	require.Equal(s.T(), model.LedgerStatus.REJECTED, rejected.Status)
	require.NotNil(s.T(), rejected.RejectionReason)
	require.Equal(s.T(), "suspicious destination", *rejected.RejectionReason)

	balance := s.fetchBalance(testUserID, constants.COIN_USDT)
	require.True(s.T(), decimalFromString(s.T(), "150").Equal(balance.AvailableBalance))
	require.Equal(s.T(), 1, s.auditCount(constants.AUDIT_CRYPTO_WITHDRAWAL_REJECTED))
	require.Len(s.T(), s.Notifier.events, 1)
	require.Equal(s.T(), constants.NOTIFY_WITHDRAWAL_REJECTED, s.Notifier.events[0].EventType)

	// a second reject loses the PENDING guard, no double credit
	_, err = service.RejectWithdrawal(s.Repository, withdrawal.ID, testAdminID, "second look")
	require.Error(s.T(), err)
	require.Equal(s.T(), errorcode.INVALID_STATE, appError.Type(err))

	balance = s.fetchBalance(testUserID, constants.COIN_USDT)
	require.True(s.T(), decimalFromString(s.T(), "150").Equal(balance.AvailableBalance))
	require.Equal(s.T(), 1, s.auditCount(constants.AUDIT_CRYPTO_WITHDRAWAL_REJECTED))
	require.Len(s.T(), s.Notifier.events, 1)
}

func (s *Suite) TestRejectWithdrawalRequiresReason() {
	withdrawal := s.seedWithdrawal("100", "0", "100")

	service := NewApprovalService(s.Cache, s.Config, s.Notifier)
	_, err := service.RejectWithdrawal(s.Repository, withdrawal.ID, testAdminID, "   ")
	require.Error(s.T(), err)
	require.Equal(s.T(), errorcode.VALIDATION_ERR, appError.Type(err))

	stored := model.Withdrawal{}
	require.NoError(s.T(), s.DB.First(&stored, "id = ?", withdrawal.ID).Error)
	require.Equal(s.T(), model.LedgerStatus.PENDING, stored.Status)
}

func (s *Suite) TestApproveWithdrawalLeavesBalanceUntouched() {
	s.seedBalance(testUserID, constants.COIN_USDT, "25")
	withdrawal := s.seedWithdrawal("100", "0", "100")

	service := NewApprovalService(s.Cache, s.Config, s.Notifier)
	approved, err := service.ApproveWithdrawal(s.Repository, withdrawal.ID, testAdminID)
	require.NoError(s.T(), err)
	require.Equal(s.T(), model.LedgerStatus.APPROVED, approved.Status)
	require.NotNil(s.T(), approved.ReviewedBy)
	require.Equal(s.T(), testAdminID, *approved.ReviewedBy)

	// the reservation happened at request time, approval moves no funds
	balance := s.fetchBalance(testUserID, constants.COIN_USDT)
	require.True(s.T(), decimalFromString(s.T(), "25").Equal(balance.AvailableBalance))
	require.Equal(s.T(), 1, s.auditCount(constants.AUDIT_CRYPTO_WITHDRAWAL_APPROVED))
}

func (s *Suite) TestApproveDepositCreditsAmount() {
	deposit := s.seedDeposit("40")

	service := NewApprovalService(s.Cache, s.Config, s.Notifier)
	approved, err := service.ApproveDeposit(s.Repository, deposit.ID, testAdminID)
	require.NoError(s.T(), err)
	require.Equal(s.T(), model.LedgerStatus.APPROVED, approved.Status)

	// balance row did not exist before, first credit creates it
	balance := s.fetchBalance(testUserID, constants.COIN_USDT)
	require.True(s.T(), decimalFromString(s.T(), "40").Equal(balance.AvailableBalance))
	require.Equal(s.T(), 1, s.auditCount(constants.AUDIT_CRYPTO_DEPOSIT_APPROVED))
	require.Len(s.T(), s.Notifier.events, 1)
	require.Equal(s.T(), constants.NOTIFY_DEPOSIT_APPROVED, s.Notifier.events[0].EventType)
}

func (s *Suite) TestRejectDepositMovesNoFunds() {
	s.seedBalance(testUserID, constants.COIN_USDT, "10")
	deposit := s.seedDeposit("40")

	service := NewApprovalService(s.Cache, s.Config, s.Notifier)
	rejected, err := service.RejectDeposit(s.Repository, deposit.ID, testAdminID, "unverifiable source")
	require.NoError(s.T(), err)
	require.Equal(s.T(), model.LedgerStatus.REJECTED, rejected.Status)

	balance := s.fetchBalance(testUserID, constants.COIN_USDT)
	require.True(s.T(), decimalFromString(s.T(), "10").Equal(balance.AvailableBalance))
	require.Equal(s.T(), 1, s.auditCount(constants.AUDIT_CRYPTO_DEPOSIT_REJECTED))
}

func (s *Suite) TestRejectNonPendingDepositFails() {
	deposit := s.seedDeposit("40")
	require.NoError(s.T(), s.DB.Model(&deposit).Update("status", model.LedgerStatus.APPROVED).Error)

	service := NewApprovalService(s.Cache, s.Config, s.Notifier)
	_, err := service.RejectDeposit(s.Repository, deposit.ID, testAdminID, "too late")
	require.Error(s.T(), err)
	require.Equal(s.T(), errorcode.INVALID_STATE, appError.Type(err))
	require.Equal(s.T(), 0, s.auditCount(constants.AUDIT_CRYPTO_DEPOSIT_REJECTED))
	require.Empty(s.T(), s.Notifier.events)
}

func (s *Suite) TestApproveMissingDepositReturnsNotFound() {
	service := NewApprovalService(s.Cache, s.Config, s.Notifier)
	_, err := service.ApproveDeposit(s.Repository, testUserID, testAdminID)
	require.Error(s.T(), err)
	require.Equal(s.T(), errorcode.RECORD_NOT_FOUND, appError.Type(err))
}

func (s *Suite) TestPendingReviewListsOldestFirst() {
	first := s.seedDeposit("1")
	second := s.seedDeposit("2")
	s.seedWithdrawal("5", "0", "5")

	approvedDeposit := s.seedDeposit("3")
	require.NoError(s.T(), s.DB.Model(&approvedDeposit).Update("status", model.LedgerStatus.APPROVED).Error)

	service := NewApprovalService(s.Cache, s.Config, s.Notifier)
	review, err := service.PendingReview(s.Repository)
	require.NoError(s.T(), err)
	require.Len(s.T(), review.Deposits, 2)
	require.Len(s.T(), review.Withdrawals, 1)
	require.Equal(s.T(), first.ID, review.Deposits[0].ID)
	require.Equal(s.T(), second.ID, review.Deposits[1].ID)
}

func (s *Suite) TestStatsGroupsByStatusAndCurrency() {
	s.seedDeposit("10")
	s.seedDeposit("20")
	approved := s.seedDeposit("5")
	require.NoError(s.T(), s.DB.Model(&approved).Update("status", model.LedgerStatus.APPROVED).Error)

	service := NewApprovalService(s.Cache, s.Config, s.Notifier)
	stats, err := service.Stats(s.Repository)
	require.NoError(s.T(), err)

	byStatus := map[string]float64{}
	counts := map[string]int64{}
	for _, stat := range stats.Deposits {
		byStatus[stat.Status] = stat.Total
		counts[stat.Status] = stat.Count
	}
	require.Equal(s.T(), float64(30), byStatus[model.LedgerStatus.PENDING])
	require.Equal(s.T(), int64(2), counts[model.LedgerStatus.PENDING])
	require.Equal(s.T(), float64(5), byStatus[model.LedgerStatus.APPROVED])

	// a second call within the configured window serves the cached snapshot
	s.seedDeposit("100")
	cached, err := service.Stats(s.Repository)
	require.NoError(s.T(), err)
	require.Equal(s.T(), stats, cached)
}
