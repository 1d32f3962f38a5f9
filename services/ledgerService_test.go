package services

import (
	"payledger/model"
	"payledger/utility/appError"
	"payledger/utility/constants"
	"payledger/utility/errorcode"

	"github.com/stretchr/testify/require"
)

func (s *Suite) TestCreateWithdrawalReservesBalance() {
	s.seedBalance(testUserID, constants.COIN_ETH, "3")

	service := NewLedgerService(s.Cache, s.Config, s.Notifier)
	withdrawal, err := service.CreateWithdrawal(s.Repository, testUserID, model.CreateWithdrawalRequest{
		Currency: "eth",
		Address:  "0xce4B800c0aB49Dda535BCe18F87f81D13f142A3C",
		Amount:   2,
	})
	require.NoError(s.T(), err)
	require.Equal(s.T(), constants.COIN_ETH, withdrawal.Currency)
	require.True(s.T(), decimalFromString(s.T(), "2").Equal(withdrawal.TotalAmount))

	balance := s.fetchBalance(testUserID, constants.COIN_ETH)
	require.True(s.T(), decimalFromString(s.T(), "1").Equal(balance.AvailableBalance))
}

func (s *Suite) TestCreateWithdrawalBelowThresholdAutoApproves() {
	s.seedBalance(testUserID, constants.COIN_USDT, "2000")

	// suite threshold is 1000, a 100 USDT withdrawal skips review
	service := NewLedgerService(s.Cache, s.Config, s.Notifier)
	withdrawal, err := service.CreateWithdrawal(s.Repository, testUserID, model.CreateWithdrawalRequest{
		Currency: constants.COIN_USDT,
		Address:  "0xce4B800c0aB49Dda535BCe18F87f81D13f142A3C",
		Amount:   100,
	})
	require.NoError(s.T(), err)
	require.False(s.T(), withdrawal.RequiresApproval)
	require.Equal(s.T(), model.LedgerStatus.APPROVED, withdrawal.Status)

	// the stored row carries the decision, not a column default
	stored := model.Withdrawal{}
	require.NoError(s.T(), s.DB.First(&stored, "id = ?", withdrawal.ID).Error)
	require.False(s.T(), stored.RequiresApproval)
	require.Equal(s.T(), model.LedgerStatus.APPROVED, stored.Status)

	large, err := service.CreateWithdrawal(s.Repository, testUserID, model.CreateWithdrawalRequest{
		Currency: constants.COIN_USDT,
		Address:  "0xce4B800c0aB49Dda535BCe18F87f81D13f142A3C",
		Amount:   1500,
	})
	require.NoError(s.T(), err)
	require.True(s.T(), large.RequiresApproval)
	require.Equal(s.T(), model.LedgerStatus.PENDING, large.Status)
}

func (s *Suite) TestCreateWithdrawalInsufficientBalance() {
	s.seedBalance(testUserID, constants.COIN_ETH, "1")

	service := NewLedgerService(s.Cache, s.Config, s.Notifier)
	_, err := service.CreateWithdrawal(s.Repository, testUserID, model.CreateWithdrawalRequest{
		Currency: constants.COIN_ETH,
		Address:  "0xce4B800c0aB49Dda535BCe18F87f81D13f142A3C",
		Amount:   2,
	})
	require.Error(s.T(), err)
	require.Equal(s.T(), errorcode.INPUT_ERR, appError.Type(err))

	// nothing booked, nothing debited
	var count int
	require.NoError(s.T(), s.DB.Model(&model.Withdrawal{}).Count(&count).Error)
	require.Equal(s.T(), 0, count)
	balance := s.fetchBalance(testUserID, constants.COIN_ETH)
	require.True(s.T(), decimalFromString(s.T(), "1").Equal(balance.AvailableBalance))
}

func (s *Suite) TestCreateWithdrawalRejectsBadAddress() {
	s.seedBalance(testUserID, constants.COIN_ETH, "5")

	service := NewLedgerService(s.Cache, s.Config, s.Notifier)
	_, err := service.CreateWithdrawal(s.Repository, testUserID, model.CreateWithdrawalRequest{
		Currency: constants.COIN_ETH,
		Address:  "not-an-address",
		Amount:   1,
	})
	require.Error(s.T(), err)
	require.Equal(s.T(), errorcode.INPUT_ERR, appError.Type(err))
}

func (s *Suite) TestCreateWithdrawalRejectsUnknownCurrency() {
	service := NewLedgerService(s.Cache, s.Config, s.Notifier)
	_, err := service.CreateWithdrawal(s.Repository, testUserID, model.CreateWithdrawalRequest{
		Currency: "DOGE",
		Address:  "DH5yaieqoZN36fDVciNyRueRGvGLR3mr7L",
		Amount:   1,
	})
	require.Error(s.T(), err)
	require.Equal(s.T(), errorcode.INPUT_ERR, appError.Type(err))
}

func (s *Suite) TestRecordDepositIdempotentOnTxHash() {
	service := NewLedgerService(s.Cache, s.Config, s.Notifier)

	request := model.DepositIPNRequest{
		UserID:   testUserID,
		Currency: constants.COIN_BTC,
		Amount:   0.25,
		TxHash:   "f4184fc596403b9d638783cf57adfe4c75c605f6356fbc91338530e9831e9e16",
	}
	first, err := service.RecordDeposit(s.Repository, request)
	require.NoError(s.T(), err)
	require.Equal(s.T(), model.LedgerStatus.PENDING, first.Status)

	replay, err := service.RecordDeposit(s.Repository, request)
	require.NoError(s.T(), err)
	require.Equal(s.T(), first.ID, replay.ID)

	var count int
	require.NoError(s.T(), s.DB.Model(&model.Deposit{}).Count(&count).Error)
	require.Equal(s.T(), 1, count)
}

func (s *Suite) TestFetchUserWithdrawalsScopedToOwner() {
	s.seedBalance(testUserID, constants.COIN_ETH, "10")
	s.seedBalance(testAdminID, constants.COIN_ETH, "10")

	service := NewLedgerService(s.Cache, s.Config, s.Notifier)
	_, err := service.CreateWithdrawal(s.Repository, testUserID, model.CreateWithdrawalRequest{
		Currency: constants.COIN_ETH,
		Address:  "0xce4B800c0aB49Dda535BCe18F87f81D13f142A3C",
		Amount:   1,
	})
	require.NoError(s.T(), err)
	_, err = service.CreateWithdrawal(s.Repository, testAdminID, model.CreateWithdrawalRequest{
		Currency: constants.COIN_ETH,
		Address:  "0xce4B800c0aB49Dda535BCe18F87f81D13f142A3C",
		Amount:   1,
	})
	require.NoError(s.T(), err)

	mine, err := service.FetchUserWithdrawals(s.Repository, testUserID)
	require.NoError(s.T(), err)
	require.Len(s.T(), mine, 1)
	require.Equal(s.T(), testUserID, mine[0].UserID)
}
