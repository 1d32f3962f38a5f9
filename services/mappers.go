package services

import (
	"payledger/dto"
	"payledger/model"
	"payledger/utility/money"
)

// NormalizeDeposit ... Converts the stored deposit to its wire shape with
// decimal amounts serialized as plain numbers
func NormalizeDeposit(deposit model.Deposit) dto.DepositResponse {
	return dto.DepositResponse{
		ID:              deposit.ID,
		UserID:          deposit.UserID,
		Currency:        deposit.Currency,
		Amount:          money.Serialize(deposit.Amount),
		TxHash:          deposit.TxHash,
		Status:          deposit.Status,
		ReviewedBy:      deposit.ReviewedBy,
		ReviewedAt:      deposit.ReviewedAt,
		RejectionReason: deposit.RejectionReason,
		CreatedAt:       deposit.CreatedAt,
	}
}

// NormalizeWithdrawal ...
func NormalizeWithdrawal(withdrawal model.Withdrawal) dto.WithdrawalResponse {
	return dto.WithdrawalResponse{
		ID:               withdrawal.ID,
		UserID:           withdrawal.UserID,
		Currency:         withdrawal.Currency,
		Address:          withdrawal.Address,
		Amount:           money.Serialize(withdrawal.Amount),
		Fee:              money.Serialize(withdrawal.Fee),
		TotalAmount:      money.Serialize(withdrawal.TotalAmount),
		RequiresApproval: withdrawal.RequiresApproval,
		Status:           withdrawal.Status,
		ReviewedBy:       withdrawal.ReviewedBy,
		ReviewedAt:       withdrawal.ReviewedAt,
		RejectionReason:  withdrawal.RejectionReason,
		CreatedAt:        withdrawal.CreatedAt,
	}
}
