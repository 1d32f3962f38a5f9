package dto

import (
	"time"

	uuid "github.com/satori/go.uuid"
)

// DepositResponse ... Wire shape of a deposit, amounts already decimal-serialized
type DepositResponse struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"userId"`
	Currency        string     `json:"currency"`
	Amount          float64    `json:"amount"`
	TxHash          string     `json:"txHash,omitempty"`
	Status          string     `json:"status"`
	ReviewedBy      *uuid.UUID `json:"reviewedBy,omitempty"`
	ReviewedAt      *time.Time `json:"reviewedAt,omitempty"`
	RejectionReason *string    `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// WithdrawalResponse ...
type WithdrawalResponse struct {
	ID               uuid.UUID  `json:"id"`
	UserID           uuid.UUID  `json:"userId"`
	Currency         string     `json:"currency"`
	Address          string     `json:"address"`
	Amount           float64    `json:"amount"`
	Fee              float64    `json:"fee"`
	TotalAmount      float64    `json:"totalAmount"`
	RequiresApproval bool       `json:"requiresApproval"`
	Status           string     `json:"status"`
	ReviewedBy       *uuid.UUID `json:"reviewedBy,omitempty"`
	ReviewedAt       *time.Time `json:"reviewedAt,omitempty"`
	RejectionReason  *string    `json:"rejectionReason,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// PendingReviewResponse ... Payload of GET /admin/crypto/pending
type PendingReviewResponse struct {
	Deposits    []DepositResponse    `json:"deposits"`
	Withdrawals []WithdrawalResponse `json:"withdrawals"`
}

// StatusCurrencyStat ... One aggregation bucket of GET /admin/crypto/stats
type StatusCurrencyStat struct {
	Status   string  `json:"status"`
	Currency string  `json:"currency"`
	Count    int64   `json:"count"`
	Total    float64 `json:"total"`
}

// LedgerStatsResponse ...
type LedgerStatsResponse struct {
	Deposits    []StatusCurrencyStat `json:"deposits"`
	Withdrawals []StatusCurrencyStat `json:"withdrawals"`
}
