package model

import (
	uuid "github.com/satori/go.uuid"
)

// RejectRequest ... Body of an admin reject call, the reason is mandatory
type RejectRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// RecoveryActionRequest ... Body of POST /crypto/recovery
type RecoveryActionRequest struct {
	Action    string `json:"action" validate:"required"`
	PaymentID string `json:"paymentId" validate:"required"`
	Reason    string `json:"reason,omitempty"`
}

// CreateWithdrawalRequest ... Body of a user withdrawal request
type CreateWithdrawalRequest struct {
	Currency string  `json:"currency" validate:"required"`
	Address  string  `json:"address" validate:"required"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
}

// DepositIPNRequest ... Processor webhook reporting an inbound transfer
type DepositIPNRequest struct {
	UserID   uuid.UUID `json:"userId" validate:"required"`
	Currency string    `json:"currency" validate:"required"`
	Amount   float64   `json:"amount" validate:"required,gt=0"`
	TxHash   string    `json:"txHash" validate:"required"`
}

// TokenClaims ... Decoded JWT claims used by handlers behind the auth middleware
type TokenClaims struct {
	UserID    uuid.UUID `json:"userId"`
	Role      string    `json:"role"`
	TokenType string    `json:"tokenType"`
}
