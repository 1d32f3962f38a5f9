package model

import (
	"time"

	uuid "github.com/satori/go.uuid"
	"github.com/shopspring/decimal"
)

// Withdrawal ... Record of an outbound transfer request. The user balance is
// debited by TotalAmount when the request is created, a rejection credits it
// back exactly once.
type Withdrawal struct {
	BaseModel
	UserID           uuid.UUID       `gorm:"type:VARCHAR(36);not null;index:withdrawal_user_id" json:"userId"`
	Currency         string          `gorm:"type:VARCHAR(10);not null" json:"currency"`
	Address          string          `gorm:"type:VARCHAR(255);not null" json:"address"`
	Amount           decimal.Decimal `gorm:"type:decimal(64,18);not null" json:"amount"`
	Fee              decimal.Decimal `gorm:"type:decimal(64,18);not null" json:"fee"`
	TotalAmount      decimal.Decimal `gorm:"type:decimal(64,18);not null" json:"totalAmount"`
	RequiresApproval bool            `gorm:"not null" json:"requiresApproval"`
	Status           string          `gorm:"type:VARCHAR(20);not null;default:'PENDING';index:withdrawal_status" json:"status"`
	ReviewedBy       *uuid.UUID      `gorm:"type:VARCHAR(36)" json:"reviewedBy,omitempty"`
	ReviewedAt       *time.Time      `json:"reviewedAt,omitempty"`
	RejectionReason  *string         `gorm:"type:VARCHAR(255)" json:"rejectionReason,omitempty"`
}
