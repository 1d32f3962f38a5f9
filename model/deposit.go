package model

import (
	"time"

	uuid "github.com/satori/go.uuid"
	"github.com/shopspring/decimal"
)

// Deposit ... Record of an inbound crypto transfer awaiting review.
// Rows are never deleted, terminal rows are retained for audit.
type Deposit struct {
	BaseModel
	UserID          uuid.UUID       `gorm:"type:VARCHAR(36);not null;index:deposit_user_id" json:"userId"`
	Currency        string          `gorm:"type:VARCHAR(10);not null" json:"currency"`
	Amount          decimal.Decimal `gorm:"type:decimal(64,18);not null" json:"amount"`
	TxHash          string          `gorm:"type:VARCHAR(255)" json:"txHash"`
	Status          string          `gorm:"type:VARCHAR(20);not null;default:'PENDING';index:deposit_status" json:"status"`
	ReviewedBy      *uuid.UUID      `gorm:"type:VARCHAR(36)" json:"reviewedBy,omitempty"`
	ReviewedAt      *time.Time      `json:"reviewedAt,omitempty"`
	RejectionReason *string         `gorm:"type:VARCHAR(255)" json:"rejectionReason,omitempty"`
}
