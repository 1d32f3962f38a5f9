package model

import (
	"time"

	uuid "github.com/satori/go.uuid"
	"github.com/shopspring/decimal"
)

// CryptoPayment ... Processor-side payment the recovery engine watches.
// PENDING payments past their expiry window get swept to EXPIRED, an
// operator can move a stuck PENDING payment to REFUNDED with a reason.
type CryptoPayment struct {
	BaseModel
	UserID         uuid.UUID       `gorm:"type:VARCHAR(36);not null;index:payment_user_id" json:"userId"`
	Currency       string          `gorm:"type:VARCHAR(10);not null" json:"currency"`
	Amount         decimal.Decimal `gorm:"type:decimal(64,18);not null" json:"amount"`
	PayAddress     string          `gorm:"type:VARCHAR(255)" json:"payAddress"`
	Status         string          `gorm:"type:VARCHAR(20);not null;default:'PENDING';index:payment_status" json:"status"`
	ExpiresAt      *time.Time      `json:"expiresAt,omitempty"`
	RecoveryReason *string         `gorm:"type:VARCHAR(255)" json:"recoveryReason,omitempty"`
}
