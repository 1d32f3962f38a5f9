package model

import (
	uuid "github.com/satori/go.uuid"
	"github.com/shopspring/decimal"
)

// UserCryptoBalance ... Per-user, per-currency available balance. The only
// shared mutable row in the subsystem. Balance mutations happen through
// atomic SQL increments inside the same transaction as the status change
// that justifies them, never as a two-step read-modify-write.
type UserCryptoBalance struct {
	BaseModel
	UserID           uuid.UUID       `gorm:"type:VARCHAR(36);not null;unique_index:uix_balance_user_currency" json:"userId"`
	Currency         string          `gorm:"type:VARCHAR(10);not null;unique_index:uix_balance_user_currency" json:"currency"`
	AvailableBalance decimal.Decimal `gorm:"type:decimal(64,18);not null;default:0" json:"availableBalance"`
}
