package dto

import (
	"time"

	uuid "github.com/satori/go.uuid"
)

// RecoveryRecord ... Outcome of an operator-initiated payment recovery
type RecoveryRecord struct {
	PaymentID   uuid.UUID `json:"paymentId"`
	FromStatus  string    `json:"fromStatus"`
	ToStatus    string    `json:"toStatus"`
	Reason      string    `json:"reason"`
	RecoveredAt time.Time `json:"recoveredAt"`
}

// VerificationResult ... Read-only risk assessment of a payment
type VerificationResult struct {
	PaymentID  uuid.UUID `json:"paymentId"`
	Status     string    `json:"status"`
	Legitimate bool      `json:"legitimate"`
	Flags      []string  `json:"flags"`
	CheckedAt  time.Time `json:"checkedAt"`
}

// SweepReport ... Result of one expiry sweep run
type SweepReport struct {
	Recovered int `json:"recovered"`
	Failed    int `json:"failed"`
	Scanned   int `json:"scanned"`
}

// RecoveryCapabilities ... Payload of GET /crypto/recovery
type RecoveryCapabilities struct {
	Actions             []string `json:"actions"`
	ExpiryMinutes       int      `json:"expiryMinutes"`
	SweepCronExpression string   `json:"sweepCronExpression"`
}
