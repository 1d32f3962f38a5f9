package model

// LedgerTxnStatus ... Statuses a deposit or withdrawal moves through.
// PENDING is the only non-terminal state, transitions are one-way.
type LedgerTxnStatus struct{ PENDING, APPROVED, REJECTED, EXPIRED string }

// PaymentTxnStatus ... Statuses of a processor-side crypto payment.
// CONFIRMED, EXPIRED and REFUNDED are terminal.
type PaymentTxnStatus struct{ PENDING, CONFIRMED, EXPIRED, REFUNDED string }

// UserRole ... Closed role set. Every authorization site handles all three.
type UserRole struct{ USER, ADMIN, SUPER_ADMIN string }

// AuthTokenType ... Token audiences issued by the authenticator. SERVICE
// tokens identify machine callers like the payment processor.
type AuthTokenType struct{ USER, SERVICE string }

var (
	LedgerStatus = LedgerTxnStatus{
		PENDING:  "PENDING",
		APPROVED: "APPROVED",
		REJECTED: "REJECTED",
		EXPIRED:  "EXPIRED",
	}
	PaymentStatus = PaymentTxnStatus{
		PENDING:   "PENDING",
		CONFIRMED: "CONFIRMED",
		EXPIRED:   "EXPIRED",
		REFUNDED:  "REFUNDED",
	}
	Role = UserRole{
		USER:        "USER",
		ADMIN:       "ADMIN",
		SUPER_ADMIN: "SUPER_ADMIN",
	}
	TokenType = AuthTokenType{
		USER:    "USER",
		SERVICE: "SERVICE",
	}
)

// IsTerminalLedgerStatus ... true for any status a record cannot leave
func IsTerminalLedgerStatus(status string) bool {
	return status == LedgerStatus.APPROVED || status == LedgerStatus.REJECTED || status == LedgerStatus.EXPIRED
}

// IsTerminalPaymentStatus ...
func IsTerminalPaymentStatus(status string) bool {
	return status == PaymentStatus.CONFIRMED || status == PaymentStatus.EXPIRED || status == PaymentStatus.REFUNDED
}

// IsAdminRole ... ADMIN and SUPER_ADMIN may operate the approval endpoints
func IsAdminRole(role string) bool {
	switch role {
	case Role.ADMIN, Role.SUPER_ADMIN:
		return true
	case Role.USER:
		return false
	default:
		return false
	}
}

// IsServiceToken ... only SERVICE tokens may call machine-to-machine routes
func IsServiceToken(tokenType string) bool {
	return tokenType == TokenType.SERVICE
}

// SupportedCurrencies ... the currency enum accepted by the ledger
var SupportedCurrencies = []string{"BTC", "ETH", "USDT", "LTC"}

// IsSupportedCurrency ...
func IsSupportedCurrency(symbol string) bool {
	for _, c := range SupportedCurrencies {
		if c == symbol {
			return true
		}
	}
	return false
}
