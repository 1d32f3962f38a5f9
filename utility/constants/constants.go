package constants

const (
	COIN_BTC  = "BTC"
	COIN_ETH  = "ETH"
	COIN_USDT = "USDT"
	COIN_LTC  = "LTC"

	X_AUTH_TOKEN = "x-auth-token"

	// Audit actions
	AUDIT_CRYPTO_DEPOSIT_APPROVED    = "CRYPTO_DEPOSIT_APPROVED"
	AUDIT_CRYPTO_DEPOSIT_REJECTED    = "CRYPTO_DEPOSIT_REJECTED"
	AUDIT_CRYPTO_WITHDRAWAL_APPROVED = "CRYPTO_WITHDRAWAL_APPROVED"
	AUDIT_CRYPTO_WITHDRAWAL_REJECTED = "CRYPTO_WITHDRAWAL_REJECTED"
	AUDIT_CRYPTO_PAYMENT_REFUNDED    = "CRYPTO_PAYMENT_REFUNDED"
	AUDIT_CRYPTO_PAYMENT_EXPIRED     = "CRYPTO_PAYMENT_EXPIRED"

	// Notification event types
	NOTIFY_DEPOSIT_APPROVED    = "deposit.approved"
	NOTIFY_DEPOSIT_REJECTED    = "deposit.rejected"
	NOTIFY_WITHDRAWAL_APPROVED = "withdrawal.approved"
	NOTIFY_WITHDRAWAL_REJECTED = "withdrawal.rejected"
	NOTIFY_PAYMENT_REFUNDED    = "payment.refunded"

	// Redis list the notification worker drains
	NOTIFICATION_QUEUE_KEY = "payledger:notifications"
)
