package database

import (
	"payledger/model"
)

// RunDbMigrations ... Creates corresponding tables for the ledger models and
// watches them for field additions. The SQL history lives in migration/.
func (database *Database) RunDbMigrations() {
	database.DB.AutoMigrate(
		&model.Deposit{},
		&model.Withdrawal{},
		&model.UserCryptoBalance{},
		&model.AuditLog{},
		&model.CryptoPayment{},
	)
}
