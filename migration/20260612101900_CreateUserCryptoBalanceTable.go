package migration

import (
	"database/sql"

	"github.com/pressly/goose"
)

func init() {
	goose.AddMigration(Up20260612101900, Down20260612101900)
}

func Up20260612101900(tx *sql.Tx) error {
	_, err := tx.Exec(`CREATE TABLE IF NOT EXISTS user_crypto_balances (
		id VARCHAR(36),
		user_id VARCHAR(36) NOT NULL,
		currency VARCHAR(10) NOT NULL,
		available_balance DECIMAL(64,18) NOT NULL DEFAULT 0,
		created_at DATETIME NULL,
		updated_at DATETIME NULL,

		PRIMARY KEY (id),
		UNIQUE INDEX uix_balance_user_currency (user_id, currency)
	);`)
	if err != nil {
		return err
	}
	return nil
}

func Down20260612101900(tx *sql.Tx) error {
	_, err := tx.Exec("DROP TABLE IF EXISTS user_crypto_balances;")
	if err != nil {
		return err
	}
	return nil
}
