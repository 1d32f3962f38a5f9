package migration

import (
	"database/sql"

	"github.com/pressly/goose"
)

func init() {
	goose.AddMigration(Up20260612102300, Down20260612102300)
}

func Up20260612102300(tx *sql.Tx) error {
	_, err := tx.Exec(`CREATE TABLE IF NOT EXISTS crypto_payments (
		id VARCHAR(36),
		user_id VARCHAR(36) NOT NULL,
		currency VARCHAR(10) NOT NULL,
		amount DECIMAL(64,18) NOT NULL,
		pay_address VARCHAR(255),
		status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
		expires_at DATETIME NULL,
		recovery_reason VARCHAR(255) NULL,
		created_at DATETIME NULL,
		updated_at DATETIME NULL,

		PRIMARY KEY (id),
		INDEX payment_user_id (user_id),
		INDEX payment_status (status)
	);`)
	if err != nil {
		return err
	}
	return nil
}

func Down20260612102300(tx *sql.Tx) error {
	_, err := tx.Exec("DROP TABLE IF EXISTS crypto_payments;")
	if err != nil {
		return err
	}
	return nil
}
