package migration

import (
	"database/sql"

	"github.com/pressly/goose"
)

func init() {
	goose.AddMigration(Up20260612101700, Down20260612101700)
}

func Up20260612101700(tx *sql.Tx) error {
	_, err := tx.Exec(`CREATE TABLE IF NOT EXISTS withdrawals (
		id VARCHAR(36),
		user_id VARCHAR(36) NOT NULL,
		currency VARCHAR(10) NOT NULL,
		address VARCHAR(255) NOT NULL,
		amount DECIMAL(64,18) NOT NULL,
		fee DECIMAL(64,18) NOT NULL,
		total_amount DECIMAL(64,18) NOT NULL,
		requires_approval TINYINT(1) NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
		reviewed_by VARCHAR(36) NULL,
		reviewed_at DATETIME NULL,
		rejection_reason VARCHAR(255) NULL,
		created_at DATETIME NULL,
		updated_at DATETIME NULL,

		PRIMARY KEY (id),
		INDEX withdrawal_user_id (user_id),
		INDEX withdrawal_status (status)
	);`)
	if err != nil {
		return err
	}
	return nil
}

func Down20260612101700(tx *sql.Tx) error {
	_, err := tx.Exec("DROP TABLE IF EXISTS withdrawals;")
	if err != nil {
		return err
	}
	return nil
}
