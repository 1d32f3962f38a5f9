package migration

import (
	"database/sql"

	"github.com/pressly/goose"
)

func init() {
	goose.AddMigration(Up20260612101500, Down20260612101500)
}

func Up20260612101500(tx *sql.Tx) error {
	_, err := tx.Exec(`CREATE TABLE IF NOT EXISTS deposits (
		id VARCHAR(36),
		user_id VARCHAR(36) NOT NULL,
		currency VARCHAR(10) NOT NULL,
		amount DECIMAL(64,18) NOT NULL,
		tx_hash VARCHAR(255),
		status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
		reviewed_by VARCHAR(36) NULL,
		reviewed_at DATETIME NULL,
		rejection_reason VARCHAR(255) NULL,
		created_at DATETIME NULL,
		updated_at DATETIME NULL,

		PRIMARY KEY (id),
		INDEX deposit_user_id (user_id),
		INDEX deposit_status (status)
	);`)
	if err != nil {
		return err
	}
	return nil
}

func Down20260612101500(tx *sql.Tx) error {
	_, err := tx.Exec("DROP TABLE IF EXISTS deposits;")
	if err != nil {
		return err
	}
	return nil
}
