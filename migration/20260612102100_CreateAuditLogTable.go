package migration

import (
	"database/sql"

	"github.com/pressly/goose"
)

func init() {
	goose.AddMigration(Up20260612102100, Down20260612102100)
}

func Up20260612102100(tx *sql.Tx) error {
	_, err := tx.Exec(`CREATE TABLE IF NOT EXISTS audit_logs (
		id VARCHAR(36),
		actor_id VARCHAR(36) NOT NULL,
		action VARCHAR(64) NOT NULL,
		resource_type VARCHAR(32) NOT NULL,
		resource_id VARCHAR(36) NOT NULL,
		details TEXT,
		created_at DATETIME NULL,
		updated_at DATETIME NULL,

		PRIMARY KEY (id),
		INDEX audit_actor_id (actor_id),
		INDEX audit_action (action)
	);`)
	if err != nil {
		return err
	}
	return nil
}

func Down20260612102100(tx *sql.Tx) error {
	_, err := tx.Exec("DROP TABLE IF EXISTS audit_logs;")
	if err != nil {
		return err
	}
	return nil
}
