package journal

import (
	"fmt"
)

// migrate applies schema changes to journals written by older versions
func (j *Journal) migrate() error {
	// Migration 1: heart rate on the session row
	if err := j.migration001AddHeartRate(); err != nil {
		return fmt.Errorf("migration 001: %w", err)
	}
	return nil
}

func (j *Journal) migration001AddHeartRate() error {
	exists, err := j.columnExists("session", "heart_rate")
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	_, err = j.conn.Exec(`ALTER TABLE session ADD COLUMN heart_rate INTEGER NOT NULL DEFAULT 0`)
	return err
}

func (j *Journal) columnExists(table, column string) (bool, error) {
	rows, err := j.conn.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue interface{}
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}
