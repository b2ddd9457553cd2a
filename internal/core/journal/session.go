package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/neilberkman/trailwatch/internal/core/models"
)

// Record is a journaled session as read back by Load
type Record struct {
	State          string
	StartedAt      time.Time
	ElapsedSeconds int
	HeartRate      int
	Points         []models.Point
}

// Begin replaces whatever was journaled with a fresh session
func (j *Journal) Begin(state string, startedAt time.Time) error {
	tx, err := j.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM points`); err != nil {
		return fmt.Errorf("clear points: %w", err)
	}
	if _, err := tx.Exec(`
		INSERT OR REPLACE INTO session (id, state, started_at, elapsed_seconds, heart_rate, updated_at)
		VALUES (1, ?, ?, 0, 0, CURRENT_TIMESTAMP)
	`, state, startedAt.UnixMilli()); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	return tx.Commit()
}

// SaveProgress updates the session row. It is a no-op when no session
// has been begun.
func (j *Journal) SaveProgress(state string, elapsedSeconds, heartRate int) error {
	_, err := j.conn.Exec(`
		UPDATE session
		SET state = ?, elapsed_seconds = ?, heart_rate = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = 1
	`, state, elapsedSeconds, heartRate)
	if err != nil {
		return fmt.Errorf("failed to save session progress: %w", err)
	}
	return nil
}

// AppendPoint journals the point at position seq of the session log
func (j *Journal) AppendPoint(seq int, p models.Point) error {
	var altitude, speed sql.NullFloat64
	if p.HasAltitude {
		altitude = sql.NullFloat64{Float64: p.Altitude, Valid: true}
	}
	if p.HasSpeed {
		speed = sql.NullFloat64{Float64: p.Speed, Valid: true}
	}

	_, err := j.conn.Exec(`
		INSERT OR REPLACE INTO points (seq, latitude, longitude, altitude, timestamp_ms, speed)
		VALUES (?, ?, ?, ?, ?, ?)
	`, seq, p.Latitude, p.Longitude, altitude, p.Timestamp, speed)
	if err != nil {
		return fmt.Errorf("failed to append point: %w", err)
	}
	return nil
}

// Load reads the journaled session and its points
func (j *Journal) Load() (*Record, error) {
	var (
		rec       Record
		startedMs int64
	)
	err := j.conn.QueryRow(`
		SELECT state, started_at, elapsed_seconds, heart_rate
		FROM session WHERE id = 1
	`).Scan(&rec.State, &startedMs, &rec.ElapsedSeconds, &rec.HeartRate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	rec.StartedAt = time.UnixMilli(startedMs).UTC()

	rows, err := j.conn.Query(`
		SELECT latitude, longitude, altitude, timestamp_ms, speed
		FROM points ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load points: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			p        models.Point
			altitude sql.NullFloat64
			speed    sql.NullFloat64
		)
		if err := rows.Scan(&p.Latitude, &p.Longitude, &altitude, &p.Timestamp, &speed); err != nil {
			return nil, fmt.Errorf("failed to scan point: %w", err)
		}
		p.Altitude, p.HasAltitude = altitude.Float64, altitude.Valid
		p.Speed, p.HasSpeed = speed.Float64, speed.Valid
		rec.Points = append(rec.Points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &rec, nil
}

// Clear removes the journaled session. Reset is the only caller.
func (j *Journal) Clear() error {
	tx, err := j.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM points`); err != nil {
		return fmt.Errorf("clear points: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM session`); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return tx.Commit()
}
