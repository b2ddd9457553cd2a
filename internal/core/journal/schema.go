package journal

func (j *Journal) initSchema() error {
	schema := `
	-- The live session. Only row id 1 is ever used.
	CREATE TABLE IF NOT EXISTS session (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		state TEXT NOT NULL,
		started_at INTEGER NOT NULL,
		elapsed_seconds INTEGER NOT NULL DEFAULT 0,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Accepted points in arrival order
	CREATE TABLE IF NOT EXISTS points (
		seq INTEGER PRIMARY KEY,
		latitude REAL NOT NULL,
		longitude REAL NOT NULL,
		altitude REAL,
		timestamp_ms INTEGER NOT NULL,
		speed REAL
	);
	`

	_, err := j.conn.Exec(schema)
	return err
}
