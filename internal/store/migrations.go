package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Workouts table - one row per completed or abandoned session
		`CREATE TABLE IF NOT EXISTS workouts (
			id TEXT PRIMARY KEY,
			exercise TEXT NOT NULL,
			target INTEGER NOT NULL,
			reps INTEGER NOT NULL DEFAULT 0,
			completed INTEGER NOT NULL DEFAULT 0,
			started_at DATETIME NOT NULL,
			ended_at DATETIME NOT NULL
		)`,

		// Goals table - daily rep targets per exercise
		`CREATE TABLE IF NOT EXISTS goals (
			id TEXT PRIMARY KEY,
			exercise TEXT NOT NULL UNIQUE,
			daily_reps INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Settings table - stores application settings as key-value pairs
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Indexes for better query performance
		`CREATE INDEX IF NOT EXISTS idx_workouts_exercise ON workouts(exercise)`,
		`CREATE INDEX IF NOT EXISTS idx_workouts_started_at ON workouts(started_at)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
