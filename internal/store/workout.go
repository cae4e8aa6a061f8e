package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Workout represents one recorded exercise session.
type Workout struct {
	ID        string
	Exercise  string
	Target    int
	Reps      int
	Completed bool
	StartedAt time.Time
	EndedAt   time.Time
}

// WorkoutRepository provides CRUD operations for workouts.
type WorkoutRepository struct {
	db *sql.DB
}

// Workouts returns the workout repository for this store.
func (s *Store) Workouts() *WorkoutRepository {
	return &WorkoutRepository{db: s.db}
}

// Create inserts a new workout into the database.
func (r *WorkoutRepository) Create(w *Workout) error {
	_, err := r.db.Exec(
		`INSERT INTO workouts (id, exercise, target, reps, completed, started_at, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		w.ID, w.Exercise, w.Target, w.Reps, w.Completed, w.StartedAt, w.EndedAt,
	)
	if err != nil {
		return err
	}

	return nil
}

// GetByID retrieves a workout by its ID.
func (r *WorkoutRepository) GetByID(id string) (*Workout, error) {
	w := &Workout{}

	err := r.db.QueryRow(
		`SELECT id, exercise, target, reps, completed, started_at, ended_at
		 FROM workouts WHERE id = ?`,
		id,
	).Scan(&w.ID, &w.Exercise, &w.Target, &w.Reps, &w.Completed, &w.StartedAt, &w.EndedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return w, nil
}

// List retrieves the most recent workouts, newest first. limit <= 0
// returns everything.
func (r *WorkoutRepository) List(limit int) ([]*Workout, error) {
	query := `SELECT id, exercise, target, reps, completed, started_at, ended_at
		 FROM workouts ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workouts []*Workout
	for rows.Next() {
		w := &Workout{}
		err := rows.Scan(&w.ID, &w.Exercise, &w.Target, &w.Reps, &w.Completed, &w.StartedAt, &w.EndedAt)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, w)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return workouts, nil
}

// RepsSince sums the counted reps for an exercise since the given time,
// for goal progress.
func (r *WorkoutRepository) RepsSince(exercise string, since time.Time) (int, error) {
	var total sql.NullInt64

	err := r.db.QueryRow(
		`SELECT SUM(reps) FROM workouts WHERE exercise = ? AND started_at >= ?`,
		exercise, since,
	).Scan(&total)
	if err != nil {
		return 0, err
	}

	return int(total.Int64), nil
}

// Delete removes a workout from the database by its ID.
func (r *WorkoutRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM workouts WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
