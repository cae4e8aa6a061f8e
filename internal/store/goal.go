package store

import (
	"database/sql"
	"errors"
	"time"
)

// Goal represents a daily rep target for one exercise.
type Goal struct {
	ID        string
	Exercise  string
	DailyReps int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GoalRepository provides CRUD operations for goals.
type GoalRepository struct {
	db *sql.DB
}

// Goals returns the goal repository for this store.
func (s *Store) Goals() *GoalRepository {
	return &GoalRepository{db: s.db}
}

// Set creates or replaces the goal for an exercise.
func (r *GoalRepository) Set(g *Goal) error {
	now := time.Now()
	g.CreatedAt = now
	g.UpdatedAt = now

	_, err := r.db.Exec(
		`INSERT INTO goals (id, exercise, daily_reps, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(exercise) DO UPDATE SET daily_reps = excluded.daily_reps, updated_at = excluded.updated_at`,
		g.ID, g.Exercise, g.DailyReps, g.CreatedAt, g.UpdatedAt,
	)
	if err != nil {
		return err
	}

	return nil
}

// GetByExercise retrieves the goal for an exercise.
func (r *GoalRepository) GetByExercise(exercise string) (*Goal, error) {
	g := &Goal{}

	err := r.db.QueryRow(
		`SELECT id, exercise, daily_reps, created_at, updated_at
		 FROM goals WHERE exercise = ?`,
		exercise,
	).Scan(&g.ID, &g.Exercise, &g.DailyReps, &g.CreatedAt, &g.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return g, nil
}

// List retrieves all goals from the database.
func (r *GoalRepository) List() ([]*Goal, error) {
	rows, err := r.db.Query(
		`SELECT id, exercise, daily_reps, created_at, updated_at
		 FROM goals ORDER BY exercise`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []*Goal
	for rows.Next() {
		g := &Goal{}
		err := rows.Scan(&g.ID, &g.Exercise, &g.DailyReps, &g.CreatedAt, &g.UpdatedAt)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return goals, nil
}

// Delete removes the goal for an exercise.
func (r *GoalRepository) Delete(exercise string) error {
	result, err := r.db.Exec(`DELETE FROM goals WHERE exercise = ?`, exercise)
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
