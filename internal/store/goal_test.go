package store

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestGoalRepository_SetAndGet(t *testing.T) {
	s := testStore(t)

	g := &Goal{ID: uuid.New().String(), Exercise: "squat", DailyReps: 50}
	if err := s.Goals().Set(g); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := s.Goals().GetByExercise("squat")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.DailyReps != 50 {
		t.Errorf("daily reps = %d, want 50", got.DailyReps)
	}
}

func TestGoalRepository_SetReplacesExisting(t *testing.T) {
	s := testStore(t)

	first := &Goal{ID: uuid.New().String(), Exercise: "squat", DailyReps: 50}
	if err := s.Goals().Set(first); err != nil {
		t.Fatalf("set: %v", err)
	}

	second := &Goal{ID: uuid.New().String(), Exercise: "squat", DailyReps: 80}
	if err := s.Goals().Set(second); err != nil {
		t.Fatalf("replace: %v", err)
	}

	got, err := s.Goals().GetByExercise("squat")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.DailyReps != 80 {
		t.Errorf("daily reps = %d, want 80 after replace", got.DailyReps)
	}

	goals, err := s.Goals().List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(goals) != 1 {
		t.Errorf("got %d goals, want 1 (one per exercise)", len(goals))
	}
}

func TestGoalRepository_GetMissing(t *testing.T) {
	s := testStore(t)

	_, err := s.Goals().GetByExercise("squat")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestGoalRepository_Delete(t *testing.T) {
	s := testStore(t)

	g := &Goal{ID: uuid.New().String(), Exercise: "squat", DailyReps: 50}
	if err := s.Goals().Set(g); err != nil {
		t.Fatalf("set: %v", err)
	}

	if err := s.Goals().Delete("squat"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Goals().Delete("squat"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete got %v, want ErrNotFound", err)
	}
}

func TestSettingsRepository_SetAndGet(t *testing.T) {
	s := testStore(t)

	if _, err := s.Settings().Get("overlay"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v for missing key, want ErrNotFound", err)
	}

	if err := s.Settings().Set("overlay", "on"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Settings().Set("overlay", "off"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, err := s.Settings().Get("overlay")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "off" {
		t.Errorf("value = %q, want off", got)
	}
}
