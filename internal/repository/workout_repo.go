package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/yusufkecer/fitness-tracker-backend/internal/domain"
)

const workoutColumns = `id, user_id, title, description, duration, calories_burned, status, scheduled_for, completed_at, created_at`

func scanWorkout(row rowScanner) (*domain.Workout, error) {
	var (
		w           domain.Workout
		description sql.NullString
		calories    sql.NullInt64
	)
	err := row.Scan(&w.ID, &w.UserID, &w.Title, &description, &w.Duration, &calories, &w.Status,
		timeColumn{&w.ScheduledFor}, nullTimeColumn{&w.CompletedAt}, timeColumn{&w.CreatedAt})
	if err != nil {
		return nil, err
	}
	w.Description = nullString(description)
	w.CaloriesBurned = nullInt(calories)
	return &w, nil
}

func (s *SQLStore) GetWorkouts(ctx context.Context, userID int64) ([]domain.Workout, error) {
	rows, err := s.query(ctx, s.db,
		`SELECT `+workoutColumns+` FROM workouts WHERE user_id = ? ORDER BY scheduled_for DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	defer rows.Close()

	workouts := []domain.Workout{}
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workout: %w", err)
		}
		workouts = append(workouts, *w)
	}
	return workouts, rows.Err()
}

func (s *SQLStore) GetWorkout(ctx context.Context, id int64) (*domain.Workout, error) {
	return s.getWorkout(ctx, s.db, id, false)
}

func (s *SQLStore) getWorkout(ctx context.Context, q queryer, id int64, lock bool) (*domain.Workout, error) {
	w, err := scanWorkout(s.queryRow(ctx, q,
		s.forUpdate(`SELECT `+workoutColumns+` FROM workouts WHERE id = ?`, lock), id))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get workout: %w", err)
	}
	return w, nil
}

func (s *SQLStore) CreateWorkout(ctx context.Context, in domain.NewWorkout) (*domain.Workout, error) {
	createdAt := s.now()
	id, err := s.insert(ctx, s.db,
		`INSERT INTO workouts (user_id, title, description, duration, calories_burned, status, scheduled_for, completed_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.UserID, in.Title, nullableString(in.Description), in.Duration, nullableInt(in.CaloriesBurned),
		in.Status, formatTime(in.ScheduledFor), formatNullTime(in.CompletedAt), formatTime(createdAt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create workout: %w", err)
	}
	return &domain.Workout{
		ID:             id,
		UserID:         in.UserID,
		Title:          in.Title,
		Description:    in.Description,
		Duration:       in.Duration,
		CaloriesBurned: in.CaloriesBurned,
		Status:         in.Status,
		ScheduledFor:   in.ScheduledFor.UTC(),
		CompletedAt:    domain.UTCPtr(in.CompletedAt),
		CreatedAt:      createdAt,
	}, nil
}

func (s *SQLStore) UpdateWorkout(ctx context.Context, id int64, patch domain.WorkoutPatch) (*domain.Workout, error) {
	var updated *domain.Workout
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		w, err := s.getWorkout(ctx, tx, id, true)
		if err != nil || w == nil {
			return err
		}
		patch.Apply(w)
		_, err = s.exec(ctx, tx,
			`UPDATE workouts SET title = ?, description = ?, duration = ?, calories_burned = ?, status = ?,
			 scheduled_for = ?, completed_at = ? WHERE id = ?`,
			w.Title, nullableString(w.Description), w.Duration, nullableInt(w.CaloriesBurned), w.Status,
			formatTime(w.ScheduledFor), formatNullTime(w.CompletedAt), id,
		)
		if err != nil {
			return fmt.Errorf("failed to update workout: %w", err)
		}
		updated = w
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *SQLStore) DeleteWorkout(ctx context.Context, id int64) (bool, error) {
	return s.delete(ctx, "workouts", id)
}
