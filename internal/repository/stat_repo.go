package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/yusufkecer/fitness-tracker-backend/internal/domain"
)

const statColumns = `id, user_id, date, steps, calories, calories_goal, water_intake, water_goal, sleep_hours, sleep_goal, created_at, updated_at`

func scanStat(row rowScanner) (*domain.Stat, error) {
	var st domain.Stat
	err := row.Scan(&st.ID, &st.UserID, &st.Date, &st.Steps, &st.Calories, &st.CaloriesGoal,
		&st.WaterIntake, &st.WaterGoal, &st.SleepHours, &st.SleepGoal,
		timeColumn{&st.CreatedAt}, timeColumn{&st.UpdatedAt})
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *SQLStore) GetStats(ctx context.Context, userID int64, date domain.Date) (*domain.Stat, error) {
	return s.getStats(ctx, s.db, userID, date, false)
}

func (s *SQLStore) getStats(ctx context.Context, q queryer, userID int64, date domain.Date, lock bool) (*domain.Stat, error) {
	st, err := scanStat(s.queryRow(ctx, q,
		s.forUpdate(`SELECT `+statColumns+` FROM stats WHERE user_id = ? AND date = ?`, lock), userID, date))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	return st, nil
}

const upsertAttempts = 3

// CreateOrUpdateStats upserts on (user_id, date). When two first writes for
// the same day race, the unique index rejects the loser's insert and it is
// retried as an update.
func (s *SQLStore) CreateOrUpdateStats(ctx context.Context, in domain.NewStat) (*domain.Stat, error) {
	for attempt := 1; ; attempt++ {
		st, err := s.upsertStats(ctx, in)
		if err != nil && attempt < upsertAttempts && isConflict(err) {
			continue
		}
		return st, err
	}
}

func (s *SQLStore) upsertStats(ctx context.Context, in domain.NewStat) (*domain.Stat, error) {
	var result *domain.Stat
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		now := s.now()
		existing, err := s.getStats(ctx, tx, in.UserID, in.Date, true)
		if err != nil {
			return err
		}

		if existing != nil {
			in.Apply(existing)
			existing.UpdatedAt = stampAfter(now, existing.UpdatedAt)
			_, err := s.exec(ctx, tx,
				`UPDATE stats SET steps = ?, calories = ?, calories_goal = ?, water_intake = ?, water_goal = ?,
				 sleep_hours = ?, sleep_goal = ?, updated_at = ? WHERE id = ?`,
				existing.Steps, existing.Calories, existing.CaloriesGoal, existing.WaterIntake, existing.WaterGoal,
				existing.SleepHours, existing.SleepGoal, formatTime(existing.UpdatedAt), existing.ID,
			)
			if err != nil {
				return fmt.Errorf("failed to update stats: %w", err)
			}
			result = existing
			return nil
		}

		st := domain.DefaultStat(in.UserID, in.Date)
		in.Apply(&st)
		st.CreatedAt = now
		st.UpdatedAt = now
		id, err := s.insert(ctx, tx,
			`INSERT INTO stats (user_id, date, steps, calories, calories_goal, water_intake, water_goal,
			 sleep_hours, sleep_goal, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			st.UserID, st.Date, st.Steps, st.Calories, st.CaloriesGoal, st.WaterIntake, st.WaterGoal,
			st.SleepHours, st.SleepGoal, formatTime(st.CreatedAt), formatTime(st.UpdatedAt),
		)
		if err != nil {
			return fmt.Errorf("failed to create stats: %w", err)
		}
		st.ID = id
		result = &st
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
