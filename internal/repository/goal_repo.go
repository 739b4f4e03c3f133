package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/yusufkecer/fitness-tracker-backend/internal/domain"
)

const goalColumns = `id, user_id, title, description, target_value, current_value, unit, start_date, end_date, created_at`

func scanGoal(row rowScanner) (*domain.Goal, error) {
	var g domain.Goal
	err := row.Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &g.TargetValue, &g.CurrentValue,
		&g.Unit, &g.StartDate, &g.EndDate, timeColumn{&g.CreatedAt})
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *SQLStore) GetGoals(ctx context.Context, userID int64) ([]domain.Goal, error) {
	rows, err := s.query(ctx, s.db,
		`SELECT `+goalColumns+` FROM goals WHERE user_id = ? ORDER BY id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	goals := []domain.Goal{}
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, *g)
	}
	return goals, rows.Err()
}

func (s *SQLStore) GetGoal(ctx context.Context, id int64) (*domain.Goal, error) {
	return s.getGoal(ctx, s.db, id, false)
}

func (s *SQLStore) getGoal(ctx context.Context, q queryer, id int64, lock bool) (*domain.Goal, error) {
	g, err := scanGoal(s.queryRow(ctx, q,
		s.forUpdate(`SELECT `+goalColumns+` FROM goals WHERE id = ?`, lock), id))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}
	return g, nil
}

func (s *SQLStore) CreateGoal(ctx context.Context, in domain.NewGoal) (*domain.Goal, error) {
	createdAt := s.now()
	id, err := s.insert(ctx, s.db,
		`INSERT INTO goals (user_id, title, description, target_value, current_value, unit, start_date, end_date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.UserID, in.Title, in.Description, in.TargetValue, in.CurrentValue, in.Unit,
		in.StartDate, in.EndDate, formatTime(createdAt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}
	return &domain.Goal{
		ID:           id,
		UserID:       in.UserID,
		Title:        in.Title,
		Description:  in.Description,
		TargetValue:  in.TargetValue,
		CurrentValue: in.CurrentValue,
		Unit:         in.Unit,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		CreatedAt:    createdAt,
	}, nil
}

func (s *SQLStore) UpdateGoal(ctx context.Context, id int64, patch domain.GoalPatch) (*domain.Goal, error) {
	var updated *domain.Goal
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		g, err := s.getGoal(ctx, tx, id, true)
		if err != nil || g == nil {
			return err
		}
		patch.Apply(g)
		_, err = s.exec(ctx, tx,
			`UPDATE goals SET title = ?, description = ?, target_value = ?, current_value = ?, unit = ?,
			 start_date = ?, end_date = ? WHERE id = ?`,
			g.Title, g.Description, g.TargetValue, g.CurrentValue, g.Unit, g.StartDate, g.EndDate, id,
		)
		if err != nil {
			return fmt.Errorf("failed to update goal: %w", err)
		}
		updated = g
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *SQLStore) DeleteGoal(ctx context.Context, id int64) (bool, error) {
	return s.delete(ctx, "goals", id)
}
