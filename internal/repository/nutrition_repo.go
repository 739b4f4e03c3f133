package repository

import (
	"context"
	"fmt"

	"github.com/yusufkecer/fitness-tracker-backend/internal/domain"
)

const nutritionColumns = `id, user_id, meal_type, description, calories, date, created_at`

func scanNutritionLog(row rowScanner) (*domain.NutritionLog, error) {
	var l domain.NutritionLog
	err := row.Scan(&l.ID, &l.UserID, &l.MealType, &l.Description, &l.Calories, &l.Date, timeColumn{&l.CreatedAt})
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *SQLStore) GetNutritionLogs(ctx context.Context, userID int64, date *domain.Date) ([]domain.NutritionLog, error) {
	query := `SELECT ` + nutritionColumns + ` FROM nutrition_logs WHERE user_id = ?`
	args := []interface{}{userID}
	if date != nil {
		query += ` AND date = ?`
		args = append(args, *date)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.query(ctx, s.db, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list nutrition logs: %w", err)
	}
	defer rows.Close()

	logs := []domain.NutritionLog{}
	for rows.Next() {
		l, err := scanNutritionLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan nutrition log: %w", err)
		}
		logs = append(logs, *l)
	}
	return logs, rows.Err()
}

func (s *SQLStore) CreateNutritionLog(ctx context.Context, in domain.NewNutritionLog) (*domain.NutritionLog, error) {
	createdAt := s.now()
	id, err := s.insert(ctx, s.db,
		`INSERT INTO nutrition_logs (user_id, meal_type, description, calories, date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		in.UserID, in.MealType, in.Description, in.Calories, in.Date, formatTime(createdAt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create nutrition log: %w", err)
	}
	return &domain.NutritionLog{
		ID:          id,
		UserID:      in.UserID,
		MealType:    in.MealType,
		Description: in.Description,
		Calories:    in.Calories,
		Date:        in.Date,
		CreatedAt:   createdAt,
	}, nil
}

func (s *SQLStore) DeleteNutritionLog(ctx context.Context, id int64) (bool, error) {
	return s.delete(ctx, "nutrition_logs", id)
}
