package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/yusufkecer/fitness-tracker-backend/internal/domain"
)

const activityColumns = `id, user_id, activity_type, description, duration, calories_burned, date, status, created_at`

func scanActivityLog(row rowScanner) (*domain.ActivityLog, error) {
	var (
		l        domain.ActivityLog
		calories sql.NullInt64
	)
	err := row.Scan(&l.ID, &l.UserID, &l.ActivityType, &l.Description, &l.Duration, &calories,
		&l.Date, &l.Status, timeColumn{&l.CreatedAt})
	if err != nil {
		return nil, err
	}
	l.CaloriesBurned = nullInt(calories)
	return &l, nil
}

func (s *SQLStore) GetActivityLogs(ctx context.Context, userID int64, date *domain.Date) ([]domain.ActivityLog, error) {
	query := `SELECT ` + activityColumns + ` FROM activity_logs WHERE user_id = ?`
	args := []interface{}{userID}
	if date != nil {
		query += ` AND date = ?`
		args = append(args, *date)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.query(ctx, s.db, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity logs: %w", err)
	}
	defer rows.Close()

	logs := []domain.ActivityLog{}
	for rows.Next() {
		l, err := scanActivityLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity log: %w", err)
		}
		logs = append(logs, *l)
	}
	return logs, rows.Err()
}

// lockActivityLog reads an activity log inside an update transaction.
func (s *SQLStore) lockActivityLog(ctx context.Context, tx *sql.Tx, id int64) (*domain.ActivityLog, error) {
	l, err := scanActivityLog(s.queryRow(ctx, tx,
		s.forUpdate(`SELECT `+activityColumns+` FROM activity_logs WHERE id = ?`, true), id))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get activity log: %w", err)
	}
	return l, nil
}

func (s *SQLStore) CreateActivityLog(ctx context.Context, in domain.NewActivityLog) (*domain.ActivityLog, error) {
	createdAt := s.now()
	id, err := s.insert(ctx, s.db,
		`INSERT INTO activity_logs (user_id, activity_type, description, duration, calories_burned, date, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		in.UserID, in.ActivityType, in.Description, in.Duration, nullableInt(in.CaloriesBurned),
		in.Date, in.Status, formatTime(createdAt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create activity log: %w", err)
	}
	return &domain.ActivityLog{
		ID:             id,
		UserID:         in.UserID,
		ActivityType:   in.ActivityType,
		Description:    in.Description,
		Duration:       in.Duration,
		CaloriesBurned: in.CaloriesBurned,
		Date:           in.Date,
		Status:         in.Status,
		CreatedAt:      createdAt,
	}, nil
}

func (s *SQLStore) UpdateActivityLog(ctx context.Context, id int64, patch domain.ActivityLogPatch) (*domain.ActivityLog, error) {
	var updated *domain.ActivityLog
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		l, err := s.lockActivityLog(ctx, tx, id)
		if err != nil || l == nil {
			return err
		}
		patch.Apply(l)
		_, err = s.exec(ctx, tx,
			`UPDATE activity_logs SET activity_type = ?, description = ?, duration = ?, calories_burned = ?,
			 date = ?, status = ? WHERE id = ?`,
			l.ActivityType, l.Description, l.Duration, nullableInt(l.CaloriesBurned), l.Date, l.Status, id,
		)
		if err != nil {
			return fmt.Errorf("failed to update activity log: %w", err)
		}
		updated = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *SQLStore) DeleteActivityLog(ctx context.Context, id int64) (bool, error) {
	return s.delete(ctx, "activity_logs", id)
}
